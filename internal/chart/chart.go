// Package chart builds the printable basic-strategy table: hard totals,
// soft totals and pairs against every dealer upcard.
package chart

import (
	"context"
	"fmt"
	"runtime"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/edge"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/solver"
)

// Block groups rows of the same kind.
type Block uint8

const (
	HardBlock Block = iota
	SoftBlock
	PairBlock
)

func (b Block) String() string {
	switch b {
	case HardBlock:
		return "hard"
	case SoftBlock:
		return "soft"
	case PairBlock:
		return "pairs"
	default:
		return "unknown"
	}
}

// ParseBlock maps a block name back to its value.
func ParseBlock(s string) (Block, error) {
	for _, b := range []Block{HardBlock, SoftBlock, PairBlock} {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown block %q", s)
}

// Cell is one hand against one upcard.
type Cell struct {
	Upcard cards.Rank    `json:"upcard"`
	Action solver.Action `json:"action"`
	// Fallback is the best action when doubling is not available.
	Fallback solver.Action `json:"fallback"`
	EV       float64       `json:"ev"`
}

// Code returns the chart code for the cell. The extended form has two
// characters: the action and, after a double, what to do when doubling is
// not allowed. Double-else-hit is written "D ".
func (c Cell) Code(extended bool) string {
	action := string(c.Action.Code())
	if !extended {
		return action
	}
	if c.Action != solver.Double || c.Fallback == solver.Hit {
		return action + " "
	}
	return action + string(c.Fallback.Code())
}

// Row is one starting hand across all upcards, in cards.Upcards order.
type Row struct {
	Label string                   `json:"label"`
	Block Block                    `json:"block"`
	Cells [len(cards.Upcards)]Cell `json:"cells"`

	state func(up cards.Rank, s *solver.Solver) solver.PlayerState
}

// Chart is a complete strategy table.
type Chart struct {
	Rules          rules.Rules
	Rows           []Row
	ExpectedReturn float64
}

// Options tune Build.
type Options struct {
	// Workers bounds concurrent upcard columns; zero means GOMAXPROCS.
	Workers int
	Logger  zerolog.Logger
	Clock   quartz.Clock
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Clock == nil {
		o.Clock = quartz.NewReal()
	}
	return o
}

// Layout returns the rows of the table in print order with no cells filled.
func Layout() []Row {
	var rows []Row
	for total := 5; total <= 17; total++ {
		hand := solver.Hand{Total: total}
		rows = append(rows, Row{
			Label: fmt.Sprint(total),
			Block: HardBlock,
			state: func(up cards.Rank, _ *solver.Solver) solver.PlayerState {
				return solver.PlayerState{Upcard: up, Hand: hand, DoubleAllowed: true}
			},
		})
	}
	for kicker := cards.Two; kicker <= cards.Nine; kicker++ {
		rows = append(rows, Row{
			Label: "A," + kicker.String(),
			Block: SoftBlock,
			state: func(up cards.Rank, s *solver.Solver) solver.PlayerState {
				return s.InitialState(up, cards.Ace, kicker)
			},
		})
	}
	for _, pair := range []cards.Rank{cards.Two, cards.Three, cards.Four, cards.Five, cards.Six, cards.Seven, cards.Eight, cards.Nine, cards.Ten, cards.Ace} {
		rows = append(rows, Row{
			Label: pair.String() + "," + pair.String(),
			Block: PairBlock,
			state: func(up cards.Rank, s *solver.Solver) solver.PlayerState {
				return s.InitialState(up, pair, pair)
			},
		})
	}
	return rows
}

// Build solves every cell of the table and the game's expected return.
// Upcard columns are independent, so each runs on its own Solver.
func Build(ctx context.Context, r rules.Rules, opts Options) (*Chart, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	opts = opts.withDefaults()
	logger := opts.Logger.With().Str("component", "chart").Logger()
	start := opts.Clock.Now()

	rows := Layout()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for col, up := range cards.Upcards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := solver.New(r, logger)
			if err != nil {
				return err
			}
			for i := range rows {
				st := rows[i].state(up, s)
				best := s.Decide(st)
				fallback := best.Action
				if best.Action == solver.Double {
					st.DoubleAllowed = false
					fallback = s.Decide(st).Action
				}
				rows[i].Cells[col] = Cell{Upcard: up, Action: best.Action, Fallback: fallback, EV: best.EV}
			}
			s.LogStats("solved upcard column " + up.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := edge.Calculate(ctx, r, edge.Options{Workers: opts.Workers, Logger: opts.Logger})
	if err != nil {
		return nil, fmt.Errorf("expected return: %w", err)
	}

	logger.Info().
		Str("rules", r.String()).
		Int("rows", len(rows)).
		Float64("expected_return", res.ExpectedReturn).
		Dur("elapsed", opts.Clock.Since(start)).
		Msg("built strategy chart")

	return &Chart{Rules: r, Rows: rows, ExpectedReturn: res.ExpectedReturn}, nil
}
