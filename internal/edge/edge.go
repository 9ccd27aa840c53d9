// Package edge computes the expected return of optimal play over every
// initial deal.
package edge

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/solver"
)

// Options tune Calculate.
type Options struct {
	// Workers bounds concurrent upcards; zero means GOMAXPROCS.
	Workers int
	Logger  zerolog.Logger
}

// Result is the expected return per unit bet.
type Result struct {
	Rules          rules.Rules
	ExpectedReturn float64
	// ByUpcard is the expected return given each upcard, in cards.Ranks order.
	ByUpcard [cards.RankCount]float64
	// NaturalFrequency is the chance of a player natural.
	NaturalFrequency float64
}

// Upcard returns the expected return given upcard.
func (r *Result) Upcard(upcard cards.Rank) float64 {
	if !upcard.Valid() {
		panic(fmt.Sprintf("edge: upcard rank %d out of range", upcard))
	}
	return r.ByUpcard[upcard-cards.Ace]
}

// Calculate enumerates both player cards and the dealer upcard, each one of
// thirteen ranks, and averages the value of optimal play.
func Calculate(ctx context.Context, r rules.Rules, opts Options) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger.With().Str("component", "edge").Logger()

	res := &Result{Rules: r}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, up := range cards.Ranks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := solver.New(r, logger)
			if err != nil {
				return err
			}
			res.ByUpcard[i] = upcardReturn(s, up)
			s.LogStats("solved upcard " + up.String())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.ExpectedReturn = floats.Sum(res.ByUpcard[:]) * cards.DrawProbability

	naturals := 0
	for _, first := range cards.Ranks {
		for _, second := range cards.Ranks {
			if isNatural(first, second) {
				naturals++
			}
		}
	}
	res.NaturalFrequency = float64(naturals) * cards.DrawProbability * cards.DrawProbability

	logger.Debug().
		Str("rules", r.String()).
		Float64("expected_return", res.ExpectedReturn).
		Msg("calculated expected return")
	return res, nil
}

func upcardReturn(s *solver.Solver, up cards.Rank) float64 {
	peek := s.Rules().DealerPeeks
	dealerNatural := s.NaturalProbability(up)

	values := make([]float64, 0, cards.RankCount*cards.RankCount)
	for _, first := range cards.Ranks {
		for _, second := range cards.Ranks {
			if isNatural(first, second) {
				values = append(values, naturalReturn(up))
				continue
			}
			v := s.Decide(s.InitialState(up, first, second)).EV
			if peek {
				// undo the conditioning on the dealer having no natural
				v = -dealerNatural + (1-dealerNatural)*v
			}
			values = append(values, v)
		}
	}
	return floats.Sum(values) * cards.DrawProbability * cards.DrawProbability
}

// naturalReturn pays a player natural over every hole card; a dealer
// natural pushes.
func naturalReturn(up cards.Rank) float64 {
	sum := 0.0
	for _, hole := range cards.Ranks {
		if !isNatural(up, hole) {
			sum += solver.BlackjackPayout
		}
	}
	return sum * cards.DrawProbability
}

func isNatural(first, second cards.Rank) bool {
	return solver.HandOf(first, second).Total == 21
}
