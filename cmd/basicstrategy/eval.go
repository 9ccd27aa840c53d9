package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/solver"
)

type EvalCmd struct {
	Hand     string `help:"hard total (16), or two cards (A7, 88, T6)" required:""`
	Upcard   string `short:"u" help:"dealer upcard (2-9, T, A)" required:""`
	NoDouble bool   `help:"evaluate as if doubling is not available"`
	Splits   *int   `help:"override the remaining split budget for a pair"`
}

func (cmd *EvalCmd) Run(r rules.Rules) error {
	up, err := cards.ParseRank(cmd.Upcard)
	if err != nil {
		return fmt.Errorf("upcard: %w", err)
	}

	s, err := solver.New(r, log.Logger)
	if err != nil {
		return err
	}

	st, err := parseHand(s, up, cmd.Hand)
	if err != nil {
		return err
	}
	if cmd.NoDouble {
		st.DoubleAllowed = false
	}
	if cmd.Splits != nil {
		if st.SplitsRemaining == 0 && *cmd.Splits > 0 {
			return fmt.Errorf("hand %q is not a pair", cmd.Hand)
		}
		if *cmd.Splits < 0 || *cmd.Splits > r.MaxSplits {
			return fmt.Errorf("splits must be between 0 and %d", r.MaxSplits)
		}
		st.SplitsRemaining = *cmd.Splits
	}

	ev := s.Evaluate(st)
	s.LogStats("evaluated hand")

	fmt.Printf("%s vs %s\n\n", st.Hand, up)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "action\texpected\t")
	for _, a := range solver.Actions {
		opt := ev.Option(a)
		if !opt.Legal {
			fmt.Fprintf(w, "%s\t-\t\n", a)
			continue
		}
		marker := ""
		if a == ev.Best.Action {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%+.6f\t%s\n", a, opt.EV, marker)
	}
	return w.Flush()
}

// parseHand accepts a hard total such as "16" or two cards such as "A7",
// "8,8", "88" or "T6". Digits that do not form a total in 4..21 are read as
// two cards. Two cards form a fresh hand that may double and, when the
// ranks match, split.
func parseHand(s *solver.Solver, up cards.Rank, input string) (solver.PlayerState, error) {
	text := strings.ToUpper(strings.NewReplacer(",", "", " ", "").Replace(input))

	if !strings.Contains(input, ",") {
		if total, err := strconv.Atoi(text); err == nil && total >= 4 && total <= 21 {
			return solver.PlayerState{Upcard: up, Hand: solver.Hand{Total: total}, DoubleAllowed: true}, nil
		}
	}

	if len(text) != 2 {
		return solver.PlayerState{}, fmt.Errorf("hand %q: expected a total in 4..21 or two cards", input)
	}
	first, err := cards.ParseRank(text[:1])
	if err != nil {
		return solver.PlayerState{}, fmt.Errorf("hand %q: %w", input, err)
	}
	second, err := cards.ParseRank(text[1:])
	if err != nil {
		return solver.PlayerState{}, fmt.Errorf("hand %q: %w", input, err)
	}
	return s.InitialState(up, first, second), nil
}
