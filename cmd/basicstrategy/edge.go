package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/lox/basicstrategy/internal/cards"
	"github.com/lox/basicstrategy/internal/edge"
	"github.com/lox/basicstrategy/internal/rules"
)

type EdgeCmd struct {
	Summary bool `help:"print only the aggregate figures"`
}

func (cmd *EdgeCmd) Run(ctx context.Context, r rules.Rules) error {
	res, err := edge.Calculate(ctx, r, edge.Options{Workers: cli.Workers, Logger: log.Logger})
	if err != nil {
		return err
	}

	fmt.Printf("Rules: %s\n", r)
	fmt.Printf("Expected outcome: %+.6f (%+.3f%%)\n", res.ExpectedReturn, res.ExpectedReturn*100)
	fmt.Printf("Player naturals: %.4f%%\n", res.NaturalFrequency*100)

	if cmd.Summary {
		return nil
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "upcard\texpected")
	for _, up := range cards.Upcards {
		fmt.Fprintf(w, "%s\t%+.6f\n", up, res.Upcard(up))
	}
	return w.Flush()
}
