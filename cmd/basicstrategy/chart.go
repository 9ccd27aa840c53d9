package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"

	"github.com/lox/basicstrategy/internal/chart"
	"github.com/lox/basicstrategy/internal/report"
	"github.com/lox/basicstrategy/internal/rules"
)

type ChartCmd struct {
	Extended bool   `short:"x" help:"two-character codes: the second is the play when doubling is not allowed"`
	JSON     string `name:"json" help:"also write the chart as a JSON report to this path"`
	From     string `help:"render a saved JSON report instead of solving" type:"existingfile"`
}

func (cmd *ChartCmd) Run(ctx context.Context, r rules.Rules) error {
	if cmd.From != "" {
		if cmd.JSON != "" {
			return errors.New("--from and --json cannot be combined")
		}
		return renderReport(os.Stdout, cmd.From)
	}

	clock := quartz.NewReal()
	c, err := chart.Build(ctx, r, chart.Options{
		Workers: cli.Workers,
		Logger:  log.Logger,
		Clock:   clock,
	})
	if err != nil {
		return err
	}

	if err := renderChart(os.Stdout, c, cmd.Extended); err != nil {
		return err
	}

	if cmd.JSON != "" {
		if err := report.New(c, cmd.Extended, clock).Save(cmd.JSON); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		log.Info().Str("path", cmd.JSON).Msg("wrote strategy report")
	}
	return nil
}

// renderReport prints a saved report with the codes it was saved with.
func renderReport(w io.Writer, path string) error {
	rep, err := report.Load(path)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}
	c, err := rep.Chart()
	if err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}
	log.Debug().Time("generated_at", rep.GeneratedAt).Str("path", path).Msg("loaded strategy report")
	return renderChart(w, c, rep.Extended)
}

func renderChart(w io.Writer, c *chart.Chart, extended bool) error {
	style := chart.ColorStyle(extended)
	if cli.NoColor {
		style = chart.Style{Extended: extended}
	}
	fmt.Fprintf(w, "Rules: %s\n\n", c.Rules)
	if err := chart.Render(w, c, style); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
