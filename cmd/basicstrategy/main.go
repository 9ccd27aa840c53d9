package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/basicstrategy/internal/rules"
)

var cli struct {
	Debug   bool   `help:"enable debug logging"`
	Rules   string `help:"path to an HCL rules file" type:"existingfile"`
	Preset  string `help:"rule preset when no rules file is given (standard, hole-card, european)" default:"standard"`
	NoColor bool   `help:"disable coloured output"`
	Workers int    `help:"concurrent upcard columns (0 uses GOMAXPROCS)" default:"0"`

	Chart ChartCmd `cmd:"" default:"withargs" help:"print the basic strategy chart and expected outcome"`
	Edge  EdgeCmd  `cmd:"" help:"print the expected return of optimal play"`
	Eval  EvalCmd  `cmd:"" help:"show the value of every action for one hand"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("basicstrategy"),
		kong.Description("Infinite-deck blackjack basic strategy solver"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)
	if cli.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	r, err := loadRules()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rules")
	}
	log.Debug().Str("rules", r.String()).Msg("loaded rules")

	switch ctx.Command() {
	case "chart":
		if err := cli.Chart.Run(context.Background(), r); err != nil {
			log.Fatal().Err(err).Msg("chart failed")
		}
	case "edge":
		if err := cli.Edge.Run(context.Background(), r); err != nil {
			log.Fatal().Err(err).Msg("edge calculation failed")
		}
	case "eval":
		if err := cli.Eval.Run(r); err != nil {
			log.Fatal().Err(err).Msg("evaluation failed")
		}
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func loadRules() (rules.Rules, error) {
	if cli.Rules != "" {
		return rules.LoadFile(cli.Rules)
	}
	return rules.Preset(cli.Preset)
}
