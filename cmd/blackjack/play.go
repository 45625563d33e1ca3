package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shell"
	"github.com/lox/blackjack/internal/tui"
	"github.com/muesli/termenv"
)

type PlayCmd struct {
	Chips   int  `help:"Starting chips (overrides config)"`
	StandOn int  `name:"stand-on" help:"Dealer stands on this total or more (overrides config)"`
	Plain   bool `help:"Line-based prompts instead of the full screen table"`
	NoColor bool `name:"no-color" help:"Disable colour output"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := c.loadConfig(g)
	if err != nil {
		return err
	}
	plain := c.Plain || cfg.UI.Plain
	noColor := c.NoColor || cfg.UI.NoColor

	var logOut io.Writer = os.Stderr
	if !plain {
		f, err := shared.OpenLogFile(cfg.UI.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := shared.SetupLogger(logOut, cfg.UI.LogLevel, g.Debug)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	var seedFlag *int64
	if g.Seed != 0 {
		seedFlag = &g.Seed
	}
	seed, rng := randutil.Resolve(seedFlag, clock)

	rules := cfg.GameRules()
	engine := game.NewEngine(game.NewLedger(rules.StartingChips), rng,
		game.WithRules(rules),
		game.WithClock(clock),
		game.WithLogger(logger))
	logger.Info("Starting session", "seed", seed, "chips", rules.StartingChips, "dealer_stands_on", rules.DealerStandsOn)

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	var summary shell.Summary
	if plain {
		ui := console.New(os.Stdin, os.Stdout, console.Options{NoColor: noColor, Logger: logger})
		summary, err = shell.Run(ctx, engine, ui, logger)
	} else {
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		summary, err = tui.Play(ctx, engine, logger)
		if err == nil {
			fmt.Printf("Played %d rounds, finished with %d chips (%+d)\n", summary.Rounds, summary.FinalBalance, summary.Net())
		}
	}
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}
	return nil
}

// loadConfig applies flag overrides and checks the settings play uses. The
// simulation block is not validated here.
func (c *PlayCmd) loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if c.Chips != 0 {
		cfg.Rules.StartingChips = c.Chips
	}
	if c.StandOn != 0 {
		cfg.Rules.DealerStandsOn = c.StandOn
	}
	if err := cfg.ValidatePlay(); err != nil {
		return nil, err
	}
	return cfg, nil
}
