package main

import (
	"fmt"
	"os"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Sessions int    `short:"n" help:"Independent sessions (overrides config)"`
	Rounds   int    `short:"r" help:"Rounds per session (overrides config)"`
	Strategy string `short:"s" help:"Decision strategy: ${strategies}, or stand-on-N"`
	Bet      int    `help:"Flat bet per round (overrides config)"`
	Bets     string `name:"bet-strategy" help:"Bet sizing: flat, or fraction:S for share S of the balance (overrides config)"`
	Parallel int    `short:"p" help:"Concurrent sessions (default all CPUs)"`
	StandOn  int    `name:"stand-on" help:"Dealer stands on this total or more (overrides config)"`
	Out      string `short:"o" type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel, g.Debug)
	if err != nil {
		return err
	}

	clock := quartz.NewReal()
	var seedFlag *int64
	if g.Seed != 0 {
		seedFlag = &g.Seed
	}
	seed, _ := randutil.Resolve(seedFlag, clock)

	sim := simulator.New(simulator.Config{
		Sessions:    cfg.Simulation.Sessions,
		Rounds:      cfg.Simulation.Rounds,
		Strategy:    cfg.Simulation.Strategy,
		Bet:         cfg.Simulation.Bet,
		BetStrategy: cfg.Simulation.BetStrategy,
		Seed:        seed,
		Rules:       cfg.GameRules(),
		Parallelism: cfg.Simulation.Parallelism,
		Logger:      logger,
		Clock:       clock,
	})

	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	if err := result.Stats.Validate(); err != nil {
		return fmt.Errorf("inconsistent statistics: %w", err)
	}

	simulator.PrintSummary(os.Stdout, result)

	if c.Out != "" {
		if err := simulator.WriteReport(c.Out, result); err != nil {
			return err
		}
		logger.Info("Wrote report", "file", c.Out)
	}
	return nil
}

// apply overrides config values with any flags given
func (c *SimulateCmd) apply(cfg *config.Config) {
	if c.Sessions != 0 {
		cfg.Simulation.Sessions = c.Sessions
	}
	if c.Rounds != 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if c.Strategy != "" {
		cfg.Simulation.Strategy = c.Strategy
	}
	if c.Bet != 0 {
		cfg.Simulation.Bet = c.Bet
	}
	if c.Bets != "" {
		cfg.Simulation.BetStrategy = c.Bets
	}
	if c.Parallel != 0 {
		cfg.Simulation.Parallelism = c.Parallel
	}
	if c.StandOn != 0 {
		cfg.Rules.DealerStandsOn = c.StandOn
	}
}
