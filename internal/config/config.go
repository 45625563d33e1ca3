// Package config loads the HCL configuration file shared by the play and
// simulate commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

// Config represents the complete configuration
type Config struct {
	Rules      RulesSettings
	UI         UISettings
	Simulation SimulationSettings
}

// RulesSettings contains the table rules
type RulesSettings struct {
	DealerStandsOn int
	StartingChips  int
}

// UISettings contains interactive play settings
type UISettings struct {
	LogLevel string
	LogFile  string
	Plain    bool // Line-based console instead of the full screen TUI
	NoColor  bool
}

// SimulationSettings contains defaults for the simulate command
type SimulationSettings struct {
	Sessions    int
	Rounds      int
	Strategy    string
	Bet         int
	BetStrategy string
	Parallelism int
}

// file mirrors the HCL layout. Pointers distinguish absent values from zero
// so that an explicit zero is validated rather than replaced.
type file struct {
	Rules      *rulesBlock      `hcl:"rules,block"`
	UI         *uiBlock         `hcl:"ui,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
}

type rulesBlock struct {
	DealerStandsOn *int `hcl:"dealer_stands_on,optional"`
	StartingChips  *int `hcl:"starting_chips,optional"`
}

type uiBlock struct {
	LogLevel *string `hcl:"log_level,optional"`
	LogFile  *string `hcl:"log_file,optional"`
	Plain    *bool   `hcl:"plain,optional"`
	NoColor  *bool   `hcl:"no_color,optional"`
}

type simulationBlock struct {
	Sessions    *int    `hcl:"sessions,optional"`
	Rounds      *int    `hcl:"rounds,optional"`
	Strategy    *string `hcl:"strategy,optional"`
	Bet         *int    `hcl:"bet,optional"`
	BetStrategy *string `hcl:"bet_strategy,optional"`
	Parallelism *int    `hcl:"parallelism,optional"`
}

// Default returns the default configuration
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Rules: RulesSettings{
			DealerStandsOn: rules.DealerStandsOn,
			StartingChips:  rules.StartingChips,
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "blackjack.log",
		},
		Simulation: SimulationSettings{
			Sessions:    8,
			Rounds:      1000,
			Strategy:    strategy.NameBasic,
			Bet:         10,
			BetStrategy: strategy.BetFlat,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults and validates the settings
// every command needs. The simulation block is checked by Validate.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	raw.apply(config)

	if err := config.ValidatePlay(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

func (f *file) apply(c *Config) {
	if r := f.Rules; r != nil {
		set(&c.Rules.DealerStandsOn, r.DealerStandsOn)
		set(&c.Rules.StartingChips, r.StartingChips)
	}
	if u := f.UI; u != nil {
		set(&c.UI.LogLevel, u.LogLevel)
		set(&c.UI.LogFile, u.LogFile)
		set(&c.UI.Plain, u.Plain)
		set(&c.UI.NoColor, u.NoColor)
	}
	if s := f.Simulation; s != nil {
		set(&c.Simulation.Sessions, s.Sessions)
		set(&c.Simulation.Rounds, s.Rounds)
		set(&c.Simulation.Strategy, s.Strategy)
		set(&c.Simulation.Bet, s.Bet)
		set(&c.Simulation.BetStrategy, s.BetStrategy)
		set(&c.Simulation.Parallelism, s.Parallelism)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ValidatePlay validates the rules and UI settings used by interactive play
func (c *Config) ValidatePlay() error {
	if err := c.GameRules().Validate(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}

// Validate validates the whole configuration, simulation block included
func (c *Config) Validate() error {
	if err := c.ValidatePlay(); err != nil {
		return err
	}

	if c.Simulation.Sessions <= 0 {
		return fmt.Errorf("simulation sessions must be positive")
	}
	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation rounds must be positive")
	}
	if c.Simulation.Bet <= 0 {
		return fmt.Errorf("simulation bet must be positive")
	}
	if c.Simulation.Parallelism < 0 {
		return fmt.Errorf("simulation parallelism cannot be negative")
	}
	if _, err := strategy.New(c.Simulation.Strategy, nil); err != nil {
		return err
	}
	if _, err := strategy.NewBet(c.Simulation.BetStrategy, c.Simulation.Bet); err != nil {
		return err
	}

	return nil
}

// GameRules returns the table rules for the engine
func (c *Config) GameRules() game.Rules {
	return game.Rules{
		DealerStandsOn: c.Rules.DealerStandsOn,
		StartingChips:  c.Rules.StartingChips,
	}
}
