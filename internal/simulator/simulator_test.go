package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		Sessions: 4,
		Rounds:   100,
		Strategy: strategy.NameBasic,
		Bet:      10,
		Seed:     12345,
		Rules:    game.DefaultRules(),
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
		Clock:    quartz.NewMock(t),
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Sessions: 1, Rounds: 1, Bet: 1, Strategy: "basic"})
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
	assert.Positive(t, sim.config.Parallelism)
	assert.Equal(t, game.DefaultRules(), sim.config.Rules)
	assert.Equal(t, strategy.BetFlat, sim.config.BetStrategy)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }},
		{"no rounds", func(c *Config) { c.Rounds = 0 }},
		{"no bet", func(c *Config) { c.Bet = 0 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "card-counter" }},
		{"unknown bet strategy", func(c *Config) { c.BetStrategy = "martingale" }},
		{"bad bet share", func(c *Config) { c.BetStrategy = "fraction:2" }},
		{"bad rules", func(c *Config) { c.Rules.DealerStandsOn = 30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.modify(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	res, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 400, res.Stats.Rounds, "a 500 chip ledger survives 100 rounds of 10 chip bets")
	require.Len(t, res.Sessions, 4)
	for i, s := range res.Sessions {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, 100, s.Rounds)
		assert.False(t, s.Bankrupt)
	}
	require.NoError(t, res.Stats.Validate())

	total := 0
	for _, s := range res.Sessions {
		total += s.FinalBalance - game.DefaultStartingChips
	}
	assert.Equal(t, res.Stats.NetChips, total, "statistics agree with ledgers")
}

func TestRunIsDeterministic(t *testing.T) {
	serial := testConfig(t)
	serial.Parallelism = 1
	parallel := testConfig(t)
	parallel.Parallelism = 4

	a, err := New(serial).Run(context.Background())
	require.NoError(t, err)
	b, err := New(parallel).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Values, b.Stats.Values)
	assert.Equal(t, a.Stats.Outcomes, b.Stats.Outcomes)
	assert.Equal(t, a.Sessions, b.Sessions)

	other := testConfig(t)
	other.Seed = 54321
	c, err := New(other).Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a.Stats.Values, c.Stats.Values)
}

func TestRunBankruptcy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rules.StartingChips = 10
	cfg.Bet = 10
	cfg.Rounds = 1000

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Sessions, res.Bankruptcies())
	for _, s := range res.Sessions {
		assert.True(t, s.Bankrupt)
		assert.Equal(t, 0, s.FinalBalance)
		assert.Less(t, s.Rounds, cfg.Rounds)
	}
}

func TestRunFractionBets(t *testing.T) {
	cfg := testConfig(t)
	cfg.BetStrategy = "fraction:0.1"

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, res.Stats.Validate())

	// a tenth of a 500 chip balance is 50, far above the flat bet of 10
	assert.Greater(t, res.Stats.Wagered, cfg.Sessions*cfg.Rounds*cfg.Bet)

	flat, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Sessions*cfg.Rounds*cfg.Bet, flat.Stats.Wagered)

	report := NewReport(res)
	assert.Equal(t, "fraction:0.1", report.BetStrategy)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(t)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunElapsedUsesClock(t *testing.T) {
	cfg := testConfig(t)
	clock := quartz.NewMock(t)
	cfg.Clock = clock
	cfg.Sessions = 1
	cfg.Rounds = 1

	res, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), res.Elapsed, "mock clock does not move on its own")
}

func TestReport(t *testing.T) {
	res, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(file, res))

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "basic", report.Strategy)
	assert.Equal(t, int64(12345), report.Seed)
	assert.Equal(t, 400, report.RoundsPlayed)
	assert.Equal(t, res.Stats.NetChips, report.NetChips)

	sum := 0
	for _, n := range report.Outcomes {
		sum += n
	}
	assert.Equal(t, 400, sum)
	assert.Contains(t, report.Outcomes, "dealer_bust")
	assert.Equal(t, strategy.BetFlat, report.BetStrategy)
	assert.Equal(t, res.Stats.PlayerHitRate(), report.PlayerHitRate)
	assert.Equal(t, res.Stats.DealerDrawRate(), report.DealerDrawRate)
	assert.Positive(t, report.DealerDrawRate)
}

func TestPrintSummary(t *testing.T) {
	res, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "basic strategy")
	assert.Contains(t, out, "Rounds played: 400")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "player_bust:")
	assert.Contains(t, out, "flat bets (base 10)")
	assert.Contains(t, out, "Player hit at least once:")
	assert.Contains(t, out, "Dealer drew when played out:")
}
