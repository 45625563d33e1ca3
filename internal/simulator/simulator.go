package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions    int        // Independent sessions, each with a fresh ledger
	Rounds      int        // Maximum rounds per session
	Strategy    string     // Decision strategy name, see strategy.New
	Bet         int        // Flat bet per round
	BetStrategy string     // Bet sizing, see strategy.NewBet
	Seed        int64      // Base seed; each session derives its own
	Rules       game.Rules // Table rules
	Parallelism int        // Concurrent sessions, 0 means GOMAXPROCS
	Logger      *log.Logger
	Clock       quartz.Clock
}

// SessionResult summarises one session
type SessionResult struct {
	Index        int
	Seed         int64
	Rounds       int
	FinalBalance int
	Bankrupt     bool
}

// Result is the outcome of a simulation run
type Result struct {
	Config   Config
	Stats    *statistics.Statistics
	Sessions []SessionResult
	Elapsed  time.Duration
}

// Bankruptcies counts sessions that ran out of chips
func (r *Result) Bankruptcies() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Bankrupt {
			n++
		}
	}
	return n
}

// Simulator runs blackjack sessions with an automated player
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Parallelism <= 0 {
		config.Parallelism = runtime.GOMAXPROCS(0)
	}
	if config.BetStrategy == "" {
		config.BetStrategy = strategy.BetFlat
	}
	if config.Rules == (game.Rules{}) {
		config.Rules = game.DefaultRules()
	}
	return &Simulator{config: config}
}

// Validate checks the configuration before running
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Bet <= 0 {
		return fmt.Errorf("bet must be positive, got %d", c.Bet)
	}
	if _, err := strategy.New(c.Strategy, nil); err != nil {
		return err
	}
	if _, err := strategy.NewBet(c.BetStrategy, c.Bet); err != nil {
		return err
	}
	return c.Rules.Validate()
}

// Run plays every session and returns merged statistics. Sessions run in
// parallel but results are merged in session order, so a seed always
// produces the same report.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	start := s.config.Clock.Now()
	s.config.Logger.Info("Starting simulation",
		"sessions", s.config.Sessions,
		"rounds", s.config.Rounds,
		"strategy", s.config.Strategy,
		"bets", s.config.BetStrategy,
		"seed", s.config.Seed)

	perSession := make([]*statistics.Statistics, s.config.Sessions)
	sessions := make([]SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)

	for i := 0; i < s.config.Sessions; i++ {
		g.Go(func() error {
			stats, res, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, res.Seed, err)
			}
			perSession[i] = stats
			sessions[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for _, ps := range perSession {
		stats.Merge(ps)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := &Result{
		Config:   s.config,
		Stats:    stats,
		Sessions: sessions,
		Elapsed:  s.config.Clock.Since(start),
	}
	s.config.Logger.Info("Simulation complete",
		"rounds", stats.Rounds,
		"mean", fmt.Sprintf("%.4f", stats.Mean()),
		"bankruptcies", result.Bankruptcies(),
		"elapsed", result.Elapsed)
	return result, nil
}

// playSession plays one ledger's worth of rounds until the round limit or
// the player runs out of chips
func (s *Simulator) playSession(ctx context.Context, index int) (*statistics.Statistics, SessionResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	res := SessionResult{Index: index, Seed: seed}
	rng := randutil.New(seed)

	decisions, err := strategy.New(s.config.Strategy, rng)
	if err != nil {
		return nil, res, err
	}
	bets, err := strategy.NewBet(s.config.BetStrategy, s.config.Bet)
	if err != nil {
		return nil, res, err
	}

	engine := game.NewEngine(game.NewLedger(s.config.Rules.StartingChips), rng,
		game.WithRules(s.config.Rules),
		game.WithClock(s.config.Clock),
		game.WithLogger(s.config.Logger.With("session", index)),
		game.WithIDGenerator(gameid.NewGenerator(randutil.Entropy(seed)).Generate))

	stats := statistics.New()
	for res.Rounds < s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}

		rr, err := engine.PlayRound(bets, decisions)
		if errors.Is(err, game.ErrBankrupt) {
			res.Bankrupt = true
			break
		}
		if err != nil {
			return nil, res, err
		}

		stats.Add(statistics.FromResult(rr, seed))
		res.Rounds++
	}

	res.FinalBalance = engine.Ledger().Total()
	s.config.Logger.Debug("Session complete",
		"session", index,
		"rounds", res.Rounds,
		"balance", res.FinalBalance,
		"bankrupt", res.Bankrupt)
	return stats, res, nil
}
