package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/gameid"
)

// DeckFactory builds the deck for a new round. The returned deck must hold
// all 52 cards, already shuffled.
type DeckFactory func(rng *rand.Rand) *deck.Deck

// ShuffledDeck is the default DeckFactory
func ShuffledDeck(rng *rand.Rand) *deck.Deck {
	d := deck.New(rng)
	d.Shuffle()
	return d
}

// Engine creates and drives rounds against one session ledger. It is not
// safe for concurrent use.
type Engine struct {
	ledger  *Ledger
	rules   Rules
	rng     *rand.Rand
	clock   quartz.Clock
	logger  *log.Logger
	bus     EventBus
	newDeck DeckFactory
	newID   func() string
	rounds  int
}

// Option configures an Engine during creation
type Option func(*Engine)

// WithRules overrides the default table rules
func WithRules(rules Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithClock sets the clock used for event timestamps and round durations
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithEventBus sets the bus that round events are published on
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithDeckFactory replaces how each round's deck is built. Tests use it to
// stack decks.
func WithDeckFactory(f DeckFactory) Option {
	return func(e *Engine) { e.newDeck = f }
}

// WithIDGenerator replaces the round id generator
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an engine. The RNG is required so that shuffles are
// explicit and reproducible.
func NewEngine(ledger *Ledger, rng *rand.Rand, opts ...Option) *Engine {
	if ledger == nil {
		panic("ledger is required")
	}
	if rng == nil {
		panic("rng is required for engine creation")
	}

	e := &Engine{
		ledger:  ledger,
		rules:   DefaultRules(),
		rng:     rng,
		clock:   quartz.NewReal(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		bus:     NewEventBus(),
		newDeck: ShuffledDeck,
		newID:   gameid.Generate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ledger returns the session ledger
func (e *Engine) Ledger() *Ledger { return e.ledger }

// Rules returns the table rules
func (e *Engine) Rules() Rules { return e.rules }

// EventBus returns the bus for subscribing to round events
func (e *Engine) EventBus() EventBus { return e.bus }

// RoundsPlayed returns how many rounds this engine has started
func (e *Engine) RoundsPlayed() int { return e.rounds }

// NewRound runs DEALING on a fresh deck and returns the round in BETTING
func (e *Engine) NewRound() (*Round, error) {
	if e.ledger.HasOpenBet() {
		return nil, fmt.Errorf("cannot start round: %w", ErrBetOpen)
	}

	e.rounds++
	r := &Round{
		id:        e.newID(),
		rules:     e.rules,
		deck:      e.newDeck(e.rng),
		player:    NewHand(),
		dealer:    NewHand(),
		ledger:    e.ledger,
		state:     StateDealing,
		clock:     e.clock,
		logger:    e.logger,
		bus:       e.bus,
		startedAt: e.clock.Now(),
	}

	if err := r.deal(); err != nil {
		return nil, err
	}
	return r, nil
}

// PlayRound plays one full round. Bets and decisions are requested until
// valid; other provider errors abort the round and are returned.
func (e *Engine) PlayRound(bets BetProvider, decisions DecisionProvider) (*RoundResult, error) {
	if e.ledger.Total() <= 0 {
		return nil, ErrBankrupt
	}

	round, err := e.NewRound()
	if err != nil {
		return nil, err
	}

	for round.State() == StateBetting {
		amount, err := bets.Bet(e.ledger.Total())
		if err != nil {
			if errors.Is(err, ErrInvalidBet) {
				round.RejectBet(amount, err)
				continue
			}
			return nil, round.Abort(err)
		}
		if err := round.PlaceBet(amount); err != nil && !errors.Is(err, ErrInvalidBet) {
			return nil, round.Abort(err)
		}
	}

	for round.State() == StatePlayerTurn {
		action, err := decisions.Decide(round.View())
		if err != nil {
			if errors.Is(err, ErrInvalidDecision) {
				round.RejectDecision(err)
				continue
			}
			return nil, round.Abort(err)
		}

		switch action {
		case Hit:
			if _, err := round.Hit(); err != nil {
				return nil, err
			}
		case Stand:
			if err := round.Stand(); err != nil {
				return nil, err
			}
		default:
			round.RejectDecision(fmt.Errorf("%w: unknown action %d", ErrInvalidDecision, action))
		}
	}

	if round.State() != StateDone {
		return nil, fmt.Errorf("round %s ended in %s: %w", round.ID(), round.State(), ErrWrongState)
	}

	result := round.Result()
	e.logger.Debug("Round complete",
		"round", result.RoundID,
		"outcome", result.Outcome,
		"bet", result.Bet,
		"balance", result.Balance)
	return result, nil
}
