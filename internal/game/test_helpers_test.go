package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

var assertErr = errors.New("provider failed")

// quietLogger keeps test output clean
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// stackedDeck returns a factory whose decks deal the given cards first,
// in order: player, dealer, player, dealer, then draws.
func stackedDeck(t *testing.T, cards string) DeckFactory {
	t.Helper()
	top := deck.MustParseCards(cards)
	return func(rng *rand.Rand) *deck.Deck {
		d := ShuffledDeck(rng)
		if err := d.Stack(top...); err != nil {
			t.Fatalf("stack %q: %v", cards, err)
		}
		return d
	}
}

// eventRecorder captures published events for assertions
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *eventRecorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

// scriptedDecisions replays a fixed list of actions, then stands
type scriptedDecisions struct {
	actions []Action
	views   []PlayerView
}

func (s *scriptedDecisions) Decide(view PlayerView) (Action, error) {
	s.views = append(s.views, view)
	if len(s.actions) == 0 {
		return Stand, nil
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a, nil
}

// flatBet always bets the same amount
func flatBet(amount int) BetProvider {
	return BetFunc(func(int) (int, error) { return amount, nil })
}

type testEngineOption func(*testEngineConfig)

type testEngineConfig struct {
	chips int
	seed  int64
	cards string
	rules Rules
}

func withChips(chips int) testEngineOption {
	return func(c *testEngineConfig) { c.chips = chips }
}

func withCards(cards string) testEngineOption {
	return func(c *testEngineConfig) { c.cards = cards }
}

func withSeed(seed int64) testEngineOption {
	return func(c *testEngineConfig) { c.seed = seed }
}

func withRules(rules Rules) testEngineOption {
	return func(c *testEngineConfig) { c.rules = rules }
}

// newTestEngine builds an engine with a mock clock, sequential round ids and
// an event recorder subscribed to its bus
func newTestEngine(t *testing.T, opts ...testEngineOption) (*Engine, *eventRecorder, *quartz.Mock) {
	t.Helper()
	cfg := &testEngineConfig{
		chips: DefaultStartingChips,
		seed:  42,
		rules: DefaultRules(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	n := 0
	engineOpts := []Option{
		WithClock(clock),
		WithLogger(quietLogger()),
		WithRules(cfg.rules),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("round-%d", n)
		}),
	}
	if cfg.cards != "" {
		engineOpts = append(engineOpts, WithDeckFactory(stackedDeck(t, cfg.cards)))
	}

	e := NewEngine(NewLedger(cfg.chips), randutil.New(cfg.seed), engineOpts...)
	rec := &eventRecorder{}
	e.EventBus().Subscribe(rec)
	return e, rec, clock
}
