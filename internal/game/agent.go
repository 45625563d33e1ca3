package game

import "github.com/lox/blackjack/internal/deck"

// Action is a player decision during PLAYER_TURN
type Action int

const (
	Hit Action = iota + 1
	Stand
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// PlayerView is what the player is allowed to see while deciding: their own
// cards and the dealer's upcard. The dealer's first card stays hidden.
type PlayerView struct {
	RoundID      string
	Cards        []deck.Card
	Value        int
	Soft         bool
	DealerUpcard deck.Card
	Bet          int
	Balance      int
}

// DecisionProvider supplies hit/stand decisions. Returning an error that
// wraps ErrInvalidDecision asks the engine to call again; any other error
// aborts the round.
type DecisionProvider interface {
	Decide(view PlayerView) (Action, error)
}

// BetProvider supplies the wager for a round. Returning an error that wraps
// ErrInvalidBet asks the engine to call again; any other error aborts the
// round.
type BetProvider interface {
	Bet(balance int) (int, error)
}

// DecisionFunc adapts a function to DecisionProvider
type DecisionFunc func(view PlayerView) (Action, error)

// Decide calls f
func (f DecisionFunc) Decide(view PlayerView) (Action, error) {
	return f(view)
}

// BetFunc adapts a function to BetProvider
type BetFunc func(balance int) (int, error)

// Bet calls f
func (f BetFunc) Bet(balance int) (int, error) {
	return f(balance)
}
