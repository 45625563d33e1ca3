package strategy

import "github.com/lox/blackjack/internal/game"

// StandOn hits below Threshold and stands otherwise. With the dealer's
// threshold it mirrors the house.
type StandOn struct {
	Threshold int
}

// Decide implements game.DecisionProvider
func (s StandOn) Decide(view game.PlayerView) (game.Action, error) {
	if view.Value < s.Threshold {
		return game.Hit, nil
	}
	return game.Stand, nil
}
