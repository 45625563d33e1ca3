package strategy

import "github.com/lox/blackjack/internal/game"

// Basic plays the hit/stand subset of basic strategy for a single deck game
// with no doubling or splitting.
type Basic struct{}

// Decide implements game.DecisionProvider
func (Basic) Decide(view game.PlayerView) (game.Action, error) {
	up := view.DealerUpcard.Value()

	if view.Soft {
		switch {
		case view.Value >= 19:
			return game.Stand, nil
		case view.Value == 18 && up <= 8:
			return game.Stand, nil
		default:
			return game.Hit, nil
		}
	}

	switch {
	case view.Value >= 17:
		return game.Stand, nil
	case view.Value >= 13:
		return standIf(up >= 2 && up <= 6), nil
	case view.Value == 12:
		return standIf(up >= 4 && up <= 6), nil
	default:
		return game.Hit, nil
	}
}

func standIf(stand bool) game.Action {
	if stand {
		return game.Stand
	}
	return game.Hit
}
