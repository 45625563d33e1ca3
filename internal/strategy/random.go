package strategy

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/game"
)

// Random hits with a fixed probability and always stands on 21
type Random struct {
	rng     *rand.Rand
	hitRate float64
}

// NewRandom creates a random strategy. A nil rng uses the global source.
func NewRandom(rng *rand.Rand, hitRate float64) *Random {
	return &Random{rng: rng, hitRate: hitRate}
}

// Decide implements game.DecisionProvider
func (r *Random) Decide(view game.PlayerView) (game.Action, error) {
	if view.Value >= game.Limit {
		return game.Stand, nil
	}
	if r.float() < r.hitRate {
		return game.Hit, nil
	}
	return game.Stand, nil
}

func (r *Random) float() float64 {
	if r.rng == nil {
		return rand.Float64()
	}
	return r.rng.Float64()
}
