// Package strategy provides automated players for the engine: decision
// providers that choose hit or stand, and bet providers that size wagers.
package strategy

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownStrategy is returned by New for an unrecognised name
var ErrUnknownStrategy = errors.New("unknown strategy")

// Built-in strategy names accepted by New
const (
	NameBasic  = "basic"
	NameDealer = "dealer"
	NameRandom = "random"
	NameNoBust = "no-bust"
)

var constructors = map[string]func(rng *rand.Rand) game.DecisionProvider{
	NameBasic:  func(*rand.Rand) game.DecisionProvider { return Basic{} },
	NameDealer: func(*rand.Rand) game.DecisionProvider { return StandOn{Threshold: game.DefaultDealerStandsOn} },
	NameRandom: func(rng *rand.Rand) game.DecisionProvider { return NewRandom(rng, 0.5) },
	NameNoBust: func(*rand.Rand) game.DecisionProvider { return StandOn{Threshold: 12} },
}

// Names lists the built-in strategies in sorted order
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named decision provider. Besides the built-in names it
// accepts "stand-on-N" for a fixed threshold. Random strategies draw from
// rng, which must not be shared across goroutines.
func New(name string, rng *rand.Rand) (game.DecisionProvider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if ctor, ok := constructors[name]; ok {
		return ctor(rng), nil
	}

	if rest, ok := strings.CutPrefix(name, "stand-on-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 2 || n > game.Limit {
			return nil, fmt.Errorf("%w: %q needs a threshold between 2 and %d", ErrUnknownStrategy, name, game.Limit)
		}
		return StandOn{Threshold: n}, nil
	}

	return nil, fmt.Errorf("%w: %q (available: %s, stand-on-N)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
}
