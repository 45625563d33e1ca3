package strategy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownBetStrategy is returned by NewBet for an unrecognised bet spec
var ErrUnknownBetStrategy = errors.New("unknown bet strategy")

// BetFlat is the default bet strategy name
const BetFlat = "flat"

var (
	_ game.BetProvider = FlatBet{}
	_ game.BetProvider = Fraction{}
)

// FlatBet wagers the same amount every round, or the whole balance once the
// balance drops below it
type FlatBet struct {
	Amount int
}

// Bet implements game.BetProvider
func (f FlatBet) Bet(balance int) (int, error) {
	return min(f.Amount, balance), nil
}

// Fraction wagers a share of the current balance, at least one chip
type Fraction struct {
	Share float64
}

// Bet implements game.BetProvider
func (f Fraction) Bet(balance int) (int, error) {
	amount := int(float64(balance) * f.Share)
	return max(1, min(amount, balance)), nil
}

// NewBet returns the bet provider for spec: "flat" (or empty) wagers amount
// every round, "fraction:S" wagers share S of the balance with 0 < S <= 1.
func NewBet(spec string, amount int) (game.BetProvider, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" || spec == BetFlat {
		return FlatBet{Amount: amount}, nil
	}

	if rest, ok := strings.CutPrefix(spec, "fraction:"); ok {
		share, err := strconv.ParseFloat(rest, 64)
		if err != nil || share <= 0 || share > 1 {
			return nil, fmt.Errorf("%w: %q needs a share in (0, 1]", ErrUnknownBetStrategy, spec)
		}
		return Fraction{Share: share}, nil
	}

	return nil, fmt.Errorf("%w: %q (available: flat, fraction:S)", ErrUnknownBetStrategy, spec)
}
