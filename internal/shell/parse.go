package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/game"
)

// ErrQuit is returned by a UI when the player asks to leave the table
var ErrQuit = errors.New("player quit")

// ErrInvalidAnswer reports input that is neither yes nor no
var ErrInvalidAnswer = errors.New("answer Y or N")

func isQuit(s string) bool {
	return s == "q" || s == "quit" || s == "exit"
}

// ParseBet reads a whole number of chips. Range checks are left to the
// ledger so the rejection reasons stay in one place.
func ParseBet(input string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if isQuit(s) {
		return 0, ErrQuit
	}
	s = strings.TrimPrefix(s, "$")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", game.ErrInvalidBet, strings.TrimSpace(input))
	}
	return n, nil
}

// ParseAction reads hit or stand, accepting h/hit and s/stand in any case
func ParseAction(input string) (game.Action, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch {
	case s == "h" || s == "hit":
		return game.Hit, nil
	case s == "s" || s == "stand":
		return game.Stand, nil
	case isQuit(s):
		return 0, ErrQuit
	default:
		return 0, fmt.Errorf("%w: %q, press H to hit or S to stand", game.ErrInvalidDecision, strings.TrimSpace(input))
	}
}

// ParseYesNo reads a play-again answer
func ParseYesNo(input string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	switch {
	case s == "y" || s == "yes":
		return true, nil
	case s == "n" || s == "no":
		return false, nil
	case isQuit(s):
		return false, ErrQuit
	default:
		return false, ErrInvalidAnswer
	}
}
