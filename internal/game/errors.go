package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBet means a bet amount was rejected. Recoverable: ask again.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrInsufficientChips means the bet exceeds the balance. It wraps ErrInvalidBet.
	ErrInsufficientChips = fmt.Errorf("%w: insufficient chips", ErrInvalidBet)

	// ErrInvalidDecision means a hit/stand input was not understood. Recoverable: ask again.
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrBankrupt means the ledger has no chips left to wager
	ErrBankrupt = errors.New("no chips left to bet")

	// ErrWrongState means an operation was attempted in a state that does not allow it
	ErrWrongState = errors.New("operation not allowed in current state")

	// ErrBetOpen means a bet is already committed for the active round
	ErrBetOpen = errors.New("bet already placed")

	// ErrNoOpenBet means there is no committed bet to settle or cancel
	ErrNoOpenBet = errors.New("no open bet")
)
