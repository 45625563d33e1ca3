package game

import "fmt"

// Ledger tracks a session's chip balance and the bet committed to the
// active round. It lives for the whole session while rounds come and go.
type Ledger struct {
	total int
	bet   int
	open  bool // A bet is committed and not yet settled
}

// NewLedger creates a ledger with the given starting balance
func NewLedger(startingChips int) *Ledger {
	if startingChips < 0 {
		startingChips = 0
	}
	return &Ledger{total: startingChips}
}

// Total returns the current balance
func (l *Ledger) Total() int {
	return l.total
}

// Bet returns the bet committed to the active round, or 0 if none
func (l *Ledger) Bet() int {
	if !l.open {
		return 0
	}
	return l.bet
}

// HasOpenBet reports whether a bet is waiting to be settled
func (l *Ledger) HasOpenBet() bool {
	return l.open
}

// PlaceBet commits amount for the active round. On error nothing changes.
func (l *Ledger) PlaceBet(amount int) error {
	if l.open {
		return ErrBetOpen
	}
	if amount <= 0 {
		return fmt.Errorf("%w: bet must be positive, got %d", ErrInvalidBet, amount)
	}
	if amount > l.total {
		return fmt.Errorf("%w: bet %d exceeds balance %d", ErrInsufficientChips, amount, l.total)
	}
	l.bet = amount
	l.open = true
	return nil
}

// SettleWin pays the bet to the player
func (l *Ledger) SettleWin() error {
	if !l.open {
		return ErrNoOpenBet
	}
	l.total += l.bet
	l.open = false
	return nil
}

// SettleLoss takes the bet from the player
func (l *Ledger) SettleLoss() error {
	if !l.open {
		return ErrNoOpenBet
	}
	l.total -= l.bet
	l.open = false
	return nil
}

// SettlePush closes the bet with no change to the balance
func (l *Ledger) SettlePush() error {
	if !l.open {
		return ErrNoOpenBet
	}
	l.open = false
	return nil
}

// Settle applies an outcome with exactly one settlement call and returns
// the balance change
func (l *Ledger) Settle(outcome Outcome) (int, error) {
	bet := l.Bet()
	var err error
	switch {
	case outcome.IsWin():
		err = l.SettleWin()
	case outcome.IsLoss():
		err = l.SettleLoss()
	case outcome == Push:
		err = l.SettlePush()
	default:
		return 0, fmt.Errorf("cannot settle outcome %s", outcome)
	}
	if err != nil {
		return 0, err
	}
	return outcome.Delta(bet), nil
}

// CancelBet releases an open bet without settling it, for aborted rounds
func (l *Ledger) CancelBet() error {
	if !l.open {
		return ErrNoOpenBet
	}
	l.bet = 0
	l.open = false
	return nil
}
