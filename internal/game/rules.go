package game

import "fmt"

// Limit is the highest hand value that does not bust
const Limit = 21

const (
	// DefaultDealerStandsOn is the lowest total the dealer stands on
	DefaultDealerStandsOn = 17
	// DefaultStartingChips is the balance a new session starts with
	DefaultStartingChips = 500
)

// Rules holds the tunable game constants
type Rules struct {
	DealerStandsOn int // Dealer draws while below this value
	StartingChips  int // Ledger balance at session start
}

// DefaultRules returns the standard table rules
func DefaultRules() Rules {
	return Rules{
		DealerStandsOn: DefaultDealerStandsOn,
		StartingChips:  DefaultStartingChips,
	}
}

// Validate checks the rules are playable
func (r Rules) Validate() error {
	if r.DealerStandsOn < 2 || r.DealerStandsOn > Limit {
		return fmt.Errorf("dealer stand threshold must be between 2 and %d, got %d", Limit, r.DealerStandsOn)
	}
	if r.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive, got %d", r.StartingChips)
	}
	return nil
}
