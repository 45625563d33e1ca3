package game

// Outcome is the result of a settled round from the player's point of view
type Outcome int

const (
	NoOutcome Outcome = iota
	PlayerBust
	DealerBust
	PlayerWin
	DealerWin
	Push
)

// String returns the outcome tag
func (o Outcome) String() string {
	switch o {
	case PlayerBust:
		return "player_bust"
	case DealerBust:
		return "dealer_bust"
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	case Push:
		return "push"
	default:
		return "none"
	}
}

// IsWin reports whether the player collects the bet
func (o Outcome) IsWin() bool {
	return o == PlayerWin || o == DealerBust
}

// IsLoss reports whether the player forfeits the bet
func (o Outcome) IsLoss() bool {
	return o == PlayerBust || o == DealerWin
}

// Delta returns the balance change the outcome applies to a bet
func (o Outcome) Delta(bet int) int {
	switch {
	case o.IsWin():
		return bet
	case o.IsLoss():
		return -bet
	default:
		return 0
	}
}

// DetermineOutcome compares final hand values. A player bust is checked
// first, so it loses even if the dealer would also have busted.
func DetermineOutcome(player, dealer int) Outcome {
	switch {
	case player > Limit:
		return PlayerBust
	case dealer > Limit:
		return DealerBust
	case player > dealer:
		return PlayerWin
	case dealer > player:
		return DealerWin
	default:
		return Push
	}
}
