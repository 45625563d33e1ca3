package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult represents the outcome of a single round from the player's side
type RoundResult struct {
	Net         int          // Chips won (+) or lost (-)
	Bet         int          // Chips wagered
	Outcome     game.Outcome // How the round ended
	PlayerValue int          // Final player total
	DealerValue int          // Final dealer total
	PlayerCards int          // Cards in the player's final hand
	DealerCards int          // Cards in the dealer's final hand
	Seed        int64        // Session seed, for replay
}

// FromResult converts an engine round result
func FromResult(r *game.RoundResult, seed int64) RoundResult {
	return RoundResult{
		Net:         r.Delta,
		Bet:         r.Bet,
		Outcome:     r.Outcome,
		PlayerValue: r.PlayerValue,
		DealerValue: r.DealerValue,
		PlayerCards: len(r.PlayerCards),
		DealerCards: len(r.DealerCards),
		Seed:        seed,
	}
}

// Statistics tracks simulation results. Mean and variance are over net units
// per round, where one unit is the round's bet.
type Statistics struct {
	Rounds   int
	SumU     float64
	SumU2    float64   // Sum of squares for variance calculation
	Values   []float64 // All per-round units for median/percentile calculation
	Wagered  int
	NetChips int

	Outcomes map[game.Outcome]int

	// Draw counts, used for bust rates
	PlayerHits   int // Rounds where the player drew beyond two cards
	DealerDraws  int // Rounds where the dealer drew beyond two cards
	DealerPlayed int // Rounds the dealer played out (player did not bust)
}

// New returns empty statistics
func New() *Statistics {
	return &Statistics{Outcomes: make(map[game.Outcome]int)}
}

// Add incorporates a new round result
func (s *Statistics) Add(result RoundResult) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}

	units := 0.0
	if result.Bet > 0 {
		units = float64(result.Net) / float64(result.Bet)
	}
	s.Rounds++
	s.SumU += units
	s.SumU2 += units * units
	s.Values = append(s.Values, units)
	s.Wagered += result.Bet
	s.NetChips += result.Net
	s.Outcomes[result.Outcome]++

	if result.PlayerCards > 2 {
		s.PlayerHits++
	}
	if result.Outcome != game.PlayerBust {
		s.DealerPlayed++
		if result.DealerCards > 2 {
			s.DealerDraws++
		}
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}
	s.Rounds += other.Rounds
	s.SumU += other.SumU
	s.SumU2 += other.SumU2
	s.Values = append(s.Values, other.Values...)
	s.Wagered += other.Wagered
	s.NetChips += other.NetChips
	s.PlayerHits += other.PlayerHits
	s.DealerDraws += other.DealerDraws
	s.DealerPlayed += other.DealerPlayed
	for o, n := range other.Outcomes {
		s.Outcomes[o] += n
	}
}

// Mean returns the mean result in bet units per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumU / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumU2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge is the share of wagered chips the house kept
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.NetChips) / float64(s.Wagered)
}

// Rate returns how often an outcome occurred, from 0 to 1
func (s *Statistics) Rate(o game.Outcome) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Outcomes[o]) / float64(s.Rounds)
}

// Wins counts rounds the player won, including dealer busts
func (s *Statistics) Wins() int {
	return s.Outcomes[game.PlayerWin] + s.Outcomes[game.DealerBust]
}

// Losses counts rounds the player lost, including player busts
func (s *Statistics) Losses() int {
	return s.Outcomes[game.DealerWin] + s.Outcomes[game.PlayerBust]
}

// DealerBustRate is the share of played-out dealer hands that busted
func (s *Statistics) DealerBustRate() float64 {
	if s.DealerPlayed == 0 {
		return 0
	}
	return float64(s.Outcomes[game.DealerBust]) / float64(s.DealerPlayed)
}

// PlayerHitRate is the share of rounds where the player took a card
func (s *Statistics) PlayerHitRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.PlayerHits) / float64(s.Rounds)
}

// DealerDrawRate is the share of played-out dealer hands that drew a card
func (s *Statistics) DealerDrawRate() float64 {
	if s.DealerPlayed == 0 {
		return 0
	}
	return float64(s.DealerDraws) / float64(s.DealerPlayed)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the accounting is consistent
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	total := 0
	for _, n := range s.Outcomes {
		total += n
	}
	if total != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds count (%d)", total, s.Rounds)
	}
	if n := s.Outcomes[game.NoOutcome]; n > 0 {
		return fmt.Errorf("%d rounds recorded without an outcome", n)
	}

	if s.DealerPlayed != s.Rounds-s.Outcomes[game.PlayerBust] {
		return fmt.Errorf("dealer played %d rounds, want %d", s.DealerPlayed, s.Rounds-s.Outcomes[game.PlayerBust])
	}

	if s.NetChips > s.Wagered || -s.NetChips > s.Wagered {
		return fmt.Errorf("net chips (%d) exceed chips wagered (%d)", s.NetChips, s.Wagered)
	}

	return nil
}
