package simulator

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
)

// Report is the JSON form of a simulation result
type Report struct {
	Strategy         string         `json:"strategy"`
	Seed             int64          `json:"seed"`
	Sessions         int            `json:"sessions"`
	RoundsPerSession int            `json:"rounds_per_session"`
	Bet              int            `json:"bet"`
	BetStrategy      string         `json:"bet_strategy"`
	DealerStandsOn   int            `json:"dealer_stands_on"`
	StartingChips    int            `json:"starting_chips"`
	RoundsPlayed     int            `json:"rounds_played"`
	Wagered          int            `json:"wagered"`
	NetChips         int            `json:"net_chips"`
	MeanUnits        float64        `json:"mean_units"`
	StdDev           float64        `json:"stddev"`
	CI95             [2]float64     `json:"ci95"`
	HouseEdge        float64        `json:"house_edge"`
	DealerBustRate   float64        `json:"dealer_bust_rate"`
	PlayerHitRate    float64        `json:"player_hit_rate"`
	DealerDrawRate   float64        `json:"dealer_draw_rate"`
	Outcomes         map[string]int `json:"outcomes"`
	Bankruptcies     int            `json:"bankruptcies"`
	ElapsedMS        int64          `json:"elapsed_ms"`
}

// NewReport builds the JSON report for a result
func NewReport(r *Result) Report {
	low, high := r.Stats.ConfidenceInterval95()
	outcomes := make(map[string]int, len(r.Stats.Outcomes))
	for o, n := range r.Stats.Outcomes {
		outcomes[o.String()] = n
	}
	return Report{
		Strategy:         r.Config.Strategy,
		Seed:             r.Config.Seed,
		Sessions:         r.Config.Sessions,
		RoundsPerSession: r.Config.Rounds,
		Bet:              r.Config.Bet,
		BetStrategy:      r.Config.BetStrategy,
		DealerStandsOn:   r.Config.Rules.DealerStandsOn,
		StartingChips:    r.Config.Rules.StartingChips,
		RoundsPlayed:     r.Stats.Rounds,
		Wagered:          r.Stats.Wagered,
		NetChips:         r.Stats.NetChips,
		MeanUnits:        r.Stats.Mean(),
		StdDev:           r.Stats.StdDev(),
		CI95:             [2]float64{low, high},
		HouseEdge:        r.Stats.HouseEdge(),
		DealerBustRate:   r.Stats.DealerBustRate(),
		PlayerHitRate:    r.Stats.PlayerHitRate(),
		DealerDrawRate:   r.Stats.DealerDrawRate(),
		Outcomes:         outcomes,
		Bankruptcies:     r.Bankruptcies(),
		ElapsedMS:        r.Elapsed.Milliseconds(),
	}
}

// WriteReport writes the JSON report for r to filename atomically
func WriteReport(filename string, r *Result) error {
	if err := fileutil.WriteJSONAtomic(filename, NewReport(r), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// PrintSummary writes a human readable summary of the results
func PrintSummary(w io.Writer, r *Result) {
	if w == nil {
		w = os.Stdout
	}
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS: %s strategy ===\n", r.Config.Strategy)
	fmt.Fprintf(w, "Sessions: %d x up to %d rounds, %s bets (base %d), seed %d\n",
		r.Config.Sessions, r.Config.Rounds, r.Config.BetStrategy, r.Config.Bet, r.Config.Seed)
	fmt.Fprintf(w, "Rounds played: %d in %s\n", stats.Rounds, r.Elapsed.Round(time.Millisecond))

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bets/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bets/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bets\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bets\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bets/round\n", low, high)
	fmt.Fprintf(w, "House edge: %.2f%% of %d chips wagered (net %+d)\n",
		stats.HouseEdge()*100, stats.Wagered, stats.NetChips)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	for _, o := range []game.Outcome{game.PlayerWin, game.DealerBust, game.Push, game.DealerWin, game.PlayerBust} {
		fmt.Fprintf(w, "%-12s %7d (%.1f%%)\n", o.String()+":", stats.Outcomes[o], stats.Rate(o)*100)
	}
	fmt.Fprintf(w, "Dealer bust rate when played out: %.1f%%\n", stats.DealerBustRate()*100)
	fmt.Fprintf(w, "Player hit at least once: %.1f%%\n", stats.PlayerHitRate()*100)
	fmt.Fprintf(w, "Dealer drew when played out: %.1f%%\n", stats.DealerDrawRate()*100)
	fmt.Fprintf(w, "Sessions bankrupt: %d of %d\n", r.Bankruptcies(), len(r.Sessions))
}
