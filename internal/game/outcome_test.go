package game

import "testing"

func TestDetermineOutcome(t *testing.T) {
	tests := []struct {
		name   string
		player int
		dealer int
		want   Outcome
	}{
		{"player higher", 20, 19, PlayerWin},
		{"dealer higher", 18, 20, DealerWin},
		{"equal", 18, 18, Push},
		{"both twenty one", 21, 21, Push},
		{"player bust", 22, 18, PlayerBust},
		{"dealer bust", 12, 24, DealerBust},
		{"both bust player loses", 23, 25, PlayerBust},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineOutcome(tt.player, tt.dealer); got != tt.want {
				t.Errorf("DetermineOutcome(%d, %d) = %s, want %s", tt.player, tt.dealer, got, tt.want)
			}
		})
	}
}

func TestOutcomeDelta(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{PlayerWin, 25},
		{DealerBust, 25},
		{PlayerBust, -25},
		{DealerWin, -25},
		{Push, 0},
		{NoOutcome, 0},
	}
	for _, tt := range tests {
		if got := tt.outcome.Delta(25); got != tt.want {
			t.Errorf("%s.Delta(25) = %d, want %d", tt.outcome, got, tt.want)
		}
	}
}
