package deck

import "testing"

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "two letter forms",
			input: "As Kh Qc Jd Ts",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
				{Suit: Clubs, Rank: Queen},
				{Suit: Diamonds, Rank: Jack},
				{Suit: Spades, Rank: Ten},
			},
		},
		{
			name:  "numeric ten and commas",
			input: "10h,9d, 2c",
			expected: []Card{
				{Suit: Hearts, Rank: Ten},
				{Suit: Diamonds, Rank: Nine},
				{Suit: Clubs, Rank: Two},
			},
		},
		{
			name:  "case insensitive",
			input: "aS kH",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: King},
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "invalid rank",
			input:   "Xs",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "100s",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d cards, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("card %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRankValues(t *testing.T) {
	expected := map[Rank]int{
		Ace: 11, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
		Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
	}
	for rank, want := range expected {
		if got := rank.Value(); got != want {
			t.Errorf("%s: got %d, want %d", rank.Name(), got, want)
		}
	}
	if got := Rank(0).Value(); got != 0 {
		t.Errorf("invalid rank should have no value, got %d", got)
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		str  string
		name string
	}{
		{NewCard(Spades, Ace), "A♠", "Ace of Spades"},
		{NewCard(Hearts, Ten), "10♥", "Ten of Hearts"},
		{NewCard(Diamonds, Seven), "7♦", "Seven of Diamonds"},
		{NewCard(Clubs, Queen), "Q♣", "Queen of Clubs"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.card.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
	}
}

func TestCardColour(t *testing.T) {
	if !NewCard(Hearts, Two).IsRed() || !NewCard(Diamonds, Two).IsRed() {
		t.Error("hearts and diamonds should be red")
	}
	if NewCard(Spades, Two).IsRed() || NewCard(Clubs, Two).IsRed() {
		t.Error("spades and clubs should be black")
	}
}
