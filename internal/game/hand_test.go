package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func handOf(cards string) *Hand {
	h := NewHand()
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
		h.AdjustForAces()
	}
	return h
}

func TestNewHand(t *testing.T) {
	h := NewHand()
	assert.Equal(t, 0, h.Value())
	assert.Equal(t, 0, h.SoftAces())
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.IsBust())
}

func TestHandValues(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		value    int
		softAces int
	}{
		{"face cards", "Ks Qh", 20, 0},
		{"ace and nine", "As 9h", 20, 1},
		{"two aces and nine", "As Ah 9c", 21, 1},
		{"ace king five", "As Kh 5c", 16, 0},
		{"two aces", "As Ah", 12, 1},
		{"four aces", "As Ah Ac Ad", 14, 1},
		{"four aces and seven", "As Ah Ac Ad 7s", 21, 1},
		{"four aces and eight", "As Ah Ac Ad 8s", 12, 0},
		{"bust without aces", "Ks Qh 5c", 25, 0},
		{"bust after downgrading", "As Kh Qc 5d", 26, 0},
		{"soft seventeen", "As 6h", 17, 1},
		{"blackjack", "As Kh", 21, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.softAces, h.SoftAces())
			assert.Equal(t, tt.value > Limit, h.IsBust())
		})
	}
}

func TestAdjustForAcesIsDeferred(t *testing.T) {
	h := NewHand()
	for _, c := range deck.MustParseCards("As Ah 9c") {
		h.AddCard(c)
	}
	assert.Equal(t, 31, h.Value(), "raw value before adjustment")
	assert.Equal(t, 2, h.SoftAces())

	h.AdjustForAces()
	assert.Equal(t, 21, h.Value())
	assert.Equal(t, 1, h.SoftAces())

	h.AdjustForAces()
	assert.Equal(t, 21, h.Value(), "adjustment is idempotent")
	assert.Equal(t, 1, h.SoftAces())
}

func TestAdjustForAcesNoOp(t *testing.T) {
	h := handOf("Ks Qh")
	h.AdjustForAces()
	assert.Equal(t, 20, h.Value())

	bust := handOf("Ks Qh 5c")
	bust.AdjustForAces()
	assert.Equal(t, 25, bust.Value(), "no aces to downgrade")
}

// bestTotal brute forces the best hand value by trying every ace as 1 or 11
func bestTotal(cards []deck.Card) int {
	base, aces := 0, 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
			base++
		} else {
			base += c.Value()
		}
	}
	best := base
	for high := 1; high <= aces; high++ {
		if v := base + 10*high; v <= Limit {
			best = v
		}
	}
	return best
}

func TestHandMatchesBruteForce(t *testing.T) {
	rng := randutil.New(7)
	for trial := 0; trial < 2000; trial++ {
		d := deck.New(rng)
		d.Shuffle()
		n := 2 + rng.IntN(8)

		h := NewHand()
		var dealt []deck.Card
		for i := 0; i < n; i++ {
			c, err := d.Deal()
			if err != nil {
				t.Fatal(err)
			}
			dealt = append(dealt, c)
			h.AddCard(c)
			h.AdjustForAces()

			if got, want := h.Value(), bestTotal(dealt); got != want {
				t.Fatalf("cards %v: value %d, want %d", dealt, got, want)
			}
		}
	}
}

func TestHandCardsIsCopy(t *testing.T) {
	h := handOf("As Kh")
	cards := h.Cards()
	cards[0] = deck.NewCard(deck.Clubs, deck.Two)
	assert.Equal(t, deck.NewCard(deck.Spades, deck.Ace), h.Cards()[0])
}

func TestHandString(t *testing.T) {
	assert.Equal(t, "[A♠ 9♥] (20, soft)", handOf("As 9h").String())
	assert.Equal(t, "[K♠ Q♥] (20)", handOf("Ks Qh").String())
}
