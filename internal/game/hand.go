package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand holds the cards of one party for one round and keeps a running value.
// Aces enter at 11; AdjustForAces downgrades them to 1 one at a time while
// the hand would otherwise bust.
type Hand struct {
	cards    []deck.Card
	value    int
	softAces int // Aces still counted as 11
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{}
}

// AddCard appends a card and adds its base value. Call AdjustForAces after.
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
	h.value += card.Value()
	if card.IsAce() {
		h.softAces++
	}
}

// AdjustForAces converts soft aces from 11 to 1 until the hand is at or
// below the limit or no soft aces remain. Calling it again is a no-op.
func (h *Hand) AdjustForAces() {
	for h.value > Limit && h.softAces > 0 {
		h.value -= 10
		h.softAces--
	}
}

// Value returns the current point total
func (h *Hand) Value() int {
	return h.value
}

// SoftAces returns how many aces are still counted as 11
func (h *Hand) SoftAces() int {
	return h.softAces
}

// IsSoft reports whether an ace is being counted as 11
func (h *Hand) IsSoft() bool {
	return h.softAces > 0
}

// IsBust reports whether the hand is over the limit
func (h *Hand) IsBust() bool {
	return h.value > Limit
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the cards in the order they were dealt
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// String returns e.g. "[A♠ 9♥] (20, soft)"
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	soft := ""
	if h.IsSoft() {
		soft = ", soft"
	}
	return fmt.Sprintf("[%s] (%d%s)", strings.Join(parts, " "), h.value, soft)
}
