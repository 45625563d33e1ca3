package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when dealing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a single 52-card deck. The top of the deck is the end of the
// sequence, so Deal pops from the back.
type Deck struct {
	cards []Card
	rng   *rand.Rand // Random source for deterministic shuffling
}

// New creates a full, unshuffled deck in suit-major, rank-minor order.
// The RNG is used by Shuffle; pass a seeded one for reproducible deals.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	return d
}

// Shuffle permutes the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}

	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, top card last
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Stack reorders the remaining cards so that the given cards are dealt next,
// in the order given. Every card must still be in the deck and appear once.
// The deck stays a permutation of what it held before the call.
func (d *Deck) Stack(cards ...Card) error {
	if len(cards) > len(d.cards) {
		return fmt.Errorf("cannot stack %d cards on a deck of %d", len(cards), len(d.cards))
	}

	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("card %s stacked twice", c)
		}
		seen[c] = true
	}

	rest := make([]Card, 0, len(d.cards)-len(cards))
	found := 0
	for _, c := range d.cards {
		if seen[c] {
			found++
			continue
		}
		rest = append(rest, c)
	}
	if found != len(cards) {
		for _, c := range cards {
			if !d.contains(c) {
				return fmt.Errorf("card %s is not in the deck", c)
			}
		}
	}

	// First card to deal goes last
	for i := len(cards) - 1; i >= 0; i-- {
		rest = append(rest, cards[i])
	}
	d.cards = rest
	return nil
}

func (d *Deck) contains(c Card) bool {
	for _, dc := range d.cards {
		if dc == c {
			return true
		}
	}
	return false
}
