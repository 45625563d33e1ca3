package game

import (
	"reflect"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a round event type with type safety
type EventType string

// EventType constants for round events, in the order a round emits them
const (
	EventTypeRoundStart       EventType = "round_start"
	EventTypeBetRejected      EventType = "bet_rejected"
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypePlayerTurn       EventType = "player_turn"
	EventTypeDecisionRejected EventType = "decision_rejected"
	EventTypeCardDealt        EventType = "card_dealt"
	EventTypeReveal           EventType = "reveal"
	EventTypeRoundEnd         EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Party identifies who holds a hand
type Party int

const (
	PartyPlayer Party = iota
	PartyDealer
)

func (p Party) String() string {
	if p == PartyDealer {
		return "dealer"
	}
	return "player"
}

// GameEvent is anything a round reports to its observers
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once the opening cards are dealt
type RoundStartEvent struct {
	RoundID   string
	Balance   int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a round start event
func NewRoundStartEvent(at time.Time, roundID string, balance int) RoundStartEvent {
	return RoundStartEvent{RoundID: roundID, Balance: balance, timestamp: at}
}

// BetRejectedEvent is published when a bet is refused and will be asked for again
type BetRejectedEvent struct {
	RoundID   string
	Amount    int
	Balance   int
	Err       error
	timestamp time.Time
}

func (e BetRejectedEvent) EventType() EventType { return EventTypeBetRejected }
func (e BetRejectedEvent) Timestamp() time.Time { return e.timestamp }

// NewBetRejectedEvent creates a bet rejected event
func NewBetRejectedEvent(at time.Time, roundID string, amount, balance int, err error) BetRejectedEvent {
	return BetRejectedEvent{RoundID: roundID, Amount: amount, Balance: balance, Err: err, timestamp: at}
}

// BetPlacedEvent is published when the ledger accepts the bet
type BetPlacedEvent struct {
	RoundID   string
	Amount    int
	Balance   int
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// NewBetPlacedEvent creates a bet placed event
func NewBetPlacedEvent(at time.Time, roundID string, amount, balance int) BetPlacedEvent {
	return BetPlacedEvent{RoundID: roundID, Amount: amount, Balance: balance, timestamp: at}
}

// PlayerTurnEvent is the partial reveal: the player's hand and the dealer
// upcard, published each time the player is about to decide
type PlayerTurnEvent struct {
	View      PlayerView
	timestamp time.Time
}

func (e PlayerTurnEvent) EventType() EventType { return EventTypePlayerTurn }
func (e PlayerTurnEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerTurnEvent creates a player turn event
func NewPlayerTurnEvent(at time.Time, view PlayerView) PlayerTurnEvent {
	return PlayerTurnEvent{View: view, timestamp: at}
}

// DecisionRejectedEvent is published when a decision could not be used
type DecisionRejectedEvent struct {
	RoundID   string
	Err       error
	timestamp time.Time
}

func (e DecisionRejectedEvent) EventType() EventType { return EventTypeDecisionRejected }
func (e DecisionRejectedEvent) Timestamp() time.Time { return e.timestamp }

// NewDecisionRejectedEvent creates a decision rejected event
func NewDecisionRejectedEvent(at time.Time, roundID string, err error) DecisionRejectedEvent {
	return DecisionRejectedEvent{RoundID: roundID, Err: err, timestamp: at}
}

// CardDealtEvent is published for every card drawn after the opening deal
type CardDealtEvent struct {
	RoundID   string
	To        Party
	Card      deck.Card
	Value     int // Hand value after the card and ace adjustment
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a card dealt event
func NewCardDealtEvent(at time.Time, roundID string, to Party, card deck.Card, value int) CardDealtEvent {
	return CardDealtEvent{RoundID: roundID, To: to, Card: card, Value: value, timestamp: at}
}

// RevealEvent is the full reveal at settlement: every card and both values
type RevealEvent struct {
	RoundID     string
	PlayerCards []deck.Card
	PlayerValue int
	DealerCards []deck.Card
	DealerValue int
	timestamp   time.Time
}

func (e RevealEvent) EventType() EventType { return EventTypeReveal }
func (e RevealEvent) Timestamp() time.Time { return e.timestamp }

// NewRevealEvent creates a reveal event
func NewRevealEvent(at time.Time, roundID string, player, dealer *Hand) RevealEvent {
	return RevealEvent{
		RoundID:     roundID,
		PlayerCards: player.Cards(),
		PlayerValue: player.Value(),
		DealerCards: dealer.Cards(),
		DealerValue: dealer.Value(),
		timestamp:   at,
	}
}

// RoundEndEvent carries the outcome and the balance after settlement
type RoundEndEvent struct {
	RoundID   string
	Outcome   Outcome
	Bet       int
	Delta     int
	Balance   int
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a round end event
func NewRoundEndEvent(at time.Time, roundID string, outcome Outcome, bet, delta, balance int) RoundEndEvent {
	return RoundEndEvent{
		RoundID:   roundID,
		Outcome:   outcome,
		Bet:       bet,
		Delta:     delta,
		Balance:   balance,
		timestamp: at,
	}
}

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Subscribers whose dynamic type is not
// comparable (funcs, or structs holding slices or maps) are never matched and
// stay subscribed; wrap them in a pointer to make them removable.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

func sameSubscriber(a, b EventSubscriber) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
