package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
)

// State is a step of the round state machine
type State int

const (
	StateDealing State = iota
	StateBetting
	StatePlayerTurn
	StateDealerTurn
	StateSettlement
	StateDone
	StateAborted
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateDealing:
		return "dealing"
	case StateBetting:
		return "betting"
	case StatePlayerTurn:
		return "player_turn"
	case StateDealerTurn:
		return "dealer_turn"
	case StateSettlement:
		return "settlement"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the round is over
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateAborted
}

// Round is one deal of blackjack. It owns a fresh deck and both hands and
// borrows the session ledger for betting and settlement. Rounds are created
// by Engine.NewRound and are not reusable.
type Round struct {
	id     string
	rules  Rules
	deck   *deck.Deck
	player *Hand
	dealer *Hand
	ledger *Ledger

	state   State
	bet     int
	outcome Outcome
	delta   int
	err     error

	startedAt time.Time
	endedAt   time.Time

	clock  quartz.Clock
	logger *log.Logger
	bus    EventBus
}

// RoundResult summarises a finished round
type RoundResult struct {
	RoundID     string
	Outcome     Outcome
	Bet         int
	Delta       int
	Balance     int
	PlayerCards []deck.Card
	PlayerValue int
	DealerCards []deck.Card
	DealerValue int
	Duration    time.Duration
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// State returns the current state
func (r *Round) State() State { return r.state }

// Outcome returns the settled outcome, or NoOutcome before settlement
func (r *Round) Outcome() Outcome { return r.outcome }

// Err returns the error that aborted the round, if any
func (r *Round) Err() error { return r.err }

// Player returns the player's hand
func (r *Round) Player() *Hand { return r.player }

// Dealer returns the dealer's hand
func (r *Round) Dealer() *Hand { return r.dealer }

// DeckRemaining returns how many cards are left in the round's deck
func (r *Round) DeckRemaining() int { return r.deck.Remaining() }

// View returns the partial reveal the player decides from
func (r *Round) View() PlayerView {
	v := PlayerView{
		RoundID: r.id,
		Cards:   r.player.Cards(),
		Value:   r.player.Value(),
		Soft:    r.player.IsSoft(),
		Bet:     r.bet,
		Balance: r.ledger.Total(),
	}
	if r.dealer.Len() > 1 {
		v.DealerUpcard = r.dealer.cards[1]
	}
	return v
}

// deal runs the DEALING state: two cards each, player first
func (r *Round) deal() error {
	if r.state != StateDealing {
		return r.wrongState("deal")
	}

	for i := 0; i < 2; i++ {
		if _, err := r.draw(r.player); err != nil {
			return r.Abort(err)
		}
		if _, err := r.draw(r.dealer); err != nil {
			return r.Abort(err)
		}
	}

	r.logger.Debug("Dealt opening cards",
		"round", r.id,
		"player", r.player.String(),
		"dealer_upcard", r.dealer.cards[1].String())

	r.state = StateBetting
	r.publish(NewRoundStartEvent(r.now(), r.id, r.ledger.Total()))
	return nil
}

// PlaceBet commits the wager and starts the player's turn. Ledger errors
// leave the round in BETTING so the caller can try another amount.
func (r *Round) PlaceBet(amount int) error {
	if r.state != StateBetting {
		return r.wrongState("place bet")
	}

	if err := r.ledger.PlaceBet(amount); err != nil {
		r.logger.Debug("Bet rejected", "round", r.id, "amount", amount, "error", err)
		r.publish(NewBetRejectedEvent(r.now(), r.id, amount, r.ledger.Total(), err))
		return err
	}

	r.bet = amount
	r.state = StatePlayerTurn
	r.logger.Debug("Bet placed", "round", r.id, "amount", amount)
	r.publish(NewBetPlacedEvent(r.now(), r.id, amount, r.ledger.Total()))
	r.publish(NewPlayerTurnEvent(r.now(), r.View()))
	return nil
}

// Hit deals one card to the player. A bust settles the round immediately
// without the dealer playing.
func (r *Round) Hit() (deck.Card, error) {
	if r.state != StatePlayerTurn {
		return deck.Card{}, r.wrongState("hit")
	}

	card, err := r.draw(r.player)
	if err != nil {
		return deck.Card{}, r.Abort(err)
	}
	r.logger.Debug("Player hits", "round", r.id, "card", card.String(), "value", r.player.Value())
	r.publish(NewCardDealtEvent(r.now(), r.id, PartyPlayer, card, r.player.Value()))

	if r.player.IsBust() {
		return card, r.settle()
	}

	r.publish(NewPlayerTurnEvent(r.now(), r.View()))
	return card, nil
}

// Stand ends the player's turn, plays the dealer out and settles
func (r *Round) Stand() error {
	if r.state != StatePlayerTurn {
		return r.wrongState("stand")
	}

	r.logger.Debug("Player stands", "round", r.id, "value", r.player.Value())
	r.state = StateDealerTurn

	for r.dealer.Value() < r.rules.DealerStandsOn {
		card, err := r.draw(r.dealer)
		if err != nil {
			return r.Abort(err)
		}
		r.logger.Debug("Dealer draws", "round", r.id, "card", card.String(), "value", r.dealer.Value())
		r.publish(NewCardDealtEvent(r.now(), r.id, PartyDealer, card, r.dealer.Value()))
	}

	return r.settle()
}

// settle runs SETTLEMENT: one ledger call, full reveal, then DONE
func (r *Round) settle() error {
	r.state = StateSettlement
	r.outcome = DetermineOutcome(r.player.Value(), r.dealer.Value())

	delta, err := r.ledger.Settle(r.outcome)
	if err != nil {
		return r.Abort(fmt.Errorf("settle %s: %w", r.outcome, err))
	}
	r.delta = delta
	r.endedAt = r.now()
	r.state = StateDone

	r.logger.Debug("Round settled",
		"round", r.id,
		"outcome", r.outcome,
		"player", r.player.Value(),
		"dealer", r.dealer.Value(),
		"delta", delta,
		"balance", r.ledger.Total())

	r.publish(NewRevealEvent(r.endedAt, r.id, r.player, r.dealer))
	r.publish(NewRoundEndEvent(r.endedAt, r.id, r.outcome, r.bet, delta, r.ledger.Total()))
	return nil
}

// Abort ends the round without settlement. An open bet is released with no
// balance change. The returned error wraps cause.
func (r *Round) Abort(cause error) error {
	if r.state.IsTerminal() {
		return cause
	}
	if r.ledger.HasOpenBet() {
		_ = r.ledger.CancelBet()
	}
	r.err = fmt.Errorf("round %s aborted in %s: %w", r.id, r.state, cause)
	r.state = StateAborted
	r.endedAt = r.now()
	r.logger.Error("Round aborted", "round", r.id, "error", cause)
	return r.err
}

// RejectDecision reports an unusable decision without changing state
func (r *Round) RejectDecision(err error) {
	r.logger.Debug("Decision rejected", "round", r.id, "error", err)
	r.publish(NewDecisionRejectedEvent(r.now(), r.id, err))
}

// RejectBet reports a bet input problem found before reaching the ledger
func (r *Round) RejectBet(amount int, err error) {
	r.logger.Debug("Bet input rejected", "round", r.id, "error", err)
	r.publish(NewBetRejectedEvent(r.now(), r.id, amount, r.ledger.Total(), err))
}

// Result summarises the round. Only meaningful once the round is DONE.
func (r *Round) Result() *RoundResult {
	return &RoundResult{
		RoundID:     r.id,
		Outcome:     r.outcome,
		Bet:         r.bet,
		Delta:       r.delta,
		Balance:     r.ledger.Total(),
		PlayerCards: r.player.Cards(),
		PlayerValue: r.player.Value(),
		DealerCards: r.dealer.Cards(),
		DealerValue: r.dealer.Value(),
		Duration:    r.endedAt.Sub(r.startedAt),
	}
}

// draw deals the top card into h and reapplies the ace rule
func (r *Round) draw(h *Hand) (deck.Card, error) {
	card, err := r.deck.Deal()
	if err != nil {
		return deck.Card{}, err
	}
	h.AddCard(card)
	h.AdjustForAces()
	return card, nil
}

func (r *Round) wrongState(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrWrongState, op, r.state)
}

func (r *Round) now() time.Time {
	return r.clock.Now()
}

func (r *Round) publish(event GameEvent) {
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
