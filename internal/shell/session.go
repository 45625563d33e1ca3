// Package shell holds the parts of interactive play shared by the console
// and full screen front ends: input parsing, event formatting and the
// session loop that keeps dealing rounds until the player stops.
package shell

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// UI is an interactive front end. It supplies bets and decisions, receives
// every round event and is asked whether to keep playing after each round.
type UI interface {
	game.BetProvider
	game.DecisionProvider
	game.EventSubscriber

	// Welcome is shown once before the first round
	Welcome(balance int)
	// Continue asks whether to deal another round
	Continue(balance int) (bool, error)
	// Goodbye is shown once when the session ends
	Goodbye(summary Summary)
}

// Reason explains why a session ended
type Reason string

const (
	ReasonDeclined  Reason = "declined"
	ReasonQuit      Reason = "quit"
	ReasonBankrupt  Reason = "bankrupt"
	ReasonCancelled Reason = "cancelled"
)

// Summary describes a finished session
type Summary struct {
	Rounds          int
	StartingBalance int
	FinalBalance    int
	Reason          Reason
}

// Net returns the chips won or lost over the session
func (s Summary) Net() int {
	return s.FinalBalance - s.StartingBalance
}

// Run plays rounds on engine until the player declines, quits, runs out of
// chips or ctx is cancelled. Quitting and running out of chips are normal
// endings and return a nil error.
func Run(ctx context.Context, engine *game.Engine, ui UI, logger *log.Logger) (Summary, error) {
	ledger := engine.Ledger()
	summary := Summary{StartingBalance: ledger.Total()}

	engine.EventBus().Subscribe(ui)
	defer engine.EventBus().Unsubscribe(ui)

	ui.Welcome(ledger.Total())

	for {
		if ctx.Err() != nil {
			summary.Reason = ReasonCancelled
			break
		}

		_, err := engine.PlayRound(ui, ui)
		switch {
		case errors.Is(err, ErrQuit):
			summary.Reason = ReasonQuit
		case errors.Is(err, game.ErrBankrupt):
			summary.Reason = ReasonBankrupt
		case err != nil:
			summary.FinalBalance = ledger.Total()
			return summary, err
		default:
			summary.Rounds++
		}
		if summary.Reason != "" {
			break
		}

		if ledger.Total() <= 0 {
			summary.Reason = ReasonBankrupt
			break
		}

		again, err := ui.Continue(ledger.Total())
		if errors.Is(err, ErrQuit) {
			summary.Reason = ReasonQuit
			break
		}
		if err != nil {
			summary.FinalBalance = ledger.Total()
			return summary, err
		}
		if !again {
			summary.Reason = ReasonDeclined
			break
		}
	}

	summary.FinalBalance = ledger.Total()
	logger.Info("Session ended",
		"rounds", summary.Rounds,
		"balance", summary.FinalBalance,
		"reason", summary.Reason)
	ui.Goodbye(summary)
	return summary, nil
}
