package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

const hiddenCard = "<Hidden Card>"

// Formatter turns round events into display lines
type Formatter struct {
	styles Styles
}

// NewFormatter creates a formatter rendering through r. A nil renderer uses
// lipgloss' default.
func NewFormatter(r *lipgloss.Renderer) *Formatter {
	return &Formatter{styles: NewStyles(r)}
}

// Styles returns the formatter's styles
func (f *Formatter) Styles() Styles {
	return f.styles
}

// Card renders one card coloured by suit
func (f *Formatter) Card(c deck.Card) string {
	if c.IsRed() {
		return f.styles.RedCard.Render(c.String())
	}
	return f.styles.BlackCard.Render(c.String())
}

// Cards renders a hand as [A♠ K♥]
func (f *Formatter) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = f.Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Format returns the lines to show for an event. Events with nothing to
// show return nil.
func (f *Formatter) Format(event game.GameEvent) []string {
	switch e := event.(type) {
	case game.RoundStartEvent:
		return []string{
			"",
			f.styles.Header.Render(fmt.Sprintf(" Round %s ", ShortID(e.RoundID))),
			fmt.Sprintf("You have %d chips", e.Balance),
		}

	case game.BetRejectedEvent:
		if errors.Is(e.Err, game.ErrInsufficientChips) {
			return []string{f.styles.Error.Render("You don't have enough chips for that much bet. Please try again!")}
		}
		return []string{f.styles.Error.Render("Invalid bet! Try again!")}

	case game.BetPlacedEvent:
		return []string{f.styles.Info.Render(fmt.Sprintf("Bet placed: %d chips", e.Amount))}

	case game.PlayerTurnEvent:
		v := e.View
		return []string{
			"Dealer's Hand: " + "[" + f.styles.Hidden.Render(hiddenCard) + " " + f.Card(v.DealerUpcard) + "]",
			"Player's Hand: " + f.Cards(v.Cards) + " " + f.styles.Hand.Render(handValue(v.Value, v.Soft)),
		}

	case game.DecisionRejectedEvent:
		return []string{f.styles.Error.Render("Sorry. Please try again!")}

	case game.CardDealtEvent:
		who := "You draw"
		if e.To == game.PartyDealer {
			who = "Dealer draws"
		}
		return []string{fmt.Sprintf("%s %s (%d)", who, f.Card(e.Card), e.Value)}

	case game.RevealEvent:
		return []string{
			"Dealer's Hand: " + f.Cards(e.DealerCards) + " " + f.styles.Hand.Render(fmt.Sprintf("Dealer Value: %d", e.DealerValue)),
			"Player's Hand: " + f.Cards(e.PlayerCards) + " " + f.styles.Hand.Render(fmt.Sprintf("Player Value: %d", e.PlayerValue)),
		}

	case game.RoundEndEvent:
		return []string{
			f.Outcome(e.Outcome),
			fmt.Sprintf("You have %d chips", e.Balance),
		}
	}
	return nil
}

// Outcome renders the settlement message for o
func (f *Formatter) Outcome(o game.Outcome) string {
	msg := OutcomeMessage(o)
	switch {
	case o.IsWin():
		return f.styles.Success.Render(msg)
	case o.IsLoss():
		return f.styles.Error.Render(msg)
	default:
		return f.styles.Warning.Render(msg)
	}
}

// OutcomeMessage is the plain text announcement for an outcome
func OutcomeMessage(o game.Outcome) string {
	switch o {
	case game.PlayerBust:
		return "Busted! Better Luck Next Time!!"
	case game.DealerBust:
		return "Dealer Busted! Congratulations!!"
	case game.PlayerWin:
		return "You win! Congratulations!!"
	case game.DealerWin:
		return "You Lose! Better Luck Next Time!!"
	case game.Push:
		return "Pushed!"
	default:
		return ""
	}
}

// Goodbye renders the end of session lines
func (f *Formatter) Goodbye(s Summary) []string {
	lines := []string{""}
	switch s.Reason {
	case ReasonBankrupt:
		lines = append(lines, f.styles.Error.Render("You are out of chips."))
	case ReasonCancelled:
		lines = append(lines, f.styles.Warning.Render("Game interrupted."))
	}
	return append(lines,
		fmt.Sprintf("Played %d rounds, finished with %d chips (%+d)", s.Rounds, s.FinalBalance, s.Net()),
		"Thank You for playing!",
	)
}

// ShortID trims a round id for display. The leading characters of an id
// encode its timestamp, so the random tail is kept.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func handValue(value int, soft bool) string {
	if soft {
		return fmt.Sprintf("(%d, soft)", value)
	}
	return fmt.Sprintf("(%d)", value)
}

// Prompts shared by the front ends
const (
	WelcomeText  = "Welcome to BlackJack!"
	BetPrompt    = "Place your bet: "
	ActionPrompt = "Press H to hit / S to stand: "
	AgainPrompt  = "Do you want to play again? Y/N: "
)
