package shell

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plainFormatter() *Formatter {
	return NewFormatter(lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii)))
}

func plain(lines []string) string {
	return ansi.Strip(strings.Join(lines, "\n"))
}

func TestFormatEvents(t *testing.T) {
	f := plainFormatter()
	at := time.Now()
	player := game.NewHand()
	dealer := game.NewHand()
	for _, c := range deck.MustParseCards("Kh Qh") {
		player.AddCard(c)
	}
	for _, c := range deck.MustParseCards("9c Kd") {
		dealer.AddCard(c)
	}

	tests := []struct {
		name  string
		event game.GameEvent
		want  []string
	}{
		{"round start", game.NewRoundStartEvent(at, "0123456789abcdefghjkmnpqrs", 500),
			[]string{"Round jkmnpqrs", "You have 500 chips"}},
		{"insufficient chips", game.NewBetRejectedEvent(at, "r", 600, 500, fmt.Errorf("%w: 600 > 500", game.ErrInsufficientChips)),
			[]string{"You don't have enough chips"}},
		{"invalid bet", game.NewBetRejectedEvent(at, "r", 0, 500, game.ErrInvalidBet),
			[]string{"Invalid bet! Try again!"}},
		{"bet placed", game.NewBetPlacedEvent(at, "r", 50, 500),
			[]string{"Bet placed: 50 chips"}},
		{"player turn", game.NewPlayerTurnEvent(at, game.PlayerView{
			Cards:        player.Cards(),
			Value:        20,
			DealerUpcard: deck.NewCard(deck.Diamonds, deck.King),
		}), []string{"Dealer's Hand: [<Hidden Card> K♦]", "Player's Hand: [K♥ Q♥] (20)"}},
		{"decision rejected", game.NewDecisionRejectedEvent(at, "r", game.ErrInvalidDecision),
			[]string{"Sorry. Please try again!"}},
		{"player draw", game.NewCardDealtEvent(at, "r", game.PartyPlayer, deck.NewCard(deck.Clubs, deck.Five), 25),
			[]string{"You draw 5♣ (25)"}},
		{"dealer draw", game.NewCardDealtEvent(at, "r", game.PartyDealer, deck.NewCard(deck.Clubs, deck.Five), 24),
			[]string{"Dealer draws 5♣ (24)"}},
		{"reveal", game.NewRevealEvent(at, "r", player, dealer),
			[]string{"Dealer's Hand: [9♣ K♦] Dealer Value: 19", "Player's Hand: [K♥ Q♥] Player Value: 20"}},
		{"round end", game.NewRoundEndEvent(at, "r", game.PlayerWin, 50, 50, 550),
			[]string{"You win! Congratulations!!", "You have 550 chips"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := plain(f.Format(tt.event))
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatSoftHand(t *testing.T) {
	f := plainFormatter()
	out := plain(f.Format(game.NewPlayerTurnEvent(time.Now(), game.PlayerView{
		Cards:        deck.MustParseCards("As 6h"),
		Value:        17,
		Soft:         true,
		DealerUpcard: deck.NewCard(deck.Spades, deck.Ten),
	})))
	assert.Contains(t, out, "(17, soft)")
}

func TestOutcomeMessages(t *testing.T) {
	tests := map[game.Outcome]string{
		game.PlayerBust: "Busted! Better Luck Next Time!!",
		game.DealerBust: "Dealer Busted! Congratulations!!",
		game.PlayerWin:  "You win! Congratulations!!",
		game.DealerWin:  "You Lose! Better Luck Next Time!!",
		game.Push:       "Pushed!",
		game.NoOutcome:  "",
	}
	f := plainFormatter()
	for o, want := range tests {
		assert.Equal(t, want, OutcomeMessage(o))
		assert.Equal(t, want, ansi.Strip(f.Outcome(o)))
	}
}

func TestGoodbye(t *testing.T) {
	f := plainFormatter()
	out := plain(f.Goodbye(Summary{Rounds: 3, StartingBalance: 500, FinalBalance: 0, Reason: ReasonBankrupt}))
	assert.Contains(t, out, "out of chips")
	assert.Contains(t, out, "Played 3 rounds, finished with 0 chips (-500)")
	assert.Contains(t, out, "Thank You for playing!")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("0012345678"))
}

func TestFormatUnknownEvent(t *testing.T) {
	assert.Nil(t, plainFormatter().Format(nil))
}
