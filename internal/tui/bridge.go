package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/shell"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge implements shell.UI by forwarding events to the model and blocking
// the game goroutine until the model answers each prompt.
type Bridge struct {
	sender Sender
	done   chan struct{}
	once   sync.Once
}

var _ shell.UI = (*Bridge)(nil)

// NewBridge creates a bridge sending to s
func NewBridge(s Sender) *Bridge {
	return &Bridge{sender: s, done: make(chan struct{})}
}

// Close releases any pending prompt with shell.ErrQuit. Call it once the
// program has exited.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Bridge) ask(kind promptKind) (string, error) {
	select {
	case <-b.done:
		return "", shell.ErrQuit
	default:
	}

	reply := make(chan string, 1)
	b.sender.Send(promptMsg{kind: kind, reply: reply})

	select {
	case answer := <-reply:
		return answer, nil
	case <-b.done:
		return "", shell.ErrQuit
	}
}

// Welcome shows the greeting
func (b *Bridge) Welcome(balance int) {
	b.sender.Send(welcomeMsg{balance: balance})
}

// Bet asks the player for a wager
func (b *Bridge) Bet(int) (int, error) {
	answer, err := b.ask(promptBet)
	if err != nil {
		return 0, err
	}
	return shell.ParseBet(answer)
}

// Decide asks the player to hit or stand
func (b *Bridge) Decide(game.PlayerView) (game.Action, error) {
	answer, err := b.ask(promptAction)
	if err != nil {
		return 0, err
	}
	return shell.ParseAction(answer)
}

// Continue asks whether to play again, repeating until the answer is clear
func (b *Bridge) Continue(int) (bool, error) {
	for {
		answer, err := b.ask(promptAgain)
		if err != nil {
			return false, err
		}
		again, err := shell.ParseYesNo(answer)
		if errors.Is(err, shell.ErrInvalidAnswer) {
			b.sender.Send(noticeMsg{text: "Please answer Y or N."})
			continue
		}
		return again, err
	}
}

// OnEvent forwards a round event to the model
func (b *Bridge) OnEvent(event game.GameEvent) {
	b.sender.Send(eventMsg{event: event})
}

// Goodbye shows the session summary
func (b *Bridge) Goodbye(summary shell.Summary) {
	b.sender.Send(goodbyeMsg{summary: summary})
}

// Play runs an interactive session in a full screen program until the
// player leaves. Extra options are passed to tea.NewProgram.
func Play(ctx context.Context, engine *game.Engine, logger *log.Logger, opts ...tea.ProgramOption) (shell.Summary, error) {
	model := NewModel(logger)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)
	bridge := NewBridge(program)

	type result struct {
		summary shell.Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := shell.Run(ctx, engine, bridge, logger)
		program.Send(sessionDoneMsg{err: err})
		done <- result{summary: summary, err: err}
	}()

	_, runErr := program.Run()
	bridge.Close()
	res := <-done

	if res.err != nil {
		return res.summary, res.err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return res.summary, runErr
	}
	return res.summary, nil
}
