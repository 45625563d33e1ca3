// Package tui is the full screen front end, built on Bubble Tea. The game
// runs on its own goroutine and talks to the model through a Bridge.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/shell"
)

const sidebarWidth = 26

// promptKind is the question the game is waiting on
type promptKind int

const (
	promptNone promptKind = iota
	promptBet
	promptAction
	promptAgain
)

func (k promptKind) text() string {
	switch k {
	case promptBet:
		return shell.BetPrompt
	case promptAction:
		return shell.ActionPrompt
	case promptAgain:
		return shell.AgainPrompt
	default:
		return ""
	}
}

func (k promptKind) placeholder() string {
	switch k {
	case promptBet:
		return "chips to bet, or q to quit"
	case promptAction:
		return "h or s"
	case promptAgain:
		return "y or n"
	default:
		return "waiting for the dealer..."
	}
}

// Messages sent by the bridge
type (
	promptMsg struct {
		kind  promptKind
		reply chan<- string
	}
	eventMsg struct {
		event game.GameEvent
	}
	noticeMsg struct {
		text string
	}
	welcomeMsg struct {
		balance int
	}
	goodbyeMsg struct {
		summary shell.Summary
	}
	sessionDoneMsg struct {
		err error
	}
)

// Model is the Bubble Tea model for a blackjack session
type Model struct {
	format *shell.Formatter
	logger *log.Logger

	logViewport viewport.Model
	input       textinput.Model
	focusedPane int // 0 = log, 1 = input

	gameLog []string
	pending *promptMsg

	// Sidebar state, updated from events
	balance     int
	bet         int
	rounds      int
	view        *game.PlayerView
	lastOutcome game.Outcome

	finished bool
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewModel creates a model. Output styles follow the default renderer.
func NewModel(logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = promptNone.placeholder()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	return &Model{
		format:      shell.NewFormatter(nil),
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
	}
}

// Init starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages from the terminal and the bridge
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case welcomeMsg:
		m.balance = msg.balance
		m.addLog(m.format.Styles().Header.Render(" " + shell.WelcomeText + " "))

	case eventMsg:
		m.applyEvent(msg.event)
		m.addLog(m.format.Format(msg.event)...)

	case noticeMsg:
		m.addLog(m.format.Styles().Error.Render(msg.text))

	case promptMsg:
		m.pending = &msg
		m.input.Placeholder = msg.kind.placeholder()
		m.input.SetValue("")

	case goodbyeMsg:
		m.balance = msg.summary.FinalBalance
		m.finished = true
		m.pending = nil
		m.input.Placeholder = "press enter to exit"
		m.addLog(m.format.Goodbye(msg.summary)...)

	case sessionDoneMsg:
		if msg.err != nil {
			m.logger.Error("Session failed", "error", msg.err)
			m.quitting = true
			return m, tea.Quit
		}
		m.finished = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.answer("quit")
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane != 1 {
				break
			}
			if m.finished {
				m.quitting = true
				return m, tea.Quit
			}
			value := strings.TrimSpace(m.input.Value())
			if m.pending != nil {
				m.addLog(HelpStyle.Render(m.pending.kind.text()) + value)
				m.answer(value)
			}
			m.input.SetValue("")
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			m.logViewport.HalfPageUp()
		case "pgdown":
			m.logViewport.HalfPageDown()
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// answer replies to the pending prompt, if any. The reply channel is
// buffered so this never blocks the update loop.
func (m *Model) answer(value string) {
	if m.pending == nil {
		return
	}
	m.pending.reply <- value
	m.pending = nil
	m.input.Placeholder = promptNone.placeholder()
}

func (m *Model) applyEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		m.balance = e.Balance
		m.bet = 0
		m.view = nil
	case game.BetPlacedEvent:
		m.bet = e.Amount
	case game.PlayerTurnEvent:
		v := e.View
		m.view = &v
	case game.RoundEndEvent:
		m.balance = e.Balance
		m.bet = 0
		m.rounds++
		m.lastOutcome = e.Outcome
	}
}

// View renders the log and sidebar above the input pane
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := paneStyle(m.focusedPane == 1, m.width-2, actionHeight).Render(actionContent)

	paneHeight := m.height - actionHeight - 4
	sidebarPane := paneStyle(false, sidebarWidth, paneHeight).Render(m.renderSidebarPane())

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = max(paneHeight, 1)
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := paneStyle(m.focusedPane == 0, logWidth, paneHeight).Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderSidebarPane() string {
	styles := m.format.Styles()
	var b strings.Builder

	b.WriteString(SidebarTitleStyle.Render("Blackjack"))
	b.WriteString("\n\n")
	b.WriteString(ChipsStyle.Render(fmt.Sprintf("Chips: %d", m.balance)))
	b.WriteString("\n")
	if m.bet > 0 {
		b.WriteString(ChipsStyle.Render(fmt.Sprintf("Bet:   %d", m.bet)))
		b.WriteString("\n")
	}
	b.WriteString(styles.Info.Render(fmt.Sprintf("Rounds: %d", m.rounds)))
	b.WriteString("\n\n")

	if m.view != nil {
		b.WriteString("Dealer shows " + m.format.Card(m.view.DealerUpcard))
		b.WriteString("\n")
		b.WriteString(styles.Hand.Render(fmt.Sprintf("You have %d", m.view.Value)))
		if m.view.Soft {
			b.WriteString(styles.Info.Render(" soft"))
		}
		b.WriteString("\n")
	} else if m.lastOutcome != game.NoOutcome {
		b.WriteString(styles.Info.Render("Last: "))
		b.WriteString(m.format.Outcome(m.lastOutcome))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	switch {
	case m.finished:
		b.WriteString(m.format.Styles().Info.Render("Session over"))
	case m.pending != nil:
		b.WriteString(m.format.Styles().Hand.Render(strings.TrimSpace(m.pending.kind.text())))
	default:
		b.WriteString(m.format.Styles().Info.Render("Waiting..."))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.focusedPane == 0 {
		b.WriteString(HelpStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		b.WriteString(HelpStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return b.String()
}

// addLog appends lines to the game log and follows the tail
func (m *Model) addLog(lines ...string) {
	if len(lines) == 0 {
		return
	}
	m.gameLog = append(m.gameLog, lines...)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns a copy of the game log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Waiting reports whether the game is waiting on the player
func (m *Model) Waiting() bool {
	return m.pending != nil
}
