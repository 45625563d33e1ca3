// Package console is the line-based front end: prompts on a writer, answers
// read a line at a time from a reader.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/shell"
	"github.com/muesli/termenv"
)

// Options configures a console
type Options struct {
	// NoColor forces plain ASCII output even on a colour terminal
	NoColor bool
	Logger  *log.Logger
}

// Console implements shell.UI over a reader and writer. It is driven by a
// single goroutine.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	format *shell.Formatter
	logger *log.Logger
}

var _ shell.UI = (*Console)(nil)

// New creates a console. Colour support is detected from out.
func New(in io.Reader, out io.Writer, opts Options) *Console {
	var renderer *lipgloss.Renderer
	if opts.NoColor {
		renderer = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	} else {
		renderer = lipgloss.NewRenderer(out, termenv.WithColorCache(true))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		format: shell.NewFormatter(renderer),
		logger: logger.WithPrefix("console"),
	}
}

// Welcome prints the greeting
func (c *Console) Welcome(balance int) {
	c.println(c.format.Styles().Header.Render(" " + shell.WelcomeText + " "))
}

// Bet prompts for a wager
func (c *Console) Bet(balance int) (int, error) {
	line, err := c.prompt(shell.BetPrompt)
	if err != nil {
		return 0, err
	}
	return shell.ParseBet(line)
}

// Decide prompts for hit or stand
func (c *Console) Decide(game.PlayerView) (game.Action, error) {
	line, err := c.prompt(shell.ActionPrompt)
	if err != nil {
		return 0, err
	}
	return shell.ParseAction(line)
}

// Continue asks whether to play again, repeating until the answer is clear
func (c *Console) Continue(balance int) (bool, error) {
	for {
		line, err := c.prompt(shell.AgainPrompt)
		if err != nil {
			return false, err
		}
		again, err := shell.ParseYesNo(line)
		if errors.Is(err, shell.ErrInvalidAnswer) {
			c.println(c.format.Styles().Error.Render("Please answer Y or N."))
			continue
		}
		return again, err
	}
}

// OnEvent prints each round event as it happens
func (c *Console) OnEvent(event game.GameEvent) {
	for _, line := range c.format.Format(event) {
		c.println(line)
	}
}

// Goodbye prints the session summary
func (c *Console) Goodbye(summary shell.Summary) {
	for _, line := range c.format.Goodbye(summary) {
		c.println(line)
	}
}

// prompt writes p and reads one line. End of input is treated as quitting.
func (c *Console) prompt(p string) (string, error) {
	fmt.Fprint(c.out, p)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(c.out)
		c.logger.Debug("Input closed")
		return "", shell.ErrQuit
	}
	line := strings.TrimSpace(c.in.Text())
	c.logger.Debug("Read input", "prompt", strings.TrimSpace(p), "input", line)
	return line, nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
