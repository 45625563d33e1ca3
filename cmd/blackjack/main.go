package main

import (
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lox/blackjack/internal/strategy"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config string `short:"c" default:"blackjack.hcl" type:"path" help:"HCL config file (missing file means defaults)"`
	Debug  bool   `help:"Log at debug level"`
	Seed   int64  `default:"0" help:"RNG seed (0 for random)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack at the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate sessions with an automated strategy"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single player blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": strings.Join(strategy.Names(), ", "),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
