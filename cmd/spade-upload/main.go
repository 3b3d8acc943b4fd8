// Package main provides the spade-upload CLI.
//
// Usage:
//
//	spade-upload [global options] upload <device> <name> [source]
//	spade-upload [global options] probe [device]
//	spade-upload ports
//
// The upload command is also the default action, so
// `spade-upload /dev/ttyACM0 snake snake.js` works without naming it.
// A missing source or "-" reads the game from stdin.
//
// Exit codes:
//   - 0: game accepted (or command succeeded)
//   - 1: error
//   - 2: target runs a legacy Spade version (upload and probe)
//   - 3: target rejected the game
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set via ldflags at build time.
var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already exited for cli.ExitCoder errors.
		os.Exit(exitError)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "spade-upload",
		Usage:          "Upload games to a Sprig console running Spade",
		Version:        version,
		ExitErrHandler: exitErrHandler,
		Flags:          globalFlags(),
		Action:         uploadAction,
		ArgsUsage:      "<device> <name> [source]",
		Commands: []*cli.Command{
			uploadCommand(),
			probeCommand(),
			portsCommand(),
		},
	}
}

// exitErrHandler handles errors from the CLI, preserving exit codes from cli.Exit().
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N", skip those
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitError)
}
