package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Help never needs the database, and opening it may prompt for the key
	if !wantsHelp(args) {
		a, err := app.New(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize worklog: %v\n", err)
			return 1
		}
		defer a.Close()
		cli.SetApp(a)
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// wantsHelp reports a leading help subcommand or a -h/--help flag.
// Arguments after "--" are values, never flags.
func wantsHelp(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-h" || a == "--help" {
			return true
		}
	}
	return false
}
