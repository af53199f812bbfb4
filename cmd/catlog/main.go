// Package main is the entry point for the catlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/catlog/cmd/catlog/commands"
	"github.com/thoreinstein/catlog/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if s := errors.Suggestion(err); s != "" {
			fmt.Fprintln(os.Stderr, s)
		}
		os.Exit(errors.ExitCode(err))
	}
}
