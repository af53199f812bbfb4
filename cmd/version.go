// Package cmd holds build metadata for the catlog binary. The values are
// replaced at link time:
//
//	go build -ldflags "-X github.com/thoreinstein/catlog/cmd.Version=v0.3.0" ./cmd/catlog
package cmd

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info renders the build metadata as printed by catlog version.
func Info() string {
	return fmt.Sprintf("catlog version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}

