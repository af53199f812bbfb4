package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether stream, a reader or writer, is attached to a
// terminal. Streams without an Fd method (buffers, pipes wrapped in
// readers) never are.
func IsTerminal(stream any) bool {
	f, ok := stream.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
//
// NO_COLOR (https://no-color.org) and TERM=dumb always win. Otherwise
// CLICOLOR_FORCE=1 enables color for any writer, e.g. when piping catlog
// show into less -R. Without either, color follows IsTerminal.
func SupportsColor(w io.Writer) bool {
	return colorAllowed(IsTerminal(w))
}

func colorAllowed(terminal bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") == "1" {
		return true
	}
	return terminal
}
