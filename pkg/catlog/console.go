package catlog

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	"github.com/thoreinstein/catlog/internal/logging"
)

// ColorMode controls whether the console sink emits ANSI colors.
type ColorMode int

const (
	// ColorAuto colors output only when the writer is a color-capable terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever disables colored output.
	ColorNever
)

// ErrUnknownColorMode is returned by ParseColorMode for unrecognized values.
var ErrUnknownColorMode = errors.New("unknown color mode")

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never". Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Wrapf(ErrUnknownColorMode, "%q", s)
	}
}

// consoleSink writes rendered lines to a writer in the level's color.
// Writes are serialized so that color sequences of concurrent records never
// interleave.
type consoleSink struct {
	mu       sync.Mutex
	out      io.Writer
	useColor bool
	colors   map[Level]*color.Color
}

func newConsoleSink(out io.Writer, mode ColorMode) *consoleSink {
	use := false
	switch mode {
	case ColorAlways:
		use = true
	case ColorAuto:
		use = logging.SupportsColor(out)
	}

	s := &consoleSink{
		out:      out,
		useColor: use,
		colors:   make(map[Level]*color.Color, len(consoleColors)),
	}
	for _, l := range Levels() {
		s.colors[l] = s.newColor(l.ConsoleColor())
	}
	return s
}

func (s *consoleSink) newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if s.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (s *consoleSink) colorFor(l Level) *color.Color {
	if c, ok := s.colors[l]; ok {
		return c
	}
	return s.newColor(l.ConsoleColor())
}

// write prints r on its own line. The color sequence and its reset are
// part of the same write, so the terminal is back to the default color even
// when the write fails part way.
func (s *consoleSink) write(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.out, s.colorFor(r.Level).Sprint(r.String()))
	return err
}
