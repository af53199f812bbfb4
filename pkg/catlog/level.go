package catlog

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Level is the severity of a record. Levels are totally ordered by their
// ordinal value; filtering and routing compare ordinals only.
//
// Notice ranks above Exception even though it means "important" rather than
// "severe". The order is kept as is for filtering compatibility.
type Level int

const (
	// LevelUnset is the zero value. In a Config it means "not supplied".
	LevelUnset Level = iota
	// LevelVerbose is for records that would be noise in production.
	LevelVerbose
	// LevelInfo describes normal operation.
	LevelInfo
	// LevelWarning describes a recoverable or unimportant failure.
	LevelWarning
	// LevelError describes a non-recoverable failure of one operation.
	LevelError
	// LevelException describes a critical failure such as a crash.
	LevelException
	// LevelNotice is for critically important records that fit no other level.
	LevelNotice
)

// MaxLevelNameLength is the length of the longest level name.
const MaxLevelNameLength = len("Exception")

// ErrUnknownLevel is returned by ParseLevel for unrecognized names.
var ErrUnknownLevel = errors.New("unknown log level")

var levelNames = map[Level]string{
	LevelUnset:     "Unset",
	LevelVerbose:   "Verbose",
	LevelInfo:      "Info",
	LevelWarning:   "Warning",
	LevelError:     "Error",
	LevelException: "Exception",
	LevelNotice:    "Notice",
}

var levelAliases = map[string]Level{
	"verbose":   LevelVerbose,
	"debug":     LevelVerbose,
	"trace":     LevelVerbose,
	"info":      LevelInfo,
	"warning":   LevelWarning,
	"warn":      LevelWarning,
	"error":     LevelError,
	"exception": LevelException,
	"critical":  LevelException,
	"fatal":     LevelException,
	"notice":    LevelNotice,
}

var consoleColors = map[Level]color.Attribute{
	LevelVerbose:   color.FgHiBlack,
	LevelInfo:      color.FgWhite,
	LevelWarning:   color.FgYellow,
	LevelError:     color.FgHiRed,
	LevelException: color.FgRed,
	LevelNotice:    color.FgHiCyan,
}

// Embed accent colors, 0xRRGGBB.
const (
	embedOrange  = 0xE67E22
	embedRed     = 0xE74C3C
	embedDarkRed = 0x992D22
	embedBlue    = 0x3498DB
)

var embedColors = map[Level]int{
	LevelVerbose:   0,
	LevelInfo:      444,
	LevelWarning:   embedOrange,
	LevelError:     embedRed,
	LevelException: embedDarkRed,
	LevelNotice:    embedBlue,
}

// Levels returns every assignable level in ascending order.
func Levels() []Level {
	return []Level{LevelVerbose, LevelInfo, LevelWarning, LevelError, LevelException, LevelNotice}
}

// String returns the display name of the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the levels returned by Levels.
func (l Level) Valid() bool {
	return l >= LevelVerbose && l <= LevelNotice
}

// AtLeast reports whether l ranks at or above minLevel.
func (l Level) AtLeast(minLevel Level) bool {
	return l >= minLevel
}

// ConsoleColor returns the foreground color used for the level on a console.
// Unknown levels are shown in red.
func (l Level) ConsoleColor() color.Attribute {
	if c, ok := consoleColors[l]; ok {
		return c
	}
	return color.FgRed
}

// EmbedColor returns the accent color for remote notifications.
// Unknown levels use blue.
func (l Level) EmbedColor() int {
	if c, ok := embedColors[l]; ok {
		return c
	}
	return embedBlue
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel converts a level name to a Level. Matching is case-insensitive
// and accepts common aliases such as "warn" and "debug".
// An empty string yields LevelUnset.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "unset" {
		return LevelUnset, nil
	}
	if l, ok := levelAliases[s]; ok {
		return l, nil
	}
	return LevelUnset, errors.Wrapf(ErrUnknownLevel, "%q", s)
}

// FromSlog maps a log/slog severity onto the closest Level.
func FromSlog(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return LevelVerbose
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarning
	case level == slog.LevelError:
		return LevelError
	default:
		return LevelException
	}
}
