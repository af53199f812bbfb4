package catlog

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// SinkSelection picks the local sinks. It decides both whether the console is
// written and whether the log file is kept.
type SinkSelection int

const (
	// SinksConsole writes to the console only. The directory is ignored.
	SinksConsole SinkSelection = iota
	// SinksFile writes to the log file only.
	SinksFile
	// SinksBoth writes to the console and the log file.
	SinksBoth
)

// ErrUnknownSinks is returned by ParseSinkSelection for unrecognized values.
var ErrUnknownSinks = errors.New("unknown sink selection")

// ErrConfig marks errors caused by an unusable configuration. Initialize
// errors can be matched with errors.Is(err, ErrConfig).
var ErrConfig = errors.New("invalid logger configuration")

func (s SinkSelection) String() string {
	switch s {
	case SinksConsole:
		return "Console"
	case SinksFile:
		return "File"
	case SinksBoth:
		return "Both"
	default:
		return "Sinks(" + strconv.Itoa(int(s)) + ")"
	}
}

// Console reports whether the console sink is enabled.
func (s SinkSelection) Console() bool { return s == SinksConsole || s == SinksBoth }

// File reports whether the file sink is enabled.
func (s SinkSelection) File() bool { return s == SinksFile || s == SinksBoth }

// MarshalText implements encoding.TextMarshaler.
func (s SinkSelection) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SinkSelection) UnmarshalText(text []byte) error {
	parsed, err := ParseSinkSelection(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSinkSelection parses "console", "file" or "both". Empty means console.
func ParseSinkSelection(s string) (SinkSelection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console":
		return SinksConsole, nil
	case "file":
		return SinksFile, nil
	case "both":
		return SinksBoth, nil
	default:
		return SinksConsole, errors.Wrapf(ErrUnknownSinks, "%q", s)
	}
}

// Config configures a Logger. The zero value logs Info and above to the
// console.
type Config struct {
	// MinLevel is the lowest level accepted. LevelUnset keeps the logger's
	// current minimum, which starts at DefaultMinLevel.
	MinLevel Level
	Sinks    SinkSelection
	// Directory holds the log files. Required when Sinks includes the file.
	Directory string
	// KeepOldLogs preserves an existing latest file under a rotated name.
	KeepOldLogs bool
	// Color controls console coloring.
	Color ColorMode

	// WebhookURL enables remote notifications when non-empty.
	WebhookURL string
	// WebhookMinLevel is the lowest level forwarded. LevelUnset means
	// DefaultWebhookMinLevel.
	WebhookMinLevel Level
	// WebhookTimeout bounds each delivery. Zero means DefaultWebhookTimeout.
	WebhookTimeout time.Duration
	// WebhookRatePerSecond limits deliveries. Zero disables the limit.
	WebhookRatePerSecond int
	// WebhookQueueSize bounds pending deliveries. Zero means
	// DefaultWebhookQueueSize.
	WebhookQueueSize int
}

// DefaultMinLevel is the minimum level of a logger that was never given one.
const DefaultMinLevel = LevelInfo

// Validate reports configuration values that Initialize would reject before
// touching the file system.
func (c Config) Validate() error {
	if c.MinLevel != LevelUnset && !c.MinLevel.Valid() {
		return errors.Mark(errors.Newf("invalid minimum level %d", int(c.MinLevel)), ErrConfig)
	}
	if c.WebhookMinLevel != LevelUnset && !c.WebhookMinLevel.Valid() {
		return errors.Mark(errors.Newf("invalid webhook minimum level %d", int(c.WebhookMinLevel)), ErrConfig)
	}
	if c.Sinks < SinksConsole || c.Sinks > SinksBoth {
		return errors.Mark(errors.Wrapf(ErrUnknownSinks, "%d", int(c.Sinks)), ErrConfig)
	}
	if c.Color < ColorAuto || c.Color > ColorNever {
		return errors.Mark(errors.Wrapf(ErrUnknownColorMode, "%d", int(c.Color)), ErrConfig)
	}
	if c.Sinks.File() && strings.TrimSpace(c.Directory) == "" {
		return errors.Mark(ErrDirectoryRequired, ErrConfig)
	}
	if c.WebhookTimeout < 0 || c.WebhookRatePerSecond < 0 || c.WebhookQueueSize < 0 {
		return errors.Mark(errors.New("webhook limits must not be negative"), ErrConfig)
	}
	return nil
}
