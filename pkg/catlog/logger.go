package catlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/catlog/internal/logging"
	"github.com/thoreinstein/catlog/pkg/catlog/webhook"
)

// bootstrapSource is the source of the records Initialize emits itself.
const bootstrapSource = "logger"

// DefaultCloseTimeout bounds how long Close waits for pending notifications.
const DefaultCloseTimeout = 5 * time.Second

// State is the lifecycle state of a Logger.
type State int

const (
	// StateUninitialized drops every record.
	StateUninitialized State = iota
	// StateInitialized accepts records at or above the minimum level.
	StateInitialized
)

func (s State) String() string {
	if s == StateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Logger fans records out to its history and the configured sinks.
// It is safe for concurrent use. The zero value is not usable; call New.
type Logger struct {
	// initMu serializes Initialize and Close.
	initMu   sync.Mutex
	minLevel Level

	current atomic.Pointer[pipeline]

	now       func() time.Time
	console   io.Writer
	transport Transport
	diag      *slog.Logger
	metrics   *Metrics
}

// pipeline is one published configuration. It is replaced as a whole by
// Initialize, so Log never observes a half-applied configuration.
type pipeline struct {
	cfg       Config
	history   *History
	console   *consoleSink
	file      *fileSink
	remote    *dispatcher
	remoteMin Level
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithConsoleWriter sets the console sink's writer. Defaults to os.Stdout.
func WithConsoleWriter(w io.Writer) Option {
	return func(l *Logger) {
		if w != nil {
			l.console = w
		}
	}
}

// WithTransport replaces the webhook client used for remote notifications.
// Notifications are still only sent when Config.WebhookURL is set.
func WithTransport(t Transport) Option {
	return func(l *Logger) {
		l.transport = t
	}
}

// WithDiagnostics sets the logger that receives sink failures. It must not
// write back into this Logger.
func WithDiagnostics(diag *slog.Logger) Option {
	return func(l *Logger) {
		if diag != nil {
			l.diag = diag
		}
	}
}

// WithMetrics sets the counters updated by the logger.
func WithMetrics(m *Metrics) Option {
	return func(l *Logger) {
		l.metrics = m
	}
}

// New returns an Uninitialized logger.
func New(opts ...Option) *Logger {
	l := &Logger{
		minLevel: DefaultMinLevel,
		now:      time.Now,
		console:  os.Stdout,
		diag:     logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State reports whether the logger currently accepts records.
func (l *Logger) State() State {
	if l.current.Load() == nil {
		return StateUninitialized
	}
	return StateInitialized
}

// MinLevel returns the minimum level that Initialize last applied.
func (l *Logger) MinLevel() Level {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	return l.minLevel
}

// Initialize applies cfg and moves the logger to StateInitialized. Calling it
// again replaces the configuration and starts a fresh history.
//
// Sink resources are provisioned before the configuration is published; on
// error the logger keeps its previous state. Errors are marked with ErrConfig.
func (l *Logger) Initialize(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	p, rotated, err := l.build(cfg)
	if err != nil {
		return errors.Mark(err, ErrConfig)
	}

	if cfg.MinLevel != LevelUnset {
		l.minLevel = cfg.MinLevel
	}
	p.cfg.MinLevel = l.minLevel

	// The bootstrap records go into p before it is published, so they lead
	// its history even under concurrent Log calls. The old history is retired
	// first so a late record cannot rewrite the file after them.
	old := l.current.Load()
	if old != nil {
		old.history.retire()
	}
	if rotated != "" {
		l.logTo(p, bootstrapSource, "moved old log file to : "+rotated, LevelVerbose)
	}
	l.logTo(p, bootstrapSource, "initialized logger with log option : "+cfg.Sinks.String(), LevelNotice)

	l.current.Store(p)
	l.retire(old)
	return nil
}

func (l *Logger) build(cfg Config) (*pipeline, string, error) {
	if !cfg.Sinks.File() {
		cfg.Directory = ""
	}

	p := &pipeline{
		cfg:     cfg,
		history: newHistory(),
	}

	// The webhook client is resolved first so a bad URL fails before the
	// file sink rotates anything.
	var transport Transport
	if cfg.WebhookURL != "" {
		transport = l.transport
		if transport == nil {
			client, err := webhook.New(cfg.WebhookURL)
			if err != nil {
				return nil, "", errors.Wrap(err, "initializing webhook sink")
			}
			transport = webhookTransport{client: client}
		}
	}

	var rotated string
	if cfg.Sinks.File() {
		var err error
		p.file, rotated, err = openFileSink(cfg.Directory, cfg.KeepOldLogs)
		if err != nil {
			return nil, "", errors.Wrap(err, "initializing file sink")
		}
	}

	if cfg.Sinks.Console() {
		p.console = newConsoleSink(l.console, cfg.Color)
	}

	if transport != nil {
		p.remoteMin = cfg.WebhookMinLevel
		if p.remoteMin == LevelUnset {
			p.remoteMin = DefaultWebhookMinLevel
		}
		p.remote = newDispatcher(dispatcherConfig{
			transport:     transport,
			timeout:       cfg.WebhookTimeout,
			queueSize:     cfg.WebhookQueueSize,
			ratePerSecond: cfg.WebhookRatePerSecond,
			log:           l.diag.With("webhook", webhook.Redact(cfg.WebhookURL)),
			metrics:       l.metrics,
		})
	}

	return p, rotated, nil
}

// retire stops a replaced pipeline. Records still racing into it are dropped
// and its pending notifications are drained.
func (l *Logger) retire(p *pipeline) {
	if p == nil {
		return
	}
	p.history.retire()
	if p.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultCloseTimeout)
		defer cancel()
		p.remote.close(ctx)
	}
}

// Close moves the logger back to StateUninitialized and waits up to
// DefaultCloseTimeout for pending notifications.
func (l *Logger) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultCloseTimeout)
	defer cancel()
	return l.Shutdown(ctx)
}

// Shutdown is Close with a caller-supplied deadline for pending
// notifications. Notifications still queued when ctx is done are abandoned.
func (l *Logger) Shutdown(ctx context.Context) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	p := l.current.Swap(nil)
	if p == nil {
		return nil
	}
	p.history.retire()
	if p.remote != nil {
		p.remote.close(ctx)
	}
	return nil
}

// Log records message from source at level. It never fails and never blocks
// on the network; records below the minimum level or logged while
// Uninitialized are dropped.
//
// The history and file are updated together first, then the console, then
// the webhook delivery is queued. The file therefore always holds a prefix of
// History.
func (l *Logger) Log(source, message string, level Level) {
	p := l.current.Load()
	if p == nil {
		l.metrics.dropped(reasonUninitialized)
		return
	}
	l.logTo(p, source, message, level)
}

func (l *Logger) logTo(p *pipeline, source, message string, level Level) {
	if !level.AtLeast(p.cfg.MinLevel) {
		l.metrics.dropped(reasonBelowMinLevel)
		return
	}

	r := NewRecord(level, source, message, l.now())

	var persist func([]string) error
	if p.file != nil {
		persist = p.file.persist
	}
	accepted, err := p.history.commit(r, persist)
	if !accepted {
		l.metrics.dropped(reasonRetired)
		return
	}
	l.metrics.record(level)
	if err != nil {
		l.metrics.sinkError(sinkFile)
		l.diag.Warn("writing log file", "path", p.file.path, "error", err)
	}

	if p.console != nil {
		if err := p.console.write(r); err != nil {
			l.metrics.sinkError(sinkConsole)
			l.diag.Warn("writing console", "error", err)
		}
	}

	if p.remote != nil && level.AtLeast(p.remoteMin) {
		p.remote.enqueue(NewNotification(r))
	}
}

// Logf formats a message and logs it.
func (l *Logger) Logf(level Level, source, format string, args ...any) {
	l.Log(source, fmt.Sprintf(format, args...), level)
}

// Verbose logs at LevelVerbose.
func (l *Logger) Verbose(source, message string) { l.Log(source, message, LevelVerbose) }

// Info logs at LevelInfo.
func (l *Logger) Info(source, message string) { l.Log(source, message, LevelInfo) }

// Warning logs at LevelWarning.
func (l *Logger) Warning(source, message string) { l.Log(source, message, LevelWarning) }

// Error logs at LevelError.
func (l *Logger) Error(source, message string) { l.Log(source, message, LevelError) }

// Exception logs at LevelException.
func (l *Logger) Exception(source, message string) { l.Log(source, message, LevelException) }

// Notice logs at LevelNotice.
func (l *Logger) Notice(source, message string) { l.Log(source, message, LevelNotice) }

// Enabled reports whether a record at level would currently be accepted.
func (l *Logger) Enabled(level Level) bool {
	p := l.current.Load()
	return p != nil && level.AtLeast(p.cfg.MinLevel)
}

// History returns the records accepted since the last Initialize.
// It returns nil while Uninitialized.
func (l *Logger) History() []Record {
	if p := l.current.Load(); p != nil {
		return p.history.Records()
	}
	return nil
}

// Lines returns the rendered history, as written to the log file.
func (l *Logger) Lines() []string {
	if p := l.current.Load(); p != nil {
		return p.history.Lines()
	}
	return nil
}

// FilePath returns the latest log file path, or "" when the file sink is off.
func (l *Logger) FilePath() string {
	if p := l.current.Load(); p != nil && p.file != nil {
		return p.file.path
	}
	return ""
}

// webhookTransport sends notifications as a single embed.
type webhookTransport struct {
	client *webhook.Client
}

func (t webhookTransport) Send(ctx context.Context, n Notification) error {
	return t.client.Execute(ctx, webhook.Message{
		Embeds: []webhook.Embed{
			webhook.NewEmbed(n.Author, n.Title, n.Description, n.Timestamp, n.Color),
		},
	})
}
