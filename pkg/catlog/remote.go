package catlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Remote dispatch defaults.
const (
	DefaultWebhookTimeout   = 10 * time.Second
	DefaultWebhookQueueSize = 256
	// DefaultWebhookMinLevel is used when Config.WebhookMinLevel is unset.
	DefaultWebhookMinLevel = LevelError
)

// Notification is the rich message sent for a forwarded record.
type Notification struct {
	// Author is the level's display name.
	Author string
	// Title is the record source.
	Title string
	// Description is the record message.
	Description string
	Timestamp   time.Time
	// Color is the accent color as 0xRRGGBB.
	Color int
}

// NewNotification maps a record onto a notification.
func NewNotification(r Record) Notification {
	return Notification{
		Author:      r.Level.String(),
		Title:       r.Source,
		Description: r.Message,
		Timestamp:   r.Time,
		Color:       r.Level.EmbedColor(),
	}
}

// Transport delivers notifications to a remote endpoint.
type Transport interface {
	Send(ctx context.Context, n Notification) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, n Notification) error

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

type dispatcherConfig struct {
	transport     Transport
	timeout       time.Duration
	queueSize     int
	ratePerSecond int
	log           *slog.Logger
	metrics       *Metrics
}

// dispatcher hands notifications to a single background worker. Enqueue
// never blocks; when the queue is full the notification is dropped.
type dispatcher struct {
	cfg     dispatcherConfig
	queue   chan Notification
	limiter *rate.Limiter

	// mu guards closed and protects queue from sends after close.
	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newDispatcher(cfg dispatcherConfig) *dispatcher {
	if cfg.timeout <= 0 {
		cfg.timeout = DefaultWebhookTimeout
	}
	if cfg.queueSize <= 0 {
		cfg.queueSize = DefaultWebhookQueueSize
	}

	d := &dispatcher{
		cfg:   cfg,
		queue: make(chan Notification, cfg.queueSize),
	}
	if cfg.ratePerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(cfg.ratePerSecond), cfg.ratePerSecond)
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.run()
	}()
	return d
}

func (d *dispatcher) enqueue(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}
	select {
	case d.queue <- n:
	default:
		d.cfg.metrics.notification(resultQueueFull)
		d.cfg.log.Warn("notification queue full, dropping", "title", n.Title)
	}
}

func (d *dispatcher) run() {
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *dispatcher) deliver(n Notification) {
	if d.limiter != nil {
		if err := d.limiter.Wait(d.ctx); err != nil {
			d.cfg.metrics.notification(resultFailed)
			d.cfg.log.Warn("notification abandoned", "title", n.Title, "error", err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.cfg.timeout)
	defer cancel()

	if err := d.cfg.transport.Send(ctx, n); err != nil {
		d.cfg.metrics.notification(resultFailed)
		d.cfg.log.Warn("notification delivery failed", "title", n.Title, "error", err)
		return
	}
	d.cfg.metrics.notification(resultSent)
}

// close stops accepting notifications and waits until the queued ones have
// been delivered or have failed. Once ctx is done, pending rate limit waits
// and in-flight sends are cancelled.
func (d *dispatcher) close(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.cancel()
		<-done
	}
	d.cancel()
}
