package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/pkg/catlog"
)

// FieldError reports an invalid value for a single key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Validate checks a Config for validity.
// Returns nil if valid, or every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.Wrap(errors.ErrInvalidConfig, "config is nil")}
	}
	_, errs := cfg.convert()
	return errs
}

// LoggerConfig converts the file configuration into a catlog.Config. The
// returned error is marked with errors.ErrInvalidConfig.
func (c *Config) LoggerConfig() (catlog.Config, error) {
	out, errs := c.convert()
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return catlog.Config{}, errors.Mark(errors.New(strings.Join(msgs, "; ")), errors.ErrInvalidConfig)
	}
	return out, nil
}

func (c *Config) convert() (catlog.Config, []error) {
	var (
		out  catlog.Config
		errs []error
		err  error
	)
	fail := func(field, value string, cause error) {
		errs = append(errs, &FieldError{
			Field: field,
			Value: value,
			Err:   errors.Mark(cause, errors.ErrInvalidConfig),
		})
	}

	if out.MinLevel, err = catlog.ParseLevel(c.MinLevel); err != nil {
		fail("min_level", c.MinLevel, err)
	}
	if out.Sinks, err = catlog.ParseSinkSelection(c.Sinks); err != nil {
		fail("sinks", c.Sinks, err)
	}
	if out.Color, err = catlog.ParseColorMode(c.Color); err != nil {
		fail("color", c.Color, err)
	}
	if strings.ContainsRune(c.Directory, '\x00') {
		fail("directory", c.Directory, errors.New("invalid path"))
	}
	out.Directory = c.Directory
	out.KeepOldLogs = c.KeepOldLogs
	if out.Sinks.File() && strings.TrimSpace(out.Directory) == "" {
		fail("directory", c.Directory, catlog.ErrDirectoryRequired)
	}

	out.WebhookURL = strings.TrimSpace(c.Webhook.URL)
	if out.WebhookMinLevel, err = catlog.ParseLevel(c.Webhook.MinLevel); err != nil {
		fail("webhook.min_level", c.Webhook.MinLevel, err)
	}
	if c.Webhook.Timeout != "" {
		if out.WebhookTimeout, err = time.ParseDuration(c.Webhook.Timeout); err != nil {
			fail("webhook.timeout", c.Webhook.Timeout, err)
		} else if out.WebhookTimeout < 0 {
			fail("webhook.timeout", c.Webhook.Timeout, errors.New("must not be negative"))
		}
	}
	if c.Webhook.RatePerSecond < 0 {
		fail("webhook.rate_per_second", fmt.Sprint(c.Webhook.RatePerSecond), errors.New("must not be negative"))
	}
	out.WebhookRatePerSecond = c.Webhook.RatePerSecond
	if c.Webhook.QueueSize < 0 {
		fail("webhook.queue_size", fmt.Sprint(c.Webhook.QueueSize), errors.New("must not be negative"))
	}
	out.WebhookQueueSize = c.Webhook.QueueSize

	return out, errs
}
