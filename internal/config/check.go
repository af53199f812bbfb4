package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/validator"
	"github.com/thoreinstein/catlog/pkg/catlog"
	"github.com/thoreinstein/catlog/pkg/catlog/webhook"
)

// Check validates cfg and adds warnings for settings that are accepted but
// have no effect or are risky.
func Check(cfg *Config) *validator.Result {
	result := &validator.Result{}
	for _, err := range Validate(cfg) {
		var fe *FieldError
		if errors.As(err, &fe) {
			result.AddError(fe.Field, fe.Err.Error(), fe.Value)
			continue
		}
		result.AddError("", err.Error(), nil)
	}
	if cfg == nil {
		return result
	}

	sinks, _ := catlog.ParseSinkSelection(cfg.Sinks)
	if sinks.File() && cfg.Directory != "" && !filepath.IsAbs(cfg.Directory) {
		result.AddWarning("directory", "relative directory depends on the working directory", cfg.Directory)
	}
	if cfg.KeepOldLogs && !sinks.File() {
		result.AddWarning("keep_old_logs", "has no effect without the file sink", cfg.Sinks)
	}

	raw := strings.TrimSpace(cfg.Webhook.URL)
	if raw == "" {
		result.AddInfo("webhook.url", "remote notifications are disabled", nil)
		return result
	}
	if _, err := webhook.New(raw); err != nil {
		result.AddError("webhook.url", err.Error(), webhook.Redact(raw))
		return result
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme == "http" {
		result.AddWarning("webhook.url", "uses plain http, the webhook token is sent unencrypted", webhook.Redact(raw))
	}
	if lvl, err := catlog.ParseLevel(cfg.Webhook.MinLevel); err == nil && lvl != catlog.LevelUnset && lvl < catlog.LevelWarning {
		result.AddWarning("webhook.min_level", "forwards routine records to the webhook", cfg.Webhook.MinLevel)
	}
	if cfg.Webhook.RatePerSecond == 0 {
		result.AddInfo("webhook.rate_per_second", "deliveries are not rate limited", nil)
	}
	return result
}
