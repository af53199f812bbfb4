package catlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SourceKey is the slog attribute key used as the record source.
const SourceKey = "source"

// defaultSlogSource is used when a slog record carries no source attribute.
const defaultSlogSource = "slog"

// SlogHandler returns a slog.Handler that writes through l. Levels are mapped
// with FromSlog, the "source" attribute becomes the record source and the
// remaining attributes are appended to the message as key=value pairs.
func (l *Logger) SlogHandler() slog.Handler {
	return &slogHandler{logger: l, source: defaultSlogSource}
}

type slogHandler struct {
	logger *Logger
	source string
	prefix string
	attrs  []string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(FromSlog(level))
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	source := h.source
	attrs := append([]string(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == SourceKey && h.prefix == "" {
			source = a.Value.String()
			return true
		}
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})

	msg := r.Message
	if len(attrs) > 0 {
		msg += " " + strings.Join(attrs, " ")
	}
	h.logger.Log(source, msg, FromSlog(r.Level))
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append([]string(nil), h.attrs...)
	for _, a := range attrs {
		if a.Key == SourceKey && h.prefix == "" {
			cp.source = a.Value.String()
			continue
		}
		cp.attrs = appendAttr(cp.attrs, h.prefix, a)
	}
	return &cp
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	cp := *h
	cp.prefix = h.prefix + name + "."
	return &cp
}

func appendAttr(dst []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			dst = appendAttr(dst, groupPrefix, ga)
		}
		return dst
	}
	return append(dst, fmt.Sprintf("%s%s=%v", prefix, a.Key, a.Value.Any()))
}
