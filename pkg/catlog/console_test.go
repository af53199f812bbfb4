package catlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestConsoleSink_Color(t *testing.T) {
	var buf bytes.Buffer
	s := newConsoleSink(&buf, ColorAlways)
	r := NewRecord(LevelError, "db", "lost", time.Unix(1, 0))

	if err := s.write(r); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "\x1b[91m") {
		t.Errorf("expected bright red prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m\n") {
		t.Errorf("expected reset before newline, got %q", got)
	}
	if !strings.Contains(got, r.String()) {
		t.Errorf("output %q does not contain %q", got, r.String())
	}
}

func TestConsoleSink_NoColor(t *testing.T) {
	var buf bytes.Buffer
	s := newConsoleSink(&buf, ColorNever)
	r := NewRecord(LevelWarning, "db", "slow", time.Unix(1, 0))

	if err := s.write(r); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), r.String()+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConsoleSink_AutoIsPlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	s := newConsoleSink(&buf, ColorAuto)
	if err := s.write(NewRecord(LevelNotice, "x", "y", time.Unix(1, 0))); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("auto mode colored a non-terminal: %q", buf.String())
	}
}

// writeRecorder keeps every Write call separately.
type writeRecorder struct{ writes []string }

func (w *writeRecorder) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestConsoleSink_ColorAndResetInOneWrite(t *testing.T) {
	var w writeRecorder
	s := newConsoleSink(&w, ColorAlways)

	for _, l := range Levels() {
		if err := s.write(NewRecord(l, "src", "msg", time.Unix(1, 0))); err != nil {
			t.Fatal(err)
		}
	}

	if len(w.writes) != len(Levels()) {
		t.Fatalf("got %d writes for %d records", len(w.writes), len(Levels()))
	}
	for i, got := range w.writes {
		if !strings.HasPrefix(got, "\x1b[") || !strings.HasSuffix(got, "\x1b[0m\n") {
			t.Errorf("write %d = %q, want color and reset in the same write", i, got)
		}
	}
}

func TestConsoleSink_WriteError(t *testing.T) {
	s := newConsoleSink(failingWriter{}, ColorNever)
	if err := s.write(NewRecord(LevelInfo, "x", "y", time.Unix(1, 0))); err == nil {
		t.Error("expected write error")
	}
}

func TestParseColorMode(t *testing.T) {
	tests := map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "ALWAYS": ColorAlways, "never": ColorNever}
	for in, want := range tests {
		got, err := ParseColorMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColorMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseColorMode("rainbow"); !errors.Is(err, ErrUnknownColorMode) {
		t.Errorf("expected ErrUnknownColorMode, got %v", err)
	}
}
