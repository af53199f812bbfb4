package catlog

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

func TestRecordString(t *testing.T) {
	ts := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	tests := []struct {
		name   string
		source string
		msg    string
		want   string
	}{
		{"short source", "net", "up", "1700000000 : net             up"},
		{"exact width", "fifteen-chars-x", "m", "1700000000 : fifteen-chars-x m"},
		{"long source is cut", "a-very-long-source-name", "m", "1700000000 : a-very-long-sou m"},
		{"empty source", "", "m", "1700000000 :                 m"},
		{"empty message", "net", "", "1700000000 : net             "},
		{"multi-byte source", "héllo", "m", "1700000000 : héllo           m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRecord(LevelInfo, tt.source, tt.msg, ts).String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRecordUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	r := NewRecord(LevelInfo, "s", "m", time.Date(2024, 1, 1, 5, 0, 0, 0, loc))
	if r.Time.Location() != time.UTC {
		t.Errorf("Time location = %v, want UTC", r.Time.Location())
	}
	if r.Time.Hour() != 0 {
		t.Errorf("Time.Hour() = %d, want 0", r.Time.Hour())
	}
}

func TestPadSource(t *testing.T) {
	inputs := []string{"", "a", "abcdefghijklmno", "abcdefghijklmnop", "日本語", strings.Repeat("é", 40)}
	for _, in := range inputs {
		got := PadSource(in, SourceWidth)
		if n := utf8.RuneCountInString(got); n != SourceWidth {
			t.Errorf("PadSource(%q) has %d runes, want %d", in, n, SourceWidth)
		}
	}
	if got := PadSource("abc", 0); got != "" {
		t.Errorf("PadSource with zero width = %q", got)
	}
}

func TestParseLine(t *testing.T) {
	ts := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	r := NewRecord(LevelWarning, "scheduler", "job : late", ts)

	line, err := ParseLine(r.String())
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !line.Time.Equal(ts) {
		t.Errorf("Time = %v, want %v", line.Time, ts)
	}
	if line.Source != "scheduler" {
		t.Errorf("Source = %q", line.Source)
	}
	if line.Column != PadSource("scheduler", SourceWidth) {
		t.Errorf("Column = %q", line.Column)
	}
	if line.Message != "job : late" {
		t.Errorf("Message = %q", line.Message)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"no separator",
		"abc : source          msg",
		"1700000000 : short",
		"1700000000 : fifteen-chars-xY",
	} {
		if _, err := ParseLine(in); !errors.Is(err, ErrMalformedLine) {
			t.Errorf("ParseLine(%q) error = %v, want ErrMalformedLine", in, err)
		}
	}
}
