package catlog

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// SourceWidth is the width of the source column in a rendered line.
const SourceWidth = 15

const timeSeparator = " : "

// ErrMalformedLine is returned by ParseLine for lines that were not produced
// by Record.String.
var ErrMalformedLine = errors.New("malformed log line")

// Record is one logged event. It is created once per accepted Log call and
// never modified afterwards.
type Record struct {
	Level   Level
	Source  string
	Message string
	Time    time.Time
}

// NewRecord builds a record stamped with now, converted to UTC.
func NewRecord(level Level, source, message string, now time.Time) Record {
	return Record{
		Level:   level,
		Source:  source,
		Message: message,
		Time:    now.UTC(),
	}
}

// String renders the record as a single log file line:
//
//	<unix-seconds> : <source padded to SourceWidth> <message>
func (r Record) String() string {
	var b strings.Builder
	b.Grow(20 + len(timeSeparator) + SourceWidth + 1 + len(r.Message))
	b.WriteString(strconv.FormatInt(r.Time.Unix(), 10))
	b.WriteString(timeSeparator)
	b.WriteString(PadSource(r.Source, SourceWidth))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	return b.String()
}

// PadSource fits s into a column of exactly width runes. Shorter values are
// padded with spaces on the right and longer values are cut.
func PadSource(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(width)
	n := 0
	for _, r := range s {
		if n == width {
			break
		}
		b.WriteRune(r)
		n++
	}
	for ; n < width; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}

// Line is a parsed log file line. The level is not part of the file format.
type Line struct {
	Time time.Time
	// Column is the source column exactly as written, padding included.
	Column  string
	Source  string
	Message string
}

// ParseLine parses a line produced by Record.String.
func ParseLine(line string) (Line, error) {
	stamp, rest, ok := strings.Cut(line, timeSeparator)
	if !ok {
		return Line{}, errors.Wrap(ErrMalformedLine, "missing time separator")
	}
	secs, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return Line{}, errors.Wrapf(ErrMalformedLine, "invalid timestamp %q", stamp)
	}

	// The column is SourceWidth runes followed by a single space.
	i, n := 0, 0
	for n < SourceWidth {
		if i >= len(rest) {
			return Line{}, errors.Wrap(ErrMalformedLine, "short source column")
		}
		_, size := utf8.DecodeRuneInString(rest[i:])
		i += size
		n++
	}
	if i >= len(rest) || rest[i] != ' ' {
		return Line{}, errors.Wrap(ErrMalformedLine, "missing message separator")
	}

	column := rest[:i]
	return Line{
		Time:    time.Unix(secs, 0).UTC(),
		Column:  column,
		Source:  strings.TrimRight(column, " "),
		Message: rest[i+1:],
	}, nil
}
