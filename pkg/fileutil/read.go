package fileutil

import (
	"io"
	"os"
	"strings"

	"github.com/thoreinstein/catlog/internal/errors"
)

// MaxFileSize is the default read limit (64MB). History is unbounded, so
// log files are never loaded whole without one.
const MaxFileSize = 64 << 20

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds read limit")

// ReadLines reads the newline separated lines of path, the inverse of
// AtomicWriteLines. A trailing newline does not produce an empty final
// line, and an empty file yields no lines. Files larger than limit bytes
// fail with ErrFileTooLarge; limit <= 0 means MaxFileSize.
func ReadLines(path string, limit int64) ([]string, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes", path, info.Size())
	}

	// The file may grow between Stat and the read.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds %d bytes", path, limit)
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
