package catlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/catlog/pkg/fileutil"
)

const (
	// LatestFileName is the name of the file holding the current history.
	LatestFileName = "&latest.catLog"
	// RotatedFileTemplate names preserved log files. The verb is replaced by
	// the number of files in the directory plus one.
	RotatedFileTemplate = "log%d.catLog"
	// FileExtension is shared by the latest and the rotated files.
	FileExtension = ".catLog"
)

const (
	logFilePerm = 0o644
	logDirPerm  = 0o755
)

// ErrDirectoryRequired is returned when the file sink is enabled without a
// directory.
var ErrDirectoryRequired = errors.New("log directory is required when file logging is enabled")

// fileSink rewrites the latest log file with the full history.
type fileSink struct {
	dir  string
	path string
}

// RotatedFileName returns the rotated file name for counter n.
func RotatedFileName(n int) string {
	return fmt.Sprintf(RotatedFileTemplate, n)
}

// openFileSink prepares dir for logging. It creates the directory, rotates an
// existing latest file when keepOld is set and checks that the latest file
// can be written. It returns the rotated path, or "" when nothing was rotated.
func openFileSink(dir string, keepOld bool) (*fileSink, string, error) {
	if dir == "" {
		return nil, "", ErrDirectoryRequired
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, "", errors.Wrapf(err, "creating log directory %s", dir)
	}

	s := &fileSink{
		dir:  dir,
		path: filepath.Join(dir, LatestFileName),
	}

	var rotated string
	if keepOld {
		var err error
		rotated, err = s.rotate()
		if err != nil {
			return nil, "", err
		}
	}

	if err := s.probe(); err != nil {
		return nil, "", err
	}
	return s, rotated, nil
}

// rotate copies the latest file to a rotated name. The latest file itself is
// left in place; the next persist overwrites it.
func (s *fileSink) rotate() (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "stat %s", s.path)
	}
	if info.IsDir() {
		return "", errors.Newf("%s is a directory", s.path)
	}

	count, err := countFiles(s.dir)
	if err != nil {
		return "", err
	}

	// Deleted or hand-made files can leave the derived name taken.
	for n := count + 1; ; n++ {
		dst := filepath.Join(s.dir, RotatedFileName(n))
		err := fileutil.CopyFile(s.path, dst)
		if err == nil {
			return dst, nil
		}
		if !errors.Is(err, fileutil.ErrExists) {
			return "", errors.Wrap(err, "rotating log file")
		}
	}
}

func (s *fileSink) probe() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, logFilePerm)
	if err != nil {
		return errors.Wrapf(err, "opening log file %s", s.path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing log file %s", s.path)
	}
	return nil
}

func (s *fileSink) persist(lines []string) error {
	return fileutil.AtomicWriteLines(s.path, lines, logFilePerm)
}

// countFiles counts regular files directly inside dir.
func countFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "reading log directory %s", dir)
	}
	n := 0
	for _, e := range entries {
		if e.Type().IsRegular() {
			n++
		}
	}
	return n, nil
}
