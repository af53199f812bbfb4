package commands

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/catlog/internal/cli/prompt"
	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/logging"
)

// previewLines is the number of trailing lines shown in the picker preview.
const previewLines = 40

// pickLogFile lets the user choose a log file in dir. The fuzzy finder is
// used on a terminal, a numbered prompt otherwise. It returns an empty path
// when the user aborts.
func pickLogFile(in io.Reader, out io.Writer, dir string) (string, error) {
	files, err := listLogFiles(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", errors.NewUserError(errors.Newf("no log files in %s", dir), "Run: catlog emit to create a log file")
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}

	var idx int
	if logging.IsTerminal(in) {
		idx, err = fuzzyPick(files, names)
	} else {
		idx, err = prompt.NewSelector(in, out).Select("Log file", names)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return "", nil
		}
	}
	if err != nil || idx < 0 {
		return "", err
	}
	return files[idx], nil
}

func fuzzyPick(files, names []string) (int, error) {
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			lines, err := readLogLines(files[i])
			if err != nil {
				return err.Error()
			}
			if len(lines) > previewLines {
				lines = lines[len(lines)-previewLines:]
			}
			return strings.Join(lines, "\n")
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, nil
		}
		return -1, errors.Wrap(err, "picking log file")
	}
	return idx, nil
}

