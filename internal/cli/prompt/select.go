// Package prompt provides line-based CLI prompts for input that is not a
// terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/thoreinstein/catlog/internal/errors"
)

// Sentinel errors for selection.
var (
	ErrNoOptions          = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector asks the user to choose one option by number.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a Selector reading answers from r and writing the
// prompt to w.
func NewSelector(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Select prints options numbered from 1 and returns the index of the chosen
// one. An empty answer picks the first option and a single option is chosen
// without prompting.
//
// Returns:
//   - ErrNoOptions if options is empty
//   - ErrInvalidSelection if the answer is not a number in range
//   - ErrSelectionCancelled on EOF (e.g., Ctrl+D)
func (s *Selector) Select(title string, options []string) (int, error) {
	switch len(options) {
	case 0:
		return -1, ErrNoOptions
	case 1:
		return 0, nil
	}

	fmt.Fprintf(s.writer, "%s:\n", title)
	for i, o := range options {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, o)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return -1, ErrSelectionCancelled
		}
		return -1, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return -1, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(options) {
		return -1, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", n, len(options))
	}
	return n - 1, nil
}
