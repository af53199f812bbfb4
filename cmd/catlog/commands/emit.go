package commands

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/pkg/catlog"
)

var (
	emitSource string
	emitLevel  string
	emitStdin  bool
)

func init() {
	emitCmd.Flags().StringVarP(&emitSource, "source", "s", "catlog", "source name of the records")
	emitCmd.Flags().StringVarP(&emitLevel, "level", "l", "info", "severity of the records")
	emitCmd.Flags().BoolVar(&emitStdin, "stdin", false, "log each line read from standard input")
	rootCmd.AddCommand(emitCmd)
}

var emitCmd = &cobra.Command{
	Use:   "emit [flags] [message...]",
	Short: "Log a message",
	Long: `Initialize a logger from the configuration and log one record.

The message is the space-joined arguments. With --stdin every input line
becomes its own record. Records below the configured min_level are dropped.`,
	Example: `  # Log an error
  catlog emit -s db -l error "connection refused"

  # Log every line of a file
  catlog emit -s import --stdin < import.log

See Also: catlog show, catlog levels`,
	RunE: runEmit,
}

func runEmit(cmd *cobra.Command, args []string) error {
	level, err := catlog.ParseLevel(emitLevel)
	if err != nil || level == catlog.LevelUnset {
		return errors.NewUserError(errors.Newf("invalid level %q", emitLevel), "Run: catlog levels")
	}
	if !emitStdin && len(args) == 0 {
		return errors.NewUserError(errors.New("no message given"), "Pass a message or use --stdin")
	}

	l, err := newLogger(cmd, currentConfig())
	if err != nil {
		return err
	}
	defer l.Close()

	if len(args) > 0 {
		l.Log(emitSource, strings.Join(args, " "), level)
	}
	if !emitStdin {
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		l.Log(emitSource, scanner.Text(), level)
	}
	return errors.Wrap(scanner.Err(), "reading standard input")
}
