package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/pkg/catlog"
	"github.com/thoreinstein/catlog/pkg/fileutil"
)

var (
	showDir    string
	showFile   string
	showPick   bool
	showFollow bool
	showRaw    bool
)

func init() {
	showCmd.Flags().StringVar(&showDir, "dir", "", "log directory (default: configured directory)")
	showCmd.Flags().StringVar(&showFile, "file", catlog.LatestFileName, "log file name or path")
	showCmd.Flags().BoolVar(&showPick, "pick", false, "choose the log file interactively")
	showCmd.Flags().BoolVarP(&showFollow, "follow", "f", false, "keep printing new records")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print lines exactly as stored")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a log file",
	Long: `Print a log file from the log directory.

By default the latest file is printed with the time rendered in local
time. Use --pick to choose among the rotated files and --follow to keep
printing as records are appended.`,
	Example: `  # Print the latest log
  catlog show

  # Choose an older log file
  catlog show --pick

  # Tail the latest log
  catlog show --follow

See Also: catlog emit`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	dir := showDir
	if dir == "" {
		dir = currentConfig().Directory
	}

	path := resolveLogPath(dir, showFile)
	if showPick {
		picked, err := pickLogFile(cmd.InOrStdin(), cmd.ErrOrStderr(), dir)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		path = picked
	}

	out := cmd.OutOrStdout()
	lines, err := readLogLines(path)
	if err != nil {
		if !showFollow || !errors.Is(err, os.ErrNotExist) {
			return errors.NewUserError(errors.Wrapf(err, "reading %s", path), "Run: catlog emit to create a log file")
		}
	}
	printLines(out, lines, showRaw)

	if !showFollow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return followLog(ctx, out, path, len(lines), showRaw)
}

// resolveLogPath joins bare file names onto dir.
func resolveLogPath(dir, file string) string {
	if file == "" {
		file = catlog.LatestFileName
	}
	if filepath.IsAbs(file) || strings.ContainsRune(file, filepath.Separator) {
		return file
	}
	return filepath.Join(dir, file)
}

// readLogLines reads the lines of a log file.
func readLogLines(path string) ([]string, error) {
	return fileutil.ReadLines(path, fileutil.MaxFileSize)
}

// printLines writes lines to w. Unless raw, parsable lines are rendered with
// a local wall-clock time and a dimmed source column.
func printLines(w io.Writer, lines []string, raw bool) {
	dim := color.New(color.FgHiBlack)
	for _, line := range lines {
		if raw {
			fmt.Fprintln(w, line)
			continue
		}
		parsed, err := catlog.ParseLine(line)
		if err != nil {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n",
			parsed.Time.Local().Format("2006-01-02 15:04:05"),
			dim.Sprint(parsed.Column),
			parsed.Message)
	}
}

// listLogFiles returns the log files in dir, latest first then newest
// rotated number first.
func listLogFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+catlog.FileExtension))
	if err != nil {
		return nil, errors.Wrap(err, "listing log files")
	}
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := filepath.Base(matches[i]), filepath.Base(matches[j])
		if a == catlog.LatestFileName || b == catlog.LatestFileName {
			return a == catlog.LatestFileName && b != catlog.LatestFileName
		}
		var na, nb int
		_, errA := fmt.Sscanf(a, catlog.RotatedFileTemplate, &na)
		_, errB := fmt.Sscanf(b, catlog.RotatedFileTemplate, &nb)
		if errA == nil && errB == nil {
			return na > nb
		}
		return a < b
	})
	return matches, nil
}
