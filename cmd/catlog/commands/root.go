// Package commands implements the CLI commands for catlog.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/catlog/cmd"
	"github.com/thoreinstein/catlog/internal/config"
	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the diagnostics log file.
var logFile string

// diagFile is the open --log-file, closed by Execute.
var diagFile *os.File

// configPath holds the value of the --config flag.
var configPath string

// appConfig is the configuration loaded by initConfig.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase diagnostic verbosity (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error diagnostics")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"diagnostics format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write diagnostics to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or ~/.config/catlog/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("catlog version {{.Version}}\n")

	// main prints errors with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "catlog",
	Short: "Severity-filtered logging to console, file and chat webhooks",
	Long: `catlog writes log records to the console, to a &latest.catLog file in a
log directory and, for severe records, to a chat webhook.

Records below the configured minimum level are dropped. When a log
directory is reused, the previous latest file can be kept under a
numbered name (log1.catLog, log2.catLog, ...).`,
	Example: `  # Log a warning from the "deploy" source
  catlog emit -s deploy -l warning "disk almost full"

  # Pipe a build log in, one record per line
  make 2>&1 | catlog emit -s build --stdin

  # Print the latest log file
  catlog show

  See Also: catlog levels, catlog config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging installs the diagnostics logger as slog.Default and on the
// command context, where the catlog logger and the follow loop pick it up.
func setupLogging(cmd *cobra.Command) error {
	level, err := diagnosticsLevel()
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}

	var fileHandler slog.Handler
	if logFile != "" {
		closeDiagnostics()
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening diagnostics file"), "Check the --log-file path")
		}
		diagFile = f
		fileHandler = logging.NewFormatHandler(logging.FormatJSON, f, opts)
	}

	logger := slog.New(logging.Tee(
		logging.NewFormatHandler(logging.Format(logFormat), cmd.ErrOrStderr(), opts),
		fileHandler,
	))
	slog.SetDefault(logger)

	// Cobra only copies the root context into a subcommand whose own context
	// is nil, so derive from the root each run.
	ctx := cmd.Root().Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// diagnosticsLevel resolves -q, -v and CATLOG_DEBUG. Flags win over the
// environment.
func diagnosticsLevel() (slog.Level, error) {
	if quiet && verbosity > 0 {
		return 0, errors.NewUserError(errors.New("conflicting flags"), "Use either --quiet or --verbose")
	}
	if quiet {
		return slog.LevelError, nil
	}

	v := verbosity
	if v == 0 {
		switch os.Getenv("CATLOG_DEBUG") {
		case "1", "true":
			v = 2
		case "2":
			v = 3
		}
	}
	return logging.LevelFromVerbosity(v), nil
}

// closeDiagnostics closes the --log-file handle, if any.
func closeDiagnostics() {
	if diagFile != nil {
		_ = diagFile.Close()
		diagFile = nil
	}
}

// configOptional lists commands that run without a valid configuration.
// config edit is how a broken file gets fixed.
var configOptional = map[string]bool{
	"help":    true,
	"version": true,
	"levels":  true,
	"init":    true,
	"edit":    true,
}

// checkConfig reports config load errors for commands that need the config.
func checkConfig(cmd *cobra.Command) error {
	if configOptional[cmd.Name()] {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if appConfig == nil {
		appConfig = config.Default()
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer closeDiagnostics()
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
