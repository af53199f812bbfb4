package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/catlog/internal/config"
	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/logging"
	"github.com/thoreinstein/catlog/pkg/catlog"
)

// loggerOptions are extra options applied to loggers built by commands.
// Tests use it to inject transports.
var loggerOptions []catlog.Option

// currentConfig returns the loaded config, or the defaults.
func currentConfig() *config.Config {
	if appConfig == nil {
		return config.Default()
	}
	return appConfig
}

// newLogger builds and initializes a logger from cfg. The console sink
// writes to the command's output.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*catlog.Logger, error) {
	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	opts := []catlog.Option{
		catlog.WithConsoleWriter(cmd.OutOrStdout()),
		catlog.WithDiagnostics(logging.FromContext(cmd.Context())),
	}
	opts = append(opts, loggerOptions...)

	l := catlog.New(opts...)
	if err := l.Initialize(lc); err != nil {
		if errors.Is(err, catlog.ErrConfig) {
			return nil, errors.NewConfigError(err)
		}
		return nil, errors.NewSystemError(err, "check that the log directory is writable")
	}
	return l, nil
}
