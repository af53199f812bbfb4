package commands

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/catlog/internal/errors"
	"github.com/thoreinstein/catlog/internal/logging"
)

func TestDiagnosticsLevel(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		quiet     bool
		env       string
		want      slog.Level
	}{
		{"default", 0, false, "", slog.LevelWarn},
		{"-v", 1, false, "", slog.LevelInfo},
		{"-vv", 2, false, "", slog.LevelDebug},
		{"-vvv", 3, false, "", logging.LevelTrace},
		{"quiet", 0, true, "", slog.LevelError},
		{"CATLOG_DEBUG=1", 0, false, "1", slog.LevelDebug},
		{"CATLOG_DEBUG=true", 0, false, "true", slog.LevelDebug},
		{"CATLOG_DEBUG=2", 0, false, "2", logging.LevelTrace},
		{"CATLOG_DEBUG=0", 0, false, "0", slog.LevelWarn},
		{"CATLOG_DEBUG unknown", 0, false, "foo", slog.LevelWarn},
		{"flag beats env", 1, false, "2", slog.LevelInfo},
		{"quiet beats env", 0, true, "2", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			t.Cleanup(resetFlags)
			verbosity, quiet = tt.verbosity, tt.quiet
			t.Setenv("CATLOG_DEBUG", tt.env)

			got, err := diagnosticsLevel()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiagnosticsLevel_QuietAndVerbose(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	verbosity, quiet = 1, true

	_, err := diagnosticsLevel()
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestSetupLogging_InstallsDefault(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	verbosity = 2

	require.NoError(t, setupLogging(rootCmd))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
	assert.False(t, slog.Default().Enabled(t.Context(), logging.LevelTrace))
	assert.Same(t, slog.Default(), logging.FromContext(rootCmd.Context()))
}

func TestSetupLogging_LogFile(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	logFile = filepath.Join(t.TempDir(), "diag.json")

	require.NoError(t, setupLogging(rootCmd))
	slog.Warn("webhook failed", "status", 502)
	closeDiagnostics()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "webhook failed", entry["msg"])
	assert.EqualValues(t, 502, entry["status"])
}

func TestSetupLogging_LogFileUnwritable(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	logFile = filepath.Join(t.TempDir(), "missing", "diag.json")

	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestCheckConfig_BrokenFile(t *testing.T) {
	cfg := writeTestConfig(t, "sinks: [unclosed\n")

	_, err := executeCommand(t, "", "--config", cfg, "emit", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig), "got %v", err)

	_, err = executeCommand(t, "", "--config", cfg, "levels")
	assert.NoError(t, err, "levels does not need a config")
}

func TestSetupLogging_FreshContextPerRun(t *testing.T) {
	marker := mockEditor(t)
	cfg := writeTestConfig(t, "sinks: both\n")

	// Each subtest context is cancelled when it ends, so a subcommand that
	// kept an earlier run's context would fail to start the editor.
	for _, run := range []string{"first", "second", "third"} {
		t.Run(run, func(t *testing.T) {
			if err := os.Remove(marker); err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}
			_, err := executeCommand(t, "", "--config", cfg, "config", "edit")
			require.NoError(t, err)
			assert.FileExists(t, marker)
			assert.NoError(t, configEditCmd.Context().Err())
		})
	}
}

func TestSetupLogging_SubcommandGetsCurrentLogger(t *testing.T) {
	for _, run := range []string{"first", "second"} {
		t.Run(run, func(t *testing.T) {
			_, err := executeCommand(t, "", "levels")
			require.NoError(t, err)
			assert.Same(t, slog.Default(), logging.FromContext(levelsCmd.Context()))
		})
	}
}
