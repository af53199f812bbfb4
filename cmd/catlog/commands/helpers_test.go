package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/thoreinstein/catlog/pkg/catlog"
)

// resetFlags restores every package-level flag variable so that tests do
// not observe values parsed by earlier executions.
func resetFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	closeDiagnostics()
	configPath = ""
	appConfig = nil
	configLoadErr = nil

	emitSource = "catlog"
	emitLevel = "info"
	emitStdin = false

	showDir = ""
	showFile = catlog.LatestFileName
	showPick = false
	showFollow = false
	showRaw = false

	configValidateFormat = "text"
	configInitFormat = "yaml"
	configInitForce = false
	configInitPath = ""

	loggerOptions = nil
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	viper.Reset()
	t.Cleanup(func() {
		resetFlags()
		viper.Reset()
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// writeTestConfig writes a YAML config file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// isolateXDG points the XDG config and state homes at fresh temp dirs.
func isolateXDG(t *testing.T) {
	t.Helper()
	// Registered first so it runs after t.Setenv has restored the env.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
}
