package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/catlog/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestDefaultLocations(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ConfigHome", ConfigHome(), xdg.ConfigHome},
		{"StateHome", StateHome(), xdg.StateHome},
		{"ConfigDir", ConfigDir(), filepath.Join(xdg.ConfigHome, "catlog")},
		{"ConfigFile", ConfigFile(), filepath.Join(xdg.ConfigHome, "catlog", "config.yaml")},
		{"DefaultLogDir", DefaultLogDir(), filepath.Join(xdg.StateHome, "catlog", "logs")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
			}
			if !filepath.IsAbs(tt.got) {
				t.Errorf("%s() = %q, want absolute path", tt.name, tt.got)
			}
		})
	}

	if !strings.HasPrefix(DefaultLogDir(), StateHome()) {
		t.Error("log directory should live under the state home")
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("default perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "logs")
		if err := EnsureDir(path, 0); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Fatal("expected directory")
		}
		if info.Mode().Perm() != DefaultDirPerm {
			t.Errorf("perm = %o, want %o", info.Mode().Perm(), DefaultDirPerm)
		}
	})

	t.Run("nested", func(t *testing.T) {
		path := filepath.Join(tmpDir, "a", "b", "c")
		if err := EnsureDir(path, 0o755); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat failed: %v", err)
		}
	})

	t.Run("existing keeps perms", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}
		info, _ := os.Stat(path)
		if info.Mode().Perm() != 0o755 {
			t.Errorf("perm = %o, want 755 preserved", info.Mode().Perm())
		}
	})
}
