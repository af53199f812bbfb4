package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/catlog/internal/errors"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", nil},
		{"single line", "1700000000 : auth            token expired\n", []string{"1700000000 : auth            token expired"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"whitespace kept", "  a  \n", []string{"  a  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := ReadLines(path, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLines_WrittenByAtomicWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "&latest.catLog")
	lines := []string{"1 : logger          initialized", "2 : auth            token expired"}
	require.NoError(t, AtomicWriteLines(path, lines, 0o600))

	got, err := ReadLines(path, 0)
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestReadLines_Limit(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		size    int64
		limit   int64
		wantErr bool
	}{
		{"under limit", 10, 16, false},
		{"exact limit", 16, 16, false},
		{"over limit", 17, 16, true},
		{"default limit", MaxFileSize + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, f.Truncate(tt.size))
			require.NoError(t, f.Close())

			_, err = ReadLines(path, tt.limit)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFileTooLarge), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "missing"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
