package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	home := filepath.Join(xdg.ConfigHome, "stamp")
	assert.Equal(t, home, paths.HomeDir)
	assert.Equal(t, filepath.Join(home, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(home, "templates"), paths.TemplatesDir)
}

func TestGetConfigFile_EnvOverride(t *testing.T) {
	t.Setenv("STAMP_CONFIG", "/tmp/custom.yaml")

	got, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", got)
}

func TestLocalTemplatesDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/work", ".stamp", "templates"), LocalTemplatesDir("/work"))
}

func TestEnsureGlobalTemplatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "stamp", "templates")

	require.NoError(t, EnsureGlobalTemplatesDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	require.NoError(t, EnsureGlobalTemplatesDir(dir))
}

func TestEnsureGlobalTemplatesDir_Failure(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))

	err := EnsureGlobalTemplatesDir(filepath.Join(parent, "templates"))
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrFilesystem)
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no tilde", "/absolute/path", "/absolute/path"},
		{"relative path", "relative/path", "relative/path"},
		{"tilde only", "~", homeDir},
		{"tilde with path", "~/templates", filepath.Join(homeDir, "templates")},
		{"tilde username not expanded", "~username/file", "~username/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
