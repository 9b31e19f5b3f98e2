package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

const (
	// AppDirName is the directory name under the user configuration directory.
	AppDirName = "stamp"

	// TemplatesDirName is the templates folder inside a stamp directory.
	TemplatesDirName = "templates"

	// LocalDirName is the hidden per-project stamp directory searched upward
	// from the working directory.
	LocalDirName = "." + AppDirName

	// ConfigFileName is the config file inside the stamp config directory.
	ConfigFileName = "config.yaml"
)

// Paths contains standard filesystem paths for stamp.
type Paths struct {
	// HomeDir is <config-home>/stamp.
	HomeDir string

	// ConfigFile is <config-home>/stamp/config.yaml.
	ConfigFile string

	// TemplatesDir is <config-home>/stamp/templates.
	TemplatesDir string
}

// DefaultPaths returns the default paths rooted at the platform user
// configuration directory.
func DefaultPaths() (*Paths, error) {
	if xdg.ConfigHome == "" {
		return nil, fmt.Errorf("user configuration directory is not set")
	}

	home := filepath.Join(xdg.ConfigHome, AppDirName)

	return &Paths{
		HomeDir:      home,
		ConfigFile:   filepath.Join(home, ConfigFileName),
		TemplatesDir: filepath.Join(home, TemplatesDirName),
	}, nil
}

// DefaultTemplatesDir returns <config-home>/stamp/templates.
func DefaultTemplatesDir() (string, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.TemplatesDir, nil
}

// GetConfigFile returns the config file path.
// If STAMP_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("STAMP_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// LocalTemplatesDir returns the local templates folder under dir.
func LocalTemplatesDir(dir string) string {
	return filepath.Join(dir, LocalDirName, TemplatesDirName)
}

// EnsureGlobalTemplatesDir creates the global templates directory if it
// doesn't exist. It is safe to call repeatedly.
func EnsureGlobalTemplatesDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return oerrors.NewFilesystemError("creating global templates directory", dir, err)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
