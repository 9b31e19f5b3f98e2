package cmd

import (
	"os"

	"github.com/spf13/afero"

	"github.com/stamp-dev/stamp/internal/config"
	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/templates"
)

// fsys is the filesystem every command reads templates from and writes to.
var fsys afero.Fs = afero.NewOsFs()

// globalTemplatesDir returns the configured global templates directory.
func globalTemplatesDir() (string, error) {
	if stampConfig != nil && stampConfig.TemplatesDir != "" {
		return stampConfig.TemplatesDir, nil
	}
	return config.DefaultTemplatesDir()
}

// workingDir returns the directory discovery starts from.
func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", oerrors.NewFilesystemError("determining working directory", "", err)
	}
	return wd, nil
}

// discoverTemplates builds the registry visible from the working directory.
func discoverTemplates() (templates.Registry, error) {
	wd, err := workingDir()
	if err != nil {
		return nil, err
	}

	globalDir, err := globalTemplatesDir()
	if err != nil {
		return nil, err
	}

	return templates.NewDiscoverer(fsys, globalDir).Discover(wd)
}
