package templates

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"

	"github.com/stamp-dev/stamp/internal/config"
	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

// Discoverer builds the template registry for a working directory.
type Discoverer struct {
	fs        afero.Fs
	globalDir string
}

// NewDiscoverer creates a discoverer that searches local .stamp/templates
// folders on fsys and finally globalDir.
func NewDiscoverer(fsys afero.Fs, globalDir string) *Discoverer {
	return &Discoverer{fs: fsys, globalDir: globalDir}
}

// Discover returns the templates visible from workDir.
//
// Local folders are searched from workDir up to the filesystem root, then
// the global directory once. The first directory to provide a name wins, so
// a deeper local template shadows a shallower one, which shadows a global one.
func (d *Discoverer) Discover(workDir string) (Registry, error) {
	reg := Registry{}

	dir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, oerrors.NewFilesystemError("resolving working directory", workDir, err)
	}

	for {
		reg, err = ScanLevel(d.fs, reg, config.LocalTemplatesDir(dir))
		if err != nil {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if d.globalDir != "" {
		reg, err = ScanLevel(d.fs, reg, d.globalDir)
		if err != nil {
			return nil, err
		}
	}

	return reg, nil
}

// ScanLevel returns a copy of reg extended with the immediate subdirectories
// of templatesDir whose names are not registered yet. reg is not modified.
//
// A missing templatesDir contributes nothing; one that exists but cannot be
// read is an error.
func ScanLevel(fsys afero.Fs, reg Registry, templatesDir string) (Registry, error) {
	out := make(Registry, len(reg))
	for name, path := range reg {
		out[name] = path
	}

	info, err := fsys.Stat(templatesDir)
	if err != nil {
		if isAbsent(err) {
			return out, nil
		}
		return nil, oerrors.NewFilesystemError("reading templates directory", templatesDir, err)
	}
	if !info.IsDir() {
		return out, nil
	}

	entries, err := afero.ReadDir(fsys, templatesDir)
	if err != nil {
		return nil, oerrors.NewFilesystemError("reading templates directory", templatesDir, err)
	}

	output.Debug("scanning templates", "dir", templatesDir, "entries", len(entries))

	for _, entry := range entries {
		path := filepath.Join(templatesDir, entry.Name())

		isDir := entry.IsDir()
		if entry.Mode()&os.ModeSymlink != 0 {
			if target, err := fsys.Stat(path); err == nil {
				isDir = target.IsDir()
			}
		}
		if !isDir {
			continue
		}

		if existing, ok := out[entry.Name()]; ok {
			output.Debug("template shadowed", "name", entry.Name(), "path", path, "by", existing)
			continue
		}

		output.Debug("template registered", "name", entry.Name(), "path", path)
		out[entry.Name()] = path
	}

	return out, nil
}

// isAbsent reports whether err means the path does not exist, including a
// path component that is a regular file.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
