package templates

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

// ListFiles returns the files under dir as slash-separated relative paths
// in lexical order. Symlinks are followed for files only.
func ListFiles(fsys afero.Fs, dir string) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := fsys.Stat(path)
			if err != nil {
				return err
			}
			info = target
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, oerrors.NewFilesystemError("reading template files", dir, err)
	}

	return files, nil
}

// sourceFile is a template file read into memory.
type sourceFile struct {
	name    string
	content string
	mode    os.FileMode
}

// readFiles loads every file of a template directory in lexical order.
func readFiles(fsys afero.Fs, dir string) ([]sourceFile, error) {
	names, err := ListFiles(fsys, dir)
	if err != nil {
		return nil, err
	}

	files := make([]sourceFile, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))

		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, oerrors.NewFilesystemError("reading template file", path, err)
		}

		mode := os.FileMode(0o644)
		if info, err := fsys.Stat(path); err == nil && info.Mode().Perm() != 0 {
			mode = info.Mode().Perm()
		}

		files = append(files, sourceFile{name: name, content: string(content), mode: mode})
	}

	return files, nil
}
