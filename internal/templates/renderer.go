package templates

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

// Renderer renders template files and writes them under an output root.
type Renderer struct {
	fs     afero.Fs
	engine *Engine
}

// NewRenderer creates a renderer reading and writing through fsys.
func NewRenderer(fsys afero.Fs, engine *Engine) *Renderer {
	return &Renderer{fs: fsys, engine: engine}
}

// Render renders the name and content of every file under dir against ctx.
// When two files render to the same path the later one, in lexical source
// order, wins. The result is sorted by TargetPath.
func (r *Renderer) Render(dir string, ctx map[string]string) ([]RenderedFile, error) {
	files, err := readFiles(r.fs, dir)
	if err != nil {
		return nil, err
	}

	byTarget := make(map[string]RenderedFile, len(files))
	for _, f := range files {
		target, err := r.engine.Render(f.name, f.name, ctx)
		if err != nil {
			return nil, err
		}

		target, err = cleanTarget(f.name, target)
		if err != nil {
			return nil, err
		}

		content, err := r.engine.Render(f.name, f.content, ctx)
		if err != nil {
			return nil, err
		}

		if prev, ok := byTarget[target]; ok {
			output.Debug("rendered path collision", "target", target, "replaced", prev.SourcePath, "by", f.name)
		}

		byTarget[target] = RenderedFile{
			SourcePath: f.name,
			TargetPath: target,
			Content:    []byte(content),
			Mode:       f.mode,
		}
	}

	rendered := make([]RenderedFile, 0, len(byTarget))
	for _, rf := range byTarget {
		rendered = append(rendered, rf)
	}
	sort.Slice(rendered, func(i, j int) bool { return rendered[i].TargetPath < rendered[j].TargetPath })

	return rendered, nil
}

// RenderAll renders every file under dir and writes it below outRoot,
// creating parent directories and overwriting existing files. It returns the
// written paths relative to outRoot. Files written before a failure are left
// in place.
func (r *Renderer) RenderAll(dir string, ctx map[string]string, outRoot string) ([]string, error) {
	rendered, err := r.Render(dir, ctx)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(rendered))
	for _, f := range rendered {
		targetPath := filepath.Join(outRoot, filepath.FromSlash(f.TargetPath))

		parentDir := filepath.Dir(targetPath)
		if err := r.fs.MkdirAll(parentDir, 0o755); err != nil {
			return written, oerrors.NewFilesystemError(fmt.Sprintf("creating directory %s", parentDir), f.SourcePath, err)
		}

		if err := afero.WriteFile(r.fs, targetPath, f.Content, f.Mode); err != nil {
			return written, oerrors.NewFilesystemError(fmt.Sprintf("writing %s", targetPath), f.SourcePath, err)
		}

		output.Debug("created file", "path", f.TargetPath, "source", f.SourcePath)
		written = append(written, f.TargetPath)
	}

	return written, nil
}

// cleanTarget normalizes a rendered relative path and rejects ones that
// name no file or would land outside the output root.
func cleanTarget(source, target string) (string, error) {
	slashed := strings.TrimLeft(filepath.ToSlash(target), "/")
	cleaned := path.Clean(slashed)

	if slashed == "" || cleaned == "." || strings.HasSuffix(slashed, "/") {
		return "", oerrors.NewRenderError(fmt.Sprintf("file name renders to %q, which is not a file path", target), source, nil)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", oerrors.NewRenderError(fmt.Sprintf("file name renders to %q, outside the output directory", target), source, nil)
	}

	return cleaned, nil
}
