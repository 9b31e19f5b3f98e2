package templates

import (
	"github.com/spf13/afero"

	"github.com/stamp-dev/stamp/internal/output"
)

// Resolver computes the variables a template requires.
type Resolver struct {
	fs     afero.Fs
	engine *Engine
}

// NewResolver creates a resolver reading templates from fsys.
func NewResolver(fsys afero.Fs, engine *Engine) *Resolver {
	return &Resolver{fs: fsys, engine: engine}
}

// FileParameters lists the variables one template file references.
type FileParameters struct {
	// Path is the file's path relative to the template directory.
	Path string

	// Parameters are the variables of the file name followed by those of
	// the content, deduplicated.
	Parameters []string
}

// Files returns the variables referenced by each file under dir, in lexical
// file order.
func (r *Resolver) Files(dir string) ([]FileParameters, error) {
	files, err := readFiles(r.fs, dir)
	if err != nil {
		return nil, err
	}

	out := make([]FileParameters, 0, len(files))
	for _, f := range files {
		nameVars, err := r.engine.ParseVariables(f.name, f.name)
		if err != nil {
			return nil, err
		}

		contentVars, err := r.engine.ParseVariables(f.name, f.content)
		if err != nil {
			return nil, err
		}

		out = append(out, FileParameters{
			Path:       f.name,
			Parameters: dedupe(append(nameVars, contentVars...)),
		})
	}

	return out, nil
}

// RequiredParameters returns every variable referenced by the file names and
// file contents under dir, deduplicated in order of first occurrence.
// Each file contributes its name's variables before its content's.
func (r *Resolver) RequiredParameters(dir string) ([]string, error) {
	files, err := r.Files(dir)
	if err != nil {
		return nil, err
	}

	var params []string
	for _, f := range files {
		params = append(params, f.Parameters...)
	}

	params = dedupe(params)
	output.Debug("resolved parameters", "template", dir, "parameters", params)

	return params, nil
}

// MissingParameters returns the entries of required absent from ctx,
// preserving order.
func MissingParameters(required []string, ctx map[string]string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
