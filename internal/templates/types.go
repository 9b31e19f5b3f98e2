// Package templates discovers project templates and renders them into file trees.
package templates

import (
	"os"
	"sort"
)

// Template is a named directory of files whose names and contents may
// contain placeholders.
type Template struct {
	// Name is the base name of the template directory.
	Name string

	// Path is the template directory.
	Path string
}

// Registry maps template names to their directories.
type Registry map[string]string

// Lookup returns the template registered under name.
func (r Registry) Lookup(name string) (Template, bool) {
	path, ok := r[name]
	if !ok {
		return Template{}, false
	}
	return Template{Name: name, Path: path}, true
}

// Names returns the registered template names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns all registered templates sorted by name.
func (r Registry) Templates() []Template {
	names := r.Names()
	out := make([]Template, 0, len(names))
	for _, name := range names {
		out = append(out, Template{Name: name, Path: r[name]})
	}
	return out
}

// RenderedFile is a template file after rendering.
type RenderedFile struct {
	// SourcePath is the file's path relative to the template directory.
	SourcePath string

	// TargetPath is the rendered relative output path.
	TargetPath string

	// Content is the rendered content.
	Content []byte

	// Mode is the permission of the source file, applied when the output
	// file is created.
	Mode os.FileMode
}

// GenerateOptions configures a run of a template.
type GenerateOptions struct {
	// TemplateName is the template to use.
	TemplateName string

	// WorkDir is where discovery of local templates starts.
	WorkDir string

	// OutDir is the directory files are written under.
	OutDir string

	// Context holds the variables supplied up front. It is never modified.
	Context map[string]string
}

// GenerateResult contains the result of a run.
type GenerateResult struct {
	// Files is the list of written paths relative to TargetDir, sorted.
	Files []string

	// Template is the template that was used.
	Template Template

	// TargetDir is the directory where files were created.
	TargetDir string

	// Context is the final variable map used for rendering.
	Context map[string]string
}
