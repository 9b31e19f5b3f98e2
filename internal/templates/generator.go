package templates

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

// Generator runs a template: discover, resolve, collect, render.
type Generator struct {
	discoverer *Discoverer
	resolver   *Resolver
	collector  *Collector
	renderer   *Renderer
}

// NewGenerator wires the pipeline stages together. All filesystem access
// goes through fsys; prompts go through collector.
func NewGenerator(fsys afero.Fs, engine *Engine, globalDir string, collector *Collector) *Generator {
	return &Generator{
		discoverer: NewDiscoverer(fsys, globalDir),
		resolver:   NewResolver(fsys, engine),
		collector:  collector,
		renderer:   NewRenderer(fsys, engine),
	}
}

// Generate renders the named template into opts.OutDir.
// opts.Context is copied, never modified.
func (g *Generator) Generate(opts GenerateOptions) (*GenerateResult, error) {
	reg, err := g.discoverer.Discover(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	tmpl, ok := reg.Lookup(opts.TemplateName)
	if !ok {
		return nil, oerrors.NewNotFoundError(
			output.StyleNoun.Render(opts.TemplateName),
			"Run 'stamp list' to see the installed templates.",
		)
	}

	required, err := g.resolver.RequiredParameters(tmpl.Path)
	if err != nil {
		return nil, err
	}

	ctx := make(map[string]string, len(opts.Context)+len(required))
	for k, v := range opts.Context {
		ctx[k] = v
	}

	missing := MissingParameters(required, ctx)
	if len(missing) > 0 {
		if g.collector == nil {
			return nil, oerrors.NewInputError(fmt.Sprintf("missing parameters %v", missing), nil)
		}
		ctx, err = g.collector.Fill(missing, ctx)
		if err != nil {
			return nil, err
		}
	}

	outDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, oerrors.NewFilesystemError("resolving output directory", opts.OutDir, err)
	}

	output.Debug("generating",
		"template", tmpl.Name,
		"source", tmpl.Path,
		"target", outDir,
		"parameters", len(required))

	files, err := g.renderer.RenderAll(tmpl.Path, ctx, outDir)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Files:     files,
		Template:  tmpl,
		TargetDir: outDir,
		Context:   ctx,
	}, nil
}
