package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
	"github.com/stamp-dev/stamp/internal/templates"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <template>",
		Short: "Show template details",
		Long: `Shows the template that would be used for a name:
- the directory it was found in
- its files, each with the placeholders it references
- every parameter a run will need`,
		Args: exactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return exitError(runShow(c.OutOrStdout(), args[0]))
		},
	}
}

func runShow(w io.Writer, name string) error {
	reg, err := discoverTemplates()
	if err != nil {
		return err
	}

	tmpl, ok := reg.Lookup(name)
	if !ok {
		return oerrors.NewNotFoundError(
			output.StyleNoun.Render(name),
			"Run 'stamp list' to see the installed templates.",
		)
	}

	engine, err := templates.NewEngine()
	if err != nil {
		return err
	}

	resolver := templates.NewResolver(fsys, engine)

	files, err := resolver.Files(tmpl.Path)
	if err != nil {
		return err
	}

	required, err := resolver.RequiredParameters(tmpl.Path)
	if err != nil {
		return err
	}

	annotated := make(map[string]string, len(files))
	usedIn := make(map[string][]string, len(required))
	for _, f := range files {
		annotated[f.Path] = strings.Join(f.Parameters, ", ")
		for _, p := range f.Parameters {
			usedIn[p] = append(usedIn[p], f.Path)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", tmpl.Name)
	fmt.Fprintf(&b, "Path:     %s\n\n", output.StylePath.Render(tmpl.Path))

	fmt.Fprintf(&b, "Files (%d):\n", len(files))
	b.WriteString(output.RenderFileTree(tmpl.Name, annotated))
	b.WriteString("\n")

	if len(required) == 0 {
		b.WriteString("Parameters: none\n")
	} else {
		usage := make([]output.ParameterUsage, 0, len(required))
		for _, p := range required {
			usage = append(usage, output.ParameterUsage{Name: p, Files: usedIn[p]})
		}
		fmt.Fprintf(&b, "Parameters (%d):\n", len(required))
		b.WriteString(output.RenderParameterTable(usage))
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}
