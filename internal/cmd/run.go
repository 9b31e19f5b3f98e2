package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stamp-dev/stamp/internal/output"
	"github.com/stamp-dev/stamp/internal/templates"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	var (
		outDir       string
		contextPairs []string
	)

	c := &cobra.Command{
		Use:   "run <template>",
		Short: "Render a template into a directory",
		Long: `Render a template into a directory.

Every placeholder referenced by the template's file names and contents
must have a value. Values come from -c KEY=value flags; anything not
supplied is prompted for on standard input. Existing files are
overwritten.

Examples:
  # Render the "api" template into the current directory
  stamp run api

  # Render into ./billing, supplying some values up front
  stamp run api -o billing -c name=billing -c owner=payments`,
		Args: exactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return exitError(runTemplate(c, args[0], outDir, contextPairs))
		},
	}

	c.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write files to (defaults to the current directory)")
	c.Flags().StringArrayVarP(&contextPairs, "context", "c", nil, "Template value as KEY=value (repeatable)")

	return c
}

func runTemplate(c *cobra.Command, name, outDir string, pairs []string) error {
	// Malformed pairs are rejected before any template is looked up.
	ctx, err := ParseContext(pairs)
	if err != nil {
		return err
	}

	wd, err := workingDir()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = wd
	}

	globalDir, err := globalTemplatesDir()
	if err != nil {
		return err
	}

	engine, err := templates.NewEngine()
	if err != nil {
		return err
	}

	in := c.InOrStdin()
	collector := templates.NewCollector(in, c.OutOrStdout())
	if f, ok := in.(*os.File); ok {
		collector.Echo = !output.IsTerminal(f)
	}

	result, err := templates.NewGenerator(fsys, engine, globalDir, collector).Generate(templates.GenerateOptions{
		TemplateName: name,
		WorkDir:      wd,
		OutDir:       outDir,
		Context:      ctx,
	})
	if err != nil {
		return err
	}

	output.Debug("template rendered",
		"template", result.Template.Name,
		"target", result.TargetDir,
		"files", len(result.Files))

	for _, f := range result.Files {
		if _, err := fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(f)); err != nil {
			return err
		}
	}

	return nil
}
