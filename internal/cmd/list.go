package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var (
		verbose      bool
		outputFormat string
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List installed templates",
		Long: `Lists every template visible from the current directory.

Local templates shadow global templates of the same name; only the
template that would be used is shown.`,
		Args: exactArgs(0),
		RunE: func(c *cobra.Command, args []string) error {
			return exitError(runList(c, verbose, outputFormat))
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the directory of each template")
	c.Flags().StringVarP(&outputFormat, "output", "o", "text",
		fmt.Sprintf("Output format (%s)", strings.Join(output.ValidFormats(), ", ")))

	return c
}

func runList(c *cobra.Command, verbose bool, outputFormat string) error {
	format, err := output.ParseOutputFormat(outputFormat)
	if err != nil {
		return oerrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Valid formats: %s", strings.Join(output.ValidFormats(), ", ")))
	}

	reg, err := discoverTemplates()
	if err != nil {
		return err
	}

	tmpls := reg.Templates()
	entries := make([]output.TemplateEntry, 0, len(tmpls))
	for _, t := range tmpls {
		entries = append(entries, output.TemplateEntry{Name: t.Name, Path: t.Path})
	}

	return output.WriteTemplateList(c.OutOrStdout(), entries, verbose, format)
}
