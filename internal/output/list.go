package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// TemplateEntry is one row of the template listing.
type TemplateEntry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// WriteTemplateList writes entries to w in the given format.
// In text format the path is only shown when verbose is set;
// machine-readable formats always include it.
func WriteTemplateList(w io.Writer, entries []TemplateEntry, verbose bool, format OutputFormat) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(entries)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nonNil(entries)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return writeTemplateText(w, entries, verbose)
	}
}

func writeTemplateText(w io.Writer, entries []TemplateEntry, verbose bool) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", StyleHeading.Render("Installed templates")); err != nil {
		return err
	}

	for _, e := range entries {
		line := "• " + e.Name
		if verbose {
			line += " " + StylePath.Render(e.Path)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// nonNil keeps an empty listing encoded as [] rather than null.
func nonNil(entries []TemplateEntry) []TemplateEntry {
	if entries == nil {
		return []TemplateEntry{}
	}
	return entries
}
