// Package output renders command results as JSON, YAML or an aligned table.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/search"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// Writer serializes values in one format.
type Writer struct {
	format Format
	output io.Writer
}

// NewWriter returns a Writer for format. A nil output writes to os.Stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatJSON:
		encoder := json.NewEncoder(w.output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		encoder := yaml.NewEncoder(w.output)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return encoder.Close()
	case FormatTable:
		return w.serializeTable(v)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeTable(v any) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)

	switch v := v.(type) {
	case search.Results:
		fmt.Fprintf(tw, "%s (%s)\n", v.Title, v.CountLabel())
		recipeRows(tw, v.Recipes)
	case []recipefinder.Recipe:
		recipeRows(tw, v)
	case *detail.Page:
		pageRows(tw, v)
	case []string:
		if len(v) == 0 {
			fmt.Fprintln(tw, "<empty>")
		}
		for _, s := range v {
			fmt.Fprintln(tw, s)
		}
	default:
		fmt.Fprintf(tw, "%v\n", v)
	}
	return tw.Flush()
}

func recipeRows(tw io.Writer, recipes []recipefinder.Recipe) {
	fmt.Fprintln(tw, "ID\tNAME\tAREA\tCATEGORY")
	for _, r := range recipes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, dash(r.Area), dash(r.Category))
	}
}

func pageRows(tw io.Writer, p *detail.Page) {
	r := p.Recipe
	fmt.Fprintf(tw, "ID\t%s\n", r.ID)
	fmt.Fprintf(tw, "NAME\t%s\n", r.Name)
	fmt.Fprintf(tw, "AREA\t%s\n", dash(r.Area))
	fmt.Fprintf(tw, "CATEGORY\t%s\n", dash(r.Category))
	if len(r.Tags) > 0 {
		fmt.Fprintf(tw, "TAGS\t%s\n", strings.Join(r.Tags, ", "))
	}
	for i, line := range p.IngredientLines {
		label := ""
		if i == 0 {
			label = "INGREDIENTS"
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, line)
	}
	for i, para := range p.Paragraphs {
		label := ""
		if i == 0 {
			label = "INSTRUCTIONS"
		}
		fmt.Fprintf(tw, "%s\t%s\n", label, para)
	}
	suggestionRow(tw, p.AreaTitle, p.MoreFromArea)
	suggestionRow(tw, p.CategoryTitle, p.MoreFromCategory)
}

func suggestionRow(tw io.Writer, title string, recipes []recipefinder.Recipe) {
	if len(recipes) == 0 {
		return
	}
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(title), strings.Join(names, ", "))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
