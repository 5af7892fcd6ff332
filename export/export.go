// Package export writes recipe listings as CSV or XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"recipefinder"
)

const sheet = "Sheet1"

var header = []string{"id", "name", "area", "category", "tags", "ingredients", "thumbnail", "youtube"}

func row(r recipefinder.Recipe) []string {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, strings.TrimSpace(ing.Measure+" "+ing.Name))
	}
	return []string{
		r.ID, r.Name, r.Area, r.Category,
		strings.Join(r.Tags, ","), strings.Join(lines, "; "),
		r.Thumbnail, r.YouTube,
	}
}

// WriteFile writes recipes to path in the format named by its extension
// (.csv or .xlsx).
func WriteFile(path string, recipes []recipefinder.Recipe) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		if err := WriteCSV(&buf, recipes); err != nil {
			return err
		}
	case ".xlsx":
		if err := WriteXLSX(&buf, recipes); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q (want .csv or .xlsx)", ext)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func WriteCSV(out io.Writer, recipes []recipefinder.Recipe) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := w.Write(row(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func WriteXLSX(out io.Writer, recipes []recipefinder.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(header)); err != nil {
		return err
	}
	for i, r := range recipes {
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, cells(row(r))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(out)
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
