package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recipefinder"
)

var recipes = []recipefinder.Recipe{
	{
		ID:       "52772",
		Name:     "Teriyaki Chicken Casserole",
		Area:     "Japanese",
		Category: "Chicken",
		Tags:     []string{"Meat", "Casserole"},
		Ingredients: []recipefinder.Ingredient{
			{Name: "soy sauce", Measure: "3/4 cup"},
			{Name: "salt"},
		},
		Thumbnail: "https://example.test/t.jpg",
	},
	{ID: "1", Name: "Toast, buttered"},
}

var wantRows = [][]string{
	{"id", "name", "area", "category", "tags", "ingredients", "thumbnail", "youtube"},
	{"52772", "Teriyaki Chicken Casserole", "Japanese", "Chicken", "Meat,Casserole", "3/4 cup soy sauce; salt", "https://example.test/t.jpg", ""},
	{"1", "Toast, buttered", "", "", "", "", "", ""},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recipes))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, wantRows, rows)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, recipes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := range wantRows {
		assert.Equal(t, trimTrailing(wantRows[i]), trimTrailing(rows[i]))
	}
}

// trimTrailing drops trailing empty cells, which GetRows may omit.
func trimTrailing(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv by extension", func(t *testing.T) {
		path := filepath.Join(dir, "out.CSV")
		require.NoError(t, WriteFile(path, recipes))
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "Teriyaki Chicken Casserole")
	})

	t.Run("xlsx by extension", func(t *testing.T) {
		path := filepath.Join(dir, "out.xlsx")
		require.NoError(t, WriteFile(path, recipes))
		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
	})

	t.Run("unsupported extension", func(t *testing.T) {
		err := WriteFile(filepath.Join(dir, "out.pdf"), recipes)
		assert.ErrorContains(t, err, `unsupported export format ".pdf"`)
		assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
	})
}
