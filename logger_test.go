package recipefinder

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSearchLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileSearchLogger(&buf)

	require.NoError(t, logger.LogSearch(SearchLog{Flow: "search", Kind: KindIngredient, Value: "egg", Results: 2}))
	require.NoError(t, logger.LogSearch(SearchLog{Flow: "pantry", Results: 0, Error: "none"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "each entry is written as it is logged")

	var first, second SearchLog
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "egg", first.Value)
	assert.Equal(t, "none", second.Error)
}

func TestStdoutSearchLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutSearchLogger{out: &buf}

	require.NoError(t, logger.LogSearch(SearchLog{Flow: "search", Value: "egg", Results: 3}))
	require.NoError(t, logger.LogSearch(SearchLog{Flow: "random", Results: 1}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry SearchLog
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "egg", entry.Value)
	assert.Equal(t, 3, entry.Results)
}

func TestNewSearchLogFilePath(t *testing.T) {
	got := NewSearchLogFilePath("logs", "Pantry Search")
	assert.Equal(t, "logs", filepath.Dir(got))
	assert.True(t, strings.HasSuffix(got, ".pantry_search.jsonl"), got)
}

func TestNewSearchLogger(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		logger, cleanup, err := NewSearchLogger(SearchLogConfig{Sink: "none"}, "search")
		require.NoError(t, err)
		assert.IsType(t, &NoOpSearchLogger{}, logger)
		assert.NoError(t, cleanup())
	})

	t.Run("stdout", func(t *testing.T) {
		logger, cleanup, err := NewSearchLogger(SearchLogConfig{Sink: "stdout"}, "search")
		require.NoError(t, err)
		assert.IsType(t, &StdoutSearchLogger{}, logger)
		assert.NoError(t, cleanup())
	})

	t.Run("file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")
		logger, cleanup, err := NewSearchLogger(SearchLogConfig{Sink: "file", Dir: dir}, "search")
		require.NoError(t, err)
		defer cleanup()

		for _, v := range []string{"egg", "milk", "rice"} {
			require.NoError(t, logger.LogSearch(SearchLog{Flow: "search", Value: v}))
		}

		files, err := filepath.Glob(filepath.Join(dir, "*.search.jsonl"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		// Entries are on disk before the file is closed.
		data, err := os.ReadFile(files[0])
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[2], `"value":"rice"`)

		assert.NoError(t, cleanup())
	})

	t.Run("unknown sink", func(t *testing.T) {
		_, _, err := NewSearchLogger(SearchLogConfig{Sink: "kafka"}, "search")
		assert.EqualError(t, err, `unknown search log sink "kafka"`)
	})
}
