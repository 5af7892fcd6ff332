package recipefinder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// SearchLogger records each search run.
type SearchLogger interface {
	LogSearch(entry SearchLog) error
}

// NewSearchLogFilePath returns a timestamped file path for a search log in dir.
func NewSearchLogFilePath(dir, flow string) string {
	return filepath.Join(dir, fmt.Sprintf(
		"%d.%s.jsonl",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(flow), " ", "_"),
	))
}

// SearchLog represents a single search run.
type SearchLog struct {
	Flow      string        `json:"flow"`
	Kind      string        `json:"kind,omitempty"`
	Value     string        `json:"value,omitempty"`
	Others    string        `json:"others,omitempty"`
	Queries   []QueryLog    `json:"queries,omitempty"`
	Results   int           `json:"results"`
	Duration  time.Duration `json:"duration_ns"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

// QueryLog represents one upstream query issued during a search.
type QueryLog struct {
	Endpoint string `json:"endpoint"`
	Arg      string `json:"arg,omitempty"`
	Results  int    `json:"results"`
	Error    string `json:"error,omitempty"`
}

// FileSearchLogger writes each search as one JSON line as soon as it is
// logged.
type FileSearchLogger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewFileSearchLogger creates a new file-based search logger
func NewFileSearchLogger(writer io.Writer) *FileSearchLogger {
	return &FileSearchLogger{enc: json.NewEncoder(writer)}
}

func (l *FileSearchLogger) LogSearch(entry SearchLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to write search log: %w", err)
	}
	return nil
}

// NoOpSearchLogger discards all entries.
type NoOpSearchLogger struct{}

func NewNoOpSearchLogger() *NoOpSearchLogger {
	return &NoOpSearchLogger{}
}

func (nop *NoOpSearchLogger) LogSearch(entry SearchLog) error {
	return nil
}

// StdoutSearchLogger writes each entry as a JSON line (for Lambda/CloudWatch).
type StdoutSearchLogger struct {
	out io.Writer
}

// NewStdoutSearchLogger creates a logger writing to os.Stdout.
func NewStdoutSearchLogger() *StdoutSearchLogger {
	return &StdoutSearchLogger{out: os.Stdout}
}

func (l *StdoutSearchLogger) LogSearch(entry SearchLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}

// NewSearchLogger builds the logger selected by cfg. The returned cleanup
// closes any file it opened.
func NewSearchLogger(cfg SearchLogConfig, flow string) (SearchLogger, func() error, error) {
	switch cfg.Sink {
	case "", "none":
		return NewNoOpSearchLogger(), func() error { return nil }, nil
	case "stdout":
		return NewStdoutSearchLogger(), func() error { return nil }, nil
	case "file":
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create search log dir: %w", err)
		}
		f, err := os.OpenFile(NewSearchLogFilePath(cfg.Dir, flow), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open search log file: %w", err)
		}
		return NewFileSearchLogger(f), f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown search log sink %q", cfg.Sink)
	}
}
