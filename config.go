package recipefinder

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// PantryKey is the single storage key holding the pantry list.
const PantryKey = "recipePantry"

type ClientConfig struct {
	BaseURL string        `env:"MEALDB_BASE_URL,default=https://www.themealdb.com/api/json/v1/1/"`
	Timeout time.Duration `env:"MEALDB_TIMEOUT,default=15s"`
}

type StoreConfig struct {
	Backend    string `env:"PANTRY_BACKEND,default=file"`
	Dir        string `env:"PANTRY_DIR,default=artifacts"`
	SQLitePath string `env:"PANTRY_SQLITE_PATH,default=artifacts/recipefinder.db"`
	S3Bucket   string `env:"PANTRY_S3_BUCKET"`
	S3Prefix   string `env:"PANTRY_S3_PREFIX"`
}

type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR,default=:8080"`
	RateLimit       float64       `env:"SERVER_RATE_LIMIT,default=20"`
	RateBurst       int           `env:"SERVER_RATE_BURST,default=40"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT,default=10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT,default=60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=15s"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL,default=#recipes"`
}

type SearchLogConfig struct {
	Sink string `env:"SEARCH_LOG,default=none"`
	Dir  string `env:"SEARCH_LOG_DIR,default=logs"`
}

// Config groups every environment-driven setting.
type Config struct {
	Client    ClientConfig
	Store     StoreConfig
	Server    ServerConfig
	Slack     SlackConfig
	SearchLog SearchLogConfig
	Otel      OtelConfig
}

// LoadConfig decodes all configuration sections from the environment. A
// value that does not parse is an error rather than a zero field.
func LoadConfig() (Config, error) {
	var cfg Config
	for name, target := range map[string]any{
		"client":     &cfg.Client,
		"store":      &cfg.Store,
		"server":     &cfg.Server,
		"slack":      &cfg.Slack,
		"search log": &cfg.SearchLog,
		"otel":       &cfg.Otel,
	} {
		if err := envdecode.StrictDecode(target); err != nil {
			return Config{}, fmt.Errorf("decode %s config: %w", name, err)
		}
	}
	return cfg, nil
}
