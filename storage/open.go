package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"recipefinder"
)

// Open builds the Store selected by cfg. The returned close func releases any
// handle the backend holds.
func Open(ctx context.Context, cfg recipefinder.StoreConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "file":
		slog.Info("SETUP: Using file pantry store", "dir", cfg.Dir)
		return NewFileStore(cfg.Dir), noop, nil

	case "sqlite":
		st, err := OpenSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("SETUP: Using sqlite pantry store", "path", cfg.SQLitePath)
		return st, st.Close, nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, nil, fmt.Errorf("missing S3 config: PANTRY_S3_BUCKET must be set")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Info("SETUP: Using S3 pantry store", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown pantry backend %q", cfg.Backend)
	}
}
