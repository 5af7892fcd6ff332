package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/mealdb"
	"recipefinder/pantry"
	"recipefinder/search"
	"recipefinder/storage"
	"recipefinder/tools"
)

type Results struct {
	ID     string         `json:"id,omitempty"`
	Output map[string]any `json:"output"`
}

func main() {
	lambda.Start(handle)
}

func handle(ctx context.Context, call tools.Call) (Results, error) {
	cfg, err := recipefinder.LoadConfig()
	if err != nil {
		return Results{}, err
	}
	// Lambda has no durable local disk.
	if cfg.Store.Backend == "" || cfg.Store.Backend == "file" {
		cfg.Store.Backend = "s3"
	}

	registry, cleanup, err := newRegistry(ctx, cfg, recipefinder.NewStdoutSearchLogger())
	if err != nil {
		slog.Error("SETUP: Failed to build tool registry", "error", err)
		return Results{}, err
	}
	defer cleanup()

	return run(ctx, registry, call)
}

type openStoreFunc func(context.Context, recipefinder.StoreConfig) (storage.Store, func() error, error)

func newRegistry(ctx context.Context, cfg recipefinder.Config, logger recipefinder.SearchLogger) (*tools.Registry, func(), error) {
	return buildRegistry(ctx, cfg, logger, recipefinder.SetupTelemetry, storage.Open)
}

func buildRegistry(
	ctx context.Context,
	cfg recipefinder.Config,
	logger recipefinder.SearchLogger,
	setupTelemetry func(context.Context, recipefinder.OtelConfig, string) (recipefinder.Telemetry, error),
	openStore openStoreFunc,
) (*tools.Registry, func(), error) {
	telemetry, err := setupTelemetry(ctx, cfg.Otel, recipefinder.TracerNameMealDB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	shutdownTelemetry := func() {
		if err := telemetry.Shutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}

	client, err := mealdb.NewClient(mealdb.ClientOpts{
		BaseURL:    cfg.Client.BaseURL,
		Timeout:    cfg.Client.Timeout,
		HTTPClient: http.DefaultClient,
	})
	if err != nil {
		shutdownTelemetry()
		return nil, nil, err
	}
	source := mealdb.NewInstrumentedClient(client, telemetry.Tracer, telemetry.Meter)

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		shutdownTelemetry()
		return nil, nil, err
	}
	slog.Info("SETUP: Pantry store initialized", "backend", cfg.Store.Backend)

	p := pantry.Load(ctx, store)
	registry := tools.NewRegistry(p, search.NewFinder(source, p, logger), detail.NewLoader(source))

	cleanup := func() {
		if err := closeStore(); err != nil {
			slog.Error("SETUP: Failed to close pantry store", "error", err)
		}
		shutdownTelemetry()
	}
	return registry, cleanup, nil
}

func run(ctx context.Context, registry *tools.Registry, call tools.Call) (Results, error) {
	out, err := registry.Run(ctx, call)
	if err != nil {
		slog.Error("FAILURE: Tool failed", "tool", call.Name, "id", call.ID, "error", err)
		return Results{}, err
	}
	return Results{ID: call.ID, Output: out}, nil
}
