package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/mealdb"
	"recipefinder/pantry"
	"recipefinder/search"
	"recipefinder/storage"
)

// app is everything a command needs, built once from the environment.
type app struct {
	cfg    recipefinder.Config
	source recipefinder.RecipeSource
	pantry *pantry.Pantry
	finder *search.Finder
	pages  *detail.Loader

	closers []func() error
}

func newApp(ctx context.Context, flow string) (*app, error) {
	cfg, err := recipefinder.LoadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}

	telemetry, err := recipefinder.SetupTelemetry(ctx, cfg.Otel, recipefinder.TracerNameMealDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.closers = append(a.closers, func() error { return telemetry.Shutdown(context.Background()) })

	client, err := mealdb.NewClient(mealdb.ClientOpts{
		BaseURL:    cfg.Client.BaseURL,
		Timeout:    cfg.Client.Timeout,
		HTTPClient: http.DefaultClient,
	})
	if err != nil {
		return nil, a.fail(err)
	}
	a.source = mealdb.NewInstrumentedClient(client, telemetry.Tracer, telemetry.Meter)

	store, closeStore, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return nil, a.fail(err)
	}
	a.closers = append(a.closers, closeStore)
	a.pantry = pantry.Load(ctx, store)

	logger, flush, err := recipefinder.NewSearchLogger(cfg.SearchLog, flow)
	if err != nil {
		return nil, a.fail(err)
	}
	a.closers = append(a.closers, flush)

	a.finder = search.NewFinder(a.source, a.pantry, logger)
	a.pages = detail.NewLoader(a.source)
	return a, nil
}

func (a *app) fail(err error) error {
	return errors.Join(err, a.Close())
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("SETUP: Failed to release resource", "error", err)
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
