package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/pantry"
	"recipefinder/search"
	"recipefinder/storage"
	"recipefinder/tools"
)

type emptySource struct{}

func (emptySource) ByIngredient(context.Context, string) ([]recipefinder.Recipe, error) {
	return nil, nil
}
func (emptySource) ByCategory(context.Context, string) ([]recipefinder.Recipe, error) {
	return nil, nil
}
func (emptySource) ByArea(context.Context, string) ([]recipefinder.Recipe, error) { return nil, nil }
func (emptySource) ByName(context.Context, string) ([]recipefinder.Recipe, error) { return nil, nil }
func (emptySource) ByID(context.Context, string) (*recipefinder.Recipe, error)    { return nil, nil }
func (emptySource) Random(context.Context) (*recipefinder.Recipe, error)          { return nil, nil }
func (emptySource) Categories(context.Context) ([]string, error)                  { return nil, nil }
func (emptySource) Areas(context.Context) ([]string, error)                       { return nil, nil }

func newTestRegistry() *tools.Registry {
	p := pantry.Load(context.Background(), storage.NewMemoryStore())
	return tools.NewRegistry(p, search.NewFinder(emptySource{}, p, nil), detail.NewLoader(emptySource{}))
}

func TestRun(t *testing.T) {
	registry := newTestRegistry()
	ctx := context.Background()

	res, err := run(ctx, registry, tools.Call{Name: "pantry_add", Input: map[string]any{"item": "Rice"}, ID: "req-1"})
	require.NoError(t, err)
	assert.Equal(t, "req-1", res.ID)
	assert.Equal(t, true, res.Output["changed"])

	res, err = run(ctx, registry, tools.Call{Name: "pantry_get"})
	require.NoError(t, err)
	assert.Equal(t, []any{"rice"}, res.Output["items"])

	res, err = run(ctx, registry, tools.Call{Name: "recipe_search", Input: map[string]any{"pantry": true}})
	require.NoError(t, err)
	assert.Equal(t, "No recipes found using any of your pantry items.", res.Output["message"])
}

func TestRun_Errors(t *testing.T) {
	registry := newTestRegistry()

	_, err := run(context.Background(), registry, tools.Call{Name: "plan_meals"})
	assert.EqualError(t, err, `tool "plan_meals" not found in registry`)

	_, err = run(context.Background(), registry, tools.Call{Name: "recipe_get", Input: map[string]any{"id": "1"}})
	assert.ErrorIs(t, err, detail.ErrRecipeNotFound)
}

func TestBuildRegistry_ReleasesTelemetryOnFailure(t *testing.T) {
	memStore := func(context.Context, recipefinder.StoreConfig) (storage.Store, func() error, error) {
		return storage.NewMemoryStore(), func() error { return nil }, nil
	}
	failingStore := func(context.Context, recipefinder.StoreConfig) (storage.Store, func() error, error) {
		return nil, nil, errors.New("bucket missing")
	}

	tests := []struct {
		name      string
		baseURL   string
		openStore openStoreFunc
		wantErr   bool
	}{
		{name: "store fails", openStore: failingStore, wantErr: true},
		{name: "client fails", baseURL: "%zz", openStore: memStore, wantErr: true},
		{name: "success", openStore: memStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdowns := 0
			setup := func(_ context.Context, _ recipefinder.OtelConfig, name string) (recipefinder.Telemetry, error) {
				tel := recipefinder.NoopTelemetry(name)
				tel.Shutdown = func(context.Context) error {
					shutdowns++
					return nil
				}
				return tel, nil
			}

			cfg := recipefinder.Config{Client: recipefinder.ClientConfig{BaseURL: tt.baseURL}}
			registry, cleanup, err := buildRegistry(context.Background(), cfg, nil, setup, tt.openStore)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, registry)
				assert.Equal(t, 1, shutdowns)
				return
			}

			require.NoError(t, err)
			assert.Zero(t, shutdowns)
			cleanup()
			assert.Equal(t, 1, shutdowns)
		})
	}
}
