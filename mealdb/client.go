// Package mealdb is a client for the TheMealDB JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipefinder"
)

// DefaultBaseURL is the public v1 endpoint with the shared test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1/"

// ErrNotFound is returned by single-record lookups when the upstream has no record.
var ErrNotFound = errors.New("recipe not found")

var _ recipefinder.RecipeSource = (*Client)(nil)

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient recipefinder.HTTPClient
}

type ClientOpts struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient recipefinder.HTTPClient
}

func NewClient(opts ClientOpts) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	return &Client{
		baseURL:    base,
		timeout:    opts.Timeout,
		httpClient: opts.HTTPClient,
	}, nil
}

// ByIngredient lists recipes whose main ingredient matches.
func (c *Client) ByIngredient(ctx context.Context, ingredient string) ([]recipefinder.Recipe, error) {
	return c.list(ctx, "filter.php", url.Values{"i": {ingredient}})
}

// ByCategory lists recipes in a category.
func (c *Client) ByCategory(ctx context.Context, category string) ([]recipefinder.Recipe, error) {
	return c.list(ctx, "filter.php", url.Values{"c": {category}})
}

// ByArea lists recipes from a cuisine.
func (c *Client) ByArea(ctx context.Context, area string) ([]recipefinder.Recipe, error) {
	return c.list(ctx, "filter.php", url.Values{"a": {area}})
}

// ByName searches full recipes by name.
func (c *Client) ByName(ctx context.Context, name string) ([]recipefinder.Recipe, error) {
	return c.list(ctx, "search.php", url.Values{"s": {name}})
}

// ByID fetches full details for one recipe.
func (c *Client) ByID(ctx context.Context, id string) (*recipefinder.Recipe, error) {
	return c.one(ctx, "lookup.php", url.Values{"i": {id}})
}

// Random fetches one random recipe.
func (c *Client) Random(ctx context.Context) (*recipefinder.Recipe, error) {
	return c.one(ctx, "random.php", nil)
}

// Categories lists every category name.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.labels(ctx, url.Values{"c": {"list"}}, "strCategory")
}

// Areas lists every cuisine name.
func (c *Client) Areas(ctx context.Context) ([]string, error) {
	return c.labels(ctx, url.Values{"a": {"list"}}, "strArea")
}

func (c *Client) list(ctx context.Context, endpoint string, q url.Values) ([]recipefinder.Recipe, error) {
	env, err := c.get(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	out := make([]recipefinder.Recipe, 0, len(env.Meals))
	for _, m := range env.Meals {
		out = append(out, m.toRecipe())
	}
	return out, nil
}

func (c *Client) one(ctx context.Context, endpoint string, q url.Values) (*recipefinder.Recipe, error) {
	env, err := c.get(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	if len(env.Meals) == 0 {
		return nil, ErrNotFound
	}
	r := env.Meals[0].toRecipe()
	return &r, nil
}

func (c *Client) labels(ctx context.Context, q url.Values, field string) ([]string, error) {
	env, err := c.get(ctx, "list.php", q)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(env.Meals))
	for _, m := range env.Meals {
		if v := m.get(field); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// get issues a GET and decodes the meals envelope. Failures are logged here
// and returned to the caller.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values) (envelope, error) {
	target := c.baseURL + endpoint
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("MEALDB: request failed", "endpoint", endpoint, "error", err)
		return envelope{}, fmt.Errorf("MEALDB: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("MEALDB: read failed", "endpoint", endpoint, "error", err)
		return envelope{}, fmt.Errorf("MEALDB: %s: read body: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		slog.Error("MEALDB: unexpected status", "endpoint", endpoint, "status", resp.Status)
		return envelope{}, fmt.Errorf("MEALDB: %s: %s", endpoint, resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		slog.Error("MEALDB: decode failed", "endpoint", endpoint, "error", err)
		return envelope{}, fmt.Errorf("MEALDB: %s: decode: %w", endpoint, err)
	}

	slog.Debug("MEALDB: response", "endpoint", endpoint, "meals", len(env.Meals))
	return env, nil
}
