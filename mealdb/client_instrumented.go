package mealdb

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"recipefinder"
)

var _ recipefinder.RecipeSource = (*InstrumentedClient)(nil)

// InstrumentedClient wraps a RecipeSource with spans and request metrics.
type InstrumentedClient struct {
	next   recipefinder.RecipeSource
	tracer trace.Tracer

	requests metric.Int64Counter
	failures metric.Int64Counter
	results  metric.Int64Histogram
	latency  metric.Float64Histogram
}

// NewInstrumentedClient initializes the wrapper and its instruments.
func NewInstrumentedClient(next recipefinder.RecipeSource, tracer trace.Tracer, meter metric.Meter) *InstrumentedClient {
	requests, _ := meter.Int64Counter("mealdb_requests_total",
		metric.WithDescription("Total number of upstream recipe API requests"))
	failures, _ := meter.Int64Counter("mealdb_requests_failed_total",
		metric.WithDescription("Total number of upstream recipe API requests that failed"))
	results, _ := meter.Int64Histogram("mealdb_results_count",
		metric.WithDescription("Number of recipes returned per upstream request"))
	latency, _ := meter.Float64Histogram("mealdb_request_duration_seconds",
		metric.WithDescription("Duration of upstream recipe API requests in seconds"))

	return &InstrumentedClient{
		next:     next,
		tracer:   tracer,
		requests: requests,
		failures: failures,
		results:  results,
		latency:  latency,
	}
}

func (c *InstrumentedClient) ByIngredient(ctx context.Context, ingredient string) ([]recipefinder.Recipe, error) {
	return observeList(ctx, c, "by_ingredient", ingredient, c.next.ByIngredient)
}

func (c *InstrumentedClient) ByCategory(ctx context.Context, category string) ([]recipefinder.Recipe, error) {
	return observeList(ctx, c, "by_category", category, c.next.ByCategory)
}

func (c *InstrumentedClient) ByArea(ctx context.Context, area string) ([]recipefinder.Recipe, error) {
	return observeList(ctx, c, "by_area", area, c.next.ByArea)
}

func (c *InstrumentedClient) ByName(ctx context.Context, name string) ([]recipefinder.Recipe, error) {
	return observeList(ctx, c, "by_name", name, c.next.ByName)
}

func (c *InstrumentedClient) ByID(ctx context.Context, id string) (*recipefinder.Recipe, error) {
	return observeOne(ctx, c, "by_id", id, c.next.ByID)
}

func (c *InstrumentedClient) Random(ctx context.Context) (*recipefinder.Recipe, error) {
	return observeOne(ctx, c, "random", "", func(ctx context.Context, _ string) (*recipefinder.Recipe, error) {
		return c.next.Random(ctx)
	})
}

func (c *InstrumentedClient) Categories(ctx context.Context) ([]string, error) {
	return observeList(ctx, c, "categories", "", func(ctx context.Context, _ string) ([]string, error) {
		return c.next.Categories(ctx)
	})
}

func (c *InstrumentedClient) Areas(ctx context.Context) ([]string, error) {
	return observeList(ctx, c, "areas", "", func(ctx context.Context, _ string) ([]string, error) {
		return c.next.Areas(ctx)
	})
}

func observeList[T any](ctx context.Context, c *InstrumentedClient, op, arg string, fn func(context.Context, string) ([]T, error)) ([]T, error) {
	ctx, span, done := c.start(ctx, op, arg)
	defer span.End()

	out, err := fn(ctx, arg)
	done(len(out), err)
	return out, err
}

func observeOne(ctx context.Context, c *InstrumentedClient, op, arg string, fn func(context.Context, string) (*recipefinder.Recipe, error)) (*recipefinder.Recipe, error) {
	ctx, span, done := c.start(ctx, op, arg)
	defer span.End()

	out, err := fn(ctx, arg)
	n := 0
	if out != nil {
		n = 1
	}
	// A missing record is an answer, not a failure.
	if errors.Is(err, ErrNotFound) {
		done(0, nil)
		return out, err
	}
	done(n, err)
	return out, err
}

func (c *InstrumentedClient) start(ctx context.Context, op, arg string) (context.Context, trace.Span, func(int, error)) {
	ctx, span := c.tracer.Start(ctx, "mealdb."+op, trace.WithAttributes(
		attribute.String("mealdb.operation", op),
		attribute.String("mealdb.arg", arg),
	))
	opAttr := metric.WithAttributes(attribute.String("operation", op))
	c.requests.Add(ctx, 1, opAttr)
	started := time.Now()

	return ctx, span, func(n int, err error) {
		c.latency.Record(ctx, time.Since(started).Seconds(), opAttr)
		if err != nil {
			c.failures.Add(ctx, 1, opAttr)
			span.SetStatus(codes.Error, "upstream request failed")
			span.RecordError(err)
			return
		}
		c.results.Record(ctx, int64(n), opAttr)
		span.SetAttributes(attribute.Int("mealdb.results", n))
	}
}
