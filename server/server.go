// Package server serves the recipe finder pages and the tool API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/search"
	"recipefinder/tools"
)

// DefaultCategories and DefaultAreas fill the search form's dropdowns when
// no list is supplied.
var (
	DefaultCategories = []string{"Beef", "Chicken", "Dessert", "Lamb", "Pasta", "Seafood", "Vegetarian"}
	DefaultAreas      = []string{"American", "British", "Chinese", "French", "Indian", "Italian", "Japanese", "Mexican"}
)

type Pantry interface {
	Items() []string
	Add(ctx context.Context, text string) bool
	Remove(ctx context.Context, item string) bool
	Clear(ctx context.Context)
}

type Finder interface {
	Search(ctx context.Context, filter recipefinder.Filter) (search.Results, error)
	SearchPantry(ctx context.Context) (search.Results, error)
	Random(ctx context.Context) (string, error)
}

type PageLoader interface {
	Load(ctx context.Context, id string) (*detail.Page, error)
}

// Deps are the flows the server renders.
type Deps struct {
	Pantry     Pantry
	Finder     Finder
	Pages      PageLoader
	Tools      *tools.Registry
	Categories []string
	Areas      []string
}

type Server struct {
	config      recipefinder.ServerConfig
	deps        Deps
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	templates   map[string]*template.Template
}

func NewServer(config recipefinder.ServerConfig, deps Deps) (*Server, error) {
	if deps.Pantry == nil || deps.Finder == nil || deps.Pages == nil || deps.Tools == nil {
		return nil, errors.New("server: pantry, finder, pages and tools are required")
	}
	if len(deps.Categories) == 0 {
		deps.Categories = DefaultCategories
	}
	if len(deps.Areas) == 0 {
		deps.Areas = DefaultAreas
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      config,
		deps:        deps,
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		templates:   templates,
	}
	s.httpServer = &http.Server{
		Addr:         config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleHome))
	mux.HandleFunc("POST /pantry", s.withMiddleware(s.handlePantryAdd))
	mux.HandleFunc("POST /pantry/remove", s.withMiddleware(s.handlePantryRemove))
	mux.HandleFunc("POST /pantry/clear", s.withMiddleware(s.handlePantryClear))
	mux.HandleFunc("GET /random", s.withMiddleware(s.handleRandom))
	mux.HandleFunc("GET /recipe/{id}", s.withMiddleware(s.handleRecipe))

	mux.HandleFunc("GET /api/tools", s.withMiddleware(s.handleListTools))
	mux.HandleFunc("POST /api/tools/{name}", s.withMiddleware(s.handleRunTool))

	mux.HandleFunc("/", s.withMiddleware(s.handleNotFound))
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("SERVER: Listening", "addr", s.httpServer.Addr,
		"rateLimit", s.config.RateLimit, "rateBurst", s.config.RateBurst)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("SERVER: Shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
