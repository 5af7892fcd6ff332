package tools

import (
	"context"

	"recipefinder"
	"recipefinder/detail"
	"recipefinder/search"
)

// Pantry is the slice of the pantry manager the pantry tools use.
type Pantry interface {
	Items() []string
	Add(ctx context.Context, text string) bool
	Remove(ctx context.Context, item string) bool
}

// Searcher runs home page searches.
type Searcher interface {
	Search(ctx context.Context, filter recipefinder.Filter) (search.Results, error)
	SearchPantry(ctx context.Context) (search.Results, error)
}

// PageLoader loads recipe detail pages.
type PageLoader interface {
	Load(ctx context.Context, id string) (*detail.Page, error)
}
