// Package search runs the home page flows: filtered search, pantry search and
// random recipe.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"recipefinder"
)

// Pantry is the read side of the pantry the finder searches with.
type Pantry interface {
	Items() []string
}

// Results is a successful search.
type Results struct {
	Title   string                `json:"title" yaml:"title"`
	Recipes []recipefinder.Recipe `json:"recipes" yaml:"recipes"`
}

// CountLabel renders the result count the way the listing header shows it.
func (r Results) CountLabel() string {
	if len(r.Recipes) == 1 {
		return "1 Recipe Found"
	}
	return fmt.Sprintf("%d Recipes Found", len(r.Recipes))
}

type Finder struct {
	source recipefinder.RecipeSource
	pantry Pantry
	logger recipefinder.SearchLogger
}

// NewFinder wires a Finder. A nil logger discards search logs.
func NewFinder(source recipefinder.RecipeSource, pantry Pantry, log recipefinder.SearchLogger) *Finder {
	if log == nil {
		log = recipefinder.NewNoOpSearchLogger()
	}
	return &Finder{source: source, pantry: pantry, logger: log}
}

// Search runs a single filter and, when the filter carries secondary
// ingredients, keeps only recipes that contain all of them.
func (f *Finder) Search(ctx context.Context, filter recipefinder.Filter) (Results, error) {
	entry := f.newLog("search")
	entry.Kind, entry.Value, entry.Others = filter.Kind(), filter.Value(), filter.Others()

	res, err := f.search(ctx, filter, &entry)
	f.finish(entry, res, err)
	return res, err
}

func (f *Finder) search(ctx context.Context, filter recipefinder.Filter, entry *recipefinder.SearchLog) (Results, error) {
	value := filter.Value()
	slog.Info("SEARCH: Running filter", "kind", filter.Kind(), "value", value, "others", filter.Others())

	found, err := f.dispatch(ctx, filter)
	entry.Queries = append(entry.Queries, queryLog(filter.Kind(), value, len(found), err))
	if err != nil || len(found) == 0 {
		return Results{}, userError(ErrNoResults,
			fmt.Sprintf("No recipes found for %q. Try another search!", value), err)
	}

	terms := recipefinder.SecondaryTerms(filter.Others())
	if len(terms) == 0 {
		return Results{Title: fmt.Sprintf("Results for %q", value), Recipes: found}, nil
	}

	detailed := f.details(ctx, found, entry)
	kept := make([]recipefinder.Recipe, 0, len(detailed))
	for _, r := range detailed {
		if ContainsAll(r, terms) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return Results{}, userError(ErrNoSecondaryMatch,
			fmt.Sprintf("No recipes found for %q that also have %q.", value, filter.Others()), nil)
	}
	return Results{
		Title:   fmt.Sprintf("Results for %q with %q", value, filter.Others()),
		Recipes: kept,
	}, nil
}

func (f *Finder) dispatch(ctx context.Context, filter recipefinder.Filter) ([]recipefinder.Recipe, error) {
	switch filter.(type) {
	case recipefinder.IngredientFilter:
		return f.source.ByIngredient(ctx, filter.Value())
	case recipefinder.CategoryFilter:
		return f.source.ByCategory(ctx, filter.Value())
	case recipefinder.AreaFilter:
		return f.source.ByArea(ctx, filter.Value())
	default:
		return f.source.ByName(ctx, filter.Value())
	}
}

// details looks up every recipe concurrently, keeping input order and
// dropping lookups that fail.
func (f *Finder) details(ctx context.Context, list []recipefinder.Recipe, entry *recipefinder.SearchLog) []recipefinder.Recipe {
	slots := make([]*recipefinder.Recipe, len(list))
	errs := make([]error, len(list))

	var g errgroup.Group
	for i, r := range list {
		g.Go(func() error {
			slots[i], errs[i] = f.source.ByID(ctx, r.ID)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]recipefinder.Recipe, 0, len(list))
	for i, r := range slots {
		n := 0
		if r != nil {
			n = 1
		}
		entry.Queries = append(entry.Queries, queryLog("lookup", list[i].ID, n, errs[i]))
		if errs[i] != nil || r == nil {
			slog.Warn("SEARCH: Dropping recipe without details", "id", list[i].ID, "error", errs[i])
			continue
		}
		out = append(out, *r)
	}
	return out
}

// SearchPantry finds recipes using any pantry item. Each item is queried in
// parallel; failed queries are skipped and results are merged by first
// appearance.
func (f *Finder) SearchPantry(ctx context.Context) (Results, error) {
	entry := f.newLog("pantry")
	items := f.pantry.Items()
	entry.Value = strings.Join(items, ",")

	if len(items) == 0 {
		err := userError(ErrEmptyPantry, "Add some items to your pantry first!", nil)
		f.finish(entry, Results{}, err)
		return Results{}, err
	}

	slog.Info("SEARCH: Searching pantry", "items", len(items))

	lists := make([][]recipefinder.Recipe, len(items))
	errs := make([]error, len(items))

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			lists[i], errs[i] = f.source.ByIngredient(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	var all []recipefinder.Recipe
	for i, list := range lists {
		entry.Queries = append(entry.Queries, queryLog(recipefinder.KindIngredient, items[i], len(list), errs[i]))
		if errs[i] != nil {
			slog.Warn("SEARCH: Pantry item query failed", "item", items[i], "error", errs[i])
			continue
		}
		all = append(all, list...)
	}

	merged := Dedupe(all)
	if len(merged) == 0 {
		err := userError(ErrNoPantryResults, "No recipes found using any of your pantry items.", nil)
		f.finish(entry, Results{}, err)
		return Results{}, err
	}

	res := Results{Title: "Recipes using items from your pantry", Recipes: merged}
	f.finish(entry, res, nil)
	return res, nil
}

// Random returns the ID of a random recipe to navigate to.
func (f *Finder) Random(ctx context.Context) (string, error) {
	entry := f.newLog("random")

	r, err := f.source.Random(ctx)
	n := 0
	if r != nil {
		n = 1
	}
	entry.Queries = append(entry.Queries, queryLog("random", "", n, err))

	if err != nil || !r.IsValid() {
		uerr := userError(ErrRandomFailed, "Could not fetch a random recipe. Please try again.", err)
		f.finish(entry, Results{}, uerr)
		return "", uerr
	}

	entry.Value = r.ID
	f.finish(entry, Results{Recipes: []recipefinder.Recipe{*r}}, nil)
	return r.ID, nil
}

// Dedupe drops recipes whose ID was already seen, preserving first-seen order.
func Dedupe(in []recipefinder.Recipe) []recipefinder.Recipe {
	seen := make(map[string]struct{}, len(in))
	out := make([]recipefinder.Recipe, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// IngredientText is the lowercase ingredient names of r joined by spaces.
func IngredientText(r recipefinder.Recipe) string {
	var b strings.Builder
	for _, ing := range r.Ingredients {
		b.WriteString(strings.ToLower(ing.Name))
		b.WriteByte(' ')
	}
	return b.String()
}

// ContainsAll reports whether every term is a substring of r's ingredient text.
func ContainsAll(r recipefinder.Recipe, terms []string) bool {
	text := IngredientText(r)
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}

func (f *Finder) newLog(flow string) recipefinder.SearchLog {
	return recipefinder.SearchLog{Flow: flow, Timestamp: time.Now()}
}

func (f *Finder) finish(entry recipefinder.SearchLog, res Results, err error) {
	entry.Duration = time.Since(entry.Timestamp)
	entry.Results = len(res.Recipes)
	if err != nil {
		entry.Error = err.Error()
	}
	if lerr := f.logger.LogSearch(entry); lerr != nil {
		slog.Error("SEARCH: Failed to log search", "flow", entry.Flow, "error", lerr)
	}
}

func queryLog(endpoint, arg string, n int, err error) recipefinder.QueryLog {
	q := recipefinder.QueryLog{Endpoint: endpoint, Arg: arg, Results: n}
	if err != nil {
		q.Error = err.Error()
	}
	return q
}
