// Package pantry manages the user's list of on-hand ingredients.
package pantry

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"recipefinder"
	"recipefinder/persist"
	"recipefinder/storage"
)

// Pantry is an ordered set of lowercase ingredient names, persisted after
// every change.
type Pantry struct {
	items *persist.Value[[]string]
}

// Load restores the pantry from store, starting empty when nothing usable is saved.
func Load(ctx context.Context, store storage.Store) *Pantry {
	items := persist.Load(ctx, store, recipefinder.PantryKey, []string{})
	p := &Pantry{items: items}

	// Saved lists written by older clients may not be normalized.
	if cleaned := normalizeAll(items.Get()); !slices.Equal(cleaned, items.Get()) {
		items.Set(ctx, cleaned)
	}
	slog.Info("PANTRY: Loaded", "items", p.Len())
	return p
}

// Normalize lowercases and trims an ingredient name.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Add appends text after normalizing it. It reports false when the result is
// empty or already present.
func (p *Pantry) Add(ctx context.Context, text string) bool {
	item := Normalize(text)
	if item == "" {
		return false
	}
	added := false
	p.items.Update(ctx, func(cur []string) []string {
		if slices.Contains(cur, item) {
			return cur
		}
		added = true
		return append(slices.Clone(cur), item)
	})
	if added {
		slog.Info("PANTRY: Added item", "item", item)
	}
	return added
}

// Remove deletes item after normalizing it. It reports whether anything was
// removed.
func (p *Pantry) Remove(ctx context.Context, text string) bool {
	item := Normalize(text)
	if item == "" {
		return false
	}
	removed := false
	p.items.Update(ctx, func(cur []string) []string {
		i := slices.Index(cur, item)
		if i < 0 {
			return cur
		}
		removed = true
		return slices.Delete(slices.Clone(cur), i, i+1)
	})
	if removed {
		slog.Info("PANTRY: Removed item", "item", item)
	}
	return removed
}

// Clear empties the pantry.
func (p *Pantry) Clear(ctx context.Context) {
	p.items.Set(ctx, []string{})
	slog.Info("PANTRY: Cleared")
}

// Items returns a copy of the pantry in insertion order.
func (p *Pantry) Items() []string {
	return slices.Clone(p.items.Get())
}

func (p *Pantry) Len() int {
	return len(p.items.Get())
}

func (p *Pantry) Contains(item string) bool {
	return slices.Contains(p.items.Get(), Normalize(item))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
