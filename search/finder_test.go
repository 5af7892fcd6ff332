package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"recipefinder"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource answers from maps and records every call.
type fakeSource struct {
	mu sync.Mutex

	byIngredient map[string][]recipefinder.Recipe
	byCategory   map[string][]recipefinder.Recipe
	byArea       map[string][]recipefinder.Recipe
	byName       map[string][]recipefinder.Recipe
	byID         map[string]*recipefinder.Recipe
	random       *recipefinder.Recipe
	failing      map[string]error

	calls []string
}

func (s *fakeSource) record(call string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.failing[call]
}

func (s *fakeSource) ByIngredient(_ context.Context, v string) ([]recipefinder.Recipe, error) {
	if err := s.record("i:" + v); err != nil {
		return nil, err
	}
	return s.byIngredient[v], nil
}

func (s *fakeSource) ByCategory(_ context.Context, v string) ([]recipefinder.Recipe, error) {
	if err := s.record("c:" + v); err != nil {
		return nil, err
	}
	return s.byCategory[v], nil
}

func (s *fakeSource) ByArea(_ context.Context, v string) ([]recipefinder.Recipe, error) {
	if err := s.record("a:" + v); err != nil {
		return nil, err
	}
	return s.byArea[v], nil
}

func (s *fakeSource) ByName(_ context.Context, v string) ([]recipefinder.Recipe, error) {
	if err := s.record("s:" + v); err != nil {
		return nil, err
	}
	return s.byName[v], nil
}

func (s *fakeSource) ByID(_ context.Context, id string) (*recipefinder.Recipe, error) {
	if err := s.record("id:" + id); err != nil {
		return nil, err
	}
	r, ok := s.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (s *fakeSource) Random(context.Context) (*recipefinder.Recipe, error) {
	if err := s.record("random"); err != nil {
		return nil, err
	}
	return s.random, nil
}

func (s *fakeSource) Categories(context.Context) ([]string, error) { return nil, nil }
func (s *fakeSource) Areas(context.Context) ([]string, error)      { return nil, nil }

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type staticPantry []string

func (p staticPantry) Items() []string { return p }

// memLogger keeps logged searches for assertions.
type memLogger struct{ entries []recipefinder.SearchLog }

func (l *memLogger) LogSearch(e recipefinder.SearchLog) error {
	l.entries = append(l.entries, e)
	return nil
}

func ids(rs []recipefinder.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func withIngredients(id string, names ...string) *recipefinder.Recipe {
	r := &recipefinder.Recipe{ID: id, Name: "Recipe " + id}
	for _, n := range names {
		r.Ingredients = append(r.Ingredients, recipefinder.Ingredient{Name: n, Measure: "1"})
	}
	return r
}

func TestFinder_SearchDispatch(t *testing.T) {
	hit := []recipefinder.Recipe{{ID: "9"}}
	src := &fakeSource{
		byIngredient: map[string][]recipefinder.Recipe{"chicken": hit},
		byCategory:   map[string][]recipefinder.Recipe{"Seafood": hit},
		byArea:       map[string][]recipefinder.Recipe{"Thai": hit},
		byName:       map[string][]recipefinder.Recipe{"pie": hit},
	}

	tests := []struct {
		name     string
		filter   recipefinder.Filter
		wantCall string
	}{
		{name: "ingredient", filter: recipefinder.ParseFilter("ingredient", "chicken", ""), wantCall: "i:chicken"},
		{name: "category", filter: recipefinder.ParseFilter("category", "Seafood", ""), wantCall: "c:Seafood"},
		{name: "area", filter: recipefinder.ParseFilter("area", "Thai", ""), wantCall: "a:Thai"},
		{name: "unrecognized kind searches by name", filter: recipefinder.ParseFilter("dish", "pie", ""), wantCall: "s:pie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.calls = nil
			f := NewFinder(src, staticPantry{}, nil)

			res, err := f.Search(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, []string{"9"}, ids(res.Recipes))
			assert.Equal(t, []string{tt.wantCall}, src.calls)
			assert.Equal(t, `Results for "`+tt.filter.Value()+`"`, res.Title)
		})
	}
}

func TestFinder_SearchNoResults(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "empty upstream result", src: &fakeSource{}},
		{name: "upstream failure", src: &fakeSource{failing: map[string]error{"i:kale": errors.New("timeout")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(tt.src, staticPantry{}, nil)
			_, err := f.Search(context.Background(), recipefinder.IngredientFilter{Term: "kale"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoResults)
			assert.EqualError(t, err, `No recipes found for "kale". Try another search!`)
		})
	}
}

func TestFinder_SecondaryIngredients(t *testing.T) {
	src := &fakeSource{
		byIngredient: map[string][]recipefinder.Recipe{
			"chicken": {{ID: "1"}, {ID: "2"}, {ID: "3"}},
		},
		byID: map[string]*recipefinder.Recipe{
			"1": withIngredients("1", "Chicken", "Rice", "Salt"),
			"2": withIngredients("2", "Chicken", "Pepper"),
			// "3" has no details and is dropped.
		},
	}

	t.Run("substring match keeps recipe", func(t *testing.T) {
		f := NewFinder(src, staticPantry{}, nil)
		res, err := f.Search(context.Background(), recipefinder.IngredientFilter{Term: "chicken", Extra: "rice"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids(res.Recipes))
		assert.Equal(t, `Results for "chicken" with "rice"`, res.Title)
		assert.Len(t, res.Recipes[0].Ingredients, 3, "results carry full details")
	})

	t.Run("every term must match", func(t *testing.T) {
		f := NewFinder(src, staticPantry{}, nil)
		res, err := f.Search(context.Background(), recipefinder.IngredientFilter{Term: "chicken", Extra: " SALT , ric,, "})
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, ids(res.Recipes))
	})

	t.Run("no match is a distinct error", func(t *testing.T) {
		f := NewFinder(src, staticPantry{}, nil)
		_, err := f.Search(context.Background(), recipefinder.IngredientFilter{Term: "chicken", Extra: "saffron"})
		assert.ErrorIs(t, err, ErrNoSecondaryMatch)
		assert.EqualError(t, err, `No recipes found for "chicken" that also have "saffron".`)
	})

	t.Run("blank others is ignored", func(t *testing.T) {
		src.calls = nil
		f := NewFinder(src, staticPantry{}, nil)
		res, err := f.Search(context.Background(), recipefinder.IngredientFilter{Term: "chicken", Extra: " , "})
		require.NoError(t, err)
		assert.Len(t, res.Recipes, 3)
		assert.Equal(t, []string{"i:chicken"}, src.calls)
	})
}

func TestContainsAll(t *testing.T) {
	r := *withIngredients("x", "chicken", "rice", "salt")
	assert.Equal(t, "chicken rice salt ", IngredientText(r))
	assert.True(t, ContainsAll(r, []string{"rice"}))
	assert.False(t, ContainsAll(r, []string{"pepper"}))
	assert.True(t, ContainsAll(r, nil))
}

func TestFinder_SearchPantry(t *testing.T) {
	t.Run("merges and dedupes in first-seen order", func(t *testing.T) {
		src := &fakeSource{byIngredient: map[string][]recipefinder.Recipe{
			"egg":  {{ID: "1"}, {ID: "2"}},
			"milk": {{ID: "2"}, {ID: "3"}},
		}}
		log := &memLogger{}
		f := NewFinder(src, staticPantry{"egg", "milk"}, log)

		res, err := f.SearchPantry(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, ids(res.Recipes))
		assert.Equal(t, "Recipes using items from your pantry", res.Title)
		assert.Equal(t, "3 Recipes Found", res.CountLabel())

		require.Len(t, log.entries, 1)
		assert.Equal(t, "pantry", log.entries[0].Flow)
		assert.Equal(t, 3, log.entries[0].Results)
		assert.Len(t, log.entries[0].Queries, 2)
	})

	t.Run("failed items are skipped", func(t *testing.T) {
		src := &fakeSource{
			byIngredient: map[string][]recipefinder.Recipe{"milk": {{ID: "3"}}},
			failing:      map[string]error{"i:egg": errors.New("boom")},
		}
		f := NewFinder(src, staticPantry{"egg", "milk"}, nil)

		res, err := f.SearchPantry(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, ids(res.Recipes))
		assert.Equal(t, "1 Recipe Found", res.CountLabel())
	})

	t.Run("all failing or empty", func(t *testing.T) {
		src := &fakeSource{failing: map[string]error{"i:egg": errors.New("boom")}}
		f := NewFinder(src, staticPantry{"egg", "milk"}, nil)

		_, err := f.SearchPantry(context.Background())
		assert.ErrorIs(t, err, ErrNoPantryResults)
		assert.EqualError(t, err, "No recipes found using any of your pantry items.")
	})

	t.Run("empty pantry issues no request", func(t *testing.T) {
		src := &fakeSource{}
		f := NewFinder(src, staticPantry{}, nil)

		_, err := f.SearchPantry(context.Background())
		assert.ErrorIs(t, err, ErrEmptyPantry)
		assert.EqualError(t, err, "Add some items to your pantry first!")
		assert.Equal(t, 0, src.callCount())
	})
}

func TestFinder_Random(t *testing.T) {
	t.Run("returns id to navigate to", func(t *testing.T) {
		f := NewFinder(&fakeSource{random: &recipefinder.Recipe{ID: "52772"}}, staticPantry{}, nil)
		id, err := f.Random(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "52772", id)
	})

	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "missing record", src: &fakeSource{}},
		{name: "record without id", src: &fakeSource{random: &recipefinder.Recipe{Name: "No ID"}}},
		{name: "upstream error", src: &fakeSource{failing: map[string]error{"random": errors.New("502")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinder(tt.src, staticPantry{}, nil)
			id, err := f.Random(context.Background())
			assert.Empty(t, id)
			assert.ErrorIs(t, err, ErrRandomFailed)
			assert.EqualError(t, err, "Could not fetch a random recipe. Please try again.")
		})
	}
}

func TestDedupe(t *testing.T) {
	in := []recipefinder.Recipe{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"}}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Dedupe(in)))
	assert.Empty(t, Dedupe(nil))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := userError(ErrNoResults, "No recipes", cause)
	assert.ErrorIs(t, err, ErrNoResults)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrEmptyPantry)

	var uerr *Error
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "No recipes", uerr.Message)
}
