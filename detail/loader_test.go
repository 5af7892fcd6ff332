package detail

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

type fakeSource struct {
	mu sync.Mutex

	recipe     *recipefinder.Recipe
	recipeErr  error
	byArea     []recipefinder.Recipe
	areaErr    error
	byCategory []recipefinder.Recipe
	catErr     error

	calls []string
}

func (s *fakeSource) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *fakeSource) ByID(_ context.Context, id string) (*recipefinder.Recipe, error) {
	s.record("id:" + id)
	return s.recipe, s.recipeErr
}

func (s *fakeSource) ByArea(_ context.Context, area string) ([]recipefinder.Recipe, error) {
	s.record("a:" + area)
	return s.byArea, s.areaErr
}

func (s *fakeSource) ByCategory(_ context.Context, c string) ([]recipefinder.Recipe, error) {
	s.record("c:" + c)
	return s.byCategory, s.catErr
}

func (s *fakeSource) ByIngredient(context.Context, string) ([]recipefinder.Recipe, error) {
	return nil, nil
}
func (s *fakeSource) ByName(context.Context, string) ([]recipefinder.Recipe, error) { return nil, nil }
func (s *fakeSource) Random(context.Context) (*recipefinder.Recipe, error)          { return nil, nil }
func (s *fakeSource) Categories(context.Context) ([]string, error)                  { return nil, nil }
func (s *fakeSource) Areas(context.Context) ([]string, error)                       { return nil, nil }

func teriyaki() *recipefinder.Recipe {
	return &recipefinder.Recipe{
		ID:           "52772",
		Name:         "Teriyaki Chicken Casserole",
		Area:         "Japanese",
		Category:     "Chicken",
		Instructions: "Preheat oven.\r\n\r\nBake.\n   \n",
		Ingredients: []recipefinder.Ingredient{
			{Name: "soy sauce", Measure: "3/4 cup"},
			{Name: "chicken breasts", Measure: "2"},
			{Name: "salt"},
		},
	}
}

func TestLoader_Load(t *testing.T) {
	src := &fakeSource{
		recipe:     teriyaki(),
		byArea:     []recipefinder.Recipe{{ID: "1"}, {ID: "52772"}, {ID: "2"}},
		byCategory: []recipefinder.Recipe{{ID: "52772"}, {ID: "3"}},
	}

	page, err := NewLoader(src).Load(context.Background(), "52772")
	require.NoError(t, err)

	assert.Equal(t, "Teriyaki Chicken Casserole", page.Recipe.Name)
	assert.Equal(t, []string{"Preheat oven.", "Bake."}, page.Paragraphs)
	assert.Equal(t, []string{"3/4 cup soy sauce", "2 chicken breasts", "salt"}, page.IngredientLines)

	assert.Equal(t, "More Japanese Dishes", page.AreaTitle)
	assert.Equal(t, []string{"1", "2"}, ids(page.MoreFromArea))
	assert.Equal(t, "More from Chicken", page.CategoryTitle)
	assert.Equal(t, []string{"3"}, ids(page.MoreFromCategory))

	assert.ElementsMatch(t, []string{"id:52772", "a:Japanese", "c:Chicken"}, src.calls)
}

func TestLoader_LoadFailures(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "lookup error", src: &fakeSource{recipeErr: errors.New("503")}},
		{name: "missing record", src: &fakeSource{}},
		{name: "record without id", src: &fakeSource{recipe: &recipefinder.Recipe{Name: "ghost"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewLoader(tt.src).Load(context.Background(), "1")
			assert.Nil(t, page)
			assert.ErrorIs(t, err, ErrRecipeNotFound)
			assert.EqualError(t, err, "Could not find that recipe.")
			assert.Len(t, tt.src.calls, 1, "no suggestions are requested")
		})
	}
}

func TestLoader_SuggestionFailures(t *testing.T) {
	src := &fakeSource{
		recipe:     teriyaki(),
		areaErr:    errors.New("timeout"),
		byCategory: []recipefinder.Recipe{{ID: "3"}},
	}

	page, err := NewLoader(src).Load(context.Background(), "52772")
	require.NoError(t, err)
	assert.Empty(t, page.MoreFromArea)
	assert.Equal(t, "More Japanese Dishes", page.AreaTitle)
	assert.Equal(t, []string{"3"}, ids(page.MoreFromCategory))
}

func TestLoader_SkipsBlankLabels(t *testing.T) {
	r := teriyaki()
	r.Area = ""
	src := &fakeSource{recipe: r, byCategory: []recipefinder.Recipe{{ID: "3"}}}

	page, err := NewLoader(src).Load(context.Background(), "52772")
	require.NoError(t, err)
	assert.Empty(t, page.AreaTitle)
	assert.Nil(t, page.MoreFromArea)
	assert.NotContains(t, src.calls, "a:")
	assert.Len(t, src.calls, 2)
}

func TestParagraphs(t *testing.T) {
	assert.Nil(t, Paragraphs(""))
	assert.Equal(t, []string{"one", "two"}, Paragraphs("one\n\n\ntwo"))
	assert.Equal(t, []string{"  indented"}, Paragraphs("\r\n  indented\r\n"))
}

func TestExclude(t *testing.T) {
	list := []recipefinder.Recipe{{ID: "1"}, {ID: "2"}}
	assert.Equal(t, []string{"2"}, ids(Exclude(list, "1")))
	assert.Equal(t, []string{"1", "2"}, ids(Exclude(list, "9")))
}

func ids(rs []recipefinder.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}
