package recipefinder

import "strings"

// Filter describes the next search to run. It is one of IngredientFilter,
// CategoryFilter, AreaFilter or NameFilter.
type Filter interface {
	// Kind is the form name of the filter ("ingredient", "category", "area", "name").
	Kind() string
	// Value is the primary search term.
	Value() string
	// Others is the comma-separated secondary ingredient constraint, if any.
	Others() string

	isFilter()
}

const (
	KindIngredient = "ingredient"
	KindCategory   = "category"
	KindArea       = "area"
	KindName       = "name"
)

type IngredientFilter struct {
	Term  string
	Extra string
}

type CategoryFilter struct {
	Term  string
	Extra string
}

type AreaFilter struct {
	Term  string
	Extra string
}

type NameFilter struct {
	Term  string
	Extra string
}

func (f IngredientFilter) Kind() string   { return KindIngredient }
func (f IngredientFilter) Value() string  { return f.Term }
func (f IngredientFilter) Others() string { return f.Extra }
func (IngredientFilter) isFilter()        {}

func (f CategoryFilter) Kind() string   { return KindCategory }
func (f CategoryFilter) Value() string  { return f.Term }
func (f CategoryFilter) Others() string { return f.Extra }
func (CategoryFilter) isFilter()        {}

func (f AreaFilter) Kind() string   { return KindArea }
func (f AreaFilter) Value() string  { return f.Term }
func (f AreaFilter) Others() string { return f.Extra }
func (AreaFilter) isFilter()        {}

func (f NameFilter) Kind() string   { return KindName }
func (f NameFilter) Value() string  { return f.Term }
func (f NameFilter) Others() string { return f.Extra }
func (NameFilter) isFilter()        {}

// ParseFilter builds a Filter from loosely typed form input. Unrecognized
// kinds fall back to a name search.
func ParseFilter(kind, value, others string) Filter {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindIngredient:
		return IngredientFilter{Term: value, Extra: others}
	case KindCategory:
		return CategoryFilter{Term: value, Extra: others}
	case KindArea:
		return AreaFilter{Term: value, Extra: others}
	default:
		return NameFilter{Term: value, Extra: others}
	}
}

// FormFilter mirrors the search form: a selected category or cuisine wins,
// otherwise the free-text term is searched as an ingredient.
func FormFilter(term, others, category, area string) Filter {
	switch {
	case category != "":
		return CategoryFilter{Term: category}
	case area != "":
		return AreaFilter{Term: area}
	default:
		return IngredientFilter{Term: term, Extra: others}
	}
}

// SecondaryTerms splits a comma-separated constraint into lowercase,
// trimmed, non-empty terms.
func SecondaryTerms(others string) []string {
	if strings.TrimSpace(others) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(strings.ToLower(others), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
