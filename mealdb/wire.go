package mealdb

import (
	"fmt"
	"strings"

	"recipefinder"
)

// maxSlots is the number of positional ingredient/measure pairs in a meal record.
const maxSlots = 20

// envelope is the shape of every upstream response.
type envelope struct {
	Meals []wireMeal `json:"meals"`
}

// wireMeal is a flat upstream record. Any value may be null.
type wireMeal map[string]any

func (m wireMeal) get(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// toRecipe converts the flat record into a Recipe, collapsing the positional
// ingredient slots into an ordered list.
func (m wireMeal) toRecipe() recipefinder.Recipe {
	r := recipefinder.Recipe{
		ID:           m.get("idMeal"),
		Name:         m.get("strMeal"),
		Thumbnail:    m.get("strMealThumb"),
		Instructions: m.get("strInstructions"),
		Area:         m.get("strArea"),
		Category:     m.get("strCategory"),
		Tags:         splitTags(m.get("strTags")),
		Source:       m.get("strSource"),
		YouTube:      m.get("strYoutube"),
	}
	for i := 1; i <= maxSlots; i++ {
		name := m.get(fmt.Sprintf("strIngredient%d", i))
		if strings.TrimSpace(name) == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, recipefinder.Ingredient{
			Name:    name,
			Measure: m.get(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return r
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
