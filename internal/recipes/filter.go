package recipes

import (
	"strings"

	"calfern.me/pantry/internal/data"
)

// FilterByKeyword keeps recipes whose name contains the keyword,
// case-insensitively. The empty keyword matches everything.
func FilterByKeyword(recipes []data.RecipeDTO, keyword string) []data.RecipeDTO {
	if keyword == "" {
		return recipes
	}
	needle := strings.ToLower(keyword)
	matched := make([]data.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		if strings.Contains(strings.ToLower(recipe.Name), needle) {
			matched = append(matched, recipe)
		}
	}
	return matched
}

// FilterByIngredients keeps recipes containing at least one of the
// required ingredient names. The match is inclusive-OR: one hit is
// enough, whatever else the recipe contains. An empty required set
// matches nothing.
func FilterByIngredients(recipes []data.RecipeDTO, requiredNames []string) []data.RecipeDTO {
	required := make(map[string]bool, len(requiredNames))
	for _, name := range requiredNames {
		required[name] = true
	}
	matched := make([]data.RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			if required[ingredient.Name] {
				matched = append(matched, recipe)
				break
			}
		}
	}
	return matched
}

// Filter applies both predicates, treating an empty ingredient list as
// "no ingredient criterion". Input order is preserved; callers supply
// the slice pre-sorted and nothing here re-sorts it.
func Filter(recipes []data.RecipeDTO, keyword string, ingredientNames []string) []data.RecipeDTO {
	filtered := FilterByKeyword(recipes, keyword)
	if len(ingredientNames) == 0 {
		return filtered
	}
	return FilterByIngredients(filtered, ingredientNames)
}
