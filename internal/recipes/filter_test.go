package recipes

import (
	"testing"

	"calfern.me/pantry/internal/data"
)

func catalog() []data.RecipeDTO {
	return []data.RecipeDTO{
		{
			SK:   "1",
			Name: "Egg Fried Rice",
			Ingredients: []data.IngredientLineDTO{
				{Name: "egg", Quantity: 2, Unit: "item"},
				{Name: "rice", Quantity: 2, Unit: "c"},
			},
		},
		{
			SK:   "2",
			Name: "Pancakes",
			Ingredients: []data.IngredientLineDTO{
				{Name: "egg", Quantity: 1, Unit: "item"},
				{Name: "flour", Quantity: 2, Unit: "c"},
				{Name: "milk", Quantity: 250, Unit: "ml"},
			},
		},
		{
			SK:   "3",
			Name: "Rice Pudding",
			Ingredients: []data.IngredientLineDTO{
				{Name: "rice", Quantity: 1, Unit: "c"},
				{Name: "milk", Quantity: 500, Unit: "ml"},
			},
		},
	}
}

func names(recipes []data.RecipeDTO) []string {
	found := make([]string, len(recipes))
	for i, recipe := range recipes {
		found[i] = recipe.Name
	}
	return found
}

func TestFilterByKeyword(t *testing.T) {
	t.Run("MatchesCaseInsensitively", func(t *testing.T) {
		matched := FilterByKeyword(catalog(), "RICE")
		if len(matched) != 2 || matched[0].Name != "Egg Fried Rice" || matched[1].Name != "Rice Pudding" {
			t.Fatalf("Expected both rice recipes in order, got %v", names(matched))
		}
	})

	t.Run("EmptyKeywordMatchesEverything", func(t *testing.T) {
		matched := FilterByKeyword(catalog(), "")
		if len(matched) != 3 {
			t.Fatalf("Expected the whole catalog, got %v", names(matched))
		}
	})

	t.Run("NoHitMatchesNothing", func(t *testing.T) {
		matched := FilterByKeyword(catalog(), "lasagna")
		if len(matched) != 0 {
			t.Fatalf("Expected no matches, got %v", names(matched))
		}
	})
}

func TestFilterByIngredients(t *testing.T) {
	t.Run("OneHitIsEnough", func(t *testing.T) {
		matched := FilterByIngredients(catalog(), []string{"egg"})
		if len(matched) != 2 || matched[0].Name != "Egg Fried Rice" || matched[1].Name != "Pancakes" {
			t.Fatalf("Expected every recipe containing egg, got %v", names(matched))
		}
	})

	t.Run("MultipleNamesWidenTheMatch", func(t *testing.T) {
		matched := FilterByIngredients(catalog(), []string{"flour", "rice"})
		if len(matched) != 3 {
			t.Fatalf("Expected the inclusive-OR to cover everything, got %v", names(matched))
		}
	})

	t.Run("EmptySetMatchesNothing", func(t *testing.T) {
		matched := FilterByIngredients(catalog(), nil)
		if len(matched) != 0 {
			t.Fatalf("Expected no matches, got %v", names(matched))
		}
	})
}

func TestFilter(t *testing.T) {
	t.Run("PredicatesCombine", func(t *testing.T) {
		matched := Filter(catalog(), "rice", []string{"milk"})
		if len(matched) != 1 || matched[0].Name != "Rice Pudding" {
			t.Fatalf("Expected only the recipe passing both predicates, got %v", names(matched))
		}
	})

	t.Run("NoIngredientCriterionSkipsThePredicate", func(t *testing.T) {
		matched := Filter(catalog(), "rice", nil)
		if len(matched) != 2 {
			t.Fatalf("Expected the keyword alone to decide, got %v", names(matched))
		}
	})

	t.Run("PreservesInputOrder", func(t *testing.T) {
		matched := Filter(catalog(), "", []string{"milk", "egg"})
		if len(matched) != 3 {
			t.Fatalf("Expected all three, got %v", names(matched))
		}
		for i, want := range []string{"Egg Fried Rice", "Pancakes", "Rice Pudding"} {
			if matched[i].Name != want {
				t.Fatalf("Expected order to hold, got %v", names(matched))
			}
		}
	})
}
