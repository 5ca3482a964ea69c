package recipes

import (
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/routes/util"
)

type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float32 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type RecipeInput struct {
	Name            *string       `json:"name"`
	Instructions    *string       `json:"instructions"`
	CookTimeMinutes *int          `json:"cookTimeMinutes"`
	Ingredients     *[]Ingredient `json:"ingredients"`
}

func (r *RecipeInput) Validate() error {
	if r.Name == nil || *r.Name == "" {
		return exceptions.InvalidInput("Recipe name must not be empty.")
	}
	if r.Instructions == nil || *r.Instructions == "" {
		return exceptions.InvalidInput("Recipe instructions must not be empty.")
	}
	if r.CookTimeMinutes == nil || *r.CookTimeMinutes <= 0 {
		return exceptions.InvalidInput("Recipe cook time must be a positive number of minutes.")
	}
	return nil
}

func (r *RecipeInput) ToData() data.RecipeInputDTO {
	input := data.RecipeInputDTO{
		Name:            r.Name,
		Instructions:    r.Instructions,
		CookTimeMinutes: r.CookTimeMinutes,
	}
	if r.Ingredients != nil {
		input.Ingredients = util.MapOnList(r.Ingredients, func(in Ingredient) data.IngredientLineDTO {
			return data.IngredientLineDTO{
				Name:     in.Name,
				Quantity: in.Quantity,
				Unit:     in.Unit,
			}
		})
	}
	return input
}

type Recipe struct {
	Id              string       `json:"recipeId"`
	Name            string       `json:"name"`
	Author          string       `json:"author"`
	Instructions    string       `json:"instructions"`
	CookTimeMinutes int          `json:"cookTimeMinutes"`
	Ingredients     []Ingredient `json:"ingredients"`
}

func NewRecipe(dto data.RecipeDTO) Recipe {
	return Recipe{
		Id:              dto.SK,
		Name:            dto.Name,
		Author:          dto.Author,
		Instructions:    dto.Instructions,
		CookTimeMinutes: dto.CookTimeMinutes,
		Ingredients: *util.MapOnList(&dto.Ingredients, func(line data.IngredientLineDTO) Ingredient {
			return Ingredient{
				Name:     line.Name,
				Quantity: line.Quantity,
				Unit:     line.Unit,
			}
		}),
	}
}
