package data

import "time"

type RecipeDTO struct {
	PK              string              `dynamodbav:"PK"`
	SK              string              `dynamodbav:"SK"`
	Name            string              `dynamodbav:"name"`
	Author          string              `dynamodbav:"author"`
	Instructions    string              `dynamodbav:"instructions"`
	CookTimeMinutes int                 `dynamodbav:"cookTimeMinutes"`
	Ingredients     []IngredientLineDTO `dynamodbav:"ingredients"`
	CreateTime      time.Time           `dynamodbav:"createTime"`
	UpdateTime      time.Time           `dynamodbav:"updateTime"`
}

type RecipeInputDTO struct {
	Name            *string              `dynamodbav:"name"`
	Author          *string              `dynamodbav:"author"`
	Instructions    *string              `dynamodbav:"instructions"`
	CookTimeMinutes *int                 `dynamodbav:"cookTimeMinutes"`
	Ingredients     *[]IngredientLineDTO `dynamodbav:"ingredients"`
}

// The recipe catalog is shared: every account browses and filters the
// same partition, so the service does not take an account id.
type RecipeDataService interface {
	GetRecipe(recipeId string) (RecipeDTO, error)
	CreateRecipe(author string, input RecipeInputDTO) (RecipeDTO, error)
	UpdateRecipe(recipeId string, input RecipeInputDTO) (RecipeDTO, error)
	ListRecipes(params QueryParams) (QueryResults[RecipeDTO], error)
	DeleteRecipe(recipeId string) error
}
