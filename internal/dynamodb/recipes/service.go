package recipes

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/dynamodb/services"
	"calfern.me/pantry/internal/dynamodb/token"
)

// The shared catalog partition. Recipes carry their author as a plain
// attribute instead of living in the author's partition.
const CatalogPartition = "catalog"

type RecipeDynamoDBService struct {
	repo *services.RepositoryDynamoDBService[data.RecipeDTO, data.RecipeInputDTO]
}

func NewRecipeService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.RecipeDataService {
	return &RecipeDynamoDBService{
		repo: &services.RepositoryDynamoDBService[data.RecipeDTO, data.RecipeInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           "Recipe",
			GetSK: func(rd data.RecipeDTO) string {
				return rd.SK
			},
			OnCreate: func(rid data.RecipeInputDTO, createTime time.Time, pk string, sk string) data.RecipeDTO {
				recipe := data.RecipeDTO{
					PK:           pk,
					SK:           sk,
					Name:         *rid.Name,
					Instructions: *rid.Instructions,
					Ingredients:  []data.IngredientLineDTO{},
					CreateTime:   createTime,
					UpdateTime:   createTime,
				}
				if rid.Author != nil {
					recipe.Author = *rid.Author
				}
				if rid.CookTimeMinutes != nil {
					recipe.CookTimeMinutes = *rid.CookTimeMinutes
				}
				if rid.Ingredients != nil {
					recipe.Ingredients = *rid.Ingredients
				}
				return recipe
			},
			OnUpdate: func(rid data.RecipeInputDTO, ub expression.UpdateBuilder) {
				if rid.Name != nil {
					ub.Set(expression.Name("name"), expression.Value(rid.Name))
				}
				if rid.Instructions != nil {
					ub.Set(expression.Name("instructions"), expression.Value(rid.Instructions))
				}
				if rid.CookTimeMinutes != nil {
					ub.Set(expression.Name("cookTimeMinutes"), expression.Value(rid.CookTimeMinutes))
				}
				if rid.Ingredients != nil {
					ub.Set(expression.Name("ingredients"), expression.Value(rid.Ingredients))
				}
			},
			Shim: func(pk, sk string) data.RecipeDTO {
				return data.RecipeDTO{PK: pk, SK: sk}
			},
		},
	}
}

func (rs *RecipeDynamoDBService) GetRecipe(recipeId string) (data.RecipeDTO, error) {
	return rs.repo.Get(CatalogPartition, recipeId)
}

func (rs *RecipeDynamoDBService) CreateRecipe(author string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	input.Author = &author
	return rs.repo.Create(CatalogPartition, input)
}

func (rs *RecipeDynamoDBService) UpdateRecipe(recipeId string, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	return rs.repo.Update(CatalogPartition, recipeId, input)
}

func (rs *RecipeDynamoDBService) ListRecipes(params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	return rs.repo.List(CatalogPartition, params)
}

func (rs *RecipeDynamoDBService) DeleteRecipe(recipeId string) error {
	return rs.repo.Delete(CatalogPartition, recipeId)
}
