package data

import "time"

type IngredientLineDTO struct {
	Name     string  `dynamodbav:"name"`
	Quantity float32 `dynamodbav:"quantity"`
	Unit     string  `dynamodbav:"unit"`
}

// Ingredient lines keep insertion order. No two lines in the same basket
// share a (name, unit) pair; additions that would collide are merged.
type BasketDTO struct {
	PK          string              `dynamodbav:"PK"`
	SK          string              `dynamodbav:"SK"`
	Name        string              `dynamodbav:"name"`
	Ingredients []IngredientLineDTO `dynamodbav:"ingredients"`
	CreateTime  time.Time           `dynamodbav:"createTime"`
	UpdateTime  time.Time           `dynamodbav:"updateTime"`
}

type BasketInputDTO struct {
	Name        *string              `dynamodbav:"name"`
	Ingredients *[]IngredientLineDTO `dynamodbav:"ingredients"`
}

type BasketDataService interface {
	Repository[BasketDTO, BasketInputDTO]
}
