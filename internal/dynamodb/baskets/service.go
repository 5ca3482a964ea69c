package baskets

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/dynamodb/services"
	"calfern.me/pantry/internal/dynamodb/token"
)

func NewBasketService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.BasketDataService {
	return &services.RepositoryDynamoDBService[data.BasketDTO, data.BasketInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Basket",
		GetSK: func(bd data.BasketDTO) string {
			return bd.SK
		},
		OnCreate: func(bid data.BasketInputDTO, createTime time.Time, pk string, sk string) data.BasketDTO {
			basket := data.BasketDTO{
				PK:          pk,
				SK:          sk,
				Name:        *bid.Name,
				Ingredients: []data.IngredientLineDTO{},
				CreateTime:  createTime,
				UpdateTime:  createTime,
			}
			if bid.Ingredients != nil {
				basket.Ingredients = *bid.Ingredients
			}
			return basket
		},
		OnUpdate: func(bid data.BasketInputDTO, ub expression.UpdateBuilder) {
			if bid.Name != nil {
				ub.Set(expression.Name("name"), expression.Value(bid.Name))
			}
			if bid.Ingredients != nil {
				ub.Set(expression.Name("ingredients"), expression.Value(bid.Ingredients))
			}
		},
		Shim: func(pk, sk string) data.BasketDTO {
			return data.BasketDTO{PK: pk, SK: sk}
		},
	}
}
