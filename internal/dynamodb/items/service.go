package items

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/dynamodb/services"
	"calfern.me/pantry/internal/dynamodb/token"
)

type PantryItemDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.PantryItemDTO, data.PantryItemInputDTO]
}

func NewPantryItemService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.PantryItemDataService {
	return &PantryItemDynamoDBService{
		RepositoryDynamoDBService: &services.RepositoryDynamoDBService[data.PantryItemDTO, data.PantryItemInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Name:           "PantryItem",
			GetSK: func(pid data.PantryItemDTO) string {
				return pid.SK
			},
			OnCreate: func(piid data.PantryItemInputDTO, createTime time.Time, pk string, sk string) data.PantryItemDTO {
				item := data.PantryItemDTO{
					PK:             pk,
					SK:             sk,
					Name:           *piid.Name,
					Quantity:       *piid.Quantity,
					Unit:           *piid.Unit,
					ExpirationDate: piid.ExpirationDate,
					CreateTime:     createTime,
					UpdateTime:     createTime,
				}
				if piid.RemindDate != nil {
					item.RemindDate = *piid.RemindDate
				}
				if piid.InPantry != nil {
					item.InPantry = *piid.InPantry
				}
				return item
			},
			OnUpdate: func(piid data.PantryItemInputDTO, ub expression.UpdateBuilder) {
				if piid.Name != nil {
					ub.Set(expression.Name("name"), expression.Value(piid.Name))
				}
				if piid.Quantity != nil {
					ub.Set(expression.Name("quantity"), expression.Value(piid.Quantity))
				}
				if piid.Unit != nil {
					ub.Set(expression.Name("unit"), expression.Value(piid.Unit))
				}
				if piid.RemindDate != nil {
					// expiration rides along so a cleared date actually clears
					ub.Set(expression.Name("remindDate"), expression.Value(piid.RemindDate))
					ub.Set(expression.Name("expirationDate"), expression.Value(piid.ExpirationDate))
				}
				if piid.InPantry != nil {
					ub.Set(expression.Name("inPantry"), expression.Value(piid.InPantry))
				}
			},
			Shim: func(pk, sk string) data.PantryItemDTO {
				return data.PantryItemDTO{PK: pk, SK: sk}
			},
		},
	}
}

func (ps *PantryItemDynamoDBService) ListByStatus(accountId string, inPantry bool, params data.QueryParams) (data.QueryResults[data.PantryItemDTO], error) {
	keyEx := expression.Key("PK").Equal(expression.Value(services.PartitionKey(accountId, ps.Name)))
	filter := expression.Name("inPantry").Equal(expression.Value(inPantry))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).WithFilter(filter).Build()
	if err != nil {
		return data.QueryResults[data.PantryItemDTO]{}, err
	}
	startKey, err := ps.TokenMarshaler.Unmarshal(accountId, params.NextToken)
	if err != nil {
		return data.QueryResults[data.PantryItemDTO]{}, err
	}
	output, err := ps.DynamoDB.Query(context.TODO(), &dynamodb.QueryInput{
		TableName:                 aws.String(ps.TableName),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
	})
	if err != nil {
		return data.QueryResults[data.PantryItemDTO]{}, err
	}
	var items []data.PantryItemDTO
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return data.QueryResults[data.PantryItemDTO]{}, err
	}
	nextToken, err := ps.TokenMarshaler.Marshal(accountId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[data.PantryItemDTO]{}, err
	}
	return data.QueryResults[data.PantryItemDTO]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}
