package subscriptions

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/dynamodb/services"
	"calfern.me/pantry/internal/dynamodb/token"
)

func NewSubscriptionService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.SubscriptionDataService {
	return &services.RepositoryDynamoDBService[data.SubscriptionDTO, data.SubscriptionInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Subscription",
		GetSK: func(sd data.SubscriptionDTO) string {
			return sd.SK
		},
		OnCreate: func(sid data.SubscriptionInputDTO, createTime time.Time, pk string, sk string) data.SubscriptionDTO {
			subscription := data.SubscriptionDTO{
				PK:         pk,
				SK:         sk,
				Endpoint:   *sid.Endpoint,
				Protocol:   *sid.Protocol,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if sid.SubscriberArn != nil {
				subscription.SubscriberArn = *sid.SubscriberArn
			}
			return subscription
		},
		OnUpdate: func(sid data.SubscriptionInputDTO, ub expression.UpdateBuilder) {
			if sid.Endpoint != nil {
				ub.Set(expression.Name("endpoint"), expression.Value(sid.Endpoint))
			}
			if sid.Protocol != nil {
				ub.Set(expression.Name("protocol"), expression.Value(sid.Protocol))
			}
			if sid.SubscriberArn != nil {
				ub.Set(expression.Name("subscriberArn"), expression.Value(sid.SubscriberArn))
			}
		},
		Shim: func(pk, sk string) data.SubscriptionDTO {
			return data.SubscriptionDTO{PK: pk, SK: sk}
		},
	}
}
