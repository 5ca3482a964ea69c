package reminders

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/dynamodb/services"
	"calfern.me/pantry/internal/dynamodb/token"
)

// Reminders are stored with SK = owning item id; the synchronizer creates
// them through CreateWithItemId so the key collision check doubles as the
// one-reminder-per-item guarantee.
func NewReminderService(tableName string, client dynamodb.Client, marshaler token.TokenMarshaler) data.ReminderDataService {
	return &services.RepositoryDynamoDBService[data.ReminderDTO, data.ReminderInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "Reminder",
		GetSK: func(rd data.ReminderDTO) string {
			return rd.SK
		},
		OnCreate: func(rid data.ReminderInputDTO, createTime time.Time, pk string, sk string) data.ReminderDTO {
			reminder := data.ReminderDTO{
				PK:         pk,
				SK:         sk,
				CreateTime: createTime,
				UpdateTime: createTime,
			}
			if rid.ItemName != nil {
				reminder.ItemName = *rid.ItemName
			}
			if rid.Date != nil {
				reminder.Date = *rid.Date
			}
			if rid.Dismissed != nil {
				reminder.Dismissed = *rid.Dismissed
			}
			return reminder
		},
		OnUpdate: func(rid data.ReminderInputDTO, ub expression.UpdateBuilder) {
			if rid.ItemName != nil {
				ub.Set(expression.Name("itemName"), expression.Value(rid.ItemName))
			}
			if rid.Date != nil {
				ub.Set(expression.Name("date"), expression.Value(rid.Date))
			}
			if rid.Dismissed != nil {
				ub.Set(expression.Name("dismissed"), expression.Value(rid.Dismissed))
			}
		},
		Shim: func(pk, sk string) data.ReminderDTO {
			return data.ReminderDTO{PK: pk, SK: sk}
		},
	}
}
