package data

import "time"

// Reminders are keyed by their owning pantry item: SK is the item id.
// The key schema is what enforces "exactly one reminder per item".
type ReminderDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	ItemName   string    `dynamodbav:"itemName"`
	Date       time.Time `dynamodbav:"date"`
	Dismissed  bool      `dynamodbav:"dismissed"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type ReminderInputDTO struct {
	ItemName  *string    `dynamodbav:"itemName"`
	Date      *time.Time `dynamodbav:"date"`
	Dismissed *bool      `dynamodbav:"dismissed"`
}

type ReminderDataService interface {
	Repository[ReminderDTO, ReminderInputDTO]
}
