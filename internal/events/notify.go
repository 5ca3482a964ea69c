package events

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/notifications"
)

// NotifyReminderHandler fans reminder creation out to the notification
// topic so subscribed endpoints hear about upcoming check-back dates.
type NotifyReminderHandler struct {
	Notifications notifications.NotificationService
}

func (nh *NotifyReminderHandler) Filter(record events.DynamoDBEventRecord) bool {
	return record.EventName == "INSERT" && isReminder(record.Change.Keys["PK"].String())
}

func (nh *NotifyReminderHandler) Apply(record events.DynamoDBEventRecord) error {
	itemName := record.Change.NewImage["itemName"].String()
	date := record.Change.NewImage["date"].String()
	return nh.Notifications.Publish(notifications.PublishInput{
		Subject: "Pantry reminder scheduled",
		Message: fmt.Sprintf("A reminder for %s is set for %s.", itemName, date),
	})
}

func DefaultNotifyHandler(service notifications.NotificationService) *NotifyReminderHandler {
	return &NotifyReminderHandler{
		Notifications: service,
	}
}
