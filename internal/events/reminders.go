package events

import (
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"calfern.me/pantry/internal/data"
)

func isPantryItem(pk string) bool {
	return strings.HasSuffix(pk, ":PantryItem")
}

func isReminder(pk string) bool {
	return strings.HasSuffix(pk, ":Reminder")
}

func accountOf(pk string) string {
	return strings.Split(pk, ":")[0]
}

// SweepOrphanReminderHandler backs up the delete cascade: any item record
// leaving the table takes its reminder with it, even if the API-side
// cascade never ran.
type SweepOrphanReminderHandler struct {
	Reminders data.ReminderDataService
}

func (sh *SweepOrphanReminderHandler) Filter(record events.DynamoDBEventRecord) bool {
	return record.EventName == "REMOVE" && isPantryItem(record.Change.Keys["PK"].String())
}

func (sh *SweepOrphanReminderHandler) Apply(record events.DynamoDBEventRecord) error {
	account := accountOf(record.Change.Keys["PK"].String())
	itemId := record.Change.Keys["SK"].String()
	if err := sh.Reminders.Delete(account, itemId); err != nil {
		return err
	}
	fmt.Printf("Swept reminder for removed item %s\n", itemId)
	return nil
}

func DefaultSweepHandler(reminderData data.ReminderDataService) *SweepOrphanReminderHandler {
	return &SweepOrphanReminderHandler{
		Reminders: reminderData,
	}
}
