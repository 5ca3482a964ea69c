package reminders

import (
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/pantry"
)

type Reminder struct {
	ItemId    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	Date      string `json:"date"`
	Dismissed bool   `json:"dismissed"`
}

func NewReminderConverter(dates *pantry.DateCalculator) func(data.ReminderDTO) Reminder {
	return func(dto data.ReminderDTO) Reminder {
		return Reminder{
			ItemId:    dto.SK,
			ItemName:  dto.ItemName,
			Date:      dates.FormatDay(dto.Date),
			Dismissed: dto.Dismissed,
		}
	}
}

type StatusInput struct {
	Dismissed *bool `json:"dismissed"`
}

type ActiveCount struct {
	Active int `json:"active"`
}
