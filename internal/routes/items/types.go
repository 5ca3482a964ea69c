package items

import (
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/pantry"
)

type ItemInput struct {
	Name       *string  `json:"name"`
	Quantity   *float32 `json:"quantity"`
	Unit       *string  `json:"unit"`
	Expiration *string  `json:"expiration"`
	RemindDays *int     `json:"remindDays"`
}

func (i *ItemInput) ToEngine() pantry.ItemInput {
	return pantry.ItemInput{
		Name:       i.Name,
		Quantity:   i.Quantity,
		Unit:       i.Unit,
		Expiration: i.Expiration,
		RemindDays: i.RemindDays,
	}
}

type StatusInput struct {
	InPantry *bool `json:"inPantry"`
}

// Dates render as YYYY-MM-DD in the reference zone; a missing expiration
// renders as the empty string.
type Item struct {
	Id             string  `json:"itemId"`
	Name           string  `json:"name"`
	Quantity       float32 `json:"quantity"`
	Unit           string  `json:"unit"`
	DateAdded      string  `json:"dateAdded"`
	ExpirationDate string  `json:"expirationDate"`
	RemindDate     string  `json:"remindDate"`
	InPantry       bool    `json:"inPantry"`
}

func NewItemConverter(dates *pantry.DateCalculator) func(data.PantryItemDTO) Item {
	return func(dto data.PantryItemDTO) Item {
		var expiration string
		if dto.ExpirationDate != nil {
			expiration = dates.FormatDay(*dto.ExpirationDate)
		}
		return Item{
			Id:             dto.SK,
			Name:           dto.Name,
			Quantity:       dto.Quantity,
			Unit:           dto.Unit,
			DateAdded:      dates.FormatDay(dto.CreateTime),
			ExpirationDate: expiration,
			RemindDate:     dates.FormatDay(dto.RemindDate),
			InPantry:       dto.InPantry,
		}
	}
}
