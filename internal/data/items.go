package data

import "time"

// Units accepted for pantry items and basket lines. Quantities carry one
// of these verbatim; there is no conversion between them.
var Units = []string{"item", "g", "kg", "oz", "lb", "ml", "l", "tsp", "tbsp", "c"}

func IsUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}

type PantryItemDTO struct {
	PK             string     `dynamodbav:"PK"`
	SK             string     `dynamodbav:"SK"`
	Name           string     `dynamodbav:"name"`
	Quantity       float32    `dynamodbav:"quantity"`
	Unit           string     `dynamodbav:"unit"`
	ExpirationDate *time.Time `dynamodbav:"expirationDate"`
	RemindDate     time.Time  `dynamodbav:"remindDate"`
	InPantry       bool       `dynamodbav:"inPantry"`
	CreateTime     time.Time  `dynamodbav:"createTime"`
	UpdateTime     time.Time  `dynamodbav:"updateTime"`
}

// RemindDate travels together with ExpirationDate: whenever RemindDate is
// set on an update, ExpirationDate is rewritten too (nil clears it).
type PantryItemInputDTO struct {
	Name           *string    `dynamodbav:"name"`
	Quantity       *float32   `dynamodbav:"quantity"`
	Unit           *string    `dynamodbav:"unit"`
	ExpirationDate *time.Time `dynamodbav:"expirationDate"`
	RemindDate     *time.Time `dynamodbav:"remindDate"`
	InPantry       *bool      `dynamodbav:"inPantry"`
}

type PantryItemDataService interface {
	Repository[PantryItemDTO, PantryItemInputDTO]
	ListByStatus(accountId string, inPantry bool, params QueryParams) (QueryResults[PantryItemDTO], error)
}
