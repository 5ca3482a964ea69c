package baskets

import (
	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/routes/util"
)

type IngredientLine struct {
	Name     string  `json:"name"`
	Quantity float32 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func ConvertLineToData(line IngredientLine) data.IngredientLineDTO {
	return data.IngredientLineDTO{
		Name:     line.Name,
		Quantity: line.Quantity,
		Unit:     line.Unit,
	}
}

func ConvertLineDataToTransfer(line data.IngredientLineDTO) IngredientLine {
	return IngredientLine{
		Name:     line.Name,
		Quantity: line.Quantity,
		Unit:     line.Unit,
	}
}

type BasketInput struct {
	Name        *string           `json:"name"`
	Ingredients *[]IngredientLine `json:"ingredients"`
}

func (b *BasketInput) ToData() data.BasketInputDTO {
	input := data.BasketInputDTO{
		Name: b.Name,
	}
	if b.Ingredients != nil {
		input.Ingredients = util.MapOnList(b.Ingredients, ConvertLineToData)
	}
	return input
}

type Basket struct {
	Id          string           `json:"basketId"`
	Name        string           `json:"name"`
	Ingredients []IngredientLine `json:"ingredients"`
}

func NewBasket(dto data.BasketDTO) Basket {
	return Basket{
		Id:          dto.SK,
		Name:        dto.Name,
		Ingredients: *util.MapOnList(&dto.Ingredients, ConvertLineDataToTransfer),
	}
}
