package baskets

import (
	"fmt"

	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
)

// MergeIngredient folds a candidate line into an ingredient list. A line
// matching on both name (case-sensitive) and unit absorbs the candidate
// quantity in place; otherwise the candidate appends in insertion order.
// Lines with the same name but different units stay distinct: there is
// no unit conversion.
func MergeIngredient(lines []data.IngredientLineDTO, name string, quantity float32, unit string) []data.IngredientLineDTO {
	for i, line := range lines {
		if line.Name == name && line.Unit == unit {
			lines[i].Quantity += quantity
			return lines
		}
	}
	return append(lines, data.IngredientLineDTO{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
	})
}

// Service fronts basket mutations with merge-aware additions.
type Service struct {
	Data data.BasketDataService
}

func NewService(basketData data.BasketDataService) *Service {
	return &Service{
		Data: basketData,
	}
}

func (s *Service) validateLine(name string, quantity float32, unit string) error {
	if name == "" {
		return exceptions.InvalidInput("Ingredient name must not be empty.")
	}
	if quantity <= 0 {
		return exceptions.InvalidInput("Ingredient quantity must be greater than zero.")
	}
	if !data.IsUnit(unit) {
		return exceptions.InvalidInput(fmt.Sprintf("Ingredient unit must be one of %v.", data.Units))
	}
	return nil
}

func (s *Service) findByName(owner string, name string) (*data.BasketDTO, error) {
	params := data.QueryParams{}
	for {
		page, err := s.Data.List(owner, params)
		if err != nil {
			return nil, err
		}
		for _, basket := range page.Items {
			if basket.Name == name {
				found := basket
				return &found, nil
			}
		}
		if len(page.NextToken) == 0 {
			return nil, nil
		}
		params.NextToken = page.NextToken
	}
}

// CreateBasket rejects duplicate basket names for the owner.
func (s *Service) CreateBasket(owner string, input data.BasketInputDTO) (data.BasketDTO, error) {
	if input.Name == nil || *input.Name == "" {
		return data.BasketDTO{}, exceptions.InvalidInput("Basket name must not be empty.")
	}
	existing, err := s.findByName(owner, *input.Name)
	if err != nil {
		return data.BasketDTO{}, err
	}
	if existing != nil {
		return data.BasketDTO{}, exceptions.Conflict("basket", *input.Name)
	}
	return s.Data.Create(owner, input)
}

// AddIngredient merges one line into the named basket, summing the
// quantity when a (name, unit) twin already exists.
func (s *Service) AddIngredient(owner string, basketId string, name string, quantity float32, unit string) (data.BasketDTO, error) {
	if err := s.validateLine(name, quantity, unit); err != nil {
		return data.BasketDTO{}, err
	}
	basket, err := s.Data.Get(owner, basketId)
	if err != nil {
		return basket, err
	}
	merged := MergeIngredient(basket.Ingredients, name, quantity, unit)
	return s.Data.Update(owner, basketId, data.BasketInputDTO{
		Ingredients: &merged,
	})
}

// UpdateInfo overwrites the basket name and ingredient list wholesale.
// Merging applies only to incremental additions, never here.
func (s *Service) UpdateInfo(owner string, basketId string, input data.BasketInputDTO) (data.BasketDTO, error) {
	if input.Name != nil && *input.Name == "" {
		return data.BasketDTO{}, exceptions.InvalidInput("Basket name must not be empty.")
	}
	return s.Data.Update(owner, basketId, input)
}

func (s *Service) DeleteBasket(owner string, basketId string) error {
	if _, err := s.Data.Get(owner, basketId); err != nil {
		return err
	}
	return s.Data.Delete(owner, basketId)
}
