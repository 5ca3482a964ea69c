package pantry

import (
	"fmt"
	"time"

	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/reminders"
)

// Engine owns the item lifecycle: derived dates, derived pantry status,
// and the item-then-reminder cascade. Every public entry point finishes
// the reminder side of the cascade itself, so "one reminder per item,
// always in sync" is enforced here and nowhere else.
type Engine struct {
	Items     data.PantryItemDataService
	Reminders *reminders.Synchronizer
	Dates     *DateCalculator
}

func NewEngine(items data.PantryItemDataService, sync *reminders.Synchronizer, dates *DateCalculator) *Engine {
	return &Engine{
		Items:     items,
		Reminders: sync,
		Dates:     dates,
	}
}

type ItemInput struct {
	Name       *string
	Quantity   *float32
	Unit       *string
	Expiration *string
	RemindDays *int
}

type DerivedDates struct {
	ExpirationDate *time.Time
	RemindDate     time.Time
}

// DeriveDates computes the expiration and remind dates for an item.
//
// Without an expiration the remind date lands one calendar month after
// the reference date, clamped to the target month's last day. With one,
// the expiration parses as a calendar date at midnight in the reference
// zone and the remind date backs off remindDays calendar days from it.
func (e *Engine) DeriveDates(expiration *string, remindDays *int, reference time.Time) (DerivedDates, error) {
	if expiration == nil || *expiration == "" {
		return DerivedDates{RemindDate: e.Dates.AddMonthClamped(reference)}, nil
	}
	days := 0
	if remindDays != nil {
		days = *remindDays
	}
	if days < 0 {
		return DerivedDates{}, exceptions.InvalidInput("Remind days must not be negative.")
	}
	expirationDate, err := e.Dates.ParseDay(*expiration)
	if err != nil {
		return DerivedDates{}, err
	}
	return DerivedDates{
		ExpirationDate: &expirationDate,
		RemindDate:     expirationDate.AddDate(0, 0, -days),
	}, nil
}

// DeriveStatus resolves the in-pantry flag: an explicit value wins, a
// zero quantity forces false, anything else keeps the previous status.
func DeriveStatus(explicit *bool, quantity float32, previous bool) bool {
	if explicit != nil {
		return *explicit
	}
	if quantity == 0 {
		return false
	}
	return previous
}

func (e *Engine) validateInfo(input ItemInput) error {
	if input.Name == nil || *input.Name == "" {
		return exceptions.InvalidInput("Item name must not be empty.")
	}
	if input.Quantity == nil || *input.Quantity < 0 {
		return exceptions.InvalidInput("Item quantity must be a nonnegative number.")
	}
	if input.Unit == nil || !data.IsUnit(*input.Unit) {
		return exceptions.InvalidInput(fmt.Sprintf("Item unit must be one of %v.", data.Units))
	}
	return nil
}

// checkOrder rejects date combinations that would break the reminder
// invariants remindDate >= dateAdded and expirationDate >= dateAdded.
func (e *Engine) checkOrder(derived DerivedDates, dateAdded time.Time) error {
	added := e.Dates.Midnight(dateAdded)
	if derived.ExpirationDate != nil && derived.ExpirationDate.Before(added) {
		return exceptions.InvalidDate(fmt.Sprintf("Expiration date %s precedes the added date %s.",
			e.Dates.FormatDay(*derived.ExpirationDate), e.Dates.FormatDay(added)))
	}
	if derived.RemindDate.Before(added) {
		return exceptions.InvalidDate(fmt.Sprintf("Remind date %s precedes the added date %s.",
			e.Dates.FormatDay(derived.RemindDate), e.Dates.FormatDay(added)))
	}
	return nil
}

// AddItem creates an item in the pantry and its reminder.
func (e *Engine) AddItem(owner string, input ItemInput) (data.PantryItemDTO, error) {
	if err := e.validateInfo(input); err != nil {
		return data.PantryItemDTO{}, err
	}
	if *input.Quantity == 0 {
		return data.PantryItemDTO{}, exceptions.InvalidInput("Item quantity must be greater than zero.")
	}
	now := e.Dates.Now()
	derived, err := e.DeriveDates(input.Expiration, input.RemindDays, now)
	if err != nil {
		return data.PantryItemDTO{}, err
	}
	if err := e.checkOrder(derived, now); err != nil {
		return data.PantryItemDTO{}, err
	}
	inPantry := true
	item, err := e.Items.Create(owner, data.PantryItemInputDTO{
		Name:           input.Name,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		ExpirationDate: derived.ExpirationDate,
		RemindDate:     &derived.RemindDate,
		InPantry:       &inPantry,
	})
	if err != nil {
		return item, err
	}
	if _, err := e.Reminders.CreateForItem(owner, item); err != nil {
		return item, err
	}
	return item, nil
}

// UpdateItemInfo rewrites an item's name, quantity, unit and dates, then
// retargets its reminder to the freshly derived remind date. The reminder
// dismissed flag is untouched; only explicit status updates dismiss.
func (e *Engine) UpdateItemInfo(owner string, itemId string, input ItemInput) (data.PantryItemDTO, error) {
	if err := e.validateInfo(input); err != nil {
		return data.PantryItemDTO{}, err
	}
	existing, err := e.Items.Get(owner, itemId)
	if err != nil {
		return existing, err
	}
	derived, err := e.DeriveDates(input.Expiration, input.RemindDays, existing.CreateTime)
	if err != nil {
		return existing, err
	}
	if err := e.checkOrder(derived, existing.CreateTime); err != nil {
		return existing, err
	}
	status := DeriveStatus(nil, *input.Quantity, existing.InPantry)
	updated, err := e.Items.Update(owner, itemId, data.PantryItemInputDTO{
		Name:           input.Name,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		ExpirationDate: derived.ExpirationDate,
		RemindDate:     &derived.RemindDate,
		InPantry:       &status,
	})
	if err != nil {
		return updated, err
	}
	if _, err := e.Reminders.RetargetForItem(owner, updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// UpdateItemStatus toggles the in-pantry flag. Leaving the pantry
// dismisses the item's reminder; returning to it never un-dismisses.
func (e *Engine) UpdateItemStatus(owner string, itemId string, inPantry bool) (data.PantryItemDTO, error) {
	if _, err := e.Items.Get(owner, itemId); err != nil {
		return data.PantryItemDTO{}, err
	}
	updated, err := e.Items.Update(owner, itemId, data.PantryItemInputDTO{
		InPantry: &inPantry,
	})
	if err != nil {
		return updated, err
	}
	if !inPantry {
		if _, err := e.Reminders.DismissForItem(owner, itemId); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

// DeleteItem removes the item's reminder first, then the item. The order
// matters: a reminder referencing a deleted item must never survive.
func (e *Engine) DeleteItem(owner string, itemId string) error {
	if _, err := e.Items.Get(owner, itemId); err != nil {
		return err
	}
	if err := e.Reminders.DeleteForItem(owner, itemId); err != nil {
		return err
	}
	return e.Items.Delete(owner, itemId)
}
