package reminders

import (
	"fmt"
	"sort"
	"time"

	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
)

// Synchronizer keeps exactly one reminder per pantry item. Items move a
// reminder through three states: none before creation, active from the
// moment the item exists, dismissed once the item leaves the pantry or
// the user dismisses it by hand. Only item deletion removes a reminder.
type Synchronizer struct {
	Data data.ReminderDataService
}

func NewSynchronizer(reminderData data.ReminderDataService) *Synchronizer {
	return &Synchronizer{
		Data: reminderData,
	}
}

func missingReminder(itemId string, err error) error {
	if _, ok := err.(*exceptions.NotFoundError); ok {
		return exceptions.Inconsistent(fmt.Sprintf("No reminder exists for item %s; its create cascade was skipped.", itemId))
	}
	return err
}

// CreateForItem starts the reminder for a freshly created item.
func (s *Synchronizer) CreateForItem(user string, item data.PantryItemDTO) (data.ReminderDTO, error) {
	dismissed := false
	return s.Data.CreateWithItemId(user, data.ReminderInputDTO{
		ItemName:  &item.Name,
		Date:      &item.RemindDate,
		Dismissed: &dismissed,
	}, item.SK)
}

// RetargetForItem rewrites the reminder date after an item info edit,
// leaving the dismissed flag alone. A missing reminder is a broken
// cascade, not a user error.
func (s *Synchronizer) RetargetForItem(user string, item data.PantryItemDTO) (data.ReminderDTO, error) {
	reminder, err := s.Data.Update(user, item.SK, data.ReminderInputDTO{
		ItemName: &item.Name,
		Date:     &item.RemindDate,
	})
	if err != nil {
		return reminder, missingReminder(item.SK, err)
	}
	return reminder, nil
}

// DismissForItem flags the reminder dismissed when its item leaves the
// pantry.
func (s *Synchronizer) DismissForItem(user string, itemId string) (data.ReminderDTO, error) {
	dismissed := true
	reminder, err := s.Data.Update(user, itemId, data.ReminderInputDTO{
		Dismissed: &dismissed,
	})
	if err != nil {
		return reminder, missingReminder(itemId, err)
	}
	return reminder, nil
}

// SetDismissed is the user-facing toggle; unlike the lifecycle paths it
// surfaces a plain not-found for an unknown item.
func (s *Synchronizer) SetDismissed(user string, itemId string, dismissed bool) (data.ReminderDTO, error) {
	return s.Data.Update(user, itemId, data.ReminderInputDTO{
		Dismissed: &dismissed,
	})
}

// DeleteForItem removes the reminder ahead of its item's deletion.
func (s *Synchronizer) DeleteForItem(user string, itemId string) error {
	if _, err := s.Data.Get(user, itemId); err != nil {
		return missingReminder(itemId, err)
	}
	return s.Data.Delete(user, itemId)
}

func (s *Synchronizer) listAll(user string) ([]data.ReminderDTO, error) {
	var all []data.ReminderDTO
	params := data.QueryParams{}
	for {
		page, err := s.Data.List(user, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.NextToken) == 0 {
			return all, nil
		}
		params.NextToken = page.NextToken
	}
}

// ListAll returns every reminder for the user, dismissed or not.
func (s *Synchronizer) ListAll(user string) ([]data.ReminderDTO, error) {
	return s.listAll(user)
}

// ListActiveDue returns the user's undismissed reminders whose date has
// arrived, ordered by date descending. The sort is stable, so reminders
// sharing a date keep their store order.
func (s *Synchronizer) ListActiveDue(user string, now time.Time) ([]data.ReminderDTO, error) {
	all, err := s.listAll(user)
	if err != nil {
		return nil, err
	}
	due := make([]data.ReminderDTO, 0, len(all))
	for _, reminder := range all {
		if !reminder.Dismissed && !reminder.Date.After(now) {
			due = append(due, reminder)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Date.After(due[j].Date)
	})
	return due, nil
}

// ActiveCount is computed from the store on demand; nothing caches it.
func (s *Synchronizer) ActiveCount(user string, now time.Time) (int, error) {
	due, err := s.ListActiveDue(user, now)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}
