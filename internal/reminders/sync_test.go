package reminders

import (
	"testing"
	"time"

	"calfern.me/pantry/internal/data"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/test"
)

func seedReminder(t *testing.T, sync *Synchronizer, itemId string, name string, date time.Time) data.ReminderDTO {
	reminder, err := sync.CreateForItem("nobody", data.PantryItemDTO{
		SK:         itemId,
		Name:       name,
		RemindDate: date,
	})
	if err != nil {
		t.Fatalf("Failed to create a reminder for %s: %s", itemId, err)
	}
	return reminder
}

func TestCreateForItem(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	now := time.Now()
	reminder := seedReminder(t, sync, "item-1", "Milk", now)
	if reminder.Dismissed {
		t.Fatalf("Expected a fresh reminder to be active: %v", reminder)
	}
	if reminder.SK != "item-1" {
		t.Fatalf("Expected the reminder to key on the item id, got %s", reminder.SK)
	}

	t.Run("SecondCreateConflicts", func(t *testing.T) {
		_, err := sync.CreateForItem("nobody", data.PantryItemDTO{
			SK:         "item-1",
			Name:       "Milk",
			RemindDate: now,
		})
		if _, ok := err.(*exceptions.ConflictError); !ok {
			t.Fatalf("Expected a conflict error, got %v", err)
		}
	})
}

func TestRetargetForItem(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	now := time.Now()
	seedReminder(t, sync, "item-1", "Milk", now)

	t.Run("PreservesDismissed", func(t *testing.T) {
		if _, err := sync.SetDismissed("nobody", "item-1", true); err != nil {
			t.Fatalf("Failed to dismiss: %s", err)
		}
		retargeted, err := sync.RetargetForItem("nobody", data.PantryItemDTO{
			SK:         "item-1",
			Name:       "Whole Milk",
			RemindDate: now.AddDate(0, 0, 7),
		})
		if err != nil {
			t.Fatalf("Failed to retarget: %s", err)
		}
		if retargeted.ItemName != "Whole Milk" || !retargeted.Date.Equal(now.AddDate(0, 0, 7)) {
			t.Fatalf("Expected the reminder to follow the item: %v", retargeted)
		}
		if !retargeted.Dismissed {
			t.Fatalf("Expected the dismissed flag to survive a retarget: %v", retargeted)
		}
	})

	t.Run("MissingReminderIsInconsistent", func(t *testing.T) {
		_, err := sync.RetargetForItem("nobody", data.PantryItemDTO{
			SK:         "orphan",
			Name:       "Orphan",
			RemindDate: now,
		})
		if _, ok := err.(*exceptions.InconsistentStateError); !ok {
			t.Fatalf("Expected an inconsistent state error, got %v", err)
		}
	})
}

func TestDismissForItem(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	seedReminder(t, sync, "item-1", "Milk", time.Now())

	dismissed, err := sync.DismissForItem("nobody", "item-1")
	if err != nil {
		t.Fatalf("Failed to dismiss: %s", err)
	}
	if !dismissed.Dismissed {
		t.Fatalf("Expected the reminder to be dismissed: %v", dismissed)
	}

	t.Run("MissingReminderIsInconsistent", func(t *testing.T) {
		_, err := sync.DismissForItem("nobody", "orphan")
		if _, ok := err.(*exceptions.InconsistentStateError); !ok {
			t.Fatalf("Expected an inconsistent state error, got %v", err)
		}
	})
}

func TestSetDismissed(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	seedReminder(t, sync, "item-1", "Milk", time.Now())

	t.Run("TogglesBothWays", func(t *testing.T) {
		reminder, err := sync.SetDismissed("nobody", "item-1", true)
		if err != nil || !reminder.Dismissed {
			t.Fatalf("Failed to dismiss: %v, %v", reminder, err)
		}
		reminder, err = sync.SetDismissed("nobody", "item-1", false)
		if err != nil || reminder.Dismissed {
			t.Fatalf("Failed to restore: %v, %v", reminder, err)
		}
	})

	t.Run("UnknownItemIsPlainNotFound", func(t *testing.T) {
		_, err := sync.SetDismissed("nobody", "non-existent", true)
		if _, ok := err.(*exceptions.NotFoundError); !ok {
			t.Fatalf("Expected a not found error, got %v", err)
		}
	})
}

func TestDeleteForItem(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	seedReminder(t, sync, "item-1", "Milk", time.Now())

	if err := sync.DeleteForItem("nobody", "item-1"); err != nil {
		t.Fatalf("Failed to delete: %s", err)
	}
	remaining, err := sync.ListAll("nobody")
	if err != nil {
		t.Fatalf("Failed to list: %s", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Expected no reminders, got %v", remaining)
	}

	t.Run("MissingReminderIsInconsistent", func(t *testing.T) {
		err := sync.DeleteForItem("nobody", "item-1")
		if _, ok := err.(*exceptions.InconsistentStateError); !ok {
			t.Fatalf("Expected an inconsistent state error, got %v", err)
		}
	})
}

func TestListActiveDue(t *testing.T) {
	sync := NewSynchronizer(test.NewMemoryReminderService())
	now := time.Now()
	seedReminder(t, sync, "item-1", "Oldest", now.AddDate(0, 0, -3))
	seedReminder(t, sync, "item-2", "Yesterday", now.AddDate(0, 0, -1))
	seedReminder(t, sync, "item-3", "Future", now.AddDate(0, 0, 2))
	seedReminder(t, sync, "item-4", "Dismissed", now.AddDate(0, 0, -2))
	if _, err := sync.SetDismissed("nobody", "item-4", true); err != nil {
		t.Fatalf("Failed to dismiss: %s", err)
	}

	due, err := sync.ListActiveDue("nobody", now)
	if err != nil {
		t.Fatalf("Failed to list due reminders: %s", err)
	}
	if len(due) != 2 {
		t.Fatalf("Expected 2 due reminders, got %v", due)
	}
	if due[0].ItemName != "Yesterday" || due[1].ItemName != "Oldest" {
		t.Fatalf("Expected date descending order, got %v", due)
	}

	t.Run("ActiveCountMatches", func(t *testing.T) {
		count, err := sync.ActiveCount("nobody", now)
		if err != nil {
			t.Fatalf("Failed to count: %s", err)
		}
		if count != 2 {
			t.Fatalf("Expected 2, got %d", count)
		}
	})

	t.Run("ListAllKeepsEverything", func(t *testing.T) {
		all, err := sync.ListAll("nobody")
		if err != nil {
			t.Fatalf("Failed to list: %s", err)
		}
		if len(all) != 4 {
			t.Fatalf("Expected 4 reminders, got %v", all)
		}
	})
}
