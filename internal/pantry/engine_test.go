package pantry

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"calfern.me/pantry/internal/exceptions"
	"calfern.me/pantry/internal/reminders"
	"calfern.me/pantry/internal/test"
)

func newEngine(t *testing.T) *Engine {
	dates := newCalculator(t)
	sync := reminders.NewSynchronizer(test.NewMemoryReminderService())
	return NewEngine(test.NewMemoryPantryItemService(), sync, dates)
}

func TestDeriveDates(t *testing.T) {
	engine := newEngine(t)
	reference, err := engine.Dates.ParseDay("2024-01-01")
	if err != nil {
		t.Fatalf("Failed to parse the reference date: %s", err)
	}

	t.Run("RemindDaysBackOffExpiration", func(t *testing.T) {
		derived, err := engine.DeriveDates(aws.String("2024-01-20"), aws.Int(5), reference)
		if err != nil {
			t.Fatalf("Failed to derive dates: %s", err)
		}
		if derived.ExpirationDate == nil || engine.Dates.FormatDay(*derived.ExpirationDate) != "2024-01-20" {
			t.Fatalf("Expected the expiration to parse, got %v", derived.ExpirationDate)
		}
		if got := engine.Dates.FormatDay(derived.RemindDate); got != "2024-01-15" {
			t.Fatalf("Expected remind date 2024-01-15, got %s", got)
		}
	})

	t.Run("MissingRemindDaysDefaultToZero", func(t *testing.T) {
		derived, err := engine.DeriveDates(aws.String("2024-01-20"), nil, reference)
		if err != nil {
			t.Fatalf("Failed to derive dates: %s", err)
		}
		if got := engine.Dates.FormatDay(derived.RemindDate); got != "2024-01-20" {
			t.Fatalf("Expected the remind date to land on the expiration, got %s", got)
		}
	})

	t.Run("NoExpirationLandsAMonthOut", func(t *testing.T) {
		endOfJanuary, _ := engine.Dates.ParseDay("2024-01-31")
		derived, err := engine.DeriveDates(nil, nil, endOfJanuary)
		if err != nil {
			t.Fatalf("Failed to derive dates: %s", err)
		}
		if derived.ExpirationDate != nil {
			t.Fatalf("Expected no expiration, got %v", derived.ExpirationDate)
		}
		if got := engine.Dates.FormatDay(derived.RemindDate); got != "2024-02-29" {
			t.Fatalf("Expected the remind date to clamp to 2024-02-29, got %s", got)
		}
	})

	t.Run("NegativeRemindDaysRejected", func(t *testing.T) {
		_, err := engine.DeriveDates(aws.String("2024-01-20"), aws.Int(-1), reference)
		if _, ok := err.(*exceptions.InvalidInputError); !ok {
			t.Fatalf("Expected an invalid input error, got %v", err)
		}
	})
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		explicit *bool
		quantity float32
		previous bool
		want     bool
	}{
		{"ExplicitTrueWins", aws.Bool(true), 0, false, true},
		{"ExplicitFalseWins", aws.Bool(false), 5, true, false},
		{"ZeroQuantityForcesFalse", nil, 0, true, false},
		{"OtherwiseKeepsPrevious", nil, 2, true, true},
		{"OtherwiseKeepsPreviousFalse", nil, 2, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveStatus(tc.explicit, tc.quantity, tc.previous); got != tc.want {
				t.Fatalf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAddItem(t *testing.T) {
	engine := newEngine(t)
	expiration := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, 20))

	t.Run("CreatesItemAndActiveReminder", func(t *testing.T) {
		item, err := engine.AddItem("nobody", ItemInput{
			Name:       aws.String("Milk"),
			Quantity:   aws.Float32(1),
			Unit:       aws.String("l"),
			Expiration: aws.String(expiration),
			RemindDays: aws.Int(5),
		})
		if err != nil {
			t.Fatalf("Failed to add an item: %s", err)
		}
		if !item.InPantry {
			t.Fatalf("Expected a new item to be in the pantry: %v", item)
		}
		want := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, 15))
		if got := engine.Dates.FormatDay(item.RemindDate); got != want {
			t.Fatalf("Expected remind date %s, got %s", want, got)
		}
		reminder, err := engine.Reminders.Data.Get("nobody", item.SK)
		if err != nil {
			t.Fatalf("Expected a reminder for the new item: %s", err)
		}
		if reminder.Dismissed || !reminder.Date.Equal(item.RemindDate) || reminder.ItemName != "Milk" {
			t.Fatalf("Reminder does not mirror the item: %v", reminder)
		}
	})

	t.Run("ZeroQuantityRejected", func(t *testing.T) {
		_, err := engine.AddItem("nobody", ItemInput{
			Name:     aws.String("Air"),
			Quantity: aws.Float32(0),
			Unit:     aws.String("item"),
		})
		if _, ok := err.(*exceptions.InvalidInputError); !ok {
			t.Fatalf("Expected an invalid input error, got %v", err)
		}
	})

	t.Run("UnknownUnitRejected", func(t *testing.T) {
		_, err := engine.AddItem("nobody", ItemInput{
			Name:     aws.String("Milk"),
			Quantity: aws.Float32(1),
			Unit:     aws.String("hogshead"),
		})
		if _, ok := err.(*exceptions.InvalidInputError); !ok {
			t.Fatalf("Expected an invalid input error, got %v", err)
		}
	})

	t.Run("ExpirationBeforeAddedRejected", func(t *testing.T) {
		stale := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, -3))
		_, err := engine.AddItem("nobody", ItemInput{
			Name:       aws.String("Old Bread"),
			Quantity:   aws.Float32(1),
			Unit:       aws.String("item"),
			Expiration: aws.String(stale),
		})
		if _, ok := err.(*exceptions.InvalidDateError); !ok {
			t.Fatalf("Expected an invalid date error, got %v", err)
		}
	})

	t.Run("RemindDateBeforeAddedRejected", func(t *testing.T) {
		soon := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, 2))
		_, err := engine.AddItem("nobody", ItemInput{
			Name:       aws.String("Yogurt"),
			Quantity:   aws.Float32(4),
			Unit:       aws.String("item"),
			Expiration: aws.String(soon),
			RemindDays: aws.Int(10),
		})
		if _, ok := err.(*exceptions.InvalidDateError); !ok {
			t.Fatalf("Expected an invalid date error, got %v", err)
		}
	})
}

func TestUpdateItemInfo(t *testing.T) {
	engine := newEngine(t)
	item, err := engine.AddItem("nobody", ItemInput{
		Name:     aws.String("Rice"),
		Quantity: aws.Float32(2),
		Unit:     aws.String("kg"),
	})
	if err != nil {
		t.Fatalf("Failed to add an item: %s", err)
	}

	t.Run("RetargetsWithoutTouchingDismissed", func(t *testing.T) {
		if _, err := engine.Reminders.SetDismissed("nobody", item.SK, true); err != nil {
			t.Fatalf("Failed to dismiss the reminder: %s", err)
		}
		expiration := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, 30))
		updated, err := engine.UpdateItemInfo("nobody", item.SK, ItemInput{
			Name:       aws.String("Brown Rice"),
			Quantity:   aws.Float32(1),
			Unit:       aws.String("kg"),
			Expiration: aws.String(expiration),
			RemindDays: aws.Int(10),
		})
		if err != nil {
			t.Fatalf("Failed to update the item: %s", err)
		}
		want := engine.Dates.FormatDay(engine.Dates.Now().AddDate(0, 0, 20))
		if got := engine.Dates.FormatDay(updated.RemindDate); got != want {
			t.Fatalf("Expected remind date %s, got %s", want, got)
		}
		reminder, err := engine.Reminders.Data.Get("nobody", item.SK)
		if err != nil {
			t.Fatalf("Failed to get the reminder: %s", err)
		}
		if reminder.ItemName != "Brown Rice" || !reminder.Date.Equal(updated.RemindDate) {
			t.Fatalf("Expected the reminder to retarget: %v", reminder)
		}
		if !reminder.Dismissed {
			t.Fatalf("Expected an info edit to leave the dismissed flag alone: %v", reminder)
		}
	})

	t.Run("ZeroQuantityLeavesThePantry", func(t *testing.T) {
		updated, err := engine.UpdateItemInfo("nobody", item.SK, ItemInput{
			Name:     aws.String("Brown Rice"),
			Quantity: aws.Float32(0),
			Unit:     aws.String("kg"),
		})
		if err != nil {
			t.Fatalf("Failed to update the item: %s", err)
		}
		if updated.InPantry {
			t.Fatalf("Expected a zero quantity to force the item out: %v", updated)
		}
	})

	t.Run("UnknownItemNotFound", func(t *testing.T) {
		_, err := engine.UpdateItemInfo("nobody", "non-existent", ItemInput{
			Name:     aws.String("Ghost"),
			Quantity: aws.Float32(1),
			Unit:     aws.String("item"),
		})
		if _, ok := err.(*exceptions.NotFoundError); !ok {
			t.Fatalf("Expected a not found error, got %v", err)
		}
	})
}

func TestUpdateItemStatus(t *testing.T) {
	engine := newEngine(t)
	item, err := engine.AddItem("nobody", ItemInput{
		Name:     aws.String("Beans"),
		Quantity: aws.Float32(3),
		Unit:     aws.String("item"),
	})
	if err != nil {
		t.Fatalf("Failed to add an item: %s", err)
	}

	t.Run("LeavingThePantryDismisses", func(t *testing.T) {
		updated, err := engine.UpdateItemStatus("nobody", item.SK, false)
		if err != nil {
			t.Fatalf("Failed to update the status: %s", err)
		}
		if updated.InPantry {
			t.Fatalf("Expected the item to leave the pantry: %v", updated)
		}
		reminder, err := engine.Reminders.Data.Get("nobody", item.SK)
		if err != nil {
			t.Fatalf("Failed to get the reminder: %s", err)
		}
		if !reminder.Dismissed {
			t.Fatalf("Expected the reminder to be dismissed: %v", reminder)
		}
	})

	t.Run("ReturningNeverUndismisses", func(t *testing.T) {
		updated, err := engine.UpdateItemStatus("nobody", item.SK, true)
		if err != nil {
			t.Fatalf("Failed to update the status: %s", err)
		}
		if !updated.InPantry {
			t.Fatalf("Expected the item back in the pantry: %v", updated)
		}
		reminder, err := engine.Reminders.Data.Get("nobody", item.SK)
		if err != nil {
			t.Fatalf("Failed to get the reminder: %s", err)
		}
		if !reminder.Dismissed {
			t.Fatalf("Expected the reminder to stay dismissed: %v", reminder)
		}
	})
}

func TestDeleteItem(t *testing.T) {
	engine := newEngine(t)
	item, err := engine.AddItem("nobody", ItemInput{
		Name:     aws.String("Cereal"),
		Quantity: aws.Float32(1),
		Unit:     aws.String("item"),
	})
	if err != nil {
		t.Fatalf("Failed to add an item: %s", err)
	}

	t.Run("CascadesToTheReminder", func(t *testing.T) {
		if err := engine.DeleteItem("nobody", item.SK); err != nil {
			t.Fatalf("Failed to delete the item: %s", err)
		}
		if _, err := engine.Items.Get("nobody", item.SK); err == nil {
			t.Fatal("Expected the item to be gone")
		}
		remaining, err := engine.Reminders.ListAll("nobody")
		if err != nil {
			t.Fatalf("Failed to list reminders: %s", err)
		}
		if len(remaining) != 0 {
			t.Fatalf("Expected no reminders to survive, got %v", remaining)
		}
	})

	t.Run("UnknownItemNotFound", func(t *testing.T) {
		err := engine.DeleteItem("nobody", "non-existent")
		if _, ok := err.(*exceptions.NotFoundError); !ok {
			t.Fatalf("Expected a not found error, got %v", err)
		}
	})
}
