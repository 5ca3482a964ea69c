package pantry

import (
	"testing"
	"time"

	"calfern.me/pantry/internal/exceptions"
)

func newCalculator(t *testing.T) *DateCalculator {
	dates, err := NewDateCalculator("")
	if err != nil {
		t.Fatalf("Failed to load the default timezone: %s", err)
	}
	return dates
}

func TestAddMonthClamped(t *testing.T) {
	dates := newCalculator(t)
	cases := []struct {
		name  string
		start string
		want  string
	}{
		{"LeapFebruaryClamps", "2024-01-31", "2024-02-29"},
		{"PlainFebruaryClamps", "2023-01-31", "2023-02-28"},
		{"ThirtyDayMonthClamps", "2024-03-31", "2024-04-30"},
		{"MidMonthAdvances", "2024-01-15", "2024-02-15"},
		{"DecemberRollsTheYear", "2024-12-15", "2025-01-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := dates.ParseDay(tc.start)
			if err != nil {
				t.Fatalf("Failed to parse %s: %s", tc.start, err)
			}
			if got := dates.FormatDay(dates.AddMonthClamped(start)); got != tc.want {
				t.Fatalf("Expected %s + 1 month to be %s, got %s", tc.start, tc.want, got)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	dates := newCalculator(t)

	t.Run("MidnightInReferenceZone", func(t *testing.T) {
		day, err := dates.ParseDay("2024-05-04")
		if err != nil {
			t.Fatalf("Failed to parse a valid date: %s", err)
		}
		if day.Hour() != 0 || day.Minute() != 0 || day.Location() != dates.Location {
			t.Fatalf("Expected midnight in %s, got %v", dates.Location, day)
		}
	})

	t.Run("RejectsOtherLayouts", func(t *testing.T) {
		_, err := dates.ParseDay("05/04/2024")
		if _, ok := err.(*exceptions.InvalidDateError); !ok {
			t.Fatalf("Expected an invalid date error, got %v", err)
		}
	})
}

func TestMidnight(t *testing.T) {
	dates := newCalculator(t)
	instant := time.Date(2024, time.May, 4, 15, 30, 45, 0, dates.Location)
	midnight := dates.Midnight(instant)
	if dates.FormatDay(midnight) != "2024-05-04" {
		t.Fatalf("Expected midnight to keep the day, got %v", midnight)
	}
	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Second() != 0 {
		t.Fatalf("Expected the start of the day, got %v", midnight)
	}
}
