package pantry

import (
	"fmt"
	"time"

	"calfern.me/pantry/internal/exceptions"
)

const DefaultTimeZone = "America/New_York"

const dayLayout = "2006-01-02"

// DateCalculator pins all calendar math to one reference zone. Every date
// it produces is midnight in that zone; mixing zones here is how items end
// up expiring a day early.
type DateCalculator struct {
	Location *time.Location
	NowFn    func() time.Time
}

func NewDateCalculator(zone string) (*DateCalculator, error) {
	if zone == "" {
		zone = DefaultTimeZone
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &DateCalculator{
		Location: location,
		NowFn:    time.Now,
	}, nil
}

func (dc *DateCalculator) Now() time.Time {
	return dc.NowFn().In(dc.Location)
}

// ParseDay reads a YYYY-MM-DD calendar date as midnight in the reference
// zone.
func (dc *DateCalculator) ParseDay(input string) (time.Time, error) {
	day, err := time.ParseInLocation(dayLayout, input, dc.Location)
	if err != nil {
		return time.Time{}, exceptions.InvalidDate(fmt.Sprintf("Could not parse %s as a %s date.", input, dayLayout))
	}
	return day, nil
}

func (dc *DateCalculator) FormatDay(day time.Time) string {
	return day.In(dc.Location).Format(dayLayout)
}

// Midnight truncates an instant to the start of its day in the reference
// zone.
func (dc *DateCalculator) Midnight(instant time.Time) time.Time {
	year, month, day := instant.In(dc.Location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, dc.Location)
}

// AddMonthClamped advances one calendar month, keeping the day of month.
// When the target month is shorter, the result clamps to its last day
// (Jan 31 -> Feb 29 in a leap year), unlike time.AddDate which rolls over.
func (dc *DateCalculator) AddMonthClamped(instant time.Time) time.Time {
	year, month, day := dc.Midnight(instant).Date()
	if last := daysInMonth(year, month+1); day > last {
		day = last
	}
	return time.Date(year, month+1, day, 0, 0, 0, 0, dc.Location)
}

func daysInMonth(year int, month time.Month) int {
	// day zero of the following month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
