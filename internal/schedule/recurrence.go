// Package schedule derives preventive maintenance dates from an equipment's
// periodicity and keeps the stored services in line with them.
package schedule

import (
	"time"

	"github.com/ukydev/prevmaint/internal/models"
)

// DefaultHorizonMonths is how far ahead of today services are generated.
const DefaultHorizonMonths = 12

// AddMonths adds n calendar months to the date of t. When the day does not
// exist in the target month it is clamped to the month's last day, so
// Jan 31 + 1 month is Feb 28 (Feb 29 in leap years) rather than early March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// ComputeUpcoming returns the service dates implied by anchor and periodicity
// that fall within [today, today+horizonMonths]. Dates are produced by
// repeatedly stepping from the anchor, so each one is exactly one step after
// the previous; occurrences before today are dropped. The result is empty
// when the anchor lies beyond the horizon. A non-positive horizon means
// DefaultHorizonMonths.
func ComputeUpcoming(anchor time.Time, periodicity models.Periodicity, horizonMonths int, today time.Time) []time.Time {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}
	today = models.DateOf(today)
	limit := AddMonths(today, horizonMonths)
	step := periodicity.MonthStep()

	dates := []time.Time{}
	for current := models.DateOf(anchor); !current.After(limit); current = AddMonths(current, step) {
		if !current.Before(today) {
			dates = append(dates, current)
		}
	}
	return dates
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
