package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ukydev/prevmaint/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatAll(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = models.FormatDate(t)
	}
	return out
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2025, time.March, 15), 1, date(2025, time.April, 15)},
		{"end of month clamps", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"leap year clamps to 29", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"year roll", date(2025, time.November, 30), 3, date(2026, time.February, 28)},
		{"twelve months", date(2024, time.February, 29), 12, date(2025, time.February, 28)},
		{"zero", date(2025, time.July, 4), 0, date(2025, time.July, 4)},
		{"negative", date(2025, time.March, 31), -1, date(2025, time.February, 28)},
		{"negative across year", date(2025, time.January, 10), -13, date(2023, time.December, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s", models.FormatDate(tt.in), tt.n, models.FormatDate(got), models.FormatDate(tt.want))
			}
		})
	}
}

func TestComputeUpcoming_MonthlyFromToday(t *testing.T) {
	today := date(2025, time.January, 15)
	got := ComputeUpcoming(today, models.PeriodicityMonthly, 12, today)

	want := []string{
		"2025-01-15", "2025-02-15", "2025-03-15", "2025-04-15", "2025-05-15", "2025-06-15", "2025-07-15",
		"2025-08-15", "2025-09-15", "2025-10-15", "2025-11-15", "2025-12-15", "2026-01-15",
	}
	if diff := cmp.Diff(want, formatAll(got)); diff != "" {
		t.Errorf("unexpected dates (-want +got):\n%s", diff)
	}
}

func TestComputeUpcoming_DropsPastOccurrences(t *testing.T) {
	today := date(2025, time.June, 10)
	got := ComputeUpcoming(date(2024, time.January, 5), models.PeriodicityQuarterly, 12, today)

	want := []string{"2025-07-05", "2025-10-05", "2026-01-05", "2026-04-05"}
	if diff := cmp.Diff(want, formatAll(got)); diff != "" {
		t.Errorf("unexpected dates (-want +got):\n%s", diff)
	}
}

func TestComputeUpcoming_EndOfMonthAnchorDrifts(t *testing.T) {
	today := date(2025, time.January, 1)
	got := ComputeUpcoming(date(2025, time.January, 31), models.PeriodicityMonthly, 3, today)

	// each date is one calendar month after the previous one, not after the anchor
	want := []string{"2025-01-31", "2025-02-28", "2025-03-28"}
	if diff := cmp.Diff(want, formatAll(got)); diff != "" {
		t.Errorf("unexpected dates (-want +got):\n%s", diff)
	}
}

func TestComputeUpcoming_HorizonIsInclusive(t *testing.T) {
	today := date(2025, time.March, 1)
	got := ComputeUpcoming(date(2025, time.March, 1), models.PeriodicityAnnual, 12, today)

	want := []string{"2025-03-01", "2026-03-01"}
	if diff := cmp.Diff(want, formatAll(got)); diff != "" {
		t.Errorf("unexpected dates (-want +got):\n%s", diff)
	}
}

func TestComputeUpcoming_AnchorBeyondHorizon(t *testing.T) {
	today := date(2025, time.March, 1)
	got := ComputeUpcoming(date(2026, time.March, 2), models.PeriodicityMonthly, 12, today)
	if len(got) != 0 {
		t.Errorf("expected no dates, got %v", formatAll(got))
	}
}

func TestComputeUpcoming_UnknownPeriodicityIsMonthly(t *testing.T) {
	today := date(2025, time.March, 1)
	unknown := ComputeUpcoming(today, "quincenal", 6, today)
	monthly := ComputeUpcoming(today, models.PeriodicityMonthly, 6, today)
	if diff := cmp.Diff(formatAll(monthly), formatAll(unknown)); diff != "" {
		t.Errorf("unknown periodicity should behave as monthly (-monthly +unknown):\n%s", diff)
	}
}

func TestComputeUpcoming_DefaultHorizon(t *testing.T) {
	today := date(2025, time.March, 1)
	got := ComputeUpcoming(today, models.PeriodicitySemiannual, 0, today)
	want := []string{"2025-03-01", "2025-09-01", "2026-03-01"}
	if diff := cmp.Diff(want, formatAll(got)); diff != "" {
		t.Errorf("unexpected dates (-want +got):\n%s", diff)
	}
}

func TestComputeUpcoming_Properties(t *testing.T) {
	periodicities := []models.Periodicity{
		models.PeriodicityMonthly, models.PeriodicityBimonthly, models.PeriodicityQuarterly,
		models.PeriodicityFourMonthly, models.PeriodicitySemiannual, models.PeriodicityAnnual,
	}
	anchors := []time.Time{
		date(2020, time.January, 31), date(2023, time.August, 29), date(2024, time.February, 29),
		date(2025, time.May, 17), date(2025, time.December, 31), date(2026, time.April, 30),
	}
	today := date(2025, time.May, 17)
	limit := AddMonths(today, DefaultHorizonMonths)

	for _, p := range periodicities {
		for _, anchor := range anchors {
			got := ComputeUpcoming(anchor, p, DefaultHorizonMonths, today)
			for i, d := range got {
				if d.Before(today) {
					t.Errorf("%s/%s: %s is before today", p, models.FormatDate(anchor), models.FormatDate(d))
				}
				if d.After(limit) {
					t.Errorf("%s/%s: %s is beyond the horizon", p, models.FormatDate(anchor), models.FormatDate(d))
				}
				if i == 0 {
					continue
				}
				prev := got[i-1]
				if !d.After(prev) {
					t.Errorf("%s/%s: dates not strictly increasing at %d", p, models.FormatDate(anchor), i)
				}
				if want := AddMonths(prev, p.MonthStep()); !d.Equal(want) {
					t.Errorf("%s/%s: %s follows %s, want %s", p, models.FormatDate(anchor), models.FormatDate(d), models.FormatDate(prev), models.FormatDate(want))
				}
			}
		}
	}
}
