package models

// Periodicity is the named recurrence interval of an equipment's preventive maintenance.
type Periodicity string

const (
	PeriodicityMonthly     Periodicity = "mensual"
	PeriodicityBimonthly   Periodicity = "bimensual"
	PeriodicityQuarterly   Periodicity = "trimestral"
	PeriodicityFourMonthly Periodicity = "cuatrimestral"
	PeriodicitySemiannual  Periodicity = "semestral"
	PeriodicityAnnual      Periodicity = "anual"
)

var periodicitySteps = map[Periodicity]int{
	PeriodicityMonthly:     1,
	PeriodicityBimonthly:   2,
	PeriodicityQuarterly:   3,
	PeriodicityFourMonthly: 4,
	PeriodicitySemiannual:  6,
	PeriodicityAnnual:      12,
}

// IsValid reports whether p is one of the known periodicities.
func (p Periodicity) IsValid() bool {
	_, ok := periodicitySteps[p]
	return ok
}

// MonthStep returns the number of calendar months between two services.
// Unknown values fall back to a monthly step.
func (p Periodicity) MonthStep() int {
	if step, ok := periodicitySteps[p]; ok {
		return step
	}
	return 1
}
