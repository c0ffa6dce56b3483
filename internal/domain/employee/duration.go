package employee

import "time"

// ContractMonths returns the whole months a contract spans, treating the end
// date as inclusive: one day is added to the end before taking the
// year/month difference, and a negative day remainder rounds the count down.
// Absent dates yield nil, not zero; callers render a placeholder.
func ContractMonths(start, end *time.Time) *int {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return nil
	}
	e := end.AddDate(0, 0, 1)
	months := (e.Year()-start.Year())*12 + int(e.Month()) - int(start.Month())
	if e.Day()-start.Day() < 0 {
		months--
	}
	return &months
}
