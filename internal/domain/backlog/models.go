package backlog

import "time"

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Ticket is one maintenance backlog entry. AgeDays and Bucket are derived
// from the inspection date at read time.
type Ticket struct {
	ID           string     `json:"id"`
	UnitCode     string     `json:"unitCode"`
	Component    string     `json:"component"`
	Problem      string     `json:"problem"`
	InspectedAt  time.Time  `json:"inspectedAt"`
	PlanRepairAt *time.Time `json:"planRepairAt,omitempty"`
	Status       string     `json:"status"`
	AgeDays      int        `json:"ageDays"`
	Bucket       AgeBucket  `json:"bucket"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// WithAging fills the derived aging fields relative to now.
func (t Ticket) WithAging(now time.Time) Ticket {
	t.AgeDays = AgeDays(t.InspectedAt, now)
	t.Bucket = Bucketize(t.AgeDays)
	return t
}
