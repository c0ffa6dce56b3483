package backlog

import "time"

// AgeBucket is the reporting band for how long a ticket has been open since
// its inspection date.
type AgeBucket string

const (
	Bucket0To5   AgeBucket = "0-5"
	Bucket6To15  AgeBucket = "6-15"
	Bucket16To30 AgeBucket = "16-30"
	BucketOver30 AgeBucket = ">30"
)

// AgeDays counts whole days from the inspection date to now, never negative.
func AgeDays(inspectedAt, now time.Time) int {
	days := int(now.Sub(inspectedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Bucketize bands an open-ticket age in days.
func Bucketize(days int) AgeBucket {
	switch {
	case days <= 5:
		return Bucket0To5
	case days <= 15:
		return Bucket6To15
	case days <= 30:
		return Bucket16To30
	default:
		return BucketOver30
	}
}
