package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseDatePtr parses an optional date. Empty or malformed input yields nil
// rather than an error; derived fields fail closed on absent dates.
func ParseDatePtr(value string) *time.Time {
	parsed, err := ParseDate(value)
	if err != nil || parsed.IsZero() {
		return nil
	}
	return &parsed
}
