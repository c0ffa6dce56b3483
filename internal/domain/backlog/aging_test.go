package backlog

import (
	"testing"
	"time"
)

func TestBucketize(t *testing.T) {
	tests := []struct {
		days int
		want AgeBucket
	}{
		{0, Bucket0To5},
		{5, Bucket0To5},
		{6, Bucket6To15},
		{15, Bucket6To15},
		{16, Bucket16To30},
		{30, Bucket16To30},
		{31, BucketOver30},
		{120, BucketOver30},
	}
	for _, tc := range tests {
		if got := Bucketize(tc.days); got != tc.want {
			t.Errorf("Bucketize(%d) = %q, want %q", tc.days, got, tc.want)
		}
	}
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	inspected := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := AgeDays(inspected, now); got != 9 {
		t.Errorf("AgeDays = %d, want 9", got)
	}

	future := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := AgeDays(future, now); got != 0 {
		t.Errorf("future inspection should clamp to 0, got %d", got)
	}
}
