package fuel

import (
	"testing"
	"time"

	"opsdash/internal/report"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name                string
		value, lower, upper float64
		want                Band
	}{
		{"below lower", 5, 10, 20, BandUnder},
		{"at lower", 10, 10, 20, BandWithin},
		{"inside", 15, 10, 20, BandWithin},
		{"at upper", 20, 10, 20, BandWithin},
		{"above upper", 20.01, 10, 20, BandOver},
	}
	for _, tc := range tests {
		if got := Classify(tc.value, tc.lower, tc.upper); got != tc.want {
			t.Errorf("%s: Classify(%v, %v, %v) = %v, want %v", tc.name, tc.value, tc.lower, tc.upper, got, tc.want)
		}
	}
}

func TestBandFillColor(t *testing.T) {
	if BandOver.FillColor() != report.ColorRed {
		t.Error("over tolerance must render red")
	}
	if BandUnder.FillColor() != report.ColorGreen {
		t.Error("under tolerance must render green")
	}
	if BandWithin.FillColor() != report.ColorYellow {
		t.Error("within tolerance must render yellow")
	}
}

func TestConsumptionRate(t *testing.T) {
	end := 110.0
	rate := ConsumptionRate(250, 100, &end)
	if rate == nil || *rate != 25 {
		t.Fatalf("rate = %v, want 25", rate)
	}

	// 100 litres over 3 hours rounds to two decimals.
	end = 103
	rate = ConsumptionRate(100, 100, &end)
	if rate == nil || *rate != 33.33 {
		t.Fatalf("rate = %v, want 33.33", rate)
	}
}

func TestConsumptionRateIncomplete(t *testing.T) {
	if rate := ConsumptionRate(250, 100, nil); rate != nil {
		t.Errorf("missing end reading should yield nil, got %v", rate)
	}
	same := 100.0
	if rate := ConsumptionRate(250, 100, &same); rate != nil {
		t.Errorf("zero meter delta should yield nil, got %v", rate)
	}
	backwards := 90.0
	if rate := ConsumptionRate(250, 100, &backwards); rate != nil {
		t.Errorf("negative meter delta should yield nil, got %v", rate)
	}
}

func TestIsComplete(t *testing.T) {
	now := time.Now()
	end := 110.0
	if !IsComplete(&now, &end) {
		t.Error("both fields present should be complete")
	}
	if IsComplete(nil, &end) {
		t.Error("missing timestamp should be incomplete")
	}
	if IsComplete(&now, nil) {
		t.Error("missing meter should be incomplete")
	}
	var zero time.Time
	if IsComplete(&zero, &end) {
		t.Error("zero timestamp should be incomplete")
	}
}
