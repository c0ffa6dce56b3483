package fuel

import (
	"time"

	"github.com/shopspring/decimal"

	"opsdash/internal/report"
)

// Band classifies an observed consumption value against a refill tolerance
// window. Every screen and export must use this mapping; the comparison is
// not to be re-derived at call sites.
type Band string

const (
	BandUnder  Band = "under_tolerance"
	BandWithin Band = "within_tolerance"
	BandOver   Band = "over_tolerance"
)

// Classify buckets a value against [lower, upper]. Boundary values are
// within tolerance.
func Classify(value, lower, upper float64) Band {
	switch {
	case value > upper:
		return BandOver
	case value < lower:
		return BandUnder
	default:
		return BandWithin
	}
}

// FillColor is the single color mapping for export cells: over consumption
// red, under green, within yellow.
func (b Band) FillColor() string {
	switch b {
	case BandOver:
		return report.ColorRed
	case BandUnder:
		return report.ColorGreen
	default:
		return report.ColorYellow
	}
}

func (b Band) Label() string {
	switch b {
	case BandOver:
		return "Over Toleransi"
	case BandUnder:
		return "Di Bawah Toleransi"
	default:
		return "Aman"
	}
}

// ConsumptionRate derives litres per operating hour from the refill volume
// and the hour-meter delta, in decimal arithmetic so repeated report runs
// agree to the cent. Returns nil while the record is incomplete or when the
// meter has not advanced.
func ConsumptionRate(refillLiters, startHourMeter float64, endHourMeter *float64) *float64 {
	if endHourMeter == nil {
		return nil
	}
	hours := decimal.NewFromFloat(*endHourMeter).Sub(decimal.NewFromFloat(startHourMeter))
	if hours.Sign() <= 0 {
		return nil
	}
	rate, _ := decimal.NewFromFloat(refillLiters).DivRound(hours, 2).Float64()
	return &rate
}

// IsComplete reports whether the shift record has been closed out: both the
// end fill timestamp and the end hour-meter reading are present.
func IsComplete(endFillAt *time.Time, endHourMeter *float64) bool {
	return endFillAt != nil && !endFillAt.IsZero() && endHourMeter != nil
}
