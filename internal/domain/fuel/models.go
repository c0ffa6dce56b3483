package fuel

import "time"

// Ratio is one unit-shift refill record. ConsumptionRate and Complete are
// derived on read, never stored.
type Ratio struct {
	ID              string     `json:"id"`
	UnitCode        string     `json:"unitCode"`
	UnitType        string     `json:"unitType"`
	Operator        string     `json:"operator"`
	Shift           string     `json:"shift"`
	StartHourMeter  float64    `json:"startHourMeter"`
	EndHourMeter    *float64   `json:"endHourMeter,omitempty"`
	StartFillAt     *time.Time `json:"startFillAt,omitempty"`
	EndFillAt       *time.Time `json:"endFillAt,omitempty"`
	RefillLiters    float64    `json:"refillLiters"`
	ToleranceLower  float64    `json:"toleranceLower"`
	ToleranceUpper  float64    `json:"toleranceUpper"`
	ConsumptionRate *float64   `json:"consumptionRate,omitempty"`
	Complete        bool       `json:"complete"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

const (
	ShiftDay   = "day"
	ShiftNight = "night"
)

// SummaryRow is a ratio with its tolerance band resolved, as listed on the
// summary screen and colored in the export.
type SummaryRow struct {
	Ratio
	Band  Band   `json:"band"`
	Label string `json:"bandLabel"`
}

// Summarize derives the banded view of a ratio. Incomplete records stay
// unbanded; the caller renders a placeholder instead of a color.
func Summarize(r Ratio) SummaryRow {
	row := SummaryRow{Ratio: r}
	if r.ConsumptionRate != nil {
		row.Band = Classify(*r.ConsumptionRate, r.ToleranceLower, r.ToleranceUpper)
		row.Label = row.Band.Label()
	}
	return row
}
