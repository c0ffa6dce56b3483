package fuel

import (
	"time"

	"opsdash/internal/report"
)

// rateColumn is the zero-based data column the conditional fill lands on.
const rateColumn = 7

// ExportSheet lays the banded summary out for the workbook: one row per
// ratio, with the consumption cell colored by its band.
func ExportSheet(rows []SummaryRow, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Rasio BBM", "LAPORAN RASIO BBM", "Per "+now.Format("2006-01-02"), []report.Column{
		{Header: "Kode Unit", Width: 14},
		{Header: "Tipe Unit", Width: 16},
		{Header: "Operator", Width: 20},
		{Header: "Shift", Width: 10},
		{Header: "HM Awal", Width: 12},
		{Header: "HM Akhir", Width: 12},
		{Header: "Total Refill (L)", Width: 16},
		{Header: "Rasio (L/Jam)", Width: 14},
		{Header: "Batas Bawah", Width: 12},
		{Header: "Batas Atas", Width: 12},
		{Header: "Status", Width: 20},
	})

	for i, row := range rows {
		sheet.AppendRow(
			row.UnitCode,
			row.UnitType,
			row.Operator,
			row.Shift,
			report.Number(row.StartHourMeter),
			report.Display(row.EndHourMeter),
			report.Number(row.RefillLiters),
			report.Display(row.ConsumptionRate),
			report.Number(row.ToleranceLower),
			report.Number(row.ToleranceUpper),
			row.Label,
		)
		if row.ConsumptionRate != nil {
			sheet.FillCell(i, rateColumn, row.Band.FillColor())
		}
	}
	return sheet
}

func ExportFilename(now time.Time) string {
	return report.Filename("Rasio_BBM", now)
}
