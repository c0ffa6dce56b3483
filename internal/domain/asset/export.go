package asset

import (
	"time"

	"opsdash/internal/report"
)

// ExportSheet is the monthly stock report with the mutation columns grouped
// under a merged super-header.
func ExportSheet(rows []MonthlyRow, month time.Time) *report.Sheet {
	sheet := report.NewSheet("Stok", "LAPORAN STOK ASSET", month.Format("January 2006"), []report.Column{
		{Header: "Kode", Width: 14},
		{Header: "Kategori", Width: 18},
		{Header: "Ukuran", Width: 12},
		{Header: "Stok Awal", Width: 12},
		{Header: "Masuk", Group: "Mutasi", Width: 10},
		{Header: "Keluar", Group: "Mutasi", Width: 10},
		{Header: "Stok Akhir", Width: 12},
	})

	for _, row := range rows {
		sheet.AppendRow(
			row.Code,
			row.Category,
			row.SizeVariant,
			report.NumberInt(row.Opening),
			report.NumberInt(row.Inbound),
			report.NumberInt(row.Outbound),
			report.NumberInt(row.Closing),
		)
	}
	return sheet
}

func ExportFilename(month time.Time) string {
	return report.Filename("Stok_Asset", month)
}
