package backlog

import (
	"time"

	"opsdash/internal/report"
)

// ExportSheet lays tickets out flat, one row each, aging bucket included.
func ExportSheet(tickets []Ticket, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Backlog", "DAFTAR BACKLOG UNIT", "Per "+now.Format("2006-01-02"), []report.Column{
		{Header: "Kode Unit", Width: 14},
		{Header: "Komponen", Width: 18},
		{Header: "Problem", Width: 40},
		{Header: "Tanggal Inspeksi", Width: 16},
		{Header: "Rencana Perbaikan", Width: 16},
		{Header: "Status", Width: 12},
		{Header: "Umur (Hari)", Width: 12},
		{Header: "Kategori Umur", Width: 14},
	})

	for _, ticket := range tickets {
		sheet.AppendRow(
			ticket.UnitCode,
			ticket.Component,
			ticket.Problem,
			ticket.InspectedAt.Format("2006-01-02"),
			report.Display(ticket.PlanRepairAt),
			ticket.Status,
			report.NumberInt(ticket.AgeDays),
			string(ticket.Bucket),
		)
	}
	return sheet
}

func ExportFilename(now time.Time) string {
	return report.Filename("Backlog_Unit", now)
}
