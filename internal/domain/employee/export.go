package employee

import (
	"strconv"
	"time"

	"opsdash/internal/report"
)

// DurationLabel renders a derived contract duration for display or export.
// Absent durations render as an empty placeholder, never "0 Bulan".
func DurationLabel(months *int) string {
	if months == nil {
		return ""
	}
	return strconv.Itoa(*months) + " Bulan"
}

// ExportWorkbook assembles the full employee workbook: a flat roster sheet,
// one expand sheet per one-to-many section, and the side-by-side tax and
// insurance sheet.
func ExportWorkbook(details []Detail, now time.Time) []*report.Sheet {
	return []*report.Sheet{
		rosterSheet(details, now),
		contractSheet(details, now),
		certificateSheet(details, now),
		medicalSheet(details, now),
		historySheet(details, now),
		taxSheet(details, now),
	}
}

func ExportFilename(now time.Time) string {
	return report.Filename("Data_Karyawan", now)
}

func subtitle(now time.Time) string {
	return "Per " + now.Format("2006-01-02")
}

func rosterSheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Karyawan", "DATA KARYAWAN", subtitle(now), []report.Column{
		{Header: "No. Induk", Width: 14},
		{Header: "Nama", Width: 28},
		{Header: "Penempatan", Width: 18},
		{Header: "Jabatan", Width: 18},
		{Header: "Departemen", Width: 18},
		{Header: "Telepon", Width: 16},
		{Header: "Email", Width: 24},
		{Header: "Tanggal Masuk", Width: 14},
		{Header: "Status", Width: 10},
	})
	for _, d := range details {
		sheet.AppendRow(
			d.EmployeeNumber,
			d.FullName,
			d.Placement,
			d.Position,
			d.Department,
			d.Phone,
			d.Email,
			report.Display(d.JoinDate),
			d.Status,
		)
	}
	return sheet
}

func contractSheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Kontrak", "RIWAYAT KONTRAK", subtitle(now), []report.Column{
		{Header: "No. Induk", Width: 14},
		{Header: "Nama", Width: 28},
		{Header: "Mulai", Width: 12},
		{Header: "Berakhir", Width: 12},
		{Header: "Penempatan", Width: 18},
		{Header: "Jenis Kontrak", Width: 14},
		{Header: "Durasi", Width: 12},
	})
	report.AppendExpanded(sheet, details,
		func(d Detail) []Contract { return d.Contracts },
		func(d Detail, c Contract) []any {
			return []any{
				d.EmployeeNumber, d.FullName,
				report.Display(c.StartDate), report.Display(c.EndDate),
				c.Placement, c.ContractType, DurationLabel(c.DurationMonths),
			}
		},
		func(d Detail) []any {
			return []any{d.EmployeeNumber, d.FullName, "", "", "", "", ""}
		},
	)
	return sheet
}

func certificateSheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Sertifikat", "DATA SERTIFIKAT", subtitle(now), []report.Column{
		{Header: "No. Induk", Width: 14},
		{Header: "Nama", Width: 28},
		{Header: "Sertifikat", Width: 26},
		{Header: "Penerbit", Width: 20},
		{Header: "Tanggal Terbit", Width: 14},
		{Header: "Berlaku Sampai", Width: 14},
	})
	report.AppendExpanded(sheet, details,
		func(d Detail) []Certificate { return d.Certificates },
		func(d Detail, c Certificate) []any {
			return []any{
				d.EmployeeNumber, d.FullName, c.Name, c.Issuer,
				report.Display(c.IssuedAt), report.Display(c.ExpiresAt),
			}
		},
		func(d Detail) []any {
			return []any{d.EmployeeNumber, d.FullName, "", "", "", ""}
		},
	)
	return sheet
}

func medicalSheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("MCU", "RIWAYAT MEDICAL CHECK UP", subtitle(now), []report.Column{
		{Header: "No. Induk", Width: 14},
		{Header: "Nama", Width: 28},
		{Header: "Tanggal", Width: 12},
		{Header: "Hasil", Width: 16},
		{Header: "Catatan", Width: 32},
	})
	report.AppendExpanded(sheet, details,
		func(d Detail) []MedicalCheck { return d.MedicalChecks },
		func(d Detail, m MedicalCheck) []any {
			return []any{d.EmployeeNumber, d.FullName, report.Display(m.CheckedAt), m.Result, m.Notes}
		},
		func(d Detail) []any {
			return []any{d.EmployeeNumber, d.FullName, "", "", ""}
		},
	)
	return sheet
}

func historySheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Riwayat", "RIWAYAT STATUS", subtitle(now), []report.Column{
		{Header: "No. Induk", Width: 14},
		{Header: "Nama", Width: 28},
		{Header: "Status", Width: 14},
		{Header: "Tanggal Efektif", Width: 14},
		{Header: "Catatan", Width: 32},
	})
	report.AppendExpanded(sheet, details,
		func(d Detail) []StatusHistory { return d.History },
		func(d Detail, h StatusHistory) []any {
			return []any{d.EmployeeNumber, d.FullName, h.Status, report.Display(h.EffectiveDate), h.Note}
		},
		func(d Detail) []any {
			return []any{d.EmployeeNumber, d.FullName, "", "", ""}
		},
	)
	return sheet
}

// taxSheet lays the Pajak and BPJS blocks side by side on one sheet, each
// advancing its own rows from a fixed column offset.
func taxSheet(details []Detail, now time.Time) *report.Sheet {
	sheet := report.NewSheet("Pajak BPJS", "DATA PAJAK & BPJS", subtitle(now), nil)

	taxRows := make([][]any, 0, len(details))
	bpjsRows := make([][]any, 0, len(details))
	for _, d := range details {
		var npwp, taxStatus, healthNo, employmentNo string
		if d.TaxRecord != nil {
			npwp = d.TaxRecord.NPWP
			taxStatus = d.TaxRecord.TaxStatus
			healthNo = d.TaxRecord.BPJSHealthNo
			employmentNo = d.TaxRecord.BPJSEmploymentNo
		}
		taxRows = append(taxRows, []any{d.EmployeeNumber, d.FullName, npwp, taxStatus})
		bpjsRows = append(bpjsRows, []any{healthNo, employmentNo})
	}

	sheet.AddBlock(report.Block{
		Label: "Pajak",
		Columns: []report.Column{
			{Header: "No. Induk", Width: 14},
			{Header: "Nama", Width: 28},
			{Header: "NPWP", Width: 22},
			{Header: "Status Pajak", Width: 14},
		},
		Rows: taxRows,
	})
	sheet.AddBlock(report.Block{
		Label:     "BPJS",
		ColOffset: 5,
		Columns: []report.Column{
			{Header: "No. BPJS Kesehatan", Width: 20},
			{Header: "No. BPJS Ketenagakerjaan", Width: 24},
		},
		Rows: bpjsRows,
	})
	return sheet
}
