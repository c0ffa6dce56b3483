package employee

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"opsdash/internal/report"
)

// BiodataPDF renders the printable bio-data sheet for one employee.
func BiodataPDF(d Detail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Bio Data Karyawan")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	field(pdf, "No. Induk", d.EmployeeNumber)
	field(pdf, "Nama", d.FullName)
	field(pdf, "Penempatan", d.Placement)
	field(pdf, "Jabatan", d.Position)
	field(pdf, "Departemen", d.Department)
	field(pdf, "Telepon", d.Phone)
	field(pdf, "Email", d.Email)
	field(pdf, "Tanggal Masuk", report.Display(d.JoinDate))
	field(pdf, "Status", d.Status)

	if d.IDCard != nil {
		section(pdf, "KTP")
		field(pdf, "Nomor", d.IDCard.Number)
		field(pdf, "Alamat", d.IDCard.Address)
		field(pdf, "Kota", d.IDCard.City)
		field(pdf, "Golongan Darah", d.IDCard.BloodType)
	}
	if d.Education != nil {
		section(pdf, "Pendidikan")
		field(pdf, "Jenjang", d.Education.Level)
		field(pdf, "Institusi", d.Education.Institution)
		field(pdf, "Jurusan", d.Education.Major)
		field(pdf, "Tahun Lulus", fmt.Sprintf("%d", d.Education.GraduatedYear))
	}
	if d.TaxRecord != nil {
		section(pdf, "Pajak & BPJS")
		field(pdf, "NPWP", d.TaxRecord.NPWP)
		field(pdf, "Status Pajak", d.TaxRecord.TaxStatus)
		field(pdf, "BPJS Kesehatan", d.TaxRecord.BPJSHealthNo)
		field(pdf, "BPJS Ketenagakerjaan", d.TaxRecord.BPJSEmploymentNo)
	}
	if len(d.Contracts) > 0 {
		section(pdf, "Kontrak")
		for _, c := range d.Contracts {
			line := fmt.Sprintf("%s s/d %s  %s  %s",
				report.Display(c.StartDate), report.Display(c.EndDate),
				c.ContractType, DurationLabel(c.DurationMonths))
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Dicetak "+time.Now().Format("2006-01-02"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func field(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(55, 7, label)
	pdf.Cell(0, 7, value)
	pdf.Ln(7)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 12)
}

func BiodataFilename(d Detail, now time.Time) string {
	name := d.FullName
	if name == "" {
		name = d.EmployeeNumber
	}
	base := report.Filename("Biodata_"+name, now)
	return base[:len(base)-len(".xlsx")] + ".pdf"
}
