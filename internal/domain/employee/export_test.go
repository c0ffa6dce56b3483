package employee

import (
	"testing"
	"time"
)

func isoDate(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestDurationLabel(t *testing.T) {
	three := 3
	if got := DurationLabel(&three); got != "3 Bulan" {
		t.Errorf("DurationLabel(3) = %q, want %q", got, "3 Bulan")
	}
	if got := DurationLabel(nil); got != "" {
		t.Errorf("DurationLabel(nil) = %q, want empty", got)
	}
}

func TestExportWorkbookSheets(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sheets := ExportWorkbook(nil, now)
	want := []string{"Karyawan", "Kontrak", "Sertifikat", "MCU", "Riwayat", "Pajak BPJS"}
	if len(sheets) != len(want) {
		t.Fatalf("got %d sheets, want %d", len(sheets), len(want))
	}
	for i, name := range want {
		if sheets[i].Name != name {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i].Name, name)
		}
	}
}

func TestContractSheetBlankRowForChildlessEmployee(t *testing.T) {
	months := 3
	details := []Detail{
		{
			Employee: Employee{EmployeeNumber: "EMP-001", FullName: "Budi"},
			Contracts: []Contract{
				{StartDate: isoDate("2024-01-15"), EndDate: isoDate("2024-04-14"), Placement: "Site A", ContractType: "PKWT", DurationMonths: &months},
				{StartDate: isoDate("2024-04-15"), Placement: "Site A", ContractType: "PKWT"},
			},
		},
		{Employee: Employee{EmployeeNumber: "EMP-002", FullName: "Sari"}},
	}

	sheet := contractSheet(details, time.Now())
	if len(sheet.Rows) != 3 {
		t.Fatalf("got %d rows, want 3 (two contracts + one blank)", len(sheet.Rows))
	}
	if sheet.Rows[0][6] != "3 Bulan" {
		t.Errorf("first contract duration = %v, want 3 Bulan", sheet.Rows[0][6])
	}
	blank := sheet.Rows[2]
	if blank[0] != "EMP-002" || blank[1] != "Sari" {
		t.Errorf("blank row identity = %v %v", blank[0], blank[1])
	}
	for i := 2; i < len(blank); i++ {
		if blank[i] != "" {
			t.Errorf("blank row col %d = %v, want empty", i, blank[i])
		}
	}
}

func TestTaxSheetBlocks(t *testing.T) {
	details := []Detail{
		{
			Employee: Employee{EmployeeNumber: "EMP-001", FullName: "Budi"},
			TaxRecord: &TaxRecord{
				NPWP: "01.234.567.8-999.000", TaxStatus: "K1",
				BPJSHealthNo: "0001", BPJSEmploymentNo: "0002",
			},
		},
		{Employee: Employee{EmployeeNumber: "EMP-002", FullName: "Sari"}},
	}

	sheet := taxSheet(details, time.Now())
	if len(sheet.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(sheet.Blocks))
	}
	pajak, bpjs := sheet.Blocks[0], sheet.Blocks[1]
	if pajak.Label != "Pajak" || bpjs.Label != "BPJS" {
		t.Fatalf("block labels = %q %q", pajak.Label, bpjs.Label)
	}
	if bpjs.ColOffset != 5 {
		t.Errorf("BPJS offset = %d, want 5", bpjs.ColOffset)
	}
	if len(pajak.Rows) != 2 || len(bpjs.Rows) != 2 {
		t.Fatalf("block rows = %d/%d, want 2/2", len(pajak.Rows), len(bpjs.Rows))
	}
	if pajak.Rows[0][2] != "01.234.567.8-999.000" {
		t.Errorf("NPWP = %v", pajak.Rows[0][2])
	}
	if pajak.Rows[1][2] != "" || bpjs.Rows[1][0] != "" {
		t.Errorf("employee without tax record should export blank cells")
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := ExportFilename(now); got != "Data_Karyawan_2026-03-01.xlsx" {
		t.Errorf("ExportFilename = %q", got)
	}
}
