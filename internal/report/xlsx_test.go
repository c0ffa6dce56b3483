package report

import "testing"

func TestBuildWritesTitleHeaderAndData(t *testing.T) {
	sheet := NewSheet("Unit", "DAFTAR UNIT", "Per 2026-03-07", []Column{
		{Header: "Kode Unit"},
		{Header: "Tipe"},
	})
	sheet.AppendRow("EX-01", "Excavator")
	sheet.AppendRow("DT-02", "Dump Truck")

	f, err := Build(sheet)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if got, _ := f.GetCellValue("Unit", "B2"); got != "DAFTAR UNIT" {
		t.Errorf("title cell B2 = %q", got)
	}
	if got, _ := f.GetCellValue("Unit", "B3"); got != "Per 2026-03-07" {
		t.Errorf("subtitle cell B3 = %q", got)
	}
	if got, _ := f.GetCellValue("Unit", "B5"); got != "Kode Unit" {
		t.Errorf("header cell B5 = %q", got)
	}
	if got, _ := f.GetCellValue("Unit", "B6"); got != "EX-01" {
		t.Errorf("first data cell B6 = %q", got)
	}
	if got, _ := f.GetCellValue("Unit", "C7"); got != "Dump Truck" {
		t.Errorf("data cell C7 = %q", got)
	}

	merges, err := f.GetMergeCells("Unit")
	if err != nil {
		t.Fatalf("merge cells: %v", err)
	}
	foundTitle := false
	for _, m := range merges {
		if m.GetStartAxis() == "B2" && m.GetEndAxis() == "C2" {
			foundTitle = true
		}
	}
	if !foundTitle {
		t.Errorf("expected title merged B2:C2, got %v", merges)
	}
}

func TestBuildGroupedHeaderLayout(t *testing.T) {
	sheet := NewSheet("Stok", "LAPORAN STOK", "", []Column{
		{Header: "Tipe"},
		{Header: "Masuk", Group: "Mutasi"},
		{Header: "Keluar", Group: "Mutasi"},
	})
	sheet.AppendRow("Excavator", "3", "1")

	f, err := Build(sheet)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if got, _ := f.GetCellValue("Stok", "C5"); got != "Mutasi" {
		t.Errorf("group label C5 = %q", got)
	}
	if got, _ := f.GetCellValue("Stok", "C6"); got != "Masuk" {
		t.Errorf("grouped header C6 = %q", got)
	}
	// Data shifts one row down when the header spans two rows.
	if got, _ := f.GetCellValue("Stok", "B7"); got != "Excavator" {
		t.Errorf("data cell B7 = %q", got)
	}
}

func TestBuildBlocksSideBySide(t *testing.T) {
	sheet := NewSheet("Pajak", "PAJAK & BPJS", "", nil)
	sheet.AddBlock(Block{
		Label:   "Pajak",
		Columns: []Column{{Header: "NPWP"}, {Header: "Status"}},
		Rows:    [][]any{{"12.345", "K1"}},
	})
	sheet.AddBlock(Block{
		Label:     "BPJS",
		ColOffset: 3,
		Columns:   []Column{{Header: "No. Kesehatan"}, {Header: "No. Ketenagakerjaan"}},
		Rows:      [][]any{{"0001", "0002"}},
	})

	f, err := Build(sheet)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if got, _ := f.GetCellValue("Pajak", "B5"); got != "Pajak" {
		t.Errorf("first block label B5 = %q", got)
	}
	if got, _ := f.GetCellValue("Pajak", "E5"); got != "BPJS" {
		t.Errorf("second block label E5 = %q", got)
	}
	if got, _ := f.GetCellValue("Pajak", "B7"); got != "12.345" {
		t.Errorf("first block data B7 = %q", got)
	}
	if got, _ := f.GetCellValue("Pajak", "F7"); got != "0002" {
		t.Errorf("second block data F7 = %q", got)
	}
}

func TestBuildMultipleSheets(t *testing.T) {
	first := NewSheet("Satu", "A", "", []Column{{Header: "X"}})
	second := NewSheet("Dua", "B", "", []Column{{Header: "Y"}})

	f, err := Build(first, second)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	list := f.GetSheetList()
	if len(list) != 2 || list[0] != "Satu" || list[1] != "Dua" {
		t.Errorf("sheet list = %v", list)
	}
}

func TestBuildRequiresSheets(t *testing.T) {
	if _, err := Build(); err == nil {
		t.Fatal("expected error for empty workbook")
	}
}
