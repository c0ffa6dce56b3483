package report

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// Fixed layout of every export sheet: the title sits in B2, the subtitle in
// B3, and the table begins two rows further down with its header row.
const (
	firstCol    = 2
	titleRow    = 2
	subtitleRow = 3
	headerRow   = 5
)

type renderer struct {
	f      *excelize.File
	styles map[string]int
}

// Build serializes the sheets into a single workbook.
func Build(sheets ...*Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("report: no sheets to build")
	}

	f := excelize.NewFile()
	r := &renderer{f: f, styles: make(map[string]int)}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, err
			}
		}
		if err := r.renderSheet(sheet); err != nil {
			return nil, fmt.Errorf("report: sheet %s: %w", sheet.Name, err)
		}
	}
	return f, nil
}

// Send streams the workbook as a download attachment.
func Send(w http.ResponseWriter, f *excelize.File, filename string) error {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return f.Write(w)
}

func (r *renderer) renderSheet(s *Sheet) error {
	lastCol := firstCol + s.width() - 1
	if lastCol < firstCol {
		lastCol = firstCol
	}

	if err := r.writeTitle(s, lastCol); err != nil {
		return err
	}

	if len(s.Blocks) > 0 {
		return r.writeBlocks(s)
	}
	return r.writeTable(s)
}

func (s *Sheet) width() int {
	if len(s.Blocks) == 0 {
		return len(s.Columns)
	}
	width := 0
	for _, block := range s.Blocks {
		end := block.ColOffset + len(block.Columns)
		if end > width {
			width = end
		}
	}
	return width
}

func (r *renderer) writeTitle(s *Sheet, lastCol int) error {
	titleCell := cellName(firstCol, titleRow)
	if err := r.f.SetCellValue(s.Name, titleCell, s.Title); err != nil {
		return err
	}
	if err := r.f.MergeCell(s.Name, titleCell, cellName(lastCol, titleRow)); err != nil {
		return err
	}
	titleStyle, err := r.style("title", &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 18},
	})
	if err != nil {
		return err
	}
	if err := r.f.SetCellStyle(s.Name, titleCell, cellName(lastCol, titleRow), titleStyle); err != nil {
		return err
	}

	if s.Subtitle == "" {
		return nil
	}
	subtitleCell := cellName(firstCol, subtitleRow)
	if err := r.f.SetCellValue(s.Name, subtitleCell, s.Subtitle); err != nil {
		return err
	}
	return r.f.MergeCell(s.Name, subtitleCell, cellName(lastCol, subtitleRow))
}

func (r *renderer) writeTable(s *Sheet) error {
	headerStyle, err := r.headerStyle()
	if err != nil {
		return err
	}

	dataStart := headerRow + 1
	if s.HasGroups() {
		dataStart = headerRow + 2
	}

	for i, col := range s.Columns {
		colIdx := firstCol + i
		width := col.Width
		if width <= 0 {
			width = 18
		}
		name, colErr := excelize.ColumnNumberToName(colIdx)
		if colErr != nil {
			return colErr
		}
		if err := r.f.SetColWidth(s.Name, name, name, width); err != nil {
			return err
		}

		if s.HasGroups() {
			if err := r.writeGroupedHeaderCell(s, i, col); err != nil {
				return err
			}
		} else {
			if err := r.f.SetCellValue(s.Name, cellName(colIdx, headerRow), col.Header); err != nil {
				return err
			}
		}
	}

	if s.HasGroups() {
		if err := r.mergeGroupSpans(s); err != nil {
			return err
		}
	}

	lastCol := firstCol + len(s.Columns) - 1
	headerBottom := dataStart - 1
	if err := r.f.SetCellStyle(s.Name, cellName(firstCol, headerRow), cellName(lastCol, headerBottom), headerStyle); err != nil {
		return err
	}

	for rowIdx, row := range s.Rows {
		for colIdx, value := range row {
			if colIdx >= len(s.Columns) {
				break
			}
			cell := cellName(firstCol+colIdx, dataStart+rowIdx)
			if err := r.f.SetCellValue(s.Name, cell, value); err != nil {
				return err
			}
		}
	}

	if len(s.Rows) > 0 {
		dataStyle, err := r.dataStyle()
		if err != nil {
			return err
		}
		end := cellName(lastCol, dataStart+len(s.Rows)-1)
		if err := r.f.SetCellStyle(s.Name, cellName(firstCol, dataStart), end, dataStyle); err != nil {
			return err
		}
	}

	for _, fill := range s.Fills {
		fillStyle, err := r.fillStyle(fill.Color)
		if err != nil {
			return err
		}
		cell := cellName(firstCol+fill.Col, dataStart+fill.Row)
		if err := r.f.SetCellStyle(s.Name, cell, cell, fillStyle); err != nil {
			return err
		}
	}
	return nil
}

// writeGroupedHeaderCell fills the two-row header: grouped columns get their
// group label on the top row and their own header below; ungrouped columns
// span both rows.
func (r *renderer) writeGroupedHeaderCell(s *Sheet, i int, col Column) error {
	colIdx := firstCol + i
	if col.Group == "" {
		if err := r.f.SetCellValue(s.Name, cellName(colIdx, headerRow), col.Header); err != nil {
			return err
		}
		return r.f.MergeCell(s.Name, cellName(colIdx, headerRow), cellName(colIdx, headerRow+1))
	}
	return r.f.SetCellValue(s.Name, cellName(colIdx, headerRow+1), col.Header)
}

func (r *renderer) mergeGroupSpans(s *Sheet) error {
	i := 0
	for i < len(s.Columns) {
		group := s.Columns[i].Group
		if group == "" {
			i++
			continue
		}
		start := i
		for i < len(s.Columns) && s.Columns[i].Group == group {
			i++
		}
		from := cellName(firstCol+start, headerRow)
		to := cellName(firstCol+i-1, headerRow)
		if err := r.f.SetCellValue(s.Name, from, group); err != nil {
			return err
		}
		if from != to {
			if err := r.f.MergeCell(s.Name, from, to); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeBlocks lays labeled sub-tables side by side below the title, each at
// its declared column offset, advancing rows independently per block.
func (r *renderer) writeBlocks(s *Sheet) error {
	headerStyle, err := r.headerStyle()
	if err != nil {
		return err
	}
	dataStyle, err := r.dataStyle()
	if err != nil {
		return err
	}

	for _, block := range s.Blocks {
		startCol := firstCol + block.ColOffset
		endCol := startCol + len(block.Columns) - 1

		labelCell := cellName(startCol, headerRow)
		if err := r.f.SetCellValue(s.Name, labelCell, block.Label); err != nil {
			return err
		}
		if endCol > startCol {
			if err := r.f.MergeCell(s.Name, labelCell, cellName(endCol, headerRow)); err != nil {
				return err
			}
		}

		row := headerRow + 1
		for i, col := range block.Columns {
			colIdx := startCol + i
			width := col.Width
			if width <= 0 {
				width = 18
			}
			name, colErr := excelize.ColumnNumberToName(colIdx)
			if colErr != nil {
				return colErr
			}
			if err := r.f.SetColWidth(s.Name, name, name, width); err != nil {
				return err
			}
			if err := r.f.SetCellValue(s.Name, cellName(colIdx, row), col.Header); err != nil {
				return err
			}
		}
		if err := r.f.SetCellStyle(s.Name, labelCell, cellName(endCol, row), headerStyle); err != nil {
			return err
		}

		row++
		for i, cells := range block.Rows {
			for j, value := range cells {
				if j >= len(block.Columns) {
					break
				}
				if err := r.f.SetCellValue(s.Name, cellName(startCol+j, row+i), value); err != nil {
					return err
				}
			}
		}
		if len(block.Rows) > 0 {
			end := cellName(endCol, row+len(block.Rows)-1)
			if err := r.f.SetCellStyle(s.Name, cellName(startCol, row), end, dataStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) headerStyle() (int, error) {
	return r.style("header", &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{ColorHeader}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: borders(),
	})
}

func (r *renderer) dataStyle() (int, error) {
	return r.style("data", &excelize.Style{Border: borders()})
}

func (r *renderer) fillStyle(color string) (int, error) {
	return r.style("fill:"+color, &excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Border: borders(),
	})
}

func (r *renderer) style(key string, style *excelize.Style) (int, error) {
	if id, ok := r.styles[key]; ok {
		return id, nil
	}
	id, err := r.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	r.styles[key] = id
	return id, nil
}

func borders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
