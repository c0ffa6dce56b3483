// Package report assembles tabular export workbooks: every sheet follows the
// company reporting convention (title in B2, subtitle in B3, red header row,
// data below) and is serialized to xlsx in one pass.
package report

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cell fill colors shared by every export. The classifier outcome maps to
// exactly one color here; call sites must not invent their own.
const (
	ColorHeader = "C00000"
	ColorRed    = "FF6B6B"
	ColorYellow = "FFF176"
	ColorGreen  = "81C784"
)

type Column struct {
	Header string
	// Group labels adjacent columns under a merged super-header row.
	Group string
	Width float64
}

// Fill marks one data cell for a conditional background color. Row and Col
// are zero-based indices into the sheet's data region.
type Fill struct {
	Row   int
	Col   int
	Color string
}

// Block is a labeled sub-table placed at a fixed column offset, for sheets
// that lay several record groups side by side (e.g. tax next to insurance).
type Block struct {
	Label     string
	ColOffset int
	Columns   []Column
	Rows      [][]any
}

type Sheet struct {
	Name     string
	Title    string
	Subtitle string
	Columns  []Column
	Rows     [][]any
	Fills    []Fill
	Blocks   []Block
}

func NewSheet(name, title, subtitle string, columns []Column) *Sheet {
	return &Sheet{Name: name, Title: title, Subtitle: subtitle, Columns: columns}
}

func (s *Sheet) AppendRow(cells ...any) {
	s.Rows = append(s.Rows, cells)
}

// FillCell schedules a conditional background for the data cell at the given
// zero-based row/column of the data region.
func (s *Sheet) FillCell(row, col int, color string) {
	s.Fills = append(s.Fills, Fill{Row: row, Col: col, Color: color})
}

func (s *Sheet) AddBlock(block Block) {
	s.Blocks = append(s.Blocks, block)
}

// AppendExpanded emits one row per (parent, child) pair. A parent with no
// children still contributes exactly one row, with the child columns blank.
func AppendExpanded[P, C any](s *Sheet, parents []P, children func(P) []C, row func(P, C) []any, blank func(P) []any) {
	for _, parent := range parents {
		kids := children(parent)
		if len(kids) == 0 {
			s.AppendRow(blank(parent)...)
			continue
		}
		for _, kid := range kids {
			s.AppendRow(row(parent, kid)...)
		}
	}
}

// HasGroups reports whether any column carries a group label, which switches
// the sheet to a two-row header layout.
func (s *Sheet) HasGroups() bool {
	for _, col := range s.Columns {
		if col.Group != "" {
			return true
		}
	}
	return false
}

var printer = message.NewPrinter(language.Indonesian)

// Number renders a quantity with locale thousands separators. Exports always
// format through here so every path agrees.
func Number(v float64) string {
	if v == float64(int64(v)) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

func NumberInt(v int) string {
	return printer.Sprintf("%d", v)
}

// Display renders an optional value for a cell; absent data becomes an empty
// string, never a panic.
func Display(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case *string:
		if value == nil {
			return ""
		}
		return *value
	case *time.Time:
		if value == nil || value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02")
	case time.Time:
		if value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02")
	case *float64:
		if value == nil {
			return ""
		}
		return Number(*value)
	case *int:
		if value == nil {
			return ""
		}
		return NumberInt(*value)
	default:
		return ""
	}
}

// Filename builds the export attachment name: <Entity>_<ISO-date>.xlsx.
func Filename(entity string, now time.Time) string {
	entity = strings.ReplaceAll(strings.TrimSpace(entity), " ", "_")
	return entity + "_" + now.Format("2006-01-02") + ".xlsx"
}
