package workbook

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/dshills/rangewatch/internal/sheet"
)

// Sheet is a worksheet of a Workbook. It implements sheet.Worksheet.
type Sheet struct {
	book *Workbook
	name string

	// mu guards the last dimensions read successfully.
	mu   sync.Mutex
	rows int
	cols int
}

func newSheet(book *Workbook, name string) *Sheet {
	s := &Sheet{book: book, name: name}
	s.dimensions()
	return s
}

// Name implements sheet.Worksheet.
func (s *Sheet) Name() string {
	return s.name
}

// RowCount implements sheet.Worksheet. It is the number of rows in the
// used area.
func (s *Sheet) RowCount() int {
	rows, _ := s.dimensions()
	return rows
}

// ColumnCount implements sheet.Worksheet. It is the width of the widest
// used row.
func (s *Sheet) ColumnCount() int {
	_, cols := s.dimensions()
	return cols
}

// dimensions reads the used area. If the sheet cannot be read the
// failure is logged and the last known dimensions are returned, so a
// transient failure is not mistaken for deleted rows or columns.
func (s *Sheet) dimensions() (rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.book.rows(s.name)
	if err != nil {
		s.book.log.Error(err, "reading sheet dimensions, keeping last known",
			"sheet", s.name, "rows", s.rows, "columns", s.cols)
		return s.rows, s.cols
	}

	width := 0
	for _, r := range data {
		width = max(width, len(r))
	}
	s.rows, s.cols = len(data), width
	return s.rows, s.cols
}

// Range returns the range at an A1 address such as "B2:D9", "3:3" or
// "C:C".
func (s *Sheet) Range(address string) (*Range, error) {
	area, err := sheet.ParseArea(address)
	if err != nil {
		return nil, err
	}
	return &Range{sheet: s, area: area, address: sheet.FormatArea(area)}, nil
}

// SetCell sets the value at an A1 reference.
func (s *Sheet) SetCell(ref, value string) error {
	s.book.mu.Lock()
	defer s.book.mu.Unlock()
	if err := s.book.file.SetCellValue(s.name, ref, value); err != nil {
		return fmt.Errorf("setting %s!%s: %w", s.name, ref, err)
	}
	return nil
}

// Cell returns the value at an A1 reference.
func (s *Sheet) Cell(ref string) (string, error) {
	s.book.mu.Lock()
	defer s.book.mu.Unlock()
	return s.book.file.GetCellValue(s.name, ref)
}

// Range is a rectangular area of a Sheet. It implements sheet.Range.
type Range struct {
	sheet   *Sheet
	area    sheet.Area
	address string
}

// Area returns the covered area.
func (r *Range) Area() sheet.Area { return r.area }

// Address implements sheet.Range.
func (r *Range) Address() string { return r.address }

// RowCount implements sheet.Range.
func (r *Range) RowCount() int { return r.area.Rows() }

// ColumnCount implements sheet.Range.
func (r *Range) ColumnCount() int { return r.area.Cols() }

// Values implements sheet.Range.
func (r *Range) Values() (*sheet.Grid, error) {
	rows, err := r.sheet.book.rows(r.sheet.name)
	if err != nil {
		return nil, fmt.Errorf("reading %s!%s: %w", r.sheet.name, r.address, err)
	}

	g := sheet.NewGrid(r.area.Rows(), r.area.Cols())
	first, last := r.area.First, r.area.Last
	for row := first.Row; row <= last.Row && row <= len(rows); row++ {
		cells := rows[row-1]
		for col := first.Col; col <= last.Col && col <= len(cells); col++ {
			g.Set(row-first.Row, col-first.Col, cells[col-1])
		}
	}
	return g, nil
}

// Fill implements sheet.Range with a solid pattern fill. Whole-row and
// whole-column ranges are styled as rows or columns.
func (r *Range) Fill(colour sheet.Colour) error {
	b := r.sheet.book
	b.mu.Lock()
	defer b.mu.Unlock()

	style, err := b.fillStyle(colour)
	if err != nil {
		return fmt.Errorf("creating fill style: %w", err)
	}

	first, last := r.area.First, r.area.Last
	switch {
	case r.area.Cols() == sheet.MaxColumns:
		err = b.file.SetRowStyle(r.sheet.name, first.Row, last.Row, style)
	case r.area.Rows() == sheet.MaxRows:
		cols := sheet.ColumnName(first.Col) + ":" + sheet.ColumnName(last.Col)
		err = b.file.SetColStyle(r.sheet.name, cols, style)
	default:
		err = b.file.SetCellStyle(r.sheet.name, cellName(first), cellName(last), style)
	}
	if err != nil {
		return fmt.Errorf("filling %s!%s: %w", r.sheet.name, r.address, err)
	}
	return nil
}

func cellName(ref sheet.Ref) string {
	name, err := excelize.CoordinatesToCellName(ref.Col, ref.Row)
	if err != nil {
		return sheet.ColumnName(ref.Col) + strconv.Itoa(ref.Row)
	}
	return name
}
