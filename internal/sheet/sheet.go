package sheet

import "errors"

// Host limits. A range whose column count equals MaxColumns spans whole
// rows; one whose row count equals MaxRows spans whole columns.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// Errors returned by range reads.
var (
	// ErrReadFailed wraps any failure reported while reading range values.
	ErrReadFailed = errors.New("range read failed")

	// ErrShapeMismatch indicates a read returned a grid whose dimensions
	// differ from the range's reported dimensions.
	ErrShapeMismatch = errors.New("range data does not match range dimensions")
)

// Worksheet is the sheet that contains a watched range.
type Worksheet interface {
	// Name returns the sheet's identity.
	Name() string

	// RowCount returns the number of rows in the whole sheet.
	RowCount() int

	// ColumnCount returns the number of columns in the whole sheet.
	ColumnCount() int
}

// Range is a rectangular block of cells on a worksheet.
type Range interface {
	// Address returns the range address, e.g. "A1:C3".
	Address() string

	// RowCount returns the number of rows in the range.
	RowCount() int

	// ColumnCount returns the number of columns in the range.
	ColumnCount() int

	// Values reads the cell values. The returned grid must be exactly
	// RowCount x ColumnCount.
	Values() (*Grid, error)

	// Fill sets the background colour of every cell in the range.
	Fill(colour Colour) error
}

// CellCount returns rows*cols computed in 64 bits so that a range spanning
// a maximal sheet does not overflow on 32-bit platforms.
func CellCount(rows, cols int) int64 {
	return int64(rows) * int64(cols)
}

// RangeCellCount returns the cell count of a range.
func RangeCellCount(r Range) int64 {
	return CellCount(r.RowCount(), r.ColumnCount())
}

// SpansAllColumns reports whether a range covers every column of the
// sheet, which is how a host signals a whole-row edit.
func SpansAllColumns(r Range) bool {
	return r.ColumnCount() == MaxColumns
}

// SpansAllRows reports whether a range covers every row of the sheet,
// which is how a host signals a whole-column edit.
func SpansAllRows(r Range) bool {
	return r.RowCount() == MaxRows
}
