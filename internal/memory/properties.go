package memory

import "github.com/dshills/rangewatch/internal/sheet"

// Properties describes a region as observed at one point in time.
type Properties struct {
	// SheetName identifies the worksheet.
	SheetName string

	// SheetRows and SheetColumns are the whole-sheet dimensions.
	SheetRows    int
	SheetColumns int

	// RangeAddress is the watched range's address.
	RangeAddress string

	// RangeCellCount is rows*cols of the range.
	RangeCellCount int64

	// Data holds the range values, or nil when they were not read.
	// It is shared and must not be modified.
	Data *sheet.Grid
}

// HasData reports whether cell values were recorded.
func (p Properties) HasData() bool {
	return p.Data != nil
}

// observe builds properties from live host objects. Data is left for the
// caller to supply.
func observe(ws sheet.Worksheet, rng sheet.Range, data *sheet.Grid) Properties {
	return Properties{
		SheetName:      ws.Name(),
		SheetRows:      ws.RowCount(),
		SheetColumns:   ws.ColumnCount(),
		RangeAddress:   rng.Address(),
		RangeCellCount: sheet.RangeCellCount(rng),
		Data:           data,
	}
}
