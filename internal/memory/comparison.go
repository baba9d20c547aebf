package memory

// ChangeKind classifies a comparison for handlers that react differently
// to each kind of edit.
type ChangeKind uint8

const (
	// NoChange means the location and data both match the snapshot.
	NoChange ChangeKind = iota
	// DataChanged means the location matches but the data could not be
	// shown to be unchanged.
	DataChanged
	// LocationChanged means the observed sheet or range differs from the
	// snapshot, or nothing was captured.
	LocationChanged
	// RowInserted means whole rows were added to the sheet.
	RowInserted
	// RowDeleted means whole rows were removed from the sheet.
	RowDeleted
	// ColumnInserted means whole columns were added to the sheet.
	ColumnInserted
	// ColumnDeleted means whole columns were removed from the sheet.
	ColumnDeleted
)

// String returns the kind name.
func (k ChangeKind) String() string {
	switch k {
	case NoChange:
		return "none"
	case DataChanged:
		return "data"
	case LocationChanged:
		return "location"
	case RowInserted:
		return "row-inserted"
	case RowDeleted:
		return "row-deleted"
	case ColumnInserted:
		return "column-inserted"
	case ColumnDeleted:
		return "column-deleted"
	default:
		return "unknown"
	}
}

// IsStructural reports whether the kind is a row or column insert/delete.
func (k ChangeKind) IsStructural() bool {
	return k >= RowInserted && k <= ColumnDeleted
}

// IsDeletion reports whether the kind removed rows or columns.
func (k ChangeKind) IsDeletion() bool {
	return k == RowDeleted || k == ColumnDeleted
}

// Comparison is the result of comparing a live region with the stored
// snapshot. It is immutable.
type Comparison struct {
	locationMatches bool
	dataMatches     bool

	newRow        bool
	rowDeleted    bool
	newColumn     bool
	columnDeleted bool

	before *Properties
	after  Properties
}

// LocationMatches reports whether the sheet name and range address equal
// the snapshot's byte for byte.
func (c Comparison) LocationMatches() bool { return c.locationMatches }

// DataMatches reports whether the snapshot held data and the live range
// has the same dimensions and identical values. It is never true when the
// location does not match.
func (c Comparison) DataMatches() bool { return c.dataMatches }

// LocationAndDataMatch reports whether the edit had no effect on the
// region.
func (c Comparison) LocationAndDataMatch() bool {
	return c.locationMatches && c.dataMatches
}

// IsNewRow reports a whole-row insert.
func (c Comparison) IsNewRow() bool { return c.newRow }

// IsRowDeleted reports a whole-row delete.
func (c Comparison) IsRowDeleted() bool { return c.rowDeleted }

// IsNewColumn reports a whole-column insert.
func (c Comparison) IsNewColumn() bool { return c.newColumn }

// IsColumnDeleted reports a whole-column delete.
func (c Comparison) IsColumnDeleted() bool { return c.columnDeleted }

// Before returns the snapshot as it was when the comparison ran. The
// boolean is false if nothing had been captured.
func (c Comparison) Before() (Properties, bool) {
	if c.before == nil {
		return Properties{}, false
	}
	return *c.before, true
}

// After returns the live region. Its Data is set only when the comparison
// had to read the live values.
func (c Comparison) After() Properties { return c.after }

// Kind classifies the comparison. Structural flags win over location and
// data results.
func (c Comparison) Kind() ChangeKind {
	switch {
	case c.rowDeleted:
		return RowDeleted
	case c.columnDeleted:
		return ColumnDeleted
	case c.newRow:
		return RowInserted
	case c.newColumn:
		return ColumnInserted
	case !c.locationMatches:
		return LocationChanged
	case !c.dataMatches:
		return DataChanged
	default:
		return NoChange
	}
}
