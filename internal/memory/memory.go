package memory

import (
	"github.com/go-logr/logr"

	"github.com/dshills/rangewatch/internal/sheet"
)

// Limits supplies the storage threshold. Implementations must return the
// current value on every call.
type Limits interface {
	// MaxCellCount is the largest range, in cells, whose values are kept.
	// A negative value means values are never kept.
	MaxCellCount() int64
}

// LimitFunc adapts a function to Limits.
type LimitFunc func() int64

// MaxCellCount implements Limits.
func (f LimitFunc) MaxCellCount() int64 { return f() }

// Memory holds the last captured state of one region.
type Memory struct {
	log    logr.Logger
	limits Limits

	// state is nil until the first Capture and after Invalidate.
	state *Properties
}

// New creates an empty Memory. A zero logr.Logger discards output.
func New(log logr.Logger, limits Limits) *Memory {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Memory{
		log:    log.WithName("memory"),
		limits: limits,
	}
}

// SetLogger replaces the logger used to report read failures. A zero
// logr.Logger discards output.
func (m *Memory) SetLogger(log logr.Logger) {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	m.log = log.WithName("memory")
}

// MaxCellCount returns the storage threshold currently in effect.
func (m *Memory) MaxCellCount() int64 {
	return m.limits.MaxCellCount()
}

// IsSet reports whether a snapshot is held.
func (m *Memory) IsSet() bool {
	return m.state != nil
}

// Current returns the held snapshot.
func (m *Memory) Current() (Properties, bool) {
	if m.state == nil {
		return Properties{}, false
	}
	return *m.state, true
}

// Capture replaces the snapshot with the live state of the region. Cell
// values are read only when the range fits within MaxCellCount; if the
// read fails the snapshot is still recorded, without values.
func (m *Memory) Capture(ws sheet.Worksheet, rng sheet.Range) {
	snap := observe(ws, rng, nil)

	if snap.RangeCellCount <= m.MaxCellCount() {
		snap.Data = m.read(ws, rng)
	}

	m.state = &snap
}

// Invalidate discards the snapshot.
func (m *Memory) Invalidate() {
	m.state = nil
}

// Compare evaluates the live region against the snapshot without changing
// it.
func (m *Memory) Compare(ws sheet.Worksheet, rng sheet.Range) Comparison {
	var cmp Comparison

	cmp.locationMatches = m.locationMatches(ws, rng)

	var live *sheet.Grid
	if cmp.locationMatches && m.storedShapeMatches(rng) {
		live = m.read(ws, rng)
		cmp.dataMatches = live != nil && m.state.Data.Equal(live)
	}

	cmp.newRow = m.rowsGrew(ws) && sheet.SpansAllColumns(rng)
	cmp.rowDeleted = m.rowsShrank(ws) && sheet.SpansAllColumns(rng)
	cmp.newColumn = m.columnsGrew(ws) && sheet.SpansAllRows(rng)
	cmp.columnDeleted = m.columnsShrank(ws) && sheet.SpansAllRows(rng)

	if m.state != nil {
		before := *m.state
		cmp.before = &before
	}
	cmp.after = observe(ws, rng, live)

	return cmp
}

// read returns the range values or nil after logging the failure.
func (m *Memory) read(ws sheet.Worksheet, rng sheet.Range) *sheet.Grid {
	res := sheet.Read(rng)
	if !res.OK() {
		m.log.Error(res.Err, "reading range data", "sheet", ws.Name(), "range", rng.Address())
		return nil
	}
	return res.Grid
}

func (m *Memory) locationMatches(ws sheet.Worksheet, rng sheet.Range) bool {
	if m.state == nil {
		return false
	}
	return m.state.SheetName == ws.Name() && m.state.RangeAddress == rng.Address()
}

// storedShapeMatches reports whether stored data exists with the live
// range's dimensions, so that reading live values can be skipped when a
// match is impossible.
func (m *Memory) storedShapeMatches(rng sheet.Range) bool {
	if m.state == nil || m.state.Data == nil {
		return false
	}
	return m.state.Data.Rows() == rng.RowCount() && m.state.Data.Cols() == rng.ColumnCount()
}

func (m *Memory) rowsGrew(ws sheet.Worksheet) bool {
	return m.state != nil && ws.RowCount() > m.state.SheetRows
}

func (m *Memory) rowsShrank(ws sheet.Worksheet) bool {
	return m.state != nil && ws.RowCount() < m.state.SheetRows
}

func (m *Memory) columnsGrew(ws sheet.Worksheet) bool {
	return m.state != nil && ws.ColumnCount() > m.state.SheetColumns
}

func (m *Memory) columnsShrank(ws sheet.Worksheet) bool {
	return m.state != nil && ws.ColumnCount() < m.state.SheetColumns
}
