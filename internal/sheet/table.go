package sheet

import "sync"

// Fill records one Fill call made against a Table range.
type Fill struct {
	Area   Area
	Colour Colour
}

// Table is an in-memory worksheet. Cells outside the stored set read as
// empty strings. Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	name    string
	rows    int
	cols    int
	cells   map[Ref]string
	fills   []Fill
	readErr error
	reads   int
}

// NewTable creates an empty table with the given sheet dimensions.
func NewTable(name string, rows, cols int) *Table {
	return &Table{
		name:  name,
		rows:  rows,
		cols:  cols,
		cells: make(map[Ref]string),
	}
}

// NewTableFromRows creates a table whose top-left block holds the given
// rows. Sheet dimensions are taken from the data.
func NewTableFromRows(name string, rows [][]string) *Table {
	g := GridFromRows(rows)
	t := NewTable(name, g.Rows(), g.Cols())
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if v := g.At(r, c); v != "" {
				t.cells[Ref{Row: r + 1, Col: c + 1}] = v
			}
		}
	}
	return t
}

// Name implements Worksheet.
func (t *Table) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

// RowCount implements Worksheet.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// ColumnCount implements Worksheet.
func (t *Table) ColumnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Rename changes the sheet name.
func (t *Table) Rename(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
}

// Resize changes the reported sheet dimensions without touching cells.
func (t *Table) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	t.cols = cols
}

// Set stores a value at a 1-based position.
func (t *Table) Set(row, col int, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ref := Ref{Row: row, Col: col}
	if value == "" {
		delete(t.cells, ref)
		return
	}
	t.cells[ref] = value
}

// SetCell stores a value at an A1 reference.
func (t *Table) SetCell(ref string, value string) error {
	r, err := ParseRef(ref)
	if err != nil {
		return err
	}
	t.Set(r.Row, r.Col, value)
	return nil
}

// Get returns the value at a 1-based position.
func (t *Table) Get(row, col int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cells[Ref{Row: row, Col: col}]
}

// FailReads makes every subsequent range read return err. Pass nil to
// restore normal reads.
func (t *Table) FailReads(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.readErr = err
}

// Reads returns how many range reads have been served.
func (t *Table) Reads() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reads
}

// Fills returns the fills applied so far, oldest first.
func (t *Table) Fills() []Fill {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Fill, len(t.fills))
	copy(out, t.fills)
	return out
}

// Range returns the range for an A1 address.
func (t *Table) Range(address string) (*TableRange, error) {
	area, err := ParseArea(address)
	if err != nil {
		return nil, err
	}
	return t.AreaRange(area), nil
}

// AreaRange returns the range covering an area.
func (t *Table) AreaRange(area Area) *TableRange {
	return &TableRange{table: t, area: area, address: FormatArea(area)}
}

// TableRange is a Range over a Table.
type TableRange struct {
	table   *Table
	area    Area
	address string
}

// Area returns the covered area.
func (r *TableRange) Area() Area { return r.area }

// Address implements Range.
func (r *TableRange) Address() string { return r.address }

// RowCount implements Range.
func (r *TableRange) RowCount() int { return r.area.Rows() }

// ColumnCount implements Range.
func (r *TableRange) ColumnCount() int { return r.area.Cols() }

// Values implements Range.
func (r *TableRange) Values() (*Grid, error) {
	t := r.table
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.readErr != nil {
		return nil, t.readErr
	}
	t.reads++

	g := NewGrid(r.area.Rows(), r.area.Cols())
	for ref, v := range t.cells {
		if r.area.Contains(ref) {
			g.Set(ref.Row-r.area.First.Row, ref.Col-r.area.First.Col, v)
		}
	}
	return g, nil
}

// Fill implements Range.
func (r *TableRange) Fill(colour Colour) error {
	t := r.table
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fills = append(t.fills, Fill{Area: r.area, Colour: colour})
	return nil
}
