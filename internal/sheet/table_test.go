package sheet

import (
	"errors"
	"testing"
)

func TestTableRangeValues(t *testing.T) {
	tbl := NewTableFromRows("Sheet1", [][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
	})

	if tbl.RowCount() != 2 || tbl.ColumnCount() != 3 {
		t.Fatalf("dimensions = %dx%d, want 2x3", tbl.RowCount(), tbl.ColumnCount())
	}

	rng, err := tbl.Range("B1:C2")
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if rng.Address() != "B1:C2" {
		t.Errorf("Address() = %q", rng.Address())
	}

	g, err := rng.Values()
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	want := GridFromRows([][]string{{"b", "c"}, {"e", "f"}})
	if !g.Equal(want) {
		t.Errorf("Values() = %v, want %v", g.Row(0), want.Row(0))
	}
	if tbl.Reads() != 1 {
		t.Errorf("Reads() = %d, want 1", tbl.Reads())
	}
}

func TestTableFailReads(t *testing.T) {
	tbl := NewTable("Sheet1", 1, 1)
	rng, _ := tbl.Range("A1")

	boom := errors.New("boom")
	tbl.FailReads(boom)
	if _, err := rng.Values(); !errors.Is(err, boom) {
		t.Errorf("Values() error = %v, want %v", err, boom)
	}

	tbl.FailReads(nil)
	if _, err := rng.Values(); err != nil {
		t.Errorf("Values() error = %v after restoring reads", err)
	}
}

func TestTableFill(t *testing.T) {
	tbl := NewTable("Sheet1", 5, 5)
	rng, _ := tbl.Range("A1:B2")

	if err := rng.Fill(DefaultHighlight); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}

	fills := tbl.Fills()
	if len(fills) != 1 {
		t.Fatalf("len(Fills()) = %d, want 1", len(fills))
	}
	if fills[0].Colour != DefaultHighlight || fills[0].Area != rng.Area() {
		t.Errorf("fill = %+v", fills[0])
	}
}

func TestTableSetCellAndClear(t *testing.T) {
	tbl := NewTable("Sheet1", 3, 3)
	if err := tbl.SetCell("C3", "x"); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	if tbl.Get(3, 3) != "x" {
		t.Errorf("Get(3,3) = %q, want x", tbl.Get(3, 3))
	}
	tbl.Set(3, 3, "")
	if tbl.Get(3, 3) != "" {
		t.Error("setting an empty value should clear the cell")
	}
	if err := tbl.SetCell("3C", "x"); err == nil {
		t.Error("SetCell with a bad reference should fail")
	}
}
