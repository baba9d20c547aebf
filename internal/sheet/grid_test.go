package sheet

import (
	"math"
	"testing"
)

func TestGridFromRows(t *testing.T) {
	g := GridFromRows([][]string{{"a", "b", "c"}, {"d"}})

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("shape = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	if g.At(0, 2) != "c" {
		t.Errorf("At(0,2) = %q, want c", g.At(0, 2))
	}
	if g.At(1, 0) != "d" || g.At(1, 2) != "" {
		t.Errorf("short row should be padded, got %q", g.Row(1))
	}
}

func TestGridEqual(t *testing.T) {
	a := GridFromRows([][]string{{"one", "two"}, {"three", "four"}})
	b := GridFromRows([][]string{{"one", "two"}, {"three", "four"}})
	c := GridFromRows([][]string{{"1", "2"}, {"3", "4"}})
	wide := GridFromRows([][]string{{"one", "two", "three", "four"}})

	if !a.Equal(b) {
		t.Error("identical grids should be equal")
	}
	if a.Equal(c) {
		t.Error("grids with different values should not be equal")
	}
	if a.Equal(wide) {
		t.Error("grids with the same cells in a different shape should not be equal")
	}

	var missing *Grid
	if a.Equal(missing) || missing.Equal(a) || missing.Equal(nil) {
		t.Error("a nil grid should never be equal")
	}
}

func TestGridEqualIsOrdinal(t *testing.T) {
	a := GridFromRows([][]string{{"abc"}})
	b := GridFromRows([][]string{{"ABC"}})
	if a.Equal(b) {
		t.Error("comparison should be case sensitive")
	}
}

func TestEmptyGridIsNotNil(t *testing.T) {
	g := NewGrid(0, 0)
	if g == nil {
		t.Fatal("NewGrid(0,0) should not be nil")
	}
	if !g.Equal(NewGrid(0, 0)) {
		t.Error("two empty grids should be equal")
	}
	if g.String() == (*Grid)(nil).String() {
		t.Error("empty and missing grids should describe themselves differently")
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("At out of bounds should panic")
		}
	}()
	NewGrid(1, 1).At(1, 0)
}

func TestCellCountUsesWideArithmetic(t *testing.T) {
	got := CellCount(math.MaxInt32, math.MaxInt32)
	want := int64(math.MaxInt32) * int64(math.MaxInt32)
	if got != want {
		t.Errorf("CellCount(MaxInt32, MaxInt32) = %d, want %d", got, want)
	}
	if got := CellCount(MaxRows, MaxColumns); got != 17179869184 {
		t.Errorf("CellCount(MaxRows, MaxColumns) = %d, want 17179869184", got)
	}
}
