package sheet

import (
	"errors"
	"testing"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
		{MaxColumns, "XFD"},
		{0, ""},
	}

	for _, tt := range tests {
		if got := ColumnName(tt.col); got != tt.want {
			t.Errorf("ColumnName(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestColumnIndexRoundTrip(t *testing.T) {
	for _, col := range []int{1, 2, 26, 27, 100, 702, 703, MaxColumns} {
		got, err := ColumnIndex(ColumnName(col))
		if err != nil {
			t.Fatalf("ColumnIndex(%q) error = %v", ColumnName(col), err)
		}
		if got != col {
			t.Errorf("ColumnIndex(ColumnName(%d)) = %d", col, got)
		}
	}

	if _, err := ColumnIndex("XFE"); err == nil {
		t.Error("ColumnIndex(XFE) should fail beyond the sheet limit")
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		want    Ref
		wantErr bool
	}{
		{"A1", Ref{Row: 1, Col: 1}, false},
		{"b3", Ref{Row: 3, Col: 2}, false},
		{"$C$10", Ref{Row: 10, Col: 3}, false},
		{"XFD1048576", Ref{Row: MaxRows, Col: MaxColumns}, false},
		{"A0", Ref{}, true},
		{"A1048577", Ref{}, true},
		{"11", Ref{}, true},
		{"A", Ref{}, true},
		{"", Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("error %v should match ErrInvalidAddress", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		in       string
		rows     int
		cols     int
		rendered string
	}{
		{"A1", 1, 1, "A1"},
		{"A1:C3", 3, 3, "A1:C3"},
		{"C3:A1", 3, 3, "A1:C3"},
		{"$B$2:$D$4", 3, 3, "B2:D4"},
		{"2:4", 3, MaxColumns, "2:4"},
		{"5", 1, 1, ""},
		{"B:D", MaxRows, 3, "B:D"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			area, err := ParseArea(tt.in)
			if tt.rendered == "" {
				if err == nil {
					t.Fatalf("ParseArea(%q) should fail", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArea(%q) error = %v", tt.in, err)
			}
			if area.Rows() != tt.rows || area.Cols() != tt.cols {
				t.Errorf("ParseArea(%q) = %dx%d, want %dx%d", tt.in, area.Rows(), area.Cols(), tt.rows, tt.cols)
			}
			if got := FormatArea(area); got != tt.rendered {
				t.Errorf("FormatArea = %q, want %q", got, tt.rendered)
			}
		})
	}
}

func TestAreaContains(t *testing.T) {
	area, _ := ParseArea("B2:C3")
	if !area.Contains(Ref{Row: 2, Col: 2}) || !area.Contains(Ref{Row: 3, Col: 3}) {
		t.Error("corners should be contained")
	}
	if area.Contains(Ref{Row: 1, Col: 2}) || area.Contains(Ref{Row: 2, Col: 4}) {
		t.Error("outside cells should not be contained")
	}
}
