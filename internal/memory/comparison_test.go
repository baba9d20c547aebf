package memory

import "testing"

func TestComparisonKindPriority(t *testing.T) {
	tests := []struct {
		name string
		cmp  Comparison
		want ChangeKind
	}{
		{"no change", Comparison{locationMatches: true, dataMatches: true}, NoChange},
		{"data changed", Comparison{locationMatches: true}, DataChanged},
		{"location changed", Comparison{}, LocationChanged},
		{"row inserted beats data", Comparison{locationMatches: true, newRow: true}, RowInserted},
		{"row deleted beats location", Comparison{rowDeleted: true}, RowDeleted},
		{"column inserted", Comparison{newColumn: true}, ColumnInserted},
		{"column deleted", Comparison{columnDeleted: true}, ColumnDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmp.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChangeKindPredicates(t *testing.T) {
	for _, k := range []ChangeKind{RowInserted, RowDeleted, ColumnInserted, ColumnDeleted} {
		if !k.IsStructural() {
			t.Errorf("%v should be structural", k)
		}
	}
	for _, k := range []ChangeKind{NoChange, DataChanged, LocationChanged} {
		if k.IsStructural() {
			t.Errorf("%v should not be structural", k)
		}
	}
	if !RowDeleted.IsDeletion() || !ColumnDeleted.IsDeletion() || RowInserted.IsDeletion() {
		t.Error("IsDeletion() mismatch")
	}
}

func TestChangeKindString(t *testing.T) {
	if RowInserted.String() != "row-inserted" {
		t.Errorf("String() = %q", RowInserted.String())
	}
	if ChangeKind(99).String() != "unknown" {
		t.Errorf("String() = %q for unknown kind", ChangeKind(99).String())
	}
}
