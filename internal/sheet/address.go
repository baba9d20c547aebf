package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress indicates an address could not be parsed.
var ErrInvalidAddress = errors.New("invalid address")

// AddressError describes why an A1 address was rejected.
type AddressError struct {
	Address string
	Reason  string
}

// Error implements the error interface.
func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %s", e.Address, e.Reason)
}

// Is implements error matching for AddressError.
func (e *AddressError) Is(target error) bool {
	return target == ErrInvalidAddress
}

// Ref is a single cell position. Row and Col are 1-based.
type Ref struct {
	Row int
	Col int
}

// String returns the A1 form of the reference.
func (r Ref) String() string {
	return ColumnName(r.Col) + strconv.Itoa(r.Row)
}

// Area is a rectangular block between two corner references, inclusive.
type Area struct {
	First Ref
	Last  Ref
}

// Rows returns the number of rows covered.
func (a Area) Rows() int { return a.Last.Row - a.First.Row + 1 }

// Cols returns the number of columns covered.
func (a Area) Cols() int { return a.Last.Col - a.First.Col + 1 }

// Contains reports whether the reference lies inside the area.
func (a Area) Contains(r Ref) bool {
	return r.Row >= a.First.Row && r.Row <= a.Last.Row &&
		r.Col >= a.First.Col && r.Col <= a.Last.Col
}

// String returns the area in A1 notation. Single-cell areas collapse to
// one reference.
func (a Area) String() string {
	return FormatArea(a)
}

// RowArea returns the area covering whole rows first..last.
func RowArea(first, last int) Area {
	return Area{First: Ref{Row: first, Col: 1}, Last: Ref{Row: last, Col: MaxColumns}}
}

// ColumnArea returns the area covering whole columns first..last.
func ColumnArea(first, last int) Area {
	return Area{First: Ref{Row: 1, Col: first}, Last: Ref{Row: MaxRows, Col: last}}
}

// ColumnName converts a 1-based column index to letters: 1 -> A, 28 -> AB.
func ColumnName(col int) string {
	if col <= 0 {
		return ""
	}
	var buf []byte
	for col > 0 {
		col--
		buf = append([]byte{byte('A' + col%26)}, buf...)
		col /= 26
	}
	return string(buf)
}

// ColumnIndex converts column letters to a 1-based index.
func ColumnIndex(letters string) (int, error) {
	if letters == "" {
		return 0, &AddressError{Address: letters, Reason: "missing column"}
	}
	col := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return 0, &AddressError{Address: letters, Reason: "column must be letters"}
		}
		col = col*26 + int(ch-'A'+1)
		if col > MaxColumns {
			return 0, &AddressError{Address: letters, Reason: "column beyond sheet limit"}
		}
	}
	return col, nil
}

// ParseRef parses a single A1 reference. Absolute markers ("$B$3") are
// accepted and ignored.
func ParseRef(s string) (Ref, error) {
	raw := s
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")

	split := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if split <= 0 {
		return Ref{}, &AddressError{Address: raw, Reason: "expected column letters followed by a row number"}
	}

	col, err := ColumnIndex(s[:split])
	if err != nil {
		return Ref{}, &AddressError{Address: raw, Reason: err.(*AddressError).Reason}
	}

	row, err := strconv.Atoi(s[split:])
	if err != nil {
		return Ref{}, &AddressError{Address: raw, Reason: "row must be a number"}
	}
	if row < 1 || row > MaxRows {
		return Ref{}, &AddressError{Address: raw, Reason: "row out of range"}
	}

	return Ref{Row: row, Col: col}, nil
}

// ParseArea parses "A1", "A1:C3", whole-row "2:4" and whole-column "B:D"
// forms. Corners are normalised so First is the top-left cell.
func ParseArea(s string) (Area, error) {
	raw := s
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return Area{}, &AddressError{Address: raw, Reason: "empty address"}
	}

	left, right, isSpan := strings.Cut(s, ":")
	if !isSpan {
		ref, err := ParseRef(s)
		if err != nil {
			return Area{}, err
		}
		return Area{First: ref, Last: ref}, nil
	}

	if rows, ok := parseRowSpan(left, right); ok {
		return rows, nil
	}
	if cols, ok := parseColumnSpan(left, right); ok {
		return cols, nil
	}

	first, err := ParseRef(left)
	if err != nil {
		return Area{}, err
	}
	last, err := ParseRef(right)
	if err != nil {
		return Area{}, err
	}
	return normalise(first, last), nil
}

// FormatArea renders an area in A1 notation, using "2:4" and "B:D" forms
// for whole-row and whole-column areas.
func FormatArea(a Area) string {
	switch {
	case a.First.Col == 1 && a.Last.Col == MaxColumns:
		return strconv.Itoa(a.First.Row) + ":" + strconv.Itoa(a.Last.Row)
	case a.First.Row == 1 && a.Last.Row == MaxRows:
		return ColumnName(a.First.Col) + ":" + ColumnName(a.Last.Col)
	case a.First == a.Last:
		return a.First.String()
	default:
		return a.First.String() + ":" + a.Last.String()
	}
}

func parseRowSpan(left, right string) (Area, bool) {
	first, err1 := strconv.Atoi(left)
	last, err2 := strconv.Atoi(right)
	if err1 != nil || err2 != nil || first < 1 || last < 1 || first > MaxRows || last > MaxRows {
		return Area{}, false
	}
	if first > last {
		first, last = last, first
	}
	return RowArea(first, last), true
}

func parseColumnSpan(left, right string) (Area, bool) {
	first, err1 := ColumnIndex(left)
	last, err2 := ColumnIndex(right)
	if err1 != nil || err2 != nil {
		return Area{}, false
	}
	if first > last {
		first, last = last, first
	}
	return ColumnArea(first, last), true
}

func normalise(a, b Ref) Area {
	first := Ref{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)}
	last := Ref{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)}
	return Area{First: first, Last: last}
}
