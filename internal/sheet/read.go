package sheet

import "fmt"

// ReadResult is the outcome of reading a range's values: either a grid or
// the reason the read failed.
type ReadResult struct {
	Grid *Grid
	Err  error
}

// OK reports whether the read produced a grid.
func (r ReadResult) OK() bool {
	return r.Err == nil && r.Grid != nil
}

// Read reads the values of a range. Errors and panics raised by the host
// are returned as a failed result wrapping ErrReadFailed; a grid whose
// shape disagrees with the range's dimensions is rejected with
// ErrShapeMismatch.
func Read(r Range) (result ReadResult) {
	defer func() {
		if p := recover(); p != nil {
			result = ReadResult{Err: fmt.Errorf("%w: panic: %v", ErrReadFailed, p)}
		}
	}()

	g, err := r.Values()
	if err != nil {
		return ReadResult{Err: fmt.Errorf("%w: %w", ErrReadFailed, err)}
	}
	if g == nil {
		return ReadResult{Err: fmt.Errorf("%w: no data returned", ErrReadFailed)}
	}
	if g.Rows() != r.RowCount() || g.Cols() != r.ColumnCount() {
		return ReadResult{Err: fmt.Errorf("%w: got %dx%d, range is %dx%d",
			ErrShapeMismatch, g.Rows(), g.Cols(), r.RowCount(), r.ColumnCount())}
	}
	return ReadResult{Grid: g}
}
