// Package memory remembers the last observed state of one watched region
// and classifies how a later observation differs from it.
//
// A region is a worksheet plus a range on it. A [Memory] holds at most one
// snapshot of that region. The usual cycle per edit event is:
//
//	mem := memory.New(log, cfg)
//
//	// Before the host applies the edit
//	mem.Capture(sheet, rng)
//
//	// After the edit
//	cmp := mem.Compare(sheet, rng)
//	switch cmp.Kind() {
//	case memory.RowInserted:
//	    ...
//	}
//
// # Storage threshold
//
// Capture always records the sheet name, sheet dimensions, range address
// and range cell count. The cell values are read and kept only when the
// range holds no more than [Limits.MaxCellCount] cells. The limit is read
// on every capture so a configuration change applies to the next capture
// without rebuilding the Memory. Without stored values a later comparison
// can never report matching data.
//
// # Read failures
//
// Reading cell values from the host may fail. Such failures are logged and
// treated as "no data": a capture stores no values, a comparison reports
// that the data does not match. Neither Capture nor Compare ever returns an
// error.
//
// # Structural changes
//
// A host reports a whole-row insert or delete as an edit whose range spans
// every column of the sheet ([sheet.MaxColumns]) and a whole-column edit as
// one spanning every row ([sheet.MaxRows]). Compare combines that shape
// with the change in sheet dimensions since capture to flag inserted or
// deleted rows and columns. This is a heuristic on the host's reporting,
// not a computed change set.
//
// # Concurrency
//
// A Memory is not safe for concurrent use. Each watched region owns one
// Memory and its edit events must be delivered serially.
package memory
