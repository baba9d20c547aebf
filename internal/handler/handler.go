package handler

import (
	"context"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Handler reacts to a compared edit.
type Handler interface {
	HandleChange(ctx context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error
}

// Func adapts a function to Handler.
type Func func(ctx context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error

// HandleChange implements Handler.
func (f Func) HandleChange(ctx context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
	return f(ctx, c, ws, rng)
}

// Fields flattens a change into the record used by the log, JSON and Lua
// handlers.
func Fields(c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) map[string]any {
	after := c.After()
	var cellsBefore int64
	if before, ok := c.Before(); ok {
		cellsBefore = before.RangeCellCount
	}

	return map[string]any{
		"kind":             c.Kind().String(),
		"sheet":            ws.Name(),
		"address":          rng.Address(),
		"location_matches": c.LocationMatches(),
		"data_matches":     c.DataMatches(),
		"new_row":          c.IsNewRow(),
		"row_deleted":      c.IsRowDeleted(),
		"new_column":       c.IsNewColumn(),
		"column_deleted":   c.IsColumnDeleted(),
		"cells_before":     cellsBefore,
		"cells_after":      after.RangeCellCount,
	}
}
