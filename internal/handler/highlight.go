package handler

import (
	"context"
	"fmt"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Highlighter fills the edited range when its content or shape changed.
// Deletions are not highlighted because the deleted cells no longer
// exist.
type Highlighter struct {
	colour sheet.Colour
}

// NewHighlighter creates a Highlighter using colour.
func NewHighlighter(colour sheet.Colour) *Highlighter {
	return &Highlighter{colour: colour}
}

// Colour returns the fill colour.
func (h *Highlighter) Colour() sheet.Colour {
	return h.colour
}

// HandleChange implements Handler.
func (h *Highlighter) HandleChange(_ context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
	if !shouldHighlight(c.Kind()) {
		return nil
	}
	if err := rng.Fill(h.colour); err != nil {
		return fmt.Errorf("highlighting %s!%s: %w", ws.Name(), rng.Address(), err)
	}
	return nil
}

func shouldHighlight(k memory.ChangeKind) bool {
	switch k {
	case memory.DataChanged, memory.LocationChanged, memory.RowInserted, memory.ColumnInserted:
		return true
	default:
		return false
	}
}
