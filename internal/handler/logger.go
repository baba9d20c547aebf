package handler

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// InfoLogger logs every change that is not a no-op at info level.
type InfoLogger struct {
	log logr.Logger
}

// NewInfoLogger creates an InfoLogger writing to log.
func NewInfoLogger(log logr.Logger) *InfoLogger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &InfoLogger{log: log.WithName("changes")}
}

// HandleChange implements Handler.
func (l *InfoLogger) HandleChange(_ context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
	kind := c.Kind()
	if kind == memory.NoChange {
		l.log.V(1).Info("range unchanged", "sheet", ws.Name(), "range", rng.Address())
		return nil
	}

	var cellsBefore int64
	if before, ok := c.Before(); ok {
		cellsBefore = before.RangeCellCount
	}
	l.log.Info("range changed",
		"sheet", ws.Name(),
		"range", rng.Address(),
		"kind", kind.String(),
		"cellsBefore", cellsBefore,
		"cellsAfter", c.After().RangeCellCount,
	)
	return nil
}
