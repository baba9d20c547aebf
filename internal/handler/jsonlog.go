package handler

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// JSONLog writes one JSON object per change to a writer, one per line.
type JSONLog struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time

	// includeUnchanged also records no-op edits.
	includeUnchanged bool
}

// JSONLogOption configures a JSONLog.
type JSONLogOption func(*JSONLog)

// WithUnchanged records edits that changed nothing.
func WithUnchanged(include bool) JSONLogOption {
	return func(j *JSONLog) {
		j.includeUnchanged = include
	}
}

// NewJSONLog creates a JSONLog writing to w.
func NewJSONLog(w io.Writer, opts ...JSONLogOption) *JSONLog {
	j := &JSONLog{w: w, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// HandleChange implements Handler.
func (j *JSONLog) HandleChange(_ context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
	if c.Kind() == memory.NoChange && !j.includeUnchanged {
		return nil
	}

	line, err := j.encode(c, ws, rng)
	if err != nil {
		return fmt.Errorf("encoding change: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if _, err := io.WriteString(j.w, line+"\n"); err != nil {
		return fmt.Errorf("writing change: %w", err)
	}
	return nil
}

func (j *JSONLog) encode(c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) (string, error) {
	fields := Fields(c, ws, rng)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	line, err := sjson.Set("{}", "time", j.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", err
	}
	for _, k := range keys {
		if line, err = sjson.Set(line, k, fields[k]); err != nil {
			return "", err
		}
	}

	if before, ok := c.Before(); ok {
		if line, err = sjson.Set(line, "before.sheet", before.SheetName); err != nil {
			return "", err
		}
		if line, err = sjson.Set(line, "before.address", before.RangeAddress); err != nil {
			return "", err
		}
	}
	if after := c.After(); after.HasData() && after.Data.CellCount() <= maxJSONCells {
		rows := make([][]string, after.Data.Rows())
		for r := range rows {
			rows[r] = after.Data.Row(r)
		}
		if line, err = sjson.Set(line, "values", rows); err != nil {
			return "", err
		}
	}
	return line, nil
}

// maxJSONCells caps the values embedded in a single record.
const maxJSONCells = 100
