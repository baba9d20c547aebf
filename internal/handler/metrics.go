package handler

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Metric names.
const (
	MetricChanges = "rangewatch.changes"
	MetricCells   = "rangewatch.range.cells"
)

// Metrics records every handled edit as OpenTelemetry measurements: a
// counter of edits by kind and a histogram of range sizes.
type Metrics struct {
	changes metric.Int64Counter
	cells   metric.Int64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	changes, err := meter.Int64Counter(MetricChanges,
		metric.WithDescription("Edits to the watched range, by kind of change"),
		metric.WithUnit("{edit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricChanges, err)
	}

	cells, err := meter.Int64Histogram(MetricCells,
		metric.WithDescription("Cell count of the watched range after each edit"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCells, err)
	}

	return &Metrics{changes: changes, cells: cells}, nil
}

// HandleChange implements Handler.
func (m *Metrics) HandleChange(ctx context.Context, c memory.Comparison, ws sheet.Worksheet, _ sheet.Range) error {
	attrs := metric.WithAttributes(
		attribute.String("kind", c.Kind().String()),
		attribute.String("sheet", ws.Name()),
	)
	m.changes.Add(ctx, 1, attrs)
	m.cells.Record(ctx, c.After().RangeCellCount, metric.WithAttributes(attribute.String("sheet", ws.Name())))
	return nil
}
