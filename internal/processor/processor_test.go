package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/dshills/rangewatch/internal/config"
	"github.com/dshills/rangewatch/internal/handler"
	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New(config.WithEnvironment(false))
	t.Cleanup(cfg.Close)
	return cfg
}

func newTestRange(t *testing.T) (*sheet.Table, *sheet.TableRange) {
	t.Helper()
	tbl := sheet.NewTableFromRows("Data", [][]string{{"1", "2"}, {"3", "4"}})
	rng, err := tbl.Range("A1:B2")
	if err != nil {
		t.Fatal(err)
	}
	return tbl, rng
}

// recorder returns a handler appending name to calls.
func recorder(calls *[]string, name string, err error) handler.Handler {
	return handler.Func(func(context.Context, memory.Comparison, sheet.Worksheet, sheet.Range) error {
		*calls = append(*calls, name)
		return err
	})
}

func TestProcessorDataChange(t *testing.T) {
	p := New(logr.Discard(), newTestConfig(t))
	defer p.Close()
	tbl, rng := newTestRange(t)

	var got memory.ChangeKind
	p.AddHandler(handler.Func(func(_ context.Context, c memory.Comparison, _ sheet.Worksheet, _ sheet.Range) error {
		got = c.Kind()
		return nil
	}))

	p.BeforeChange(tbl, rng)
	tbl.Set(2, 2, "40")
	c, err := p.AfterChange(context.Background(), tbl, rng)
	if err != nil {
		t.Fatalf("AfterChange() error = %v", err)
	}
	if got != memory.DataChanged || c.Kind() != memory.DataChanged {
		t.Errorf("kind = %v (handler %v), want %v", c.Kind(), got, memory.DataChanged)
	}
}

func TestProcessorUnchanged(t *testing.T) {
	p := New(logr.Discard(), newTestConfig(t))
	defer p.Close()
	tbl, rng := newTestRange(t)

	p.BeforeChange(tbl, rng)
	c, _ := p.AfterChange(context.Background(), tbl, rng)
	if !c.LocationAndDataMatch() {
		t.Error("unedited range should match its capture")
	}
}

func TestProcessorAfterWithoutBefore(t *testing.T) {
	p := New(logr.Discard(), newTestConfig(t))
	defer p.Close()
	tbl, rng := newTestRange(t)

	c, err := p.AfterChange(context.Background(), tbl, rng)
	if err != nil {
		t.Fatalf("AfterChange() error = %v", err)
	}
	if c.LocationMatches() {
		t.Error("LocationMatches() = true without a capture")
	}
	if _, ok := c.Before(); ok {
		t.Error("Before() present without a capture")
	}
}

func TestProcessorHandlerOrderAndErrors(t *testing.T) {
	p := New(logr.Discard(), newTestConfig(t))
	defer p.Close()
	tbl, rng := newTestRange(t)

	var calls []string
	errFirst := errors.New("first failed")
	p.AddHandler(recorder(&calls, "first", errFirst))
	p.AddHandler(handler.Func(func(context.Context, memory.Comparison, sheet.Worksheet, sheet.Range) error {
		calls = append(calls, "panics")
		panic("handler exploded")
	}))
	p.AddHandler(recorder(&calls, "last", nil))

	p.BeforeChange(tbl, rng)
	_, err := p.AfterChange(context.Background(), tbl, rng)

	if want := "first,panics,last"; strings.Join(calls, ",") != want {
		t.Errorf("calls = %v, want %s", calls, want)
	}
	if !errors.Is(err, errFirst) {
		t.Errorf("AfterChange() error = %v, want to include %v", err, errFirst)
	}
	if err == nil || !strings.Contains(err.Error(), "handler exploded") {
		t.Errorf("AfterChange() error = %v, want to include the panic", err)
	}
}

func TestProcessorCancelledContext(t *testing.T) {
	var calls []string
	p := New(logr.Discard(), newTestConfig(t), WithHandlers(recorder(&calls, "h", nil)))
	defer p.Close()
	tbl, rng := newTestRange(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AfterChange(ctx, tbl, rng)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("AfterChange() error = %v, want %v", err, context.Canceled)
	}
	if len(calls) != 0 {
		t.Errorf("handlers ran after cancellation: %v", calls)
	}
}

func TestProcessorHandlerRegistration(t *testing.T) {
	var calls []string
	p := New(logr.Discard(), newTestConfig(t), WithHandlers(recorder(&calls, "a", nil)))
	defer p.Close()

	p.AddHandler(nil)
	p.AddHandler(recorder(&calls, "b", nil))
	if n := len(p.Handlers()); n != 2 {
		t.Errorf("len(Handlers()) = %d, want 2", n)
	}

	p.ClearHandlers()
	if n := len(p.Handlers()); n != 0 {
		t.Errorf("len(Handlers()) after clear = %d, want 0", n)
	}

	tbl, rng := newTestRange(t)
	_, _ = p.AfterChange(context.Background(), tbl, rng)
	if len(calls) != 0 {
		t.Errorf("cleared handlers ran: %v", calls)
	}
}

func TestProcessorInvalidatesOnMemorySettings(t *testing.T) {
	cfg := newTestConfig(t)
	p := New(logr.Discard(), cfg)
	defer p.Close()
	tbl, rng := newTestRange(t)

	p.BeforeChange(tbl, rng)
	if _, ok := p.Captured(); !ok {
		t.Fatal("BeforeChange() did not capture")
	}

	if err := cfg.SetChangeHandlingEnabled(true); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Captured(); !ok {
		t.Error("unrelated setting dropped the capture")
	}

	if err := cfg.SetMaxCellCount(10); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Captured(); ok {
		t.Error("threshold change did not drop the capture")
	}
}

func TestProcessorClosedIgnoresSettings(t *testing.T) {
	cfg := newTestConfig(t)
	p := New(logr.Discard(), cfg)
	tbl, rng := newTestRange(t)

	p.BeforeChange(tbl, rng)
	p.Close()

	if err := cfg.SetMaxCellCount(10); err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Captured(); !ok {
		t.Error("closed processor still reacts to settings")
	}
}

func TestProcessorHandlerMayChangeSettings(t *testing.T) {
	cfg := newTestConfig(t)
	p := New(logr.Discard(), cfg)
	defer p.Close()
	tbl, rng := newTestRange(t)

	p.AddHandler(handler.Func(func(context.Context, memory.Comparison, sheet.Worksheet, sheet.Range) error {
		return cfg.SetMaxCellCount(1)
	}))

	p.BeforeChange(tbl, rng)
	if _, err := p.AfterChange(context.Background(), tbl, rng); err != nil {
		t.Fatalf("AfterChange() error = %v", err)
	}
	if got := cfg.MaxCellCount(); got != 1 {
		t.Errorf("MaxCellCount() = %d, want 1", got)
	}
}

func TestProcessorThresholdIsLive(t *testing.T) {
	cfg := newTestConfig(t)
	p := New(logr.Discard(), cfg)
	defer p.Close()
	tbl, rng := newTestRange(t)

	if err := cfg.SetMaxCellCount(3); err != nil {
		t.Fatal(err)
	}
	p.BeforeChange(tbl, rng)
	props, _ := p.Captured()
	if props.HasData() {
		t.Error("range above the threshold stored its data")
	}

	if err := cfg.SetMaxCellCount(4); err != nil {
		t.Fatal(err)
	}
	p.BeforeChange(tbl, rng)
	props, _ = p.Captured()
	if !props.HasData() {
		t.Error("range at the threshold did not store its data")
	}
}

func TestProcessorSetLogger(t *testing.T) {
	p := New(logr.Discard(), newTestConfig(t))
	defer p.Close()
	tbl, rng := newTestRange(t)

	var lines []string
	p.SetLogger(funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{}))

	tbl.FailReads(errors.New("locked by host"))
	p.BeforeChange(tbl, rng)

	if len(lines) != 1 || !strings.Contains(lines[0], "locked by host") {
		t.Errorf("log = %q, want one read failure", lines)
	}
	if !strings.Contains(lines[0], "processor/memory") {
		t.Errorf("log prefix = %q, want processor/memory", lines[0])
	}

	p.SetLogger(logr.Logger{})
	p.BeforeChange(tbl, rng)
	if len(lines) != 1 {
		t.Errorf("zero logger still wrote to the old sink: %q", lines)
	}
}
