package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

func recordingLogger(verbosity int) (logr.Logger, *[]string) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{Verbosity: verbosity})
	return log, &lines
}

func TestInfoLogger(t *testing.T) {
	log, lines := recordingLogger(0)
	h := NewInfoLogger(log)
	s := changedScenario(t)

	if err := h.HandleChange(context.Background(), s.cmp, s.tbl, s.rng); err != nil {
		t.Fatalf("HandleChange() error = %v", err)
	}

	if len(*lines) != 1 {
		t.Fatalf("logged %d lines, want 1", len(*lines))
	}
	line := (*lines)[0]
	for _, want := range []string{`"range changed"`, `"kind"="data"`, `"range"="A1:B2"`, `"sheet"="Sheet1"`, "changes"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %s", line, want)
		}
	}
}

func TestInfoLoggerUnchangedIsVerbose(t *testing.T) {
	log, lines := recordingLogger(0)
	h := NewInfoLogger(log)
	s := unchangedScenario(t)

	_ = h.HandleChange(context.Background(), s.cmp, s.tbl, s.rng)
	if len(*lines) != 0 {
		t.Errorf("unchanged edit logged at info: %q", *lines)
	}

	log, lines = recordingLogger(1)
	h = NewInfoLogger(log)
	_ = h.HandleChange(context.Background(), s.cmp, s.tbl, s.rng)
	if len(*lines) != 1 {
		t.Errorf("unchanged edit not logged at V(1): %q", *lines)
	}
}

func TestFactory(t *testing.T) {
	log, lines := recordingLogger(0)
	f := NewFactory(log)
	s := changedScenario(t)

	if h, ok := f.NewHighlighter(42).(*Highlighter); !ok || h.Colour() != 42 {
		t.Errorf("NewHighlighter() = %#v", h)
	}

	_ = f.NewLogger().HandleChange(context.Background(), s.cmp, s.tbl, s.rng)
	if len(*lines) != 1 {
		t.Errorf("factory logger wrote %d lines, want 1", len(*lines))
	}

	other, otherLines := recordingLogger(0)
	_ = f.NewLoggerWith(other).HandleChange(context.Background(), s.cmp, s.tbl, s.rng)
	if len(*otherLines) != 1 || len(*lines) != 1 {
		t.Error("NewLoggerWith() should write only to the given logger")
	}
}
