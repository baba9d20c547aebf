package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/tidwall/gjson"

	"github.com/dshills/rangewatch/internal/config"
	"github.com/dshills/rangewatch/internal/workbook"
)

func newTestCLI(t *testing.T) *cli {
	t.Helper()
	cfg := config.New(config.WithEnvironment(false))
	t.Cleanup(cfg.Close)
	return &cli{cfg: cfg, log: logr.Discard()}
}

// writeBook saves a workbook whose Sheet1 holds rows.
func writeBook(t *testing.T, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	wb := workbook.New(path)
	defer wb.Close()

	s, err := wb.Sheet("Sheet1")
	if err != nil {
		t.Fatal(err)
	}
	for r, row := range rows {
		for c, v := range row {
			ref := string(rune('A'+c)) + string(rune('1'+r))
			if err := s.SetCell(ref, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := wb.Save(); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiffWorkbooks(t *testing.T) {
	before := writeBook(t, "before.xlsx", [][]string{{"a", "1"}, {"b", "2"}})
	after := writeBook(t, "after.xlsx", [][]string{{"a", "1"}, {"b", "3"}})

	var out bytes.Buffer
	err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, rng: "A1:B2",
	}, &out)
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Change: data", "Location matches", "Sheet1", "A1:B2"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDiffUnchanged(t *testing.T) {
	rows := [][]string{{"x", "y"}}
	before := writeBook(t, "before.xlsx", rows)
	after := writeBook(t, "after.xlsx", rows)

	var out bytes.Buffer
	if err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, rng: "A1:B1",
	}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Change: none") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDiffCSVJSON(t *testing.T) {
	before := writeFile(t, "prices.csv", "apple,1\npear,2\n")
	after := writeFile(t, "prices.csv", "apple,1\npear,2\nplum,3\n")

	var out bytes.Buffer
	err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, rng: "1:1", json: true,
	}, &out)
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}

	line := strings.TrimSpace(out.String())
	if !gjson.Valid(line) {
		t.Fatalf("invalid JSON: %s", line)
	}
	if got := gjson.Get(line, "kind").String(); got != "row-inserted" {
		t.Errorf("kind = %q, want row-inserted", got)
	}
	if got := gjson.Get(line, "sheet").String(); got != "prices" {
		t.Errorf("sheet = %q, want prices", got)
	}
}

func TestDiffHighlight(t *testing.T) {
	before := writeBook(t, "before.xlsx", [][]string{{"1"}})
	after := writeBook(t, "after.xlsx", [][]string{{"2"}})
	output := filepath.Join(t.TempDir(), "highlighted.xlsx")

	var out bytes.Buffer
	err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, rng: "A1", highlight: true, output: output,
	}, &out)
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("highlighted workbook not saved: %v", err)
	}
}

func TestDiffHighlightCSV(t *testing.T) {
	before := writeFile(t, "a.csv", "1\n")
	after := writeFile(t, "b.csv", "2\n")

	err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, sheet: "S", rng: "A1", highlight: true,
	}, &bytes.Buffer{})
	if !errors.Is(err, errFillUnsupported) {
		t.Errorf("runDiff() error = %v, want %v", err, errFillUnsupported)
	}
}

func TestDiffDisabled(t *testing.T) {
	c := newTestCLI(t)
	if err := c.cfg.SetChangeHandlingEnabled(false); err != nil {
		t.Fatal(err)
	}
	err := runDiff(context.Background(), c, diffOptions{before: "a.xlsx", after: "b.xlsx", rng: "A1"}, &bytes.Buffer{})
	if !errors.Is(err, errDisabled) {
		t.Errorf("runDiff() error = %v, want %v", err, errDisabled)
	}
}

func TestDiffErrors(t *testing.T) {
	good := writeBook(t, "good.xlsx", [][]string{{"1"}})

	tests := []struct {
		name string
		opts diffOptions
	}{
		{"unsupported type", diffOptions{before: "notes.txt", after: good, rng: "A1"}},
		{"missing file", diffOptions{before: filepath.Join(t.TempDir(), "nope.xlsx"), after: good, rng: "A1"}},
		{"missing sheet", diffOptions{before: good, after: good, sheet: "Nope", rng: "A1"}},
		{"bad range", diffOptions{before: good, after: good, rng: "A1:"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runDiff(context.Background(), newTestCLI(t), tt.opts, &bytes.Buffer{}); err == nil {
				t.Error("runDiff() should fail")
			}
		})
	}
}

func TestDiffScript(t *testing.T) {
	before := writeBook(t, "before.xlsx", [][]string{{"1"}})
	after := writeBook(t, "after.xlsx", [][]string{{"2"}})
	script := writeFile(t, "guard.lua", `function handle_change(c) if c.kind == "data" then return "frozen" end end`)

	err := runDiff(context.Background(), newTestCLI(t), diffOptions{
		before: before, after: after, rng: "A1", script: script,
	}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "frozen") {
		t.Errorf("runDiff() error = %v, want script failure", err)
	}
}

func TestVersionCommand(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"version", "--format", format})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if format == "json" {
				if got := gjson.Get(out.String(), "version").String(); got != version {
					t.Errorf("version = %q, want %q", got, version)
				}
			} else if !strings.Contains(out.String(), version) {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	_, level, err := newZapLogger("info")
	if err != nil {
		t.Fatal(err)
	}
	if err := setLevel(level, "debug"); err != nil {
		t.Errorf("setLevel(debug) error = %v", err)
	}
	if got := level.Level().String(); got != "debug" {
		t.Errorf("level = %s, want debug", got)
	}
	if err := setLevel(level, "loud"); err == nil {
		t.Error("setLevel(loud) should fail")
	}
}
