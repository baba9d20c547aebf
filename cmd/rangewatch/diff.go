package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dshills/rangewatch/internal/app"
	"github.com/dshills/rangewatch/internal/handler"
	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// errDisabled is returned when configuration turns change handling off.
var errDisabled = errors.New("change handling is disabled (changeHandling.enabled = false)")

type diffOptions struct {
	before    string
	after     string
	sheet     string
	rng       string
	highlight bool
	output    string
	script    string
	json      bool
}

func newDiffCmd(c *cli) *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff --before FILE --after FILE --range A1:C9",
		Short: "Compare a range between two versions of a workbook",
		Long: `diff captures the range from the --before file, observes it again in the
--after file and reports the change. Files may be xlsx or CSV.

With --highlight the range is filled in the --after workbook when its data
changed or rows or columns were inserted, and the workbook is saved to
--output (default: the --after file).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(commandContext(cmd), c, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.before, "before", "", "File holding the range before the edit")
	f.StringVar(&opts.after, "after", "", "File holding the range after the edit")
	f.StringVar(&opts.sheet, "sheet", "", "Sheet name (default: first sheet)")
	f.StringVar(&opts.rng, "range", "", "Range address, e.g. A1:C9, 3:3 or B:B")
	f.BoolVar(&opts.highlight, "highlight", false, "Fill the changed range in the --after workbook")
	f.StringVar(&opts.output, "output", "", "Where to save the highlighted workbook")
	f.StringVar(&opts.script, "script", "", "Lua script defining handle_change(change)")
	f.BoolVar(&opts.json, "json", false, "Print the change as a JSON line instead of tables")
	for _, name := range []string{"before", "after", "range"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runDiff(ctx context.Context, c *cli, opts diffOptions, out io.Writer) error {
	if !c.cfg.ChangeHandlingEnabled() {
		return errDisabled
	}

	before, beforeRange, err := openRange(c.log, opts.before, opts.sheet, opts.rng)
	if err != nil {
		return err
	}
	defer before.close()

	after, afterRange, err := openRange(c.log, opts.after, opts.sheet, opts.rng)
	if err != nil {
		return err
	}
	defer after.close()

	api, err := app.New(app.Options{Config: c.cfg, Logger: c.log})
	if err != nil {
		return err
	}
	defer api.Close()

	var result memory.Comparison
	if err := api.AddCustomHandler(handler.Func(func(_ context.Context, cmp memory.Comparison, _ sheet.Worksheet, _ sheet.Range) error {
		result = cmp
		return nil
	})); err != nil {
		return err
	}

	if opts.highlight {
		colour, err := c.cfg.HighlightColour()
		if err != nil {
			return err
		}
		if err := api.AddCustomHandler(api.Factory().NewHighlighter(colour)); err != nil {
			return err
		}
	}
	if opts.script != "" {
		if err := api.AddScriptHandler(opts.script); err != nil {
			return err
		}
	}
	if opts.json {
		if err := api.AddCustomHandler(handler.NewJSONLog(out, handler.WithUnchanged(true))); err != nil {
			return err
		}
	}

	api.BeforeChange(before.ws, beforeRange)
	handlerErr := api.AfterChange(ctx, after.ws, afterRange)

	if !opts.json {
		if err := writeComparison(out, result); err != nil {
			return err
		}
	}

	if opts.highlight {
		path := opts.output
		if path == "" {
			path = opts.after
		}
		if err := after.saveAs(path); err != nil {
			return errors.Join(handlerErr, fmt.Errorf("saving highlight: %w", err))
		}
	}
	return handlerErr
}

// openRange opens a file and resolves the range address in it.
func openRange(log logr.Logger, path, sheetName, address string) (*source, sheet.Range, error) {
	src, err := openSource(log, path, sheetName)
	if err != nil {
		return nil, nil, err
	}
	rng, err := src.rangeAt(address)
	if err != nil {
		_ = src.close()
		return nil, nil, err
	}
	return src, rng, nil
}
