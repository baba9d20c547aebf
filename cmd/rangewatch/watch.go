package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dshills/rangewatch/internal/app"
	"github.com/dshills/rangewatch/internal/config/watcher"
	"github.com/dshills/rangewatch/internal/handler"
	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

type watchOptions struct {
	file     string
	sheet    string
	rng      string
	script   string
	json     bool
	debounce time.Duration
}

func newWatchCmd(c *cli) *cobra.Command {
	var opts watchOptions

	cmd := &cobra.Command{
		Use:   "watch --file FILE --range A1:C9",
		Short: "Report changes to a range every time its file is saved",
		Long: `watch captures the range, then on every save of the file compares the
range with the previous capture, reports the change and captures again.
When --config is given the configuration file is watched as well, so the
storage threshold can be changed while running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(commandContext(cmd), c, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "xlsx or CSV file to watch")
	f.StringVar(&opts.sheet, "sheet", "", "Sheet name (default: first sheet)")
	f.StringVar(&opts.rng, "range", "", "Range address, e.g. A1:C9, 3:3 or B:B")
	f.StringVar(&opts.script, "script", "", "Lua script defining handle_change(change)")
	f.BoolVar(&opts.json, "json", false, "Print changes as JSON lines")
	f.DurationVar(&opts.debounce, "debounce", 250*time.Millisecond, "Quiet period before a save is processed")
	for _, name := range []string{"file", "range"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// rangeWatcher re-observes a range in a file.
type rangeWatcher struct {
	api   *app.API
	log   logr.Logger
	opts  watchOptions
	ready bool
}

// observe compares the file's current range with the last capture, then
// captures it again. The first call only captures.
func (rw *rangeWatcher) observe(ctx context.Context) error {
	src, rng, err := openRange(rw.log, rw.opts.file, rw.opts.sheet, rw.opts.rng)
	if err != nil {
		return err
	}
	defer src.close()

	var handlerErr error
	if rw.ready {
		handlerErr = rw.api.AfterChange(ctx, src.ws, rng)
	}
	rw.api.BeforeChange(src.ws, rng)
	rw.ready = true
	return handlerErr
}

func runWatch(ctx context.Context, c *cli, opts watchOptions, out io.Writer) error {
	api, err := app.New(app.Options{Config: c.cfg, Logger: c.log})
	if err != nil {
		return err
	}
	defer api.Close()

	if err := api.AddCustomHandler(api.Factory().NewLogger()); err != nil {
		return err
	}
	if opts.script != "" {
		if err := api.AddScriptHandler(opts.script); err != nil {
			return err
		}
	}
	if opts.json {
		err = api.AddCustomHandler(handler.NewJSONLog(out))
	} else {
		err = api.AddCustomHandler(summaryHandler(out))
	}
	if err != nil {
		return err
	}

	rw := &rangeWatcher{api: api, log: c.log, opts: opts}
	if err := rw.observe(ctx); err != nil {
		return err
	}

	w, err := watcher.New(watcher.WithLogger(c.log), watcher.WithDebounce(opts.debounce))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Watch(opts.file); err != nil {
		return fmt.Errorf("watching %s: %w", opts.file, err)
	}

	log := c.log.WithName("watch").WithValues("file", opts.file)
	w.OnChange(func(event watcher.Event) {
		if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
			log.Info("file removed, waiting for it to return")
			return
		}
		if err := rw.observe(ctx); err != nil {
			log.Error(err, "processing save")
		}
	})

	if c.cfg.Path() != "" {
		go func() {
			if err := c.cfg.Watch(ctx); err != nil {
				log.Error(err, "watching configuration")
			}
		}()
	}

	log.Info("watching", "range", opts.rng)
	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// summaryHandler prints one line per change that is not a no-op.
func summaryHandler(out io.Writer) handler.Handler {
	return handler.Func(func(_ context.Context, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) error {
		if c.Kind() == memory.NoChange {
			return nil
		}
		_, err := fmt.Fprintf(out, "%s %s!%s %s\n",
			time.Now().Format(time.TimeOnly), ws.Name(), rng.Address(), c.Kind())
		return err
	})
}
