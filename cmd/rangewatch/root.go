package main

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/rangewatch/internal/config"
	"github.com/dshills/rangewatch/internal/config/notify"
)

// cli holds the state shared by every command.
type cli struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	log   logr.Logger
	level zap.AtomicLevel
	zl    *zap.Logger
	sub   *notify.Subscription
}

func newRootCmd() *cobra.Command {
	c := &cli{log: logr.Discard()}

	root := &cobra.Command{
		Use:   "rangewatch",
		Short: "Report how a spreadsheet range changed between two observations",
		Long: `rangewatch captures a range of a worksheet, compares it with a later
observation of the same range, and reports whether its data changed or
rows or columns were inserted or deleted.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(commandContext(cmd))
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.teardown()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a TOML or YAML configuration file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides logging.level")

	root.AddCommand(newDiffCmd(c))
	root.AddCommand(newWatchCmd(c))
	root.AddCommand(newVersionCmd())
	return root
}

// setup builds the logger and loads configuration. The logger starts at
// info and is re-levelled once the configured level is known.
func (c *cli) setup(ctx context.Context) error {
	zl, level, err := newZapLogger("info")
	if err != nil {
		return err
	}
	c.zl = zl
	c.level = level
	c.log = newLogr(zl)

	opts := []config.Option{config.WithLogger(c.log)}
	if c.configPath != "" {
		opts = append(opts, config.WithFile(c.configPath))
	}
	c.cfg = config.New(opts...)
	if err := c.cfg.Load(ctx); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	name := c.cfg.LogLevel()
	if c.logLevel != "" {
		name = c.logLevel
	}
	if err := setLevel(c.level, name); err != nil {
		return err
	}

	if c.logLevel == "" {
		c.sub = c.cfg.SubscribePath(config.PathLogLevel, func(notify.Change) {
			if err := setLevel(c.level, c.cfg.LogLevel()); err != nil {
				c.log.Error(err, "applying log level")
			}
		})
	}
	return nil
}

func (c *cli) teardown() {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
	if c.cfg != nil {
		c.cfg.Close()
	}
	if c.zl != nil {
		_ = c.zl.Sync()
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
