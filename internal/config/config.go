package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-logr/logr"

	"github.com/dshills/rangewatch/internal/config/layer"
	"github.com/dshills/rangewatch/internal/config/loader"
	"github.com/dshills/rangewatch/internal/config/notify"
	"github.com/dshills/rangewatch/internal/config/watcher"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "RANGEWATCH_"

const (
	layerDefaults = "defaults"
	layerFile     = "file"
	layerEnv      = "environment"
	layerSession  = "session"
)

// Config provides unified access to rangewatch settings.
type Config struct {
	// mu serialises layer updates so that change notifications carry
	// consistent before and after values.
	mu sync.Mutex

	layers   *layer.Manager
	notifier *notify.Notifier
	log      logr.Logger

	path      string
	fs        loader.FileSystem
	envPrefix string
	environ   bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the configuration file. The format is chosen by the
// extension: .toml, .yaml or .yml.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem sets the file system the config file is read from.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnvironment enables or disables the environment layer.
func WithEnvironment(enable bool) Option {
	return func(c *Config) {
		c.environ = enable
	}
}

// WithLogger sets the logger for reload failures.
func WithLogger(log logr.Logger) Option {
	return func(c *Config) {
		c.log = log
	}
}

// New creates a Config holding only the built-in defaults. Call Load to
// read the file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		layers:    layer.NewManager(),
		notifier:  notify.New(),
		log:       logr.Discard(),
		fs:        loader.DefaultFS(),
		envPrefix: DefaultEnvPrefix,
		environ:   true,
	}

	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithName("config")

	c.layers.AddLayer(layer.NewWithData(layerDefaults, layer.SourceBuiltin, defaultConfig()))

	return c
}

// Load loads configuration from the file and the environment. A missing
// file is not an error.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadFile(); err != nil {
		return err
	}
	if c.environ {
		if err := c.loadEnvironment(); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the configuration file path, or "".
func (c *Config) Path() string {
	return c.path
}

// Reload re-reads the config file and notifies observers.
func (c *Config) Reload() error {
	c.mu.Lock()
	err := c.loadFile()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.notifier.NotifyReload(c.path)
	return nil
}

// Watch reloads the config file whenever it changes, until ctx is
// cancelled. Reload failures are logged and the previous values kept.
func (c *Config) Watch(ctx context.Context) error {
	if c.path == "" {
		return ErrNoFile
	}

	w, err := watcher.New(watcher.WithLogger(c.log))
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	defer w.Close()

	if err := w.Watch(c.path); err != nil {
		return fmt.Errorf("watching %s: %w", c.path, err)
	}

	w.OnChange(func(event watcher.Event) {
		if event.Op == watcher.OpRemove || event.Op == watcher.OpRename {
			c.log.Info("config file removed, keeping current values", "path", event.Path)
			return
		}
		if err := c.Reload(); err != nil {
			c.log.Error(err, "reloading config", "path", event.Path)
			return
		}
		c.log.V(1).Info("config reloaded", "path", event.Path)
	})

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	c.notifier.Close()
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	return c.layers.Get(path)
}

// Source returns the name of the layer providing path.
func (c *Config) Source(path string) string {
	return c.layers.Which(path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	n, err := c.GetInt64(path)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt || n < math.MinInt {
		return 0, &TypeError{Path: path, Expected: "int", Actual: "int64"}
	}
	return int(n), nil
}

// GetInt64 returns a 64-bit integer value at the given path. Floats are
// accepted when they hold a whole number.
func (c *Config) GetInt64(path string) (int64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return n, nil
}

// GetBool returns a boolean value at the given path. The integers 0 and 1
// are accepted.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case int64:
		if val == 0 || val == 1 {
			return val == 1, nil
		}
	}
	return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
}

// Set sets a value in the session layer and notifies observers. Values
// for known settings are validated first.
func (c *Config) Set(path string, value any) error {
	if err := validate(path, value); err != nil {
		return err
	}

	c.mu.Lock()
	oldValue, _ := c.layers.Get(path)
	if err := c.layers.Set(layerSession, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	newValue, _ := c.layers.Get(path)
	c.mu.Unlock()

	c.notifier.NotifySet(path, oldValue, newValue, layerSession)
	return nil
}

// Subscribe registers an observer for all configuration changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes at or below path and
// for reloads.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// loadFile replaces the file layer. Must be called with c.mu held.
func (c *Config) loadFile() error {
	if c.path == "" {
		return nil
	}

	l, err := loader.ForPathWithFS(c.fs, c.path)
	if err != nil {
		return err
	}
	data, err := l.Load()
	if err != nil {
		return err
	}
	if data == nil {
		c.layers.RemoveLayer(layerFile)
		return nil
	}
	if err := validateAll(data); err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}

	fileLayer := layer.NewWithData(layerFile, layer.SourceFile, data)
	fileLayer.Path = c.path
	c.layers.AddLayer(fileLayer)
	return nil
}

// loadEnvironment replaces the environment layer. Must be called with
// c.mu held.
func (c *Config) loadEnvironment() error {
	data, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := validateAll(data); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	c.layers.AddLayer(layer.NewWithData(layerEnv, layer.SourceEnv, data))
	return nil
}

func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case float64:
		if val != math.Trunc(val) || val >= math.MaxInt64 || val < math.MinInt64 {
			return 0, false
		}
		return int64(val), true
	default:
		return 0, false
	}
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int32, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
