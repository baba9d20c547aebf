package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/metric"

	"github.com/dshills/rangewatch/internal/config"
	"github.com/dshills/rangewatch/internal/handler"
	"github.com/dshills/rangewatch/internal/processor"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Options configures an API.
type Options struct {
	// Config supplies settings. If nil, a Config with defaults and the
	// environment layer is created and owned by the API.
	Config *config.Config

	// Logger receives diagnostics and the default log handler's records.
	Logger logr.Logger

	// Meter, if set, adds a metrics handler to the default handlers.
	Meter metric.Meter
}

// API reports edits of a watched range to its handlers.
type API struct {
	mu sync.RWMutex

	cfg        *config.Config
	ownsConfig bool
	log        logr.Logger
	meter      metric.Meter
	factory    *handler.Factory
	processor  *processor.Processor

	// closers are handlers holding resources, closed with the API.
	closers []io.Closer
	closed  bool
}

// New creates an API.
func New(opts Options) (*API, error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	cfg := opts.Config
	owns := false
	if cfg == nil {
		cfg = config.New(config.WithLogger(log))
		if err := cfg.Load(context.Background()); err != nil {
			cfg.Close()
			return nil, &OperationError{Op: "load configuration", Err: err}
		}
		owns = true
	}

	return &API{
		cfg:        cfg,
		ownsConfig: owns,
		log:        log,
		meter:      opts.Meter,
		factory:    handler.NewFactory(log),
		processor:  processor.New(log, cfg),
	}, nil
}

// SetLogger replaces the logger used for diagnostics, including range
// read failures, and by handlers created afterwards. Handlers already
// registered keep their logger.
func (a *API) SetLogger(log logr.Logger) {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	a.mu.Lock()
	a.log = log
	a.factory = handler.NewFactory(log)
	a.mu.Unlock()

	a.processor.SetLogger(log)
}

// Config returns the API's configuration.
func (a *API) Config() *config.Config {
	return a.cfg
}

// Factory returns the factory for the standard handlers.
func (a *API) Factory() *handler.Factory {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.factory
}

// Handlers returns the registered handlers in dispatch order.
func (a *API) Handlers() []handler.Handler {
	return a.processor.Handlers()
}

// ClearAllHandlers removes every handler.
func (a *API) ClearAllHandlers() {
	a.processor.ClearHandlers()
}

// AddDefaultHandlers registers the highlighter using the configured
// colour, then a metrics handler if a meter was given. Logging handlers
// are added explicitly with Factory().NewLogger().
func (a *API) AddDefaultHandlers() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	colour, err := a.cfg.HighlightColour()
	if err != nil {
		return &OperationError{Op: "add default handlers", Err: err}
	}

	handlers := []handler.Handler{a.factory.NewHighlighter(colour)}
	if a.meter != nil {
		m, err := handler.NewMetrics(a.meter)
		if err != nil {
			return &OperationError{Op: "add default handlers", Err: err}
		}
		handlers = append(handlers, m)
	}

	for _, h := range handlers {
		a.processor.AddHandler(h)
	}
	return nil
}

// AddCustomHandler registers h after the existing handlers. Handlers that
// implement io.Closer are closed with the API.
func (a *API) AddCustomHandler(h handler.Handler) error {
	if h == nil {
		return ErrNilHandler
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	if c, ok := h.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}
	a.processor.AddHandler(h)
	return nil
}

// AddScriptHandler registers a Lua handler loaded from path.
func (a *API) AddScriptHandler(path string) error {
	h, err := a.Factory().NewLuaFile(path)
	if err != nil {
		return &OperationError{Op: "add script handler", Target: path, Err: err}
	}
	if err := a.AddCustomHandler(h); err != nil {
		_ = h.Close()
		return err
	}
	return nil
}

// BeforeChange captures the range ahead of an edit.
func (a *API) BeforeChange(ws sheet.Worksheet, rng sheet.Range) {
	if !a.active() {
		return
	}
	a.processor.BeforeChange(ws, rng)
}

// AfterChange compares the range with the capture taken by BeforeChange
// and runs the handlers. The returned error joins every handler failure.
func (a *API) AfterChange(ctx context.Context, ws sheet.Worksheet, rng sheet.Range) error {
	if !a.active() {
		return nil
	}
	_, err := a.processor.AfterChange(ctx, ws, rng)
	return err
}

func (a *API) active() bool {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	return !closed && a.cfg.ChangeHandlingEnabled()
}

// Close releases handler resources. It is safe to call Close more than
// once.
func (a *API) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	a.processor.Close()
	a.processor.ClearHandlers()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.ownsConfig {
		a.cfg.Close()
	}
	return errors.Join(errs...)
}
