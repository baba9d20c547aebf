package processor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/dshills/rangewatch/internal/config"
	"github.com/dshills/rangewatch/internal/config/notify"
	"github.com/dshills/rangewatch/internal/handler"
	"github.com/dshills/rangewatch/internal/memory"
	"github.com/dshills/rangewatch/internal/sheet"
)

// Settings is the configuration a Processor reads.
type Settings interface {
	memory.Limits
	SubscribePath(path string, observer notify.Observer) *notify.Subscription
}

// Processor owns the snapshot of one watched range and its handlers.
type Processor struct {
	mu       sync.Mutex
	log      logr.Logger
	memory   *memory.Memory
	handlers []handler.Handler
	eventID  string

	sub *notify.Subscription
}

// Option configures a Processor.
type Option func(*Processor)

// WithHandlers registers handlers at construction.
func WithHandlers(handlers ...handler.Handler) Option {
	return func(p *Processor) {
		p.handlers = append(p.handlers, handlers...)
	}
}

// New creates a Processor reading its threshold from settings.
func New(log logr.Logger, settings Settings, opts ...Option) *Processor {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	log = log.WithName("processor")

	p := &Processor{
		log:    log,
		memory: memory.New(log, settings),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.sub = settings.SubscribePath(config.SectionMemory, func(change notify.Change) {
		p.logger().V(1).Info("memory settings changed, dropping capture",
			"path", change.Path, "change", change.Type.String())
		p.Invalidate()
	})
	return p
}

// SetLogger replaces the logger of the processor and its memory. A zero
// logr.Logger discards output.
func (p *Processor) SetLogger(log logr.Logger) {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	log = log.WithName("processor")

	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = log
	p.memory.SetLogger(log)
}

func (p *Processor) logger() logr.Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.log
}

// AddHandler appends a handler.
func (p *Processor) AddHandler(h handler.Handler) {
	if h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, h)
}

// ClearHandlers removes every handler.
func (p *Processor) ClearHandlers() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = nil
}

// Handlers returns the registered handlers in dispatch order.
func (p *Processor) Handlers() []handler.Handler {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]handler.Handler, len(p.handlers))
	copy(out, p.handlers)
	return out
}

// BeforeChange captures the range ahead of an edit.
func (p *Processor) BeforeChange(ws sheet.Worksheet, rng sheet.Range) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.eventID = uuid.NewString()
	p.memory.Capture(ws, rng)
	p.log.V(1).Info("captured range", "event", p.eventID, "sheet", ws.Name(), "range", rng.Address())
}

// AfterChange compares the range with the last capture and dispatches the
// comparison to every handler. Handlers run outside the processor lock so
// they may call back into the processor or change configuration.
func (p *Processor) AfterChange(ctx context.Context, ws sheet.Worksheet, rng sheet.Range) (memory.Comparison, error) {
	p.mu.Lock()
	c := p.memory.Compare(ws, rng)
	eventID := p.eventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	p.eventID = ""
	handlers := make([]handler.Handler, len(p.handlers))
	copy(handlers, p.handlers)
	log := p.log
	p.mu.Unlock()

	log = log.WithValues("event", eventID, "sheet", ws.Name(), "range", rng.Address())
	log.V(1).Info("compared range", "kind", c.Kind().String())

	var errs []error
	for i, h := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := p.run(ctx, h, c, ws, rng); err != nil {
			log.Error(err, "change handler failed", "handler", i)
			errs = append(errs, err)
		}
	}
	return c, errors.Join(errs...)
}

// Invalidate drops the current capture.
func (p *Processor) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.memory.Invalidate()
	p.eventID = ""
}

// Captured returns the current capture, if any.
func (p *Processor) Captured() (memory.Properties, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.memory.Current()
}

// Close stops listening for configuration changes.
func (p *Processor) Close() {
	if p.sub != nil {
		p.sub.Unsubscribe()
	}
}

// run calls a handler with panic recovery.
func (p *Processor) run(ctx context.Context, h handler.Handler, c memory.Comparison, ws sheet.Worksheet, rng sheet.Range) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("handler panic: %v\n%s", r, stack[:n])
		}
	}()
	return h.HandleChange(ctx, c, ws, rng)
}
