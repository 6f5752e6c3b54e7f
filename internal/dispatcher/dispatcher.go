// Package dispatcher routes tool calls to handlers and coordinates
// execution: per-request context construction, panic recovery, metrics,
// and correlation logging.
package dispatcher

import (
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/content"
	"github.com/dshills/redline/internal/engine/edit"
	"github.com/dshills/redline/internal/engine/paragraph"
	"github.com/dshills/redline/internal/engine/redline"
	"github.com/dshills/redline/internal/engine/search"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/request"
)

// Resolver returns the active document handle, nil when none is open.
// The dispatcher calls it once per request.
type Resolver func() *document.Handle

// Dispatcher routes tool calls to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	resolver Resolver
	config   Config
	metrics  *Metrics
	log      *slog.Logger

	paragraphs *paragraph.Service
	edits      *edit.Service
	search     *search.Service
	changes    *redline.Service
	content    *content.Service
}

// New creates a dispatcher with the given configuration.
func New(config Config, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}

	d := &Dispatcher{
		registry:   NewRegistry(),
		config:     config,
		log:        log,
		paragraphs: paragraph.NewService(log),
		edits:      edit.NewService(log),
		search:     search.NewService(log),
		changes:    redline.NewService(log),
		content:    content.NewService(log),
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig(), nil)
}

// SetResolver sets the active-document resolver.
func (d *Dispatcher) SetResolver(r Resolver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resolver = r
}

// RegisterHandler registers h under every given tool name.
func (d *Dispatcher) RegisterHandler(h handler.Handler, names ...string) {
	for _, name := range names {
		d.registry.Register(name, h)
	}
}

// Dispatch executes one tool call synchronously.
func (d *Dispatcher) Dispatch(req request.Request) handler.Result {
	start := time.Now()

	ctx := d.buildContext()

	h := d.registry.Get(req.Name)
	if h == nil {
		result := handler.Errorf("unknown tool: %s", req.Name)
		d.finish(req, result, time.Since(start))
		return result
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, req, ctx)
	} else {
		result = h.Handle(req, ctx)
	}

	d.finish(req, result, time.Since(start))
	return result
}

// executeWithRecovery executes a handler with panic recovery. The stack
// goes to the log; the caller gets a short error.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, req request.Request, ctx *handler.Context) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			d.log.Error("handler panic",
				"id", req.ID,
				"tool", req.Name,
				"panic", r,
				"stack", string(stack[:n]),
			)

			result = handler.Errorf("internal error handling %s", req.Name)

			if d.metrics != nil {
				d.metrics.RecordPanic(req.Name)
			}
		}
	}()

	return h.Handle(req, ctx)
}

// buildContext builds a per-request execution context.
func (d *Dispatcher) buildContext() *handler.Context {
	d.mu.RLock()
	resolver := d.resolver
	d.mu.RUnlock()

	ctx := &handler.Context{
		Paragraphs: d.paragraphs,
		Edits:      d.edits,
		Search:     d.search,
		Changes:    d.changes,
		Content:    d.content,
		Author:     d.config.DefaultAuthor,
		Log:        d.log,
	}
	if resolver != nil {
		ctx.Doc = resolver()
	}
	return ctx
}

// finish records metrics and writes the correlation log line.
func (d *Dispatcher) finish(req request.Request, result handler.Result, elapsed time.Duration) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(req.Name, elapsed, result.Status)
	}

	if result.IsError() {
		d.log.Warn("tool call failed",
			"id", req.ID,
			"tool", req.Name,
			"source", req.Source.String(),
			"duration", elapsed,
			"error", result.Error,
		)
		return
	}
	d.log.Info("tool call",
		"id", req.ID,
		"tool", req.Name,
		"source", req.Source.String(),
		"duration", elapsed,
		"status", result.Status.String(),
	)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil when disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
