// Package macro runs Lua scripts against the tool surface. Scripts get
// an office table whose call function routes back through the
// dispatcher, so a macro can do anything a sequence of tool calls can,
// atomically from the transport's point of view.
package macro

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/redline/internal/logging"
)

// ErrDisabled is returned when macro execution is switched off.
var ErrDisabled = errors.New("macro execution is disabled")

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 10 * time.Second

// Caller dispatches one tool call and returns its wire payload.
type Caller interface {
	Call(name string, args map[string]any) map[string]any
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(name string, args map[string]any) map[string]any

// Call invokes the function.
func (f CallerFunc) Call(name string, args map[string]any) map[string]any {
	return f(name, args)
}

// Executor runs macros one at a time. Each run gets a fresh sandboxed
// Lua state, so scripts cannot leak globals into each other.
type Executor struct {
	mu      sync.Mutex
	caller  Caller
	timeout time.Duration
	log     *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger scripts write to through office.log.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an executor routing office.call through caller.
func New(caller Caller, opts ...Option) *Executor {
	e := &Executor{
		caller:  caller,
		timeout: DefaultTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one script and returns its first return value converted
// to a Go value. Runs are serialized; the configured timeout applies on
// top of ctx.
func (e *Executor) Run(ctx context.Context, source string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	sandbox(L)
	e.installOffice(L)

	fn, err := L.LoadString(source)
	if err != nil {
		return nil, fmt.Errorf("macro: compile: %w", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("macro: %w", ctx.Err())
		}
		return nil, fmt.Errorf("macro: run: %w", err)
	}

	if L.GetTop() == 0 {
		return nil, nil
	}
	return toGoValue(L.Get(1)), nil
}

// installOffice registers the office table: call routes a tool call
// through the dispatcher, log writes to the server log.
func (e *Executor) installOffice(L *lua.LState) {
	office := L.NewTable()

	L.SetField(office, "call", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		var args map[string]any
		if L.GetTop() >= 2 {
			if m, ok := toGoValue(L.CheckTable(2)).(map[string]any); ok {
				args = m
			}
		}

		payload := e.caller.Call(name, args)
		L.Push(toLuaValue(L, normalize(payload)))
		return 1
	}))

	L.SetField(office, "log", L.NewFunction(func(L *lua.LState) int {
		e.log.Info("macro log", "message", L.CheckString(1))
		return 0
	}))

	L.SetGlobal("office", office)
}

// sandbox strips the state down to pure computation. Scripts reach the
// outside world only through the office table.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("io", lua.LNil)

	// Keep the clock functions, drop everything else os offers.
	if osTable, ok := L.GetGlobal("os").(*lua.LTable); ok {
		kept := L.NewTable()
		for _, name := range []string{"time", "clock", "date", "difftime"} {
			L.SetField(kept, name, L.GetField(osTable, name))
		}
		L.SetGlobal("os", kept)
	}

	// No module loading from disk.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}
