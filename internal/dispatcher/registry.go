package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/redline/internal/dispatcher/handler"
)

// Registry manages handler registration by exact tool name. One handler
// serves each name; registering again replaces the previous handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]handler.Handler),
	}
}

// Register adds a handler for a tool name.
func (r *Registry) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Unregister removes the handler for a tool name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// Get returns the handler for a tool, or nil when none is registered.
func (r *Registry) Get(name string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[name]
}

// Has returns true if a handler is registered for the tool.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// List returns all registered tool names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string]handler.Handler)
}
