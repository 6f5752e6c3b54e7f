// Package handler provides the handler contract, execution context, and
// result types for tool dispatch.
package handler

import (
	"log/slog"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/content"
	"github.com/dshills/redline/internal/engine/edit"
	"github.com/dshills/redline/internal/engine/paragraph"
	"github.com/dshills/redline/internal/engine/redline"
	"github.com/dshills/redline/internal/engine/search"
	"github.com/dshills/redline/internal/request"
)

// Context carries everything a handler needs for one tool call: the
// resolved document handle, the engine services, and call defaults. The
// dispatcher builds a fresh context per request.
type Context struct {
	// Doc is the active document, nil when none is open.
	Doc *document.Handle

	// Engine services.
	Paragraphs *paragraph.Service
	Edits      *edit.Service
	Search     *search.Service
	Changes    *redline.Service
	Content    *content.Service

	// Author is the default attribution for comments.
	Author string

	// Log is the request-scoped logger.
	Log *slog.Logger
}

// Handler processes a specific tool or set of tools.
type Handler interface {
	// Handle executes the tool call and returns a result.
	Handle(req request.Request, ctx *Context) Result

	// CanHandle returns true if this handler can process the tool.
	CanHandle(name string) bool
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc func(req request.Request, ctx *Context) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(req request.Request, ctx *Context) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(req, ctx)
}

// CanHandle implements Handler. A bare function accepts any name; the
// caller must ensure correct routing.
func (f HandlerFunc) CanHandle(string) bool { return true }
