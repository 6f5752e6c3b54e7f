// Package navigate provides handlers for cursor navigation tools.
package navigate

import (
	"fmt"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/request"
)

// Tool names for navigation operations.
const (
	ToolGotoParagraph  = "goto_paragraph"
	ToolGotoPosition   = "goto_position"
	ToolCursorPosition = "get_cursor_position"
	ToolContext        = "get_context"
)

// defaultContextChars is how much text get_context returns on each side
// of the cursor when the caller does not say.
const defaultContextChars = 100

// NavigateHandler handles cursor navigation tools.
type NavigateHandler struct{}

// NewNavigateHandler creates a new navigation handler.
func NewNavigateHandler() *NavigateHandler {
	return &NavigateHandler{}
}

// Names returns every tool name this handler serves.
func (h *NavigateHandler) Names() []string {
	return []string{ToolGotoParagraph, ToolGotoPosition, ToolCursorPosition, ToolContext}
}

// CanHandle returns true if this handler can process the tool.
func (h *NavigateHandler) CanHandle(name string) bool {
	switch name {
	case ToolGotoParagraph, ToolGotoPosition, ToolCursorPosition, ToolContext:
		return true
	}
	return false
}

// Handle processes a navigation tool call.
func (h *NavigateHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	switch req.Name {
	case ToolGotoParagraph:
		return h.gotoParagraph(req, ctx)
	case ToolGotoPosition:
		return h.gotoPosition(req, ctx)
	case ToolCursorPosition:
		return h.cursorPosition(ctx)
	case ToolContext:
		return h.context(req, ctx)
	default:
		return handler.Errorf("unknown navigate tool: %s", req.Name)
	}
}

func (h *NavigateHandler) gotoParagraph(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("n") {
		return handler.Errorf("missing required parameter: n")
	}
	n := req.Args.GetInt("n")

	if _, err := ctx.Paragraphs.GotoParagraph(ctx.Doc, n); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"paragraph": n,
	}).WithMessage(fmt.Sprintf("Cursor moved to paragraph %d", n))
}

func (h *NavigateHandler) gotoPosition(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("char_pos") {
		return handler.Errorf("missing required parameter: char_pos")
	}
	pos := req.Args.GetInt("char_pos")

	move, err := ctx.Paragraphs.GotoPosition(ctx.Doc, pos)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"position":           move.Actual,
		"requested_position": move.Requested,
	}).WithMessage(fmt.Sprintf("Cursor moved to position %d", move.Actual))
}

func (h *NavigateHandler) cursorPosition(ctx *handler.Context) handler.Result {
	pos, err := ctx.Paragraphs.CursorPosition(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"position":  pos.Offset,
		"paragraph": pos.Paragraph,
	})
}

func (h *NavigateHandler) context(req request.Request, ctx *handler.Context) handler.Result {
	chars := defaultContextChars
	if req.Args.Has("chars") {
		chars = req.Args.GetInt("chars")
	}

	c, err := ctx.Paragraphs.Context(ctx.Doc, chars)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"before":          c.Before,
		"after":           c.After,
		"position":        c.Position,
		"chars_requested": c.Requested,
	})
}
