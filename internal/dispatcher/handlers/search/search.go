// Package search provides handlers for find and replace tools.
package search

import (
	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/request"
)

// Tool names for search operations.
const (
	ToolFindText       = "find_text"
	ToolFindReplace    = "find_and_replace"
	ToolFindReplaceAll = "find_and_replace_all"
)

// SearchHandler handles find and replace tools.
type SearchHandler struct{}

// NewSearchHandler creates a new search handler.
func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Names returns every tool name this handler serves.
func (h *SearchHandler) Names() []string {
	return []string{ToolFindText, ToolFindReplace, ToolFindReplaceAll}
}

// CanHandle returns true if this handler can process the tool.
func (h *SearchHandler) CanHandle(name string) bool {
	switch name {
	case ToolFindText, ToolFindReplace, ToolFindReplaceAll:
		return true
	}
	return false
}

// Handle processes a search tool call.
func (h *SearchHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	switch req.Name {
	case ToolFindText:
		return h.findText(req, ctx)
	case ToolFindReplace:
		return h.findReplace(req, ctx)
	case ToolFindReplaceAll:
		return h.findReplaceAll(req, ctx)
	default:
		return handler.Errorf("unknown search tool: %s", req.Name)
	}
}

func (h *SearchHandler) findText(req request.Request, ctx *handler.Context) handler.Result {
	query := req.Args.GetString("query")

	res, err := ctx.Search.Find(ctx.Doc, query)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"matches":              res.Matches,
		"count":                len(res.Matches),
		"query":                query,
		"track_changes_active": res.TrackActive,
	})
}

// findReplace replaces the first visible occurrence. Finding nothing is
// a success with replaced false, not an error.
func (h *SearchHandler) findReplace(req request.Request, ctx *handler.Context) handler.Result {
	old := req.Args.GetString("old")
	new := req.Args.GetString("new")

	res, err := ctx.Search.ReplaceFirst(ctx.Doc, old, new)
	if err != nil {
		return handler.Error(err)
	}
	data := map[string]any{
		"replaced":             res.Replaced,
		"old":                  old,
		"new":                  new,
		"track_changes_active": res.TrackActive,
	}
	if res.Replaced {
		data["position"] = res.Position
	}
	return handler.SuccessWith(data)
}

func (h *SearchHandler) findReplaceAll(req request.Request, ctx *handler.Context) handler.Result {
	old := req.Args.GetString("old")
	new := req.Args.GetString("new")

	res, err := ctx.Search.ReplaceAll(ctx.Doc, old, new)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"count":                res.Count,
		"old":                  old,
		"new":                  new,
		"track_changes_active": res.TrackActive,
	})
}
