// Package changes provides handlers for track-changes tools.
package changes

import (
	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/request"
)

// Tool names for track-changes operations.
const (
	ToolStatus         = "get_track_changes_status"
	ToolSetTracking    = "set_track_changes"
	ToolList           = "get_tracked_changes"
	ToolAccept         = "accept_tracked_change"
	ToolReject         = "reject_tracked_change"
	ToolAcceptAll      = "accept_all_changes"
	ToolRejectAll      = "reject_all_changes"
	ToolChangesPreview = "get_changes_preview"
)

// ChangesHandler handles track-changes tools.
type ChangesHandler struct{}

// NewChangesHandler creates a new track-changes handler.
func NewChangesHandler() *ChangesHandler {
	return &ChangesHandler{}
}

// Names returns every tool name this handler serves.
func (h *ChangesHandler) Names() []string {
	return []string{
		ToolStatus, ToolSetTracking, ToolList,
		ToolAccept, ToolReject, ToolAcceptAll, ToolRejectAll,
		ToolChangesPreview,
	}
}

// CanHandle returns true if this handler can process the tool.
func (h *ChangesHandler) CanHandle(name string) bool {
	switch name {
	case ToolStatus, ToolSetTracking, ToolList,
		ToolAccept, ToolReject, ToolAcceptAll, ToolRejectAll,
		ToolChangesPreview:
		return true
	}
	return false
}

// Handle processes a track-changes tool call.
func (h *ChangesHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	switch req.Name {
	case ToolStatus:
		return h.status(ctx)
	case ToolSetTracking:
		return h.setTracking(req, ctx)
	case ToolList:
		return h.list(ctx)
	case ToolAccept:
		return h.accept(req, ctx)
	case ToolReject:
		return h.reject(req, ctx)
	case ToolAcceptAll:
		return h.acceptAll(ctx)
	case ToolRejectAll:
		return h.rejectAll(ctx)
	case ToolChangesPreview:
		return h.preview(ctx)
	default:
		return handler.Errorf("unknown changes tool: %s", req.Name)
	}
}

// status reports the recording and display flags plus the backlog size.
func (h *ChangesHandler) status(ctx *handler.Context) handler.Result {
	st, err := ctx.Changes.Status(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"recording":     st.Recording,
		"showing":       st.Showing,
		"pending_count": st.Pending,
	})
}

// setTracking switches change recording on or off. The show flag
// defaults to true so freshly recorded changes stay visible.
func (h *ChangesHandler) setTracking(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("enabled") {
		return handler.Errorf("missing required parameter: enabled")
	}
	enabled := req.Args.GetBool("enabled")

	show := true
	if req.Args.Has("show") {
		show = req.Args.GetBool("show")
	}

	st, err := ctx.Changes.SetTracking(ctx.Doc, enabled, show)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"recording": st.Recording,
		"showing":   st.Showing,
	})
}

func (h *ChangesHandler) list(ctx *handler.Context) handler.Result {
	list, err := ctx.Changes.List(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"changes": list,
		"count":   len(list),
	})
}

func (h *ChangesHandler) accept(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("index") {
		return handler.Errorf("missing required parameter: index")
	}
	index := req.Args.GetInt("index")

	if err := ctx.Changes.Accept(ctx.Doc, index); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"accepted_index": index})
}

func (h *ChangesHandler) reject(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("index") {
		return handler.Errorf("missing required parameter: index")
	}
	index := req.Args.GetInt("index")

	if err := ctx.Changes.Reject(ctx.Doc, index); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"rejected_index": index})
}

func (h *ChangesHandler) acceptAll(ctx *handler.Context) handler.Result {
	n, err := ctx.Changes.AcceptAll(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"accepted_count": n})
}

func (h *ChangesHandler) rejectAll(ctx *handler.Context) handler.Result {
	n, err := ctx.Changes.RejectAll(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"rejected_count": n})
}

func (h *ChangesHandler) preview(ctx *handler.Context) handler.Result {
	p, err := ctx.Changes.Preview(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"pending_count": p.Pending,
		"insertions":    p.Insertions,
		"deletions":     p.Deletions,
		"hunks":         p.Hunks,
	})
}
