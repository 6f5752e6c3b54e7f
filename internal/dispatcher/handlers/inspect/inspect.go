// Package inspect provides handlers for document inspection tools.
package inspect

import (
	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/request"
)

// Tool names for inspection operations.
const (
	ToolDocumentInfo    = "get_document_info"
	ToolTextContent     = "get_text_content"
	ToolParagraphCount  = "get_paragraph_count"
	ToolDocumentOutline = "get_document_outline"
	ToolParagraph       = "get_paragraph"
	ToolParagraphsRange = "get_paragraphs_range"
	ToolComments        = "get_comments"
)

// InspectHandler handles read-only inspection tools.
type InspectHandler struct{}

// NewInspectHandler creates a new inspection handler.
func NewInspectHandler() *InspectHandler {
	return &InspectHandler{}
}

// Names returns every tool name this handler serves.
func (h *InspectHandler) Names() []string {
	return []string{
		ToolDocumentInfo, ToolTextContent, ToolParagraphCount,
		ToolDocumentOutline, ToolParagraph, ToolParagraphsRange,
		ToolComments,
	}
}

// CanHandle returns true if this handler can process the tool.
func (h *InspectHandler) CanHandle(name string) bool {
	switch name {
	case ToolDocumentInfo, ToolTextContent, ToolParagraphCount,
		ToolDocumentOutline, ToolParagraph, ToolParagraphsRange,
		ToolComments:
		return true
	}
	return false
}

// Handle processes an inspection tool call.
func (h *InspectHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	switch req.Name {
	case ToolDocumentInfo:
		return h.documentInfo(ctx)
	case ToolTextContent:
		return h.textContent(ctx)
	case ToolParagraphCount:
		return h.paragraphCount(ctx)
	case ToolDocumentOutline:
		return h.outline(ctx)
	case ToolParagraph:
		return h.paragraph(req, ctx)
	case ToolParagraphsRange:
		return h.paragraphsRange(req, ctx)
	case ToolComments:
		return h.comments(ctx)
	default:
		return handler.Errorf("unknown inspect tool: %s", req.Name)
	}
}

func (h *InspectHandler) documentInfo(ctx *handler.Context) handler.Result {
	info, err := ctx.Content.Info(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"title":           info.Title,
		"url":             info.URL,
		"type":            info.Kind,
		"modified":        info.Modified,
		"word_count":      info.WordCount,
		"character_count": info.CharacterCount,
		"paragraph_count": info.ParagraphCount,
		"track_changes":   info.TrackChanges,
		"has_selection":   info.HasSelection,
	})
}

func (h *InspectHandler) textContent(ctx *handler.Context) handler.Result {
	td, err := ctx.Content.Text(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	data := map[string]any{
		"content": td.Content,
		"length":  td.Length,
	}
	if td.Visible != nil {
		data["visible_content"] = *td.Visible
	}
	return handler.SuccessWith(data)
}

func (h *InspectHandler) paragraphCount(ctx *handler.Context) handler.Result {
	n, err := ctx.Paragraphs.Count(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"count": n})
}

func (h *InspectHandler) outline(ctx *handler.Context) handler.Result {
	o, err := ctx.Paragraphs.Outline(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"outline":         o.Entries,
		"heading_count":   o.HeadingCount,
		"paragraph_count": o.ParagraphCount,
	})
}

func (h *InspectHandler) paragraph(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("n") {
		return handler.Errorf("missing required parameter: n")
	}
	n := req.Args.GetInt("n")

	p, err := ctx.Paragraphs.Get(ctx.Doc, n)
	if err != nil {
		return handler.Error(err)
	}
	data := map[string]any{
		"paragraph_number": p.Number,
		"content":          p.Content,
	}
	if p.Visible != nil {
		data["visible_content"] = *p.Visible
	}
	return handler.SuccessWith(data)
}

func (h *InspectHandler) paragraphsRange(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("start") {
		return handler.Errorf("missing required parameter: start")
	}
	if !req.Args.Has("end") {
		return handler.Errorf("missing required parameter: end")
	}
	start := req.Args.GetInt("start")
	end := req.Args.GetInt("end")

	refs, err := ctx.Paragraphs.GetRange(ctx.Doc, start, end)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"paragraphs": refs,
		"count":      len(refs),
	})
}

func (h *InspectHandler) comments(ctx *handler.Context) handler.Result {
	list, err := ctx.Content.Comments(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"comments": list,
		"count":    len(list),
	})
}
