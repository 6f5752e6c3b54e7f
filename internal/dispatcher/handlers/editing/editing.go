// Package editing provides handlers for text mutation tools.
package editing

import (
	"fmt"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/request"
)

// Tool names for editing operations.
const (
	ToolInsertText      = "insert_text"
	ToolFormatText      = "format_text"
	ToolSelectParagraph = "select_paragraph"
	ToolSelectTextRange = "select_text_range"
	ToolDeleteSelection = "delete_selection"
	ToolReplaceSel      = "replace_selection"
	ToolAddComment      = "add_comment"
)

// EditingHandler handles text mutation tools.
type EditingHandler struct{}

// NewEditingHandler creates a new editing handler.
func NewEditingHandler() *EditingHandler {
	return &EditingHandler{}
}

// Names returns every tool name this handler serves.
func (h *EditingHandler) Names() []string {
	return []string{
		ToolInsertText, ToolFormatText,
		ToolSelectParagraph, ToolSelectTextRange,
		ToolDeleteSelection, ToolReplaceSel,
		ToolAddComment,
	}
}

// CanHandle returns true if this handler can process the tool.
func (h *EditingHandler) CanHandle(name string) bool {
	switch name {
	case ToolInsertText, ToolFormatText,
		ToolSelectParagraph, ToolSelectTextRange,
		ToolDeleteSelection, ToolReplaceSel,
		ToolAddComment:
		return true
	}
	return false
}

// Handle processes an editing tool call.
func (h *EditingHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	switch req.Name {
	case ToolInsertText:
		return h.insertText(req, ctx)
	case ToolFormatText:
		return h.formatText(req, ctx)
	case ToolSelectParagraph:
		return h.selectParagraph(req, ctx)
	case ToolSelectTextRange:
		return h.selectTextRange(req, ctx)
	case ToolDeleteSelection:
		return h.deleteSelection(ctx)
	case ToolReplaceSel:
		return h.replaceSelection(req, ctx)
	case ToolAddComment:
		return h.addComment(req, ctx)
	default:
		return handler.Errorf("unknown editing tool: %s", req.Name)
	}
}

// insertText inserts at the cursor, or at an explicit position when one
// is given.
func (h *EditingHandler) insertText(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("text") {
		return handler.Errorf("missing required parameter: text")
	}
	text := req.Args.GetString("text")

	var position *int
	if req.Args.Has("position") {
		p := req.Args.GetInt("position")
		position = &p
	}

	n, err := ctx.Edits.InsertText(ctx.Doc, text, position)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Inserted %d characters", n))
}

// formatText applies the attributes present in the request to the
// selected text. Absent attributes are left untouched rather than
// cleared.
func (h *EditingHandler) formatText(req request.Request, ctx *handler.Context) handler.Result {
	var f document.Format
	if req.Args.Has("bold") {
		v := req.Args.GetBool("bold")
		f.Bold = &v
	}
	if req.Args.Has("italic") {
		v := req.Args.GetBool("italic")
		f.Italic = &v
	}
	if req.Args.Has("underline") {
		v := req.Args.GetBool("underline")
		f.Underline = &v
	}
	if req.Args.Has("font_size") {
		v := req.Args.GetFloat("font_size")
		f.Size = &v
	}
	if req.Args.Has("font_name") {
		v := req.Args.GetString("font_name")
		f.Font = &v
	}

	if err := ctx.Edits.FormatText(ctx.Doc, f); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage("Formatting applied successfully")
}

func (h *EditingHandler) selectParagraph(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("n") {
		return handler.Errorf("missing required parameter: n")
	}
	n := req.Args.GetInt("n")

	sel, err := ctx.Edits.SelectParagraph(ctx.Doc, n)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"selected_text": sel.Text,
		"paragraph":     sel.Number,
	})
}

func (h *EditingHandler) selectTextRange(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("start") {
		return handler.Errorf("missing required parameter: start")
	}
	if !req.Args.Has("end") {
		return handler.Errorf("missing required parameter: end")
	}
	start := req.Args.GetInt("start")
	end := req.Args.GetInt("end")

	sel, err := ctx.Edits.SelectTextRange(ctx.Doc, start, end)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"selected_text": sel.Text,
		"start":         sel.Start,
		"end":           sel.End,
		"length":        sel.Length,
	})
}

func (h *EditingHandler) deleteSelection(ctx *handler.Context) handler.Result {
	del, err := ctx.Edits.DeleteSelection(ctx.Doc)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"deleted_text": del.Text,
		"length":       del.Length,
	})
}

func (h *EditingHandler) replaceSelection(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("text") {
		return handler.Errorf("missing required parameter: text")
	}
	text := req.Args.GetString("text")

	rep, err := ctx.Edits.ReplaceSelection(ctx.Doc, text)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{
		"old_text":   rep.Old,
		"new_text":   rep.New,
		"old_length": rep.OldLength,
		"new_length": rep.NewLength,
	})
}

// addComment anchors a comment at the cursor or selection. The author
// falls back to the configured default.
func (h *EditingHandler) addComment(req request.Request, ctx *handler.Context) handler.Result {
	if !req.Args.Has("text") {
		return handler.Errorf("missing required parameter: text")
	}
	text := req.Args.GetString("text")

	author := req.Args.GetString("author")
	if author == "" {
		author = ctx.Author
	}

	info, err := ctx.Content.AddComment(ctx.Doc, text, author)
	if err != nil {
		return handler.Error(err)
	}
	res := handler.SuccessWith(map[string]any{"id": info.ID})
	return res.WithMessage(fmt.Sprintf("Comment added by %s", author))
}
