// Package tools describes the callable tool surface: every operation's
// name, description, and parameter schema. Both transports serve the
// catalog, so additions here show up everywhere at once.
package tools

import (
	"sort"

	"github.com/dshills/redline/internal/dispatcher/handlers/changes"
	"github.com/dshills/redline/internal/dispatcher/handlers/editing"
	"github.com/dshills/redline/internal/dispatcher/handlers/inspect"
	"github.com/dshills/redline/internal/dispatcher/handlers/navigate"
	"github.com/dshills/redline/internal/dispatcher/handlers/script"
	searchtools "github.com/dshills/redline/internal/dispatcher/handlers/search"
)

// Tool describes one callable operation.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Params      Schema `json:"params"`
}

// Schema is a JSON-schema object description of a tool's named
// arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one named argument.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

func object(props map[string]Property, required ...string) Schema {
	if props == nil {
		props = map[string]Property{}
	}
	return Schema{Type: "object", Properties: props, Required: required}
}

// Catalog returns every tool sorted by name.
func Catalog() []Tool {
	list := []Tool{
		{
			Name:        inspect.ToolDocumentInfo,
			Description: "Get information about the currently active document",
			Params:      object(nil),
		},
		{
			Name:        inspect.ToolTextContent,
			Description: "Get the text content of the currently active document",
			Params:      object(nil),
		},
		{
			Name:        inspect.ToolParagraphCount,
			Description: "Get the total number of paragraphs in the document",
			Params:      object(nil),
		},
		{
			Name:        inspect.ToolDocumentOutline,
			Description: "Get document outline with headings, paragraph numbers, and levels",
			Params:      object(nil),
		},
		{
			Name:        inspect.ToolParagraph,
			Description: "Get content of a specific paragraph by number (1-indexed)",
			Params: object(map[string]Property{
				"n": {Type: "integer", Description: "Paragraph number (1-indexed)"},
			}, "n"),
		},
		{
			Name:        inspect.ToolParagraphsRange,
			Description: "Get content of paragraphs in a range (inclusive, 1-indexed)",
			Params: object(map[string]Property{
				"start": {Type: "integer", Description: "Starting paragraph number (1-indexed)"},
				"end":   {Type: "integer", Description: "Ending paragraph number (inclusive)"},
			}, "start", "end"),
		},
		{
			Name:        inspect.ToolComments,
			Description: "Get all comments/annotations from the document",
			Params:      object(nil),
		},
		{
			Name:        navigate.ToolGotoParagraph,
			Description: "Move view cursor to the beginning of paragraph n",
			Params: object(map[string]Property{
				"n": {Type: "integer", Description: "Paragraph number (1-indexed)"},
			}, "n"),
		},
		{
			Name:        navigate.ToolGotoPosition,
			Description: "Move view cursor to a specific character position",
			Params: object(map[string]Property{
				"char_pos": {Type: "integer", Description: "Character position (0-indexed)"},
			}, "char_pos"),
		},
		{
			Name:        navigate.ToolCursorPosition,
			Description: "Get current cursor character position and paragraph number",
			Params:      object(nil),
		},
		{
			Name:        navigate.ToolContext,
			Description: "Get text context around the current cursor position",
			Params: object(map[string]Property{
				"chars": {Type: "integer", Description: "Number of characters to get before and after cursor", Default: 100},
			}),
		},
		{
			Name:        editing.ToolInsertText,
			Description: "Insert text into the currently active document",
			Params: object(map[string]Property{
				"text":     {Type: "string", Description: "Text to insert"},
				"position": {Type: "integer", Description: "Position to insert at (optional, defaults to cursor position)"},
			}, "text"),
		},
		{
			Name:        editing.ToolFormatText,
			Description: "Apply formatting to selected text in active document",
			Params: object(map[string]Property{
				"bold":      {Type: "boolean", Description: "Apply bold formatting"},
				"italic":    {Type: "boolean", Description: "Apply italic formatting"},
				"underline": {Type: "boolean", Description: "Apply underline formatting"},
				"font_size": {Type: "number", Description: "Font size in points"},
				"font_name": {Type: "string", Description: "Font family name"},
			}),
		},
		{
			Name:        editing.ToolSelectParagraph,
			Description: "Select entire paragraph n (1-indexed)",
			Params: object(map[string]Property{
				"n": {Type: "integer", Description: "Paragraph number (1-indexed)"},
			}, "n"),
		},
		{
			Name:        editing.ToolSelectTextRange,
			Description: "Select text from start to end character positions (0-indexed)",
			Params: object(map[string]Property{
				"start": {Type: "integer", Description: "Starting character position (0-indexed)"},
				"end":   {Type: "integer", Description: "Ending character position (exclusive)"},
			}, "start", "end"),
		},
		{
			Name:        editing.ToolDeleteSelection,
			Description: "Delete currently selected text",
			Params:      object(nil),
		},
		{
			Name:        editing.ToolReplaceSel,
			Description: "Replace currently selected text with new text",
			Params: object(map[string]Property{
				"text": {Type: "string", Description: "New text to replace selection with"},
			}, "text"),
		},
		{
			Name:        editing.ToolAddComment,
			Description: "Add a comment at the current cursor position",
			Params: object(map[string]Property{
				"text":   {Type: "string", Description: "Comment text"},
				"author": {Type: "string", Description: "Comment author name"},
			}, "text"),
		},
		{
			Name:        searchtools.ToolFindText,
			Description: "Find all occurrences of query string in the document",
			Params: object(map[string]Property{
				"query": {Type: "string", Description: "String to search for"},
			}, "query"),
		},
		{
			Name:        searchtools.ToolFindReplace,
			Description: "Find and replace the first occurrence",
			Params: object(map[string]Property{
				"old": {Type: "string", Description: "String to find"},
				"new": {Type: "string", Description: "String to replace with"},
			}, "old", "new"),
		},
		{
			Name:        searchtools.ToolFindReplaceAll,
			Description: "Find and replace all occurrences",
			Params: object(map[string]Property{
				"old": {Type: "string", Description: "String to find"},
				"new": {Type: "string", Description: "String to replace with"},
			}, "old", "new"),
		},
		{
			Name:        changes.ToolStatus,
			Description: "Get Track Changes recording and display status",
			Params:      object(nil),
		},
		{
			Name:        changes.ToolSetTracking,
			Description: "Enable or disable Track Changes recording and display",
			Params: object(map[string]Property{
				"enabled": {Type: "boolean", Description: "Enable or disable Track Changes recording"},
				"show":    {Type: "boolean", Description: "Show or hide tracked changes", Default: true},
			}, "enabled"),
		},
		{
			Name:        changes.ToolList,
			Description: "Get list of all tracked changes in the document",
			Params:      object(nil),
		},
		{
			Name:        changes.ToolAccept,
			Description: "Accept a specific tracked change by index",
			Params: object(map[string]Property{
				"index": {Type: "integer", Description: "Index of the tracked change to accept"},
			}, "index"),
		},
		{
			Name:        changes.ToolReject,
			Description: "Reject a specific tracked change by index",
			Params: object(map[string]Property{
				"index": {Type: "integer", Description: "Index of the tracked change to reject"},
			}, "index"),
		},
		{
			Name:        changes.ToolAcceptAll,
			Description: "Accept all tracked changes in the document",
			Params:      object(nil),
		},
		{
			Name:        changes.ToolRejectAll,
			Description: "Reject all tracked changes in the document",
			Params:      object(nil),
		},
		{
			Name:        changes.ToolChangesPreview,
			Description: "Preview the pending changeset as a diff of reject-all against accept-all",
			Params:      object(nil),
		},
		{
			Name:        script.ToolRunMacro,
			Description: "Run a Lua script against the tool surface",
			Params: object(map[string]Property{
				"script": {Type: "string", Description: "Lua source to execute"},
			}, "script"),
		},
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
