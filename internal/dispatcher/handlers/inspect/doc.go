// Package inspect provides handlers for document inspection tools.
//
// Inspection tools read document state without mutating it: metadata
// and statistics, raw and visible text, the paragraph structure, the
// heading outline, and the comment list.
//
// # Inspection Operations
//
// The InspectHandler type provides:
//   - get_document_info: Metadata, counts, and track-changes status
//   - get_text_content: Full raw text, plus the visible rendering
//     while changes are recorded
//   - get_paragraph_count: Number of paragraph elements
//   - get_document_outline: Headings with paragraph numbers and levels
//   - get_paragraph: One paragraph by 1-indexed number
//   - get_paragraphs_range: An inclusive range of paragraphs
//   - get_comments: Every comment in document order
//
// # Usage
//
// Register the handler with the dispatcher:
//
//	h := inspect.NewInspectHandler()
//	d.RegisterHandler(h, h.Names()...)
package inspect
