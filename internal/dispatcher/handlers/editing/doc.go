// Package editing provides handlers for text mutation tools.
//
// Editing tools change document content through the selection and
// cursor: inserting text, applying character formatting, selecting
// spans, deleting or replacing the selection, and anchoring comments.
// While change recording is active every mutation goes through the
// host's redline machinery, so edits made here show up as pending
// tracked changes instead of silent rewrites.
//
// # Editing Operations
//
// The EditingHandler type provides:
//   - insert_text: Insert at the cursor or an explicit position
//   - format_text: Apply bold, italic, underline, size, or font to the
//     selection
//   - select_paragraph: Select a paragraph's full text by number
//   - select_text_range: Select a character range, clamped to length
//   - delete_selection: Remove the selected text
//   - replace_selection: Swap the selected text for new text
//   - add_comment: Anchor a comment at the cursor or selection
//
// # Selection Lifecycle
//
// delete_selection, replace_selection, and format_text require an
// active selection and fail without one. select_text_range collapses
// to a cursor move when the clamped range is empty, which leaves no
// selection behind.
//
// # Usage
//
// Register the handler with the dispatcher:
//
//	h := editing.NewEditingHandler()
//	d.RegisterHandler(h, h.Names()...)
package editing
