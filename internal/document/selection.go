package document

// Selection is the document's single selection span. At most one
// contiguous span is selected at a time.
type Selection interface {
	// Active reports whether a non-empty span is currently selected.
	Active() bool

	// Select selects [start, end) over raw content offsets, clamping
	// both ends into [0, Length()].
	Select(start, end int) error

	// Clear deselects without touching content.
	Clear()

	// Text returns the selected text.
	Text() (string, error)

	// Range returns a view of the selected span.
	Range() (Range, error)

	// Replace replaces the selected text, honoring recording host-side,
	// and clears the selection leaving the cursor after the edit.
	// Replacing with "" deletes the selection.
	Replace(text string) error
}
