package document

// Range is a host-owned view of a contiguous span of document content.
// A range is a reference, not a copy: mutating the document may
// invalidate it, and implementations may fail any method once the view
// is stale. Two ranges can be ordered relative to each other but carry
// no absolute position of their own.
type Range interface {
	// Text returns the current text of the span.
	Text() (string, error)

	// CompareStarts orders the receiver's start against other's start:
	// negative when the receiver starts first, zero when both start
	// together, positive when the receiver starts after other. Comparing
	// ranges from different documents is an error.
	CompareStarts(other Range) (int, error)

	// CompareEnds orders the receiver's end against other's end with the
	// same convention as CompareStarts.
	CompareEnds(other Range) (int, error)
}

// Format holds character formatting attributes. Nil fields are left
// untouched when the format is applied.
type Format struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	Size      *float64
	Font      *string
}

// IsZero reports whether no attribute is set.
func (f Format) IsZero() bool {
	return f.Bold == nil && f.Italic == nil && f.Underline == nil &&
		f.Size == nil && f.Font == nil
}

// TextContent is character-addressable linear text with a movable view
// cursor, host-native search, and range-based mutation. Offsets are
// 0-indexed rune counts from document start over the raw content, which
// includes pending insertions and deletions while changes are recorded.
type TextContent interface {
	// Length returns the rune length of the raw content.
	Length() int

	// Content returns the full raw content.
	Content() string

	// CursorOffset returns the view cursor's offset.
	CursorOffset() int

	// MoveCursor moves the view cursor to offset, clamped into
	// [0, Length()], and returns the offset actually reached.
	MoveCursor(offset int) int

	// InsertAt inserts text at offset. While recording, the host records
	// an insert redline over the new text instead of a plain mutation.
	InsertAt(offset int, text string) error

	// ReplaceRange replaces the span r with text. While recording, the
	// host keeps the original text in place as a pending deletion and
	// records the replacement as a pending insertion after it; r stays
	// valid and spans the whole replacement region afterward.
	ReplaceRange(r Range, text string) error

	// ApplyFormat applies character formatting to the span r. While
	// recording, the host records a format redline.
	ApplyFormat(r Range, f Format) error

	// OffsetOf measures the distance from document start to r's start.
	OffsetOf(r Range) (int, error)

	// FindFirst returns the first occurrence of query, or nil.
	FindFirst(query string) Range

	// FindNext returns the first occurrence of query after the end of
	// the given range, or nil.
	FindNext(query string, after Range) Range

	// FindAll returns every occurrence of query in document order.
	FindAll(query string) []Range

	// ReplaceAllRaw performs the host's native bulk replace and returns
	// the occurrence count. It does not consult redlines; callers use it
	// only while recording is off.
	ReplaceAllRaw(old, new string) int
}
