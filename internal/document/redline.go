package document

import "time"

// RedlineType classifies a tracked change record.
type RedlineType string

// Tracked change types.
const (
	RedlineInsert  RedlineType = "insert"
	RedlineDelete  RedlineType = "delete"
	RedlineFormat  RedlineType = "format"
	RedlineUnknown RedlineType = "unknown"
)

// Redline is one pending tracked change awaiting accept or reject.
type Redline interface {
	// Type returns the change type.
	Type() RedlineType

	// Anchor returns the span of content the change covers.
	Anchor() Range

	// Author returns who made the change.
	Author() string

	// Timestamp returns when the change was recorded.
	Timestamp() time.Time

	// Comment returns the optional description attached to the change.
	Comment() string
}

// Redlines exposes a document's tracked-change collection and mode flags.
//
// The collection is ordered by document position and index-volatile:
// accepting or rejecting an entry shifts the indices of later entries.
// Callers must re-read Count and At after every mutation rather than
// cache indices or snapshots.
type Redlines interface {
	// Recording reports whether new edits generate redlines.
	Recording() bool

	// SetRecording turns change recording on or off.
	SetRecording(on bool)

	// Showing reports whether tracked deletions render visibly.
	Showing() bool

	// SetShowing turns deletion display on or off.
	SetShowing(on bool)

	// Count returns the current number of pending redlines.
	Count() int

	// At returns the redline at index i, 0-indexed.
	At(i int) (Redline, error)

	// Accept materializes the redline at index i and removes it.
	Accept(i int) error

	// Reject undoes the redline at index i and removes it.
	Reject(i int) error
}
