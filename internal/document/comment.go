package document

import "time"

// Comment is one annotation anchored to document content.
type Comment interface {
	// ID returns the comment's stable identifier.
	ID() string

	// Author returns who wrote the comment.
	Author() string

	// Timestamp returns when the comment was added.
	Timestamp() time.Time

	// Text returns the comment body.
	Text() string

	// Anchor returns the span the comment is attached to.
	Anchor() Range
}

// Comments exposes the document's annotation collection.
type Comments interface {
	// List returns all comments in document order.
	List() []Comment

	// AddAtCursor anchors a new comment at the view cursor.
	AddAtCursor(text, author string) (Comment, error)
}
