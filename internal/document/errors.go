package document

import "errors"

// Sentinel errors for the operation taxonomy. Call sites wrap these with
// fmt.Errorf and %w, adding the failing values and the valid bounds;
// callers classify with errors.Is.
var (
	// ErrNoActiveDocument indicates no document context is available.
	ErrNoActiveDocument = errors.New("document: no active document")

	// ErrUnsupportedDocumentType indicates the operation requires a
	// capability the document handle does not carry.
	ErrUnsupportedDocumentType = errors.New("document: unsupported document type")

	// ErrOutOfRange indicates an index, paragraph number, or position
	// outside the valid bounds. Messages wrapping it name the bounds.
	ErrOutOfRange = errors.New("document: out of range")

	// ErrInvalidArgument indicates a missing required parameter or a
	// malformed relation such as end < start.
	ErrInvalidArgument = errors.New("document: invalid argument")

	// ErrHostOperationFailed indicates an underlying host call failed for
	// reasons unrelated to the above, such as a stale range view.
	ErrHostOperationFailed = errors.New("document: host operation failed")
)
