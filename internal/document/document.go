// Package document defines the host document contract: the capability
// interfaces a document handle exposes, the opaque range views used for
// classification and mutation, and the shared error taxonomy.
//
// A Handle declares its capability set at construction. Operations that
// need a capability the handle lacks fail fast with
// ErrUnsupportedDocumentType instead of probing the host at each call.
// Handles are passed explicitly; a nil handle means no active document.
package document

import "fmt"

// Capability identifies one host capability a handle may carry.
type Capability uint8

const (
	// CapText is character-addressable text with cursor, search, and
	// range mutation.
	CapText Capability = 1 << iota

	// CapParagraphs is structural enumeration of paragraph content.
	CapParagraphs

	// CapRedlines is the tracked-change collection and mode flags.
	CapRedlines

	// CapSelection is the document's single selection span.
	CapSelection

	// CapComments is the annotation collection.
	CapComments
)

// Has reports whether the set contains c.
func (s Capability) Has(c Capability) bool { return s&c == c }

// Kind describes what sort of document a handle refers to.
type Kind string

// Document kinds. Only text documents carry the full capability set.
const (
	KindText         Kind = "text"
	KindSpreadsheet  Kind = "spreadsheet"
	KindPresentation Kind = "presentation"
	KindUnknown      Kind = "unknown"
)

// Metadata reports identifying document properties.
type Metadata interface {
	Title() string
	URL() string
	Modified() bool
}

// Handle is an explicit reference to one open document and the
// capabilities it declared at construction. The host owns the document;
// a handle never outlives it.
type Handle struct {
	kind Kind
	meta Metadata
	caps Capability

	text       TextContent
	paragraphs ParagraphStructure
	redlines   Redlines
	selection  Selection
	comments   Comments
}

// HandleOption attaches a capability to a handle under construction.
type HandleOption func(*Handle)

// WithText attaches the text content capability.
func WithText(tc TextContent) HandleOption {
	return func(h *Handle) {
		h.text = tc
		h.caps |= CapText
	}
}

// WithParagraphs attaches the paragraph structure capability.
func WithParagraphs(ps ParagraphStructure) HandleOption {
	return func(h *Handle) {
		h.paragraphs = ps
		h.caps |= CapParagraphs
	}
}

// WithRedlines attaches the tracked-change capability.
func WithRedlines(r Redlines) HandleOption {
	return func(h *Handle) {
		h.redlines = r
		h.caps |= CapRedlines
	}
}

// WithSelection attaches the selection capability.
func WithSelection(s Selection) HandleOption {
	return func(h *Handle) {
		h.selection = s
		h.caps |= CapSelection
	}
}

// WithComments attaches the annotation capability.
func WithComments(c Comments) HandleOption {
	return func(h *Handle) {
		h.comments = c
		h.caps |= CapComments
	}
}

// NewHandle creates a handle for one open document with the given
// capability set.
func NewHandle(kind Kind, meta Metadata, opts ...HandleOption) *Handle {
	h := &Handle{kind: kind, meta: meta}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Kind returns the document kind.
func (h *Handle) Kind() Kind {
	if h == nil {
		return KindUnknown
	}
	return h.kind
}

// Metadata returns the document's identifying properties.
func (h *Handle) Metadata() Metadata {
	if h == nil {
		return nil
	}
	return h.meta
}

// Capabilities returns the declared capability set.
func (h *Handle) Capabilities() Capability {
	if h == nil {
		return 0
	}
	return h.caps
}

// Has reports whether the handle carries the capability.
func (h *Handle) Has(c Capability) bool { return h.Capabilities().Has(c) }

// Text returns the text capability. A nil handle yields
// ErrNoActiveDocument; a handle without the capability yields
// ErrUnsupportedDocumentType.
func (h *Handle) Text() (TextContent, error) {
	if h == nil {
		return nil, ErrNoActiveDocument
	}
	if h.text == nil {
		return nil, fmt.Errorf("%w: %s document has no text content", ErrUnsupportedDocumentType, h.kind)
	}
	return h.text, nil
}

// Paragraphs returns the paragraph structure capability.
func (h *Handle) Paragraphs() (ParagraphStructure, error) {
	if h == nil {
		return nil, ErrNoActiveDocument
	}
	if h.paragraphs == nil {
		return nil, fmt.Errorf("%w: %s document has no paragraph structure", ErrUnsupportedDocumentType, h.kind)
	}
	return h.paragraphs, nil
}

// Redlines returns the tracked-change capability.
func (h *Handle) Redlines() (Redlines, error) {
	if h == nil {
		return nil, ErrNoActiveDocument
	}
	if h.redlines == nil {
		return nil, fmt.Errorf("%w: track changes not supported for %s documents", ErrUnsupportedDocumentType, h.kind)
	}
	return h.redlines, nil
}

// Selection returns the selection capability.
func (h *Handle) Selection() (Selection, error) {
	if h == nil {
		return nil, ErrNoActiveDocument
	}
	if h.selection == nil {
		return nil, fmt.Errorf("%w: %s document has no selection", ErrUnsupportedDocumentType, h.kind)
	}
	return h.selection, nil
}

// Comments returns the annotation capability.
func (h *Handle) Comments() (Comments, error) {
	if h == nil {
		return nil, ErrNoActiveDocument
	}
	if h.comments == nil {
		return nil, fmt.Errorf("%w: %s document has no comments", ErrUnsupportedDocumentType, h.kind)
	}
	return h.comments, nil
}
