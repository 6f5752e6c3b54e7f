package document

// ElementKind discriminates structural content elements.
type ElementKind int

// Structural element kinds. Paragraph numbering counts only
// ElementParagraph entries.
const (
	ElementParagraph ElementKind = iota
	ElementTable
	ElementOther
)

// Element is one structural content element in document order.
type Element interface {
	Kind() ElementKind
}

// Paragraph is a text paragraph element.
type Paragraph interface {
	Element

	// Text returns the paragraph's raw text, pending deletions included.
	Text() string

	// Style returns the paragraph style name, e.g. "Heading 1".
	Style() string

	// Portions returns the paragraph's content runs. The host splits
	// portions at redline boundaries, so each portion is uniformly
	// inside or outside any pending change.
	Portions() []Portion
}

// Portion is a uniform run of paragraph content.
type Portion interface {
	Text() string
	Range() Range
}

// ParagraphStructure enumerates structural content in document order.
// Enumeration is sequential; there is no cached paragraph index.
type ParagraphStructure interface {
	Elements() []Element
}
