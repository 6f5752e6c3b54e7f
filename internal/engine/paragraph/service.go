// Package paragraph maps between linear character offsets and
// paragraph-oriented addressing. Paragraph numbers are 1-indexed and
// recomputed by sequential enumeration on every call; there is no
// cached index, so addressed access is O(document size). Character
// offsets are 0-indexed from document start.
package paragraph

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/redline"
	"github.com/dshills/redline/internal/logging"
)

// previewCap bounds the text preview per outline entry.
const previewCap = 200

// Service is the paragraph/position indexer.
type Service struct {
	log *slog.Logger
}

// NewService creates the indexer.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{log: log}
}

// Paragraph is one addressed paragraph. Visible is the content with
// tracked deletions elided; it is set only while change recording is
// active.
type Paragraph struct {
	Number  int
	Content string
	Visible *string
}

// Ref is one paragraph in a range listing.
type Ref struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// OutlineEntry is one heading in the document outline.
type OutlineEntry struct {
	Paragraph int    `json:"paragraph"`
	Level     int    `json:"level"`
	Text      string `json:"text"`
}

// Outline is the document's heading structure.
type Outline struct {
	Entries        []OutlineEntry
	HeadingCount   int
	ParagraphCount int
}

// Position is a cursor location in both addressing schemes.
type Position struct {
	Offset    int
	Paragraph int
}

// Move reports a cursor move: the offset asked for and the offset
// actually reached after clamping.
type Move struct {
	Requested int
	Actual    int
}

// Context is the text around the cursor.
type Context struct {
	Before    string
	After     string
	Position  int
	Requested int
}

// Count returns the number of paragraph elements. Tables and other
// non-paragraph content do not count.
func (s *Service) Count(h *document.Handle) (int, error) {
	paras, err := Paragraphs(h)
	if err != nil {
		return 0, err
	}
	return len(paras), nil
}

// Get returns paragraph n, 1-indexed. While change recording is active
// the result carries a visible-content variant with tracked deletions
// elided, computed by classifying the paragraph's portions.
func (s *Service) Get(h *document.Handle, n int) (Paragraph, error) {
	paras, err := Paragraphs(h)
	if err != nil {
		return Paragraph{}, err
	}
	if n < 1 || n > len(paras) {
		return Paragraph{}, paragraphRangeErr(n, len(paras))
	}

	target := paras[n-1]
	out := Paragraph{Number: n, Content: target.Text()}

	if rl, err := h.Redlines(); err == nil && rl.Recording() {
		visible := VisibleText(target, rl)
		out.Visible = &visible
	}
	return out, nil
}

// GetRange returns paragraphs start..end inclusive, 1-indexed. The
// range is intersected with the existing paragraphs; an empty
// intersection is out of range.
func (s *Service) GetRange(h *document.Handle, start, end int) ([]Ref, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("%w: paragraph range %d-%d is malformed (need 1 <= start <= end)",
			document.ErrInvalidArgument, start, end)
	}

	paras, err := Paragraphs(h)
	if err != nil {
		return nil, err
	}
	if start > len(paras) {
		return nil, fmt.Errorf("%w: range %d-%d out of bounds (document has %d paragraphs)",
			document.ErrOutOfRange, start, end, len(paras))
	}
	if end > len(paras) {
		end = len(paras)
	}

	out := make([]Ref, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, Ref{Number: n, Content: paras[n-1].Text()})
	}
	return out, nil
}

// Outline extracts the heading structure: every paragraph whose style
// follows the "Heading N" convention, with the level parsed from the
// style name.
func (s *Service) Outline(h *document.Handle) (Outline, error) {
	paras, err := Paragraphs(h)
	if err != nil {
		return Outline{}, err
	}

	out := Outline{Entries: []OutlineEntry{}, ParagraphCount: len(paras)}
	for i, p := range paras {
		level, ok := headingLevel(p.Style())
		if !ok {
			continue
		}
		out.Entries = append(out.Entries, OutlineEntry{
			Paragraph: i + 1,
			Level:     level,
			Text:      truncate(p.Text(), previewCap),
		})
	}
	out.HeadingCount = len(out.Entries)
	return out, nil
}

// GotoParagraph moves the view cursor to the start of paragraph n and
// returns the offset reached.
func (s *Service) GotoParagraph(h *document.Handle, n int) (int, error) {
	paras, err := Paragraphs(h)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > len(paras) {
		return 0, paragraphRangeErr(n, len(paras))
	}
	text, err := h.Text()
	if err != nil {
		return 0, err
	}

	return text.MoveCursor(StartOffset(paras, n)), nil
}

// StartOffset returns the character offset of the start of paragraph n,
// 1-indexed, within the given enumeration.
func StartOffset(paras []document.Paragraph, n int) int {
	offset := 0
	for _, p := range paras[:n-1] {
		offset += len([]rune(p.Text())) + 1
	}
	return offset
}

// GotoPosition moves the view cursor to the 0-indexed character offset,
// clamped to the content length. Moving past the end succeeds and lands
// at end of content; the result reports both offsets.
func (s *Service) GotoPosition(h *document.Handle, pos int) (Move, error) {
	if pos < 0 {
		return Move{}, fmt.Errorf("%w: position %d is negative", document.ErrInvalidArgument, pos)
	}
	text, err := h.Text()
	if err != nil {
		return Move{}, err
	}
	return Move{Requested: pos, Actual: text.MoveCursor(pos)}, nil
}

// CursorPosition reports the view cursor's character offset and the
// 1-indexed paragraph containing it. The paragraph is found by
// accumulating paragraph lengths plus one per break until the running
// total reaches the offset, so a cursor sitting exactly on a paragraph
// break counts as the earlier paragraph.
func (s *Service) CursorPosition(h *document.Handle) (Position, error) {
	text, err := h.Text()
	if err != nil {
		return Position{}, err
	}
	paras, err := Paragraphs(h)
	if err != nil {
		return Position{}, err
	}

	offset := text.CursorOffset()
	return Position{Offset: offset, Paragraph: NumberAt(paras, offset)}, nil
}

// NumberAt maps a character offset to the 1-indexed number of the
// paragraph holding it. Offsets on a paragraph boundary count toward
// the earlier paragraph; an empty document yields 0.
func NumberAt(paras []document.Paragraph, offset int) int {
	number := 0
	running := 0
	for i, p := range paras {
		number = i + 1
		running += len([]rune(p.Text())) + 1
		if running >= offset {
			break
		}
	}
	return number
}

// Context returns up to chars characters on each side of the cursor,
// fewer where the document ends first.
func (s *Service) Context(h *document.Handle, chars int) (Context, error) {
	if chars < 0 {
		return Context{}, fmt.Errorf("%w: context size %d is negative", document.ErrInvalidArgument, chars)
	}
	text, err := h.Text()
	if err != nil {
		return Context{}, err
	}

	content := []rune(text.Content())
	pos := text.CursorOffset()
	if pos > len(content) {
		pos = len(content)
	}

	beforeStart := pos - chars
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := pos + chars
	if afterEnd > len(content) {
		afterEnd = len(content)
	}

	return Context{
		Before:    string(content[beforeStart:pos]),
		After:     string(content[pos:afterEnd]),
		Position:  pos,
		Requested: chars,
	}, nil
}

// Paragraphs enumerates the document's structural elements and keeps
// the genuine paragraphs, in document order. Other engine services use
// it for paragraph-addressed access.
func Paragraphs(h *document.Handle) ([]document.Paragraph, error) {
	ps, err := h.Paragraphs()
	if err != nil {
		return nil, err
	}

	var paras []document.Paragraph
	for _, el := range ps.Elements() {
		if el.Kind() != document.ElementParagraph {
			continue
		}
		if p, ok := el.(document.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras, nil
}

// VisibleText concatenates the paragraph's portions that are not inside
// a tracked deletion, yielding the text as it reads with pending
// deletions elided.
func VisibleText(p document.Paragraph, rl document.Redlines) string {
	var b strings.Builder
	for _, portion := range p.Portions() {
		if redline.InTrackedDeletion(portion.Range(), rl) {
			continue
		}
		b.WriteString(portion.Text())
	}
	return b.String()
}

// headingLevel parses the level from a "Heading N" style name. Styles
// matching the convention without a parsable number count as level 1.
func headingLevel(style string) (int, bool) {
	if !strings.HasPrefix(style, "Heading") {
		return 0, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(style, "Heading"))
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 {
		return 1, true
	}
	return level, true
}

func paragraphRangeErr(n, count int) error {
	return fmt.Errorf("%w: paragraph %d out of range (valid 1..%d)", document.ErrOutOfRange, n, count)
}

// truncate caps s at max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
