// Package edit implements selection and direct mutation operations:
// selecting paragraphs and character ranges, deleting and replacing the
// selection, inserting text, and character formatting. Mutations go
// through the host capabilities, so change recording is honored without
// this package knowing about it.
package edit

import (
	"fmt"
	"log/slog"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/engine/paragraph"
	"github.com/dshills/redline/internal/logging"
)

// Service is the selection/edit operation set.
type Service struct {
	log *slog.Logger
}

// NewService creates the service.
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{log: log}
}

// SelectedParagraph reports a paragraph selection.
type SelectedParagraph struct {
	Number int
	Text   string
}

// SelectedRange reports a character range selection after clamping.
type SelectedRange struct {
	Start  int
	End    int
	Length int
	Text   string
}

// Deleted reports what a selection deletion removed.
type Deleted struct {
	Text   string
	Length int
}

// Replacement reports a selection replacement.
type Replacement struct {
	Old       string
	New       string
	OldLength int
	NewLength int
}

// SelectParagraph selects the full text span of paragraph n, 1-indexed.
func (s *Service) SelectParagraph(h *document.Handle, n int) (SelectedParagraph, error) {
	paras, err := paragraph.Paragraphs(h)
	if err != nil {
		return SelectedParagraph{}, err
	}
	if n < 1 || n > len(paras) {
		return SelectedParagraph{}, fmt.Errorf("%w: paragraph %d out of range (valid 1..%d)",
			document.ErrOutOfRange, n, len(paras))
	}
	sel, err := h.Selection()
	if err != nil {
		return SelectedParagraph{}, err
	}

	start := paragraph.StartOffset(paras, n)
	length := len([]rune(paras[n-1].Text()))
	if err := sel.Select(start, start+length); err != nil {
		return SelectedParagraph{}, err
	}
	text, err := sel.Text()
	if err != nil {
		return SelectedParagraph{}, err
	}
	return SelectedParagraph{Number: n, Text: text}, nil
}

// SelectTextRange selects [start, end) over 0-indexed character
// offsets, clamped to the content length.
func (s *Service) SelectTextRange(h *document.Handle, start, end int) (SelectedRange, error) {
	if start < 0 {
		return SelectedRange{}, fmt.Errorf("%w: start %d must be >= 0", document.ErrInvalidArgument, start)
	}
	if end < start {
		return SelectedRange{}, fmt.Errorf("%w: end %d must be >= start %d", document.ErrInvalidArgument, end, start)
	}
	text, err := h.Text()
	if err != nil {
		return SelectedRange{}, err
	}
	sel, err := h.Selection()
	if err != nil {
		return SelectedRange{}, err
	}

	length := text.Length()
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	if err := sel.Select(start, end); err != nil {
		return SelectedRange{}, err
	}
	selected, err := sel.Text()
	if err != nil {
		return SelectedRange{}, err
	}
	return SelectedRange{Start: start, End: end, Length: len([]rune(selected)), Text: selected}, nil
}

// DeleteSelection removes the selected text. An empty selection is a
// caller error, not a no-op.
func (s *Service) DeleteSelection(h *document.Handle) (Deleted, error) {
	sel, err := h.Selection()
	if err != nil {
		return Deleted{}, err
	}
	if !sel.Active() {
		return Deleted{}, fmt.Errorf("%w: no text selected", document.ErrInvalidArgument)
	}

	old, err := sel.Text()
	if err != nil {
		return Deleted{}, err
	}
	if err := sel.Replace(""); err != nil {
		return Deleted{}, err
	}
	return Deleted{Text: old, Length: len([]rune(old))}, nil
}

// ReplaceSelection swaps the selected text for new text.
func (s *Service) ReplaceSelection(h *document.Handle, text string) (Replacement, error) {
	sel, err := h.Selection()
	if err != nil {
		return Replacement{}, err
	}
	if !sel.Active() {
		return Replacement{}, fmt.Errorf("%w: no text selected", document.ErrInvalidArgument)
	}

	old, err := sel.Text()
	if err != nil {
		return Replacement{}, err
	}
	if err := sel.Replace(text); err != nil {
		return Replacement{}, err
	}
	return Replacement{
		Old:       old,
		New:       text,
		OldLength: len([]rune(old)),
		NewLength: len([]rune(text)),
	}, nil
}

// InsertText inserts text at the given offset, clamped to the content,
// or at the view cursor when position is nil. Returns the number of
// characters inserted.
func (s *Service) InsertText(h *document.Handle, text string, position *int) (int, error) {
	tc, err := h.Text()
	if err != nil {
		return 0, err
	}

	off := tc.CursorOffset()
	if position != nil {
		off = *position
	}
	if off < 0 {
		off = 0
	}
	if n := tc.Length(); off > n {
		off = n
	}
	if err := tc.InsertAt(off, text); err != nil {
		return 0, err
	}
	return len([]rune(text)), nil
}

// FormatText applies character formatting to the active selection. At
// least one attribute must be set.
func (s *Service) FormatText(h *document.Handle, f document.Format) error {
	if f.IsZero() {
		return fmt.Errorf("%w: no formatting attributes given", document.ErrInvalidArgument)
	}
	sel, err := h.Selection()
	if err != nil {
		return err
	}
	if !sel.Active() {
		return fmt.Errorf("%w: no text selected", document.ErrInvalidArgument)
	}
	text, err := h.Text()
	if err != nil {
		return err
	}

	r, err := sel.Range()
	if err != nil {
		return err
	}
	return text.ApplyFormat(r, f)
}
