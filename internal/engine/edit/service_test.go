package edit

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/document/memdoc"
)

type plainMeta struct{}

func (plainMeta) Title() string  { return "t" }
func (plainMeta) URL() string    { return "" }
func (plainMeta) Modified() bool { return false }

func TestSelectParagraphSelectsFullText(t *testing.T) {
	h := memdoc.LoadText("Title\nbody text\nend").Handle()
	svc := NewService(nil)

	got, err := svc.SelectParagraph(h, 2)
	if err != nil {
		t.Fatalf("select paragraph failed: %v", err)
	}
	if got.Number != 2 {
		t.Errorf("expected paragraph 2, got %d", got.Number)
	}
	if got.Text != "body text" {
		t.Errorf("expected 'body text', got %q", got.Text)
	}

	sel, err := h.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if !sel.Active() {
		t.Error("expected an active selection")
	}
	text, err := sel.Text()
	if err != nil {
		t.Fatalf("selection text: %v", err)
	}
	if text != "body text" {
		t.Errorf("selection holds %q", text)
	}
}

func TestSelectParagraphOutOfRange(t *testing.T) {
	h := memdoc.LoadText("one\ntwo\nthree").Handle()
	svc := NewService(nil)

	for _, n := range []int{0, 4} {
		_, err := svc.SelectParagraph(h, n)
		if !errors.Is(err, document.ErrOutOfRange) {
			t.Errorf("paragraph %d: expected out of range, got %v", n, err)
		}
		if err != nil && !strings.Contains(err.Error(), "valid 1..3") {
			t.Errorf("paragraph %d: error should cite bounds, got %q", n, err)
		}
	}
}

func TestSelectTextRangeClampsToLength(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	got, err := svc.SelectTextRange(h, 6, 50)
	if err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	if got.Start != 6 || got.End != 11 {
		t.Errorf("expected clamped span 6..11, got %d..%d", got.Start, got.End)
	}
	if got.Text != "World" || got.Length != 5 {
		t.Errorf("expected 'World' (5), got %q (%d)", got.Text, got.Length)
	}
}

func TestSelectTextRangeRejectsBadArguments(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, -1, 4); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("negative start: expected invalid argument, got %v", err)
	}
	if _, err := svc.SelectTextRange(h, 5, 2); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("reversed span: expected invalid argument, got %v", err)
	}
}

func TestSelectTextRangeCollapsedSpan(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	got, err := svc.SelectTextRange(h, 3, 3)
	if err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	if got.Length != 0 || got.Text != "" {
		t.Errorf("collapsed span should be empty, got %q (%d)", got.Text, got.Length)
	}

	sel, err := h.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if sel.Active() {
		t.Error("collapsed span should not activate the selection")
	}
}

func TestDeleteSelectionRemovesText(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, 5, 11); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	got, err := svc.DeleteSelection(h)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got.Text != " World" || got.Length != 6 {
		t.Errorf("expected deleted ' World' (6), got %q (%d)", got.Text, got.Length)
	}

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Content() != "Hello" {
		t.Errorf("expected 'Hello', got %q", text.Content())
	}
}

func TestDeleteSelectionRequiresSelection(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	_, err := svc.DeleteSelection(h)
	if !errors.Is(err, document.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if !strings.Contains(err.Error(), "no text selected") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestReplaceSelectionSwapsText(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, 6, 11); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	got, err := svc.ReplaceSelection(h, "Go")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if got.Old != "World" || got.New != "Go" {
		t.Errorf("expected World->Go, got %q->%q", got.Old, got.New)
	}
	if got.OldLength != 5 || got.NewLength != 2 {
		t.Errorf("expected lengths 5 and 2, got %d and %d", got.OldLength, got.NewLength)
	}

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Content() != "Hello Go" {
		t.Errorf("expected 'Hello Go', got %q", text.Content())
	}
}

func TestReplaceSelectionRecordsChanges(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	rl, err := h.Redlines()
	if err != nil {
		t.Fatalf("redlines: %v", err)
	}
	rl.SetRecording(true)

	if _, err := svc.SelectTextRange(h, 6, 11); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	if _, err := svc.ReplaceSelection(h, "Go"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Content() != "Hello WorldGo" {
		t.Errorf("raw content should keep the struck text, got %q", text.Content())
	}
	if rl.Count() != 2 {
		t.Errorf("expected a delete and an insert record, got %d", rl.Count())
	}
}

func TestReplaceSelectionRequiresSelection(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	if _, err := svc.ReplaceSelection(h, "Go"); !errors.Is(err, document.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestInsertTextAtCursor(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	text.MoveCursor(5)

	n, err := svc.InsertText(h, ",", nil)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 character inserted, got %d", n)
	}
	if text.Content() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", text.Content())
	}
}

func TestInsertTextAtPosition(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	pos := 5
	if _, err := svc.InsertText(h, ",", &pos); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Content() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", text.Content())
	}
}

func TestInsertTextClampsPosition(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()
	svc := NewService(nil)

	pos := 999
	if _, err := svc.InsertText(h, "!", &pos); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	pos = -3
	if _, err := svc.InsertText(h, ">", &pos); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	text, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Content() != ">Hello!" {
		t.Errorf("expected '>Hello!', got %q", text.Content())
	}
}

func TestInsertTextCountsRunes(t *testing.T) {
	h := memdoc.LoadText("").Handle()
	svc := NewService(nil)

	n, err := svc.InsertText(h, "héllo", nil)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 characters, got %d", n)
	}
}

func TestFormatTextAppliesToSelection(t *testing.T) {
	d := memdoc.LoadText("Hello World")
	h := d.Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, 0, 5); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	bold := true
	if err := svc.FormatText(h, document.Format{Bold: &bold}); err != nil {
		t.Fatalf("format failed: %v", err)
	}

	got := d.FormatAt(2)
	if got.Bold == nil || !*got.Bold {
		t.Error("expected bold inside the formatted span")
	}
	if inside := d.FormatAt(7); inside.Bold != nil {
		t.Error("formatting leaked past the selection")
	}
}

func TestFormatTextKeepsSelection(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, 0, 5); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	bold := true
	if err := svc.FormatText(h, document.Format{Bold: &bold}); err != nil {
		t.Fatalf("format failed: %v", err)
	}

	sel, err := h.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if !sel.Active() {
		t.Error("formatting should not clear the selection")
	}
}

func TestFormatTextRequiresAttributes(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()
	svc := NewService(nil)

	if _, err := svc.SelectTextRange(h, 0, 5); err != nil {
		t.Fatalf("select range failed: %v", err)
	}
	if err := svc.FormatText(h, document.Format{}); !errors.Is(err, document.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestFormatTextRequiresSelection(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()
	svc := NewService(nil)

	bold := true
	if err := svc.FormatText(h, document.Format{Bold: &bold}); !errors.Is(err, document.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestEditRequiresCapabilities(t *testing.T) {
	h := document.NewHandle(document.KindSpreadsheet, plainMeta{})
	svc := NewService(nil)

	if _, err := svc.SelectParagraph(h, 1); !errors.Is(err, document.ErrUnsupportedDocumentType) {
		t.Errorf("select paragraph: expected unsupported type, got %v", err)
	}
	if _, err := svc.SelectTextRange(h, 0, 1); !errors.Is(err, document.ErrUnsupportedDocumentType) {
		t.Errorf("select range: expected unsupported type, got %v", err)
	}
	if _, err := svc.DeleteSelection(h); !errors.Is(err, document.ErrUnsupportedDocumentType) {
		t.Errorf("delete: expected unsupported type, got %v", err)
	}
	if _, err := svc.InsertText(h, "x", nil); !errors.Is(err, document.ErrUnsupportedDocumentType) {
		t.Errorf("insert: expected unsupported type, got %v", err)
	}
}

func TestEditRequiresDocument(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.InsertText(nil, "x", nil); !errors.Is(err, document.ErrNoActiveDocument) {
		t.Fatalf("expected no active document, got %v", err)
	}
}
