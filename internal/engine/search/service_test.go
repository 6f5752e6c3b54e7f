package search

import (
	"errors"
	"testing"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/document/memdoc"
)

type plainMeta struct{}

func (plainMeta) Title() string  { return "t" }
func (plainMeta) URL() string    { return "" }
func (plainMeta) Modified() bool { return false }

// markDeleted puts a delete redline over the span without otherwise
// changing the content.
func markDeleted(t *testing.T, h *document.Handle, start, end int) {
	t.Helper()
	sel, err := h.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if err := sel.Select(start, end); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := sel.Replace(""); err != nil {
		t.Fatalf("replace: %v", err)
	}
}

func setRecording(t *testing.T, h *document.Handle, on bool) {
	t.Helper()
	rl, err := h.Redlines()
	if err != nil {
		t.Fatalf("redlines: %v", err)
	}
	rl.SetRecording(on)
}

func TestFindReportsOffsetsAndText(t *testing.T) {
	h := memdoc.LoadText("foo bar foo").Handle()
	svc := NewService(nil)

	res, err := svc.Find(h, "foo")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if res.TrackActive {
		t.Error("tracking should be inactive")
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	if res.Matches[0].Position != 0 || res.Matches[1].Position != 8 {
		t.Errorf("unexpected offsets: %+v", res.Matches)
	}
	if res.Matches[0].Text != "foo" {
		t.Errorf("expected matched text 'foo', got %q", res.Matches[0].Text)
	}
}

func TestFindFiltersTrackedDeletions(t *testing.T) {
	h := memdoc.LoadText("foo bar foo").Handle()
	svc := NewService(nil)

	setRecording(t, h, true)
	markDeleted(t, h, 0, 3)

	res, err := svc.Find(h, "foo")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !res.TrackActive {
		t.Error("expected tracking active")
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected the deleted match filtered, got %d", len(res.Matches))
	}
	if res.Matches[0].Position != 8 {
		t.Errorf("expected surviving match at 8, got %d", res.Matches[0].Position)
	}
}

func TestFindFiltersWhileShowingOnly(t *testing.T) {
	h := memdoc.LoadText("foo bar foo").Handle()
	svc := NewService(nil)

	// Record a deletion, then stop recording: the pending redline stays
	// and showing alone keeps the filter active.
	setRecording(t, h, true)
	markDeleted(t, h, 0, 3)
	setRecording(t, h, false)

	res, err := svc.Find(h, "foo")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if res.TrackActive {
		t.Error("tracking should read inactive")
	}
	if len(res.Matches) != 1 {
		t.Errorf("showing should filter deleted matches, got %d", len(res.Matches))
	}
}

func TestFindEmptyQuery(t *testing.T) {
	h := memdoc.LoadText("foo").Handle()
	svc := NewService(nil)

	if _, err := svc.Find(h, ""); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestReplaceFirst(t *testing.T) {
	h := memdoc.LoadText("foo bar foo").Handle()
	svc := NewService(nil)

	res, err := svc.ReplaceFirst(h, "foo", "qux")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if !res.Replaced {
		t.Fatal("expected a replacement")
	}
	if res.Position != 0 {
		t.Errorf("expected position 0, got %d", res.Position)
	}

	text, _ := h.Text()
	if text.Content() != "qux bar foo" {
		t.Errorf("expected 'qux bar foo', got %q", text.Content())
	}
}

func TestReplaceFirstNoMatchIsSuccess(t *testing.T) {
	h := memdoc.LoadText("foo bar").Handle()
	svc := NewService(nil)

	res, err := svc.ReplaceFirst(h, "zzz", "q")
	if err != nil {
		t.Fatalf("nothing to replace must not error: %v", err)
	}
	if res.Replaced {
		t.Error("expected replaced false")
	}
}

func TestReplaceFirstSkipsDeletedMatches(t *testing.T) {
	h := memdoc.LoadText("foo foo").Handle()
	svc := NewService(nil)

	setRecording(t, h, true)
	markDeleted(t, h, 0, 3)

	res, err := svc.ReplaceFirst(h, "foo", "bar")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if !res.Replaced {
		t.Fatal("expected the visible occurrence replaced")
	}
	if res.Position != 4 {
		t.Errorf("expected position 4, got %d", res.Position)
	}
	if !res.TrackActive {
		t.Error("expected tracking active")
	}

	// Recording keeps the struck original ahead of the replacement.
	text, _ := h.Text()
	if text.Content() != "foo foobar" {
		t.Errorf("expected 'foo foobar', got %q", text.Content())
	}
}

func TestReplaceAllBulkWhenNotRecording(t *testing.T) {
	h := memdoc.LoadText("foo foo foo").Handle()
	svc := NewService(nil)

	res, err := svc.ReplaceAll(h, "foo", "bar")
	if err != nil {
		t.Fatalf("replace all failed: %v", err)
	}
	if res.Count != 3 {
		t.Errorf("expected 3 replacements, got %d", res.Count)
	}
	if res.TrackActive {
		t.Error("tracking should be inactive")
	}

	text, _ := h.Text()
	if text.Content() != "bar bar bar" {
		t.Errorf("expected 'bar bar bar', got %q", text.Content())
	}
}

func TestReplaceAllSkipsDeletedWhenRecording(t *testing.T) {
	h := memdoc.LoadText("foo foo foo").Handle()
	svc := NewService(nil)

	setRecording(t, h, true)
	markDeleted(t, h, 4, 7)

	res, err := svc.ReplaceAll(h, "foo", "bar")
	if err != nil {
		t.Fatalf("replace all failed: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("expected 2 replacements, got %d", res.Count)
	}
	if !res.TrackActive {
		t.Error("expected tracking active")
	}

	text, _ := h.Text()
	if text.Content() != "foobar foo foobar" {
		t.Errorf("expected 'foobar foo foobar', got %q", text.Content())
	}
}

func TestReplaceAllZeroMatches(t *testing.T) {
	h := memdoc.LoadText("nothing here").Handle()
	svc := NewService(nil)

	res, err := svc.ReplaceAll(h, "zzz", "q")
	if err != nil {
		t.Fatalf("replace all failed: %v", err)
	}
	if res.Count != 0 {
		t.Errorf("expected 0 replacements, got %d", res.Count)
	}
}

func TestReplaceAllEmptyOld(t *testing.T) {
	h := memdoc.LoadText("foo").Handle()
	svc := NewService(nil)

	if _, err := svc.ReplaceAll(h, "", "q"); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
	if _, err := svc.ReplaceFirst(h, "", "q"); !errors.Is(err, document.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestSearchRequiresTextCapability(t *testing.T) {
	h := document.NewHandle(document.KindSpreadsheet, plainMeta{})
	svc := NewService(nil)

	if _, err := svc.Find(h, "x"); !errors.Is(err, document.ErrUnsupportedDocumentType) {
		t.Errorf("expected unsupported type, got %v", err)
	}
	if _, err := svc.ReplaceAll(nil, "x", "y"); !errors.Is(err, document.ErrNoActiveDocument) {
		t.Errorf("expected no active document, got %v", err)
	}
}

func TestReplaceAllGrowingReplacementTerminates(t *testing.T) {
	h := memdoc.LoadText("a a").Handle()
	svc := NewService(nil)

	setRecording(t, h, true)

	res, err := svc.ReplaceAll(h, "a", "aa")
	if err != nil {
		t.Fatalf("replace all failed: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("expected 2 replacements, got %d", res.Count)
	}

	text, _ := h.Text()
	if text.Content() != "aaa aaa" {
		t.Errorf("expected 'aaa aaa', got %q", text.Content())
	}
}
