package navigate

import (
	"testing"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/document/memdoc"
	"github.com/dshills/redline/internal/engine/paragraph"
	"github.com/dshills/redline/internal/request"
)

func testContext(h *document.Handle) *handler.Context {
	return &handler.Context{
		Doc:        h,
		Paragraphs: paragraph.NewService(nil),
	}
}

func call(t *testing.T, name string, args request.Args, ctx *handler.Context) handler.Result {
	t.Helper()
	return NewNavigateHandler().Handle(request.Request{Name: name, Args: args}, ctx)
}

func TestGotoParagraphMovesCursor(t *testing.T) {
	h := memdoc.LoadText("first\nsecond\nthird").Handle()

	res := call(t, ToolGotoParagraph, request.Args{"n": 2}, testContext(h))
	if !res.IsOK() {
		t.Fatalf("goto paragraph failed: %s", res.Error)
	}
	if res.Data["paragraph"] != 2 {
		t.Errorf("expected paragraph 2, got %v", res.Data["paragraph"])
	}
	if res.Message != "Cursor moved to paragraph 2" {
		t.Errorf("unexpected message %q", res.Message)
	}

	tc, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if tc.CursorOffset() != 6 {
		t.Errorf("expected cursor at 6, got %d", tc.CursorOffset())
	}
}

func TestGotoParagraphOutOfRange(t *testing.T) {
	h := memdoc.LoadText("only").Handle()

	res := call(t, ToolGotoParagraph, request.Args{"n": 3}, testContext(h))
	if !res.IsError() {
		t.Fatal("expected error for out of range paragraph")
	}
}

func TestGotoParagraphRequiresNumber(t *testing.T) {
	h := memdoc.LoadText("only").Handle()

	res := call(t, ToolGotoParagraph, nil, testContext(h))
	if !res.IsError() {
		t.Fatal("expected error without n parameter")
	}
}

func TestGotoPositionClampsToEnd(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()

	res := call(t, ToolGotoPosition, request.Args{"char_pos": 99}, testContext(h))
	if !res.IsOK() {
		t.Fatalf("goto position failed: %s", res.Error)
	}
	if res.Data["position"] != 5 {
		t.Errorf("expected clamped position 5, got %v", res.Data["position"])
	}
	if res.Data["requested_position"] != 99 {
		t.Errorf("expected requested 99, got %v", res.Data["requested_position"])
	}
	if res.Message != "Cursor moved to position 5" {
		t.Errorf("unexpected message %q", res.Message)
	}
}

func TestGotoPositionRejectsNegative(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()

	res := call(t, ToolGotoPosition, request.Args{"char_pos": -1}, testContext(h))
	if !res.IsError() {
		t.Fatal("expected error for negative position")
	}
}

func TestCursorPositionReportsParagraph(t *testing.T) {
	h := memdoc.LoadText("first\nsecond").Handle()
	tc, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	tc.MoveCursor(8)

	res := call(t, ToolCursorPosition, nil, testContext(h))
	if !res.IsOK() {
		t.Fatalf("cursor position failed: %s", res.Error)
	}
	if res.Data["position"] != 8 {
		t.Errorf("expected position 8, got %v", res.Data["position"])
	}
	if res.Data["paragraph"] != 2 {
		t.Errorf("expected paragraph 2, got %v", res.Data["paragraph"])
	}
}

func TestContextAroundCursor(t *testing.T) {
	h := memdoc.LoadText("Hello World").Handle()
	tc, err := h.Text()
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	tc.MoveCursor(5)

	res := call(t, ToolContext, request.Args{"chars": 3}, testContext(h))
	if !res.IsOK() {
		t.Fatalf("context failed: %s", res.Error)
	}
	if res.Data["before"] != "llo" {
		t.Errorf("expected before llo, got %v", res.Data["before"])
	}
	if res.Data["after"] != " Wo" {
		t.Errorf("expected after ' Wo', got %v", res.Data["after"])
	}
	if res.Data["position"] != 5 {
		t.Errorf("expected position 5, got %v", res.Data["position"])
	}
	if res.Data["chars_requested"] != 3 {
		t.Errorf("expected chars_requested 3, got %v", res.Data["chars_requested"])
	}
}

func TestContextDefaultSize(t *testing.T) {
	h := memdoc.LoadText("Hello").Handle()

	res := call(t, ToolContext, nil, testContext(h))
	if !res.IsOK() {
		t.Fatalf("context failed: %s", res.Error)
	}
	if res.Data["chars_requested"] != defaultContextChars {
		t.Errorf("expected default size, got %v", res.Data["chars_requested"])
	}
	if res.Data["after"] != "Hello" {
		t.Errorf("expected whole text after cursor, got %v", res.Data["after"])
	}
}

func TestNavigateRequiresDocument(t *testing.T) {
	res := call(t, ToolCursorPosition, nil, testContext(nil))
	if !res.IsError() {
		t.Fatal("expected error without an open document")
	}
}
