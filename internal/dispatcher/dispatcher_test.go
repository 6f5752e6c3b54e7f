package dispatcher

import (
	"strings"
	"testing"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/document/memdoc"
	"github.com/dshills/redline/internal/request"
)

func TestDispatchUnknownTool(t *testing.T) {
	d := NewWithDefaults()

	res := d.Dispatch(request.Request{Name: "no_such_tool"})
	if !res.IsError() {
		t.Fatal("expected error result for unknown tool")
	}
	if !strings.Contains(res.Error.Error(), "unknown tool") {
		t.Errorf("expected unknown tool error, got %q", res.Error)
	}
}

func TestDispatchRoutesToHandler(t *testing.T) {
	d := NewWithDefaults()

	var seen string
	d.RegisterHandler(handler.HandlerFunc(func(req request.Request, _ *handler.Context) handler.Result {
		seen = req.Name
		return handler.SuccessWithMessage("done")
	}), "ping")

	res := d.Dispatch(request.Request{Name: "ping"})
	if !res.IsOK() {
		t.Fatalf("expected success, got error %q", res.Error)
	}
	if seen != "ping" {
		t.Errorf("expected handler to receive ping, got %q", seen)
	}
	if res.Message != "done" {
		t.Errorf("expected message done, got %q", res.Message)
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d := NewWithDefaults()

	d.RegisterHandler(handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		panic("boom")
	}), "explode")

	res := d.Dispatch(request.Request{Name: "explode"})
	if !res.IsError() {
		t.Fatal("expected error result after panic")
	}
	if !strings.Contains(res.Error.Error(), "internal error") {
		t.Errorf("expected internal error, got %q", res.Error)
	}
	if got := d.Metrics().TotalPanics(); got != 1 {
		t.Errorf("expected 1 recorded panic, got %d", got)
	}
}

func TestDispatchContextCarriesDocument(t *testing.T) {
	d := NewWithDefaults()
	doc := memdoc.LoadText("Hello")
	d.SetResolver(func() *document.Handle { return doc.Handle() })

	var got *document.Handle
	d.RegisterHandler(handler.HandlerFunc(func(_ request.Request, ctx *handler.Context) handler.Result {
		got = ctx.Doc
		return handler.Success()
	}), "probe")

	d.Dispatch(request.Request{Name: "probe"})
	if got == nil {
		t.Fatal("expected resolver document in handler context")
	}
	text, err := got.Text()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.Content() != "Hello" {
		t.Errorf("expected resolved document content Hello, got %q", text.Content())
	}
}

func TestDispatchContextWithoutResolver(t *testing.T) {
	d := NewWithDefaults()

	var got *handler.Context
	d.RegisterHandler(handler.HandlerFunc(func(_ request.Request, ctx *handler.Context) handler.Result {
		got = ctx
		return handler.Success()
	}), "probe")

	d.Dispatch(request.Request{Name: "probe"})
	if got == nil {
		t.Fatal("expected handler context")
	}
	if got.Doc != nil {
		t.Error("expected nil document without a resolver")
	}
	if got.Paragraphs == nil || got.Edits == nil || got.Search == nil || got.Changes == nil || got.Content == nil {
		t.Error("expected all services to be populated")
	}
	if got.Author != DefaultConfig().DefaultAuthor {
		t.Errorf("expected default author, got %q", got.Author)
	}
}

func TestDispatchRecordsMetrics(t *testing.T) {
	d := NewWithDefaults()
	d.RegisterHandler(handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Success()
	}), "ok_tool")
	d.RegisterHandler(handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Errorf("nope")
	}), "bad_tool")

	d.Dispatch(request.Request{Name: "ok_tool"})
	d.Dispatch(request.Request{Name: "ok_tool"})
	d.Dispatch(request.Request{Name: "bad_tool"})

	m := d.Metrics()
	if got := m.TotalDispatches(); got != 3 {
		t.Errorf("expected 3 dispatches, got %d", got)
	}
	if got := m.TotalErrors(); got != 1 {
		t.Errorf("expected 1 error, got %d", got)
	}
	ok := m.ToolStats("ok_tool")
	if ok == nil || ok.DispatchCount != 2 {
		t.Error("expected 2 dispatches for ok_tool")
	}
	bad := m.ToolStats("bad_tool")
	if bad == nil || bad.ErrorCount != 1 {
		t.Error("expected 1 error for bad_tool")
	}
}

func TestDispatchMetricsDisabled(t *testing.T) {
	cfg := DefaultConfig().WithMetrics(false)
	d := New(cfg, nil)
	d.RegisterHandler(handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Success()
	}), "ok_tool")

	d.Dispatch(request.Request{Name: "ok_tool"})
	if d.Metrics() != nil {
		t.Error("expected nil metrics when disabled")
	}
}

func TestRegistryReplacesOnRegister(t *testing.T) {
	r := NewRegistry()

	first := handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Errorf("first")
	})
	second := handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Errorf("second")
	})
	r.Register("tool", first)
	r.Register("tool", second)

	h := r.Get("tool")
	if h == nil {
		t.Fatal("expected registered handler")
	}
	res := h.Handle(request.Request{}, nil)
	if res.Error.Error() != "second" {
		t.Errorf("expected second registration to win, got %q", res.Error)
	}
	if r.Count() != 1 {
		t.Errorf("expected 1 registration, got %d", r.Count())
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	noop := handler.HandlerFunc(func(request.Request, *handler.Context) handler.Result {
		return handler.Success()
	})
	r.Register("zeta", noop)
	r.Register("alpha", noop)
	r.Register("mid", noop)

	got := r.List()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestConfigBuilders(t *testing.T) {
	cfg := DefaultConfig().WithMetrics(false).WithPanicRecovery(false).WithDefaultAuthor("Reviewer")
	if cfg.EnableMetrics {
		t.Error("expected metrics disabled")
	}
	if cfg.RecoverFromPanic {
		t.Error("expected panic recovery disabled")
	}
	if cfg.DefaultAuthor != "Reviewer" {
		t.Errorf("expected author Reviewer, got %q", cfg.DefaultAuthor)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch("a", 10, handler.StatusOK)
	m.RecordDispatch("a", 30, handler.StatusError)
	m.RecordDispatch("b", 20, handler.StatusOK)

	snap := m.Snapshot()
	if snap.TotalDispatches != 3 {
		t.Errorf("expected 3 dispatches, got %d", snap.TotalDispatches)
	}
	if snap.TotalErrors != 1 {
		t.Errorf("expected 1 error, got %d", snap.TotalErrors)
	}
	if snap.ToolCount != 2 {
		t.Errorf("expected 2 tools, got %d", snap.ToolCount)
	}
	if snap.AverageDuration != 20 {
		t.Errorf("expected average duration 20ns, got %d", snap.AverageDuration)
	}

	per := m.PerTool()
	if len(per) != 2 || per[0].Name != "a" {
		t.Errorf("expected per-tool stats led by a, got %+v", per)
	}
}
