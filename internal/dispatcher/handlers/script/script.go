// Package script provides the handler for macro execution.
package script

import (
	"context"

	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/macro"
	"github.com/dshills/redline/internal/request"
)

// ToolRunMacro executes a Lua script against the tool surface.
const ToolRunMacro = "run_macro"

// ScriptHandler handles macro execution. A nil executor means macros
// are disabled and every call fails cleanly.
type ScriptHandler struct {
	exec *macro.Executor
}

// NewScriptHandler creates a new script handler.
func NewScriptHandler(exec *macro.Executor) *ScriptHandler {
	return &ScriptHandler{exec: exec}
}

// Names returns every tool name this handler serves.
func (h *ScriptHandler) Names() []string {
	return []string{ToolRunMacro}
}

// CanHandle returns true if this handler can process the tool.
func (h *ScriptHandler) CanHandle(name string) bool {
	return name == ToolRunMacro
}

// Handle processes a script tool call.
func (h *ScriptHandler) Handle(req request.Request, ctx *handler.Context) handler.Result {
	if req.Name != ToolRunMacro {
		return handler.Errorf("unknown script tool: %s", req.Name)
	}
	if h.exec == nil {
		return handler.Error(macro.ErrDisabled)
	}
	if !req.Args.Has("script") {
		return handler.Errorf("missing required parameter: script")
	}
	source := req.Args.GetString("script")

	out, err := h.exec.Run(context.Background(), source)
	if err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWith(map[string]any{"result": out})
}
