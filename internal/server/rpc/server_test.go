package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dshills/redline/internal/dispatcher"
	"github.com/dshills/redline/internal/dispatcher/handler"
	"github.com/dshills/redline/internal/request"
	"github.com/dshills/redline/internal/tools"
)

func newDispatcher(t *testing.T) *dispatcher.Dispatcher {
	t.Helper()

	d := dispatcher.New(dispatcher.DefaultConfig(), nil)
	d.RegisterHandler(handler.HandlerFunc(func(req request.Request, ctx *handler.Context) handler.Result {
		return handler.SuccessWith(map[string]any{"pong": true})
	}), "ping_tool")
	return d
}

func serve(t *testing.T, d *dispatcher.Dispatcher, input string) []Response {
	t.Helper()

	var out bytes.Buffer
	srv := NewServer(d, strings.NewReader(input), &out, nil)
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("Serve error = %v", err)
	}

	var resps []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var r Response
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		resps = append(resps, r)
	}
	return resps
}

func resultMap(t *testing.T, resp Response) map[string]any {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", resp.Error)
	}
	m, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("Result is %T, want map", resp.Result)
	}
	return m
}

func TestServeDispatchesTool(t *testing.T) {
	resps := serve(t, newDispatcher(t), `{"jsonrpc":"2.0","id":1,"method":"ping_tool"}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if string(resps[0].ID) != "1" {
		t.Errorf("ID = %s, want 1", resps[0].ID)
	}

	result := resultMap(t, resps[0])
	if result["success"] != true {
		t.Error("result should carry success true")
	}
	if result["pong"] != true {
		t.Error("result should carry the handler payload")
	}
}

func TestServePassesParams(t *testing.T) {
	var got request.Request
	d := dispatcher.New(dispatcher.DefaultConfig(), nil)
	d.RegisterHandler(handler.HandlerFunc(func(req request.Request, ctx *handler.Context) handler.Result {
		got = req
		return handler.SuccessWith(map[string]any{"n": req.Args.GetInt("n")})
	}), "echo_tool")

	resps := serve(t, d, `{"jsonrpc":"2.0","id":7,"method":"echo_tool","params":{"n":2,"label":"x"}}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	result := resultMap(t, resps[0])
	if result["n"] != float64(2) {
		t.Errorf("n = %v, want 2", result["n"])
	}

	if got.Source != request.SourceStdio {
		t.Errorf("Source = %v, want stdio", got.Source)
	}
	if got.ID == "" {
		t.Error("request should get a correlation id")
	}
	if got.Args.GetString("label") != "x" {
		t.Errorf("label = %q, want x", got.Args.GetString("label"))
	}
}

func TestServeToolFailureIsResult(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig(), nil)
	d.RegisterHandler(handler.HandlerFunc(func(req request.Request, ctx *handler.Context) handler.Result {
		return handler.Errorf("no active document")
	}), "bad_tool")

	resps := serve(t, d, `{"jsonrpc":"2.0","id":1,"method":"bad_tool"}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	result := resultMap(t, resps[0])
	if result["success"] != false {
		t.Error("tool failure should report success false")
	}
	if result["error"] != "no active document" {
		t.Errorf("error = %v", result["error"])
	}
}

func TestServeMethodNotFound(t *testing.T) {
	resps := serve(t, newDispatcher(t), `{"jsonrpc":"2.0","id":1,"method":"bogus_tool"}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0].Error == nil {
		t.Fatal("unknown method should be an rpc error")
	}
	if resps[0].Error.Message != "method not found: bogus_tool" {
		t.Errorf("message = %q", resps[0].Error.Message)
	}
	if resps[0].Error.Code != rpcErrorCode {
		t.Errorf("code = %d, want %d", resps[0].Error.Code, rpcErrorCode)
	}
}

func TestServeListTools(t *testing.T) {
	resps := serve(t, newDispatcher(t), `{"jsonrpc":"2.0","id":1,"method":"list_tools"}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	result := resultMap(t, resps[0])

	want := float64(len(tools.Catalog()))
	if result["count"] != want {
		t.Errorf("count = %v, want %v", result["count"], want)
	}
	list, ok := result["tools"].([]any)
	if !ok || len(list) == 0 {
		t.Fatalf("tools = %T", result["tools"])
	}
	first, ok := list[0].(map[string]any)
	if !ok || first["name"] == "" {
		t.Errorf("first tool = %v", list[0])
	}
}

func TestServeInvalidJSON(t *testing.T) {
	resps := serve(t, newDispatcher(t), "not json\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0].Error == nil || resps[0].Error.Message != "invalid json" {
		t.Errorf("response = %+v", resps[0])
	}
}

func TestServeInvalidVersion(t *testing.T) {
	resps := serve(t, newDispatcher(t), `{"jsonrpc":"1.0","id":3,"method":"ping_tool"}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0].Error == nil || resps[0].Error.Message != "invalid jsonrpc version" {
		t.Errorf("response = %+v", resps[0])
	}
}

func TestServeInvalidParams(t *testing.T) {
	resps := serve(t, newDispatcher(t), `{"jsonrpc":"2.0","id":4,"method":"ping_tool","params":[1,2]}`+"\n")

	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0].Error == nil || resps[0].Error.Message != "invalid params" {
		t.Errorf("response = %+v", resps[0])
	}
}

func TestServeNotificationSkipsResponse(t *testing.T) {
	ran := false
	d := dispatcher.New(dispatcher.DefaultConfig(), nil)
	d.RegisterHandler(handler.HandlerFunc(func(req request.Request, ctx *handler.Context) handler.Result {
		ran = true
		return handler.Success()
	}), "fire_tool")

	resps := serve(t, d, `{"jsonrpc":"2.0","method":"fire_tool"}`+"\n")

	if !ran {
		t.Error("notification should still dispatch")
	}
	if len(resps) != 0 {
		t.Errorf("got %d responses, want none", len(resps))
	}
}

func TestServeKeepsRequestOrder(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"ping_tool"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping_tool"}` + "\n"

	resps := serve(t, newDispatcher(t), input)

	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}
	if string(resps[0].ID) != "1" || string(resps[1].ID) != "2" {
		t.Errorf("response order = %s, %s", resps[0].ID, resps[1].ID)
	}
}

func TestServeEmptyInput(t *testing.T) {
	resps := serve(t, newDispatcher(t), "")

	if len(resps) != 0 {
		t.Errorf("got %d responses, want none", len(resps))
	}
}
