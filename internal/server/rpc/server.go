// Package rpc serves tool calls over line-delimited JSON-RPC 2.0 on a
// reader/writer pair, normally stdin and stdout. Each request line
// carries a tool name as the method and the tool arguments as params;
// the result is the same payload the HTTP transport returns.
package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/dispatcher"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/request"
	"github.com/dshills/redline/internal/tools"
)

const (
	jsonRPCVersion = "2.0"
	rpcErrorCode   = -32000
	maxMessageSize = 10 * 1024 * 1024
)

// methodListTools returns the tool catalog instead of dispatching.
const methodListTools = "list_tools"

// Request is one incoming JSON-RPC message.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is one outgoing JSON-RPC message.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorPayload   `json:"error,omitempty"`
}

// ErrorPayload is the error member of a failed response.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Server reads requests line by line and dispatches them in order.
// Tool calls mutate a shared document, so requests are handled
// sequentially; responses keep request order.
type Server struct {
	dispatch *dispatcher.Dispatcher
	reader   *bufio.Reader
	writer   *bufio.Writer
	mu       sync.Mutex
	log      *slog.Logger
}

// NewServer creates a stdio server around the dispatcher.
func NewServer(d *dispatcher.Dispatcher, r io.Reader, w io.Writer, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{
		dispatch: d,
		reader:   bufio.NewReader(r),
		writer:   bufio.NewWriter(w),
		log:      log,
	}
}

// Serve reads requests until EOF or context cancellation. Malformed
// input produces an error response and the loop keeps going.
func (s *Server) Serve(ctx context.Context) error {
	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Error("rpc read failed", "error", err)
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(line) > maxMessageSize {
			s.log.Warn("rpc message too large", "bytes", len(line))
			s.sendError(nil, "message too large", nil)
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("rpc invalid json", "error", err)
			s.sendError(nil, "invalid json", nil)
			continue
		}
		if req.JSONRPC != jsonRPCVersion {
			s.log.Warn("rpc invalid version", "version", req.JSONRPC)
			s.sendError(req.ID, "invalid jsonrpc version", nil)
			continue
		}

		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	if req.Method == methodListTools {
		catalog := tools.Catalog()
		s.respond(req.ID, map[string]any{"tools": catalog, "count": len(catalog)})
		return
	}

	if !s.dispatch.Registry().Has(req.Method) {
		s.log.Warn("rpc unknown method", "method", req.Method)
		s.sendError(req.ID, fmt.Sprintf("method not found: %s", req.Method), nil)
		return
	}

	args := request.Args{}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &args); err != nil {
			s.log.Warn("rpc invalid params", "method", req.Method, "error", err)
			s.sendError(req.ID, "invalid params", nil)
			return
		}
	}

	result := s.dispatch.Dispatch(request.Request{
		ID:     uuid.NewString(),
		Name:   req.Method,
		Args:   args,
		Source: request.SourceStdio,
	})

	// A request without an id is a notification.
	if req.ID == nil {
		return
	}
	s.respond(req.ID, result.Payload())
}

func (s *Server) respond(id json.RawMessage, result any) {
	s.send(Response{JSONRPC: jsonRPCVersion, ID: id, Result: result})
}

func (s *Server) sendError(id json.RawMessage, message string, data any) {
	s.send(Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &ErrorPayload{Code: rpcErrorCode, Message: message, Data: data},
	})
}

func (s *Server) send(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("rpc marshal failed", "error", err)
		return
	}
	_, _ = s.writer.Write(append(data, '\n'))
	_ = s.writer.Flush()
}
