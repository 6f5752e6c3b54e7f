// Package httpd exposes the tool surface over HTTP. Tool calls go to
// POST /tools/{name} with a JSON body of named arguments; /health and
// /stats report process state. Dispatch is serialized so at most one
// tool call touches the document at a time.
package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/dispatcher"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/request"
	"github.com/dshills/redline/internal/tools"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// Server serves the tool dispatcher over HTTP.
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	dispatch   *dispatcher.Dispatcher
	resolver   dispatcher.Resolver
	mu         sync.Mutex
	log        *slog.Logger
}

// NewServer creates an HTTP server on addr around the dispatcher. The
// resolver supplies the active document for the health summary and may
// be nil.
func NewServer(addr string, d *dispatcher.Dispatcher, resolver dispatcher.Resolver, log *slog.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	s := &Server{
		router:   http.NewServeMux(),
		dispatch: d,
		resolver: resolver,
		log:      log,
	}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("POST /tools/{name}", s.handleTool)
	s.router.HandleFunc("GET /tools", s.handleListTools)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)
}

// Start listens and serves until Shutdown.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP dispatches one request through the server's router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.dispatch.Registry().Has(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", name))
		return
	}

	args := request.Args{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// One tool call at a time; the document has a single writer.
	s.mu.Lock()
	result := s.dispatch.Dispatch(request.Request{
		ID:     uuid.NewString(),
		Name:   name,
		Args:   args,
		Source: request.SourceHTTP,
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, result.Payload())
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	catalog := tools.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{"tools": catalog, "count": len(catalog)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	var doc *document.Handle
	if s.resolver != nil {
		doc = s.resolver()
	}

	resp := map[string]any{"status": "ok", "document": nil}
	if doc != nil {
		summary := map[string]any{"type": string(doc.Kind())}
		if meta := doc.Metadata(); meta != nil {
			summary["title"] = meta.Title()
			summary["modified"] = meta.Modified()
		}
		resp["document"] = summary
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	m := s.dispatch.Metrics()
	if m == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}

	perTool := make([]map[string]any, 0)
	for _, tm := range m.PerTool() {
		perTool = append(perTool, map[string]any{
			"name":       tm.Name,
			"dispatches": tm.DispatchCount,
			"errors":     tm.ErrorCount,
			"average_ns": tm.AverageToolDuration(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":  true,
		"snapshot": m.Snapshot(),
		"tools":    perTool,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
