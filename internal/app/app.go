// Package app wires the document, dispatcher, tool handlers, macro
// engine, and transports into one process.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/dispatcher"
	"github.com/dshills/redline/internal/dispatcher/handlers/changes"
	"github.com/dshills/redline/internal/dispatcher/handlers/editing"
	"github.com/dshills/redline/internal/dispatcher/handlers/inspect"
	"github.com/dshills/redline/internal/dispatcher/handlers/navigate"
	"github.com/dshills/redline/internal/dispatcher/handlers/script"
	"github.com/dshills/redline/internal/dispatcher/handlers/search"
	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/document/memdoc"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/macro"
	"github.com/dshills/redline/internal/request"
	"github.com/dshills/redline/internal/server/httpd"
	"github.com/dshills/redline/internal/server/rpc"
)

const shutdownTimeout = 5 * time.Second

// Application is the central coordinator. It owns the working document
// and the dispatcher every transport routes through.
type Application struct {
	cfg config.Config
	log *logging.Logger

	// Document and tool surface
	doc        *memdoc.Doc
	dispatcher *dispatcher.Dispatcher
	macros     *macro.Executor

	// Config live reload
	watcher *config.Watcher
}

// New creates an application from a validated configuration.
func New(cfg config.Config, log *logging.Logger) (*Application, error) {
	app := &Application{cfg: cfg, log: log}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Working document
	if app.cfg.Document.Path != "" {
		doc, err := memdoc.LoadFile(app.cfg.Document.Path, memdoc.WithAuthor(app.cfg.Document.Author))
		if err != nil {
			return fmt.Errorf("app: open document: %w", err)
		}
		app.doc = doc
	} else {
		app.doc = memdoc.New(memdoc.WithAuthor(app.cfg.Document.Author))
	}
	if rl, err := app.doc.Handle().Redlines(); err == nil {
		rl.SetRecording(app.cfg.Document.TrackChanges)
		rl.SetShowing(app.cfg.Document.ShowChanges)
	}

	// 2. Dispatcher
	dcfg := dispatcher.DefaultConfig().WithDefaultAuthor(app.cfg.Document.Author)
	app.dispatcher = dispatcher.New(dcfg, app.log.Logger)
	app.dispatcher.SetResolver(app.resolve)

	// 3. Macro engine; office.call loops back through the dispatcher
	if app.cfg.Macro.Enabled {
		opts := []macro.Option{macro.WithLogger(app.log.Logger)}
		if app.cfg.Macro.TimeoutSeconds > 0 {
			opts = append(opts, macro.WithTimeout(time.Duration(app.cfg.Macro.TimeoutSeconds)*time.Second))
		}
		app.macros = macro.New(macro.CallerFunc(app.callTool), opts...)
	}

	// 4. Tool handlers
	app.registerHandlers()

	return nil
}

func (app *Application) registerHandlers() {
	d := app.dispatcher

	ih := inspect.NewInspectHandler()
	d.RegisterHandler(ih, ih.Names()...)

	nh := navigate.NewNavigateHandler()
	d.RegisterHandler(nh, nh.Names()...)

	eh := editing.NewEditingHandler()
	d.RegisterHandler(eh, eh.Names()...)

	sh := search.NewSearchHandler()
	d.RegisterHandler(sh, sh.Names()...)

	ch := changes.NewChangesHandler()
	d.RegisterHandler(ch, ch.Names()...)

	// Registered even when macros are off so run_macro reports why.
	mh := script.NewScriptHandler(app.macros)
	d.RegisterHandler(mh, mh.Names()...)
}

func (app *Application) resolve() *document.Handle {
	return app.doc.Handle()
}

// callTool dispatches one macro-originated tool call. The transport
// already serializes around the whole run_macro call, so dispatching
// here keeps the script atomic from its point of view.
func (app *Application) callTool(name string, args map[string]any) map[string]any {
	result := app.dispatcher.Dispatch(request.Request{
		ID:     uuid.NewString(),
		Name:   name,
		Args:   request.Args(args),
		Source: request.SourceMacro,
	})
	return result.Payload()
}

// WatchConfig reloads reload-safe settings when the file at path
// changes. Only the log level applies live; everything else needs a
// restart.
func (app *Application) WatchConfig(path string) error {
	w, err := config.Watch(path, app.applyReload, config.WithWatchLogger(app.log.Logger))
	if err != nil {
		return fmt.Errorf("app: watch config: %w", err)
	}
	app.watcher = w
	return nil
}

func (app *Application) applyReload(cfg config.Config) {
	if err := app.log.SetLevel(cfg.Log.Level); err != nil {
		app.log.Warn("reload: bad log level", "level", cfg.Log.Level, "error", err)
		return
	}
	app.log.Info("log level applied", "level", cfg.Log.Level)
}

// Run serves the configured transport until ctx is canceled or the
// transport stops on its own.
func (app *Application) Run(ctx context.Context) error {
	if app.cfg.Server.Stdio {
		srv := rpc.NewServer(app.dispatcher, os.Stdin, os.Stdout, app.log.Logger)
		app.log.Info("serving stdio")
		return srv.Serve(ctx)
	}

	srv := httpd.NewServer(app.cfg.Server.HTTPAddr, app.dispatcher, app.resolve, app.log.Logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return <-errCh
}

// Close releases background resources.
func (app *Application) Close() {
	if app.watcher != nil {
		app.watcher.Close()
	}
}

// Dispatcher returns the tool dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Doc returns the working document.
func (app *Application) Doc() *memdoc.Doc {
	return app.doc
}
