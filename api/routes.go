// Package api exposes the workbench over HTTP: the static frontend, the
// editor REST surface and the two websocket channels (panel messages and
// editor state).
package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"glyph-panel/catalog"
	"glyph-panel/editor"
	"glyph-panel/panel"
)

// Server wires the editor manager and panel controller to HTTP.
type Server struct {
	manager    *editor.Manager
	controller *panel.Controller
	hub        *panelHub
	staticFS   fs.FS
	log        zerolog.Logger
}

// NewServer builds the full panel stack over an editor manager and a snippet
// source. The catalog loader reports its failures through the same panel
// notification channel the insert handler uses.
func NewServer(manager *editor.Manager, source catalog.Source, staticFS fs.FS, log zerolog.Logger) *Server {
	s := &Server{
		manager:  manager,
		hub:      newPanelHub(),
		staticFS: staticFS,
		log:      log,
	}
	bench := &workbench{manager: manager, hub: s.hub, log: log}
	loader := catalog.NewLoader(source, bench, log)
	s.controller = panel.NewController(loader, bench, log)
	return s
}

// RefreshPanels tells every connected panel to reload itself. The snippet
// file watcher calls this when the catalog source changes on disk.
func (s *Server) RefreshPanels() {
	s.hub.broadcast(panelEvent{Type: "refresh"})
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Panel: the page is a fresh resolve on every request; the websocket
	// carries its messages.
	r.Get("/panel", s.panelPage)
	r.Get("/api/panel/ws", s.handlePanelWS)

	// Editors REST
	r.Get("/api/editors", s.listEditors)
	r.Post("/api/editors", s.createEditor)
	r.Delete("/api/editors/{id}", s.closeEditor)

	// Editor state channel
	r.Get("/api/editors/{id}/ws", s.handleEditorWS)

	// Static sub-FS: strip the "static/" prefix present in the embed.FS.
	// In dev mode staticFS may already be rooted at the frontend dir; probe
	// index.html to detect which layout we have.
	staticSub, err := fs.Sub(s.staticFS, "static")
	if err != nil {
		staticSub = s.staticFS
	} else if _, statErr := fs.Stat(staticSub, "index.html"); statErr != nil {
		staticSub = s.staticFS
	}

	// Serve the workbench page by reading from the FS directly: handing
	// http.FileServer a path ending in "index.html" triggers Go's built-in
	// redirect to "./".
	r.Get("/", serveFile(staticSub, "index.html"))

	fileServer := http.FileServer(http.FS(staticSub))
	r.Get("/css/*", fileServer.ServeHTTP)
	r.Get("/js/*", fileServer.ServeHTTP)

	return r
}

// serveFile returns a handler that reads a single file from fsys and sends it.
func serveFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}
