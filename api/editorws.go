package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"glyph-panel/editor"
)

// editorWireMsg is the editor websocket wire shape, both directions.
// Inbound: type "select" (selections) or "input" (text). Outbound: "state"
// (content + selections + revision), "focus", "closed".
type editorWireMsg struct {
	Type       string         `json:"type"`
	Text       string         `json:"text,omitempty"`
	Content    string         `json:"content,omitempty"`
	Selections []editor.Range `json:"selections,omitempty"`
	Revision   int64          `json:"revision,omitempty"`
}

func wireEvent(ev editor.Event) editorWireMsg {
	switch ev.Kind {
	case editor.EventFocus:
		return editorWireMsg{Type: "focus"}
	default:
		return editorWireMsg{
			Type:       "state",
			Content:    ev.Content,
			Selections: ev.Selections,
			Revision:   ev.Revision,
		}
	}
}

func (s *Server) handleEditorWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := s.manager.Get(id)
	if !ok {
		http.Error(w, "editor not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("editor WS upgrade failed")
		return
	}
	defer conn.Close()

	// Serialise all websocket writes — gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeMsg := func(msg editorWireMsg) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	events := make(chan editor.Event, 64)
	kick := e.SetClient(events) // displaces any prior client
	defer e.ClearClient(events) // closes events + clears state if still owner

	// Connecting gives the editor focus.
	_ = s.manager.SetActive(id)

	// Initial snapshot so the client renders without waiting for an edit.
	if err := writeMsg(wireEvent(e.State())); err != nil {
		return
	}

	// Pump buffer events to the client. Exits when ClearClient closes events.
	go func() {
		for ev := range events {
			if err := writeMsg(wireEvent(ev)); err != nil {
				return
			}
		}
	}()

	// Watch for editor closure or displacement and close the connection so
	// ReadJSON below unblocks immediately.
	connDone := make(chan struct{})
	go func() {
		select {
		case <-e.Done():
			writeMsg(editorWireMsg{Type: "closed"}) //nolint:errcheck
			conn.Close()
		case <-kick:
			// Displaced by a newer connection — close without a "closed"
			// message so the client shows a disconnected state rather than
			// editor-gone.
			conn.Close()
		case <-connDone:
		}
	}()
	defer close(connDone)

	for {
		var msg editorWireMsg
		if err := conn.ReadJSON(&msg); err != nil {
			// Client disconnected, or conn was closed by the done-watcher
			// above. The editor keeps its buffer either way.
			return
		}

		switch msg.Type {
		case "select":
			_ = s.manager.SetActive(id)
			if err := e.SetSelections(msg.Selections); err != nil {
				s.log.Warn().Err(err).Str("editor", id).Msg("rejected selection update")
			}
		case "input":
			_ = s.manager.SetActive(id)
			if err := e.ApplyEdit(msg.Text); err != nil {
				s.log.Error().Err(err).Str("editor", id).Msg("edit failed")
				return
			}
		}
	}
}
