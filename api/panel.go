package api

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"glyph-panel/panel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// panelEvent is the controller→panel wire shape: notifications shown as
// toasts, and refresh requests after a catalog change.
type panelEvent struct {
	Type string `json:"type"`
	Kind string `json:"kind,omitempty"`
	Text string `json:"text,omitempty"`
}

// panelHub fans events out to connected panels and routes inbound messages
// to the handler the controller registered at resolve time.
type panelHub struct {
	mu      sync.Mutex
	handler func(panel.Message)
	clients map[chan panelEvent]struct{}
}

func newPanelHub() *panelHub {
	return &panelHub{clients: make(map[chan panelEvent]struct{})}
}

func (h *panelHub) setHandler(fn func(panel.Message)) {
	h.mu.Lock()
	h.handler = fn
	h.mu.Unlock()
}

// dispatch hands one inbound message to the controller. Messages arriving
// before the first resolve are dropped: an unresolved panel has no handler.
func (h *panelHub) dispatch(msg panel.Message) {
	h.mu.Lock()
	fn := h.handler
	h.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

func (h *panelHub) add(ch chan panelEvent) {
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
}

func (h *panelHub) remove(ch chan panelEvent) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *panelHub) broadcast(ev panelEvent) {
	h.mu.Lock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

// webSurface adapts one panel page request to the controller's Surface
// contract: content is buffered for the response, and the message handler
// lands on the hub shared by all panel websockets.
type webSurface struct {
	hub     *panelHub
	html    string
	scripts bool
}

func (ps *webSurface) EnableScripts()         { ps.scripts = true }
func (ps *webSurface) SetContent(html string) { ps.html = html }

func (ps *webSurface) OnMessage(fn func(panel.Message)) {
	ps.hub.setHandler(fn)
}

// panelPage serves the palette. Each request is a fresh resolve: the markup
// is regenerated from a new catalog load, never cached.
func (s *Server) panelPage(w http.ResponseWriter, r *http.Request) {
	surf := &webSurface{hub: s.hub}
	s.controller.Resolve(surf)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !surf.scripts {
		w.Header().Set("Content-Security-Policy", "script-src 'none'")
	}
	_, _ = w.Write([]byte(surf.html))
}

// handlePanelWS is the panel's message channel. Inbound messages are
// dispatched to the controller in arrival order, one at a time; outbound
// events come from the hub.
func (s *Server) handlePanelWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("panel WS upgrade failed")
		return
	}
	defer conn.Close()

	// Serialise all websocket writes — gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	writeEvent := func(ev panelEvent) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(ev)
	}

	events := make(chan panelEvent, 64)
	s.hub.add(events)
	defer s.hub.remove(events)

	go func() {
		for ev := range events {
			if err := writeEvent(ev); err != nil {
				return
			}
		}
	}()

	for {
		var msg panel.Message
		if err := conn.ReadJSON(&msg); err != nil {
			// Panel closed or navigated away; nothing to clean up beyond the
			// hub registration.
			return
		}
		s.hub.dispatch(msg)
	}
}
