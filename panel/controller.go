// Package panel renders the glyph palette and handles its messages.
package panel

import (
	"github.com/rs/zerolog"

	"glyph-panel/catalog"
)

// NoticeKind classifies user-visible notices.
type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Document is the active editor as the controller sees it: an atomic
// replace-all-selections primitive plus focus restoration.
type Document interface {
	// ApplyEdit replaces every current selection with text in one edit.
	ApplyEdit(text string) error
	// Reveal returns focus to the document.
	Reveal()
}

// Workbench is the host capability the controller acts through. It is passed
// in explicitly; the controller never reaches for global editor state.
type Workbench interface {
	// ActiveEditor returns the editor that currently holds focus, looked up
	// fresh on every call.
	ActiveEditor() (Document, bool)
	Notify(kind NoticeKind, text string)
}

// Surface is the rendering side of a panel: content, script capability and
// the inbound message stream.
type Surface interface {
	EnableScripts()
	SetContent(html string)
	OnMessage(handler func(Message))
}

// Message is the panel wire protocol. The only recognized command is
// insertGlyph.
type Message struct {
	Command string `json:"command"`
	Glyph   string `json:"glyph,omitempty"`
}

const cmdInsertGlyph = "insertGlyph"

// Controller owns the glyph palette panel: it renders the catalog into a
// surface and services the panel's messages against the workbench.
type Controller struct {
	loader   *catalog.Loader
	bench    Workbench
	log      zerolog.Logger
	handlers map[string]func(Message)
}

func NewController(loader *catalog.Loader, bench Workbench, log zerolog.Logger) *Controller {
	c := &Controller{loader: loader, bench: bench, log: log}
	c.handlers = map[string]func(Message){
		cmdInsertGlyph: c.insertGlyph,
	}
	return c
}

// Resolve activates the panel on a surface: scripts on, markup regenerated
// from a fresh catalog load (never cached), message handler attached. There
// is no teardown; a resolved panel lives for the session.
func (c *Controller) Resolve(s Surface) {
	s.EnableScripts()
	s.SetContent(Render(c.loader.Load()))
	s.OnMessage(c.Handle)
}

// Handle dispatches one inbound panel message. Unrecognized commands are
// ignored.
func (c *Controller) Handle(msg Message) {
	if h, ok := c.handlers[msg.Command]; ok {
		h(msg)
	}
}

func (c *Controller) insertGlyph(msg Message) {
	doc, ok := c.bench.ActiveEditor()
	if !ok {
		c.bench.Notify(NoticeInfo, "No active editor to insert glyph into.")
		return
	}
	if err := doc.ApplyEdit(msg.Glyph); err != nil {
		c.bench.Notify(NoticeError, "Failed to insert glyph.")
		c.log.Error().Err(err).Str("glyph", msg.Glyph).Msg("glyph insert failed")
		return
	}
	// Only after the edit has completed does focus go back to the document.
	doc.Reveal()
}
