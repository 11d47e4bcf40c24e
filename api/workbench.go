package api

import (
	"github.com/rs/zerolog"

	"glyph-panel/editor"
	"glyph-panel/panel"
)

// workbench implements the controller's host capability over the editor
// manager and the panel hub.
type workbench struct {
	manager *editor.Manager
	hub     *panelHub
	log     zerolog.Logger
}

func (w *workbench) ActiveEditor() (panel.Document, bool) {
	e, ok := w.manager.Active()
	if !ok {
		return nil, false
	}
	return e, true
}

// NotifyError and NotifyInfo adapt the catalog loader's notifier to Notify.
func (w *workbench) NotifyError(text string) { w.Notify(panel.NoticeError, text) }
func (w *workbench) NotifyInfo(text string)  { w.Notify(panel.NoticeInfo, text) }

// Notify shows a toast in every connected panel and mirrors the notice to
// the diagnostic log.
func (w *workbench) Notify(kind panel.NoticeKind, text string) {
	w.hub.broadcast(panelEvent{Type: "notification", Kind: string(kind), Text: text})
	switch kind {
	case panel.NoticeError:
		w.log.Error().Msg(text)
	default:
		w.log.Info().Msg(text)
	}
}
