package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"glyph-panel/editor"
)

func (s *Server) listEditors(w http.ResponseWriter, r *http.Request) {
	editors := s.manager.List()
	infos := make([]editor.Info, len(editors))
	for i, e := range editors {
		infos[i] = e.Info()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(infos)
}

func (s *Server) createEditor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := s.manager.Create(req.Name, req.Content)
	if err != nil {
		if errors.Is(err, editor.ErrNameTaken) {
			http.Error(w, "editor name already in use", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create editor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(e.Info())
}

func (s *Server) closeEditor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.manager.Close(id); err != nil {
		if errors.Is(err, editor.ErrNotFound) {
			http.Error(w, "editor not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to close editor", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
