package editor

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNameTaken = errors.New("editor name already in use")
var ErrNotFound = errors.New("editor not found")

// Manager owns the open editors and tracks which one is active. The active
// reference is looked up fresh on every query so callers never act on a
// stale editor after focus moves.
type Manager struct {
	mu      sync.RWMutex
	editors map[string]*Editor
	active  string
}

func NewManager() *Manager {
	return &Manager{editors: make(map[string]*Editor)}
}

// Create opens a new editor with the given name and initial content. The new
// editor becomes active.
func (m *Manager) Create(name, content string) (*Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.editors {
		if e.Name == name {
			return nil, ErrNameTaken
		}
	}

	e := &Editor{
		ID:         uuid.New().String(),
		Name:       name,
		CreatedAt:  time.Now(),
		content:    []rune(content),
		selections: []Range{{}},
		lastActive: time.Now(),
		done:       make(chan struct{}),
	}
	m.editors[e.ID] = e
	m.active = e.ID
	return e, nil
}

// List returns the open editors ordered by creation time.
func (m *Manager) List() []*Editor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*Editor, 0, len(m.editors))
	for _, e := range m.editors {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].Name < list[j].Name
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (m *Manager) Get(id string) (*Editor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.editors[id]
	return e, ok
}

// SetActive marks the editor that currently holds focus.
func (m *Manager) SetActive(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.editors[id]; !ok {
		return ErrNotFound
	}
	m.active = id
	return nil
}

// Active returns the editor that currently holds focus, if any.
func (m *Manager) Active() (*Editor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.editors[m.active]
	return e, ok
}

// Close shuts an editor and removes it. If it was active, no editor is
// active afterwards.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.editors[id]
	if !ok {
		return ErrNotFound
	}
	e.close()
	delete(m.editors, id)
	if m.active == id {
		m.active = ""
	}
	return nil
}
