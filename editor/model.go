package editor

import (
	"fmt"
	"sync"
	"time"
)

// Range is a selection span in rune offsets, Start <= End. Start == End is a
// bare cursor.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// EventKind discriminates events pushed to an editor's client.
type EventKind string

const (
	EventState EventKind = "state" // full buffer snapshot after a change
	EventFocus EventKind = "focus" // host wants the document focused
)

// Event is one message on an editor's client channel.
type Event struct {
	Kind       EventKind
	Content    string
	Selections []Range
	Revision   int64
}

// Editor is one open text document with live selections.
type Editor struct {
	ID        string
	Name      string
	CreatedAt time.Time

	mu         sync.Mutex
	content    []rune
	selections []Range
	revision   int64
	lastActive time.Time

	outMu     sync.Mutex
	outChan   chan Event
	kickChan  chan struct{}
	connected bool

	done      chan struct{}
	closeOnce sync.Once
}

// Info is a point-in-time metadata snapshot, safe to serialize while the
// editor keeps changing.
type Info struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Connected  bool      `json:"connected"`
}

// Info snapshots the editor's metadata under its locks.
func (e *Editor) Info() Info {
	e.mu.Lock()
	lastActive := e.lastActive
	e.mu.Unlock()
	e.outMu.Lock()
	connected := e.connected
	e.outMu.Unlock()
	return Info{
		ID:         e.ID,
		Name:       e.Name,
		CreatedAt:  e.CreatedAt,
		LastActive: lastActive,
		Connected:  connected,
	}
}

// Content returns the current buffer text.
func (e *Editor) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.content)
}

// Selections returns a copy of the current selection set, in its stored
// order.
func (e *Editor) Selections() []Range {
	e.mu.Lock()
	defer e.mu.Unlock()
	sels := make([]Range, len(e.selections))
	copy(sels, e.selections)
	return sels
}

// Revision returns the buffer's edit counter.
func (e *Editor) Revision() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// SetSelections replaces the selection set. Ranges must be within the
// buffer, non-inverted and pairwise disjoint (touching endpoints are fine);
// the stored order is the caller's order.
func (e *Editor) SetSelections(sels []Range) error {
	ev, err := e.setSelectionsLocked(sels)
	if err != nil {
		return err
	}
	e.push(ev)
	return nil
}

func (e *Editor) setSelectionsLocked(sels []Range) (Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.content)
	for _, r := range sels {
		if r.Start < 0 || r.End < r.Start || r.End > n {
			return Event{}, fmt.Errorf("selection [%d,%d) out of range (buffer length %d)", r.Start, r.End, n)
		}
	}
	// ApplyEdit walks the ranges in ascending order and assumes they do not
	// overlap; an overlapping set would double-delete the shared span.
	order := ascendingOrder(sels)
	for i := 1; i < len(order); i++ {
		prev, cur := sels[order[i-1]], sels[order[i]]
		if cur.Start < prev.End {
			return Event{}, fmt.Errorf("selections [%d,%d) and [%d,%d) overlap",
				prev.Start, prev.End, cur.Start, cur.End)
		}
	}

	e.selections = make([]Range, len(sels))
	copy(e.selections, sels)
	if len(e.selections) == 0 {
		e.selections = []Range{{}}
	}
	e.lastActive = time.Now()
	return e.stateLocked(), nil
}

// ApplyEdit replaces every current selection with text as one atomic edit.
// Each selection collapses to a cursor after its inserted text, and the new
// state is pushed to the attached client.
func (e *Editor) ApplyEdit(text string) error {
	e.push(e.applyLocked([]rune(text)))
	return nil
}

func (e *Editor) applyLocked(ins []rune) Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Apply in ascending range order, tracking the cumulative length shift so
	// later offsets stay valid. SetSelections guarantees the ranges are
	// disjoint.
	order := ascendingOrder(e.selections)
	next := make([]rune, 0, len(e.content)+len(ins)*len(order))
	newSels := make([]Range, len(e.selections))

	prev := 0
	shift := 0
	for _, i := range order {
		r := e.selections[i]
		next = append(next, e.content[prev:r.Start]...)
		next = append(next, ins...)
		cursor := r.Start + shift + len(ins)
		newSels[i] = Range{Start: cursor, End: cursor}
		shift += len(ins) - (r.End - r.Start)
		prev = r.End
	}
	next = append(next, e.content[prev:]...)

	e.content = next
	e.selections = newSels
	e.revision++
	e.lastActive = time.Now()
	return e.stateLocked()
}

// Reveal asks the attached client to focus the document.
func (e *Editor) Reveal() {
	e.push(Event{Kind: EventFocus})
}

// State returns a snapshot event of the current buffer.
func (e *Editor) State() Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Editor) stateLocked() Event {
	sels := make([]Range, len(e.selections))
	copy(sels, e.selections)
	return Event{
		Kind:       EventState,
		Content:    string(e.content),
		Selections: sels,
		Revision:   e.revision,
	}
}

// ascendingOrder returns selection indices sorted by Start offset without
// disturbing the stored selection order.
func ascendingOrder(sels []Range) []int {
	order := make([]int, len(sels))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && sels[order[j]].Start < sels[order[j-1]].Start; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}

// SetClient registers a channel to receive buffer events. If a previous
// client is attached it is kicked: its kick channel is closed so the
// websocket layer can detect the displacement and drop that connection.
// Returns a kick channel that is closed if this client is itself displaced.
func (e *Editor) SetClient(ch chan Event) <-chan struct{} {
	e.outMu.Lock()
	defer e.outMu.Unlock()
	if e.kickChan != nil {
		close(e.kickChan)
	}
	kick := make(chan struct{})
	e.kickChan = kick
	e.outChan = ch
	e.connected = true
	return kick
}

// ClearClient is called when a connection ends. It only updates editor state
// if ch is still the current owner (a displaced connection must not clear a
// newer one). It always closes ch so the pump goroutine exits.
func (e *Editor) ClearClient(ch chan Event) {
	e.outMu.Lock()
	if e.outChan == ch {
		e.outChan = nil
		e.connected = false
		e.kickChan = nil
	}
	e.outMu.Unlock()
	close(ch)
}

// Done returns a channel closed when the editor is closed by the manager.
func (e *Editor) Done() <-chan struct{} {
	return e.done
}

func (e *Editor) push(ev Event) {
	e.outMu.Lock()
	if e.outChan != nil {
		select {
		case e.outChan <- ev:
		default:
		}
	}
	e.outMu.Unlock()
}

func (e *Editor) close() {
	e.closeOnce.Do(func() { close(e.done) })
}
