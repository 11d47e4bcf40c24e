package editor_test

import (
	"testing"
	"time"

	"glyph-panel/editor"
)

func newEditor(t *testing.T, content string) (*editor.Manager, *editor.Editor) {
	t.Helper()
	m := editor.NewManager()
	e, err := m.Create("test", content)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return m, e
}

func TestApplyEditReplacesAllSelections(t *testing.T) {
	_, e := newEditor(t, "aaa bbb ccc")
	if err := e.SetSelections([]editor.Range{{Start: 0, End: 3}, {Start: 8, End: 11}}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}

	if err := e.ApplyEdit("⍳"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if got := e.Content(); got != "⍳ bbb ⍳" {
		t.Fatalf("content: got %q", got)
	}
}

func TestApplyEditCollapsesSelectionsAfterInsert(t *testing.T) {
	_, e := newEditor(t, "xy")
	if err := e.SetSelections([]editor.Range{{Start: 0, End: 0}, {Start: 2, End: 2}}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}

	if err := e.ApplyEdit("+"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if got := e.Content(); got != "+xy+" {
		t.Fatalf("content: got %q", got)
	}

	sels := e.Selections()
	want := []editor.Range{{Start: 1, End: 1}, {Start: 4, End: 4}}
	if len(sels) != len(want) {
		t.Fatalf("selections: got %v, want %v", sels, want)
	}
	for i := range want {
		if sels[i] != want[i] {
			t.Errorf("selection %d: got %v, want %v", i, sels[i], want[i])
		}
	}
}

func TestApplyEditUsesRuneOffsets(t *testing.T) {
	// Multi-byte glyphs must count as one position.
	_, e := newEditor(t, "⍳⍳⍳")
	if err := e.SetSelections([]editor.Range{{Start: 1, End: 2}}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}

	if err := e.ApplyEdit("⌽"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if got := e.Content(); got != "⍳⌽⍳" {
		t.Fatalf("content: got %q", got)
	}
}

func TestApplyEditPreservesSelectionStorageOrder(t *testing.T) {
	// Selections stored last-first must still replace correctly and keep
	// their stored order after the edit.
	_, e := newEditor(t, "123456")
	if err := e.SetSelections([]editor.Range{{Start: 4, End: 6}, {Start: 0, End: 2}}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}

	if err := e.ApplyEdit("_"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if got := e.Content(); got != "_34_" {
		t.Fatalf("content: got %q", got)
	}

	sels := e.Selections()
	want := []editor.Range{{Start: 4, End: 4}, {Start: 1, End: 1}}
	for i := range want {
		if sels[i] != want[i] {
			t.Errorf("selection %d: got %v, want %v", i, sels[i], want[i])
		}
	}
}

func TestApplyEditBumpsRevision(t *testing.T) {
	_, e := newEditor(t, "")
	before := e.Revision()
	if err := e.ApplyEdit("x"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if e.Revision() != before+1 {
		t.Fatalf("revision: got %d, want %d", e.Revision(), before+1)
	}
}

func TestSetSelectionsRejectsOutOfRange(t *testing.T) {
	_, e := newEditor(t, "ab")
	bad := [][]editor.Range{
		{{Start: -1, End: 0}},
		{{Start: 1, End: 0}},
		{{Start: 0, End: 3}},
	}
	for _, sels := range bad {
		if err := e.SetSelections(sels); err == nil {
			t.Errorf("expected error for %v", sels)
		}
	}
}

func TestSetSelectionsRejectsOverlap(t *testing.T) {
	_, e := newEditor(t, "abcdef")
	overlapping := [][]editor.Range{
		{{Start: 0, End: 4}, {Start: 2, End: 3}},
		{{Start: 2, End: 3}, {Start: 0, End: 4}},
		{{Start: 0, End: 4}, {Start: 2, End: 2}},
		{{Start: 0, End: 2}, {Start: 1, End: 3}},
	}
	for _, sels := range overlapping {
		if err := e.SetSelections(sels); err == nil {
			t.Errorf("expected error for overlapping set %v", sels)
		}
	}

	// A rejected set leaves the prior selections in place and the editor
	// fully usable.
	if err := e.SetSelections([]editor.Range{{Start: 1, End: 2}}); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}
	if err := e.SetSelections([]editor.Range{{Start: 0, End: 4}, {Start: 2, End: 3}}); err == nil {
		t.Fatal("expected error for overlapping set")
	}
	if err := e.ApplyEdit("X"); err != nil {
		t.Fatalf("ApplyEdit after rejected overlap: %v", err)
	}
	if got := e.Content(); got != "aXcdef" {
		t.Fatalf("content: got %q", got)
	}
}

func TestSetSelectionsAllowsTouchingRanges(t *testing.T) {
	_, e := newEditor(t, "abcd")
	// Adjacent ranges and coincident cursors share an endpoint but no span.
	allowed := [][]editor.Range{
		{{Start: 0, End: 2}, {Start: 2, End: 4}},
		{{Start: 1, End: 1}, {Start: 1, End: 1}},
	}
	for _, sels := range allowed {
		if err := e.SetSelections(sels); err != nil {
			t.Errorf("unexpected error for %v: %v", sels, err)
		}
	}
}

func TestSetSelectionsEmptyBecomesCursor(t *testing.T) {
	_, e := newEditor(t, "ab")
	if err := e.SetSelections(nil); err != nil {
		t.Fatalf("SetSelections: %v", err)
	}
	sels := e.Selections()
	if len(sels) != 1 || sels[0] != (editor.Range{}) {
		t.Fatalf("expected a single cursor at 0, got %v", sels)
	}
}

func TestClientReceivesStateEvents(t *testing.T) {
	_, e := newEditor(t, "")
	ch := make(chan editor.Event, 8)
	e.SetClient(ch)
	defer e.ClearClient(ch)

	if err := e.ApplyEdit("⍟"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Kind != editor.EventState {
			t.Fatalf("expected state event, got %q", ev.Kind)
		}
		if ev.Content != "⍟" {
			t.Fatalf("event content: got %q", ev.Content)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestRevealSendsFocusEvent(t *testing.T) {
	_, e := newEditor(t, "")
	ch := make(chan editor.Event, 8)
	e.SetClient(ch)
	defer e.ClearClient(ch)

	e.Reveal()

	select {
	case ev := <-ch:
		if ev.Kind != editor.EventFocus {
			t.Fatalf("expected focus event, got %q", ev.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestInfoSnapshotsMetadata(t *testing.T) {
	_, e := newEditor(t, "")

	info := e.Info()
	if info.ID != e.ID || info.Name != e.Name {
		t.Fatalf("identity mismatch: %+v", info)
	}
	if info.Connected {
		t.Error("expected disconnected before a client attaches")
	}

	ch := make(chan editor.Event, 1)
	e.SetClient(ch)
	if !e.Info().Connected {
		t.Error("expected connected after SetClient")
	}

	before := e.Info().LastActive
	if err := e.ApplyEdit("x"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if e.Info().LastActive.Before(before) {
		t.Error("LastActive went backwards after an edit")
	}

	e.ClearClient(ch)
	if e.Info().Connected {
		t.Error("expected disconnected after ClearClient")
	}
}

func TestSetClientKicksPriorClient(t *testing.T) {
	_, e := newEditor(t, "")
	first := make(chan editor.Event, 1)
	kick := e.SetClient(first)

	second := make(chan editor.Event, 1)
	e.SetClient(second)

	select {
	case <-kick:
	case <-time.After(time.Second):
		t.Fatal("first client was not kicked")
	}

	// A displaced client clearing itself must not detach the new one.
	e.ClearClient(first)
	if err := e.ApplyEdit("x"); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	select {
	case <-second:
	case <-time.After(time.Second):
		t.Fatal("second client stopped receiving events")
	}
}
