package snippet_test

import (
	"errors"
	"testing"

	"glyph-panel/snippet"
)

func TestParseKeepsFileOrder(t *testing.T) {
	data := []byte(`{
		"Zeta: Last Alphabetically": {"prefix": "z", "body": ["ζ"]},
		"Alpha: First Alphabetically": {"prefix": "a", "body": ["α"]},
		"Mu: Middle": {"prefix": "m", "body": ["μ"]}
	}`)

	entries, err := snippet.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"Zeta: Last Alphabetically", "Alpha: First Alphabetically", "Mu: Middle"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, key := range want {
		if entries[i].Key != key {
			t.Errorf("position %d: expected key %q, got %q", i, key, entries[i].Key)
		}
	}
}

func TestParseScalarAndArrayForms(t *testing.T) {
	data := []byte(`{
		"Scalar": {"prefix": "p", "body": "glyph"},
		"Array": {"prefix": ["p1", "p2"], "body": ["line1", "line2"]}
	}`)

	entries, err := snippet.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := entries[0].Prefix; len(got) != 1 || got[0] != "p" {
		t.Errorf("scalar prefix: got %v", got)
	}
	if got := entries[0].Body; len(got) != 1 || got[0] != "glyph" {
		t.Errorf("scalar body: got %v", got)
	}
	if got := entries[1].Prefix; len(got) != 2 || got[1] != "p2" {
		t.Errorf("array prefix: got %v", got)
	}
	if got := entries[1].Body; len(got) != 2 || got[1] != "line2" {
		t.Errorf("array body: got %v", got)
	}
}

func TestParseMissingFields(t *testing.T) {
	data := []byte(`{"Bare": {}}`)
	entries, err := snippet.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Body) != 0 || len(entries[0].Prefix) != 0 {
		t.Errorf("expected empty prefix and body, got %+v", entries[0])
	}
}

func TestParseDuplicateKeyLastValueFirstPosition(t *testing.T) {
	data := []byte(`{
		"Dup": {"body": ["old"]},
		"Other": {"body": ["x"]},
		"Dup": {"body": ["new"]}
	}`)

	entries, err := snippet.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "Dup" || entries[0].Body[0] != "new" {
		t.Errorf("expected Dup first with latest body, got %+v", entries[0])
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	if _, err := snippet.Parse([]byte(`["not", "an", "object"]`)); !errors.Is(err, snippet.ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"truncated":   `{"A": {"body": ["x"]`,
		"not JSON":    `snippets: nope`,
		"bad body":    `{"A": {"body": 42}}`,
		"empty input": ``,
	}
	for name, data := range cases {
		if _, err := snippet.Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
