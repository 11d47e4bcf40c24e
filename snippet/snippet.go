// Package snippet parses snippet definition files: a JSON object mapping
// "<Category>: <Name>" keys to {prefix, body} templates. Entry order follows
// the file's stored key order, which encoding/json's map decoding would
// destroy, so parsing walks the token stream directly.
package snippet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is one named template from a snippet definition file.
type Entry struct {
	Key    string
	Prefix []string
	Body   []string
}

var ErrNotObject = errors.New("snippet file is not a JSON object")

// template mirrors the on-disk value shape. Both prefix and body may be a
// single string or an array of strings.
type template struct {
	Prefix stringList `json:"prefix"`
	Body   stringList `json:"body"`
}

type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = []string{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Parse decodes a snippet definition file into entries in stored key order.
// A duplicate key keeps its first position but takes its last value.
func Parse(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("snippet: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrNotObject
	}

	var entries []Entry
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("snippet: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("snippet: unexpected key token %v", tok)
		}

		var t template
		if err := dec.Decode(&t); err != nil {
			return nil, fmt.Errorf("snippet: entry %q: %w", key, err)
		}

		e := Entry{Key: key, Prefix: t.Prefix, Body: t.Body}
		if i, seen := index[key]; seen {
			entries[i] = e
			continue
		}
		index[key] = len(entries)
		entries = append(entries, e)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("snippet: %w", err)
	}
	return entries, nil
}
