// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Task is a unit of work owned by the task manager. Fields hold exactly
// what the backend returned; display fallbacks live in DisplayTitle and
// DisplayDescription.
type Task struct {
	ID          TaskID `json:"id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Kind normalises the raw status.
func (t Task) Kind() StatusKind { return NormalizeStatus(t.Status) }

// DisplayTitle is the trimmed title, or "<no title>" when it is blank.
func (t Task) DisplayTitle() string {
	if s := strings.TrimSpace(t.Title); s != "" {
		return s
	}
	return "<no title>"
}

// DisplayStatus is the status as the backend sent it, or the kind's label
// when the backend sent none.
func (t Task) DisplayStatus() string {
	if s := strings.TrimSpace(t.Status); s != "" {
		return s
	}
	return t.Kind().Label()
}

// DisplayDescription is the trimmed description; empty when there is none.
func (t Task) DisplayDescription() string {
	return strings.TrimSpace(t.Description)
}

// TaskID accepts either a JSON string or a JSON number.
type TaskID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *TaskID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("task id must be a string or number: %w", err)
		}
		*id = TaskID(n.String())
		return nil
	}
}
