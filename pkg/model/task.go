package model

import (
	"encoding/json"
	"strings"
)

// Task is a single to-do item from the task manager.
type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Priority  Priority `json:"priority"`
	DueDate   string   `json:"due_date,omitempty"` // YYYY-MM-DD, may be absent in old data
	Created   string   `json:"created"`            // YYYY-MM-DD HH:MM
	Completed bool     `json:"completed"`
}

// UnmarshalJSON accepts the older record shape that stored the text under "task".
func (t *Task) UnmarshalJSON(b []byte) error {
	type plain Task
	var raw struct {
		plain
		Legacy string `json:"task"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	if t.Text == "" && raw.Legacy != "" {
		t.Text = raw.Legacy
	}
	return nil
}

// Title returns the text, or a placeholder for records that never had one.
func (t Task) Title() string {
	if strings.TrimSpace(t.Text) == "" {
		return "Untitled task"
	}
	return t.Text
}
