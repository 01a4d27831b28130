package model

import (
	"encoding/json"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities High=0, Medium=1, Low=2. Unset priorities rank as Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ParsePriority matches the last word of s case-insensitively, so decorated
// values such as "🔴 High" still resolve.
func ParsePriority(s string) (Priority, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	word := fields[len(fields)-1]
	for _, p := range Priorities {
		if strings.EqualFold(word, string(p)) {
			return p, true
		}
	}
	return "", false
}

// UnmarshalJSON normalises stored priorities. Unknown values decode as the
// empty priority so the owning collection can apply its own default.
func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, _ := ParsePriority(s)
	*p = parsed
	return nil
}
