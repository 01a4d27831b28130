package colors

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

const (
	ExamHex    = "#4285F4"
	DefaultHex = "#34A853"

	// Google Calendar event colour ids: 9 is Blueberry, 10 is Basil.
	ExamColorID    = "9"
	DefaultColorID = "10"
)

// Subject derives a stable colour from a subject name: "#" followed by the
// first six hex digits of its MD5 sum.
func Subject(name string) string {
	sum := md5.Sum([]byte(name))
	return "#" + hex.EncodeToString(sum[:])[:6]
}

// IsExam reports whether an event should be shown as an exam. The title is
// checked rather than the type so free-typed entries are caught too.
func IsExam(e model.Event) bool {
	return e.Type == model.EventExam || strings.Contains(strings.ToLower(e.Title), "exam")
}

// Event returns the calendar colour of e.
func Event(e model.Event) string {
	if IsExam(e) {
		return ExamHex
	}
	return DefaultHex
}

// EventColorID is Event expressed as a Google Calendar colour id.
func EventColorID(e model.Event) string {
	if IsExam(e) {
		return ExamColorID
	}
	return DefaultColorID
}

// Priority returns the accent used for a priority level.
func Priority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "#FF0000"
	case model.PriorityMedium:
		return "#FFA500"
	default:
		return "#008000"
	}
}
