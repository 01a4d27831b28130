package notes

import (
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// Append adds a quick note stamped with now. Blank content is rejected.
func Append(list []model.QuickNote, content string, now time.Time) ([]model.QuickNote, error) {
	if strings.TrimSpace(content) == "" {
		return list, model.Invalid("content", "note is empty")
	}
	return append(list, model.QuickNote{
		Content:   content,
		Timestamp: now.Format(model.StampLayout),
	}), nil
}

// DeleteAt removes the note at index i. Out of range indexes change nothing.
func DeleteAt(list []model.QuickNote, i int) ([]model.QuickNote, bool) {
	if i < 0 || i >= len(list) {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}
