package model

import "strings"

type ResourceType string

const (
	ResourceNotes ResourceType = "Notes"
	ResourceBook  ResourceType = "Book"
	ResourceVideo ResourceType = "Video"
)

var ResourceTypes = []ResourceType{ResourceNotes, ResourceBook, ResourceVideo}

func ParseResourceType(s string) (ResourceType, bool) {
	for _, t := range ResourceTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Resource is a study resource. Resources live in a mapping keyed by Name.
type Resource struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Link        string       `json:"link,omitempty"`
	Date        string       `json:"date"`
	Tags        string       `json:"tags,omitempty"`
	Code        string       `json:"code,omitempty"`
	Type        ResourceType `json:"type"`
}

// QuickNote is a free-form scratch note.
type QuickNote struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // YYYY-MM-DD HH:MM
}

// Course is a registered course used by the grade calculator.
type Course struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	Credits int    `json:"credits"`
}
