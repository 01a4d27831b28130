// Package orgmode imports TODO and DONE headlines from Org files as tasks.
package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

// Entry is a parsed headline with the tags it carried.
type Entry struct {
	Task model.Task
	Tags []string
}

var (
	headlineRegex = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s*(?:\[#([A-Z])\])?\s*(.*?)(?:\s+(:(?:[\w@]+:)+))?\s*$`)
	deadlineRegex = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})(?:\s+[A-Za-z]{2,3})?(?:\s+\d{1,2}:\d{2})?[^>]*>`)
	idRegex       = regexp.MustCompile(`^:ID:\s+(\S+)`)
	anyHeadline   = regexp.MustCompile(`^\*+\s`)
)

func parseFile(filePath string, now time.Time) ([]Entry, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, now)
}

// ParseFiles parses multiple Org files in order.
func ParseFiles(filePaths []string, now time.Time) ([]Entry, error) {
	var all []Entry
	for _, filePath := range filePaths {
		entries, err := parseFile(filePath, now)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

// Parse reads TODO and DONE headlines. Priorities A, B and C map to High,
// Medium and Low; a DEADLINE becomes the due date. Headlines without a
// deadline are due today.
func Parse(r io.Reader, now time.Time) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var entries []Entry
	var current *Entry

	flush := func() {
		if current != nil && strings.TrimSpace(current.Task.Text) != "" {
			if current.Task.DueDate == "" {
				current.Task.DueDate = now.Format(model.DateLayout)
			}
			entries = append(entries, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if matches := headlineRegex.FindStringSubmatch(line); matches != nil {
			flush()
			current = &Entry{Task: model.Task{
				Text:      strings.TrimSpace(matches[3]),
				Priority:  priorityFromCookie(matches[2]),
				Created:   now.Format(model.StampLayout),
				Completed: matches[1] == "DONE",
			}}
			if matches[4] != "" {
				current.Tags = strings.Split(strings.Trim(matches[4], ":"), ":")
			}
			continue
		}
		if anyHeadline.MatchString(line) {
			flush()
			continue
		}
		if current == nil {
			continue
		}
		if matches := deadlineRegex.FindStringSubmatch(line); matches != nil {
			current.Task.DueDate = matches[1]
		} else if matches := idRegex.FindStringSubmatch(line); matches != nil {
			if _, err := uuid.Parse(matches[1]); err == nil {
				current.Task.ID = matches[1]
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func priorityFromCookie(c string) model.Priority {
	switch c {
	case "A":
		return model.PriorityHigh
	case "B":
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// FilterTasks keeps entries carrying tag. An empty tag keeps everything.
func FilterTasks(entries []Entry, tag string) []model.Task {
	var out []model.Task
	for _, e := range entries {
		if tag == "" {
			out = append(out, e.Task)
			continue
		}
		for _, t := range e.Tags {
			if t == tag {
				out = append(out, e.Task)
				break
			}
		}
	}
	return out
}
