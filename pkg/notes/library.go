package notes

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/harrisonrobin/studydesk/pkg/model"
)

type SortKey string

const (
	SortName   SortKey = "name"
	SortRecent SortKey = "recent"
	SortCode   SortKey = "code"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name", "a-z", "subject":
		return SortName, true
	case "recent", "date":
		return SortRecent, true
	case "code", "course":
		return SortCode, true
	}
	return "", false
}

// Library maps a resource name to the resource. Names are unique, so adding
// a resource with an existing name replaces it.
type Library map[string]model.Resource

// UnmarshalJSON also accepts an array of resources, which is how an empty
// collection was written before resources were keyed by name.
func (l *Library) UnmarshalJSON(b []byte) error {
	var keyed map[string]model.Resource
	if err := json.Unmarshal(b, &keyed); err == nil {
		*l = keyed
		return nil
	}
	var list []model.Resource
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	out := make(Library, len(list))
	for _, r := range list {
		if r.Name != "" {
			out[r.Name] = r
		}
	}
	*l = out
	return nil
}

// NewResource validates the add-resource form.
func NewResource(name, description, link, date, tags, code string, typ model.ResourceType, now time.Time) (model.Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Resource{}, model.Invalid("name", "resource name is required")
	}
	if date == "" {
		date = now.Format(model.DateLayout)
	}
	if _, err := model.ParseDate(date, now.Location()); err != nil {
		return model.Resource{}, model.Invalid("date", "%q is not a YYYY-MM-DD date", date)
	}
	if typ == "" {
		typ = model.ResourceNotes
	}
	return model.Resource{
		Name:        name,
		Description: strings.TrimSpace(description),
		Link:        strings.TrimSpace(link),
		Date:        date,
		Tags:        strings.TrimSpace(tags),
		Code:        strings.TrimSpace(code),
		Type:        typ,
	}, nil
}

// Search returns resources whose name contains term, ignoring case. An
// empty term matches everything.
func (l Library) Search(term string) []model.Resource {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []model.Resource
	for name, r := range l {
		if strings.Contains(strings.ToLower(name), term) {
			if r.Name == "" {
				r.Name = name
			}
			out = append(out, r)
		}
	}
	// Map iteration order is random; start from a stable base.
	slices.SortFunc(out, func(a, b model.Resource) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ByType keeps resources of typ. Resources stored without a type count as notes.
func ByType(list []model.Resource, typ model.ResourceType) []model.Resource {
	var out []model.Resource
	for _, r := range list {
		t := r.Type
		if t == "" {
			t = model.ResourceNotes
		}
		if t == typ {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders resources by name, newest date first, or course code.
func Sort(list []model.Resource, key SortKey) {
	switch key {
	case SortRecent:
		slices.SortStableFunc(list, func(a, b model.Resource) int { return strings.Compare(b.Date, a.Date) })
	case SortCode:
		slices.SortStableFunc(list, func(a, b model.Resource) int { return strings.Compare(a.Code, b.Code) })
	default:
		slices.SortStableFunc(list, func(a, b model.Resource) int { return strings.Compare(a.Name, b.Name) })
	}
}
