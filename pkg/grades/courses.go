package grades

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

const (
	MinCredits = 1
	MaxCredits = 5
)

// Courses is the registered course list.
type Courses struct {
	store   *storage.Store
	logger  *zap.Logger
	courses []model.Course
}

func LoadCourses(ctx context.Context, store *storage.Store, logger *zap.Logger) *Courses {
	return &Courses{
		store:   store,
		logger:  logger,
		courses: storage.Load[[]model.Course](ctx, store, storage.Courses),
	}
}

func (c *Courses) List() []model.Course {
	return slices.Clone(c.courses)
}

// Find looks a course up by name or code, ignoring case.
func (c *Courses) Find(ref string) (model.Course, bool) {
	for _, course := range c.courses {
		if strings.EqualFold(course.Name, ref) || (course.Code != "" && strings.EqualFold(course.Code, ref)) {
			return course, true
		}
	}
	return model.Course{}, false
}

// Add registers a course and saves the list.
func (c *Courses) Add(ctx context.Context, name, code string, credits int) (model.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Course{}, model.Invalid("name", "course name is required")
	}
	if credits < MinCredits || credits > MaxCredits {
		return model.Course{}, model.Invalid("credits", "credit hours must be between %d and %d", MinCredits, MaxCredits)
	}
	if _, exists := c.Find(name); exists {
		return model.Course{}, model.Invalid("name", "course %q already exists", name)
	}
	course := model.Course{Name: name, Code: strings.TrimSpace(code), Credits: credits}
	c.courses = append(c.courses, course)
	c.logger.Info("Course added", zap.String("name", name), zap.Int("credits", credits))
	return course, c.store.Save(ctx, storage.Courses, c.courses)
}
