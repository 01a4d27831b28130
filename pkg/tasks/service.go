package tasks

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

// Service owns the task collection for one session and saves it after every
// mutation. A failed save leaves the in-memory list as mutated.
type Service struct {
	store  *storage.Store
	logger *zap.Logger
	now    func() time.Time
	tasks  []model.Task
}

func NewService(ctx context.Context, store *storage.Store, logger *zap.Logger, now func() time.Time) *Service {
	s := &Service{
		store:  store,
		logger: logger.With(zap.String("collection", storage.Tasks)),
		now:    now,
		tasks:  storage.Load[[]model.Task](ctx, store, storage.Tasks),
	}
	if Normalize(s.tasks) {
		// IDs must survive between invocations or they cannot be referenced.
		if err := s.save(ctx); err != nil {
			s.logger.Warn("Could not persist generated task ids", zap.Error(err))
		}
	}
	return s
}

// Tasks returns a copy of the current list.
func (s *Service) Tasks() []model.Task {
	return slices.Clone(s.tasks)
}

func (s *Service) Resolve(ref string) (string, error) {
	return Resolve(s.tasks, ref)
}

func (s *Service) Add(ctx context.Context, text string, priority model.Priority, due string) (model.Task, error) {
	t, err := New(text, priority, due, s.now())
	if err != nil {
		return model.Task{}, err
	}
	s.tasks = append(s.tasks, t)
	s.logger.Info("Task added", zap.String("id", t.ID), zap.String("due", t.DueDate))
	return t, s.save(ctx)
}

// Delete removes a task. Deleting an unknown id changes nothing and does not
// touch storage.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	s.tasks, removed = Delete(s.tasks, id)
	if !removed {
		s.logger.Debug("Delete ignored, no such task", zap.String("id", id))
		return false, nil
	}
	s.logger.Info("Task deleted", zap.String("id", id))
	return true, s.save(ctx)
}

func (s *Service) Toggle(ctx context.Context, id string) (model.Task, bool, error) {
	if !Toggle(s.tasks, id) {
		return model.Task{}, false, nil
	}
	t := s.tasks[IndexOf(s.tasks, id)]
	s.logger.Info("Task toggled", zap.String("id", id), zap.Bool("completed", t.Completed))
	return t, true, s.save(ctx)
}

// View lists tasks for display. Missing due dates are set to today on the
// in-memory records, so they are only written if a later mutation saves.
func (s *Service) View(showCompleted bool, key SortKey) []Item {
	today := s.now()
	if n := FillDueDates(s.tasks, today); n > 0 {
		s.logger.Debug("Filled missing due dates", zap.Int("count", n))
	}
	return View(s.tasks, showCompleted, key, today)
}

func (s *Service) Pending() int {
	return PendingCount(s.tasks)
}

func (s *Service) Overdue() []model.Task {
	return Overdue(s.tasks, s.now())
}

// Import appends tasks that are not already present, matching on text and
// due date. It returns how many were added.
func (s *Service) Import(ctx context.Context, incoming []model.Task) (int, error) {
	added := 0
	for _, t := range incoming {
		dup := slices.ContainsFunc(s.tasks, func(have model.Task) bool {
			return have.Text == t.Text && have.DueDate == t.DueDate
		})
		if dup {
			continue
		}
		if t.ID == "" {
			t.ID = model.NewID()
		}
		if t.Priority == "" {
			t.Priority = model.PriorityLow
		}
		if t.Created == "" {
			t.Created = s.now().Format(model.StampLayout)
		}
		s.tasks = append(s.tasks, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	s.logger.Info("Tasks imported", zap.Int("count", added))
	return added, s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	return s.store.Save(ctx, storage.Tasks, s.tasks)
}
