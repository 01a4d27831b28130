package events

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

// Service owns the event collection and saves it after every mutation.
type Service struct {
	store  *storage.Store
	logger *zap.Logger
	now    func() time.Time
	events []model.Event
}

func NewService(ctx context.Context, store *storage.Store, logger *zap.Logger, now func() time.Time) *Service {
	s := &Service{
		store:  store,
		logger: logger.With(zap.String("collection", storage.Events)),
		now:    now,
		events: storage.Load[[]model.Event](ctx, store, storage.Events),
	}
	if Normalize(s.events) {
		if err := s.save(ctx); err != nil {
			s.logger.Warn("Could not persist generated event ids", zap.Error(err))
		}
	}
	return s
}

func (s *Service) Events() []model.Event {
	return slices.Clone(s.events)
}

func (s *Service) Get(id string) (model.Event, bool) {
	i := IndexOf(s.events, id)
	if i < 0 {
		return model.Event{}, false
	}
	return s.events[i], true
}

func (s *Service) Resolve(ref string) (string, error) {
	return Resolve(s.events, ref)
}

func (s *Service) Add(ctx context.Context, d Draft) (model.Event, error) {
	e, err := New(d, s.now().Location())
	if err != nil {
		return model.Event{}, err
	}
	if i := IndexByKey(s.events, e.Key()); i >= 0 {
		s.logger.Warn("Another event shares this date and title", zap.String("existing", s.events[i].ID))
	}
	s.events = append(s.events, e)
	s.logger.Info("Event added", zap.String("id", e.ID), zap.String("date", e.Date))
	return e, s.save(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	s.events, removed = Delete(s.events, id)
	if !removed {
		return false, nil
	}
	s.logger.Info("Event deleted", zap.String("id", id))
	return true, s.save(ctx)
}

func (s *Service) SetPriority(ctx context.Context, id string, p model.Priority) (bool, error) {
	if !SetPriority(s.events, id, p) {
		return false, nil
	}
	s.logger.Info("Event priority changed", zap.String("id", id), zap.String("priority", string(p)))
	return true, s.save(ctx)
}

func (s *Service) Upcoming(types []model.EventType, key SortKey) []Item {
	return View(s.events, s.now(), types, key)
}

func (s *Service) OnDate(day time.Time) []model.Event {
	return OnDate(s.events, day)
}

// UpcomingCount counts every readable event dated today or later.
func (s *Service) UpcomingCount() int {
	now := s.now()
	n := 0
	for e := range Upcoming(s.events, now, nil) {
		if _, err := model.ParseDate(e.Date, now.Location()); err == nil {
			n++
		}
	}
	return n
}

// Import appends events whose (date, title) pair is not already present.
func (s *Service) Import(ctx context.Context, incoming []model.Event) (int, error) {
	added := 0
	for _, e := range incoming {
		if IndexByKey(s.events, e.Key()) >= 0 {
			continue
		}
		if e.ID == "" {
			e.ID = model.NewID()
		}
		if e.Priority == "" {
			e.Priority = model.PriorityMedium
		}
		if e.Type == "" {
			e.Type = model.EventOther
		}
		s.events = append(s.events, e)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	s.logger.Info("Events imported", zap.Int("count", added))
	return added, s.save(ctx)
}

func (s *Service) save(ctx context.Context) error {
	return s.store.Save(ctx, storage.Events, s.events)
}
