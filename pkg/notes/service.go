package notes

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonrobin/studydesk/pkg/model"
	"github.com/harrisonrobin/studydesk/pkg/storage"
)

// Service holds the resource library and the quick notes list.
type Service struct {
	store  *storage.Store
	logger *zap.Logger
	now    func() time.Time

	library Library
	quick   []model.QuickNote
}

func NewService(ctx context.Context, store *storage.Store, logger *zap.Logger, now func() time.Time) *Service {
	s := &Service{
		store:   store,
		logger:  logger,
		now:     now,
		library: storage.Load[Library](ctx, store, storage.Notes),
		quick:   storage.Load[[]model.QuickNote](ctx, store, storage.QuickNotes),
	}
	if s.library == nil {
		s.library = Library{}
	}
	return s
}

func (s *Service) Count() int {
	return len(s.library)
}

func (s *Service) Get(name string) (model.Resource, bool) {
	r, ok := s.library[name]
	return r, ok
}

// Add stores r under its name, replacing any resource already there.
func (s *Service) Add(ctx context.Context, r model.Resource) (replaced bool, err error) {
	_, replaced = s.library[r.Name]
	s.library[r.Name] = r
	s.logger.Info("Resource saved",
		zap.String("name", r.Name),
		zap.String("type", string(r.Type)),
		zap.Bool("replaced", replaced),
	)
	return replaced, s.store.Save(ctx, storage.Notes, s.library)
}

func (s *Service) Delete(ctx context.Context, name string) (bool, error) {
	if _, ok := s.library[name]; !ok {
		return false, nil
	}
	delete(s.library, name)
	s.logger.Info("Resource deleted", zap.String("name", name))
	return true, s.store.Save(ctx, storage.Notes, s.library)
}

// List searches by name, keeps one type when typ is set, and sorts.
func (s *Service) List(term string, typ model.ResourceType, key SortKey) []model.Resource {
	list := s.library.Search(term)
	if typ != "" {
		list = ByType(list, typ)
	}
	Sort(list, key)
	return list
}

func (s *Service) QuickNotes() []model.QuickNote {
	return slices.Clone(s.quick)
}

func (s *Service) AppendQuick(ctx context.Context, content string) (model.QuickNote, error) {
	var err error
	s.quick, err = Append(s.quick, content, s.now())
	if err != nil {
		return model.QuickNote{}, err
	}
	note := s.quick[len(s.quick)-1]
	s.logger.Info("Quick note saved", zap.Int("index", len(s.quick)-1))
	return note, s.store.Save(ctx, storage.QuickNotes, s.quick)
}

func (s *Service) DeleteQuick(ctx context.Context, i int) (bool, error) {
	var removed bool
	s.quick, removed = DeleteAt(s.quick, i)
	if !removed {
		s.logger.Debug("Quick note index out of range", zap.Int("index", i), zap.Int("len", len(s.quick)))
		return false, nil
	}
	return true, s.store.Save(ctx, storage.QuickNotes, s.quick)
}
