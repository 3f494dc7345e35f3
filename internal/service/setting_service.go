package service

import (
	"context"
	"errors"
	"sync"

	"github.com/mgzon/backend/internal/model"
	"github.com/mgzon/backend/internal/repository"
	"golang.org/x/sync/singleflight"
)

// SettingService provides access to the site settings with a
// process-lifetime cache in front of the store. The cache is populated
// lazily on first read and replaced on every successful update, so a Get
// after an Update in the same process always sees the new value. Sibling
// processes keep their own cache and stay stale until their next update
// or restart; that is an accepted limitation of the deployment, not a
// defect.
type SettingService interface {
	// Get returns the cached settings, loading them on first use.
	Get(ctx context.Context) (*model.Setting, error)

	// GetFresh bypasses the cache and reads the store directly.
	GetFresh(ctx context.Context) (*model.Setting, error)

	// Update writes the settings and refreshes the cache with the stored
	// row. On store failure the cache is left untouched.
	Update(ctx context.Context, s *model.Setting) (*model.Setting, error)
}

type settingServiceImpl struct {
	repo  repository.SettingRepository
	group singleflight.Group

	mu     sync.RWMutex
	cached *model.Setting
}

// NewSettingService creates a SettingService with an empty cache.
func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingServiceImpl{repo: repo}
}

// Get returns the cached value when present. First population is
// single-flighted: concurrent first callers share one store load instead
// of racing to populate the cache.
func (s *settingServiceImpl) Get(ctx context.Context) (*model.Setting, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("settings", func() (any, error) {
		setting, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cached = setting
		s.mu.Unlock()
		return setting, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Setting), nil
}

// GetFresh always reads the store, falling back to defaults only when no
// settings row exists yet.
func (s *settingServiceImpl) GetFresh(ctx context.Context) (*model.Setting, error) {
	return s.load(ctx)
}

// load reads the store. Defaults apply only to genuine absence; a store
// failure is surfaced, never papered over with default values.
func (s *settingServiceImpl) load(ctx context.Context) (*model.Setting, error) {
	setting, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return model.DefaultSetting(), nil
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// Update upserts the singleton row, then caches the row as stored rather
// than the caller's input, so store-side normalization is reflected.
func (s *settingServiceImpl) Update(ctx context.Context, setting *model.Setting) (*model.Setting, error) {
	stored, err := s.repo.Upsert(ctx, setting)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = stored
	s.mu.Unlock()
	return stored, nil
}
