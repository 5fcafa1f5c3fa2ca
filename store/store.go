package store

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/DinDin03/FriendAvailability/internal/profile"
	"github.com/DinDin03/FriendAvailability/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// userCache avoids a directory roundtrip on every complete-view call.
	userCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:    driver,
		profile:   profile,
		userCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.userCache.Close()
	return s.driver.Close()
}

// CreateInterval creates a new interval. Synthesized intervals exist only in
// complete-view responses and are rejected here.
func (s *Store) CreateInterval(ctx context.Context, create *Interval) (*Interval, error) {
	if create.Synthesized {
		return nil, errors.New("refusing to persist a synthesized interval")
	}
	return s.driver.CreateInterval(ctx, create)
}

// ListIntervals lists intervals with filter, ordered by start time.
func (s *Store) ListIntervals(ctx context.Context, find *FindInterval) ([]*Interval, error) {
	return s.driver.ListIntervals(ctx, find)
}

// GetInterval gets a single interval matching the find condition, nil when
// absent.
func (s *Store) GetInterval(ctx context.Context, find *FindInterval) (*Interval, error) {
	list, err := s.driver.ListIntervals(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// UpdateInterval updates an interval in place.
func (s *Store) UpdateInterval(ctx context.Context, update *UpdateInterval) error {
	return s.driver.UpdateInterval(ctx, update)
}

// DeleteInterval deletes an interval, returning false when it did not exist.
func (s *Store) DeleteInterval(ctx context.Context, delete *DeleteInterval) (bool, error) {
	return s.driver.DeleteInterval(ctx, delete)
}

// CountIntervals counts intervals matching the condition.
func (s *Store) CountIntervals(ctx context.Context, count *CountInterval) (int64, error) {
	return s.driver.CountIntervals(ctx, count)
}
