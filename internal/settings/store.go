// Package settings provides a TTL-cached view over the persisted operational
// settings. Reads are served from memory until the entry expires, so hot
// paths like order intake don't hit the database for configuration; writes go
// through to the store and refresh the cache immediately.
package settings

import (
	"context"
	"errors"
	"sync"
	"time"

	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// KeyNumberingGranularity is the settings key holding the order-number shard
// granularity ("daily" or "hourly").
const KeyNumberingGranularity = "numbering.granularity"

// DefaultTTL is how long a cached settings value is served before the store
// consults the database again. A granularity change therefore takes effect
// within this window on nodes that didn't perform the write.
const DefaultTTL = 30 * time.Second

type cachedValue struct {
	value     string
	expiresAt time.Time
}

// Store is a TTL-cached settings reader/writer. Safe for concurrent use.
type Store struct {
	repo ports.SettingsRepository
	ttl  time.Duration

	mu    sync.RWMutex
	cache map[string]cachedValue
}

// NewStore creates a settings store over the given repository.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(repo ports.SettingsRepository, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Store{
		repo:  repo,
		ttl:   ttl,
		cache: make(map[string]cachedValue),
	}
}

// Get returns the value for key, served from cache while fresh.
// A missing key is reported as errs.ObjectNotFoundError and is not cached,
// so a key created later becomes visible on the next read.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()

	if ok && time.Now().Before(cached.expiresAt) {
		return cached.value, nil
	}

	value, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}

	s.put(key, value)
	return value, nil
}

// Set writes the value through to the repository and refreshes the cache.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		return err
	}

	s.put(key, value)
	return nil
}

// Invalidate drops the cached entry for key, forcing the next Get to consult
// the repository.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

func (s *Store) put(key, value string) {
	s.mu.Lock()
	s.cache[key] = cachedValue{
		value:     value,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
}

// NumberingConfig resolves the order-number shard granularity from settings.
// It satisfies the configuration dependency of the order intake handler.
type NumberingConfig struct {
	store *Store
}

// NewNumberingConfig creates a granularity provider over the settings store.
func NewNumberingConfig(store *Store) NumberingConfig {
	return NumberingConfig{store: store}
}

// Granularity returns the configured shard granularity.
// A missing setting means daily, the safe default; a present but malformed
// value is an error rather than a silent fallback.
func (c NumberingConfig) Granularity(ctx context.Context) (services.Granularity, error) {
	value, err := c.store.Get(ctx, KeyNumberingGranularity)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return services.GranularityDaily, nil
		}
		return services.GranularityUnknown, err
	}

	return services.GranularityFromString(value)
}
