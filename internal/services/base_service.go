package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/repositories"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// IDGenerator returns a new unique record id.
type IDGenerator func() string

// BaseService holds the clock, id source and cache helpers shared by the services.
type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
	now    Clock
	newID  IDGenerator
}

func NewBaseService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *BaseService {
	return &BaseService{
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *BaseService) WithClock(clock Clock) *BaseService {
	s.now = clock
	return s
}

// WithIDGenerator replaces the id source. Used by tests.
func (s *BaseService) WithIDGenerator(gen IDGenerator) *BaseService {
	s.newID = gen
	return s
}

// CacheGet decodes the cached JSON under key into dest. It reports false on a miss or a broken entry.
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("cache entry is not valid JSON", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, serialized, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *BaseService) CacheDel(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
