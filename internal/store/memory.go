package store

import (
	"context"
	"encoding/json"

	gocache "github.com/patrickmn/go-cache"

	apperrors "github.com/nikh2951/health-link/pkg/errors"
	"github.com/nikh2951/health-link/pkg/logger"
)

// MemoryStore keeps serialized records in an in-process cache with no
// expiration. It backs the portal when no storage directory is configured
// and all tests.
type MemoryStore struct {
	cache  *gocache.Cache
	logger *logger.Logger
}

func NewMemoryStore(log *logger.Logger) *MemoryStore {
	if log == nil {
		log = logger.Nop()
	}
	return &MemoryStore{
		cache:  gocache.New(gocache.NoExpiration, 0),
		logger: log,
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Internal(err)
	}
	s.cache.Set(key, data, gocache.NoExpiration)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return false, nil
	}

	data, ok := raw.([]byte)
	if !ok {
		s.logger.Warn(nil, "discarding non-bytes record", "key", key)
		return false, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Malformed stored value reads as absent, never as a failure.
		s.logger.Warn(apperrors.StorageDecode(key, err), "discarding unreadable record", "key", key)
		return false, nil
	}
	return true, nil
}

// Corrupt overwrites a key with raw bytes, bypassing serialization. Used by
// tests to simulate a malformed stored value.
func (s *MemoryStore) Corrupt(key string, raw []byte) {
	s.cache.Set(key, raw, gocache.NoExpiration)
}
