package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const defaultCacheExpireSeconds = 60 * 10

var _ Store = (*CachedStore)(nil)

// CachedStore is a read-through cache in front of another Store.
// Saves go straight to the underlying store and invalidate the cached key.
type CachedStore struct {
	next          Store
	cache         *freecache.Cache
	expireSeconds int
}

func NewCachedStore(next Store, cacheSizeBytes int) *CachedStore {
	return &CachedStore{
		next:          next,
		cache:         freecache.NewCache(cacheSizeBytes),
		expireSeconds: defaultCacheExpireSeconds,
	}
}

func (s *CachedStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	if cached, err := s.cache.Get([]byte(key)); err == nil {
		if err := json.Unmarshal(cached, dest); err != nil {
			return false, fmt.Errorf("unmarshal cached [%s]: %w", key, err)
		}
		return true, nil
	}

	var raw json.RawMessage
	found, err := s.next.Load(ctx, key, &raw)
	if err != nil || !found {
		return found, err
	}

	if err := s.cache.Set([]byte(key), raw, s.expireSeconds); err != nil {
		// too large for the cache, serve it uncached
		log.Debugf("cached store, set [%s]: %s", key, err)
	} else {
		log.Debugf("cached store, cached [%s], entries: %d", key, s.EntryCount())
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("unmarshal [%s]: %w", key, err)
	}
	return true, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, value any) error {
	s.cache.Del([]byte(key))
	if err := s.next.Save(ctx, key, value); err != nil {
		return err
	}
	s.cache.Del([]byte(key))
	return nil
}

func (s *CachedStore) EntryCount() int64 {
	return s.cache.EntryCount()
}
