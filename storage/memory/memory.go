// Package memory implements storage.Storage in process on top of a bounded
// github.com/hashicorp/golang-lru/v2 cache with TTL sweeping.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ggoodman/slashcmd-go/storage"
)

const sweepInterval = 5 * time.Minute

// Storage implements storage.Storage in memory. The least recently used
// keys are evicted once maxItems is reached.
type Storage struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *storage.Item]

	stop      chan struct{}
	closeOnce sync.Once
}

var _ storage.Storage = (*Storage)(nil)

// New creates an in-memory store holding at most maxItems keys.
func New(maxItems int) (*Storage, error) {
	cache, err := lru.New[string, *storage.Item](maxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}

	s := &Storage{
		cache: cache,
		stop:  make(chan struct{}),
	}
	go s.sweep(sweepInterval)

	return s, nil
}

// Get retrieves data for a key within the selected namespace.
func (s *Storage) Get(ctx context.Context, key string, opts ...storage.Option) (*storage.Item, error) {
	options, err := storage.Resolve(opts...)
	if err != nil {
		return nil, err
	}
	k := storage.Prefix(options.Namespace) + key

	s.mu.RLock()
	item, ok := s.cache.Get(k)
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if item.IsExpired() {
		s.mu.Lock()
		s.cache.Remove(k)
		s.mu.Unlock()
		return nil, nil
	}

	out := *item
	out.Data = append([]byte(nil), item.Data...)
	return &out, nil
}

// Set stores data for a key within the selected namespace.
func (s *Storage) Set(ctx context.Context, key string, data []byte, opts ...storage.Option) error {
	options, err := storage.Resolve(opts...)
	if err != nil {
		return err
	}

	now := time.Now()
	item := &storage.Item{
		Data:      append([]byte(nil), data...),
		CreatedAt: now,
	}
	if options.TTL != nil {
		expiresAt := now.Add(*options.TTL)
		item.ExpiresAt = &expiresAt
	}

	s.mu.Lock()
	s.cache.Add(storage.Prefix(options.Namespace)+key, item)
	s.mu.Unlock()
	return nil
}

// Delete removes one key or a whole namespace.
func (s *Storage) Delete(ctx context.Context, opts ...storage.Option) error {
	options, err := storage.Resolve(opts...)
	if err != nil {
		return err
	}
	prefix := storage.Prefix(options.Namespace)

	s.mu.Lock()
	defer s.mu.Unlock()

	if options.Key != nil {
		s.cache.Remove(prefix + *options.Key)
		return nil
	}
	// LRU has no prefix iteration, so walk every key.
	for _, k := range s.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Remove(k)
		}
	}
	return nil
}

// Close purges the cache and stops the sweeper.
func (s *Storage) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	s.cache.Purge()
	s.mu.Unlock()
	return nil
}

// sweep periodically drops expired items until Close.
func (s *Storage) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.removeExpired(time.Now())
		}
	}
}

func (s *Storage) removeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.cache.Keys() {
		if item, ok := s.cache.Peek(k); ok && item.ExpiresAt != nil && now.After(*item.ExpiresAt) {
			s.cache.Remove(k)
		}
	}
}
