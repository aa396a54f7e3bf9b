package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrLimitReached is returned by Set when MaxKeys entries are already stored.
var ErrLimitReached = errors.New("max keys limit reached")

// Store implements an in-memory keypair backend
type Store struct {
	mu        sync.RWMutex
	items     map[string][]byte
	maxKeys   int
	keyPrefix string
}

// Config holds memory backend specific configuration
type Config struct {
	MaxKeys   int
	KeyPrefix string
	Namespace string
}

// New creates a new memory backend
func New(cfg Config) (*Store, error) {
	return &Store{
		items:     make(map[string][]byte),
		maxKeys:   cfg.MaxKeys,
		keyPrefix: joinPrefix(cfg.Namespace, cfg.KeyPrefix),
	}, nil
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[s.keyPrefix+key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fullKey := s.keyPrefix + key
	if s.maxKeys > 0 && len(s.items) >= s.maxKeys {
		if _, exists := s.items[fullKey]; !exists {
			return ErrLimitReached
		}
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.items[fullKey] = v
	return nil
}

// Delete removes a key
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, s.keyPrefix+key)
	return nil
}

// Keys lists stored keys without the backend prefix, sorted
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		if strings.HasPrefix(k, s.keyPrefix) {
			keys = append(keys, strings.TrimPrefix(k, s.keyPrefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Ping checks if the backend is operational
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close releases the stored entries
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string][]byte)
	return nil
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func joinPrefix(namespace, prefix string) string {
	if namespace == "" {
		return prefix
	}
	return namespace + ":" + prefix
}
