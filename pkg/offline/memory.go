package offline

import (
	"context"
	"slices"
	"sync"
)

type memoryStorage struct {
	mu      sync.Mutex
	names   []string
	buckets map[string]*memoryBucket
}

// NewMemoryStorage returns a process-local CacheStorage. Bucket names are
// listed in creation order.
func NewMemoryStorage() CacheStorage {
	return &memoryStorage{
		buckets: make(map[string]*memoryBucket),
	}
}

func (s *memoryStorage) Open(ctx context.Context, name string) (Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[name]; ok {
		return b, nil
	}

	b := &memoryBucket{
		name:    name,
		entries: make(map[string]*Response),
	}
	s.buckets[name] = b
	s.names = append(s.names, name)
	return b, nil
}

func (s *memoryStorage) Keys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.names), nil
}

func (s *memoryStorage) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[name]; !ok {
		return false, nil
	}

	delete(s.buckets, name)
	s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	return true, nil
}

type memoryBucket struct {
	name    string
	mu      sync.RWMutex
	entries map[string]*Response
}

func (b *memoryBucket) Name() string {
	return b.name
}

func (b *memoryBucket) Match(ctx context.Context, key string) (*Response, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	resp, ok := b.entries[key]
	if !ok {
		return nil, ErrNotCached
	}
	return resp.Clone(), nil
}

func (b *memoryBucket) Put(ctx context.Context, key string, resp *Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = resp.Clone()
	return nil
}

func (b *memoryBucket) PutAll(ctx context.Context, entries map[string]*Response) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, resp := range entries {
		b.entries[key] = resp.Clone()
	}
	return nil
}
