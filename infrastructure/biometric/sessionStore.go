package biometric

import (
	"errors"
	"sync"
	"time"

	"lifex.health/infrastructure/database/repository/cache"
)

// RedisSessionStore backs identification sessions with the shared
// cache. GETDEL gives Take its single-consumer guarantee.
type RedisSessionStore struct {
	Prefix string
}

func (store *RedisSessionStore) key(token string) string {
	prefix := store.Prefix
	if prefix == "" {
		prefix = "face-session"
	}
	return prefix + ":" + token
}

func (store *RedisSessionStore) Put(key string, value []byte, ttl time.Duration) error {
	if !cache.Cache.CreateEntry(store.key(key), value, ttl) {
		return errors.New("failed to persist identification session")
	}
	return nil
}

func (store *RedisSessionStore) Take(key string) ([]byte, bool) {
	result := cache.Cache.TakeOne(store.key(key))
	if result == nil {
		return nil, false
	}
	return []byte(*result), true
}

func (store *RedisSessionStore) Delete(key string) {
	cache.Cache.DeleteOne(store.key(key))
}

// MemorySessionStore is a process-local store used in tests and
// single-instance deployments.
type MemorySessionStore struct {
	mutex   sync.Mutex
	entries map[string]memoryEntry
	Now     func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: map[string]memoryEntry{},
		Now:     time.Now,
	}
}

func (store *MemorySessionStore) Put(key string, value []byte, ttl time.Duration) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	store.entries[key] = memoryEntry{value: value, expiresAt: store.Now().Add(ttl)}
	return nil
}

func (store *MemorySessionStore) Take(key string) ([]byte, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	entry, ok := store.entries[key]
	if !ok {
		return nil, false
	}
	delete(store.entries, key)
	if store.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (store *MemorySessionStore) Delete(key string) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	delete(store.entries, key)
}
