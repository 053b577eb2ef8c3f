package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNoSession means the store has no value for the key (or it expired).
var ErrNoSession = errors.New("no session value")

// SessionStore is a key-value store with per-key TTL, used to track one
// "last submission" timestamp per visitor session.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RateLimiter gates repeat submissions from a single visitor session. This is
// advisory spam control, not a security boundary: clearing the session cookie
// bypasses it, and two near-simultaneous submissions may both pass since the
// read-then-write is deliberately unlocked across requests.
type RateLimiter struct {
	store    SessionStore
	cooldown time.Duration
	now      func() time.Time
}

func NewRateLimiter(store SessionStore, cooldown time.Duration) *RateLimiter {
	return &RateLimiter{store: store, cooldown: cooldown, now: time.Now}
}

// CanSubmit reports whether the session may submit now; when blocked it also
// returns the whole minutes left until the cooldown elapses (floor 0). A
// missing or unparsable stored timestamp fails open.
func (r *RateLimiter) CanSubmit(ctx context.Context, sessionID string) (bool, int) {
	raw, err := r.store.Get(ctx, r.key(sessionID))
	if err != nil {
		return true, 0
	}
	last, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return true, 0
	}

	elapsed := r.now().Sub(last)
	if elapsed >= r.cooldown {
		return true, 0
	}
	minutes := int(r.cooldown.Minutes()) - int(elapsed.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return false, minutes
}

// RecordSubmission overwrites the session's last-submission timestamp. The
// TTL matches the cooldown so stale entries expire on their own.
func (r *RateLimiter) RecordSubmission(ctx context.Context, sessionID string) error {
	return r.store.Set(ctx, r.key(sessionID), r.now().Format(time.RFC3339Nano), r.cooldown)
}

func (r *RateLimiter) key(sessionID string) string {
	return "ratelimit:last:" + sessionID
}

// RedisSessionStore backs the limiter with Redis so the cooldown survives
// process restarts.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(addr string) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &RedisSessionStore{client: client}, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	return val, err
}

func (s *RedisSessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

// MemorySessionStore is the in-process fallback when no Redis is configured.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", ErrNoSession
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return "", ErrNoSession
	}
	return entry.value, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
