// Package cache provides the explicit, invalidatable caches that services
// receive through their constructors. Values are stored JSON encoded so the
// in-process and Redis stores behave the same way.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"
)

var ErrCacheMiss = errors.New("cache: miss")

type Store interface {
	// Get decodes the cached value for key into dst, or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// TTL is an in-process Store whose entries expire after a fixed duration.
type TTL struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewTTL(ttl time.Duration) *TTL {
	return &TTL{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *TTL) Get(_ context.Context, key string, dst any) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return ErrCacheMiss
	}
	return json.Unmarshal(e.payload, dst)
}

func (c *TTL) Set(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = entry{payload: payload, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the given keys, or every entry when called without keys.
func (c *TTL) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(keys) == 0 {
		c.entries = make(map[string]entry)
		return nil
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}
