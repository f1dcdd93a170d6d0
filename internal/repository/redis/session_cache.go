// Package redis implements the session cache on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/domain"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces session entries.
const DefaultKeyPrefix = "session:"

// SessionCache implements domain.SessionCache. Entries are JSON snapshots of
// the session expiry and its owner, stored with a TTL.
type SessionCache struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionCache creates a session cache using DefaultKeyPrefix.
func NewSessionCache(client redis.UniversalClient) *SessionCache {
	return NewSessionCacheWithPrefix(client, DefaultKeyPrefix)
}

// NewSessionCacheWithPrefix creates a session cache with a custom key prefix.
func NewSessionCacheWithPrefix(client redis.UniversalClient, prefix string) *SessionCache {
	return &SessionCache{client: client, prefix: prefix}
}

func (c *SessionCache) key(id string) string {
	return c.prefix + id
}

func (c *SessionCache) Get(ctx context.Context, sessionID string) (*domain.SessionCacheEntry, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}

	data, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var entry domain.SessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("unmarshal session entry: %w", err)
	}
	return &entry, true, nil
}

// Set stores entry for ttl. A non-positive ttl stores nothing, since the
// session would already be expired.
func (c *SessionCache) Set(ctx context.Context, sessionID string, entry *domain.SessionCacheEntry, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal session entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the given entries in one round trip. Missing keys are ignored.
func (c *SessionCache) Delete(ctx context.Context, sessionIDs ...string) error {
	keys := make([]string, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		if id != "" {
			keys = append(keys, c.key(id))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
