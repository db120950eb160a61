// Package cache holds the read-through cache of public user profiles. The
// cache is an explicit dependency injected into handlers, never an ambient
// singleton, and its contract is invalidate-on-write: every mutation of a
// user deletes the key and the next read recomputes from the database.
// Callers must therefore always tolerate a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Profile is the cached public projection of a user. Password material
// never enters the cache.
type Profile struct {
	ID          uint64 `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	DateJoined  string `json:"date_joined"`
}

// UserCache caches profiles in Redis keyed by user id. A nil Redis client
// disables the cache entirely: Get always misses and Set/Invalidate are
// no-ops, mirroring how the rest of the app degrades when Redis is down.
type UserCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a UserCache. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserCache{rdb: rdb, ttl: ttl}
}

func key(id uint64) string { return fmt.Sprintf("user_%d", id) }

// Get returns the cached profile and whether it was present. Redis errors
// are reported as misses; the durable store is the source of truth.
func (c *UserCache) Get(ctx context.Context, id uint64) (Profile, bool) {
	if c == nil || c.rdb == nil {
		return Profile{}, false
	}
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, false
	}
	return p, true
}

// Set stores a profile under the user's key. Failures are ignored; the
// entry simply stays cold.
func (c *UserCache) Set(ctx context.Context, p Profile) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(p.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached projection for a user. Called after every
// mutation (registration, profile update, ban) so stale reads cannot
// outlive a write by more than the in-flight requests.
func (c *UserCache) Invalidate(ctx context.Context, id uint64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(id)).Err()
}
