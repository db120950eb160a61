package cache

import (
	"context"
	"testing"
	"time"
)

func TestNilClientDegradesToNoop(t *testing.T) {
	c := New(nil, time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, 7); ok {
		t.Error("Get reported a hit with no Redis client")
	}
	// Writes must not panic and must stay invisible.
	c.Set(ctx, Profile{ID: 7, Email: "a@x.com"})
	c.Invalidate(ctx, 7)
	if _, ok := c.Get(ctx, 7); ok {
		t.Error("Set became visible without a Redis client")
	}
}

func TestKeyFormat(t *testing.T) {
	if got := key(42); got != "user_42" {
		t.Errorf("key(42) = %q, want user_42", got)
	}
}
