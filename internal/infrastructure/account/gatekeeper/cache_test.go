package gatekeeper

import (
	"testing"
	"time"

	"github.com/obhl/rinkside/internal/domain/user"
)

func TestPrincipalCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(200*time.Millisecond, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})

	principal, ok := cache.Get("k1")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if principal.UserID != "u-1" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
}

func TestPrincipalCache_Expired(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(20*time.Millisecond, 10)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	time.Sleep(40 * time.Millisecond)

	if _, ok := cache.Get("k1"); ok {
		t.Fatalf("expected cache miss after expiry")
	}
}

func TestPrincipalCache_EvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 2)
	cache.Set("k1", user.Principal{UserID: "u-1"})
	cache.Set("k2", user.Principal{UserID: "u-2"})
	cache.Set("k3", user.Principal{UserID: "u-3"})

	if _, ok := cache.Get("k3"); !ok {
		t.Fatalf("expected most recent entry to survive eviction")
	}
}
