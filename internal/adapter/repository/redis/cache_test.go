package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "report:trial_balance", []byte(`{"is_balanced":true}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "report:trial_balance")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"is_balanced":true}` {
		t.Fatalf("unexpected cached value %s", val)
	}

	if !mr.Exists(cache.prefix + "report:trial_balance") {
		t.Fatalf("expected key to be stored under the cache prefix")
	}
}

func TestCacheMissReturnsNil(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	val, err := NewCache(client).Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil on miss, got %s", val)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	val, err := cache.Get(ctx, "k")
	if err != nil || val != nil {
		t.Fatalf("expected expired key, got val=%s err=%v", val, err)
	}
}

func TestCacheDeleteMany(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, k, []byte(k), time.Minute); err != nil {
			t.Fatalf("set failed: %v", err)
		}
	}

	if err := cache.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := cache.Delete(ctx); err != nil {
		t.Fatalf("empty delete failed: %v", err)
	}

	for k, want := range map[string]bool{"a": false, "b": false, "c": true} {
		val, err := cache.Get(ctx, k)
		if err != nil {
			t.Fatalf("get %s failed: %v", k, err)
		}
		if (val != nil) != want {
			t.Fatalf("key %s present=%v, want %v", k, val != nil, want)
		}
	}
}

func TestCacheGetError(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	mr.Close()

	if _, err := NewCache(client).Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
