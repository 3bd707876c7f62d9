package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "account:42", `{"id":42,"balance":1500}`, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "account:42")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != `{"id":42,"balance":1500}` {
		t.Fatalf("unexpected cached value: %s", val)
	}
}

func TestCacheMissIsRedisNil(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	if _, err := cache.Get(context.Background(), "account:404"); !errors.Is(err, redislib.Nil) {
		t.Fatalf("expected redis.Nil on miss, got %v", err)
	}
}

func TestCacheKeysAreNamespaced(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "account:7", "x", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if !mr.Exists("bankcore:cache:account:7") {
		t.Fatal("expected key under bankcore:cache: prefix")
	}
}

func TestCacheEntryExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "account:9", "x", 30*time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(time.Minute)

	if _, err := cache.Get(ctx, "account:9"); !errors.Is(err, redislib.Nil) {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "account:11", "x", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Delete(ctx, "account:11"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "account:11"); err == nil {
		t.Fatal("expected error getting deleted key")
	}
}
