package utils

import (
	"testing"
	"time"
)

func TestQueryCacheHit(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	cache.Set("iphone 15|amazon.in", []string{"a", "b"})

	val, ok := cache.Get("iphone 15|amazon.in")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if got := val.([]string); len(got) != 2 {
		t.Errorf("got %v, want the stored slice", got)
	}
}

func TestQueryCacheMiss(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	if _, ok := cache.Get("never stored"); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestQueryCacheExpiry(t *testing.T) {
	cache := NewQueryCache(20 * time.Millisecond)
	cache.Set("k", "v")

	if _, ok := cache.Get("k"); !ok {
		t.Fatal("entry should still be fresh")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := cache.Get("k"); ok {
		t.Error("entry should have expired")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry should be evicted on read, Len = %d", cache.Len())
	}
}

func TestQueryCacheDisabled(t *testing.T) {
	cache := NewQueryCache(0)
	cache.Set("k", "v")

	if _, ok := cache.Get("k"); ok {
		t.Error("non-positive TTL must disable caching")
	}
	if cache.Len() != 0 {
		t.Errorf("disabled cache must stay empty, Len = %d", cache.Len())
	}
}

func TestQueryCacheConcurrentAccess(t *testing.T) {
	cache := NewQueryCache(time.Minute)
	done := make(chan struct{})

	for i := 0; i < 10; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := string(rune('a' + n))
			cache.Set(key, n)
			cache.Get(key)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if cache.Len() != 10 {
		t.Errorf("expected 10 entries, got %d", cache.Len())
	}
}
