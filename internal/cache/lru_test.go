package cache

import (
	"testing"
	"time"
)

func TestGetSetDelete(t *testing.T) {
	c := New[int](10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatalf("empty cache returned a value")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("overwrite failed: %d", v)
	}
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("deleted key still present")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New[string](10, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry returned")
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a; b becomes the eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("recently used entry evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatalf("newest entry evicted")
	}
}
