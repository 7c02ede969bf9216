package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(maxItems int, ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	c := New[string](Config{MaxItems: maxItems, TTL: ttl})
	c.now = clock.Now
	return c, clock
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "alpha")

	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Expected alpha, got %q (ok=%v)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "alpha")
	c.SetWithTTL("forever", "omega", 0)

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("Expected entry to be alive before its TTL")
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("Expected entry to be expired after its TTL")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("Expected zero TTL entry to never expire")
	}
	if c.Size() != 1 {
		t.Errorf("Expected expired entry to be removed, got size %d", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c, clock := newTestCache(2, time.Hour)
	defer c.Close()

	c.Set("first", "1")
	clock.Advance(time.Second)
	c.Set("second", "2")
	clock.Advance(time.Second)
	c.Set("third", "3")

	if c.Size() != 2 {
		t.Fatalf("Expected size 2, got %d", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("Expected the oldest entry to be evicted")
	}
	for _, key := range []string{"second", "third"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Expected %s to survive eviction", key)
		}
	}
}

func TestCache_ReplaceDoesNotEvict(t *testing.T) {
	c, clock := newTestCache(2, time.Hour)
	defer c.Close()

	c.Set("a", "1")
	clock.Advance(time.Second)
	c.Set("b", "2")
	c.Set("b", "3")

	if _, ok := c.Get("a"); !ok {
		t.Error("Expected replacing an existing key to keep other entries")
	}
	if got, _ := c.Get("b"); got != "3" {
		t.Errorf("Expected 3, got %q", got)
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Expected empty cache, got size %d", c.Size())
	}
}

func TestCache_Stats(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 3 || s.Misses != 1 {
		t.Errorf("Expected 3 hits and 1 miss, got %d and %d", s.Hits, s.Misses)
	}
	if s.HitRate != 75 {
		t.Errorf("Expected hit rate 75, got %v", s.HitRate)
	}
	if s.Items != 1 {
		t.Errorf("Expected 1 item, got %d", s.Items)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.GetOrSet("k", load)
		if err != nil {
			t.Fatalf("GetOrSet() error = %v", err)
		}
		if got != "loaded" {
			t.Errorf("Expected loaded, got %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("Expected 1 load, got %d", calls)
	}

	failure := errors.New("store unavailable")
	if _, err := c.GetOrSet("bad", func() (string, error) { return "", failure }); !errors.Is(err, failure) {
		t.Errorf("Expected %v, got %v", failure, err)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("Expected failed load not to be cached")
	}
}

func TestCache_Cleanup(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)
	defer c.Close()

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), "v")
	}
	clock.Advance(2 * time.Minute)
	c.cleanup()

	if c.Size() != 0 {
		t.Errorf("Expected cleanup to remove expired entries, got size %d", c.Size())
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Close()
	c.Close()

	c.Set("still", 1)
	if got, ok := c.Get("still"); !ok || got != 1 {
		t.Errorf("Expected cache to stay usable after Close, got %d (ok=%v)", got, ok)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int](Config{MaxItems: 64, TTL: time.Minute})
	defer c.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%100)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Size() > 64 {
		t.Errorf("Expected at most 64 items, got %d", c.Size())
	}
}
