package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"sync"
	"testing"
	"time"
)

func testKey(t *testing.T) *rsa.PublicKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return &key.PublicKey
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Hour)
	key := testKey(t)

	cache.Set("kid-1", key)

	got := cache.Get("kid-1")
	if got == nil {
		t.Fatal("Get() returned nil for cached key")
	}
	if got != key {
		t.Error("Get() returned a different key")
	}
}

func TestCache_Miss(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Hour)

	if got := cache.Get("absent"); got != nil {
		t.Errorf("Get() = %v, want nil for absent key", got)
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	cache := NewCache(10 * time.Millisecond)
	cache.Set("kid-1", testKey(t))

	if cache.Get("kid-1") == nil {
		t.Fatal("key should be retrievable before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if cache.Get("kid-1") != nil {
		t.Error("key should have expired")
	}
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Hour)
	cache.Set("kid-1", testKey(t))
	cache.Set("kid-2", testKey(t))

	if cache.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", cache.Size())
	}
	if cache.Get("kid-1") != nil {
		t.Error("Get() should return nil after Clear")
	}
}

func TestCache_Overwrite(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Hour)
	first := testKey(t)
	second := testKey(t)

	cache.Set("kid-1", first)
	cache.Set("kid-1", second)

	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
	if got := cache.Get("kid-1"); got != second {
		t.Error("Get() should return the most recent key")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := NewCache(time.Hour)
	key := testKey(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set("kid-1", key)
			_ = cache.Get("kid-1")
			_ = cache.Size()
		}()
	}
	wg.Wait()

	if cache.Get("kid-1") == nil {
		t.Error("key missing after concurrent access")
	}
}
