package syncutil

import (
	"sync"
	"testing"
)

func TestShardedMutex_MutualExclusion(t *testing.T) {
	var sm ShardedMutex
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := sm.Lock("same-key")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
}

func TestShardedMutex_IndependentKeys(t *testing.T) {
	var sm ShardedMutex

	// Find a key that lands in a different shard than key-a, then verify
	// holding key-a does not block it.
	other := ""
	for _, k := range []string{"key-b", "key-c", "key-d", "key-e"} {
		if sm.shard(k) != sm.shard("key-a") {
			other = k
			break
		}
	}
	if other == "" {
		t.Skip("all probe keys collided with key-a")
	}

	unlock := sm.Lock("key-a")
	defer unlock()

	done := make(chan struct{})
	go func() {
		u := sm.Lock(other)
		u()
		close(done)
	}()
	<-done
}

func TestShardedMutex_UnlockAllowsReacquire(t *testing.T) {
	var sm ShardedMutex

	unlock := sm.Lock("k")
	unlock()

	unlock = sm.Lock("k")
	unlock()
}
