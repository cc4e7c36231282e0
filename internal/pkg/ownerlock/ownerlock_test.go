package ownerlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializesSameKey(t *testing.T) {
	km := New()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("alice")
			defer km.Unlock("alice")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestIndependentKeysDoNotBlock(t *testing.T) {
	km := New()

	km.Lock("alice")
	defer km.Unlock("alice")

	done := make(chan struct{})
	go func() {
		km.Lock("bob")
		km.Unlock("bob")
		close(done)
	}()

	<-done // must complete while "alice" is still held
}

func TestEntryDroppedWhenIdle(t *testing.T) {
	km := New()

	km.Lock("alice")
	km.Unlock("alice")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
