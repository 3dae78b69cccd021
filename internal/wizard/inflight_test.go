package wizard

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInFlight_TryAcquire(t *testing.T) {
	f := NewInFlight()

	assert.True(t, f.TryAcquire(1, 10))
	assert.False(t, f.TryAcquire(1, 10))
	assert.True(t, f.TryAcquire(1, 11), "other resource")
	assert.True(t, f.TryAcquire(2, 10), "other user")

	f.Release(1, 10)
	assert.True(t, f.TryAcquire(1, 10))
}

func TestInFlight_OnlyOneWinner(t *testing.T) {
	f := NewInFlight()
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.TryAcquire(7, 70) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
