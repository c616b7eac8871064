package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Now_IsUTC(t *testing.T) {
	now := System{}.Now()
	assert.Equal(t, time.UTC, now.Location())
}

func TestMonotonic_FollowsBaseClock(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	fake := NewFake(start)
	clock := NewMonotonic(fake)

	assert.True(t, clock.Now().Equal(start))

	fake.Advance(time.Second)
	assert.True(t, clock.Now().Equal(start.Add(time.Second)))
}

func TestMonotonic_StrictlyIncreasingWhenBaseStalls(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := NewMonotonic(NewFake(start))

	first := clock.Now()
	second := clock.Now()
	third := clock.Now()

	assert.True(t, second.After(first))
	assert.True(t, third.After(second))
	assert.Equal(t, time.Nanosecond, third.Sub(second))
}

func TestMonotonic_BaseGoesBackwards(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	fake := NewFake(start)
	clock := NewMonotonic(fake)

	first := clock.Now()

	// Часы устройства перевели назад
	fake.Set(start.Add(-time.Hour))
	second := clock.Now()

	assert.True(t, second.After(first), "штамп не должен уходить назад")
}

func TestMonotonic_Observe(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := NewMonotonic(NewFake(start))

	persisted := start.Add(10 * time.Minute)
	clock.Observe(persisted)
	assert.True(t, clock.Last().Equal(persisted))

	next := clock.Now()
	assert.True(t, next.After(persisted))

	// Более старый штамп игнорируется
	clock.Observe(start)
	assert.True(t, clock.Last().Equal(next))
}

func TestMonotonic_Concurrent(t *testing.T) {
	clock := NewMonotonic(NewFake(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)))

	const goroutines = 10
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[time.Time]bool)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ts := clock.Now()
				mu.Lock()
				seen[ts] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, goroutines*perGoroutine, "все штампы должны быть уникальными")
}

func TestNewMonotonic_NilBaseUsesSystem(t *testing.T) {
	clock := NewMonotonic(nil)
	before := time.Now().UTC().Add(-time.Second)
	assert.True(t, clock.Now().After(before))
}
