package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTimerRejectsNonPositiveDuration(t *testing.T) {
	m := NewManager()
	defer m.Dispose()
	ok := m.AddTimer(0, false, "", func(*Scope) {})
	assert.False(t, ok)
}

func TestTimerRepeatsExactlyNTimes(t *testing.T) {
	m := NewManager()
	defer m.Dispose()

	var mu sync.Mutex
	fires := 0
	done := make(chan struct{})
	m.AddTimer(20*time.Millisecond, true, "", func(s *Scope) {
		mu.Lock()
		fires++
		n := fires
		mu.Unlock()
		if n >= 3 {
			s.Repeat = false
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "timer did not fire enough times")
	}
	time.Sleep(100 * time.Millisecond) // ensure no extra fire sneaks in
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, fires)
}

func TestAddTimerDedupesLiveKey(t *testing.T) {
	m := NewManager()
	defer m.Dispose()

	ok1 := m.AddTimer(time.Second, false, "k", func(*Scope) {})
	ok2 := m.AddTimer(time.Second, false, "k", func(*Scope) {})
	assert.True(t, ok1)
	assert.False(t, ok2)
}

func TestDisposeStopsFurtherFires(t *testing.T) {
	m := NewManager()
	var mu sync.Mutex
	fires := 0
	m.AddTimer(10*time.Millisecond, true, "", func(*Scope) {
		mu.Lock()
		fires++
		mu.Unlock()
	})
	time.Sleep(30 * time.Millisecond)
	m.Dispose()
	mu.Lock()
	before := fires
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before, fires)
}
