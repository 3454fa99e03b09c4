package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	key := NewKey[int]("count")

	require.NoError(t, Put(s, key, root, 42, nil))
	v, ok := Get(s, key)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestPutRejectsInactiveLifecycle(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	s.StopLifecycle(root)

	key := NewKey[int]("count")
	err := Put(s, key, root, 1, nil)
	assert.ErrorIs(t, err, ErrLifecycleNotActive)
}

func TestTryPutIsNoOpIfPresent(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	key := NewKey[int]("count")

	require.NoError(t, Put(s, key, root, 1, nil))
	require.NoError(t, TryPut(s, key, root, 2, nil))

	v, _ := Get(s, key)
	assert.Equal(t, 1, v)
}

func TestStopLifecycleDisposesInInsertionOrder(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	keys := []Key[int]{NewKey[int]("a"), NewKey[int]("b"), NewKey[int]("c")}

	var disposed []int
	for i, k := range keys {
		i := i
		require.NoError(t, Put(s, k, root, i, func(v int) { disposed = append(disposed, v) }))
	}
	s.StopLifecycle(root)
	assert.Equal(t, []int{0, 1, 2}, disposed)
}

func TestStopLifecycleCascadesToChildren(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	child := NewLifecycle("child", root)

	key := NewKey[string]("v")
	disposedChild := false
	require.NoError(t, Put(s, key, child, "x", func(string) { disposedChild = true }))

	s.StopLifecycle(root)
	assert.True(t, disposedChild)
	assert.False(t, child.IsActive())
	assert.False(t, root.IsActive())
}

func TestPutIfAbsentRunsBlockUnderWriteLock(t *testing.T) {
	s := NewStore()
	root := NewLifecycle("root", nil)
	key := NewKey[int]("n")

	var seen int
	err := PutIfAbsent(s, key, root, func() int { return 10 }, nil, func(v int) { seen = v })
	require.NoError(t, err)
	assert.Equal(t, 10, seen)

	err = PutIfAbsent(s, key, root, func() int { return 99 }, nil, func(v int) { seen = v })
	require.NoError(t, err)
	assert.Equal(t, 10, seen) // unchanged: key was already present
}
