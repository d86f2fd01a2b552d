package csync

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Parallel()

	m := NewMap[string, int]()
	require.Zero(t, m.Len())

	m.Set("b", 2)
	m.Set("a", 1)
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.False(t, m.SetIfAbsent("a", 10))
	assert.True(t, m.SetIfAbsent("c", 3))
	v, _ = m.Get("a")
	assert.Equal(t, 1, v)

	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))

	m.Del("b")
	_, ok = m.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestMapSeq2Snapshot(t *testing.T) {
	t.Parallel()

	m := NewMap[int, string]()
	for i := range 5 {
		m.Set(i, fmt.Sprint(i))
	}

	seen := 0
	for k := range m.Seq2() {
		m.Del(k)
		seen++
	}
	assert.Equal(t, 5, seen)
	assert.Zero(t, m.Len())

	m.Set(1, "x")
	m.Set(2, "y")
	count := 0
	for range m.Seq2() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestMapConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewMap[int, int]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Set(i, i*i)
		}()
		go func() {
			defer wg.Done()
			m.Get(i)
			_ = m.Len()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, m.Len())
}
