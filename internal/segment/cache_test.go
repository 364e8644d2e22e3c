package segment_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVLuke/kennzeichen-buch/internal/segment"
)

func TestNewEngine_EmptyCodes(t *testing.T) {
	e, err := segment.NewEngine(segment.NewSet(), 0)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, segment.ErrEmptyCodeSet)
}

func TestEngine_CachesResults(t *testing.T) {
	e, err := segment.NewEngine(segment.NewSet("ST", "RA", "SSE"), 4)
	require.NoError(t, err)

	d, ok, err := e.Decompose("STRASSE")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, segment.Decomposition{"ST", "RA", "SSE"}, d)
	assert.Equal(t, 1, e.Cached())

	// Mutating the returned slice must not leak into the cache.
	d[0] = "XX"
	again, ok, err := e.Decompose("STRASSE")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, segment.Decomposition{"ST", "RA", "SSE"}, again)

	_, ok, err = e.Decompose("AUTOBAHN")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, e.Cached())
}

func TestEngine_InvalidWordNotCached(t *testing.T) {
	e, err := segment.NewEngine(segment.NewSet("A"), 0)
	require.NoError(t, err)

	_, _, err = e.Decompose("a")
	assert.ErrorIs(t, err, segment.ErrInvalidWord)
	assert.Equal(t, 0, e.Cached())
}

func TestEngine_Evicts(t *testing.T) {
	e, err := segment.NewEngine(segment.NewSet("A", "B", "C"), 2)
	require.NoError(t, err)
	for _, w := range []string{"A", "B", "C", "AB"} {
		_, _, err := e.Decompose(w)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, e.Cached())
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e, err := segment.NewEngine(segment.NewSet("F", "A", "HR", "RA", "D"), 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, ok, err := e.Decompose("FAHRRAD")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "FAHRRAD", d.Word())
		}()
	}
	wg.Wait()
}
