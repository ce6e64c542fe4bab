package virtual

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeights(t *testing.T) {
	t.Parallel()

	t.Run("unmeasured keys read as zero", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(0)
		got, ok := h.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, got)
		assert.Equal(t, uint64(1), h.Stats().Misses)
	})

	t.Run("measurements are overwritten", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(0)
		h.Set("a", 3)
		h.Set("a", 5)
		got, ok := h.Get("a")
		require.True(t, ok)
		assert.Equal(t, 5, got)
		assert.Equal(t, 1, h.Len())
		assert.Equal(t, uint64(1), h.Stats().Hits)
	})

	t.Run("unbounded cache never evicts", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(0)
		for i := range 100 {
			h.Set(fmt.Sprint(i), i)
		}
		assert.Zero(t, h.Prune(0))
		assert.Equal(t, 100, h.Len())
	})

	t.Run("prune drops the least recently measured", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(3)
		for _, k := range []string{"a", "b", "c", "d", "e"} {
			h.Set(k, 1)
		}
		h.Set("a", 2)

		assert.Equal(t, 2, h.Prune(0))
		assert.Equal(t, 3, h.Len())

		_, ok := h.Get("b")
		assert.False(t, ok)
		_, ok = h.Get("c")
		assert.False(t, ok)
		for _, k := range []string{"a", "d", "e"} {
			_, ok := h.Get(k)
			assert.True(t, ok, k)
		}
		assert.Equal(t, uint64(2), h.Stats().Evictions)
	})

	t.Run("prune keeps at least the requested entries", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(2)
		for i := range 6 {
			h.Set(fmt.Sprint(i), i)
		}
		assert.Equal(t, 1, h.Prune(5))
		assert.Equal(t, 5, h.Len())
		_, ok := h.Get("0")
		assert.False(t, ok)
	})

	t.Run("reset", func(t *testing.T) {
		t.Parallel()
		h := NewHeights(0)
		h.Set("a", 1)
		h.Reset()
		assert.Zero(t, h.Len())
		_, ok := h.Get("a")
		assert.False(t, ok)
	})
}
