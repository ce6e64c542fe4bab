package virtual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		scrollTop      int
		scrollHeight   int
		viewportHeight int
		expected       float64
	}{
		{name: "top", scrollTop: 0, scrollHeight: 15000, viewportHeight: 300, expected: 0},
		{name: "bottom", scrollTop: 14700, scrollHeight: 15000, viewportHeight: 300, expected: 1},
		{name: "middle", scrollTop: 7350, scrollHeight: 15000, viewportHeight: 300, expected: 0.5},
		{name: "past the end is clamped", scrollTop: 99999, scrollHeight: 15000, viewportHeight: 300, expected: 1},
		{name: "negative is clamped", scrollTop: -10, scrollHeight: 15000, viewportHeight: 300, expected: 0},
		{name: "content equals viewport", scrollTop: 10, scrollHeight: 300, viewportHeight: 300, expected: 0},
		{name: "content smaller than viewport", scrollTop: 10, scrollHeight: 100, viewportHeight: 300, expected: 0},
		{name: "zero height viewport", scrollTop: 50, scrollHeight: 100, viewportHeight: 0, expected: 0.5},
		{name: "nothing at all", scrollTop: 0, scrollHeight: 0, viewportHeight: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Percentage(tt.scrollTop, tt.scrollHeight, tt.viewportHeight)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	t.Run("index always inside the data source", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{1, 2, 3, 7, 10, 999, 1000} {
			for step := 0; step <= 100; step++ {
				p := float64(step) / 100
				index, fraction := Locate(p, n)
				require.GreaterOrEqual(t, index, 0, "p=%v n=%d", p, n)
				require.Less(t, index, n, "p=%v n=%d", p, n)
				require.GreaterOrEqual(t, fraction, 0.0)
				require.Less(t, fraction, 1.0)
			}
		}
	})

	t.Run("top of the list", func(t *testing.T) {
		t.Parallel()
		index, fraction := Locate(0, 1000)
		assert.Equal(t, 0, index)
		assert.Zero(t, fraction)
	})

	t.Run("halfway", func(t *testing.T) {
		t.Parallel()
		index, fraction := Locate(0.5, 1000)
		assert.InDelta(t, 500, index, 1)
		assert.InDelta(t, 0, fraction, 1e-9)
	})

	t.Run("fraction within an item", func(t *testing.T) {
		t.Parallel()
		index, fraction := Locate(0.125, 10)
		assert.Equal(t, 1, index)
		assert.InDelta(t, 0.25, fraction, 1e-9)
	})

	t.Run("bottom pins the last item", func(t *testing.T) {
		t.Parallel()
		index, fraction := Locate(1, 10)
		assert.Equal(t, 9, index)
		assert.Less(t, fraction, 1.0)
		assert.InDelta(t, 1, fraction, 1e-9)
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()
		index, fraction := Locate(0.7, 0)
		assert.Equal(t, 0, index)
		assert.Zero(t, fraction)
	})

	t.Run("out of range percentage is clamped", func(t *testing.T) {
		t.Parallel()
		index, _ := Locate(3, 10)
		assert.Equal(t, 9, index)
		index, _ = Locate(-1, 10)
		assert.Equal(t, 0, index)
	})
}

func TestLocatedIndexIsMonotonic(t *testing.T) {
	t.Parallel()

	const (
		n              = 1000
		itemHeight     = 15
		viewportHeight = 300
	)
	scrollHeight := n * itemHeight
	prev := -1
	for scrollTop := 0; scrollTop <= scrollHeight; scrollTop += 7 {
		p := Percentage(scrollTop, scrollHeight, viewportHeight)
		index, _ := Locate(p, n)
		require.GreaterOrEqual(t, index, prev, "scrollTop=%d", scrollTop)
		prev = index
	}
	assert.Equal(t, n-1, prev)
}
