package list

import (
	"strings"
	"testing"

	"github.com/charmbracelet/vlist/internal/tui/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacerViewport(t *testing.T) {
	t.Parallel()

	children := []string{"a1\na2", "b1", "c1\nc2\nc3"}

	t.Run("window at the top", func(t *testing.T) {
		t.Parallel()
		s := spacer{contentHeight: 100, topOffset: 0}
		assert.Equal(t, []string{"a1", "a2", "b1", "c1"}, s.viewport(children, 0, 4))
	})

	t.Run("window below the viewport start", func(t *testing.T) {
		t.Parallel()
		s := spacer{contentHeight: 100, topOffset: 10}
		assert.Equal(t, []string{"", "", "a1", "a2", "b1"}, s.viewport(children, 8, 5))
	})

	t.Run("viewport starts inside a child", func(t *testing.T) {
		t.Parallel()
		s := spacer{contentHeight: 100, topOffset: 10}
		assert.Equal(t, []string{"c2", "c3", ""}, s.viewport(children, 14, 3))
	})

	t.Run("window above the viewport", func(t *testing.T) {
		t.Parallel()
		s := spacer{contentHeight: 100, topOffset: 0}
		assert.Equal(t, []string{"", ""}, s.viewport(children, 50, 2))
	})

	t.Run("no height", func(t *testing.T) {
		t.Parallel()
		s := spacer{contentHeight: 100}
		assert.Nil(t, s.viewport(children, 0, 0))
	})
}

func TestScrollbar(t *testing.T) {
	t.Parallel()

	t.Run("content fits", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Scrollbar(10, 10, 10, 0))
		assert.Empty(t, Scrollbar(0, 100, 10, 0))
	})

	thumbRows := func(bar string) []int {
		var rows []int
		for i, line := range strings.Split(ansi.Strip(bar), "\n") {
			if line == styles.ScrollbarThumb {
				rows = append(rows, i)
			}
		}
		return rows
	}

	t.Run("thumb follows the offset", func(t *testing.T) {
		t.Parallel()
		top := thumbRows(Scrollbar(10, 100, 10, 0))
		require.Equal(t, []int{0}, top)

		bottom := thumbRows(Scrollbar(10, 100, 10, 90))
		require.Equal(t, []int{9}, bottom)

		middle := thumbRows(Scrollbar(10, 100, 10, 45))
		require.Len(t, middle, 1)
		assert.Equal(t, 4, middle[0])
	})

	t.Run("thumb size is proportional", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, thumbRows(Scrollbar(10, 20, 10, 0)), 5)
		assert.Len(t, thumbRows(Scrollbar(10, 1000000, 10, 0)), 1)
	})

	t.Run("offsets past the end stay in the track", func(t *testing.T) {
		t.Parallel()
		bar := Scrollbar(10, 100, 10, 5000)
		assert.Len(t, strings.Split(bar, "\n"), 10)
		assert.Equal(t, []int{9}, thumbRows(bar))
	})
}
