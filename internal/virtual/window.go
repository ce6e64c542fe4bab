package virtual

import "math"

// Window is an inclusive range of item indexes. An empty window has End < Start.
type Window struct {
	Start int
	End   int
}

// EmptyWindow is the window of an empty data source.
var EmptyWindow = Window{Start: 0, End: -1}

func (w Window) Empty() bool {
	return w.End < w.Start
}

func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.End - w.Start + 1
}

// VisibleCount is the number of nominal-height items needed to fill the
// viewport. It is never less than one, so a zero-height viewport still
// renders something.
func VisibleCount(viewportHeight, itemHeight int) int {
	if itemHeight <= 0 {
		itemHeight = 1
	}
	if viewportHeight <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(float64(viewportHeight)/float64(itemHeight))))
}

// SelectWindow picks the range of items to render around the located index.
// The slack before and after the located item is split by the scroll
// percentage: the further down the list, the more items are kept above.
func SelectWindow(index, n, viewportHeight, itemHeight int, percentage float64) Window {
	if n <= 0 {
		return EmptyWindow
	}
	index = min(max(index, 0), n-1)
	percentage = clamp01(percentage)

	visible := VisibleCount(viewportHeight, itemHeight)
	before := int(math.Ceil(percentage*float64(visible))) + Overscan
	after := int(math.Ceil((1-percentage)*float64(visible))) + Overscan

	w := Window{
		Start: max(0, index-before),
		End:   min(n-1, index+after),
	}

	// Clamping one side may leave the window short of a full viewport; grow
	// the other side to make up for it.
	want := min(n, visible)
	for w.Len() < want && w.End < n-1 {
		w.End++
	}
	for w.Len() < want && w.Start > 0 {
		w.Start--
	}
	return w
}
