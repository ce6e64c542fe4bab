package virtual

import "math"

// Correction holds everything the offset corrector needs about one cycle.
type Correction struct {
	ScrollTop      int
	ViewportHeight int
	Percentage     float64
	LocatedIndex   int
	Fraction       float64
	StartIndex     int
}

// Correct computes the absolute top of the rendered window.
//
// The located item is pinned at Percentage*ViewportHeight lines below the
// scroll offset, moved up by the part of it already scrolled past. The
// window's first item is found by walking back from there over the measured
// heights of the items in between, so only the window needs measuring.
// Unmeasured items count as zero lines.
func Correct(c Correction, heightOf func(index int) int) int {
	locatedTop := c.Percentage * float64(c.ViewportHeight)
	locatedOffset := c.Fraction * float64(heightOf(c.LocatedIndex))
	top := float64(c.ScrollTop) + locatedTop - locatedOffset
	for i := c.LocatedIndex - 1; i >= c.StartIndex; i-- {
		top -= float64(heightOf(i))
	}
	return int(math.Round(top))
}
