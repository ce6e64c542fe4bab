package virtual

import "math"

// Overscan is the number of extra items rendered on each side of the
// estimated visible range.
const Overscan = 1

// Percentage maps a scroll offset onto [0, 1]. When the content does not
// exceed the viewport there is no scroll range and the result is 0.
func Percentage(scrollTop, scrollHeight, viewportHeight int) float64 {
	scrollRange := scrollHeight - viewportHeight
	if scrollRange <= 0 {
		return 0
	}
	return clamp01(float64(scrollTop) / float64(scrollRange))
}

// Locate returns the index of the item the percentage points at, assuming
// every item has the same height, and how far through that item the position
// falls. The fraction is always in [0, 1).
func Locate(percentage float64, n int) (int, float64) {
	if n <= 0 {
		return 0, 0
	}
	pos := clamp01(percentage) * float64(n)
	index := int(math.Floor(pos))
	if index > n-1 {
		index = n - 1
	}
	fraction := pos - float64(index)
	if fraction >= 1 {
		fraction = math.Nextafter(1, 0)
	}
	if fraction < 0 {
		fraction = 0
	}
	return index, fraction
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
