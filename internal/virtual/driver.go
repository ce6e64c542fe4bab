package virtual

import "fmt"

// Source is what the driver needs to know about the data being listed.
type Source interface {
	Len() int
	Key(index int) string
}

// Phase is the step of the render cycle the driver is in.
type Phase int

const (
	// PhaseNone means no scroll position has been processed yet.
	PhaseNone Phase = iota
	// PhaseMeasureStart means a window was chosen and rendered at the previous
	// offset, and is waiting for the render to be committed.
	PhaseMeasureStart
	// PhaseMeasureDone means the window was measured and the corrected offset
	// is in effect.
	PhaseMeasureDone
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseMeasureStart:
		return "measure-start"
	case PhaseMeasureDone:
		return "measure-done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is the viewport state of one cycle. It is replaced as a whole every
// time a scroll position is accepted.
type State struct {
	ScrollTop       int     `json:"scroll_top" yaml:"scroll_top"`
	HasScrollTop    bool    `json:"has_scroll_top" yaml:"has_scroll_top"`
	Percentage      float64 `json:"scroll_percentage" yaml:"scroll_percentage"`
	LocatedIndex    int     `json:"located_index" yaml:"located_index"`
	LocatedFraction float64 `json:"located_fraction" yaml:"located_fraction"`
	StartIndex      int     `json:"start_index" yaml:"start_index"`
	EndIndex        int     `json:"end_index" yaml:"end_index"`
	CorrectedOffset int     `json:"corrected_top_offset" yaml:"corrected_top_offset"`
}

func (s State) Window() Window {
	return Window{Start: s.StartIndex, End: s.EndIndex}
}

// Driver sequences estimate, render, measure and correct for a single list.
// It is not safe for concurrent use; it belongs to the goroutine driving the
// UI.
type Driver struct {
	viewportHeight int
	itemHeight     int
	heights        *Heights

	phase      Phase
	state      State
	prevOffset int
}

func NewDriver(viewportHeight, itemHeight int, heights *Heights) *Driver {
	if heights == nil {
		heights = NewHeights(0)
	}
	return &Driver{
		viewportHeight: viewportHeight,
		itemHeight:     itemHeight,
		heights:        heights,
		state:          State{EndIndex: -1},
	}
}

// Virtualize reports whether windowing is worth it. Without a viewport or a
// nominal item height, or when everything fits anyway, every item is
// rendered.
func Virtualize(n, viewportHeight, itemHeight int) bool {
	if viewportHeight <= 0 || itemHeight <= 0 {
		return false
	}
	return n*itemHeight > viewportHeight
}

// ContentHeight is the estimated height of the whole list.
func (d *Driver) ContentHeight(n int) int {
	return max(0, n) * max(0, d.itemHeight)
}

// MaxScrollTop is the largest scroll offset that keeps the viewport inside
// the estimated content.
func (d *Driver) MaxScrollTop(n int) int {
	return max(0, d.ContentHeight(n)-max(0, d.viewportHeight))
}

func (d *Driver) clampScrollTop(n, scrollTop int) int {
	return min(max(scrollTop, 0), d.MaxScrollTop(n))
}

// Mount starts the first cycle. The scroll offset is read unconditionally.
func (d *Driver) Mount(src Source, scrollTop int) {
	d.start(src, scrollTop)
}

// Scroll starts a new cycle if scrollTop differs from the last processed
// offset. A corrective re-render that does not move anything therefore does
// not feed back into another cycle.
func (d *Driver) Scroll(src Source, scrollTop int) bool {
	scrollTop = d.clampScrollTop(src.Len(), scrollTop)
	if d.state.HasScrollTop && d.state.ScrollTop == scrollTop {
		return false
	}
	d.start(src, scrollTop)
	return true
}

// Invalidate restarts the cycle after the data source changed length, even if
// the scroll offset did not move, so the window is re-clamped to the new
// bounds.
func (d *Driver) Invalidate(src Source, scrollTop int) {
	d.start(src, scrollTop)
}

func (d *Driver) start(src Source, scrollTop int) {
	n := src.Len()
	scrollTop = d.clampScrollTop(n, scrollTop)

	if d.phase == PhaseMeasureDone {
		d.prevOffset = d.state.CorrectedOffset
	}

	p := Percentage(scrollTop, d.ContentHeight(n), d.viewportHeight)
	index, fraction := Locate(p, n)
	w := SelectWindow(index, n, d.viewportHeight, d.itemHeight, p)

	d.state = State{
		ScrollTop:       scrollTop,
		HasScrollTop:    true,
		Percentage:      p,
		LocatedIndex:    index,
		LocatedFraction: fraction,
		StartIndex:      w.Start,
		EndIndex:        w.End,
	}
	d.phase = PhaseMeasureStart
}

// Measure records the committed heights of the current window and computes
// the corrected offset. measure reports false for items it could not read.
// It must only be called once the render of the window has been committed;
// outside PhaseMeasureStart it does nothing and returns false.
func (d *Driver) Measure(src Source, measure func(index int) (int, bool)) bool {
	if d.phase != PhaseMeasureStart {
		return false
	}
	w := d.state.Window()
	n := src.Len()
	if w.End >= n {
		// The source shrank between render and commit.
		w.End = n - 1
		w.Start = min(w.Start, max(0, w.End))
	}

	for i := w.Start; i <= w.End; i++ {
		if h, ok := measure(i); ok {
			d.heights.Set(src.Key(i), h)
		}
	}

	if !w.Empty() {
		d.state.CorrectedOffset = Correct(Correction{
			ScrollTop:      d.state.ScrollTop,
			ViewportHeight: d.viewportHeight,
			Percentage:     d.state.Percentage,
			LocatedIndex:   d.state.LocatedIndex,
			Fraction:       d.state.LocatedFraction,
			StartIndex:     w.Start,
		}, func(i int) int {
			if i < 0 || i >= n {
				return 0
			}
			h, _ := d.heights.Get(src.Key(i))
			return h
		})
	}
	d.heights.Prune(w.Len())
	d.phase = PhaseMeasureDone
	return true
}

// TopOffset is where the rendered window goes. Until the window has been
// measured the previous cycle's offset is used, so the first render of a new
// window is never blank.
func (d *Driver) TopOffset() int {
	if d.phase == PhaseMeasureDone {
		return d.state.CorrectedOffset
	}
	return d.prevOffset
}

// Reset returns the driver to PhaseNone, e.g. when the list falls back to
// rendering every item.
func (d *Driver) Reset() {
	d.phase = PhaseNone
	d.state = State{EndIndex: -1}
	d.prevOffset = 0
}

func (d *Driver) SetViewportHeight(height int) {
	d.viewportHeight = height
}

func (d *Driver) SetItemHeight(height int) {
	d.itemHeight = height
}

// ItemHeight is the item height windowing currently estimates with.
func (d *Driver) ItemHeight() int {
	return d.itemHeight
}

func (d *Driver) Phase() Phase {
	return d.phase
}

func (d *Driver) State() State {
	return d.state
}

func (d *Driver) Window() Window {
	if d.phase == PhaseNone {
		return EmptyWindow
	}
	return d.state.Window()
}

func (d *Driver) Heights() *Heights {
	return d.heights
}
