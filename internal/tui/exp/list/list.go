package list

import (
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/vlist/internal/tui/components/core/layout"
	"github.com/charmbracelet/vlist/internal/tui/util"
	"github.com/charmbracelet/vlist/internal/virtual"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

// RenderFunc turns an item into its terminal representation.
type RenderFunc[T any] func(item T) string

// KeyFunc derives the identity used to cache an item's measured height.
type KeyFunc[T any] func(item T, index int) string

// Identifiable items are keyed by their ID unless a KeyFunc is given.
type Identifiable interface {
	ID() string
}

type List[T any] interface {
	util.Model
	layout.Sizeable

	SetItems([]T) tea.Cmd
	Items() []T
	Len() int

	ScrollTo(int) tea.Cmd
	ScrollBy(int) tea.Cmd
	ScrollTop() int
	MaxScrollTop() int

	ID() string
	Virtualized() bool
	Window() (start, end int)
	Phase() virtual.Phase
	State() virtual.State
	ItemHeight() int
	Heights() *virtual.Heights
}

const (
	ViewportDefaultScrollSize = 2
)

// ScrollMsg scrolls the list with the given ID to an absolute line offset.
// An empty ID matches any list.
type ScrollMsg struct {
	ID  string
	Top int
}

// committedMsg is delivered once a window render has gone through the
// program loop, which is when its nodes may be measured.
type committedMsg struct {
	id         string
	generation int
}

type confOptions struct {
	width, height   int
	itemHeight      int
	keyFunc         any
	containerStyle  lipgloss.Style
	scrollbar       bool
	enableMouse     bool
	wheelStep       int
	heightCacheSize int
}

// node is a rendered item attached to the list for measuring.
type node struct {
	key  string
	view string
}

type list[T any] struct {
	*confOptions

	id     string
	items  []T
	render RenderFunc[T]
	key    KeyFunc[T]

	driver      *virtual.Driver
	virtualized bool
	scrollTop   int
	generation  int

	nodes    map[int]node
	spacer   spacer
	rendered string
}

type ListOption func(*confOptions)

// WithSize sets the width of the list and the height of its viewport. A
// height of zero leaves the list unconstrained and every item is rendered.
func WithSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.width = width
		l.height = height
	}
}

// WithItemHeight sets the nominal item height used to estimate which items
// are visible before anything is measured.
func WithItemHeight(height int) ListOption {
	return func(l *confOptions) {
		l.itemHeight = height
	}
}

// WithKeyFunc sets how items are identified in the height cache.
func WithKeyFunc[T any](fn KeyFunc[T]) ListOption {
	return func(l *confOptions) {
		l.keyFunc = fn
	}
}

// WithContainerStyle sets the style wrapping the viewport.
func WithContainerStyle(style lipgloss.Style) ListOption {
	return func(l *confOptions) {
		l.containerStyle = style
	}
}

func WithScrollbar() ListOption {
	return func(l *confOptions) {
		l.scrollbar = true
	}
}

func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// WithWheelStep sets how many lines a mouse wheel notch scrolls.
func WithWheelStep(lines int) ListOption {
	return func(l *confOptions) {
		if lines > 0 {
			l.wheelStep = lines
		}
	}
}

// WithHeightCacheSize bounds the number of remembered item heights. Zero
// keeps every measurement.
func WithHeightCacheSize(size int) ListOption {
	return func(l *confOptions) {
		l.heightCacheSize = size
	}
}

func New[T any](items []T, render RenderFunc[T], opts ...ListOption) List[T] {
	conf := &confOptions{
		itemHeight:     1,
		wheelStep:      ViewportDefaultScrollSize,
		containerStyle: lipgloss.NewStyle(),
	}
	for _, opt := range opts {
		opt(conf)
	}

	l := &list[T]{
		confOptions: conf,
		id:          uuid.NewString(),
		items:       items,
		render:      render,
		key:         defaultKey[T],
	}
	if fn, ok := conf.keyFunc.(KeyFunc[T]); ok && fn != nil {
		l.key = fn
	}
	l.driver = virtual.NewDriver(conf.height, conf.itemHeight, virtual.NewHeights(conf.heightCacheSize))
	l.virtualized = virtual.Virtualize(len(items), conf.height, conf.itemHeight)
	return l
}

func defaultKey[T any](item T, index int) string {
	if i, ok := any(item).(Identifiable); ok {
		return i.ID()
	}
	return strconv.Itoa(index)
}

// Init implements List.
func (l *list[T]) Init() tea.Cmd {
	if l.fits() {
		return nil
	}
	l.driver.Mount(l, l.scrollTop)
	l.scrollTop = l.driver.State().ScrollTop
	return l.renderWindow()
}

// Update implements List.
func (l *list[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case committedMsg:
		return l, l.commit(msg)
	case ScrollMsg:
		if msg.ID != "" && msg.ID != l.id {
			return l, nil
		}
		return l, l.ScrollTo(msg.Top)
	case tea.MouseWheelMsg:
		if l.enableMouse {
			return l.handleMouseWheel(msg)
		}
	}
	return l, nil
}

func (l *list[T]) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Button {
	case tea.MouseWheelDown:
		cmd = l.ScrollBy(l.wheelStep)
	case tea.MouseWheelUp:
		cmd = l.ScrollBy(-l.wheelStep)
	}
	return l, cmd
}

// View implements List.
func (l *list[T]) View() string {
	style := l.containerStyle
	if l.width > 0 {
		style = style.Width(l.width)
	}
	if !l.virtualized {
		return style.Render(l.rendered)
	}

	view := l.rendered
	if l.scrollbar {
		bar := Scrollbar(l.height, l.spacer.contentHeight, l.height, l.scrollTop)
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, bar)
	}
	return style.Height(l.height).MaxHeight(l.height).Render(view)
}

// commit measures the nodes of the render identified by msg and moves the
// window to its corrected offset. Renders that were superseded before they
// were committed are ignored.
func (l *list[T]) commit(msg committedMsg) tea.Cmd {
	if msg.id != l.id || msg.generation != l.generation || !l.virtualized {
		return nil
	}
	measured := l.driver.Measure(l, func(index int) (int, bool) {
		n, ok := l.nodes[index]
		if !ok || n.key != l.Key(index) {
			return 0, false
		}
		return lipgloss.Height(n.view), true
	})
	if measured {
		l.compose()
	}
	return nil
}

// renderWindow renders the items of the driver's window, lays them out at the
// driver's current offset and returns the command that commits the render.
func (l *list[T]) renderWindow() tea.Cmd {
	l.generation++
	w := l.driver.Window()
	nodes := make(map[int]node, w.Len())
	for i := w.Start; i <= w.End && i < len(l.items); i++ {
		nodes[i] = node{
			key:  l.Key(i),
			view: l.renderItem(l.items[i]),
		}
	}
	l.nodes = nodes
	l.compose()

	msg := committedMsg{id: l.id, generation: l.generation}
	return func() tea.Msg {
		return msg
	}
}

func (l *list[T]) compose() {
	w := l.driver.Window()
	children := make([]string, 0, w.Len())
	for i := w.Start; i <= w.End; i++ {
		if n, ok := l.nodes[i]; ok {
			children = append(children, n.view)
		}
	}
	l.spacer = spacer{
		contentHeight: l.driver.ContentHeight(len(l.items)),
		topOffset:     l.driver.TopOffset(),
	}
	lines := l.spacer.viewport(children, l.scrollTop, l.height)
	if width := l.contentWidth(); width > 0 {
		for i, line := range lines {
			line = ansi.Truncate(line, width, "")
			if pad := width - ansi.StringWidth(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
			lines[i] = line
		}
	}
	l.rendered = strings.Join(lines, "\n")
}

// fits renders every item and reports true when windowing is not needed.
// Items taller than the nominal height can overflow a viewport the estimate
// says they fit in. The estimate is then raised to their average rendered
// height and the list is windowed after all.
func (l *list[T]) fits() bool {
	l.driver.SetItemHeight(l.itemHeight)
	l.virtualized = virtual.Virtualize(len(l.items), l.height, l.itemHeight)
	if l.virtualized {
		return false
	}
	l.renderAll()
	if l.height <= 0 || len(l.items) == 0 {
		return true
	}
	total := lipgloss.Height(l.rendered)
	if total <= l.height {
		return true
	}
	estimate := (total + len(l.items) - 1) / len(l.items)
	slog.Debug("Items overflow the viewport", "items", len(l.items), "lines", total, "estimate", estimate)
	l.driver.SetItemHeight(estimate)
	l.virtualized = true
	return false
}

func (l *list[T]) renderAll() {
	views := make([]string, len(l.items))
	for i, item := range l.items {
		views[i] = l.renderItem(item)
	}
	l.nodes = nil
	l.rendered = strings.Join(views, "\n")
}

func (l *list[T]) renderItem(item T) string {
	view := l.render(item)
	if width := l.contentWidth(); width > 0 {
		view = lipgloss.NewStyle().Width(width).Render(view)
	}
	return view
}

func (l *list[T]) contentWidth() int {
	if l.scrollbar && l.virtualized && l.width > 1 {
		return l.width - 1
	}
	return l.width
}

// reset re-evaluates the fast path and restarts the cycle against the
// current items and size.
func (l *list[T]) reset() tea.Cmd {
	wasVirtualized := l.virtualized
	fits := l.fits()
	if wasVirtualized != l.virtualized {
		slog.Debug("List virtualization changed", "virtualized", l.virtualized, "items", len(l.items))
	}
	if fits {
		l.driver.Reset()
		l.scrollTop = 0
		return nil
	}
	l.driver.Invalidate(l, l.scrollTop)
	l.scrollTop = l.driver.State().ScrollTop
	return l.renderWindow()
}

// Len implements List and virtual.Source.
func (l *list[T]) Len() int {
	return len(l.items)
}

// Key implements virtual.Source.
func (l *list[T]) Key(index int) string {
	if index < 0 || index >= len(l.items) {
		return strconv.Itoa(index)
	}
	return l.key(l.items[index], index)
}

// Items implements List.
func (l *list[T]) Items() []T {
	return l.items
}

// SetItems implements List. The window is re-clamped to the new length and
// the cycle restarts even if the scroll offset stays the same.
func (l *list[T]) SetItems(items []T) tea.Cmd {
	if len(items) != len(l.items) {
		slog.Debug("Data source length changed", "from", len(l.items), "to", len(items))
	}
	l.items = items
	return l.reset()
}

// ScrollTo implements List.
func (l *list[T]) ScrollTo(top int) tea.Cmd {
	if !l.virtualized {
		return nil
	}
	if !l.driver.Scroll(l, top) {
		return nil
	}
	l.scrollTop = l.driver.State().ScrollTop
	return l.renderWindow()
}

// ScrollBy implements List.
func (l *list[T]) ScrollBy(n int) tea.Cmd {
	return l.ScrollTo(l.scrollTop + n)
}

// ScrollTop implements List.
func (l *list[T]) ScrollTop() int {
	return l.scrollTop
}

// MaxScrollTop implements List.
func (l *list[T]) MaxScrollTop() int {
	if !l.virtualized {
		return 0
	}
	return l.driver.MaxScrollTop(len(l.items))
}

// SetSize implements List.
func (l *list[T]) SetSize(width int, height int) tea.Cmd {
	oldWidth := l.width
	l.width = width
	l.height = height
	l.driver.SetViewportHeight(height)
	if oldWidth != width {
		// Wrapping changes with the width, so old measurements are useless.
		l.driver.Heights().Reset()
	}
	return l.reset()
}

// GetSize implements List.
func (l *list[T]) GetSize() (int, int) {
	return l.width, l.height
}

func (l *list[T]) ID() string {
	return l.id
}

// Virtualized implements List.
func (l *list[T]) Virtualized() bool {
	return l.virtualized
}

// Window implements List. On the fast path it spans every item.
func (l *list[T]) Window() (int, int) {
	if !l.virtualized {
		return 0, len(l.items) - 1
	}
	w := l.driver.Window()
	return w.Start, w.End
}

// Phase implements List.
func (l *list[T]) Phase() virtual.Phase {
	return l.driver.Phase()
}

// State implements List.
func (l *list[T]) State() virtual.State {
	return l.driver.State()
}

// ItemHeight is the item height windowing estimates with. It is the nominal
// height unless the items overflowed a viewport they were estimated to fit.
func (l *list[T]) ItemHeight() int {
	return l.driver.ItemHeight()
}

// Heights is the cache of measured item heights.
func (l *list[T]) Heights() *virtual.Heights {
	return l.driver.Heights()
}
