package tui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/vlist/internal/config"
	"github.com/charmbracelet/vlist/internal/source"
	"github.com/charmbracelet/vlist/internal/tui/exp/list"
	"github.com/charmbracelet/vlist/internal/tui/styles"
	"github.com/charmbracelet/vlist/internal/tui/util"
	"github.com/charmbracelet/x/ansi"
)

type Options struct {
	// Title shown in the status line.
	Title string
	// Filter is the initial fuzzy filter.
	Filter string
	// Watcher, if set, feeds reloads of the data source file.
	Watcher *source.Watcher
}

// Model is the vlist program: a virtualized list of records with a status
// line and key help.
type Model struct {
	width, height int

	keyMap       KeyMap
	filterKeyMap FilterKeyMap
	help         help.Model
	input        textinput.Model
	filtering    bool

	title   string
	records []source.Record
	list    list.List[source.Record]
	watcher *source.Watcher
	err     error
}

var _ util.Model = (*Model)(nil)

func New(cfg *config.Config, records []source.Record, opts Options) *Model {
	t := styles.CurrentTheme()

	listOpts := []list.ListOption{
		list.WithItemHeight(cfg.List.ItemHeight),
		list.WithWheelStep(cfg.List.WheelStep),
		list.WithHeightCacheSize(cfg.List.HeightCacheSize),
		list.WithKeyFunc[source.Record](source.KeyFunc(cfg.Source.KeyField)),
	}
	if !cfg.List.DisableScrollbar {
		listOpts = append(listOpts, list.WithScrollbar())
	}
	if !cfg.List.DisableMouse {
		listOpts = append(listOpts, list.WithEnableMouse())
	}

	render := source.Render(cfg.Source.TextField)
	if cfg.Source.Highlight {
		render = source.Highlighted(render)
	}
	l := list.New(
		source.Filter(records, opts.Filter),
		func(r source.Record) string {
			return t.S().Base.Render(render(r))
		},
		listOpts...,
	)

	h := help.New()
	h.Styles = t.S().Help

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "fuzzy filter"
	input.SetValue(opts.Filter)

	title := opts.Title
	if title == "" {
		title = "vlist"
	}

	return &Model{
		keyMap:       DefaultKeyMap(),
		filterKeyMap: DefaultFilterKeyMap(),
		help:         h,
		input:        input,
		title:        title,
		records:      records,
		list:         l,
		watcher:      opts.Watcher,
	}
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.list.Init()}
	if m.watcher != nil {
		cmds = append(cmds, source.WaitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(0, msg.Width-4))
		return m, m.resize()
	case source.ReloadMsg:
		return m, m.reload(msg)
	case tea.KeyPressMsg:
		if m.filtering {
			return m, m.handleFilterKey(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, m.updateList(msg)
}

func (m *Model) updateList(msg tea.Msg) tea.Cmd {
	u, cmd := m.list.Update(msg)
	m.list = u.(list.List[source.Record])
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	_, height := m.list.GetSize()
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit
	case key.Matches(msg, m.keyMap.Down):
		return m.list.ScrollBy(1)
	case key.Matches(msg, m.keyMap.Up):
		return m.list.ScrollBy(-1)
	case key.Matches(msg, m.keyMap.PageDown):
		return m.list.ScrollBy(height)
	case key.Matches(msg, m.keyMap.PageUp):
		return m.list.ScrollBy(-height)
	case key.Matches(msg, m.keyMap.HalfPageDown):
		return m.list.ScrollBy(max(1, height/2))
	case key.Matches(msg, m.keyMap.HalfPageUp):
		return m.list.ScrollBy(-max(1, height/2))
	case key.Matches(msg, m.keyMap.Home):
		return util.CmdHandler(list.ScrollMsg{ID: m.list.ID(), Top: 0})
	case key.Matches(msg, m.keyMap.End):
		return util.CmdHandler(list.ScrollMsg{ID: m.list.ID(), Top: m.list.MaxScrollTop()})
	case key.Matches(msg, m.keyMap.Filter):
		m.filtering = true
		return tea.Batch(m.input.Focus(), m.resize())
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.resize()
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.filterKeyMap.Apply):
		m.filtering = false
		m.input.Blur()
		return m.resize()
	case key.Matches(msg, m.filterKeyMap.Clear):
		m.filtering = false
		m.input.Blur()
		m.input.SetValue("")
		return tea.Batch(m.applyFilter(), m.resize())
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return cmd
	}
	return tea.Batch(cmd, m.applyFilter())
}

func (m *Model) applyFilter() tea.Cmd {
	return m.list.SetItems(source.Filter(m.records, m.input.Value()))
}

func (m *Model) reload(msg source.ReloadMsg) tea.Cmd {
	var cmd tea.Cmd
	if msg.Err != nil {
		m.err = msg.Err
	} else {
		slog.Info("Reloaded data source", "path", msg.Path, "from", len(m.records), "to", len(msg.Records))
		m.err = nil
		m.records = msg.Records
		cmd = m.applyFilter()
	}
	if m.watcher == nil {
		return cmd
	}
	return tea.Batch(cmd, source.WaitForReload(m.watcher))
}

// resize gives the list whatever the status line and help leave over.
func (m *Model) resize() tea.Cmd {
	if m.width == 0 && m.height == 0 {
		return nil
	}
	chrome := 1 + lipgloss.Height(m.helpView())
	return m.list.SetSize(m.width, max(1, m.height-chrome))
}

func (m *Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		m.statusView(),
		m.helpView(),
	)
}

func (m *Model) helpView() string {
	if m.filtering {
		return m.help.View(m.filterKeyMap)
	}
	return m.help.View(m.keyMap)
}

func (m *Model) statusView() string {
	t := styles.CurrentTheme()

	var left string
	switch {
	case m.filtering:
		left = t.S().Prompt.Render("/") + m.input.View()
	case m.input.Value() != "":
		left = t.S().StatusKey.Render(m.title) + t.S().StatusBar.Render("/"+m.input.Value())
	default:
		left = t.S().StatusKey.Render(m.title)
	}

	var right string
	if m.err != nil {
		right = fmt.Sprintf("reload failed: %v", m.err)
	} else {
		start, end := m.list.Window()
		right = fmt.Sprintf("window %d–%d of %d · top %d · %s",
			start, end, m.list.Len(), m.list.ScrollTop(), m.list.Phase())
	}

	width := m.width
	if width <= 0 {
		return left + " " + t.S().StatusBar.Render(right)
	}
	gap := width - lipgloss.Width(left)
	right = ansi.Truncate(right, max(0, gap-2), "…")
	return left + t.S().StatusBar.Width(max(0, gap)).AlignHorizontal(lipgloss.Right).Render(right)
}

// List exposes the list for inspection.
func (m *Model) List() list.List[source.Record] {
	return m.list
}

func (m *Model) Filtering() bool {
	return m.filtering
}
