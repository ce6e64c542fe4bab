package styles

import (
	"image/color"
	"sync"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	ScrollbarThumb = "┃"
	ScrollbarTrack = "│"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	FgBase    color.Color
	FgMuted   color.Color
	FgSubtle  color.Color
	Separator color.Color

	styles     *Styles
	stylesOnce sync.Once
}

type Styles struct {
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	StatusBar lipgloss.Style
	StatusKey lipgloss.Style

	// Filter prompt
	Prompt lipgloss.Style

	Help help.Styles
}

var currentTheme = NewCharmtoneTheme()

func CurrentTheme() *Theme {
	return currentTheme
}

func NewCharmtoneTheme() *Theme {
	return &Theme{
		Name:      "charmtone",
		IsDark:    true,
		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		BgBase:    charmtone.Pepper,
		BgSubtle:  charmtone.Charcoal,
		FgBase:    charmtone.Ash,
		FgMuted:   charmtone.Squid,
		FgSubtle:  charmtone.Oyster,
		Separator: charmtone.Charcoal,
	}
}

// S returns the styles built from the theme colors.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:           base,
		Muted:          base.Foreground(t.FgMuted),
		Subtle:         base.Foreground(t.FgSubtle),
		ScrollbarThumb: base.Foreground(t.Primary),
		ScrollbarTrack: base.Foreground(t.Separator),
		StatusBar:      base.Foreground(t.FgMuted).Background(t.BgSubtle).Padding(0, 1),
		StatusKey:      base.Foreground(t.Secondary).Background(t.BgSubtle),
		Prompt:         base.Foreground(t.Secondary),
		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.Separator),
			Ellipsis:       base.Foreground(t.Separator),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.Separator),
		},
	}
}
