package layout

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
}
