package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/loom/internal/ui"
)

// View renders the header, the visible screen and the footer.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.compose())
	if pos, ok := m.grid.Cursor(); ok {
		v.Cursor = tea.NewCursor(pos.X, pos.Y+ui.HeaderHeight)
	}
	return v
}

// RenderToString paints the visible screen and returns the full frame. It
// does not wait for a window size.
func (m *Model) RenderToString() string {
	return m.compose()
}

func (m *Model) compose() string {
	m.grid.Clear()
	m.ctx.Paint(m.root(), m.grid)

	palette := m.ctx.Theme().Palette
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(palette),
		m.grid.Render(),
		m.footer.View(m, palette),
	)
}
