package app

import (
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.PasteMsg:
		if m.screen == ScreenConsole || m.screen == ScreenSearch {
			for _, r := range msg.Content {
				m.ctx.Dispatch(keys.Rune(r))
			}
		}
		return m, nil

	case frameTickMsg:
		now := time.Time(msg)
		var delta time.Duration
		if !m.lastTick.IsZero() {
			delta = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.Advance(delta)
		return m, m.tick()

	case ItemsReloadedMsg:
		if msg.Err != nil {
			m.log.Warn("reload failed", "path", m.dataPath, "error", msg.Err)
			m.footer.SetFlash("Reload failed: "+msg.Err.Error(), ui.FlashError)
		} else {
			m.log.Info("work items reloaded", "path", m.dataPath)
			m.refreshItems()
			m.footer.SetFlash("Work items reloaded", ui.FlashSuccess)
		}
		return m, m.waitForReload()
	}
	return m, nil
}

// resize recomputes the frame for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	size := m.ctx.UpdateTerminalSize(width, height)
	m.header.SetWidth(size.Width)
	m.footer.SetWidth(size.Width)
	m.grid.Resize(size.Width, size.Height)
	m.resizeRoots(size)
}

// Advance delivers a frame to every screen so background work, such as a
// running console command, keeps progressing off screen. The frame ticker
// calls it; headless drivers call it directly.
func (m *Model) Advance(delta time.Duration) {
	for _, root := range m.roots {
		ui.UpdateTree(root, delta)
	}
	m.footer.ClearExpiredFlash()
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.NextScreen):
		m.setScreen((m.screen + 1) % numScreens)
		return nil
	case key.Matches(msg, m.keys.PrevScreen):
		m.setScreen((m.screen + numScreens - 1) % numScreens)
		return nil
	}
	for _, j := range m.keys.jumps() {
		if key.Matches(msg, j.binding) {
			m.setScreen(j.screen)
			return nil
		}
	}

	ev := keys.FromTea(msg)
	if !m.ctx.Dispatch(ev) {
		switch {
		case key.Matches(msg, m.keys.NextFocus):
			m.ctx.Focus().Next(m.root())
		case key.Matches(msg, m.keys.PrevFocus):
			m.ctx.Focus().Prev(m.root())
		}
	}

	if m.screen == ScreenItems {
		if item, ok := m.miller.SelectedItem(); ok {
			m.setCurrent(item)
		}
	}
	return nil
}
