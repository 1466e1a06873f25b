package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/loom/internal/workitem"
)

// startWatching reloads the work items whenever the data file changes.
// Reload outcomes are delivered through m.reloads.
func (m *Model) startWatching() {
	if m.stopWatch != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.stopWatch = cancel
	go func() {
		err := workitem.Watch(ctx, m.items, m.dataPath, func(err error) {
			select {
			case m.reloads <- err:
			case <-ctx.Done():
			}
		})
		if err != nil {
			m.log.Error("watching work items failed", "path", m.dataPath, "error", err)
		}
	}()
}

// waitForReload returns a command that blocks until the next reload.
func (m *Model) waitForReload() tea.Cmd {
	reloads := m.reloads
	return func() tea.Msg {
		return ItemsReloadedMsg{Err: <-reloads}
	}
}
