package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/loom/internal/clipboard"
	"github.com/zhubert/loom/internal/config"
	"github.com/zhubert/loom/internal/keys"
)

// testModel creates a model over the sample items with an in-memory
// clipboard.
func testModel(opts ...Option) *Model {
	cfg := config.Default()
	base := []Option{WithPaster(&clipboard.Memory{})}
	return New(cfg, "test", append(base, opts...)...)
}

// testModelWithSize creates a model that has received a window size.
func testModelWithSize(width, height int, opts ...Option) *Model {
	return setSize(testModel(opts...), width, height)
}

// sendKey simulates a key press through Update.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keys.Press(key))
	return result.(*Model)
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}
