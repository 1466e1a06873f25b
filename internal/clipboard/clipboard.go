// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/loom/internal/logger"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. It is safe to call more than once; only
// the first call touches the platform clipboard.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.Warn("Clipboard: Failed to initialize: %v", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.Debug("Clipboard: Initialized successfully")
	})
	return initErr
}

// ReadText reads text from the clipboard. An empty clipboard is not an
// error.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	data := clipboard.Read(clipboard.FmtText)
	logger.Debug("Clipboard: Read %d bytes of text", len(data))
	return string(data), nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.Debug("Clipboard: Wrote %d bytes of text", len(text))
	return nil
}

// System pastes from the system clipboard.
type System struct{}

func (System) Paste() (string, error) { return ReadText() }

// Memory is an in-process clipboard, used when no display is available and
// in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Copy replaces the contents.
func (m *Memory) Copy(text string) {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
}
