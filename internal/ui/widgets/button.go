package widgets

import (
	"github.com/rivo/uniseg"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// ActionListener is notified when a button is pressed.
type ActionListener interface {
	ActionPerformed(b *Button)
}

// ActionFunc adapts a function to ActionListener.
type ActionFunc func(b *Button)

func (f ActionFunc) ActionPerformed(b *Button) { f(b) }

// Button is a focusable label that fires its listeners on Enter or Space.
type Button struct {
	ui.Base
	text      string
	listeners []ActionListener
}

// NewButton creates a bordered button sized to its text.
func NewButton(id, text string) *Button {
	b := &Button{Base: ui.NewBase(ui.KindButton, id), text: text}
	b.SetSize(ui.Dim(uniseg.StringWidth(text)+4, 3))
	return b
}

// Text returns the button caption
func (b *Button) Text() string {
	return b.text
}

// SetText sets the button caption
func (b *Button) SetText(text string) {
	b.text = text
}

// AddActionListener registers l. Listeners fire in registration order.
func (b *Button) AddActionListener(l ActionListener) {
	b.listeners = append(b.listeners, l)
}

// Press fires the action listeners as if the button had been activated.
func (b *Button) Press() {
	for _, l := range b.listeners {
		l.ActionPerformed(b)
	}
}

func (b *Button) Focusable() bool { return true }

// HandleKey presses the button on Enter or Space.
func (b *Button) HandleKey(ev keys.Event) bool {
	if !b.Receiving() {
		return false
	}
	if ev.Is(keys.CodeEnter) || ev.Is(keys.CodeSpace) {
		b.Press()
		return true
	}
	return false
}
