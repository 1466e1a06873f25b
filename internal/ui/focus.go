package ui

import (
	"log/slog"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
)

// FocusListener is notified when the focus holder changes. prev or next may
// be nil.
type FocusListener interface {
	FocusChanged(prev, next Component)
}

// FocusManager tracks the single focused component of a tree and routes
// keys to it.
type FocusManager struct {
	current   Component
	listeners []FocusListener
	log       *slog.Logger
}

// NewFocusManager creates a focus manager that logs through log.
func NewFocusManager(log *slog.Logger) *FocusManager {
	if log == nil {
		log = slog.Default()
	}
	return &FocusManager{log: log}
}

// AddListener registers l. Listeners are called in registration order.
func (f *FocusManager) AddListener(l FocusListener) {
	f.listeners = append(f.listeners, l)
}

// Focused returns the current focus holder, or nil.
func (f *FocusManager) Focused() Component {
	return f.current
}

// CanFocus reports whether c may take focus.
func CanFocus(c Component) bool {
	if c == nil || !c.Focusable() || !c.Enabled() || !c.Visible() {
		return false
	}
	for p := c.Parent(); p != nil; p = p.Parent() {
		if !p.Visible() {
			return false
		}
	}
	return true
}

// Focus moves focus to c, clearing it from the previous holder.
func (f *FocusManager) Focus(c Component) error {
	if !CanFocus(c) {
		return errors.E(errors.Op("ui.Focus"), errors.KindInvalid, "component cannot take focus")
	}
	if c == f.current {
		return nil
	}
	f.set(c)
	return nil
}

// Blur clears focus entirely.
func (f *FocusManager) Blur() {
	if f.current != nil {
		f.set(nil)
	}
}

func (f *FocusManager) set(next Component) {
	prev := f.current
	if prev != nil {
		prev.SetFocused(false)
	}
	f.current = next
	if next != nil {
		next.SetFocused(true)
	}

	f.log.Debug("focus changed", "from", componentID(prev), "to", componentID(next))
	for _, l := range f.listeners {
		l.FocusChanged(prev, next)
	}
}

func componentID(c Component) string {
	if c == nil {
		return ""
	}
	return c.ID()
}

// FocusableLeaves returns the components of root that can take focus, in
// composition order. A focusable component is a leaf for focus purposes:
// composites route keys inside themselves.
func FocusableLeaves(root Component) []Component {
	var out []Component
	var walk func(c Component)
	walk = func(c Component) {
		if !c.Visible() {
			return
		}
		if c.Focusable() {
			if c.Enabled() {
				out = append(out, c)
			}
			return
		}
		if p, ok := c.(interface{ Children() []Component }); ok {
			for _, child := range p.Children() {
				walk(child)
			}
		}
	}
	walk(root)
	return out
}

// Next focuses the focusable leaf after the current one, wrapping around.
// It returns the new holder, or nil when root has nothing focusable.
func (f *FocusManager) Next(root Component) Component {
	return f.step(root, 1)
}

// Prev focuses the focusable leaf before the current one, wrapping around.
func (f *FocusManager) Prev(root Component) Component {
	return f.step(root, -1)
}

func (f *FocusManager) step(root Component, dir int) Component {
	leaves := FocusableLeaves(root)
	if len(leaves) == 0 {
		return nil
	}
	i := -1
	for j, c := range leaves {
		if c == f.current {
			i = j
			break
		}
	}
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(leaves) - 1
	default:
		i = (i + dir + len(leaves)) % len(leaves)
	}
	f.set(leaves[i])
	return leaves[i]
}

// Dispatch offers ev to the focused component only. There is no bubbling:
// an unhandled key is dropped.
func (f *FocusManager) Dispatch(ev keys.Event) bool {
	c := f.current
	if c == nil || !c.Enabled() || !c.Visible() {
		return false
	}
	return c.HandleKey(ev)
}
