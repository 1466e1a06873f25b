package ui

import "github.com/zhubert/loom/internal/keys"

// leaf is a minimal component for exercising containers and focus.
type leaf struct {
	Base
	focusable bool
	received  []keys.Event
}

func newLeaf(id string, w, h int) *leaf {
	l := &leaf{Base: NewBase(KindLabel, id)}
	l.SetSize(Dim(w, h))
	return l
}

func newFocusable(id string) *leaf {
	l := newLeaf(id, 1, 1)
	l.focusable = true
	return l
}

func (l *leaf) Focusable() bool { return l.focusable }

func (l *leaf) HandleKey(ev keys.Event) bool {
	l.received = append(l.received, ev)
	return true
}

func withConstraints(l *leaf, c Constraints) *leaf {
	l.constraints = c
	return l
}
