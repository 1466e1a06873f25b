// Package widgets implements the basic loom components: labels, buttons,
// text boxes, lists and the small display widgets built from them.
package widgets

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zhubert/loom/internal/ui"
)

// Label displays one or more lines of static text.
type Label struct {
	ui.Base
	text  string
	align ui.Alignment
	title bool
}

// NewLabel creates a label sized to its text.
func NewLabel(id, text string) *Label {
	l := &Label{Base: ui.NewBase(ui.KindLabel, id)}
	l.SetText(text)
	return l
}

// NewTitle creates a label drawn with the title style.
func NewTitle(id, text string) *Label {
	l := NewLabel(id, text)
	l.title = true
	return l
}

// Text returns the label text
func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text. An unsized label grows to fit it.
func (l *Label) SetText(text string) {
	l.text = text
	if l.Size().IsZero() {
		l.SetSize(l.PreferredSize())
	}
}

// Alignment returns the horizontal alignment
func (l *Label) Alignment() ui.Alignment {
	return l.align
}

// SetAlignment sets the horizontal alignment
func (l *Label) SetAlignment(a ui.Alignment) {
	l.align = a
}

// IsTitle reports whether the label uses the title style
func (l *Label) IsTitle() bool {
	return l.title
}

// Lines returns the text split into lines.
func (l *Label) Lines() []string {
	return strings.Split(l.text, "\n")
}

// PreferredSize is the widest line by the number of lines.
func (l *Label) PreferredSize() ui.Dimension {
	lines := l.Lines()
	w := 0
	for _, line := range lines {
		w = max(w, uniseg.StringWidth(line))
	}
	return ui.Dim(w, len(lines))
}
