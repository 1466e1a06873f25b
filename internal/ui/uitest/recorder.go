// Package uitest provides helpers for testing components and renderers.
package uitest

import (
	"strings"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
)

// DrawnString is one DrawString call.
type DrawnString struct {
	Text  string
	Pos   ui.Point
	Style ui.Style
}

// DrawnRect is one DrawRect call.
type DrawnRect struct {
	Pos    ui.Point
	Size   ui.Dimension
	Style  ui.Style
	Filled bool
}

// Recorder is a Surface that records every call instead of drawing.
type Recorder struct {
	Width, Height int

	Strings []DrawnString
	Rects   []DrawnRect
	Cleared []ui.Rect
	Cursor  *ui.Point
}

// NewRecorder returns a recorder reporting the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) DrawRect(pos ui.Point, size ui.Dimension, style ui.Style, filled bool) {
	r.Rects = append(r.Rects, DrawnRect{Pos: pos, Size: size, Style: style, Filled: filled})
}

func (r *Recorder) DrawString(text string, pos ui.Point, style ui.Style) {
	r.Strings = append(r.Strings, DrawnString{Text: text, Pos: pos, Style: style})
}

func (r *Recorder) MoveCursor(pos ui.Point) {
	r.Cursor = &pos
}

func (r *Recorder) ClearArea(pos ui.Point, size ui.Dimension) {
	r.Cleared = append(r.Cleared, ui.Rect{Pos: pos, Size: size})
}

func (r *Recorder) Size() ui.Dimension {
	return ui.Dim(r.Width, r.Height)
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Strings = nil
	r.Rects = nil
	r.Cleared = nil
	r.Cursor = nil
}

// Find returns the first drawn string containing substr.
func (r *Recorder) Find(substr string) (DrawnString, bool) {
	for _, s := range r.Strings {
		if strings.Contains(s.Text, substr) {
			return s, true
		}
	}
	return DrawnString{}, false
}

// Contains reports whether any drawn string contains substr.
func (r *Recorder) Contains(substr string) bool {
	_, ok := r.Find(substr)
	return ok
}

// Text joins every drawn string with newlines, in call order.
func (r *Recorder) Text() string {
	parts := make([]string, len(r.Strings))
	for i, s := range r.Strings {
		parts[i] = s.Text
	}
	return strings.Join(parts, "\n")
}

// Press sends each event to c and returns how many were handled.
func Press(c ui.Component, events ...keys.Event) int {
	n := 0
	for _, ev := range events {
		if c.HandleKey(ev) {
			n++
		}
	}
	return n
}

// Type sends s to c one rune at a time.
func Type(c ui.Component, s string) {
	for _, r := range s {
		c.HandleKey(keys.Rune(r))
	}
}
