package ui

import "charm.land/lipgloss/v2"

// Color is a hex color such as "#7C3AED". The empty string means unset.
type Color string

// BorderStyle selects the glyph set used for rectangle outlines.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderThick
)

// BorderGlyphs holds the characters that make up a rectangle outline.
type BorderGlyphs struct {
	Horizontal, Vertical string

	TopLeft, TopRight, BottomLeft, BottomRight string
}

var borderGlyphs = map[BorderStyle]BorderGlyphs{
	BorderSingle:  {"─", "│", "┌", "┐", "└", "┘"},
	BorderDouble:  {"═", "║", "╔", "╗", "╚", "╝"},
	BorderRounded: {"─", "│", "╭", "╮", "╰", "╯"},
	BorderThick:   {"━", "┃", "┏", "┓", "┗", "┛"},
}

// Glyphs returns the outline characters. BorderNone falls back to single
// lines so DrawRect always has something to draw with.
func (b BorderStyle) Glyphs() BorderGlyphs {
	if g, ok := borderGlyphs[b]; ok {
		return g
	}
	return borderGlyphs[BorderSingle]
}

// Style is the visual description of a component or a piece of one.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	Underline  bool
	Reverse    bool
	Padding    int
	Border     BorderStyle
}

// Fallback is the built-in style used when nothing else matches.
var Fallback = Style{
	Foreground: "#F9FAFB",
	Border:     BorderSingle,
}

// Merge overlays the set fields of over onto s.
func (s Style) Merge(over Style) Style {
	if over.Foreground != "" {
		s.Foreground = over.Foreground
	}
	if over.Background != "" {
		s.Background = over.Background
	}
	s.Bold = s.Bold || over.Bold
	s.Italic = s.Italic || over.Italic
	s.Underline = s.Underline || over.Underline
	s.Reverse = s.Reverse || over.Reverse
	if over.Padding > 0 {
		s.Padding = over.Padding
	}
	if over.Border != BorderNone {
		s.Border = over.Border
	}
	return s
}

// Inset is the number of cells a layout reserves on each side of a
// container using this style.
func (s Style) Inset() int {
	n := s.Padding
	if s.Border != BorderNone {
		n++
	}
	return n
}

// Lipgloss converts the style for rendering text on a terminal.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle().
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Reverse(s.Reverse)
	if s.Foreground != "" {
		ls = ls.Foreground(lipgloss.Color(string(s.Foreground)))
	}
	if s.Background != "" {
		ls = ls.Background(lipgloss.Color(string(s.Background)))
	}
	return ls
}
