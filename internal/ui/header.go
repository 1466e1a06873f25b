package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Header is the top bar: the application title, one tab per screen and a
// right-aligned status.
type Header struct {
	width  int
	title  string
	tabs   []string
	active int
	status string
}

// NewHeader creates a header showing title
func NewHeader(title string) *Header {
	return &Header{title: title}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTabs replaces the tab names
func (h *Header) SetTabs(tabs []string) {
	h.tabs = tabs
}

// SetActive marks tab i as current
func (h *Header) SetActive(i int) {
	h.active = i
}

// SetStatus sets the right-aligned text
func (h *Header) SetStatus(s string) {
	h.status = s
}

// Text returns the header content without styling, and the rune range of
// the active tab.
func (h *Header) Text() (string, int, int) {
	var b strings.Builder
	b.WriteString(" " + h.title + " ")
	start, end := -1, -1
	for i, tab := range h.tabs {
		b.WriteString(" ")
		label := " " + tab + " "
		if i == h.active {
			start = len([]rune(b.String()))
			end = start + len([]rune(label))
		}
		b.WriteString(label)
	}
	left := b.String()
	right := ""
	if h.status != "" {
		right = h.status + " "
	}
	pad := h.width - StringWidth(left) - StringWidth(right)
	if pad < 1 {
		return Truncate(left, h.width), start, end
	}
	return left + strings.Repeat(" ", pad) + right, start, end
}

// View renders the header with a gradient from the palette's primary color
// into its background.
func (h *Header) View(p Palette) string {
	content, start, end := h.Text()
	if content == "" {
		return ""
	}

	from := parseColor(p.Primary, colorful.Color{R: 0.49, G: 0.23, B: 0.93})
	to := parseColor(p.Bg, colorful.Color{})
	text := lipgloss.Color(string(p.Text))
	inverse := lipgloss.Color(string(p.TextInverse))
	titleEnd := len([]rune(h.title)) + 2

	runes := []rune(content)
	var out strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(len(runes))
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())).
			Foreground(text).
			Bold(i < titleEnd)
		if i >= start && i < end {
			style = style.Background(lipgloss.Color(string(p.GetBgSelected()))).
				Foreground(inverse).
				Bold(true)
		}
		out.WriteString(style.Render(string(r)))
	}
	return out.String()
}

func parseColor(c Color, fallback colorful.Color) colorful.Color {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return fallback
	}
	return parsed
}
