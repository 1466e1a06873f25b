// Package screen provides the terminal Surface components are painted on.
package screen

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zhubert/loom/internal/ui"
)

// Grid is a Surface backed by an ultraviolet cell buffer. Everything drawn
// outside the grid is clipped.
type Grid struct {
	width, height int
	buf           uv.ScreenBuffer
	cursor        ui.Point
	cursorVisible bool
}

// NewGrid returns a blank grid of the given size.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Resize replaces the buffer with a blank one of the new size.
func (g *Grid) Resize(width, height int) {
	g.width, g.height = max(0, width), max(0, height)
	g.buf = uv.NewScreenBuffer(g.width, g.height)
	g.cursorVisible = false
}

// Clear blanks every cell and hides the cursor.
func (g *Grid) Clear() {
	g.ClearArea(ui.Pt(0, 0), ui.Dim(g.width, g.height))
	g.cursorVisible = false
}

func (g *Grid) Size() ui.Dimension {
	return ui.Dim(g.width, g.height)
}

// Cursor returns the last cursor position and whether one was set since the
// last Clear.
func (g *Grid) Cursor() (ui.Point, bool) {
	return g.cursor, g.cursorVisible
}

func (g *Grid) MoveCursor(pos ui.Point) {
	g.cursor = pos
	g.cursorVisible = pos.X >= 0 && pos.Y >= 0 && pos.X < g.width && pos.Y < g.height
}

func (g *Grid) ClearArea(pos ui.Point, size ui.Dimension) {
	for y := max(0, pos.Y); y < min(g.height, pos.Y+size.Height); y++ {
		for x := max(0, pos.X); x < min(g.width, pos.X+size.Width); x++ {
			cell := uv.EmptyCell
			g.buf.SetCell(x, y, &cell)
		}
	}
}

// DrawString draws a single line of text. Newlines are drawn as spaces.
func (g *Grid) DrawString(text string, pos ui.Point, style ui.Style) {
	if pos.Y < 0 || pos.Y >= g.height || text == "" {
		return
	}
	text = strings.NewReplacer("\r", "", "\n", " ", "\t", " ").Replace(text)

	x := pos.X
	if x < 0 {
		text = dropCells(text, -x)
		x = 0
	}
	text = takeCells(text, g.width-x)
	w := uniseg.StringWidth(text)
	if w == 0 {
		return
	}

	styled := style.Lipgloss().Render(text)
	uv.NewStyledString(styled).Draw(g.buf, uv.Rect(x, pos.Y, w, 1))
}

// DrawRect outlines a rectangle with the style's border glyphs. A filled
// rectangle also paints its interior with the style's background.
func (g *Grid) DrawRect(pos ui.Point, size ui.Dimension, style ui.Style, filled bool) {
	if size.Empty() {
		return
	}
	glyphs := style.Border.Glyphs()
	w, h := size.Width, size.Height

	if w == 1 || h == 1 {
		line := strings.Repeat(glyphs.Horizontal, w)
		if w == 1 {
			line = glyphs.Vertical
		}
		for y := range h {
			g.DrawString(line, pos.Offset(0, y), style)
		}
		return
	}

	g.DrawString(glyphs.TopLeft+strings.Repeat(glyphs.Horizontal, w-2)+glyphs.TopRight, pos, style)
	for y := 1; y < h-1; y++ {
		g.DrawString(glyphs.Vertical, pos.Offset(0, y), style)
		if filled {
			fill := ui.Style{Background: style.Background}
			g.DrawString(strings.Repeat(" ", w-2), pos.Offset(1, y), fill)
		}
		g.DrawString(glyphs.Vertical, pos.Offset(w-1, y), style)
	}
	g.DrawString(glyphs.BottomLeft+strings.Repeat(glyphs.Horizontal, w-2)+glyphs.BottomRight, pos.Offset(0, h-1), style)
}

// Render returns the frame with ANSI styling.
func (g *Grid) Render() string {
	return g.buf.Render()
}

// Line returns row y as plain text, padded to the grid width.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < g.width; {
		cell := g.buf.CellAt(x, y)
		if cell == nil || cell.Content == "" {
			sb.WriteByte(' ')
			x++
			continue
		}
		sb.WriteString(ansi.Strip(cell.Content))
		x += max(1, cell.Width)
	}
	return sb.String()
}

// String returns the frame as plain text with trailing spaces removed from
// each line.
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = strings.TrimRight(g.Line(y), " ")
	}
	return strings.Join(lines, "\n")
}

// dropCells removes the first n cells of s. A wide grapheme cut in half is
// replaced by a space.
func dropCells(s string, n int) string {
	gr := uniseg.NewGraphemes(s)
	dropped, end := 0, 0
	for dropped < n && gr.Next() {
		dropped += gr.Width()
		_, end = gr.Positions()
	}
	rest := s[end:]
	if dropped > n {
		rest = strings.Repeat(" ", dropped-n) + rest
	}
	return rest
}

// takeCells keeps at most n cells of s without splitting a grapheme.
func takeCells(s string, n int) string {
	if n <= 0 {
		return ""
	}
	gr := uniseg.NewGraphemes(s)
	used := 0
	for gr.Next() {
		w := gr.Width()
		if used+w > n {
			start, _ := gr.Positions()
			return s[:start]
		}
		used += w
	}
	return s
}
