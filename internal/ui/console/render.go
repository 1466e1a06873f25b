package console

import (
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/loom/internal/ui"
)

// RegisterRenderers installs the console renderer.
func RegisterRenderers(reg *ui.Registry) {
	reg.Register(ui.KindConsole, ui.RendererFunc(Render))
}

type styledText struct {
	text  string
	style ui.Style
}

// Render draws the scrollback, the live input line with the cursor, the
// completion popup and the processing indicator.
func Render(comp ui.Component, s ui.Surface, th *ui.Theme) {
	c, ok := comp.(*Console)
	if !ok {
		return
	}
	bounds := c.Bounds()
	ui.DrawBox(s, bounds, th.ResolveFor(c), "Shell Console")
	inner := bounds.Size.Inset(1)
	if inner.Empty() {
		return
	}

	part := func(name string) ui.Style { return th.Part(ui.KindConsole, name) }
	output, prompt := part("output"), part("prompt")

	for row := 0; row < inner.Height; row++ {
		i := c.scroll + row
		if i >= len(c.lines) {
			break
		}
		line := c.lines[i]
		pos := bounds.Pos.Offset(1, 1+row)
		switch line.Kind {
		case LineOutput:
			s.DrawString(ui.Truncate(line.Text, inner.Width), pos, output)
		case LineError:
			s.DrawString(ui.Truncate(line.Text, inner.Width), pos, part("error"))
		case LineCommand:
			drawRuns(s, pos, inner.Width, 0, commandRuns(line.Prompt, line.Text, prompt, part))
		case LinePrompt:
			input := string(c.input)
			caretCol := runewidth.StringWidth(line.Prompt) + runewidth.StringWidth(string(c.input[:c.caret]))
			skip := max(0, caretCol-(inner.Width-1))
			drawRuns(s, pos, inner.Width, skip, commandRuns(line.Prompt, input, prompt, part))
			if c.Receiving() && !c.processing && !c.showCompletion {
				s.MoveCursor(pos.Offset(caretCol-skip, 0))
			}
		}
	}

	if c.showCompletion {
		renderCompletions(c, s, th, bounds)
	}
	if c.processing {
		label := " " + c.SpinnerFrame() + " running "
		if w := ui.StringWidth(label); w+2 < bounds.Size.Width {
			s.DrawString(label, bounds.Pos.Offset(bounds.Size.Width-w-2, 0), part("spinner"))
		}
	}
}

func commandRuns(promptText, command string, prompt ui.Style, part func(string) ui.Style) []styledText {
	runs := []styledText{{text: promptText, style: prompt}}
	for _, seg := range Highlight(command) {
		name := seg.Class
		if name == ClassPlain {
			name = "output"
		}
		runs = append(runs, styledText{text: seg.Text, style: part(name)})
	}
	return runs
}

// drawRuns draws styled runs on one row, skipping the first skip cells and
// clipping at width.
func drawRuns(s ui.Surface, pos ui.Point, width, skip int, runs []styledText) {
	col := 0
	for _, run := range runs {
		var buf []rune
		start := -1
		for _, r := range run.text {
			w := runewidth.RuneWidth(r)
			if col >= skip && col+w-skip <= width {
				if start < 0 {
					start = col - skip
				}
				buf = append(buf, r)
			}
			col += w
		}
		if len(buf) > 0 {
			s.DrawString(string(buf), pos.Offset(start, 0), run.style)
		}
		if col-skip >= width {
			return
		}
	}
}

const completionRows = 3

func renderCompletions(c *Console, s ui.Surface, th *ui.Theme, bounds ui.Rect) {
	box := ui.Rect{
		Pos:  bounds.Pos.Offset(2, bounds.Size.Height-6),
		Size: ui.Dim(bounds.Size.Width-4, completionRows+2),
	}
	if box.Size.Width < 4 || box.Pos.Y <= bounds.Pos.Y {
		return
	}
	s.ClearArea(box.Pos, box.Size)
	ui.DrawBox(s, box, th.ResolveFor(c), "Completions")

	first := max(0, c.completionIdx-completionRows+1)
	item := th.Part(ui.KindConsole, "output")
	selected := th.Part(ui.KindConsole, string(ui.StateSelected))
	for row := 0; row < completionRows; row++ {
		i := first + row
		if i >= len(c.completions) {
			break
		}
		st := item
		if i == c.completionIdx {
			st = selected
		}
		s.DrawString(ui.Fit(c.completions[i], box.Size.Width-2), box.Pos.Offset(1, 1+row), st)
	}
}
