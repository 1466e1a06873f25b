package widgets

import (
	"strings"

	"github.com/zhubert/loom/internal/ui"
)

// RegisterRenderers installs the renderers for every widget in this package.
func RegisterRenderers(reg *ui.Registry) {
	reg.Register(ui.KindLabel, ui.RendererFunc(renderLabel))
	reg.Register(ui.KindButton, ui.RendererFunc(renderButton))
	reg.Register(ui.KindTextBox, ui.RendererFunc(RenderTextBox))
	reg.Register(ui.KindList, ui.RendererFunc(RenderList))
	reg.Register(ui.KindHistory, ui.RendererFunc(RenderList))
	reg.Register(ui.KindProgress, ui.RendererFunc(renderProgress))
	reg.Register(ui.KindWorkflow, ui.RendererFunc(renderWorkflow))
}

func renderLabel(c ui.Component, s ui.Surface, th *ui.Theme) {
	l, ok := c.(*Label)
	if !ok {
		return
	}
	st := th.ResolveFor(l)
	if l.IsTitle() {
		st = th.Part(ui.KindLabel, "title")
	}
	size := l.Size()
	for i, line := range l.Lines() {
		if i >= size.Height {
			break
		}
		s.DrawString(ui.Align(line, size.Width, l.Alignment()), l.Position().Offset(0, i), st)
	}
}

func renderButton(c ui.Component, s ui.Surface, th *ui.Theme) {
	b, ok := c.(*Button)
	if !ok {
		return
	}
	st := th.ResolveFor(b)
	size := b.Size()
	if size.Height < 3 {
		s.DrawString(ui.Align("[ "+b.Text()+" ]", size.Width, ui.AlignCenter), b.Position(), st)
		return
	}
	ui.DrawBox(s, b.Bounds(), st, "")
	s.DrawString(ui.Align(b.Text(), size.Width-2, ui.AlignCenter), b.Position().Offset(1, size.Height/2), st)
}

// RenderTextBox draws a text box: a border, the visible window of text or
// the placeholder, and the cursor when the box has focus.
func RenderTextBox(c ui.Component, s ui.Surface, th *ui.Theme) {
	tb := textBoxOf(c)
	if tb == nil {
		return
	}
	st := th.ResolveFor(c)
	size := tb.Size()
	origin := tb.Position()
	if size.Height >= 3 {
		s.DrawRect(origin, size, st, false)
		origin = origin.Offset(1, size.Height/2)
	} else {
		origin = origin.Offset(1, 0)
	}

	visible := tb.VisibleWidth()
	if tb.Text() == "" && tb.Placeholder() != "" && !tb.Receiving() {
		s.DrawString(ui.Fit(tb.Placeholder(), visible), origin, th.Part(ui.KindTextBox, "placeholder"))
		return
	}
	s.DrawString(ui.Fit(tb.VisibleText(), visible), origin, th.Part(ui.KindTextBox, "text"))
	if tb.Receiving() && visible > 0 {
		s.MoveCursor(origin.Offset(min(tb.CaretColumn(), visible-1), 0))
	}
}

func textBoxOf(c ui.Component) *TextBox {
	switch v := c.(type) {
	case *TextBox:
		return v
	case interface{ TextBox() *TextBox }:
		return v.TextBox()
	}
	return nil
}

// rowSource is the display side of any List[T].
type rowSource interface {
	ui.Component
	DisplayRows() (first int, rows []string)
	SelectedIndex() int
	Header() string
}

// RenderList draws a bordered list window with the selected row highlighted.
func RenderList(c ui.Component, s ui.Surface, th *ui.Theme) {
	l, ok := c.(rowSource)
	if !ok {
		return
	}
	bounds := ui.Bounds(l)
	ui.DrawBox(s, bounds, th.ResolveFor(l), l.Header())

	inner := bounds.Size.Inset(1)
	first, rows := l.DisplayRows()
	item := th.Part(ui.KindList, "item")
	selected := th.Part(ui.KindList, string(ui.StateSelected))
	for i, row := range rows {
		if i >= inner.Height {
			break
		}
		st := item
		if first+i == l.SelectedIndex() {
			st = selected
		}
		s.DrawString(ui.Fit(row, inner.Width), bounds.Pos.Offset(1, 1+i), st)
	}
}

func renderProgress(c ui.Component, s ui.Surface, th *ui.Theme) {
	p, ok := c.(*ProgressMeter)
	if !ok {
		return
	}
	bounds := p.Bounds()
	ui.DrawBox(s, bounds, th.ResolveFor(p), p.Title())

	inner := bounds.Size.Inset(1)
	if inner.Empty() {
		return
	}
	caption := " " + p.Caption()
	barWidth := max(0, inner.Width-ui.StringWidth(caption))
	filled := p.Filled(barWidth)

	row := bounds.Pos.Offset(1, 1+(inner.Height-1)/2)
	bar := th.Part(ui.KindProgress, "bar")
	bar.Foreground = p.BarColor(th.Palette)
	s.DrawString(strings.Repeat("█", filled), row, bar)
	s.DrawString(strings.Repeat("░", barWidth-filled), row.Offset(filled, 0), th.Part(ui.KindProgress, "track"))
	s.DrawString(caption, row.Offset(barWidth, 0), th.Part(ui.KindProgress, "title"))
}

func renderWorkflow(c ui.Component, s ui.Surface, th *ui.Theme) {
	v, ok := c.(*WorkflowStateView)
	if !ok {
		return
	}
	bounds := v.Bounds()
	ui.DrawBox(s, bounds, th.ResolveFor(v), "Workflow")

	status := th.Part(ui.KindWorkflow, "status")
	s.DrawString(ui.Align(v.Status(), bounds.Size.Width-2, ui.AlignCenter), bounds.Pos.Offset(1, 1), status)

	for _, state := range v.Table().States {
		at, ok := v.StatePosition(state)
		if !ok {
			continue
		}
		st := th.Resolve(ui.KindWorkflow, v.StateOf(state), nil)
		box := ui.Rect{Pos: bounds.Pos.Add(at), Size: ui.Dim(StateBoxWidth, StateBoxHeight)}
		s.DrawRect(box.Pos, box.Size, st, true)
		s.DrawString(ui.Align(v.StateLabel(state), StateBoxWidth-2, ui.AlignCenter), box.Pos.Offset(1, 1), st)
	}

	legendY := bounds.Size.Height - 2
	if legendY <= 1 {
		return
	}
	at := bounds.Pos.Offset(2, legendY)
	for _, entry := range []struct {
		state ui.State
		text  string
	}{
		{ui.StateCurrent, "■ Current State"},
		{ui.StateAvailable, "■ Available Transitions"},
		{ui.StateNormal, "■ Other States"},
	} {
		s.DrawString(entry.text, at, th.Resolve(ui.KindWorkflow, entry.state, nil))
		at = at.Offset(ui.StringWidth(entry.text)+2, 0)
	}
}
