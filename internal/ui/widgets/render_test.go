package widgets

import (
	"strings"
	"testing"

	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/screen"
	"github.com/zhubert/loom/internal/ui/uitest"
	"github.com/zhubert/loom/internal/workflow"
)

func newTestContext() *ui.Context {
	ctx := ui.NewContext()
	RegisterRenderers(ctx.Registry())
	return ctx
}

func TestRegisterRenderers(t *testing.T) {
	reg := ui.NewRegistry()
	RegisterRenderers(reg)
	for _, kind := range []ui.Kind{
		ui.KindLabel, ui.KindButton, ui.KindTextBox, ui.KindList,
		ui.KindHistory, ui.KindProgress, ui.KindWorkflow,
	} {
		if _, ok := reg.Lookup(kind); !ok {
			t.Errorf("no renderer for %s", kind)
		}
	}
}

func TestRender_ButtonOnGrid(t *testing.T) {
	ctx := newTestContext()
	b := NewButton("ok", "OK")
	g := screen.NewGrid(10, 3)

	ctx.Paint(b, g)

	want := strings.Join([]string{"╭────╮", "│ OK │", "╰────╯"}, "\n")
	if got := g.String(); got != want {
		t.Errorf("grid =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_Label(t *testing.T) {
	ctx := newTestContext()
	l := NewLabel("l", "hi")
	l.SetSize(ui.Dim(6, 1))
	l.SetAlignment(ui.AlignEnd)
	l.SetPosition(ui.Pt(2, 1))

	rec := uitest.NewRecorder(20, 5)
	ctx.Paint(l, rec)

	s, ok := rec.Find("hi")
	if !ok {
		t.Fatal("label text not drawn")
	}
	if s.Text != "    hi" || s.Pos != ui.Pt(2, 1) {
		t.Errorf("drew %q at %v", s.Text, s.Pos)
	}
}

func TestRender_ListHighlightsSelection(t *testing.T) {
	ctx := newTestContext()
	th := ctx.Theme()

	l := NewList[string]("files", 3)
	l.SetHeader("Files")
	l.SetItems([]string{"a.go", "b.go", "c.go", "d.go"})
	if err := l.SetSelectedIndex(3); err != nil {
		t.Fatal(err)
	}

	rec := uitest.NewRecorder(40, 10)
	ctx.Paint(l, rec)

	if !rec.Contains("Files") {
		t.Error("header not drawn")
	}
	if rec.Contains("a.go") {
		t.Error("row above the window was drawn")
	}
	row, ok := rec.Find("d.go")
	if !ok {
		t.Fatal("selected row not drawn")
	}
	if row.Pos != ui.Pt(1, 3) {
		t.Errorf("selected row at %v, want (1,3)", row.Pos)
	}
	if row.Style != th.Part(ui.KindList, string(ui.StateSelected)) {
		t.Errorf("selected row style = %+v", row.Style)
	}
	other, _ := rec.Find("b.go")
	if other.Style != th.Part(ui.KindList, "item") {
		t.Errorf("plain row style = %+v", other.Style)
	}
}

func TestRender_TextBox(t *testing.T) {
	ctx := newTestContext()
	tb := NewTextBox("name", 12)
	tb.SetPlaceholder("your name")

	rec := uitest.NewRecorder(20, 5)
	ctx.Paint(tb, rec)
	if !rec.Contains("your name") {
		t.Error("placeholder not shown while empty and unfocused")
	}
	if rec.Cursor != nil {
		t.Error("unfocused box placed the cursor")
	}

	tb.SetFocused(true)
	tb.SetText("abc")
	rec.Reset()
	ctx.Paint(tb, rec)
	if rec.Contains("your name") {
		t.Error("placeholder shown over text")
	}
	if rec.Cursor == nil || *rec.Cursor != ui.Pt(4, 1) {
		t.Errorf("cursor = %v, want (4,1)", rec.Cursor)
	}
}

func TestRender_Progress(t *testing.T) {
	ctx := newTestContext()
	p := NewProgressMeter("p", "Upload", 4)
	p.SetValue(2)

	rec := uitest.NewRecorder(40, 5)
	ctx.Paint(p, rec)

	if !rec.Contains("Upload") {
		t.Error("title not drawn")
	}
	if !rec.Contains(" 50%") {
		t.Error("caption not drawn")
	}
	bar, ok := rec.Find("█")
	if !ok {
		t.Fatal("bar not drawn")
	}
	if bar.Style.Foreground != p.BarColor(ctx.Theme().Palette) {
		t.Errorf("bar colour = %s", bar.Style.Foreground)
	}
}

func TestRender_WorkflowState(t *testing.T) {
	ctx := newTestContext()
	v := NewWorkflowStateView("wf", nil)
	v.SetCurrentState(workflow.Ready)

	rec := uitest.NewRecorder(80, 20)
	ctx.Paint(v, rec)

	for _, text := range []string{"READY", "1: IN PROGRESS", "2: BLOCKED", "Current State", v.Status()} {
		if !rec.Contains(text) {
			t.Errorf("%q not drawn", text)
		}
	}

	current, _ := rec.Find("READY")
	want := ctx.Theme().Resolve(ui.KindWorkflow, ui.StateCurrent, nil)
	if current.Style != want {
		t.Errorf("current state style = %+v, want %+v", current.Style, want)
	}
}
