package widgets

import (
	"slices"
	"strings"
	"testing"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/uitest"
	"github.com/zhubert/loom/internal/workflow"
)

func TestLabel_Sizing(t *testing.T) {
	tests := []struct {
		text string
		want ui.Dimension
	}{
		{"hello", ui.Dim(5, 1)},
		{"two\nlines here", ui.Dim(10, 2)},
		{"日本", ui.Dim(4, 1)},
		{"", ui.Dim(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			l := NewLabel("", tt.text)
			if l.Size() != tt.want {
				t.Errorf("Size() = %v, want %v", l.Size(), tt.want)
			}
		})
	}

	l := NewLabel("", "short")
	l.SetSize(ui.Dim(30, 1))
	l.SetText("a much longer label text")
	if l.Size().Width != 30 {
		t.Errorf("sized label changed width to %d", l.Size().Width)
	}
}

func TestButton_Activation(t *testing.T) {
	b := NewButton("ok", "OK")
	if b.Size() != ui.Dim(6, 3) {
		t.Errorf("Size() = %v, want 6x3", b.Size())
	}

	pressed := 0
	b.AddActionListener(ActionFunc(func(*Button) { pressed++ }))

	if b.HandleKey(keys.Of(keys.CodeEnter)) {
		t.Error("unfocused button handled Enter")
	}

	b.SetFocused(true)
	uitest.Press(b, keys.Of(keys.CodeEnter), keys.Of(keys.CodeSpace), keys.Rune('x'))
	if pressed != 2 {
		t.Errorf("pressed %d times, want 2", pressed)
	}

	b.SetEnabled(false)
	if b.HandleKey(keys.Of(keys.CodeEnter)) {
		t.Error("disabled button handled Enter")
	}
}

func TestProgressMeter(t *testing.T) {
	tests := []struct {
		name        string
		value, max  float64
		percent     bool
		unit        string
		wantPercent float64
		wantCaption string
		wantFilled  int
	}{
		{"half", 50, 100, true, "", 50, " 50%", 10},
		{"overflow clamps", 150, 100, true, "", 100, "100%", 20},
		{"negative clamps", -5, 100, true, "", 0, "  0%", 0},
		{"zero max", 3, 0, true, "", 0, "  0%", 0},
		{"absolute caption", 3, 12, false, "files", 25, "3/12 files", 5},
		{"absolute without unit", 1, 4, false, "", 25, "1/4", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressMeter("p", "Build", tt.max)
			p.SetValue(tt.value)
			p.SetShowPercentage(tt.percent)
			p.SetUnit(tt.unit)

			if got := p.Percentage(); got != tt.wantPercent {
				t.Errorf("Percentage() = %v, want %v", got, tt.wantPercent)
			}
			if got := p.Caption(); got != tt.wantCaption {
				t.Errorf("Caption() = %q, want %q", got, tt.wantCaption)
			}
			if got := p.Filled(20); got != tt.wantFilled {
				t.Errorf("Filled(20) = %d, want %d", got, tt.wantFilled)
			}
		})
	}
}

func TestProgressMeter_BarColor(t *testing.T) {
	pal := ui.BuiltinPalettes[ui.DefaultThemeName]
	p := NewProgressMeter("p", "", 100)

	if got := p.BarColor(pal); !strings.EqualFold(string(got), string(pal.Error)) {
		t.Errorf("BarColor at 0%% = %s, want %s", got, pal.Error)
	}
	p.SetValue(100)
	if got := p.BarColor(pal); !strings.EqualFold(string(got), string(pal.Success)) {
		t.Errorf("BarColor at 100%% = %s, want %s", got, pal.Success)
	}

	p.SetValue(0)
	p.SetUseColors(false)
	if got := p.BarColor(pal); got != pal.Success {
		t.Errorf("BarColor without colours = %s, want %s", got, pal.Success)
	}
}

func TestCommandHistory(t *testing.T) {
	h := NewCommandHistory("history", 3, 4)

	for _, cmd := range []string{"ls", "  ", "pwd", " git status ", "make", "go test"} {
		h.AddCommand(cmd)
	}

	want := []string{"pwd", "git status", "make", "go test"}
	if !slices.Equal(h.Commands(), want) {
		t.Errorf("Commands() = %q, want %q", h.Commands(), want)
	}
	if h.TopIndex() != 1 {
		t.Errorf("TopIndex() = %d, want the newest entries in view", h.TopIndex())
	}

	var selected []string
	h.AddCommandSelectedListener(CommandSelectedFunc(func(cmd string) {
		selected = append(selected, cmd)
	}))
	h.SetFocused(true)
	uitest.Press(h, keys.Of(keys.CodeEnd), keys.Of(keys.CodeUp), keys.Of(keys.CodeEnter))
	if !slices.Equal(selected, []string{"make"}) {
		t.Errorf("selected = %q, want [make]", selected)
	}

	h.Clear()
	if len(h.Commands()) != 0 || h.SelectedIndex() != -1 {
		t.Errorf("Clear left %q selected=%d", h.Commands(), h.SelectedIndex())
	}
}

func TestCommandHistory_DefaultLimit(t *testing.T) {
	h := NewCommandHistory("history", 5, 0)
	if h.Limit() != ui.DefaultHistoryLimit {
		t.Errorf("Limit() = %d, want %d", h.Limit(), ui.DefaultHistoryLimit)
	}
}

func TestWorkflowStateView(t *testing.T) {
	v := NewWorkflowStateView("wf", nil)
	v.SetCurrentState(workflow.InProgress)

	wantAvail := []workflow.State{workflow.Review, workflow.InTest, workflow.Blocked}
	if !slices.Equal(v.AvailableTransitions(), wantAvail) {
		t.Fatalf("AvailableTransitions() = %v, want %v", v.AvailableTransitions(), wantAvail)
	}

	tests := []struct {
		state    workflow.State
		wantKey  rune
		wantDraw ui.State
		label    string
	}{
		{workflow.InProgress, 0, ui.StateCurrent, "IN PROGRESS"},
		{workflow.Review, '1', ui.StateAvailable, "1: REVIEW"},
		{workflow.Blocked, '3', ui.StateAvailable, "3: BLOCKED"},
		{workflow.Done, 0, ui.StateNormal, "DONE"},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := v.KeyFor(tt.state); got != tt.wantKey {
				t.Errorf("KeyFor() = %q, want %q", got, tt.wantKey)
			}
			if got := v.StateOf(tt.state); got != tt.wantDraw {
				t.Errorf("StateOf() = %q, want %q", got, tt.wantDraw)
			}
			if got := v.StateLabel(tt.state); got != tt.label {
				t.Errorf("StateLabel() = %q, want %q", got, tt.label)
			}
		})
	}

	var requested []workflow.State
	v.AddTransitionHandler(TransitionFunc(func(target workflow.State) {
		requested = append(requested, target)
	}))
	v.SetFocused(true)

	if v.HandleKey(keys.Rune('7')) {
		t.Error("digit without a transition was handled")
	}
	uitest.Press(v, keys.Rune('2'))
	if !slices.Equal(requested, []workflow.State{workflow.InTest}) {
		t.Errorf("requested = %v, want [IN_TEST]", requested)
	}

	uitest.Press(v, keys.Of(keys.CodeEscape))
	if v.Status() != "Transition cancelled" {
		t.Errorf("Status() = %q after Escape", v.Status())
	}
}

func TestWorkflowStateView_Grid(t *testing.T) {
	v := NewWorkflowStateView("wf", nil)
	table := v.Table()

	seen := make(map[ui.Point]workflow.State)
	for _, s := range table.States {
		at, ok := v.StatePosition(s)
		if !ok {
			t.Fatalf("no position for %s", s)
		}
		if other, dup := seen[at]; dup {
			t.Errorf("%s and %s share position %v", s, other, at)
		}
		seen[at] = s
		if at.X+StateBoxWidth > v.Size().Width || at.Y+StateBoxHeight > v.Size().Height {
			t.Errorf("%s at %v does not fit in %v", s, at, v.Size())
		}
	}

	if _, ok := v.StatePosition("NOT_A_STATE"); ok {
		t.Error("unknown state has a position")
	}
}
