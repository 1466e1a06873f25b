package widgets

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zhubert/loom/internal/ui"
)

// ProgressMeter shows a value against a maximum as a horizontal bar.
type ProgressMeter struct {
	ui.Base
	value          float64
	max            float64
	title          string
	unit           string
	showPercentage bool
	useColors      bool
}

// NewProgressMeter creates a meter out of total, showing a percentage.
func NewProgressMeter(id, title string, total float64) *ProgressMeter {
	p := &ProgressMeter{
		Base:           ui.NewBase(ui.KindProgress, id),
		max:            total,
		title:          title,
		showPercentage: true,
		useColors:      true,
	}
	p.SetSize(ui.Dim(30, 3))
	return p
}

func (p *ProgressMeter) Value() float64 { return p.value }
func (p *ProgressMeter) Max() float64 { return p.max }
func (p *ProgressMeter) Title() string { return p.title }
func (p *ProgressMeter) Unit() string { return p.unit }
func (p *ProgressMeter) ShowPercentage() bool { return p.showPercentage }
func (p *ProgressMeter) UseColors() bool { return p.useColors }
func (p *ProgressMeter) SetTitle(title string) { p.title = title }
func (p *ProgressMeter) SetUnit(unit string) { p.unit = unit }
func (p *ProgressMeter) SetShowPercentage(on bool) { p.showPercentage = on }
func (p *ProgressMeter) SetUseColors(on bool) { p.useColors = on }

// SetValue sets the current value. It is not clamped; Percentage is.
func (p *ProgressMeter) SetValue(v float64) {
	p.value = v
}

// SetMax sets the value that counts as complete.
func (p *ProgressMeter) SetMax(total float64) {
	p.max = total
}

// Percentage returns the progress in [0, 100]. A non-positive max counts as
// no progress.
func (p *ProgressMeter) Percentage() float64 {
	if p.max <= 0 || math.IsNaN(p.value) {
		return 0
	}
	return math.Max(0, math.Min(100, p.value/p.max*100))
}

// Caption is the text shown after the bar.
func (p *ProgressMeter) Caption() string {
	if p.showPercentage {
		return fmt.Sprintf("%3.0f%%", p.Percentage())
	}
	if p.unit != "" {
		return fmt.Sprintf("%g/%g %s", p.value, p.max, p.unit)
	}
	return fmt.Sprintf("%g/%g", p.value, p.max)
}

// Filled returns how many of width cells the bar covers.
func (p *ProgressMeter) Filled(width int) int {
	if width <= 0 {
		return 0
	}
	return int(math.Round(p.Percentage() / 100 * float64(width)))
}

// BarColor blends from the palette's error colour at 0% through warning at
// 50% to success at 100%. Without colours the success colour is used.
func (p *ProgressMeter) BarColor(pal ui.Palette) ui.Color {
	if !p.useColors {
		return pal.Success
	}
	low, errLow := colorful.Hex(string(pal.Error))
	mid, errMid := colorful.Hex(string(pal.Warning))
	high, errHigh := colorful.Hex(string(pal.Success))
	if errLow != nil || errMid != nil || errHigh != nil {
		return pal.Success
	}

	t := p.Percentage() / 100
	var c colorful.Color
	if t < 0.5 {
		c = low.BlendLab(mid, t*2)
	} else {
		c = mid.BlendLab(high, (t-0.5)*2)
	}
	return ui.Color(c.Clamped().Hex())
}
