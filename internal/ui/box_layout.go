package ui

import "github.com/zhubert/loom/internal/errors"

// Orientation selects the main axis of a BoxLayout.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// BoxLayout distributes children along one axis. Fixed children (weight 0)
// keep their preferred extent; weighted children share what remains in
// proportion to their weights.
type BoxLayout struct {
	Orientation Orientation
	Gap         int
}

// NewBoxLayout returns a BoxLayout with the given orientation and gap.
func NewBoxLayout(o Orientation, gap int) *BoxLayout {
	return &BoxLayout{Orientation: o, Gap: max(0, gap)}
}

func (l *BoxLayout) Name() string { return "BoxLayout" }

// Accepts allows box constraints or none (treated as fixed, start-aligned).
func (l *BoxLayout) Accepts(c Constraints) error {
	switch v := c.(type) {
	case nil, NoConstraints:
		return nil
	case BoxConstraints:
		if v.Weight < 0 {
			return errors.E(errors.Op("ui.BoxLayout.Accepts"), errors.KindInvalidConstraint, "weight must not be negative")
		}
		return nil
	}
	return errors.InvalidConstraint(l.Name(), kindOf(c).String())
}

func boxConstraintsOf(c Component) BoxConstraints {
	if bc, ok := c.Constraints().(BoxConstraints); ok {
		return bc
	}
	return BoxConstraints{}
}

// main and cross project a dimension onto the layout axes.
func (l *BoxLayout) main(d Dimension) int {
	if l.Orientation == Horizontal {
		return d.Width
	}
	return d.Height
}

func (l *BoxLayout) cross(d Dimension) int {
	if l.Orientation == Horizontal {
		return d.Height
	}
	return d.Width
}

func (l *BoxLayout) place(origin Point, mainOff, crossOff, mainExt, crossExt int) (Point, Dimension) {
	if l.Orientation == Horizontal {
		return origin.Offset(mainOff, crossOff), Dim(mainExt, crossExt)
	}
	return origin.Offset(crossOff, mainOff), Dim(crossExt, mainExt)
}

// Extents returns the main-axis extent each visible child receives for a
// given inner main extent. Any remainder left by integer division goes to
// the last weighted child so the extents and gaps add up exactly.
func (l *BoxLayout) Extents(children []Component, inner int) []int {
	n := len(children)
	extents := make([]int, n)
	if n == 0 {
		return extents
	}

	fixed, totalWeight, lastWeighted := 0, 0, -1
	for i, c := range children {
		if w := boxConstraintsOf(c).Weight; w > 0 {
			totalWeight += w
			lastWeighted = i
		} else {
			fixed += l.main(c.preferred())
		}
	}

	avail := max(0, inner-fixed-l.Gap*(n-1))
	assigned := 0
	for i, c := range children {
		w := boxConstraintsOf(c).Weight
		if w > 0 && totalWeight > 0 {
			extents[i] = avail * w / totalWeight
			assigned += extents[i]
			continue
		}
		extents[i] = max(0, l.main(c.preferred()))
	}
	if lastWeighted >= 0 {
		extents[lastWeighted] += avail - assigned
	}
	return extents
}

// LayoutContainer positions the visible children inside the container's
// border and padding.
func (l *BoxLayout) LayoutContainer(c *Container) {
	size := c.Size()
	if size.Empty() {
		return
	}

	inset := 0
	if st := c.Style(); st != nil {
		inset = st.Inset()
	}
	origin := c.Position().Offset(inset, inset)
	inner := size.Inset(inset)

	var visible []Component
	for _, child := range c.children {
		if child.Visible() {
			visible = append(visible, child)
		}
	}
	if len(visible) == 0 {
		return
	}

	extents := l.Extents(visible, l.main(inner))
	crossExtent := l.cross(inner)

	offset := 0
	for i, child := range visible {
		bc := boxConstraintsOf(child)
		pref := child.preferred()

		crossExt, crossOff := crossExtent, 0
		if !bc.FillOpposite {
			crossExt = min(l.cross(pref), crossExtent)
			switch bc.Align {
			case AlignCenter:
				crossOff = (crossExtent - crossExt) / 2
			case AlignEnd:
				crossOff = crossExtent - crossExt
			}
		}

		pos, dim := l.place(origin, offset, crossOff, extents[i], crossExt)
		child.SetPosition(pos)
		child.SetSize(dim)
		child.keepPreferred(pref)

		offset += extents[i] + l.Gap
	}
}
