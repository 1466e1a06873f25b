package ui

import (
	"fmt"

	"github.com/zhubert/loom/internal/errors"
)

// ConstraintKind tags the Constraints variants.
type ConstraintKind int

const (
	ConstraintNone ConstraintKind = iota
	ConstraintBox
	ConstraintAbsolute
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintBox:
		return "box"
	case ConstraintAbsolute:
		return "absolute"
	default:
		return "none"
	}
}

// Constraints is the per-child data a layout interprets. The set of
// variants is closed; each Layout declares which ones it accepts and the
// container checks that when a child is attached.
type Constraints interface {
	ConstraintKind() ConstraintKind
	sealed()
}

// Alignment positions a child along the cross axis.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// BoxConstraints drive BoxLayout. Weight 0 keeps the child's preferred
// extent along the main axis.
type BoxConstraints struct {
	Weight       int
	FillOpposite bool
	Align        Alignment
}

func (BoxConstraints) ConstraintKind() ConstraintKind { return ConstraintBox }
func (BoxConstraints) sealed() {}

// Flex is shorthand for weighted constraints that fill the cross axis.
func Flex(weight int) BoxConstraints {
	return BoxConstraints{Weight: weight, FillOpposite: true}
}

// Fixed is shorthand for a preferred-size child with the given alignment.
func Fixed(align Alignment) BoxConstraints {
	return BoxConstraints{Align: align}
}

// AbsoluteConstraints place a child at an offset from the container origin.
type AbsoluteConstraints struct {
	At Point
}

func (AbsoluteConstraints) ConstraintKind() ConstraintKind { return ConstraintAbsolute }
func (AbsoluteConstraints) sealed() {}

// NoConstraints is the explicit empty variant.
type NoConstraints struct{}

func (NoConstraints) ConstraintKind() ConstraintKind { return ConstraintNone }
func (NoConstraints) sealed() {}

func kindOf(c Constraints) ConstraintKind {
	if c == nil {
		return ConstraintNone
	}
	return c.ConstraintKind()
}

// Layout sizes and positions the children of a container.
type Layout interface {
	// LayoutContainer arranges the children. It must be idempotent and must
	// not fail: an unsized container is left untouched.
	LayoutContainer(c *Container)
	// Accepts reports whether a child's constraints can be interpreted.
	Accepts(Constraints) error
	Name() string
}

// AbsoluteLayout keeps each child at a fixed offset from the container
// origin and leaves sizes alone.
type AbsoluteLayout struct{}

func (AbsoluteLayout) Name() string { return "AbsoluteLayout" }

func (l AbsoluteLayout) Accepts(c Constraints) error {
	switch kindOf(c) {
	case ConstraintNone, ConstraintAbsolute:
		return nil
	}
	return errors.InvalidConstraint(l.Name(), kindOf(c).String())
}

func (AbsoluteLayout) LayoutContainer(c *Container) {
	if c.Size().Empty() {
		return
	}
	origin := c.Position()
	for _, child := range c.children {
		var at Point
		if ac, ok := child.Constraints().(AbsoluteConstraints); ok {
			at = ac.At
		}
		child.SetPosition(origin.Add(at))
	}
}

// debugString is used in layout log lines.
func debugString(c Component) string {
	return fmt.Sprintf("%s@%s/%s", c.ID(), c.Position(), c.Size())
}
