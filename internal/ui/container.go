package ui

import (
	"slices"
	"time"

	"github.com/zhubert/loom/internal/errors"
)

// Container owns an ordered list of children and delegates their
// arrangement to a Layout. A child's Parent is this container exactly when
// the child is in Children.
type Container struct {
	Base
	children []Component
	layout   Layout
}

// NewContainer creates an empty container. A nil layout leaves children
// where they are placed.
func NewContainer(id string, layout Layout) *Container {
	return &Container{Base: NewBase(KindContainer, id), layout: layout}
}

// NewContainerKind creates a container reporting a custom kind, for
// composites that are containers underneath.
func NewContainerKind(kind Kind, id string, layout Layout) Container {
	return Container{Base: NewBase(kind, id), layout: layout}
}

// Layout returns the current layout strategy.
func (c *Container) Layout() Layout {
	return c.layout
}

// SetLayout swaps the layout. Every existing child must be acceptable to the
// new layout, otherwise nothing changes.
func (c *Container) SetLayout(l Layout) error {
	if l != nil {
		for _, child := range c.children {
			if err := l.Accepts(child.Constraints()); err != nil {
				return err
			}
		}
	}
	c.layout = l
	c.Relayout()
	return nil
}

// Add attaches child at the end of the list, detaching it from any previous
// parent first.
func (c *Container) Add(child Component) error {
	if child == nil {
		return errors.E(errors.Op("ui.Container.Add"), errors.KindInvalid, "nil component")
	}
	for p := c; p != nil; p = p.Parent() {
		if Component(p) == child {
			return errors.E(errors.Op("ui.Container.Add"), errors.KindInvalid, "cannot add a container to itself or its descendant")
		}
	}
	if c.layout != nil {
		if err := c.layout.Accepts(child.Constraints()); err != nil {
			return err
		}
	}
	if old := child.Parent(); old != nil {
		old.detach(child)
	}
	c.children = append(c.children, child)
	child.setParent(c)
	c.Relayout()
	return nil
}

// MustAdd is Add for statically built trees where a failure is a bug.
func (c *Container) MustAdd(children ...Component) *Container {
	for _, child := range children {
		if err := c.Add(child); err != nil {
			panic(err)
		}
	}
	return c
}

// Remove detaches child and reports whether it was present.
func (c *Container) Remove(child Component) bool {
	if !c.detach(child) {
		return false
	}
	c.Relayout()
	return true
}

func (c *Container) detach(child Component) bool {
	i := c.IndexOf(child)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	child.setParent(nil)
	return true
}

// RemoveAll detaches every child.
func (c *Container) RemoveAll() {
	for _, child := range c.children {
		child.setParent(nil)
	}
	c.children = nil
	c.Relayout()
}

// Child returns the child at index i.
func (c *Container) Child(i int) (Component, error) {
	if err := checkIndex(errors.Op("ui.Container.Child"), i, len(c.children)); err != nil {
		return nil, err
	}
	return c.children[i], nil
}

// Children returns a copy of the child list in composition order.
func (c *Container) Children() []Component {
	return slices.Clone(c.children)
}

// ChildCount returns the number of children.
func (c *Container) ChildCount() int {
	return len(c.children)
}

// IndexOf returns the position of child, or -1.
func (c *Container) IndexOf(child Component) int {
	return slices.Index(c.children, child)
}

// SetSize resizes the container and re-runs the layout.
func (c *Container) SetSize(d Dimension) {
	c.Base.SetSize(d)
	c.Relayout()
}

// SetPosition moves the container and re-runs the layout.
func (c *Container) SetPosition(p Point) {
	c.Base.SetPosition(p)
	c.Relayout()
}

// Relayout runs the layout if there is one.
func (c *Container) Relayout() {
	if c.layout != nil {
		c.layout.LayoutContainer(c)
	}
}

// Update forwards the frame tick to visible children.
func (c *Container) Update(delta time.Duration) {
	for _, child := range c.children {
		if child.Visible() {
			child.Update(delta)
		}
	}
}
