package ui

import (
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
)

// Kind is the widget type tag used for renderer dispatch and theme keys.
type Kind string

// Built-in component kinds
const (
	KindContainer    Kind = "container"
	KindLabel        Kind = "label"
	KindButton       Kind = "button"
	KindTextBox      Kind = "textbox"
	KindList         Kind = "list"
	KindProgress     Kind = "progress"
	KindHistory      Kind = "history"
	KindWorkflow     Kind = "workflowstate"
	KindGraph        Kind = "graph"
	KindMiller       Kind = "miller"
	KindDetail       Kind = "detail"
	KindAutoComplete Kind = "autocomplete"
	KindConsole      Kind = "console"
)

// State qualifies a kind when resolving styles.
type State string

const (
	StateNormal    State = ""
	StateFocused   State = "focused"
	StateDisabled  State = "disabled"
	StateSelected  State = "selected"
	StateActive    State = "active"
	StateCurrent   State = "current"
	StateAvailable State = "available"
)

// StateOf returns the interaction state used to style c. A component that
// receives keys forwarded from a focused composite counts as focused.
func StateOf(c Component) State {
	switch {
	case !c.Enabled():
		return StateDisabled
	case c.Focused():
		return StateFocused
	}
	if a, ok := c.(interface{ Active() bool }); ok && a.Active() {
		return StateFocused
	}
	return StateNormal
}

// Component is implemented by every node in the UI tree. Implementations
// embed Base, which supplies the bookkeeping and keeps the parent link
// private to this package.
type Component interface {
	ID() string
	Kind() Kind

	Position() Point
	SetPosition(Point)
	Size() Dimension
	SetSize(Dimension)
	Style() *Style
	SetStyle(*Style)

	Parent() *Container
	setParent(*Container)

	// preferred is the size last requested through SetSize outside a
	// layout pass; layouts read it and restore it after assigning bounds.
	preferred() Dimension
	keepPreferred(Dimension)

	Visible() bool
	SetVisible(bool)
	Enabled() bool
	SetEnabled(bool)
	Focused() bool
	SetFocused(bool)
	Focusable() bool

	// HandleKey offers a key to the component and reports whether it was
	// consumed. Unhandled keys are not retried elsewhere.
	HandleKey(keys.Event) bool
	// Update is the per-frame hook. Static widgets ignore it.
	Update(delta time.Duration)

	Constraints() Constraints
	SetConstraints(Constraints) error

	// Renderer returns a per-instance renderer override, or nil to use the
	// renderer registered for Kind.
	Renderer() Renderer
}

// Base implements the bookkeeping half of Component.
type Base struct {
	id          string
	kind        Kind
	pos         Point
	size        Dimension
	pref        Dimension
	style       *Style
	parent      *Container
	visible     bool
	enabled     bool
	focused     bool
	active      bool
	constraints Constraints
	renderer    Renderer
}

// NewBase returns a visible, enabled Base. An empty id is replaced by a
// generated one.
func NewBase(kind Kind, id string) Base {
	if id == "" {
		id = string(kind) + "-" + uuid.NewString()[:8]
	}
	return Base{id: id, kind: kind, visible: true, enabled: true}
}

func (b *Base) ID() string { return b.id }
func (b *Base) Kind() Kind { return b.kind }
func (b *Base) Position() Point { return b.pos }
func (b *Base) SetPosition(p Point) { b.pos = p }
func (b *Base) Size() Dimension { return b.size }
func (b *Base) SetSize(d Dimension) { b.size, b.pref = d, d }
func (b *Base) Style() *Style { return b.style }
func (b *Base) SetStyle(s *Style) { b.style = s }
func (b *Base) Parent() *Container { return b.parent }
func (b *Base) setParent(p *Container) { b.parent = p }
func (b *Base) preferred() Dimension { return b.pref }
func (b *Base) keepPreferred(d Dimension) { b.pref = d }

// Preferred returns the size the component asks its layout for. Layouts
// assign Size but never change Preferred.
func (b *Base) Preferred() Dimension { return b.pref }
func (b *Base) Visible() bool { return b.visible }
func (b *Base) Enabled() bool { return b.enabled }
func (b *Base) SetEnabled(e bool) { b.enabled = e }
func (b *Base) Focused() bool { return b.focused }
func (b *Base) SetFocused(f bool) { b.focused = f }
func (b *Base) Focusable() bool { return false }
func (b *Base) HandleKey(keys.Event) bool { return false }
func (b *Base) Update(time.Duration) {}
func (b *Base) Constraints() Constraints { return b.constraints }
func (b *Base) Renderer() Renderer { return b.renderer }
func (b *Base) SetRenderer(r Renderer) { b.renderer = r }
func (b *Base) Active() bool { return b.active }
func (b *Base) SetActive(a bool) { b.active = a }

// Receiving reports whether the component should act on keys: it is enabled
// and either focused or driven by a focused composite.
func (b *Base) Receiving() bool {
	return b.enabled && (b.focused || b.active)
}

// SetVisible shows or hides the component. Hidden children take no part in
// layout, so the parent is re-laid out on change.
func (b *Base) SetVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	if b.parent != nil {
		b.parent.Relayout()
	}
}

// SetConstraints replaces the layout constraints. When the component is
// already attached, the owning layout must accept the new variant.
func (b *Base) SetConstraints(c Constraints) error {
	if b.parent != nil && b.parent.layout != nil {
		if err := b.parent.layout.Accepts(c); err != nil {
			return err
		}
	}
	b.constraints = c
	if b.parent != nil {
		b.parent.Relayout()
	}
	return nil
}

// Bounds returns the area occupied by the component.
func (b *Base) Bounds() Rect {
	return Rect{Pos: b.pos, Size: b.size}
}

// Inner returns the drawable area inside a one-cell border.
func (b *Base) Inner() Rect {
	return Rect{Pos: b.pos.Offset(1, 1), Size: b.size.Inset(1)}
}

// Root walks parent links up to the top of the tree.
func Root(c Component) Component {
	var cur Component = c
	for p := cur.Parent(); p != nil; p = p.Parent() {
		cur = p
	}
	return cur
}

func checkIndex(op errors.Op, i, n int) error {
	if i < 0 || i >= n {
		return errors.OutOfRange(op, i, n)
	}
	return nil
}
