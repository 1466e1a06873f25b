package ui

import (
	"log/slog"
	"sync"
	"time"

	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/logger"
)

// Context carries the shared state a component tree is drawn and driven
// with: the active theme, the renderer registry, focus and terminal size.
// It is created once by the application and passed to the widgets that need
// it.
type Context struct {
	theme    *Theme
	registry *Registry
	focus    *FocusManager
	log      *slog.Logger

	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	ContentHeight int

	missing map[Kind]bool
	mu      sync.Mutex
}

// Option configures a Context.
type Option func(*Context)

// WithTheme sets the initial theme.
func WithTheme(th *Theme) Option {
	return func(c *Context) { c.theme = th }
}

// WithRegistry sets the renderer registry.
func WithRegistry(r *Registry) Option {
	return func(c *Context) { c.registry = r }
}

// WithLogger sets the logger used for layout, focus and paint messages.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext returns a Context with the default theme and an empty registry
// unless options say otherwise.
func NewContext(opts ...Option) *Context {
	c := &Context{missing: make(map[Kind]bool)}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.WithComponent("ui")
	}
	if c.theme == nil {
		c.theme = DefaultTheme()
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	c.focus = NewFocusManager(c.log)
	c.UpdateTerminalSize(DefaultWidth, DefaultHeight)
	c.log.Debug("Context initialized", "theme", c.theme.Name)
	return c
}

func (c *Context) Theme() *Theme { return c.theme }
func (c *Context) Registry() *Registry { return c.registry }
func (c *Context) Focus() *FocusManager { return c.focus }
func (c *Context) Logger() *slog.Logger { return c.log }

// SetTheme swaps the active theme. A nil theme restores the default.
func (c *Context) SetTheme(th *Theme) {
	if th == nil {
		th = DefaultTheme()
	}
	c.theme = th
	c.log.Debug("theme changed", "theme", th.Name)
}

// UpdateTerminalSize recalculates the frame dimensions when the terminal is
// resized and returns the area available to screen content.
func (c *Context) UpdateTerminalSize(width, height int) Dimension {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	c.TerminalWidth = width
	c.TerminalHeight = height
	c.ContentHeight = height - HeaderHeight - FooterHeight

	c.log.Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", c.ContentHeight,
	)
	return Dim(width, c.ContentHeight)
}

// ContentSize returns the area between header and footer.
func (c *Context) ContentSize() Dimension {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Dim(c.TerminalWidth, c.ContentHeight)
}

// Paint draws root and its visible descendants depth-first, parents before
// children. A component's own renderer takes precedence over the one
// registered for its kind; components with neither are skipped.
func (c *Context) Paint(root Component, s Surface) {
	if root == nil || !root.Visible() {
		return
	}

	r := root.Renderer()
	if r == nil {
		var ok bool
		if r, ok = c.registry.Lookup(root.Kind()); !ok && !c.missing[root.Kind()] {
			c.missing[root.Kind()] = true
			c.log.Warn("no renderer registered", "kind", root.Kind(), "component", debugString(root))
		}
	}
	if r != nil {
		r.Render(root, s, c.theme)
	}

	if p, ok := root.(interface{ Children() []Component }); ok {
		for _, child := range p.Children() {
			c.Paint(child, s)
		}
	}
}

// Dispatch routes a key to the focused component.
func (c *Context) Dispatch(ev keys.Event) bool {
	return c.focus.Dispatch(ev)
}

// UpdateTree delivers a frame tick to root. Containers forward it to their
// visible children.
func UpdateTree(root Component, delta time.Duration) {
	if root != nil && root.Visible() {
		root.Update(delta)
	}
}
