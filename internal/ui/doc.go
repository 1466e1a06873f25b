// Package ui is the component and layout core of loom.
//
// # Components
//
// Every node in a UI tree implements Component. Leaf widgets embed Base,
// which supplies identity, geometry, visibility, enablement, focus and
// layout constraints. Container owns an ordered list of children and a
// Layout that arranges them:
//
//	root := ui.NewContainer("root", ui.NewBoxLayout(ui.Vertical, 0))
//	root.MustAdd(header, body)
//	root.SetSize(ui.Dim(80, 24)) // lays out header and body
//
// A child's Parent is the container exactly when the child is in that
// container's Children. Adding a child detaches it from its previous parent.
//
// # Layout
//
// BoxLayout lays children out along one axis. Children with Weight 0 keep
// their current extent; weighted children share the remaining space in
// proportion to their weights, with any rounding remainder going to the last
// weighted child. Constraints are a closed set of variants and a container
// rejects children whose constraints its layout cannot interpret.
//
// # Rendering
//
// Drawing is separated from widget state. A Registry maps each Kind to a
// Renderer and Context.Paint walks the visible tree, calling renderers with
// the active Theme and a Surface. Renderers never change widget state. The
// screen subpackage provides the Surface used on a real terminal.
//
// # Themes
//
// A Theme is a cascade keyed by "<kind>.<state>" and "<kind>". Resolution
// tries the kind and state, then the kind, then the component's own style,
// then the theme default, and merges the first match over Fallback.
// Built-in themes are derived from palettes:
//   - dark-purple (default), nord, dracula, gruvbox
//   - tokyo-night, catppuccin, science-fiction, light
//
// # Focus
//
// FocusManager keeps at most one focused component and delivers keys to it
// and nothing else. Composite widgets take focus as a whole and route keys
// to their inner parts, which they mark active rather than focused.
package ui
