// Package miller implements Miller columns: a row of lists where selecting
// an item in one column shows its children in the next, ending in a detail
// pane.
package miller

import (
	"fmt"
	"log/slog"

	"github.com/zhubert/loom/internal/errors"
	"github.com/zhubert/loom/internal/keys"
	"github.com/zhubert/loom/internal/logger"
	"github.com/zhubert/loom/internal/ui"
	"github.com/zhubert/loom/internal/ui/widgets"
)

// column is a list or the detail pane.
type column interface {
	ui.Component
	SetActive(bool)
}

var columnHeaders = []string{"Items", "Related", "Children", "Details"}

// Header returns the title of column i.
func Header(i int) string {
	if i >= 0 && i < len(columnHeaders) {
		return columnHeaders[i]
	}
	return fmt.Sprintf("Level %d", i+1)
}

// Columns is a Miller columns container over items of type T. Column 0
// holds the root items; each selection opens the selected item's children
// to its right until MaxColumns is reached or an item has no children, at
// which point a DetailPane describes the selected item.
type Columns[T any] struct {
	ui.Container
	maxColumns int
	children   func(T) []T
	detail     func(T) string
	format     func(T) string
	log        *slog.Logger

	columns []column
	lists   []*widgets.List[T] // nil for the detail pane
	active  int
}

// New creates an empty Miller view with up to maxColumns columns. A value
// below 2 uses ui.DefaultMaxColumns.
func New[T any](id string, maxColumns int) *Columns[T] {
	if maxColumns < 2 {
		maxColumns = ui.DefaultMaxColumns
	}
	c := &Columns[T]{
		Container:  ui.NewContainerKind(ui.KindMiller, id, ui.NewBoxLayout(ui.Horizontal, 0)),
		maxColumns: maxColumns,
		log:        logger.WithComponent("miller"),
	}
	return c
}

// MaxColumns returns the column limit
func (c *Columns[T]) MaxColumns() int {
	return c.maxColumns
}

// SetChildrenFunc sets how children are found. nil means no item has any.
func (c *Columns[T]) SetChildrenFunc(f func(T) []T) {
	c.children = f
}

// SetDetailFunc sets the detail pane text. nil uses fmt.Sprint.
func (c *Columns[T]) SetDetailFunc(f func(T) string) {
	c.detail = f
}

// SetFormatter sets how items are shown in the lists.
func (c *Columns[T]) SetFormatter(f func(T) string) {
	c.format = f
	for _, l := range c.lists {
		if l != nil {
			l.SetFormatter(f)
		}
	}
}

func (c *Columns[T]) Focusable() bool { return true }

// SetFocused marks the active column as driven by this container.
func (c *Columns[T]) SetFocused(f bool) {
	c.Container.SetFocused(f)
	c.syncActive()
}

// SetRootItems replaces every column with a single list of items. The first
// item is selected, which opens the following columns.
func (c *Columns[T]) SetRootItems(items []T) {
	c.truncate(0)
	c.active = 0
	c.addList(items)
	c.syncActive()
	c.log.Debug("root items set", "id", c.ID(), "count", len(items), "columns", len(c.columns))
}

// Columns returns the column components, lists then an optional detail pane.
func (c *Columns[T]) Columns() []ui.Component {
	out := make([]ui.Component, len(c.columns))
	for i, col := range c.columns {
		out[i] = col
	}
	return out
}

// List returns the list in column i, or nil for the detail pane or an
// index out of range.
func (c *Columns[T]) List(i int) *widgets.List[T] {
	if i < 0 || i >= len(c.lists) {
		return nil
	}
	return c.lists[i]
}

// Detail returns the detail pane when one is open.
func (c *Columns[T]) Detail() (*DetailPane, bool) {
	if n := len(c.columns); n > 0 {
		if d, ok := c.columns[n-1].(*DetailPane); ok {
			return d, true
		}
	}
	return nil, false
}

// ActiveColumn is the index of the column receiving keys.
func (c *Columns[T]) ActiveColumn() int {
	return c.active
}

// SetActiveColumn moves key routing to column i.
func (c *Columns[T]) SetActiveColumn(i int) error {
	if i < 0 || i >= len(c.columns) {
		return errors.OutOfRange(errors.Op("miller.SetActiveColumn"), i, len(c.columns))
	}
	c.active = i
	c.syncActive()
	return nil
}

// SelectedItems returns the selection of every list column, left to right.
func (c *Columns[T]) SelectedItems() []T {
	var out []T
	for _, l := range c.lists {
		if l == nil {
			break
		}
		item, ok := l.SelectedItem()
		if !ok {
			break
		}
		out = append(out, item)
	}
	return out
}

// SelectedRootItem returns the selection in column 0.
func (c *Columns[T]) SelectedRootItem() (T, bool) {
	if len(c.lists) == 0 || c.lists[0] == nil {
		var zero T
		return zero, false
	}
	return c.lists[0].SelectedItem()
}

// SelectedItem returns the deepest selection.
func (c *Columns[T]) SelectedItem() (T, bool) {
	sel := c.SelectedItems()
	if len(sel) == 0 {
		var zero T
		return zero, false
	}
	return sel[len(sel)-1], true
}

// HandleKey moves between columns on Tab and Shift+Tab and forwards other
// keys to the active column. Tab past either end is left unhandled.
func (c *Columns[T]) HandleKey(ev keys.Event) bool {
	if !c.Receiving() || len(c.columns) == 0 {
		return false
	}
	if ev.Is(keys.CodeTab) {
		next := c.active + 1
		if ev.Mod&keys.ModShift != 0 {
			next = c.active - 1
		}
		if next >= 0 && next < len(c.columns) {
			c.active = next
			c.syncActive()
			return true
		}
		return false
	}
	return c.columns[c.active].HandleKey(ev)
}

func (c *Columns[T]) childrenOf(item T) []T {
	if c.children == nil {
		return nil
	}
	return c.children(item)
}

func (c *Columns[T]) detailOf(item T) string {
	if c.detail == nil {
		return fmt.Sprint(item)
	}
	return c.detail(item)
}

// selected reacts to a selection change in column i.
func (c *Columns[T]) selected(i, index int, item T) {
	c.truncate(i + 1)
	if index >= 0 {
		kids := c.childrenOf(item)
		if i < c.maxColumns-2 && len(kids) > 0 {
			c.addList(kids)
		} else {
			c.addDetail(item)
		}
	}
	if c.active >= len(c.columns) {
		c.active = len(c.columns) - 1
	}
	c.syncActive()
}

func (c *Columns[T]) addList(items []T) {
	i := len(c.columns)
	l := widgets.NewList[T](fmt.Sprintf("%s-col-%d", c.ID(), i), 1)
	l.SetHeader(Header(i))
	l.SetFormatter(c.format)
	l.SetItems(items)
	c.attach(l, l)

	l.AddSelectionListener(widgets.SelectionFunc[T](func(_ *widgets.List[T], index int, item T) {
		c.selected(i, index, item)
	}))
	if len(items) > 0 {
		// Selecting the first item opens the next column.
		_ = l.SetSelectedIndex(0)
	}
}

func (c *Columns[T]) addDetail(item T) {
	d := NewDetailPane(c.ID()+"-detail", "Details", c.detailOf(item))
	c.attach(d, nil)
}

func (c *Columns[T]) attach(col column, l *widgets.List[T]) {
	if err := col.SetConstraints(ui.Flex(1)); err != nil {
		c.log.Error("column constraints rejected", "error", err)
		return
	}
	c.columns = append(c.columns, col)
	c.lists = append(c.lists, l)
	if err := c.Container.Add(col); err != nil {
		c.log.Error("adding column", "error", err)
	}
}

// truncate removes every column from index n on.
func (c *Columns[T]) truncate(n int) {
	if n >= len(c.columns) {
		return
	}
	for _, col := range c.columns[n:] {
		col.SetActive(false)
		c.Container.Remove(col)
	}
	c.columns = c.columns[:n]
	c.lists = c.lists[:n]
}

// syncActive marks the active column as receiving keys while the container
// has focus.
func (c *Columns[T]) syncActive() {
	for i, col := range c.columns {
		col.SetActive(c.Focused() && i == c.active)
	}
}
