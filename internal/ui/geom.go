package ui

import "fmt"

// Point is a cell coordinate on the terminal grid. X grows to the right,
// Y grows downward.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Offset returns p translated by (dx, dy).
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dimension is a width/height pair measured in cells.
type Dimension struct {
	Width, Height int
}

// Dim is shorthand for Dimension{Width: w, Height: h}.
func Dim(w, h int) Dimension {
	return Dimension{Width: w, Height: h}
}

// Empty reports whether the dimension has no drawable area.
func (d Dimension) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Area returns the number of cells covered.
func (d Dimension) Area() int {
	if d.Empty() {
		return 0
	}
	return d.Width * d.Height
}

// Inset shrinks the dimension by n cells on every side, never going negative.
func (d Dimension) Inset(n int) Dimension {
	return Dimension{Width: max(0, d.Width-2*n), Height: max(0, d.Height-2*n)}
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Rect is an area anchored at a position.
type Rect struct {
	Pos  Point
	Size Dimension
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.Width &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Height
}

// Bounds returns the area occupied by a component.
func Bounds(c Component) Rect {
	return Rect{Pos: c.Position(), Size: c.Size()}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsZero reports whether the dimension is unset.
func (d Dimension) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}
