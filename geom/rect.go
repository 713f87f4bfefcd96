// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/rect.go
// Summary: Integer coordinates, sizes, rectangles and borders used by the widget tree.

package geom

import "fmt"

// Coord is a position in pixel or point space.
type Coord struct {
	X, Y int
}

// Add returns c offset by o.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

// Sub returns c minus o.
func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }

// Size is a width/height pair.
type Size struct {
	W, H int
}

// IsEmpty reports whether the size covers no pixels.
func (s Size) IsEmpty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis-aligned rectangle. Zero or negative W/H denotes an empty rect.
type Rect struct {
	X, Y, W, H int
}

// NewRect builds a rect from its components.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAt builds a rect from a position and a size.
func RectAt(pos Coord, sz Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: sz.W, H: sz.H}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }
func (r Rect) Pos() Coord  { return Coord{X: r.X, Y: r.Y} }
func (r Rect) Size() Size  { return Size{W: r.W, H: r.H} }

// IsEmpty reports whether r covers no pixels.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Area returns the number of pixels covered, 0 for empty rects.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.X && c.X < r.X+r.W && c.Y >= r.Y && c.Y < r.Y+r.H
}

// ContainsRect reports whether o lies completely inside r. An empty o is
// contained by anything.
func (r Rect) ContainsRect(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	if r.IsEmpty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Intersect returns the overlap of r and o. Disjoint rects yield the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the bounding rect of r and o. Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		if o.IsEmpty() {
			return Rect{}
		}
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Offset returns r moved by c.
func (r Rect) Offset(c Coord) Rect { return r.Translate(c.X, c.Y) }

// Shrink returns r with the border removed from each edge.
func (r Rect) Shrink(b Border) Rect {
	out := Rect{X: r.X + b.Left, Y: r.Y + b.Top, W: r.W - b.Width(), H: r.H - b.Height()}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Grow returns r with the border added around each edge.
func (r Rect) Grow(b Border) Rect {
	return Rect{X: r.X - b.Left, Y: r.Y - b.Top, W: r.W + b.Width(), H: r.H + b.Height()}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Border is padding or a frame thickness per edge.
type Border struct {
	Top, Right, Bottom, Left int
}

// UniformBorder returns a border with the same thickness on every edge.
func UniformBorder(n int) Border {
	return Border{Top: n, Right: n, Bottom: n, Left: n}
}

func (b Border) Width() int  { return b.Left + b.Right }
func (b Border) Height() int { return b.Top + b.Bottom }

// Size returns the total space the border occupies.
func (b Border) Size() Size { return Size{W: b.Width(), H: b.Height()} }

// IsEmpty reports whether all edges are zero.
func (b Border) IsEmpty() bool { return b == Border{} }
