// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/patches.go
// Summary: Dirty-region algebra over an ordered set of rectangles.
// Usage: Root panels accumulate patches between frames; containers build
// short-lived patch sets while rendering and masking their children.

package geom

// Patches is a region expressed as the union of its rectangles. Stored rects
// may overlap; Sub keeps the region exact by splitting.
//
// Rects must not be mutated while a caller iterates over Rects().
type Patches struct {
	rects []Rect
}

// NewPatches returns an empty set with room for capacity rects.
func NewPatches(capacity int) *Patches {
	return &Patches{rects: make([]Rect, 0, capacity)}
}

// PatchesOf returns a set holding the given rects.
func PatchesOf(rects ...Rect) *Patches {
	p := NewPatches(len(rects))
	for _, r := range rects {
		p.Add(r)
	}
	return p
}

// Len returns the number of stored rects.
func (p *Patches) Len() int { return len(p.rects) }

// IsEmpty reports whether the region covers no pixels.
func (p *Patches) IsEmpty() bool { return len(p.rects) == 0 }

// Rects exposes the stored rects. The slice is owned by p.
func (p *Patches) Rects() []Rect { return p.rects }

// Clear drops every rect but keeps the allocation.
func (p *Patches) Clear() { p.rects = p.rects[:0] }

// Clone returns an independent copy.
func (p *Patches) Clone() *Patches {
	out := &Patches{rects: make([]Rect, len(p.rects), cap(p.rects))}
	copy(out.rects, p.rects)
	return out
}

// Add merges r into the region. Empty rects and rects already covered by a
// single stored rect are dropped; other overlap is tolerated.
func (p *Patches) Add(r Rect) {
	if r.IsEmpty() {
		return
	}
	for _, s := range p.rects {
		if s.ContainsRect(r) {
			return
		}
	}
	p.rects = append(p.rects, r)
}

// Push appends every rect of other.
func (p *Patches) Push(other *Patches) {
	if other == nil {
		return
	}
	for _, r := range other.rects {
		p.Add(r)
	}
}

// PushClipped appends every rect of other intersected with clip.
func (p *Patches) PushClipped(other *Patches, clip Rect) {
	if other == nil || clip.IsEmpty() {
		return
	}
	for _, r := range other.rects {
		p.Add(r.Intersect(clip))
	}
}

// Sub removes the area of r from the region. Each stored rect overlapping r is
// replaced by up to four pieces: the full-width bands above and below the
// overlap, then the parts left and right of it.
func (p *Patches) Sub(r Rect) {
	if r.IsEmpty() || len(p.rects) == 0 {
		return
	}
	var out []Rect
	split := false
	for i, s := range p.rects {
		cut := s.Intersect(r)
		if cut.IsEmpty() {
			if split {
				out = append(out, s)
			}
			continue
		}
		if !split {
			split = true
			out = make([]Rect, i, len(p.rects)+4)
			copy(out, p.rects[:i])
		}
		if cut.Y > s.Y {
			out = append(out, Rect{X: s.X, Y: s.Y, W: s.W, H: cut.Y - s.Y})
		}
		if cut.Bottom() < s.Bottom() {
			out = append(out, Rect{X: s.X, Y: cut.Bottom(), W: s.W, H: s.Bottom() - cut.Bottom()})
		}
		if cut.X > s.X {
			out = append(out, Rect{X: s.X, Y: cut.Y, W: cut.X - s.X, H: cut.H})
		}
		if cut.Right() < s.Right() {
			out = append(out, Rect{X: cut.Right(), Y: cut.Y, W: s.Right() - cut.Right(), H: cut.H})
		}
	}
	if split {
		p.rects = out
	}
}

// SubPatches removes every rect of other from the region.
func (p *Patches) SubPatches(other *Patches) {
	if other == nil {
		return
	}
	for _, r := range other.rects {
		if p.IsEmpty() {
			return
		}
		p.Sub(r)
	}
}

// Union returns the bounding rect of the region, the zero Rect when empty.
func (p *Patches) Union() Rect {
	var u Rect
	for _, r := range p.rects {
		u = u.Union(r)
	}
	return u
}

// Covers reports whether the point lies inside the region.
func (p *Patches) Covers(c Coord) bool {
	for _, r := range p.rects {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Intersects reports whether any part of the region overlaps r.
func (p *Patches) Intersects(r Rect) bool {
	for _, s := range p.rects {
		if s.Intersects(r) {
			return true
		}
	}
	return false
}

// Area returns the exact number of pixels covered by the region, counting
// overlapping pixels once.
func (p *Patches) Area() int {
	disjoint := NewPatches(len(p.rects))
	for _, r := range p.rects {
		piece := PatchesOf(r)
		piece.SubPatches(disjoint)
		disjoint.rects = append(disjoint.rects, piece.rects...)
	}
	total := 0
	for _, r := range disjoint.rects {
		total += r.Area()
	}
	return total
}

// Translate moves every rect by (dx, dy).
func (p *Patches) Translate(dx, dy int) {
	for i := range p.rects {
		p.rects[i] = p.rects[i].Translate(dx, dy)
	}
}
