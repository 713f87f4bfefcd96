// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/surface.go
// Summary: In-memory pixel surface.

package gfx

import "github.com/framegrace/texelkit/geom"

// MemSurface is a row-major pixel buffer.
type MemSurface struct {
	w, h int
	pix  []Color
}

// NewMemSurface allocates a transparent surface.
func NewMemSurface(w, h int) *MemSurface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &MemSurface{w: w, h: h, pix: make([]Color, w*h)}
}

func (s *MemSurface) Size() geom.Size { return geom.Size{W: s.w, H: s.h} }

// Pixel returns the pixel at (x, y), Transparent outside the surface.
func (s *MemSurface) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return Transparent
	}
	return s.pix[y*s.w+x]
}

// SetPixel writes a pixel; writes outside the surface are ignored.
func (s *MemSurface) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.pix[y*s.w+x] = c
}

func (s *MemSurface) IsOpaque() bool {
	for _, p := range s.pix {
		if p.A != 255 {
			return false
		}
	}
	return true
}

// FillRect sets every pixel of r, clipped to the surface.
func (s *MemSurface) FillRect(r geom.Rect, c Color) {
	r = r.Intersect(geom.NewRect(0, 0, s.w, s.h))
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.pix[y*s.w : (y+1)*s.w]
		for x := r.X; x < r.Right(); x++ {
			row[x] = c
		}
	}
}
