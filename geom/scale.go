// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/scale.go
// Summary: Fixed-point conversions between point space and pixel space.

package geom

// Scale factors are fixed point with ScaleBinals fractional bits. ScaleBase
// maps one point to one pixel.
const (
	ScaleBinals = 12
	ScaleBase   = 1 << ScaleBinals
)

func checkScale(scale int) {
	if scale <= 0 {
		panic("texelkit: scale must be positive")
	}
}

// PointsToPixels converts a length in points to pixels, truncating.
func PointsToPixels(pts, scale int) int {
	checkScale(scale)
	return pts * scale >> ScaleBinals
}

// PixelsToPoints converts a length in pixels to points, truncating.
func PixelsToPoints(px, scale int) int {
	checkScale(scale)
	return (px << ScaleBinals) / scale
}

// CoordToPixels converts a point-space coordinate to pixel space.
func CoordToPixels(c Coord, scale int) Coord {
	return Coord{X: PointsToPixels(c.X, scale), Y: PointsToPixels(c.Y, scale)}
}

// CoordToPoints converts a pixel-space coordinate to point space.
func CoordToPoints(c Coord, scale int) Coord {
	return Coord{X: PixelsToPoints(c.X, scale), Y: PixelsToPoints(c.Y, scale)}
}

// RectToPixels converts a point-space rect to pixel space. Edges are
// converted independently so adjacent rects stay adjacent.
func RectToPixels(r Rect, scale int) Rect {
	x0, y0 := PointsToPixels(r.X, scale), PointsToPixels(r.Y, scale)
	x1, y1 := PointsToPixels(r.Right(), scale), PointsToPixels(r.Bottom(), scale)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RectToPoints converts a pixel-space rect to point space.
func RectToPoints(r Rect, scale int) Rect {
	x0, y0 := PixelsToPoints(r.X, scale), PixelsToPoints(r.Y, scale)
	x1, y1 := PixelsToPoints(r.Right(), scale), PixelsToPoints(r.Bottom(), scale)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
