// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/device.go
// Summary: The graphics-device contract the widget tree renders through.
// Usage: Implemented by softdev, tcelldev, streamdev and the logdev decorator.

package gfx

import (
	"fmt"
	"image/color"

	"github.com/framegrace/texelkit/geom"
)

// Color is a non-premultiplied RGBA colour.
type Color struct {
	R, G, B, A uint8
}

var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// IsOpaque reports whether the colour fully hides what lies beneath.
func (c Color) IsOpaque() bool { return c.A == 255 }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// BlendMode selects how drawn pixels combine with the destination.
type BlendMode uint8

const (
	// BlendReplace writes source pixels as-is, alpha included.
	BlendReplace BlendMode = iota
	// BlendBlend alpha-composites source over destination.
	BlendBlend
	// BlendAdd adds source to destination.
	BlendAdd
	// BlendMultiply multiplies source with destination.
	BlendMultiply
	// BlendInvert inverts the destination where the source is set.
	BlendInvert
)

func (m BlendMode) String() string {
	switch m {
	case BlendReplace:
		return "replace"
	case BlendBlend:
		return "blend"
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendInvert:
		return "invert"
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// Surface is a readable pixel buffer.
type Surface interface {
	Size() geom.Size
	Pixel(x, y int) Color
	// IsOpaque reports whether every pixel has full alpha.
	IsOpaque() bool
}

// Device is the drawing surface the widget tree renders onto. All rects are
// in device pixels. Fill and Blit are clipped only to their own rect and the
// canvas; the Clip variants are additionally restricted to clip.
type Device interface {
	CanvasSize() geom.Size

	// BeginRender and EndRender bracket one frame. A device may batch work
	// and flush it on EndRender.
	BeginRender() bool
	EndRender() bool

	// SetBlendMode and SetTintColor return the previous value so callers can
	// restore it after a sub-render.
	SetBlendMode(mode BlendMode) BlendMode
	BlendMode() BlendMode
	SetTintColor(c Color) Color
	TintColor() Color

	Fill(rect geom.Rect, c Color)
	ClipFill(clip, rect geom.Rect, c Color)
	Blit(src Surface, srcRect geom.Rect, dx, dy int)
	ClipBlit(clip geom.Rect, src Surface, srcRect geom.Rect, dx, dy int)
}

// TextPrinter is an optional capability for devices that can draw a single
// line of text. Text layout beyond that is left to the application.
type TextPrinter interface {
	ClipPrint(clip geom.Rect, pos geom.Coord, text string, c Color)
}

// BlitRect returns the destination rect a blit of srcRect to (dx, dy) covers,
// restricted to clip and to the source bounds. srcOfs is the source position
// matching the returned rect's origin.
func BlitRect(clip geom.Rect, src Surface, srcRect geom.Rect, dx, dy int) (dst geom.Rect, srcOfs geom.Coord) {
	trimmed := srcRect.Intersect(geom.RectAt(geom.Coord{}, src.Size()))
	dx += trimmed.X - srcRect.X
	dy += trimmed.Y - srcRect.Y
	srcRect = trimmed
	dst = geom.NewRect(dx, dy, srcRect.W, srcRect.H).Intersect(clip)
	if dst.IsEmpty() {
		return geom.Rect{}, geom.Coord{}
	}
	return dst, geom.Coord{X: srcRect.X + dst.X - dx, Y: srcRect.Y + dst.Y - dy}
}
