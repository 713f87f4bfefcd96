// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/softdev/softdev.go
// Summary: Software rendering device writing into an in-memory surface.
// Usage: Reference backend for tests, headless rendering and stream replay.

package softdev

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Device renders into a gfx.MemSurface.
type Device struct {
	canvas    *gfx.MemSurface
	blend     gfx.BlendMode
	tint      gfx.Color
	rendering bool
}

// New returns a device drawing onto canvas.
func New(canvas *gfx.MemSurface) *Device {
	return &Device{canvas: canvas, blend: gfx.BlendBlend, tint: gfx.White}
}

// Canvas exposes the destination surface.
func (d *Device) Canvas() *gfx.MemSurface { return d.canvas }

func (d *Device) CanvasSize() geom.Size { return d.canvas.Size() }

func (d *Device) BeginRender() bool {
	if d.rendering {
		return false
	}
	d.rendering = true
	return true
}

func (d *Device) EndRender() bool {
	if !d.rendering {
		return false
	}
	d.rendering = false
	return true
}

func (d *Device) SetBlendMode(mode gfx.BlendMode) gfx.BlendMode {
	prev := d.blend
	d.blend = mode
	return prev
}

func (d *Device) BlendMode() gfx.BlendMode { return d.blend }

func (d *Device) SetTintColor(c gfx.Color) gfx.Color {
	prev := d.tint
	d.tint = c
	return prev
}

func (d *Device) TintColor() gfx.Color { return d.tint }

func (d *Device) Fill(rect geom.Rect, c gfx.Color) {
	d.ClipFill(d.bounds(), rect, c)
}

func (d *Device) ClipFill(clip, rect geom.Rect, c gfx.Color) {
	r := rect.Intersect(clip).Intersect(d.bounds())
	if r.IsEmpty() {
		return
	}
	c = d.tinted(c)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			d.plot(x, y, c)
		}
	}
}

func (d *Device) Blit(src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	d.ClipBlit(d.bounds(), src, srcRect, dx, dy)
}

func (d *Device) ClipBlit(clip geom.Rect, src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	dst, ofs := gfx.BlitRect(clip.Intersect(d.bounds()), src, srcRect, dx, dy)
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			d.plot(dst.X+x, dst.Y+y, d.tinted(src.Pixel(ofs.X+x, ofs.Y+y)))
		}
	}
}

func (d *Device) bounds() geom.Rect {
	return geom.RectAt(geom.Coord{}, d.canvas.Size())
}

func (d *Device) tinted(c gfx.Color) gfx.Color {
	if d.tint == gfx.White {
		return c
	}
	return gfx.Color{
		R: uint8(uint16(c.R) * uint16(d.tint.R) / 255),
		G: uint8(uint16(c.G) * uint16(d.tint.G) / 255),
		B: uint8(uint16(c.B) * uint16(d.tint.B) / 255),
		A: uint8(uint16(c.A) * uint16(d.tint.A) / 255),
	}
}

func (d *Device) plot(x, y int, src gfx.Color) {
	switch d.blend {
	case gfx.BlendReplace:
		d.canvas.SetPixel(x, y, src)
	case gfx.BlendBlend:
		if src.A == 0 {
			return
		}
		if src.A == 255 {
			d.canvas.SetPixel(x, y, src)
			return
		}
		dst := d.canvas.Pixel(x, y)
		alpha := float64(src.A) / 255
		out := toColorful(dst).BlendRgb(toColorful(src), alpha)
		a := float64(src.A) + float64(dst.A)*(1-alpha)
		d.canvas.SetPixel(x, y, fromColorful(out, uint8(a+0.5)))
	case gfx.BlendAdd:
		dst := d.canvas.Pixel(x, y)
		alpha := float64(src.A) / 255
		s, t := toColorful(src), toColorful(dst)
		out := colorful.Color{R: t.R + s.R*alpha, G: t.G + s.G*alpha, B: t.B + s.B*alpha}.Clamped()
		d.canvas.SetPixel(x, y, fromColorful(out, dst.A))
	case gfx.BlendMultiply:
		dst := d.canvas.Pixel(x, y)
		s, t := toColorful(src), toColorful(dst)
		out := colorful.Color{R: t.R * s.R, G: t.G * s.G, B: t.B * s.B}
		d.canvas.SetPixel(x, y, fromColorful(out, dst.A))
	case gfx.BlendInvert:
		if src.A == 0 {
			return
		}
		dst := d.canvas.Pixel(x, y)
		d.canvas.SetPixel(x, y, gfx.Color{R: 255 - dst.R, G: 255 - dst.G, B: 255 - dst.B, A: dst.A})
	}
}

func toColorful(c gfx.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, a uint8) gfx.Color {
	r, g, b := c.Clamped().RGB255()
	return gfx.Color{R: r, G: g, B: b, A: a}
}
