// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/tcelldev/tcelldev.go
// Summary: Terminal device backend; one terminal cell is one device pixel.
// Usage: Used by the demo to drive a real terminal through tcell.

package tcelldev

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Device paints cell backgrounds for fills and blits and draws text with
// ClipPrint. Colours with zero alpha are skipped in every blend mode except
// BlendReplace, where they reset the cell to the terminal default.
type Device struct {
	screen tcell.Screen
	blend  gfx.BlendMode
	tint   gfx.Color
	frames int
}

// New wraps an initialised tcell screen.
func New(screen tcell.Screen) *Device {
	return &Device{screen: screen, blend: gfx.BlendBlend, tint: gfx.White}
}

// Screen exposes the wrapped screen for event polling.
func (d *Device) Screen() tcell.Screen { return d.screen }

// Frames returns the number of completed render passes.
func (d *Device) Frames() int { return d.frames }

func (d *Device) CanvasSize() geom.Size {
	w, h := d.screen.Size()
	return geom.Size{W: w, H: h}
}

func (d *Device) BeginRender() bool { return true }

func (d *Device) EndRender() bool {
	d.screen.Show()
	d.frames++
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
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			d.paintCell(x, y, c)
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
			d.paintCell(dst.X+x, dst.Y+y, src.Pixel(ofs.X+x, ofs.Y+y))
		}
	}
}

// ClipPrint draws text starting at pos, keeping each cell's background.
// Wide runes occupy two cells and are dropped when they would straddle the
// clip edge.
func (d *Device) ClipPrint(clip geom.Rect, pos geom.Coord, text string, c gfx.Color) {
	clip = clip.Intersect(d.bounds())
	if pos.Y < clip.Y || pos.Y >= clip.Bottom() {
		return
	}
	fg := toTcell(d.tinted(c))
	x := pos.X
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= clip.Right() {
			return
		}
		if x >= clip.X && x+w <= clip.Right() {
			_, _, style, _ := d.screen.GetContent(x, pos.Y)
			d.screen.SetContent(x, pos.Y, r, nil, style.Foreground(fg))
		}
		x += w
	}
}

func (d *Device) bounds() geom.Rect {
	w, h := d.screen.Size()
	return geom.NewRect(0, 0, w, h)
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

func (d *Device) paintCell(x, y int, c gfx.Color) {
	c = d.tinted(c)
	_, _, style, _ := d.screen.GetContent(x, y)
	switch {
	case d.blend == gfx.BlendReplace && c.A == 0:
		d.screen.SetContent(x, y, ' ', nil, style.Background(tcell.ColorDefault))
	case c.A == 0:
		return
	case d.blend == gfx.BlendInvert:
		style = style.Reverse(true)
		mainc, combc, _, _ := d.screen.GetContent(x, y)
		d.screen.SetContent(x, y, mainc, combc, style)
	default:
		d.screen.SetContent(x, y, ' ', nil, style.Background(toTcell(c)))
	}
}

func toTcell(c gfx.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FromTcell converts a tcell colour, mapping the default colour to Transparent.
func FromTcell(c tcell.Color) gfx.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return gfx.Transparent
	}
	r, g, b := c.RGB()
	return gfx.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
