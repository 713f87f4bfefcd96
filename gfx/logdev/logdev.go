// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/logdev/logdev.go
// Summary: Device decorator that records every call before forwarding it.
// Usage: Call-log oracle for render tests and the source of render traces.

package logdev

import (
	"fmt"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// OpKind identifies a recorded device call.
type OpKind uint8

const (
	OpBeginRender OpKind = iota
	OpEndRender
	OpSetBlendMode
	OpSetTintColor
	OpFill
	OpClipFill
	OpBlit
	OpClipBlit
	OpClipPrint
)

var opNames = [...]string{
	OpBeginRender:  "begin",
	OpEndRender:    "end",
	OpSetBlendMode: "blendmode",
	OpSetTintColor: "tint",
	OpFill:         "fill",
	OpClipFill:     "clipfill",
	OpBlit:         "blit",
	OpClipBlit:     "clipblit",
	OpClipPrint:    "clipprint",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one recorded call. Fields that do not apply to the kind are zero.
type Op struct {
	Kind  OpKind
	Clip  geom.Rect
	Rect  geom.Rect // fill rect, or blit source rect
	Dest  geom.Coord
	Color gfx.Color
	Mode  gfx.BlendMode
	Text  string
}

// Painted returns the device area the op may have touched, empty for state
// changes.
func (o Op) Painted() geom.Rect {
	switch o.Kind {
	case OpFill:
		return o.Rect
	case OpClipFill:
		return o.Rect.Intersect(o.Clip)
	case OpBlit:
		return geom.NewRect(o.Dest.X, o.Dest.Y, o.Rect.W, o.Rect.H)
	case OpClipBlit:
		return geom.NewRect(o.Dest.X, o.Dest.Y, o.Rect.W, o.Rect.H).Intersect(o.Clip)
	case OpClipPrint:
		return o.Clip
	}
	return geom.Rect{}
}

func (o Op) String() string {
	switch o.Kind {
	case OpFill:
		return fmt.Sprintf("fill %v %v", o.Rect, o.Color)
	case OpClipFill:
		return fmt.Sprintf("clipfill clip=%v %v %v", o.Clip, o.Rect, o.Color)
	case OpBlit, OpClipBlit:
		return fmt.Sprintf("%s clip=%v src=%v to %v", o.Kind, o.Clip, o.Rect, o.Dest)
	case OpClipPrint:
		return fmt.Sprintf("clipprint clip=%v at %v %q", o.Clip, o.Dest, o.Text)
	case OpSetBlendMode:
		return fmt.Sprintf("blendmode %s", o.Mode)
	case OpSetTintColor:
		return fmt.Sprintf("tint %v", o.Color)
	}
	return o.Kind.String()
}

// Device records calls and forwards them to an optional inner device. With no
// inner device it tracks blend mode and tint itself.
type Device struct {
	inner gfx.Device
	size  geom.Size
	blend gfx.BlendMode
	tint  gfx.Color
	ops   []Op
}

// Wrap records calls made to inner.
func Wrap(inner gfx.Device) *Device {
	return &Device{inner: inner, size: inner.CanvasSize(), blend: inner.BlendMode(), tint: inner.TintColor()}
}

// New returns a recording device with no backing surface.
func New(size geom.Size) *Device {
	return &Device{size: size, blend: gfx.BlendBlend, tint: gfx.White}
}

// Ops returns the recorded calls in order.
func (d *Device) Ops() []Op { return d.ops }

// Reset forgets recorded calls.
func (d *Device) Reset() { d.ops = d.ops[:0] }

// PaintedArea returns the region touched by all drawing calls so far.
func (d *Device) PaintedArea() *geom.Patches {
	p := geom.NewPatches(len(d.ops))
	for _, op := range d.ops {
		p.Add(op.Painted())
	}
	return p
}

// Filter returns the recorded calls for which keep returns true.
func (d *Device) Filter(keep func(Op) bool) []Op {
	var out []Op
	for _, op := range d.ops {
		if keep(op) {
			out = append(out, op)
		}
	}
	return out
}

func (d *Device) record(op Op) { d.ops = append(d.ops, op) }

func (d *Device) CanvasSize() geom.Size {
	if d.inner != nil {
		return d.inner.CanvasSize()
	}
	return d.size
}

func (d *Device) BeginRender() bool {
	d.record(Op{Kind: OpBeginRender})
	if d.inner != nil {
		return d.inner.BeginRender()
	}
	return true
}

func (d *Device) EndRender() bool {
	d.record(Op{Kind: OpEndRender})
	if d.inner != nil {
		return d.inner.EndRender()
	}
	return true
}

func (d *Device) SetBlendMode(mode gfx.BlendMode) gfx.BlendMode {
	d.record(Op{Kind: OpSetBlendMode, Mode: mode})
	prev := d.blend
	d.blend = mode
	if d.inner != nil {
		prev = d.inner.SetBlendMode(mode)
	}
	return prev
}

func (d *Device) BlendMode() gfx.BlendMode {
	if d.inner != nil {
		return d.inner.BlendMode()
	}
	return d.blend
}

func (d *Device) SetTintColor(c gfx.Color) gfx.Color {
	d.record(Op{Kind: OpSetTintColor, Color: c})
	prev := d.tint
	d.tint = c
	if d.inner != nil {
		prev = d.inner.SetTintColor(c)
	}
	return prev
}

func (d *Device) TintColor() gfx.Color {
	if d.inner != nil {
		return d.inner.TintColor()
	}
	return d.tint
}

func (d *Device) Fill(rect geom.Rect, c gfx.Color) {
	d.record(Op{Kind: OpFill, Rect: rect, Color: c})
	if d.inner != nil {
		d.inner.Fill(rect, c)
	}
}

func (d *Device) ClipFill(clip, rect geom.Rect, c gfx.Color) {
	d.record(Op{Kind: OpClipFill, Clip: clip, Rect: rect, Color: c})
	if d.inner != nil {
		d.inner.ClipFill(clip, rect, c)
	}
}

func (d *Device) Blit(src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	d.record(Op{Kind: OpBlit, Rect: srcRect, Dest: geom.Coord{X: dx, Y: dy}})
	if d.inner != nil {
		d.inner.Blit(src, srcRect, dx, dy)
	}
}

func (d *Device) ClipBlit(clip geom.Rect, src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	d.record(Op{Kind: OpClipBlit, Clip: clip, Rect: srcRect, Dest: geom.Coord{X: dx, Y: dy}})
	if d.inner != nil {
		d.inner.ClipBlit(clip, src, srcRect, dx, dy)
	}
}

// ClipPrint records the call and forwards it when the inner device can print.
func (d *Device) ClipPrint(clip geom.Rect, pos geom.Coord, text string, c gfx.Color) {
	d.record(Op{Kind: OpClipPrint, Clip: clip, Dest: pos, Text: text, Color: c})
	if tp, ok := d.inner.(gfx.TextPrinter); ok {
		tp.ClipPrint(clip, pos, text, c)
	}
}
