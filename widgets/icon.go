// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/icon.go
// Summary: Widget showing a pixel surface, hit-tested on its alpha channel.

package widgets

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Icon draws a surface centred in its area. Transparent pixels are holes:
// they neither hide what is below nor take mouse input.
type Icon struct {
	core.WidgetBase
	surface gfx.Surface
}

func NewIcon(s gfx.Surface) *Icon {
	ic := &Icon{}
	ic.Init(ic)
	ic.SetSurface(s)
	return ic
}

func (ic *Icon) NewOfSameType() core.Widget { return NewIcon(nil) }

func (ic *Icon) OnCloneContent(src core.Widget) {
	if s, ok := src.(*Icon); ok {
		ic.surface = s.surface
		ic.updateOpacity()
	}
}

func (ic *Icon) Surface() gfx.Surface { return ic.surface }

func (ic *Icon) SetSurface(s gfx.Surface) {
	ic.RequestRender()
	ic.surface = s
	ic.updateOpacity()
	ic.RequestResize()
	ic.RequestRender()
}

// updateOpacity claims opacity only when an opaque surface covers the
// whole widget.
func (ic *Icon) updateOpacity() {
	ic.SetOpaque(ic.surface != nil && ic.surface.IsOpaque() && ic.surface.Size() == ic.Size())
}

func (ic *Icon) OnNewSize(sz geom.Size) { ic.updateOpacity() }

func (ic *Icon) PreferredSize() geom.Size {
	if ic.surface == nil {
		return ic.WidgetBase.PreferredSize()
	}
	return ic.surface.Size()
}

// origin is the surface position relative to the widget.
func (ic *Icon) origin() geom.Coord {
	sz, src := ic.Size(), ic.surface.Size()
	return geom.Coord{X: (sz.W - src.W) / 2, Y: (sz.H - src.H) / 2}
}

func (ic *Icon) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	ic.WidgetBase.OnRender(dev, canvas, window, clip)
	if ic.surface == nil {
		return
	}
	o := ic.origin().Add(canvas.Pos())
	dev.ClipBlit(clip, ic.surface, geom.RectAt(geom.Coord{}, ic.surface.Size()), o.X, o.Y)
}

func (ic *Icon) OnAlphaTest(ofs geom.Coord) bool {
	if ic.WidgetBase.OnAlphaTest(ofs) {
		return true
	}
	if ic.surface == nil {
		return false
	}
	p := ofs.Sub(ic.origin())
	if !geom.RectAt(geom.Coord{}, ic.surface.Size()).Contains(p) {
		return false
	}
	return ic.surface.Pixel(p.X, p.Y).A > 0
}
