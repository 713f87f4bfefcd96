// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/filler.go
// Summary: Filler occupies space and optionally paints a flat colour.

package widgets

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Filler is a spacer. With an opaque colour it also hides what lies below.
type Filler struct {
	core.WidgetBase
	color gfx.Color
	pref  geom.Size
}

func NewFiller(c gfx.Color, pref geom.Size) *Filler {
	f := &Filler{pref: pref}
	f.Init(f)
	f.SetMarkPolicy(core.MarkGeometry)
	f.SetColor(c)
	return f
}

func (f *Filler) NewOfSameType() core.Widget { return NewFiller(gfx.Transparent, geom.Size{}) }

func (f *Filler) OnCloneContent(src core.Widget) {
	if s, ok := src.(*Filler); ok {
		f.color = s.color
		f.pref = s.pref
	}
}

func (f *Filler) Color() gfx.Color { return f.color }

func (f *Filler) SetColor(c gfx.Color) {
	if c == f.color {
		return
	}
	f.color = c
	f.SetOpaque(c.IsOpaque())
	f.RequestRender()
}

func (f *Filler) SetPreferredSize(sz geom.Size) {
	if sz == f.pref {
		return
	}
	f.pref = sz
	f.RequestResize()
}

func (f *Filler) PreferredSize() geom.Size { return f.pref }

func (f *Filler) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	f.WidgetBase.OnRender(dev, canvas, window, clip)
	if f.color.A > 0 {
		dev.ClipFill(clip, canvas, f.color)
	}
}
