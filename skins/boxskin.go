// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: skins/boxskin.go
// Summary: Skin drawing a frame of configurable thickness around a fill.

package skins

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// BoxSkin paints a frame band and fills the inside. Content padding is the
// frame plus any extra padding.
type BoxSkin struct {
	frame      geom.Border
	frameColor StateColors
	fillColor  StateColors
	padding    geom.Border
}

func NewBoxSkin(frame geom.Border, frameColor, fillColor gfx.Color) *BoxSkin {
	return &BoxSkin{
		frame:      frame,
		frameColor: NewStateColors(frameColor),
		fillColor:  NewStateColors(fillColor),
	}
}

func (s *BoxSkin) SetFrameStateColor(flag core.State, c gfx.Color) { s.frameColor.Set(flag, c) }
func (s *BoxSkin) SetFillStateColor(flag core.State, c gfx.Color)  { s.fillColor.Set(flag, c) }
func (s *BoxSkin) SetContentPadding(b geom.Border)                 { s.padding = b }
func (s *BoxSkin) Frame() geom.Border                              { return s.frame }

// Clone returns an independent copy, e.g. to vary colours per widget.
func (s *BoxSkin) Clone() *BoxSkin {
	return &BoxSkin{
		frame:      s.frame,
		frameColor: s.frameColor.clone(),
		fillColor:  s.fillColor.clone(),
		padding:    s.padding,
	}
}

func (s *BoxSkin) Render(dev gfx.Device, canvas, clip geom.Rect, state core.State) {
	inner := canvas.Shrink(s.frame)
	if fill := s.fillColor.Get(state); fill.A > 0 {
		dev.ClipFill(clip, inner, fill)
	}
	fc := s.frameColor.Get(state)
	if fc.A == 0 || s.frame.IsEmpty() {
		return
	}
	for _, band := range frameBands(canvas, inner) {
		dev.ClipFill(clip, band, fc)
	}
}

// frameBands splits outer minus inner into up to four rects.
func frameBands(outer, inner geom.Rect) []geom.Rect {
	if inner.IsEmpty() {
		return []geom.Rect{outer}
	}
	bands := []geom.Rect{
		geom.NewRect(outer.X, outer.Y, outer.W, inner.Y-outer.Y),
		geom.NewRect(outer.X, inner.Bottom(), outer.W, outer.Bottom()-inner.Bottom()),
		geom.NewRect(outer.X, inner.Y, inner.X-outer.X, inner.H),
		geom.NewRect(inner.Right(), inner.Y, outer.Right()-inner.Right(), inner.H),
	}
	out := bands[:0]
	for _, b := range bands {
		if !b.IsEmpty() {
			out = append(out, b)
		}
	}
	return out
}

func (s *BoxSkin) IsOpaque() bool {
	if !s.fillColor.AllOpaque() {
		return false
	}
	return s.frame.IsEmpty() || s.frameColor.AllOpaque()
}

func (s *BoxSkin) IsOpaqueIn(rect geom.Rect, canvas geom.Size, state core.State) bool {
	inner := geom.RectAt(geom.Coord{}, canvas).Shrink(s.frame)
	fillOK := s.fillColor.Get(state).IsOpaque()
	frameOK := s.frame.IsEmpty() || s.frameColor.Get(state).IsOpaque()
	if inner.ContainsRect(rect) {
		return fillOK
	}
	if !rect.Intersects(inner) {
		return frameOK
	}
	return fillOK && frameOK
}

func (s *BoxSkin) MarkTest(ofs geom.Coord, canvas geom.Size, state core.State) bool {
	inner := geom.RectAt(geom.Coord{}, canvas).Shrink(s.frame)
	if inner.Contains(ofs) {
		return s.fillColor.Get(state).A > 0
	}
	return s.frameColor.Get(state).A > 0
}

func (s *BoxSkin) ContentPadding() geom.Border {
	return geom.Border{
		Top:    s.frame.Top + s.padding.Top,
		Right:  s.frame.Right + s.padding.Right,
		Bottom: s.frame.Bottom + s.padding.Bottom,
		Left:   s.frame.Left + s.padding.Left,
	}
}

func (s *BoxSkin) PreferredSize() geom.Size { return s.ContentPadding().Size() }
