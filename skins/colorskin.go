// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: skins/colorskin.go
// Summary: Skin filling the widget with a solid, state-dependent colour.

package skins

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// ColorSkin fills its canvas with one colour per state. It is opaque when
// every colour it may use has full alpha.
type ColorSkin struct {
	colors  StateColors
	padding geom.Border
}

func NewColorSkin(c gfx.Color) *ColorSkin {
	return &ColorSkin{colors: NewStateColors(c)}
}

// SetStateColor overrides the colour while flag is set on the widget.
func (s *ColorSkin) SetStateColor(flag core.State, c gfx.Color) {
	s.colors.Set(flag, c)
}

func (s *ColorSkin) Color(state core.State) gfx.Color { return s.colors.Get(state) }

func (s *ColorSkin) SetContentPadding(b geom.Border) { s.padding = b }

func (s *ColorSkin) Render(dev gfx.Device, canvas, clip geom.Rect, state core.State) {
	c := s.colors.Get(state)
	if c.A == 0 {
		return
	}
	dev.ClipFill(clip, canvas, c)
}

func (s *ColorSkin) IsOpaque() bool { return s.colors.AllOpaque() }

func (s *ColorSkin) IsOpaqueIn(rect geom.Rect, canvas geom.Size, state core.State) bool {
	return s.colors.Get(state).IsOpaque()
}

func (s *ColorSkin) MarkTest(ofs geom.Coord, canvas geom.Size, state core.State) bool {
	return s.colors.Get(state).A > 0
}

func (s *ColorSkin) ContentPadding() geom.Border { return s.padding }
func (s *ColorSkin) PreferredSize() geom.Size    { return s.padding.Size() }
