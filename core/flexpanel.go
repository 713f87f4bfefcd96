// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/flexpanel.go
// Summary: Panel with freely placed, possibly overlapping children.

package core

import "github.com/framegrace/texelkit/geom"

// FlexPanel places each child at an explicit geometry. Children may overlap;
// later children paint on top.
type FlexPanel struct {
	Container
}

func NewFlexPanel() *FlexPanel {
	p := &FlexPanel{}
	p.InitContainer(p)
	return p
}

func (p *FlexPanel) NewOfSameType() Widget { return NewFlexPanel() }

// AddChild adds w on top at the given local pixel geometry.
func (p *FlexPanel) AddChild(w Widget, geo geom.Rect) *Hook {
	h := p.AddWidget(w)
	p.SetChildGeo(h, geo)
	return h
}

// Place moves or resizes an existing child.
func (p *FlexPanel) Place(w Widget, geo geom.Rect) bool {
	i := p.indexOf(w)
	if i < 0 {
		return false
	}
	p.SetChildGeo(p.hooks[i], geo)
	return true
}

// OnChildAdded gives a new child its preferred size at the origin until it
// is placed.
func (p *FlexPanel) OnChildAdded(h *Hook) {
	h.setGeo(geom.RectAt(geom.Coord{}, h.widget.PreferredSize()))
}

func (p *FlexPanel) OnChildRemoved(h *Hook) {}

// OnChildResizeRequested keeps the child's position and applies its new
// preferred size.
func (p *FlexPanel) OnChildResizeRequested(h *Hook) {
	pref := h.widget.PreferredSize()
	if pref == h.geo.Size() {
		return
	}
	p.SetChildGeo(h, geom.RectAt(h.geo.Pos(), pref))
}
