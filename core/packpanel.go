// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/packpanel.go
// Summary: Panel packing its children in a row or column without overlap.

package core

import "github.com/framegrace/texelkit/geom"

// PackPanel lays its children out one after another along one axis. Children
// never overlap, so rendering skips the masking pass.
type PackPanel struct {
	Container
	horizontal bool
	spacing    int
}

func NewPackPanel(horizontal bool) *PackPanel {
	p := &PackPanel{horizontal: horizontal}
	p.InitContainer(p)
	p.siblingsOverlap = false
	return p
}

func (p *PackPanel) NewOfSameType() Widget { return NewPackPanel(p.horizontal) }

func (p *PackPanel) OnCloneContent(src Widget) {
	p.Container.OnCloneContent(src)
	if s, ok := src.(*PackPanel); ok {
		p.horizontal = s.horizontal
		p.spacing = s.spacing
	}
}

func (p *PackPanel) IsHorizontal() bool { return p.horizontal }

// SetSpacing sets the gap between consecutive children.
func (p *PackPanel) SetSpacing(px int) {
	if px < 0 {
		px = 0
	}
	if px == p.spacing {
		return
	}
	p.spacing = px
	p.layout()
	p.RequestResize()
}

func (p *PackPanel) OnChildAdded(h *Hook) {
	p.layout()
	p.RequestResize()
}

func (p *PackPanel) OnChildRemoved(h *Hook) {
	p.layout()
	p.RequestResize()
}

func (p *PackPanel) OnChildResizeRequested(h *Hook) {
	p.layout()
	p.RequestResize()
}

func (p *PackPanel) OnNewSize(sz geom.Size) {
	p.layout()
}

// content is the area inside the skin's padding.
func (p *PackPanel) content() geom.Rect {
	r := geom.RectAt(geom.Coord{}, p.size)
	if p.skin != nil {
		r = r.Shrink(p.skin.ContentPadding())
	}
	return r
}

func (p *PackPanel) layout() {
	area := p.content()
	pos := 0
	first := true
	for _, h := range p.hooks {
		if !h.visible {
			continue
		}
		if !first {
			pos += p.spacing
		}
		first = false
		pad := h.padding
		var geo geom.Rect
		if p.horizontal {
			inner := max(area.H-pad.Height(), 0)
			w := h.widget.WidthForHeight(inner)
			geo = geom.NewRect(area.X+pos+pad.Left, area.Y+pad.Top, w, inner)
			pos += w + pad.Width()
		} else {
			inner := max(area.W-pad.Width(), 0)
			ht := h.widget.HeightForWidth(inner)
			geo = geom.NewRect(area.X+pad.Left, area.Y+pos+pad.Top, inner, ht)
			pos += ht + pad.Height()
		}
		p.SetChildGeo(h, geo)
	}
}

// PreferredSize sums the children's preferences along the packing axis.
func (p *PackPanel) PreferredSize() geom.Size {
	var sz geom.Size
	n := 0
	for _, h := range p.hooks {
		if !h.visible {
			continue
		}
		pref := h.widget.PreferredSize()
		pref.W += h.padding.Width()
		pref.H += h.padding.Height()
		if p.horizontal {
			sz.W += pref.W
			sz.H = max(sz.H, pref.H)
		} else {
			sz.H += pref.H
			sz.W = max(sz.W, pref.W)
		}
		n++
	}
	if n > 1 {
		if p.horizontal {
			sz.W += p.spacing * (n - 1)
		} else {
			sz.H += p.spacing * (n - 1)
		}
	}
	if p.skin != nil {
		pad := p.skin.ContentPadding().Size()
		sz.W += pad.W
		sz.H += pad.H
	}
	return sz
}
