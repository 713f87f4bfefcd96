// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: skins/blockskin.go
// Summary: Skin tiling a block of pixels taken from a surface.
// Usage: One surface may hold a block per state side by side; SetStateBlock
// points a state at its block.

package skins

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// BlockSkin repeats a surface region over the canvas. It is opaque when the
// surface is.
type BlockSkin struct {
	surface gfx.Surface
	block   geom.Size
	base    geom.Coord
	states  map[core.State]geom.Coord
	padding geom.Border
}

// NewBlockSkin uses the block of the given size at the surface origin.
func NewBlockSkin(surface gfx.Surface, block geom.Size) *BlockSkin {
	if surface == nil {
		panic("texelkit: block skin needs a surface")
	}
	if block.IsEmpty() {
		block = surface.Size()
	}
	if block.IsEmpty() {
		panic("texelkit: block skin needs a non-empty block")
	}
	return &BlockSkin{surface: surface, block: block}
}

// SetStateBlock uses the block at pos while flag is set.
func (s *BlockSkin) SetStateBlock(flag core.State, pos geom.Coord) {
	if s.states == nil {
		s.states = make(map[core.State]geom.Coord)
	}
	s.states[flag] = pos
}

func (s *BlockSkin) SetContentPadding(b geom.Border) { s.padding = b }

func (s *BlockSkin) blockRect(state core.State) geom.Rect {
	pos := s.base
	for _, f := range statePriority {
		if !state.Has(f) {
			continue
		}
		if p, ok := s.states[f]; ok {
			pos = p
			break
		}
	}
	return geom.RectAt(pos, s.block)
}

func (s *BlockSkin) Render(dev gfx.Device, canvas, clip geom.Rect, state core.State) {
	clip = clip.Intersect(canvas)
	if clip.IsEmpty() {
		return
	}
	src := s.blockRect(state)
	bw, bh := s.block.W, s.block.H
	// Only visit the tiles that meet clip.
	x0 := canvas.X + (clip.X-canvas.X)/bw*bw
	y0 := canvas.Y + (clip.Y-canvas.Y)/bh*bh
	for y := y0; y < clip.Bottom(); y += bh {
		for x := x0; x < clip.Right(); x += bw {
			dev.ClipBlit(clip, s.surface, src, x, y)
		}
	}
}

func (s *BlockSkin) IsOpaque() bool { return s.surface.IsOpaque() }

func (s *BlockSkin) IsOpaqueIn(rect geom.Rect, canvas geom.Size, state core.State) bool {
	if s.surface.IsOpaque() {
		return true
	}
	src := s.blockRect(state)
	rect = rect.Intersect(geom.RectAt(geom.Coord{}, canvas))
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			if s.surface.Pixel(src.X+x%s.block.W, src.Y+y%s.block.H).A != 255 {
				return false
			}
		}
	}
	return true
}

func (s *BlockSkin) MarkTest(ofs geom.Coord, canvas geom.Size, state core.State) bool {
	if !geom.RectAt(geom.Coord{}, canvas).Contains(ofs) {
		return false
	}
	src := s.blockRect(state)
	return s.surface.Pixel(src.X+ofs.X%s.block.W, src.Y+ofs.Y%s.block.H).A > 0
}

func (s *BlockSkin) ContentPadding() geom.Border { return s.padding }

func (s *BlockSkin) PreferredSize() geom.Size {
	pad := s.padding.Size()
	return geom.Size{W: max(s.block.W, pad.W), H: max(s.block.H, pad.H)}
}
