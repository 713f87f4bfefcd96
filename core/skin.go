// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/skin.go
// Summary: The skin contract: pluggable background/frame rendering for widgets.

package core

import (
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Skin draws a widget's background and frame independently of widget logic.
// Opacity answers must reflect the skin's current configuration; the patch
// pipeline trusts them to skip repainting whatever lies underneath.
type Skin interface {
	// Render paints the skin over canvas, touching only pixels inside clip.
	Render(dev gfx.Device, canvas, clip geom.Rect, state State)
	// IsOpaque reports whether the skin covers its whole canvas with opaque
	// pixels in every state.
	IsOpaque() bool
	// IsOpaqueIn reports whether rect (relative to the canvas origin) is
	// fully opaque for the given canvas size and state.
	IsOpaqueIn(rect geom.Rect, canvas geom.Size, state State) bool
	// MarkTest reports whether the skin has a visible pixel at ofs.
	MarkTest(ofs geom.Coord, canvas geom.Size, state State) bool
	ContentPadding() geom.Border
	PreferredSize() geom.Size
}
