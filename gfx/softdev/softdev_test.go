// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package softdev

import (
	"testing"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

func newDevice(bg gfx.Color) *Device {
	s := gfx.NewMemSurface(4, 4)
	s.FillRect(geom.NewRect(0, 0, 4, 4), bg)
	return New(s)
}

func TestBlendModes(t *testing.T) {
	for _, tc := range []struct {
		name string
		mode gfx.BlendMode
		dst  gfx.Color
		src  gfx.Color
		want gfx.Color
	}{
		{"replace keeps alpha", gfx.BlendReplace, gfx.White, gfx.Color{R: 9, A: 10}, gfx.Color{R: 9, A: 10}},
		{"blend half red over black", gfx.BlendBlend, gfx.Black, gfx.Color{R: 255, A: 128}, gfx.RGB(128, 0, 0)},
		{"blend transparent is a no-op", gfx.BlendBlend, gfx.RGB(1, 2, 3), gfx.Transparent, gfx.RGB(1, 2, 3)},
		{"blend opaque overwrites", gfx.BlendBlend, gfx.RGB(1, 2, 3), gfx.RGB(4, 5, 6), gfx.RGB(4, 5, 6)},
		{"add", gfx.BlendAdd, gfx.RGB(100, 0, 0), gfx.RGB(100, 50, 0), gfx.RGB(200, 50, 0)},
		{"add clamps", gfx.BlendAdd, gfx.RGB(200, 0, 0), gfx.RGB(200, 0, 0), gfx.RGB(255, 0, 0)},
		{"multiply", gfx.BlendMultiply, gfx.RGB(255, 128, 0), gfx.RGB(128, 255, 255), gfx.RGB(128, 128, 0)},
		{"invert", gfx.BlendInvert, gfx.RGB(10, 20, 30), gfx.White, gfx.RGB(245, 235, 225)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := newDevice(tc.dst)
			d.SetBlendMode(tc.mode)
			d.Fill(geom.NewRect(1, 1, 1, 1), tc.src)
			if got := d.Canvas().Pixel(1, 1); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got := d.Canvas().Pixel(0, 0); got != tc.dst {
				t.Fatalf("fill leaked outside its rect: %v", got)
			}
		})
	}
}

func TestTintAndRestore(t *testing.T) {
	d := newDevice(gfx.Black)
	prev := d.SetTintColor(gfx.RGB(128, 128, 128))
	if prev != gfx.White {
		t.Fatalf("default tint %v", prev)
	}
	d.Fill(geom.NewRect(0, 0, 1, 1), gfx.White)
	if got := d.Canvas().Pixel(0, 0); got != gfx.RGB(128, 128, 128) {
		t.Fatalf("tinted pixel %v", got)
	}
	d.SetTintColor(prev)
	if d.TintColor() != gfx.White {
		t.Fatalf("tint not restored")
	}
}

func TestClipVariants(t *testing.T) {
	d := newDevice(gfx.Transparent)
	d.ClipFill(geom.NewRect(0, 0, 2, 2), geom.NewRect(1, 1, 3, 3), gfx.RGB(7, 7, 7))
	if d.Canvas().Pixel(1, 1) != gfx.RGB(7, 7, 7) || d.Canvas().Pixel(2, 2) != gfx.Transparent {
		t.Fatalf("ClipFill ignored its clip")
	}

	src := gfx.NewMemSurface(3, 3)
	src.FillRect(geom.NewRect(0, 0, 3, 3), gfx.RGB(1, 1, 1))
	src.SetPixel(2, 2, gfx.RGB(9, 9, 9))
	d.ClipBlit(geom.NewRect(3, 3, 1, 1), src, geom.NewRect(0, 0, 3, 3), 1, 1)
	if got := d.Canvas().Pixel(3, 3); got != gfx.RGB(9, 9, 9) {
		t.Fatalf("blit pixel %v", got)
	}
	if got := d.Canvas().Pixel(2, 3); got != gfx.Transparent {
		t.Fatalf("ClipBlit ignored its clip: %v", got)
	}

	// Off-canvas blits are cut to the canvas.
	d.Blit(src, geom.NewRect(0, 0, 3, 3), -2, -2)
	if got := d.Canvas().Pixel(0, 0); got != gfx.RGB(9, 9, 9) {
		t.Fatalf("negative offset blit %v", got)
	}
}

func TestRenderBracketing(t *testing.T) {
	d := newDevice(gfx.Black)
	if d.EndRender() {
		t.Fatalf("EndRender without BeginRender must fail")
	}
	if !d.BeginRender() || d.BeginRender() {
		t.Fatalf("nested BeginRender must be refused")
	}
	if !d.EndRender() {
		t.Fatalf("EndRender failed")
	}
}
