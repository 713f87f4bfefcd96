// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
	"github.com/framegrace/texelkit/gfx/softdev"
	"github.com/framegrace/texelkit/skins"
)

func newLogRoot(w, h int) (*core.RootPanel, *core.FlexPanel, *logdev.Device) {
	dev := logdev.New(geom.Size{W: w, H: h})
	root := core.NewRootPanel(nil, dev)
	panel := core.NewFlexPanel()
	root.SetChild(panel)
	return root, panel, dev
}

func prints(dev *logdev.Device, y int) string {
	var sb strings.Builder
	for _, op := range dev.Filter(func(op logdev.Op) bool {
		return op.Kind == logdev.OpClipPrint && op.Dest.Y == y
	}) {
		sb.WriteString(op.Text)
	}
	return sb.String()
}

func TestFillerPaintsAndTracksOpacity(t *testing.T) {
	canvas := gfx.NewMemSurface(8, 8)
	root := core.NewRootPanel(nil, softdev.New(canvas))
	panel := core.NewFlexPanel()
	root.SetChild(panel)
	f := NewFiller(gfx.RGB(10, 20, 30), geom.Size{W: 4, H: 4})
	panel.AddChild(f, geom.NewRect(2, 2, 4, 4))
	root.Render()

	if got := canvas.Pixel(3, 3); got != gfx.RGB(10, 20, 30) {
		t.Fatalf("filler pixel %v", got)
	}
	if got := canvas.Pixel(0, 0); got != gfx.Transparent {
		t.Fatalf("outside pixel %v", got)
	}
	if !f.IsOpaque() {
		t.Fatalf("opaque colour must make the filler opaque")
	}
	f.SetColor(gfx.Color{R: 1, A: 100})
	if f.IsOpaque() {
		t.Fatalf("translucent filler claims opacity")
	}
	if !root.Dirty().Covers(geom.Coord{X: 3, Y: 3}) {
		t.Fatalf("SetColor did not request a render")
	}
}

func TestLabelAlignment(t *testing.T) {
	root, panel, dev := newLogRoot(20, 4)
	l := NewLabel("hi", gfx.White)
	panel.AddChild(l, geom.NewRect(0, 1, 10, 1))

	for _, tc := range []struct {
		align Align
		x     int
	}{
		{AlignLeft, 0},
		{AlignCenter, 4},
		{AlignRight, 8},
	} {
		l.SetAlign(tc.align)
		root.Render()
		ops := dev.Filter(func(op logdev.Op) bool { return op.Kind == logdev.OpClipPrint })
		if len(ops) == 0 {
			t.Fatalf("align %d: nothing printed", tc.align)
		}
		last := ops[len(ops)-1]
		if last.Dest != (geom.Coord{X: tc.x, Y: 1}) || last.Text != "hi" {
			t.Fatalf("align %d: got %v", tc.align, last)
		}
		dev.Reset()
	}
}

func TestLabelTruncatesAndResizes(t *testing.T) {
	root, panel, dev := newLogRoot(20, 4)
	l := NewLabel("hello world", gfx.White)
	panel.AddChild(l, geom.NewRect(0, 0, 5, 1))
	root.Render()
	if got := prints(dev, 0); got != "hell…" {
		t.Fatalf("expected truncated text, got %q", got)
	}

	l.SetText("a much longer text")
	if got := panel.Hooks()[0].PixelSize(); got.W != len("a much longer text") {
		t.Fatalf("label not resized: %v", got)
	}
	if l.PreferredSize() != (geom.Size{W: 18, H: 1}) {
		t.Fatalf("preferred size %v", l.PreferredSize())
	}
}

func TestIconOpacityAndAlphaHit(t *testing.T) {
	s := gfx.NewMemSurface(4, 4)
	s.FillRect(geom.NewRect(0, 0, 4, 4), gfx.RGB(1, 2, 3))
	root, panel, _ := newLogRoot(20, 20)
	ic := NewIcon(s)
	h := panel.AddChild(ic, geom.NewRect(0, 0, 4, 4))

	if !ic.IsOpaque() {
		t.Fatalf("opaque surface at full size must be opaque")
	}
	panel.Place(ic, geom.NewRect(0, 0, 6, 6))
	if ic.IsOpaque() {
		t.Fatalf("icon smaller than its area is not opaque")
	}

	s.SetPixel(0, 0, gfx.Transparent)
	panel.Place(ic, geom.NewRect(0, 0, 4, 4))
	if ic.IsOpaque() {
		t.Fatalf("surface with a hole is not opaque")
	}
	if ic.MarkTest(geom.Coord{}) {
		t.Fatalf("transparent pixel must not hit")
	}
	if !ic.MarkTest(geom.Coord{X: 1, Y: 1}) {
		t.Fatalf("opaque pixel must hit")
	}
	if got := root.WidgetAt(h.ScreenPixelPos()); got == core.Widget(ic) {
		t.Fatalf("click through the hole should miss the icon")
	}
}

func TestIconRendersCentred(t *testing.T) {
	s := gfx.NewMemSurface(2, 2)
	s.FillRect(geom.NewRect(0, 0, 2, 2), gfx.RGB(200, 0, 0))
	canvas := gfx.NewMemSurface(10, 10)
	root := core.NewRootPanel(nil, softdev.New(canvas))
	panel := core.NewFlexPanel()
	root.SetChild(panel)
	panel.AddChild(NewIcon(s), geom.NewRect(2, 2, 6, 6))
	root.Render()

	if got := canvas.Pixel(4, 4); got != gfx.RGB(200, 0, 0) {
		t.Fatalf("expected icon pixel at (4,4), got %v", got)
	}
	if got := canvas.Pixel(3, 3); got != gfx.Transparent {
		t.Fatalf("icon leaked to (3,3): %v", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	for _, tc := range []struct {
		name, src, want string
	}{
		{"main.go", "package main\n", "Go"},
		{"script.py", "print('hi')\n", "Python"},
		{"notes.md", "# Title\n", "Markdown"},
	} {
		if got := DetectLanguage(tc.name, []byte(tc.src)); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func goSource(lines int) string {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "var x%d = %d\n", i, i)
	}
	return sb.String()
}

func TestCodeViewHighlightsLines(t *testing.T) {
	cv := NewCodeView("vars.go", goSource(20), "")
	if cv.Language() != "Go" {
		t.Fatalf("language %q", cv.Language())
	}
	if cv.LineCount() != 20 {
		t.Fatalf("line count %d", cv.LineCount())
	}
	if got := cv.PreferredSize(); got != (geom.Size{W: len("var x19 = 19"), H: 20}) {
		t.Fatalf("preferred size %v", got)
	}
	if !cv.IsOpaque() {
		t.Fatalf("code view with an opaque style background must be opaque")
	}
	colors := map[gfx.Color]bool{}
	for _, sp := range cv.lines[0].spans {
		colors[sp.color] = true
	}
	if len(colors) < 2 {
		t.Fatalf("expected several token colours, got %v", colors)
	}
}

func TestCodeViewScrolling(t *testing.T) {
	root, panel, dev := newLogRoot(30, 5)
	cv := NewCodeView("vars.go", goSource(20), "catppuccin-latte")
	panel.AddChild(cv, geom.NewRect(0, 0, 30, 5))
	root.Render()
	if got := prints(dev, 0); got != "var x0 = 0" {
		t.Fatalf("first row %q", got)
	}

	if !cv.GrabFocus() {
		t.Fatalf("GrabFocus failed")
	}
	root.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if cv.Scroll() != 1 {
		t.Fatalf("scroll %d", cv.Scroll())
	}
	dev.Reset()
	root.Render()
	if got := prints(dev, 0); got != "var x1 = 1" {
		t.Fatalf("first row after scroll %q", got)
	}

	root.HandleEvent(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	if cv.Scroll() != 15 {
		t.Fatalf("End should stop at the last page, got %d", cv.Scroll())
	}
	root.HandleEvent(tcell.NewEventMouse(2, 2, tcell.WheelUp, tcell.ModNone))
	if cv.Scroll() != 12 {
		t.Fatalf("wheel scroll %d", cv.Scroll())
	}
	root.HandleEvent(tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone))
	if cv.Scroll() != 8 {
		t.Fatalf("page up %d", cv.Scroll())
	}
	cv.SetScroll(-5)
	if cv.Scroll() != 0 {
		t.Fatalf("negative scroll not clamped: %d", cv.Scroll())
	}
}

func TestCodeViewSetSourceResets(t *testing.T) {
	cv := NewCodeView("vars.go", goSource(20), "")
	cv.SetSource("hello.py", "print('hi')\n")
	if cv.Language() != "Python" || cv.LineCount() != 1 || cv.Scroll() != 0 {
		t.Fatalf("unexpected state %q %d %d", cv.Language(), cv.LineCount(), cv.Scroll())
	}
	cv.SetSource("", "")
	if cv.LineCount() != 0 {
		t.Fatalf("empty source has no lines")
	}
}

func TestExpandTabs(t *testing.T) {
	if got := expandTabs("\tx", 0); got != "    x" {
		t.Fatalf("%q", got)
	}
	if got := expandTabs("ab\tc", 0); got != "ab  c" {
		t.Fatalf("%q", got)
	}
	if got := expandTabs("\t", 3); got != " " {
		t.Fatalf("%q", got)
	}
}

func TestCodeViewMasksOnlyPaintedArea(t *testing.T) {
	cv := NewCodeView("vars.go", goSource(3), "")
	skin := skins.NewColorSkin(gfx.Color{R: 40, G: 40, B: 40, A: 100})
	skin.SetContentPadding(geom.UniformBorder(1))
	cv.SetSkin(skin)
	if cv.IsOpaque() {
		t.Fatalf("padding under a translucent skin is not painted opaque")
	}

	geo := geom.NewRect(0, 0, 10, 5)
	window := geom.NewRect(0, 0, 100, 100)
	patches := geom.PatchesOf(geom.NewRect(0, 0, 20, 20))
	cv.OnMaskPatches(patches, geo, window, gfx.BlendBlend)
	if got := patches.Area(); got != 400-8*3 {
		t.Fatalf("expected only the content masked, area %d", got)
	}
	if !patches.Covers(geom.Coord{X: 0, Y: 0}) || patches.Covers(geom.Coord{X: 1, Y: 1}) {
		t.Fatalf("wrong masked region %v", patches.Rects())
	}

	cv.SetSkin(nil)
	patches = geom.PatchesOf(geom.NewRect(0, 0, 20, 20))
	cv.OnMaskPatches(patches, geo, window, gfx.BlendBlend)
	if got := patches.Area(); got != 400-50 {
		t.Fatalf("unskinned view must mask its whole area, got %d", got)
	}
	patches = geom.PatchesOf(geom.NewRect(0, 0, 20, 20))
	cv.OnMaskPatches(patches, geo, window, gfx.BlendAdd)
	if patches.Area() != 400 {
		t.Fatalf("additive blending must not mask")
	}
}
