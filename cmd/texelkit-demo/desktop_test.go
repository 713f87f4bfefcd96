// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
	"github.com/framegrace/texelkit/gfx/softdev"
)

func testTheme() theme {
	return loadTheme(config.Config{
		"colors": map[string]interface{}{
			"background": "#101010",
			"panel":      "#202020",
			"accent":     "#3366ff",
		},
		"code": map[string]interface{}{"chroma_style": "catppuccin-latte"},
	})
}

func TestDesktopLayout(t *testing.T) {
	d := newDesktop(testTheme(), "sample.go", sampleSource, true)
	root := core.NewRootPanel(nil, logdev.New(geom.Size{W: 80, H: 24}))
	root.SetChild(d)

	geos := map[core.Widget]geom.Rect{}
	for _, h := range d.Hooks() {
		geos[h.Widget()] = h.PixelGeo()
	}
	if got := geos[d.sidebar]; got != geom.NewRect(0, 0, sidebarWidth, 24) {
		t.Fatalf("sidebar %v", got)
	}
	if got := geos[d.code]; got != geom.NewRect(sidebarWidth, 0, 80-sidebarWidth, 24) {
		t.Fatalf("code view %v", got)
	}
	if got := geos[d.badge]; got != geom.NewRect(80-badgeWidth-1, 24-badgeHeight-1, badgeWidth, badgeHeight) {
		t.Fatalf("badge %v", got)
	}
	if d.code.Language() != "Go" {
		t.Fatalf("language %q", d.code.Language())
	}

	root.HandleEvent(tcell.NewEventResize(40, 10))
	if got := d.Hooks()[1].PixelGeo(); got != geom.NewRect(sidebarWidth, 0, 40-sidebarWidth, 10) {
		t.Fatalf("code view after resize %v", got)
	}
}

func TestDesktopScrollUpdatesStatus(t *testing.T) {
	d := newDesktop(testTheme(), "sample.go", sampleSource, true)
	root := core.NewRootPanel(nil, softdev.New(gfx.NewMemSurface(60, 8)))
	root.SetChild(d)
	if !d.code.GrabFocus() {
		t.Fatalf("code view refused focus")
	}
	root.Render()

	root.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	d.updateStatus()
	if d.code.Scroll() != 1 {
		t.Fatalf("scroll %d", d.code.Scroll())
	}
	if want := "line 2/17"; d.status.Text() != want {
		t.Fatalf("status %q, want %q", d.status.Text(), want)
	}
	if !root.Render() {
		t.Fatalf("scrolling must produce a frame")
	}
}

func TestHeadlessRun(t *testing.T) {
	tk := core.NewToolkit()
	d := newDesktop(testTheme(), "sample.go", sampleSource, false)
	if err := runHeadless(tk, d, options{width: 50, height: 12, frames: 3}); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if d.code.Scroll() != 3 {
		t.Fatalf("expected three scroll steps, got %d", d.code.Scroll())
	}
	if err := runHeadless(tk, d, options{}); err == nil {
		t.Fatalf("empty canvas must be rejected")
	}
}
