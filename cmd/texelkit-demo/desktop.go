// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelkit-demo/desktop.go
// Summary: Demo widget tree: sidebar, code view and a floating badge.

package main

import (
	"fmt"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/skins"
	"github.com/framegrace/texelkit/widgets"
)

const (
	sidebarWidth = 24
	badgeWidth   = 16
	badgeHeight  = 3
)

// desktop places a fixed-width sidebar on the left, the code view in the
// remaining space and a translucent badge over the code view's corner.
type desktop struct {
	core.Container
	sidebar *core.PackPanel
	status  *widgets.Label
	code    *widgets.CodeView
	badge   *core.PackPanel
}

type theme struct {
	palette   skins.Palette
	codeStyle string
}

func loadTheme(style config.Config) theme {
	return theme{
		palette:   skins.PaletteFrom(style),
		codeStyle: style.GetString("code", "chroma_style", ""),
	}
}

func newDesktop(th theme, filename, source string, overlap bool) *desktop {
	pal := th.palette
	text := pal.Get("text", gfx.White)
	panel := pal.Get("panel", gfx.RGB(30, 30, 46))

	d := &desktop{}
	d.InitContainer(d)
	d.SetSiblingsOverlap(overlap)
	d.SetSkin(skins.NewColorSkin(pal.Get("background", gfx.Black)))

	frame := pal.Get("frame", gfx.RGB(88, 91, 112))
	accent := pal.Get("accent", gfx.RGB(137, 180, 250))
	d.sidebar = core.NewPackPanel(false)
	d.sidebar.SetSkin(skins.NewBoxSkin(geom.UniformBorder(1), frame, panel))
	d.sidebar.SetSpacing(1)

	title := widgets.NewLabel("texelkit", accent)
	title.SetAlign(widgets.AlignCenter)
	d.sidebar.AddWidget(title)

	d.code = widgets.NewCodeView(filename, source, th.codeStyle)
	codeFrame := skins.NewBoxSkin(geom.UniformBorder(1), frame, panel)
	codeFrame.SetFrameStateColor(core.StateFocused, accent)
	d.code.SetSkin(codeFrame)
	lang := d.code.Language()
	if lang == "" {
		lang = "plain text"
	}
	d.sidebar.AddWidget(widgets.NewLabel(filename, text))
	d.sidebar.AddWidget(widgets.NewLabel(lang, pal.Get("disabled", text)))
	d.status = widgets.NewLabel(fmt.Sprintf("%d lines", d.code.LineCount()), text)
	d.sidebar.AddWidget(d.status)
	d.sidebar.AddWidget(widgets.NewLabel("Tab focus, q quit", pal.Get("disabled", text)))

	badgeSkin := skins.NewColorSkin(withAlpha(accent, 160))
	badgeSkin.SetContentPadding(geom.Border{Left: 1, Right: 1, Top: 1, Bottom: 1})
	d.badge = core.NewPackPanel(false)
	d.badge.SetSkin(badgeSkin)
	d.badge.AddWidget(widgets.NewLabel("texelkit demo", pal.Get("background", gfx.Black)))

	d.AddWidget(d.sidebar)
	d.AddWidget(d.code)
	d.AddWidget(d.badge)
	return d
}

func withAlpha(c gfx.Color, a uint8) gfx.Color {
	c.A = a
	return c
}

func (d *desktop) NewOfSameType() core.Widget { return newDesktop(theme{}, "", "", true) }

func (d *desktop) OnNewSize(sz geom.Size) { d.layout() }

func (d *desktop) OnChildAdded(h *core.Hook)           { d.layout() }
func (d *desktop) OnChildRemoved(h *core.Hook)         { d.layout() }
func (d *desktop) OnChildResizeRequested(h *core.Hook) { d.layout() }

func (d *desktop) layout() {
	sz := d.Size()
	side := min(sidebarWidth, sz.W)
	for _, h := range d.Hooks() {
		switch h.Widget() {
		case core.Widget(d.sidebar):
			d.SetChildGeo(h, geom.NewRect(0, 0, side, sz.H))
		case core.Widget(d.code):
			d.SetChildGeo(h, geom.NewRect(side, 0, max(sz.W-side, 0), sz.H))
		case core.Widget(d.badge):
			d.SetChildGeo(h, geom.NewRect(sz.W-badgeWidth-1, sz.H-badgeHeight-1, badgeWidth, badgeHeight))
		}
	}
}

// updateStatus reflects the code view's scroll position in the sidebar.
func (d *desktop) updateStatus() {
	d.status.SetText(fmt.Sprintf("line %d/%d", d.code.Scroll()+1, d.code.LineCount()))
}
