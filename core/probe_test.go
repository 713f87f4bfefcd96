// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
)

// renderCall is one OnRender invocation seen by a probe.
type renderCall struct {
	canvas, window, clip geom.Rect
}

// probe is a leaf widget that fills each clip with its colour and records
// every call.
type probe struct {
	WidgetBase
	name  string
	color gfx.Color
	pref  geom.Size
	calls []renderCall
	keys  []tcell.Key
	mouse []geom.Coord
}

func newProbe(name string, c gfx.Color, opaque bool) *probe {
	p := &probe{name: name, color: c, pref: geom.Size{W: 10, H: 10}}
	p.Init(p)
	p.SetOpaque(opaque)
	p.SetMarkPolicy(MarkGeometry)
	return p
}

func (p *probe) NewOfSameType() Widget { return newProbe(p.name, p.color, false) }

func (p *probe) OnCloneContent(src Widget) {
	switch s := src.(type) {
	case *probe:
		p.pref = s.pref
	case *keyProbe:
		p.pref = s.pref
	}
}

func (p *probe) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	p.calls = append(p.calls, renderCall{canvas: canvas, window: window, clip: clip})
	p.WidgetBase.OnRender(dev, canvas, window, clip)
	dev.ClipFill(clip, canvas, p.color)
}

func (p *probe) PreferredSize() geom.Size { return p.pref }

func (p *probe) clips() []geom.Rect {
	out := make([]geom.Rect, len(p.calls))
	for i, c := range p.calls {
		out[i] = c.clip
	}
	return out
}

func (p *probe) reset() { p.calls = nil }

// keyProbe is a probe that takes keyboard focus and mouse input.
type keyProbe struct {
	probe
}

func newKeyProbe(name string) *keyProbe {
	p := &keyProbe{probe: probe{name: name, color: gfx.RGB(9, 9, 9), pref: geom.Size{W: 10, H: 10}}}
	p.Init(p)
	p.SetMarkPolicy(MarkGeometry)
	return p
}

func (p *keyProbe) NewOfSameType() Widget { return newKeyProbe(p.name) }

func (p *keyProbe) HandleKey(ev *tcell.EventKey) bool {
	p.keys = append(p.keys, ev.Key())
	return ev.Key() != tcell.KeyTab && ev.Key() != tcell.KeyBacktab
}

func (p *keyProbe) HandleMouse(ev *tcell.EventMouse, local geom.Coord) bool {
	p.mouse = append(p.mouse, local)
	return true
}

// testSkin fills its canvas with one colour.
type testSkin struct {
	color gfx.Color
	pad   geom.Border
}

func (s *testSkin) Render(dev gfx.Device, canvas, clip geom.Rect, state State) {
	dev.ClipFill(clip, canvas, s.color)
}

func (s *testSkin) IsOpaque() bool { return s.color.IsOpaque() }

func (s *testSkin) IsOpaqueIn(rect geom.Rect, canvas geom.Size, state State) bool {
	return s.color.IsOpaque()
}

func (s *testSkin) MarkTest(ofs geom.Coord, canvas geom.Size, state State) bool {
	return s.color.A > 0
}

func (s *testSkin) ContentPadding() geom.Border { return s.pad }
func (s *testSkin) PreferredSize() geom.Size    { return s.pad.Size() }

// fakeTracer keeps every recorded frame in memory.
type fakeTracer struct {
	frames  []int
	patches [][]geom.Rect
	ops     int
}

func (f *fakeTracer) RecordFrame(index int, patches []geom.Rect, ops []logdev.Op) error {
	f.frames = append(f.frames, index)
	f.patches = append(f.patches, append([]geom.Rect(nil), patches...))
	f.ops += len(ops)
	return nil
}
