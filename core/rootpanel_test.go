// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
)

func TestRenderClearsDirt(t *testing.T) {
	root, dev := newTestRoot(30, 30)
	if root.Render() {
		t.Fatalf("an empty root has nothing to render")
	}
	p := newProbe("p", gfx.Black, true)
	root.SetChild(p)
	if !root.IsDirty() {
		t.Fatalf("SetChild must dirty the root")
	}
	if !root.Render() {
		t.Fatalf("expected a frame")
	}
	if root.IsDirty() || root.Render() {
		t.Fatalf("dirt not cleared by Render")
	}
	ops := dev.Ops()
	if ops[0].Kind != logdev.OpBeginRender || ops[len(ops)-1].Kind != logdev.OpEndRender {
		t.Fatalf("frame not bracketed: %v", ops)
	}
	if root.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", root.Frame())
	}
	if got := p.clips(); len(got) != 1 || got[0] != geom.NewRect(0, 0, 30, 30) {
		t.Fatalf("expected one full clip, got %v", got)
	}
}

func TestRootGeoOffsetsDevicePositions(t *testing.T) {
	root, _ := newTestRoot(50, 50)
	root.SetGeo(geom.NewRect(10, 20, 20, 20))
	c := NewFlexPanel()
	root.SetChild(c)
	p := newProbe("p", gfx.Black, true)
	c.AddChild(p, geom.NewRect(2, 3, 4, 4))
	root.Render()
	p.reset()

	p.RequestRender()
	root.Render()
	if got := p.clips(); len(got) != 1 || got[0] != geom.NewRect(12, 23, 4, 4) {
		t.Fatalf("expected device clip (12,23,4,4), got %v", got)
	}
}

func TestRefreshNotifierIsNonBlocking(t *testing.T) {
	root, _ := newTestRoot(10, 10)
	ch := make(chan bool, 1)
	root.SetRefreshNotifier(ch)
	root.RequestRender()
	root.RequestRenderRect(geom.NewRect(1, 1, 2, 2))
	select {
	case <-ch:
	default:
		t.Fatalf("expected a refresh poke")
	}
	root.RequestRenderRect(geom.NewRect(50, 50, 2, 2))
	select {
	case <-ch:
		t.Fatalf("out-of-bounds request must not poke")
	default:
	}
}

func TestFocusFollowsGrabAndRemoval(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	c := NewFlexPanel()
	root.SetChild(c)
	a := newKeyProbe("a")
	b := newKeyProbe("b")
	c.AddChild(a, geom.NewRect(0, 0, 10, 10))
	c.AddChild(b, geom.NewRect(20, 0, 10, 10))

	if !a.GrabFocus() || root.Focused() != Widget(a) || !a.IsFocused() {
		t.Fatalf("a should hold focus")
	}
	if !b.GrabFocus() || a.IsFocused() || !b.IsFocused() {
		t.Fatalf("focus should move to b")
	}
	if a.ReleaseFocus() {
		t.Fatalf("releasing focus a widget does not hold must fail")
	}
	b.SetEnabled(false)
	if root.Focused() != nil || b.IsFocused() {
		t.Fatalf("disabling must drop focus")
	}
	if b.GrabFocus() {
		t.Fatalf("disabled widget took focus")
	}

	a.GrabFocus()
	c.RemoveWidget(a)
	if root.Focused() != nil || a.IsFocused() {
		t.Fatalf("removed widget kept focus")
	}
}

func TestReleaseChildDropsFocus(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	c := NewFlexPanel()
	root.SetChild(c)
	k := newKeyProbe("k")
	c.AddWidget(k)
	k.GrabFocus()

	if got := root.ReleaseChild(); got != Widget(c) {
		t.Fatalf("ReleaseChild returned %v", got)
	}
	if root.Focused() != nil || root.Child() != nil {
		t.Fatalf("root kept state of a released tree")
	}
	if c.Root() != nil {
		t.Fatalf("released tree still reaches the root")
	}
}

func TestCycleFocus(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	c := NewPackPanel(true)
	root.SetChild(c)
	a := newKeyProbe("a")
	plain := newProbe("plain", gfx.Black, false)
	b := newKeyProbe("b")
	d := newKeyProbe("d")
	c.AddWidget(a)
	c.AddWidget(plain)
	c.AddWidget(b)
	c.AddWidget(d)
	d.SetEnabled(false)

	tab := tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)
	back := tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone)
	want := []Widget{a, b, a}
	for i, w := range want {
		if !root.HandleEvent(tab) {
			t.Fatalf("tab %d not handled", i)
		}
		if root.Focused() != w {
			t.Fatalf("tab %d: focus on %v", i, root.Focused())
		}
	}
	root.HandleEvent(back)
	if root.Focused() != Widget(b) {
		t.Fatalf("backtab should wrap to b")
	}
}

func TestKeyEventsGoToFocusedWidget(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	c := NewFlexPanel()
	root.SetChild(c)
	a := newKeyProbe("a")
	b := newKeyProbe("b")
	c.AddChild(a, geom.NewRect(0, 0, 10, 10))
	c.AddChild(b, geom.NewRect(20, 0, 10, 10))

	key := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	if root.HandleEvent(key) {
		t.Fatalf("key without focus must not be consumed")
	}
	b.GrabFocus()
	if !root.HandleEvent(key) {
		t.Fatalf("focused widget did not consume the key")
	}
	if len(a.keys) != 0 || len(b.keys) != 1 || b.keys[0] != tcell.KeyRune {
		t.Fatalf("keys went astray: a=%v b=%v", a.keys, b.keys)
	}
}

func TestMouseClickFocusesAndCaptures(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	root.SetGeo(geom.NewRect(2, 2, 38, 38))
	c := NewFlexPanel()
	root.SetChild(c)
	a := newKeyProbe("a")
	b := newKeyProbe("b")
	c.AddChild(a, geom.NewRect(0, 0, 10, 10))
	c.AddChild(b, geom.NewRect(5, 5, 10, 10))

	if !root.HandleEvent(tcell.NewEventMouse(9, 9, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("press on b not handled")
	}
	if root.Focused() != Widget(b) {
		t.Fatalf("click should focus the topmost widget")
	}
	if len(b.mouse) != 1 || b.mouse[0] != (geom.Coord{X: 2, Y: 2}) {
		t.Fatalf("expected local (2,2), got %v", b.mouse)
	}

	// Dragging outside keeps going to b until release.
	root.HandleEvent(tcell.NewEventMouse(30, 30, tcell.Button1, tcell.ModNone))
	root.HandleEvent(tcell.NewEventMouse(30, 30, tcell.ButtonNone, tcell.ModNone))
	if len(b.mouse) != 3 || b.mouse[1] != (geom.Coord{X: 23, Y: 23}) {
		t.Fatalf("capture lost: %v", b.mouse)
	}
	if root.HandleEvent(tcell.NewEventMouse(30, 30, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatalf("motion over empty space must not be consumed")
	}

	root.HandleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	if root.Focused() != Widget(a) || len(a.mouse) != 1 {
		t.Fatalf("press on a should focus it")
	}
}

func TestResizeEventResizesTree(t *testing.T) {
	root, _ := newTestRoot(40, 40)
	p := newProbe("p", gfx.Black, true)
	root.SetChild(p)
	root.Render()

	if !root.HandleEvent(tcell.NewEventResize(25, 15)) {
		t.Fatalf("resize not handled")
	}
	if p.Size() != (geom.Size{W: 25, H: 15}) {
		t.Fatalf("child size %v", p.Size())
	}
	if root.Dirty().Area() != 25*15 {
		t.Fatalf("expected full repaint after resize, got %v", root.Dirty().Rects())
	}
}

func TestDebugPatchesOutlineAndHeal(t *testing.T) {
	root, dev := newTestRoot(30, 30)
	c := NewFlexPanel()
	c.SetSkin(&testSkin{color: gfx.RGB(1, 1, 1)})
	root.SetChild(c)
	root.Render()
	root.SetDebugPatches(true)
	root.Render()
	dev.Reset()

	c.RequestRenderRect(geom.NewRect(5, 5, 10, 10))
	root.Render()
	outlines := dev.Filter(func(op logdev.Op) bool {
		return op.Kind == logdev.OpClipFill && op.Color == root.Toolkit().DebugColor
	})
	if len(outlines) != 4 {
		t.Fatalf("expected 4 outline edges, got %d", len(outlines))
	}
	if !root.IsDirty() {
		t.Fatalf("outline must be scheduled for repair")
	}

	dev.Reset()
	root.Render()
	if n := len(dev.Filter(func(op logdev.Op) bool { return op.Color == root.Toolkit().DebugColor })); n != 0 {
		t.Fatalf("repair frame drew %d outlines", n)
	}
	if root.IsDirty() {
		t.Fatalf("repair frame must settle")
	}
}

func TestTracerReceivesFrames(t *testing.T) {
	tr := &fakeTracer{}
	dev := logdev.New(geom.Size{W: 20, H: 20})
	root := NewRootPanel(NewToolkit(WithTracer(tr)), dev)
	p := newProbe("p", gfx.Black, true)
	root.SetChild(p)
	root.Render()
	p.RequestRenderRect(geom.NewRect(1, 1, 2, 2))
	root.Render()

	if len(tr.frames) != 2 || tr.frames[1] != 2 {
		t.Fatalf("unexpected frames %v", tr.frames)
	}
	if got := tr.patches[1]; len(got) != 1 || got[0] != geom.NewRect(1, 1, 2, 2) {
		t.Fatalf("unexpected patches %v", got)
	}
	if tr.ops == 0 {
		t.Fatalf("no device ops traced")
	}
}

func TestToolkitFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{
		"render": map[string]interface{}{
			"scale":         1.5,
			"debug_patches": true,
			"debug_color":   "not-a-color",
		},
	}
	tk := NewToolkit(WithLogger(log.New(&buf, "", 0)), WithConfig(cfg))
	if tk.Scale != geom.ScaleBase*3/2 {
		t.Fatalf("scale %d", tk.Scale)
	}
	if !tk.DebugPatches {
		t.Fatalf("debug_patches not applied")
	}
	if tk.DebugColor != gfx.RGB(255, 0, 255) {
		t.Fatalf("invalid colour must keep the default, got %v", tk.DebugColor)
	}
	if !strings.Contains(buf.String(), "Toolkit: Invalid debug_color") {
		t.Fatalf("expected a log line, got %q", buf.String())
	}

	cfg["render"].(map[string]interface{})["debug_color"] = "#00ff00"
	tk = NewToolkit(WithConfig(cfg))
	if tk.DebugColor != gfx.RGB(0, 255, 0) {
		t.Fatalf("debug colour %v", tk.DebugColor)
	}
	if err := tk.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
