// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/rootpanel.go
// Summary: RootPanel connects a widget tree to a device, accumulates dirt and
// flushes it, and routes input events.
// Usage: NewRootPanel(tk, dev), SetChild(tree), then call Render() whenever
// the refresh notifier fires and HandleEvent() for each terminal event.

package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
)

// RootPanel is the top of a widget tree. It is not a widget itself. Its
// geometry is in device pixels; the single child fills it.
type RootPanel struct {
	tk       *Toolkit
	dev      gfx.Device
	geo      geom.Rect
	scale    int
	hook     *Hook
	dirty    *geom.Patches
	stale    *geom.Patches
	focused  Widget
	capture  Widget
	handler  EventHandler
	notifier chan<- bool
	debug    bool
	frame    int
}

// NewRootPanel binds a root to dev, covering the whole canvas. A nil tk uses
// NewToolkit defaults.
func NewRootPanel(tk *Toolkit, dev gfx.Device) *RootPanel {
	if dev == nil {
		panic("texelkit: root panel needs a device")
	}
	if tk == nil {
		tk = NewToolkit()
	}
	return &RootPanel{
		tk:    tk,
		dev:   dev,
		geo:   geom.RectAt(geom.Coord{}, dev.CanvasSize()),
		scale: tk.Scale,
		dirty: geom.NewPatches(8),
		stale: geom.NewPatches(8),
		debug: tk.DebugPatches,
	}
}

func (r *RootPanel) Toolkit() *Toolkit    { return r.tk }
func (r *RootPanel) Device() gfx.Device   { return r.dev }
func (r *RootPanel) Geo() geom.Rect       { return r.geo }
func (r *RootPanel) Scale() int           { return r.scale }
func (r *RootPanel) Frame() int           { return r.frame }
func (r *RootPanel) Focused() Widget      { return r.focused }
func (r *RootPanel) DebugPatches() bool   { return r.debug }
func (r *RootPanel) Dirty() *geom.Patches { return r.dirty }

// Child returns the widget tree, nil when empty.
func (r *RootPanel) Child() Widget {
	if r.hook == nil {
		return nil
	}
	return r.hook.widget
}

// SetChild replaces the widget tree. The previous child is dropped.
func (r *RootPanel) SetChild(w Widget) {
	r.ReleaseChild()
	if w == nil {
		return
	}
	h := newHook(r)
	h.attachWidget(w)
	r.hook = h
	h.setGeo(geom.RectAt(geom.Coord{}, r.geo.Size()))
	r.RequestRender()
}

// ReleaseChild detaches the widget tree and hands it back.
func (r *RootPanel) ReleaseChild() Widget {
	if r.hook == nil {
		return nil
	}
	w := r.hook.widget
	r.widgetDetaching(w)
	r.RequestRender()
	r.hook.releaseWidget()
	r.hook = nil
	return w
}

// SetGeo moves the root within the device canvas and repaints everything.
func (r *RootPanel) SetGeo(geo geom.Rect) {
	if geo == r.geo {
		return
	}
	r.geo = geo
	r.dirty.Clear()
	r.stale.Clear()
	if r.hook != nil {
		r.hook.setGeo(geom.RectAt(geom.Coord{}, geo.Size()))
	}
	r.RequestRender()
}

// SetScale changes the point-to-pixel factor of the whole tree.
func (r *RootPanel) SetScale(scale int) {
	if scale <= 0 {
		panic("texelkit: scale must be positive")
	}
	if scale == r.scale {
		return
	}
	r.scale = scale
	if r.hook != nil && r.hook.widget != nil {
		r.hook.widget.OnNewSize(r.hook.geo.Size())
	}
	r.RequestRender()
}

// SetDebugPatches outlines every flushed patch on the device.
func (r *RootPanel) SetDebugPatches(on bool) {
	if on == r.debug {
		return
	}
	r.debug = on
	r.RequestRender()
}

func (r *RootPanel) EventHandler() EventHandler     { return r.handler }
func (r *RootPanel) SetEventHandler(h EventHandler) { r.handler = h }

// SetRefreshNotifier registers a channel poked whenever new dirt arrives.
func (r *RootPanel) SetRefreshNotifier(ch chan<- bool) { r.notifier = ch }

func (r *RootPanel) notify() {
	if r.notifier == nil {
		return
	}
	select {
	case r.notifier <- true:
	default:
	}
}

// RequestRender marks the whole root dirty.
func (r *RootPanel) RequestRender() {
	r.RequestRenderRect(geom.RectAt(geom.Coord{}, r.geo.Size()))
}

// RequestRenderRect marks a root-local rect dirty.
func (r *RootPanel) RequestRenderRect(rect geom.Rect) {
	rect = rect.Intersect(geom.RectAt(geom.Coord{}, r.geo.Size()))
	if rect.IsEmpty() {
		return
	}
	r.dirty.Add(rect.Offset(r.geo.Pos()))
	r.notify()
}

// IsDirty reports whether Render has anything to do.
func (r *RootPanel) IsDirty() bool {
	return !r.dirty.IsEmpty() || !r.stale.IsEmpty()
}

// Render flushes the accumulated dirt to the device. It returns false when
// nothing was painted.
func (r *RootPanel) Render() bool {
	if !r.IsDirty() {
		return false
	}
	fresh := r.dirty.Clone()
	patches := r.dirty.Clone()
	patches.Push(r.stale)
	r.dirty.Clear()
	r.stale.Clear()

	dev := r.dev
	var rec *logdev.Device
	if r.tk.Tracer != nil {
		rec = logdev.Wrap(dev)
		dev = rec
	}
	if !dev.BeginRender() {
		r.tk.logger().Printf("RootPanel: BeginRender refused, keeping %d patches", patches.Len())
		r.dirty.Push(fresh)
		r.stale.Push(patches)
		return false
	}
	if r.hook != nil && r.hook.visible && r.hook.widget != nil {
		canvas := r.hook.geo.Offset(r.geo.Pos())
		r.hook.widget.RenderPatches(dev, canvas, canvas.Intersect(r.geo), patches)
	}
	if r.debug {
		r.outline(dev, fresh)
	}
	dev.EndRender()
	r.frame++

	if rec != nil {
		if err := r.tk.Tracer.RecordFrame(r.frame, patches.Rects(), rec.Ops()); err != nil {
			r.tk.logger().Printf("RootPanel: Trace frame %d: %v", r.frame, err)
		}
	}
	return true
}

// outline draws a one pixel frame around each fresh patch and remembers it
// so the next frame paints it over without outlining again.
func (r *RootPanel) outline(dev gfx.Device, fresh *geom.Patches) {
	old := dev.SetBlendMode(gfx.BlendReplace)
	for _, p := range fresh.Rects() {
		edges := [4]geom.Rect{
			geom.NewRect(p.X, p.Y, p.W, 1),
			geom.NewRect(p.X, p.Bottom()-1, p.W, 1),
			geom.NewRect(p.X, p.Y, 1, p.H),
			geom.NewRect(p.Right()-1, p.Y, 1, p.H),
		}
		for _, e := range edges {
			dev.ClipFill(r.geo, e, r.tk.DebugColor)
			r.stale.Add(e.Intersect(r.geo))
		}
	}
	dev.SetBlendMode(old)
}

func (r *RootPanel) setFocus(w Widget) {
	if w == r.focused {
		return
	}
	if old := r.focused; old != nil {
		r.focused = nil
		b := old.Base()
		b.setState(b.state &^ StateFocused)
	}
	if w != nil {
		r.focused = w
		b := w.Base()
		b.setState(b.state | StateFocused)
	}
}

// widgetDetaching drops focus and mouse capture held inside w's subtree.
func (r *RootPanel) widgetDetaching(w Widget) {
	if w == nil {
		return
	}
	if r.focused != nil && inSubtree(r.focused, w) {
		r.setFocus(nil)
	}
	if r.capture != nil && inSubtree(r.capture, w) {
		r.capture = nil
	}
}

// inSubtree reports whether w is top or one of its descendants.
func inSubtree(w, top Widget) bool {
	for w != nil {
		if w == top {
			return true
		}
		p := w.Base().Parent()
		if p == nil {
			return false
		}
		w = p.this()
	}
	return false
}

// WidgetAt returns the topmost widget whose mark test hits a device pixel.
func (r *RootPanel) WidgetAt(pos geom.Coord) Widget {
	if r.hook == nil || !r.hook.visible || r.hook.widget == nil {
		return nil
	}
	local := pos.Sub(r.geo.Pos())
	if !r.hook.geo.Contains(local) {
		return nil
	}
	ofs := local.Sub(r.hook.geo.Pos())
	w := r.hook.widget
	if f, ok := w.(interface{ FindWidget(geom.Coord) Widget }); ok {
		if found := f.FindWidget(ofs); found != nil {
			return found
		}
	}
	if w.Base().MarkTest(ofs) {
		return w
	}
	return nil
}

// HandleEvent routes a terminal event into the tree. It returns true when a
// widget consumed it.
func (r *RootPanel) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		r.SetGeo(geom.NewRect(r.geo.X, r.geo.Y, w-r.geo.X, h-r.geo.Y))
		return true
	case *tcell.EventMouse:
		return r.handleMouse(ev)
	case *tcell.EventKey:
		return r.handleKey(ev)
	}
	return false
}

func (r *RootPanel) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pos := geom.Coord{X: x, Y: y}
	buttons := ev.Buttons()
	wasDown := r.capture != nil
	nowDown := buttons&tcell.Button1 != 0

	// Capture on press so drags keep going to the same widget.
	if !wasDown && nowDown {
		w := r.WidgetAt(pos)
		if w == nil {
			return false
		}
		if w.Base().IsEnabled() {
			r.setFocus(w)
		}
		r.capture = w
		return r.sendMouse(w, ev, pos)
	}

	if r.capture != nil {
		w := r.capture
		if wasDown && !nowDown {
			r.capture = nil
		}
		r.sendMouse(w, ev, pos)
		return true
	}

	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := r.WidgetAt(pos); w != nil {
			return r.sendMouse(w, ev, pos)
		}
		return false
	}

	// Plain motion goes to whatever is under the pointer.
	if w := r.WidgetAt(pos); w != nil {
		return r.sendMouse(w, ev, pos)
	}
	return false
}

func (r *RootPanel) sendMouse(w Widget, ev *tcell.EventMouse, pos geom.Coord) bool {
	if !w.Base().IsEnabled() {
		return false
	}
	mw, ok := w.(MouseAware)
	if !ok {
		return false
	}
	h := w.Base().hook
	if h == nil {
		return false
	}
	return mw.HandleMouse(ev, pos.Sub(h.ScreenPixelPos()))
}

func (r *RootPanel) handleKey(ev *tcell.EventKey) bool {
	if r.focused != nil {
		if kw, ok := r.focused.(KeyAware); ok && kw.HandleKey(ev) {
			return true
		}
	}
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		return r.CycleFocus(forward)
	}
	return false
}

// CycleFocus moves focus to the next (or previous) visible, enabled
// KeyAware widget in paint order, wrapping around.
func (r *RootPanel) CycleFocus(forward bool) bool {
	var order []Widget
	if r.hook != nil && r.hook.visible && r.hook.widget != nil {
		order = collectFocusable(r.hook.widget, order)
	}
	if len(order) == 0 {
		return false
	}
	cur := -1
	for i, w := range order {
		if w == r.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(order) - 1
	case forward:
		next = (cur + 1) % len(order)
	default:
		next = (cur - 1 + len(order)) % len(order)
	}
	r.setFocus(order[next])
	return true
}

func collectFocusable(w Widget, out []Widget) []Widget {
	if !w.Base().IsEnabled() {
		return out
	}
	if _, ok := w.(KeyAware); ok {
		out = append(out, w)
	}
	if c, ok := w.(interface{ containerBase() *Container }); ok {
		for _, h := range c.containerBase().hooks {
			if h.visible && h.widget != nil {
				out = collectFocusable(h.widget, out)
			}
		}
	}
	return out
}

func (r *RootPanel) childRequestRender(h *Hook, rect geom.Rect) {
	if !h.visible {
		return
	}
	r.RequestRenderRect(rect.Offset(h.geo.Pos()).Intersect(h.geo))
}

// childRequestResize is a no-op: the child always fills the root.
func (r *RootPanel) childRequestResize(h *Hook) {}

func (r *RootPanel) childRequestFocus(h *Hook, w Widget) bool {
	if !w.Base().IsEnabled() {
		return false
	}
	r.setFocus(w)
	return true
}

func (r *RootPanel) childReleaseFocus(h *Hook, w Widget) bool {
	if r.focused != w {
		return false
	}
	r.setFocus(nil)
	return true
}

func (r *RootPanel) parentRoot() *RootPanel      { return r }
func (r *RootPanel) parentScale() int            { return r.scale }
func (r *RootPanel) parentScreenPos() geom.Coord { return r.geo.Pos() }
func (r *RootPanel) parentContainer() *Container { return nil }
