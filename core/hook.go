// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/hook.go
// Summary: Hook binds one child widget to its parent and owns its placement.
// Usage: Created by Container.AddWidget/InsertWidget and RootPanel.SetChild.

package core

import "github.com/framegrace/texelkit/geom"

// hookParent is the parent side of a hook: a Container or a RootPanel.
type hookParent interface {
	childRequestRender(h *Hook, rect geom.Rect)
	childRequestResize(h *Hook)
	childRequestFocus(h *Hook, w Widget) bool
	childReleaseFocus(h *Hook, w Widget) bool
	parentRoot() *RootPanel
	parentScale() int
	parentScreenPos() geom.Coord
	parentContainer() *Container
}

// Hook is the attachment point of one widget inside its parent. The hook
// owns the widget: removing the hook drops the widget unless it is released
// first. Geometry is in pixels relative to the parent's origin.
type Hook struct {
	parent  hookParent
	widget  Widget
	geo     geom.Rect
	visible bool
	padding geom.Border
}

func newHook(parent hookParent) *Hook {
	return &Hook{parent: parent, visible: true}
}

func (h *Hook) attachWidget(w Widget) {
	if w == nil {
		panic("texelkit: cannot attach a nil widget")
	}
	b := w.Base()
	if b.self == nil {
		panic("texelkit: widget used before Init")
	}
	if b.hook != nil {
		panic("texelkit: widget already has a parent")
	}
	h.widget = w
	b.hook = h
	if ha, ok := w.(HookAware); ok {
		ha.OnNewHook(h)
	}
}

func (h *Hook) releaseWidget() Widget {
	w := h.widget
	if w != nil {
		w.Base().hook = nil
	}
	h.widget = nil
	return w
}

// setGeo moves or resizes the widget. The caller is responsible for
// requesting renders of the affected areas.
func (h *Hook) setGeo(geo geom.Rect) {
	if geo.W < 0 {
		geo.W = 0
	}
	if geo.H < 0 {
		geo.H = 0
	}
	resized := geo.Size() != h.geo.Size()
	h.geo = geo
	if resized && h.widget != nil {
		h.widget.Base().size = geo.Size()
		h.widget.OnNewSize(geo.Size())
	}
}

func (h *Hook) Widget() Widget { return h.widget }

// Parent returns the owning container, nil for the hook of a root panel.
func (h *Hook) Parent() *Container {
	if h.parent == nil {
		return nil
	}
	return h.parent.parentContainer()
}

// Root walks up to the root panel; nil when the chain is detached.
func (h *Hook) Root() *RootPanel {
	if h.parent == nil {
		return nil
	}
	return h.parent.parentRoot()
}

// EventHandler returns the root panel's handler, nil when detached or unset.
func (h *Hook) EventHandler() EventHandler {
	if root := h.Root(); root != nil {
		return root.EventHandler()
	}
	return nil
}

func (h *Hook) IsVisible() bool { return h.visible }

// SetVisible shows or hides the widget, repainting the area it covers.
func (h *Hook) SetVisible(visible bool) bool {
	if visible == h.visible {
		return true
	}
	if !visible {
		h.requestRenderSlot()
		h.visible = false
		if root := h.Root(); root != nil {
			root.widgetDetaching(h.widget)
		}
	} else {
		h.visible = true
		h.requestRenderSlot()
	}
	h.parent.childRequestResize(h)
	return true
}

// requestRenderSlot dirties the hook's whole geometry in the parent, even
// while hidden.
func (h *Hook) requestRenderSlot() {
	if h.parent == nil || h.geo.IsEmpty() {
		return
	}
	was := h.visible
	h.visible = true
	h.parent.childRequestRender(h, geom.RectAt(geom.Coord{}, h.geo.Size()))
	h.visible = was
}

func (h *Hook) Padding() geom.Border { return h.padding }

// SetPadding changes the space a layout container keeps around the widget.
func (h *Hook) SetPadding(b geom.Border) {
	if b == h.padding {
		return
	}
	h.padding = b
	h.parent.childRequestResize(h)
}

// Scale is the point-to-pixel factor inherited from the parent chain.
func (h *Hook) Scale() int {
	if h.parent == nil {
		return geom.ScaleBase
	}
	return h.parent.parentScale()
}

func (h *Hook) PixelPos() geom.Coord { return h.geo.Pos() }
func (h *Hook) PixelSize() geom.Size { return h.geo.Size() }
func (h *Hook) PixelGeo() geom.Rect  { return h.geo }

func (h *Hook) PointPos() geom.Coord { return geom.CoordToPoints(h.geo.Pos(), h.Scale()) }
func (h *Hook) PointGeo() geom.Rect  { return geom.RectToPoints(h.geo, h.Scale()) }

// ScreenPixelPos is the widget's origin in device pixels.
func (h *Hook) ScreenPixelPos() geom.Coord {
	if h.parent == nil {
		return h.geo.Pos()
	}
	return h.parent.parentScreenPos().Add(h.geo.Pos())
}

func (h *Hook) ScreenPixelGeo() geom.Rect {
	return geom.RectAt(h.ScreenPixelPos(), h.geo.Size())
}

func (h *Hook) ScreenPointPos() geom.Coord {
	return geom.CoordToPoints(h.ScreenPixelPos(), h.Scale())
}

func (h *Hook) ScreenPointGeo() geom.Rect {
	return geom.RectToPoints(h.ScreenPixelGeo(), h.Scale())
}

// RequestFocus bubbles a focus request up to the root panel. It returns
// false when the hook is not connected to a root.
func (h *Hook) RequestFocus() bool {
	if h.parent == nil || h.widget == nil {
		return false
	}
	return h.parent.childRequestFocus(h, h.widget)
}

// ReleaseFocus bubbles a focus release up to the root panel.
func (h *Hook) ReleaseFocus() bool {
	if h.parent == nil || h.widget == nil {
		return false
	}
	return h.parent.childReleaseFocus(h, h.widget)
}

// Prev returns the sibling painted just below this one.
func (h *Hook) Prev() *Hook {
	c := h.Parent()
	if c == nil {
		return nil
	}
	if i := c.hookIndex(h); i > 0 {
		return c.hooks[i-1]
	}
	return nil
}

// Next returns the sibling painted just above this one.
func (h *Hook) Next() *Hook {
	c := h.Parent()
	if c == nil {
		return nil
	}
	if i := c.hookIndex(h); i >= 0 && i+1 < len(c.hooks) {
		return c.hooks[i+1]
	}
	return nil
}
