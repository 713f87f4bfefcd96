// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/container.go
// Summary: Container owns an ordered list of child hooks and implements patch
// collection, masking and the hierarchical render dispatch.
// Usage: Embedded by FlexPanel, PackPanel and custom containers.

package core

import (
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// ChildLayout is implemented by containers that place their children. The
// container calls it after the child list or a child's size preference
// changes.
type ChildLayout interface {
	OnChildAdded(h *Hook)
	OnChildRemoved(h *Hook)
	OnChildResizeRequested(h *Hook)
}

// Container is a widget with children. Paint order is hook order: later
// hooks paint on top.
type Container struct {
	WidgetBase
	hooks           []*Hook
	siblingsOverlap bool
	maskOp          MaskOp
}

// InitContainer binds the container to the widget embedding it.
func (c *Container) InitContainer(self Widget) {
	c.Init(self)
	c.siblingsOverlap = true
	c.maskOp = MaskRecurse
}

func (c *Container) SiblingsOverlap() bool { return c.siblingsOverlap }

// SetSiblingsOverlap declares whether children may cover one another. With
// overlap off, rendering skips the masking pass.
func (c *Container) SetSiblingsOverlap(overlap bool) {
	c.siblingsOverlap = overlap
}

func (c *Container) MaskOp() MaskOp { return c.maskOp }

func (c *Container) SetMaskOp(op MaskOp) { c.maskOp = op }

// Hooks returns the children in paint order. The slice is owned by the container.
func (c *Container) Hooks() []*Hook { return c.hooks }

// Len returns the number of children.
func (c *Container) Len() int { return len(c.hooks) }

func (c *Container) hookIndex(h *Hook) int {
	for i, hh := range c.hooks {
		if hh == h {
			return i
		}
	}
	return -1
}

func (c *Container) indexOf(w Widget) int {
	if w == nil {
		return -1
	}
	h := w.Base().hook
	if h == nil || h.parent != hookParent(c) {
		return -1
	}
	return c.hookIndex(h)
}

// FirstHookWithGeo returns the bottom-most hook and its local geometry.
func (c *Container) FirstHookWithGeo() (*Hook, geom.Rect) {
	if len(c.hooks) == 0 {
		return nil, geom.Rect{}
	}
	return c.hooks[0], c.hooks[0].geo
}

// NextHookWithGeo returns the hook painted right above h.
func (c *Container) NextHookWithGeo(h *Hook) (*Hook, geom.Rect) {
	i := c.hookIndex(h)
	if i < 0 || i+1 >= len(c.hooks) {
		return nil, geom.Rect{}
	}
	return c.hooks[i+1], c.hooks[i+1].geo
}

// LastHookWithGeo returns the topmost hook and its local geometry.
func (c *Container) LastHookWithGeo() (*Hook, geom.Rect) {
	if len(c.hooks) == 0 {
		return nil, geom.Rect{}
	}
	h := c.hooks[len(c.hooks)-1]
	return h, h.geo
}

// PrevHookWithGeo returns the hook painted right below h.
func (c *Container) PrevHookWithGeo(h *Hook) (*Hook, geom.Rect) {
	i := c.hookIndex(h)
	if i <= 0 {
		return nil, geom.Rect{}
	}
	return c.hooks[i-1], c.hooks[i-1].geo
}

// AddWidget appends w on top of the existing children and takes ownership.
// It panics if w already has a parent.
func (c *Container) AddWidget(w Widget) *Hook {
	return c.InsertWidget(w, len(c.hooks))
}

// InsertWidget places w at index idx in paint order.
func (c *Container) InsertWidget(w Widget, idx int) *Hook {
	if idx < 0 || idx > len(c.hooks) {
		idx = len(c.hooks)
	}
	h := newHook(c)
	h.attachWidget(w)
	c.hooks = append(c.hooks, nil)
	copy(c.hooks[idx+1:], c.hooks[idx:])
	c.hooks[idx] = h
	if l, ok := c.this().(ChildLayout); ok {
		l.OnChildAdded(h)
	}
	c.requestRenderHook(h)
	return h
}

// RemoveWidget removes w and drops it. It returns false if w is not a child.
func (c *Container) RemoveWidget(w Widget) bool {
	return c.ReleaseWidget(w) != nil
}

// ReleaseWidget removes w and hands ownership back to the caller.
func (c *Container) ReleaseWidget(w Widget) Widget {
	i := c.indexOf(w)
	if i < 0 {
		return nil
	}
	h := c.hooks[i]
	if root := c.Root(); root != nil {
		root.widgetDetaching(w)
	}
	c.requestRenderHook(h)
	c.hooks = append(c.hooks[:i], c.hooks[i+1:]...)
	if l, ok := c.this().(ChildLayout); ok {
		l.OnChildRemoved(h)
	}
	return h.releaseWidget()
}

// Clear removes every child.
func (c *Container) Clear() {
	for len(c.hooks) > 0 {
		c.ReleaseWidget(c.hooks[len(c.hooks)-1].widget)
	}
}

// MoveToFront makes w paint above all its siblings.
func (c *Container) MoveToFront(w Widget) bool {
	return c.move(w, len(c.hooks)-1)
}

// MoveToBack makes w paint below all its siblings.
func (c *Container) MoveToBack(w Widget) bool {
	return c.move(w, 0)
}

// MoveAbove places w right above sibling.
func (c *Container) MoveAbove(w, sibling Widget) bool {
	i, j := c.indexOf(w), c.indexOf(sibling)
	if i < 0 || j < 0 || i == j {
		return false
	}
	if i > j {
		return c.move(w, j+1)
	}
	return c.move(w, j)
}

// MoveBelow places w right below sibling.
func (c *Container) MoveBelow(w, sibling Widget) bool {
	i, j := c.indexOf(w), c.indexOf(sibling)
	if i < 0 || j < 0 || i == j {
		return false
	}
	if i < j {
		return c.move(w, j-1)
	}
	return c.move(w, j)
}

func (c *Container) move(w Widget, to int) bool {
	from := c.indexOf(w)
	if from < 0 {
		return false
	}
	if from == to {
		return true
	}
	h := c.hooks[from]
	if from < to {
		copy(c.hooks[from:to], c.hooks[from+1:to+1])
	} else {
		copy(c.hooks[to+1:from+1], c.hooks[to:from])
	}
	c.hooks[to] = h
	if c.siblingsOverlap {
		c.requestRenderHook(h)
	}
	return true
}

// SetChildGeo moves or resizes a child, repainting both old and new areas.
func (c *Container) SetChildGeo(h *Hook, geo geom.Rect) {
	if h == nil || h.parent != hookParent(c) || h.geo == geo {
		return
	}
	c.requestRenderHook(h)
	h.setGeo(geo)
	c.requestRenderHook(h)
}

func (c *Container) requestRenderHook(h *Hook) {
	if !h.visible || h.geo.IsEmpty() {
		return
	}
	c.RequestRenderRect(h.geo)
}

// FindWidget returns the topmost descendant whose mark test hits ofs, a
// container-local pixel offset.
func (c *Container) FindWidget(ofs geom.Coord) Widget {
	for i := len(c.hooks) - 1; i >= 0; i-- {
		h := c.hooks[i]
		if !h.visible || !h.geo.Contains(ofs) {
			continue
		}
		local := ofs.Sub(h.geo.Pos())
		if f, ok := h.widget.(interface{ FindWidget(geom.Coord) Widget }); ok {
			if found := f.FindWidget(local); found != nil {
				return found
			}
		}
		if h.widget.Base().MarkTest(local) {
			return h.widget
		}
	}
	return nil
}

// RenderPatches clips the incoming patches to the container, paints its own
// background, then dispatches to the children whose geometry meets the dirt.
// With overlapping siblings, children are first masked topmost-first so
// lower children never repaint area an opaque sibling above will cover.
func (c *Container) RenderPatches(dev gfx.Device, canvas, window geom.Rect, patches *geom.Patches) {
	bounds := canvas.Intersect(window)
	if bounds.IsEmpty() {
		return
	}
	local := geom.NewPatches(patches.Len())
	local.PushClipped(patches, bounds)
	if local.IsEmpty() {
		return
	}

	self := c.this()
	for _, r := range local.Rects() {
		self.OnRender(dev, canvas, window, r)
	}

	dirt := local.Union()

	if !c.siblingsOverlap {
		child := geom.NewPatches(local.Len())
		for _, h := range c.hooks {
			if !h.visible {
				continue
			}
			geo := h.geo.Offset(canvas.Pos())
			if !geo.Intersects(dirt) {
				continue
			}
			child.Clear()
			child.PushClipped(local, geo)
			if !child.IsEmpty() {
				h.widget.RenderPatches(dev, geo, geo.Intersect(window), child)
			}
		}
		return
	}

	type renderContext struct {
		widget  Widget
		geo     geom.Rect
		window  geom.Rect
		patches *geom.Patches
	}
	list := make([]renderContext, 0, len(c.hooks))
	for _, h := range c.hooks {
		if !h.visible {
			continue
		}
		geo := h.geo.Offset(canvas.Pos())
		win := geo.Intersect(window)
		if !win.Intersects(dirt) {
			continue
		}
		list = append(list, renderContext{widget: h.widget, geo: geo, window: win})
	}

	// A translucent tint lets lower siblings show through every pixel.
	blend := dev.BlendMode()
	masking := dev.TintColor().A == 255
	for i := len(list) - 1; i >= 0; i-- {
		if local.IsEmpty() {
			break
		}
		rc := &list[i]
		rc.patches = geom.NewPatches(local.Len())
		rc.patches.PushClipped(local, rc.window)
		if rc.patches.IsEmpty() || !masking {
			continue
		}
		rc.widget.OnMaskPatches(local, rc.geo, rc.window, blend)
	}

	for _, rc := range list {
		if rc.patches == nil || rc.patches.IsEmpty() {
			continue
		}
		rc.widget.RenderPatches(dev, rc.geo, rc.window, rc.patches)
	}
}

// OnCollectPatches reports the area a full repaint of the subtree would
// touch. A skinned container paints its whole geometry, so that is enough.
func (c *Container) OnCollectPatches(out *geom.Patches, geo, clip geom.Rect) {
	if c.skin != nil {
		out.Add(geo.Intersect(clip))
		return
	}
	clip = clip.Intersect(geo)
	if clip.IsEmpty() {
		return
	}
	for h, g := c.FirstHookWithGeo(); h != nil; h, g = c.NextHookWithGeo(h) {
		if !h.visible {
			continue
		}
		cg := g.Offset(geo.Pos())
		if cg.Intersects(clip) {
			h.widget.OnCollectPatches(out, cg, clip)
		}
	}
}

// OnMaskPatches subtracts the area the container guarantees to cover. An
// opaque skin covers everything; otherwise MaskOp decides.
func (c *Container) OnMaskPatches(patches *geom.Patches, geo, clip geom.Rect, blend gfx.BlendMode) {
	if c.skin != nil && c.skin.IsOpaque() && (blend == gfx.BlendReplace || blend == gfx.BlendBlend) {
		patches.Sub(geo.Intersect(clip))
		return
	}
	switch c.maskOp {
	case MaskRecurse:
		clip = clip.Intersect(geo)
		if clip.IsEmpty() {
			return
		}
		for h, g := c.LastHookWithGeo(); h != nil; h, g = c.PrevHookWithGeo(h) {
			if patches.IsEmpty() {
				return
			}
			if !h.visible {
				continue
			}
			cg := g.Offset(geo.Pos())
			if cg.Intersects(clip) {
				h.widget.OnMaskPatches(patches, cg, clip, blend)
			}
		}
	case MaskSkip:
	case MaskOpaque:
		patches.Sub(geo.Intersect(clip))
	}
}

// OnAlphaTest hits when the skin or any visible child has a pixel at ofs.
func (c *Container) OnAlphaTest(ofs geom.Coord) bool {
	if c.WidgetBase.OnAlphaTest(ofs) {
		return true
	}
	return c.FindWidget(ofs) != nil
}

// PreferredSize is the bounding box of the visible children plus skin padding.
func (c *Container) PreferredSize() geom.Size {
	var bounds geom.Rect
	for _, h := range c.hooks {
		if h.visible {
			bounds = bounds.Union(geom.RectAt(geom.Coord{}, h.geo.Size()).Offset(h.geo.Pos()))
		}
	}
	sz := geom.Size{W: bounds.Right(), H: bounds.Bottom()}
	if c.skin != nil {
		pad := c.skin.ContentPadding().Size()
		sz.W += pad.W
		sz.H += pad.H
	}
	return sz
}

// OnCloneContent copies the container's dispatch settings. Children are not
// cloned.
func (c *Container) OnCloneContent(src Widget) {
	if sc, ok := src.(interface{ containerBase() *Container }); ok {
		s := sc.containerBase()
		c.siblingsOverlap = s.siblingsOverlap
		c.maskOp = s.maskOp
	}
}

func (c *Container) containerBase() *Container { return c }

func (c *Container) childRequestRender(h *Hook, rect geom.Rect) {
	if !h.visible {
		return
	}
	r := rect.Offset(h.geo.Pos()).Intersect(h.geo)
	if r.IsEmpty() {
		return
	}
	c.RequestRenderRect(r)
}

func (c *Container) childRequestResize(h *Hook) {
	if l, ok := c.this().(ChildLayout); ok {
		l.OnChildResizeRequested(h)
	}
}

func (c *Container) childRequestFocus(h *Hook, w Widget) bool {
	if c.hook == nil {
		return false
	}
	return c.hook.parent.childRequestFocus(c.hook, w)
}

func (c *Container) childReleaseFocus(h *Hook, w Widget) bool {
	if c.hook == nil {
		return false
	}
	return c.hook.parent.childReleaseFocus(c.hook, w)
}

func (c *Container) parentRoot() *RootPanel {
	if c.hook == nil {
		return nil
	}
	return c.hook.Root()
}

func (c *Container) parentScale() int {
	if c.hook == nil {
		return geom.ScaleBase
	}
	return c.hook.Scale()
}

func (c *Container) parentScreenPos() geom.Coord {
	if c.hook == nil {
		return geom.Coord{}
	}
	return c.hook.ScreenPixelPos()
}

func (c *Container) parentContainer() *Container { return c }
