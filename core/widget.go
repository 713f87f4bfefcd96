// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/widget.go
// Summary: The widget contract and the embeddable WidgetBase with default behaviour.
// Usage: Concrete widgets embed WidgetBase (containers embed Container), call
// Init(self) from their constructor and override the On* methods they need.

package core

import (
	"math"
	"sync/atomic"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Widget is a node of the widget tree. All rects handed to the render, collect
// and mask methods are in device pixels.
type Widget interface {
	Base() *WidgetBase
	NewOfSameType() Widget

	// OnRender paints the widget strictly within clip, which lies inside
	// canvas ∩ window.
	OnRender(dev gfx.Device, canvas, window, clip geom.Rect)
	// RenderPatches paints the parts of patches that fall on the widget.
	RenderPatches(dev gfx.Device, canvas, window geom.Rect, patches *geom.Patches)
	// OnCollectPatches adds the area a full repaint of the widget at geo
	// would touch, limited to clip.
	OnCollectPatches(out *geom.Patches, geo, clip geom.Rect)
	// OnMaskPatches removes from patches the area the widget at geo is
	// guaranteed to cover opaquely with the given blend mode, limited to clip.
	OnMaskPatches(patches *geom.Patches, geo, clip geom.Rect, blend gfx.BlendMode)
	OnAlphaTest(ofs geom.Coord) bool
	OnCloneContent(src Widget)
	OnNewSize(sz geom.Size)
	OnStateChanged(old State)

	PreferredSize() geom.Size
	MinSize() geom.Size
	MaxSize() geom.Size
	HeightForWidth(w int) int
	WidthForHeight(h int) int
}

// HookAware widgets are told when they are attached to a hook.
type HookAware interface {
	OnNewHook(h *Hook)
}

var nextWidgetID atomic.Uint64

// WidgetBase carries the state shared by every widget.
type WidgetBase struct {
	self       Widget
	id         uint64
	hook       *Hook
	skin       Skin
	state      State
	opaque     bool
	markPolicy MarkPolicy
	size       geom.Size
}

// Init binds the base to the widget embedding it. Constructors must call it
// before the widget is used.
func (b *WidgetBase) Init(self Widget) {
	if self == nil || self.Base() != b {
		panic("texelkit: Init must be called with the widget embedding this base")
	}
	b.self = self
	b.id = nextWidgetID.Add(1)
	b.markPolicy = MarkAlpha
}

func (b *WidgetBase) this() Widget {
	if b.self == nil {
		panic("texelkit: widget used before Init")
	}
	return b.self
}

func (b *WidgetBase) Base() *WidgetBase { return b }

// ID is unique per process and stable for the widget's lifetime.
func (b *WidgetBase) ID() uint64 { return b.id }

// Hook returns the hook owning the widget, nil when detached.
func (b *WidgetBase) Hook() *Hook { return b.hook }

// Parent returns the owning container, nil when detached or hooked directly
// into a root panel.
func (b *WidgetBase) Parent() *Container {
	if b.hook == nil {
		return nil
	}
	return b.hook.Parent()
}

// Root returns the root panel the widget is connected to, if any.
func (b *WidgetBase) Root() *RootPanel {
	if b.hook == nil {
		return nil
	}
	return b.hook.Root()
}

// Size is the widget's current size in pixels.
func (b *WidgetBase) Size() geom.Size { return b.size }

func (b *WidgetBase) Skin() Skin { return b.skin }

// SetSkin replaces the skin and asks for a new layout and a repaint.
func (b *WidgetBase) SetSkin(s Skin) {
	if b.skin == s {
		return
	}
	b.skin = s
	b.RequestResize()
	b.RequestRender()
}

// IsOpaque reports whether the widget covers its whole area with opaque
// pixels right now. An opaque skin always qualifies.
func (b *WidgetBase) IsOpaque() bool {
	if b.skin != nil && b.skin.IsOpaque() {
		return true
	}
	return b.opaque
}

// SetOpaque sets the opacity hint for widgets that paint their whole area
// without a skin.
func (b *WidgetBase) SetOpaque(opaque bool) { b.opaque = opaque }

func (b *WidgetBase) State() State           { return b.state }
func (b *WidgetBase) IsEnabled() bool        { return !b.state.Has(StateDisabled) }
func (b *WidgetBase) IsFocused() bool        { return b.state.Has(StateFocused) }
func (b *WidgetBase) MarkPolicy() MarkPolicy { return b.markPolicy }

func (b *WidgetBase) SetMarkPolicy(p MarkPolicy) { b.markPolicy = p }

// SetEnabled enables or disables the widget. Disabling a focused widget
// releases its focus.
func (b *WidgetBase) SetEnabled(enabled bool) {
	if enabled == b.IsEnabled() {
		return
	}
	if !enabled && b.IsFocused() {
		b.ReleaseFocus()
	}
	if enabled {
		b.setState(b.state &^ StateDisabled)
	} else {
		b.setState(b.state | StateDisabled)
	}
}

// SetSelected toggles the selected flag.
func (b *WidgetBase) SetSelected(selected bool) {
	if selected {
		b.setState(b.state | StateSelected)
	} else {
		b.setState(b.state &^ StateSelected)
	}
}

func (b *WidgetBase) setState(s State) {
	if s == b.state {
		return
	}
	old := b.state
	b.state = s
	b.this().OnStateChanged(old)
	b.RequestRender()
}

// MarkTest hit-tests a pixel offset relative to the widget's origin.
func (b *WidgetBase) MarkTest(ofs geom.Coord) bool {
	if !geom.RectAt(geom.Coord{}, b.size).Contains(ofs) {
		return false
	}
	switch b.markPolicy {
	case MarkOpaque, MarkGeometry:
		return true
	case MarkTransparent:
		return false
	default:
		return b.this().OnAlphaTest(ofs)
	}
}

// RequestRender asks for the whole widget to be repainted.
func (b *WidgetBase) RequestRender() {
	b.RequestRenderRect(geom.RectAt(geom.Coord{}, b.size))
}

// RequestRenderRect asks for a widget-local rect to be repainted. It is a
// no-op while the widget is detached.
func (b *WidgetBase) RequestRenderRect(r geom.Rect) {
	if b.hook == nil {
		return
	}
	r = r.Intersect(geom.RectAt(geom.Coord{}, b.size))
	if r.IsEmpty() {
		return
	}
	b.hook.parent.childRequestRender(b.hook, r)
}

// RequestResize tells the parent the widget's preferred size may have changed.
func (b *WidgetBase) RequestResize() {
	if b.hook == nil {
		return
	}
	b.hook.parent.childRequestResize(b.hook)
}

// GrabFocus asks the root panel for keyboard focus. It fails when the
// widget is disabled or not connected to a root.
func (b *WidgetBase) GrabFocus() bool {
	if b.hook == nil || !b.IsEnabled() {
		return false
	}
	return b.hook.RequestFocus()
}

// ReleaseFocus gives keyboard focus back to the root panel.
func (b *WidgetBase) ReleaseFocus() bool {
	if b.hook == nil {
		return false
	}
	return b.hook.ReleaseFocus()
}

// EventHandler returns the handler of the root the widget is connected to.
func (b *WidgetBase) EventHandler() EventHandler {
	if b.hook == nil {
		return nil
	}
	return b.hook.EventHandler()
}

// OnRender paints the skin, if any.
func (b *WidgetBase) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	if b.skin != nil {
		b.skin.Render(dev, canvas, clip, b.state)
	}
}

// RenderPatches calls OnRender once per patch rect overlapping the widget.
func (b *WidgetBase) RenderPatches(dev gfx.Device, canvas, window geom.Rect, patches *geom.Patches) {
	bounds := canvas.Intersect(window)
	if bounds.IsEmpty() {
		return
	}
	self := b.this()
	for _, r := range patches.Rects() {
		if clip := r.Intersect(bounds); !clip.IsEmpty() {
			self.OnRender(dev, canvas, window, clip)
		}
	}
}

func (b *WidgetBase) OnCollectPatches(out *geom.Patches, geo, clip geom.Rect) {
	out.Add(geo.Intersect(clip))
}

// OnMaskPatches subtracts the widget's area when it is opaque and the blend
// mode lets opaque pixels hide the destination.
func (b *WidgetBase) OnMaskPatches(patches *geom.Patches, geo, clip geom.Rect, blend gfx.BlendMode) {
	if !b.IsOpaque() {
		return
	}
	if blend == gfx.BlendReplace || blend == gfx.BlendBlend {
		patches.Sub(geo.Intersect(clip))
	}
}

// OnAlphaTest defers to the skin; a widget without a skin has no pixels of
// its own.
func (b *WidgetBase) OnAlphaTest(ofs geom.Coord) bool {
	if b.skin == nil {
		return false
	}
	return b.skin.MarkTest(ofs, b.size, b.state)
}

func (b *WidgetBase) OnCloneContent(src Widget) {}
func (b *WidgetBase) OnNewSize(sz geom.Size)    {}
func (b *WidgetBase) OnStateChanged(old State)  {}

// PreferredSize falls back to the skin's preference.
func (b *WidgetBase) PreferredSize() geom.Size {
	if b.skin != nil {
		return b.skin.PreferredSize()
	}
	return geom.Size{}
}

func (b *WidgetBase) MinSize() geom.Size { return geom.Size{} }

func (b *WidgetBase) MaxSize() geom.Size {
	return geom.Size{W: math.MaxInt32, H: math.MaxInt32}
}

func (b *WidgetBase) HeightForWidth(w int) int { return b.this().PreferredSize().H }
func (b *WidgetBase) WidthForHeight(h int) int { return b.this().PreferredSize().W }

// Clone returns a detached copy of w: same type, skin, opacity hint, mark
// policy and enabled state, plus whatever OnCloneContent copies.
func Clone(w Widget) Widget {
	out := w.NewOfSameType()
	src, dst := w.Base(), out.Base()
	dst.skin = src.skin
	dst.opaque = src.opaque
	dst.markPolicy = src.markPolicy
	dst.state = src.state &^ (StateFocused | StateHovered | StatePressed)
	out.OnCloneContent(w)
	return out
}
