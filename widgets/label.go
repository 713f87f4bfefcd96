// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/label.go
// Summary: Single-line text widget.

package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Align positions text inside its line.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label prints one line of text on devices that implement gfx.TextPrinter.
// One pixel is one terminal cell; wide runes take two.
type Label struct {
	core.WidgetBase
	text  string
	color gfx.Color
	align Align
}

func NewLabel(text string, c gfx.Color) *Label {
	l := &Label{text: text, color: c}
	l.Init(l)
	l.SetMarkPolicy(core.MarkGeometry)
	return l
}

func (l *Label) NewOfSameType() core.Widget { return NewLabel("", l.color) }

func (l *Label) OnCloneContent(src core.Widget) {
	if s, ok := src.(*Label); ok {
		l.text, l.color, l.align = s.text, s.color, s.align
	}
}

func (l *Label) Text() string { return l.text }

// SetText replaces the text; a width change asks the parent for a new layout.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	resize := runewidth.StringWidth(text) != runewidth.StringWidth(l.text)
	l.text = text
	if resize {
		l.RequestResize()
	}
	l.RequestRender()
}

func (l *Label) SetColor(c gfx.Color) {
	if c == l.color {
		return
	}
	l.color = c
	l.RequestRender()
}

func (l *Label) SetAlign(a Align) {
	if a == l.align {
		return
	}
	l.align = a
	l.RequestRender()
}

func (l *Label) padding() geom.Border {
	if s := l.Skin(); s != nil {
		return s.ContentPadding()
	}
	return geom.Border{}
}

func (l *Label) PreferredSize() geom.Size {
	pad := l.padding().Size()
	return geom.Size{W: runewidth.StringWidth(l.text) + pad.W, H: 1 + pad.H}
}

// line returns the visible text and its x offset for a content width.
func (l *Label) line(width int) (string, int) {
	text := l.text
	w := runewidth.StringWidth(text)
	if w > width {
		text = runewidth.Truncate(text, width, "…")
		w = runewidth.StringWidth(text)
	}
	switch l.align {
	case AlignCenter:
		return text, (width - w) / 2
	case AlignRight:
		return text, width - w
	}
	return text, 0
}

func (l *Label) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	l.WidgetBase.OnRender(dev, canvas, window, clip)
	tp, ok := dev.(gfx.TextPrinter)
	if !ok || l.text == "" || l.color.A == 0 {
		return
	}
	content := canvas.Shrink(l.padding())
	if content.IsEmpty() {
		return
	}
	text, dx := l.line(content.W)
	tp.ClipPrint(clip.Intersect(content), geom.Coord{X: content.X + dx, Y: content.Y}, text, l.color)
}
