// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/codeview.go
// Summary: Scrollable, syntax-highlighted source viewer.
// Usage: NewCodeView("main.go", src, "catppuccin-mocha"); the language is
// detected from the file name and content.

package widgets

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

const (
	defaultCodeStyle = "catppuccin-mocha"
	tabWidth         = 4
	wheelStep        = 3
)

type codeSpan struct {
	text  string
	color gfx.Color
	width int
}

type codeLine struct {
	spans []codeSpan
	width int
}

// CodeView shows highlighted source one line per pixel row. It paints its
// whole area, so it is opaque whenever the style background is.
type CodeView struct {
	core.WidgetBase
	filename string
	source   string
	language string
	style    *chroma.Style
	bg, fg   gfx.Color
	lines    []codeLine
	top      int
}

func NewCodeView(filename, source, styleName string) *CodeView {
	cv := &CodeView{filename: filename, source: source}
	cv.Init(cv)
	cv.SetMarkPolicy(core.MarkGeometry)
	cv.applyStyle(styleName)
	cv.highlight()
	return cv
}

func (cv *CodeView) NewOfSameType() core.Widget { return NewCodeView("", "", "") }

func (cv *CodeView) OnCloneContent(src core.Widget) {
	if s, ok := src.(*CodeView); ok {
		cv.filename, cv.source = s.filename, s.source
		cv.style, cv.bg, cv.fg = s.style, s.bg, s.fg
		cv.highlight()
	}
}

// DetectLanguage names the language of a file, "" when unknown.
func DetectLanguage(filename string, source []byte) string {
	return enry.GetLanguage(filename, source)
}

func (cv *CodeView) Language() string { return cv.language }
func (cv *CodeView) LineCount() int   { return len(cv.lines) }
func (cv *CodeView) Scroll() int      { return cv.top }

// SetSource replaces the shown file and scrolls back to the top.
func (cv *CodeView) SetSource(filename, source string) {
	cv.filename, cv.source = filename, source
	cv.top = 0
	cv.highlight()
	cv.RequestResize()
	cv.RequestRender()
}

// SetStyle switches the chroma style; unknown names fall back to chroma's default.
func (cv *CodeView) SetStyle(name string) {
	cv.applyStyle(name)
	cv.highlight()
	cv.RequestRender()
}

func (cv *CodeView) applyStyle(name string) {
	if name == "" {
		name = defaultCodeStyle
	}
	cv.style = styles.Get(name)
	cv.bg, cv.fg = gfx.Black, gfx.White
	if e := cv.style.Get(chroma.Background); e.Background.IsSet() {
		cv.bg = fromChroma(e.Background)
	}
	if e := cv.style.Get(chroma.Text); e.Colour.IsSet() {
		cv.fg = fromChroma(e.Colour)
	}
}

func fromChroma(c chroma.Colour) gfx.Color {
	return gfx.RGB(c.Red(), c.Green(), c.Blue())
}

func (cv *CodeView) lexer() chroma.Lexer {
	if cv.language != "" {
		if l := lexers.Get(cv.language); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(cv.source); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlight tokenises the source into coloured spans per line.
func (cv *CodeView) highlight() {
	cv.language = ""
	if cv.filename != "" || cv.source != "" {
		cv.language = DetectLanguage(cv.filename, []byte(cv.source))
	}
	cv.lines = cv.lines[:0]
	if cv.source == "" {
		return
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(cv.lexer()), nil, cv.source)
	if err != nil {
		tokens = []chroma.Token{{Type: chroma.Text, Value: cv.source}}
	}

	cur := codeLine{}
	col := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		color := cv.fg
		if e := cv.style.Get(tok.Type); e.Colour.IsSet() {
			color = fromChroma(e.Colour)
		}
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				cv.lines = append(cv.lines, cur)
				cur = codeLine{}
				col = 0
			}
			if part == "" {
				continue
			}
			text := expandTabs(part, col)
			w := runewidth.StringWidth(text)
			cur.spans = append(cur.spans, codeSpan{text: text, color: color, width: w})
			cur.width += w
			col += w
		}
	}
	if len(cur.spans) > 0 {
		cv.lines = append(cv.lines, cur)
	}
}

func expandTabs(s string, col int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

func (cv *CodeView) padding() geom.Border {
	if s := cv.Skin(); s != nil {
		return s.ContentPadding()
	}
	return geom.Border{}
}

// IsOpaque holds when the style background fills every pixel the skin
// leaves uncovered. A translucent skin with padding leaves its band to
// whatever lies below.
func (cv *CodeView) IsOpaque() bool {
	if s := cv.Skin(); s != nil {
		if s.IsOpaque() {
			return true
		}
		if cv.padding() != (geom.Border{}) {
			return false
		}
	}
	return cv.bg.IsOpaque()
}

// OnMaskPatches hides the whole view when opaque, otherwise just the content
// area the background fills.
func (cv *CodeView) OnMaskPatches(patches *geom.Patches, geo, clip geom.Rect, blend gfx.BlendMode) {
	if blend != gfx.BlendReplace && blend != gfx.BlendBlend {
		return
	}
	switch {
	case cv.IsOpaque():
		patches.Sub(geo.Intersect(clip))
	case cv.bg.IsOpaque():
		patches.Sub(geo.Shrink(cv.padding()).Intersect(clip))
	}
}

func (cv *CodeView) PreferredSize() geom.Size {
	w := 0
	for _, l := range cv.lines {
		w = max(w, l.width)
	}
	pad := cv.padding().Size()
	return geom.Size{W: w + pad.W, H: len(cv.lines) + pad.H}
}

func (cv *CodeView) visibleRows() int {
	return max(cv.Size().H-cv.padding().Height(), 0)
}

// SetScroll makes line top the first visible one, clamped to the content.
func (cv *CodeView) SetScroll(top int) {
	top = min(top, len(cv.lines)-cv.visibleRows())
	top = max(top, 0)
	if top == cv.top {
		return
	}
	cv.top = top
	cv.RequestRender()
}

func (cv *CodeView) OnNewSize(sz geom.Size) { cv.SetScroll(cv.top) }

func (cv *CodeView) HandleKey(ev *tcell.EventKey) bool {
	page := max(cv.visibleRows()-1, 1)
	switch ev.Key() {
	case tcell.KeyUp:
		cv.SetScroll(cv.top - 1)
	case tcell.KeyDown:
		cv.SetScroll(cv.top + 1)
	case tcell.KeyPgUp:
		cv.SetScroll(cv.top - page)
	case tcell.KeyPgDn:
		cv.SetScroll(cv.top + page)
	case tcell.KeyHome:
		cv.SetScroll(0)
	case tcell.KeyEnd:
		cv.SetScroll(len(cv.lines))
	default:
		return false
	}
	return true
}

func (cv *CodeView) HandleMouse(ev *tcell.EventMouse, local geom.Coord) bool {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		cv.SetScroll(cv.top - wheelStep)
	case ev.Buttons()&tcell.WheelDown != 0:
		cv.SetScroll(cv.top + wheelStep)
	default:
		return false
	}
	return true
}

func (cv *CodeView) OnRender(dev gfx.Device, canvas, window, clip geom.Rect) {
	cv.WidgetBase.OnRender(dev, canvas, window, clip)
	content := canvas.Shrink(cv.padding())
	area := clip.Intersect(content)
	if area.IsEmpty() {
		return
	}
	if cv.bg.A > 0 {
		dev.ClipFill(area, content, cv.bg)
	}
	tp, ok := dev.(gfx.TextPrinter)
	if !ok {
		return
	}
	for y := area.Y; y < area.Bottom(); y++ {
		idx := cv.top + y - content.Y
		if idx < 0 || idx >= len(cv.lines) {
			continue
		}
		x := content.X
		for _, sp := range cv.lines[idx].spans {
			if x >= area.Right() {
				break
			}
			if x+sp.width > area.X {
				tp.ClipPrint(area, geom.Coord{X: x, Y: y}, sp.text, sp.color)
			}
			x += sp.width
		}
	}
}
