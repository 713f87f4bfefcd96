// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: skins/palette.go
// Summary: Colour parsing and the named palette loaded from a style config.
// Usage: pal := skins.PaletteFrom(config.Style("mocha")); pal.Get("panel", gfx.Black)

package skins

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/gfx"
)

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (gfx.Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return gfx.Color{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return gfx.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return gfx.Color{R: r, G: g, B: b, A: alpha}, nil
}

// Palette maps colour names to colours.
type Palette map[string]gfx.Color

// PaletteFrom parses the "colors" section of a style. Unparsable entries are
// logged and skipped.
func PaletteFrom(cfg config.Config) Palette {
	pal := make(Palette)
	for name, raw := range cfg.Section("colors") {
		s, ok := raw.(string)
		if !ok {
			log.Printf("Skins: Colour %q is not a string", name)
			continue
		}
		c, err := ParseColor(s)
		if err != nil {
			log.Printf("Skins: %v", err)
			continue
		}
		pal[name] = c
	}
	return pal
}

// Get returns the named colour or def.
func (p Palette) Get(name string, def gfx.Color) gfx.Color {
	if c, ok := p[name]; ok {
		return c
	}
	return def
}

// Lighten mixes c towards white by t in [0,1], in Lab space.
func Lighten(c gfx.Color, t float64) gfx.Color {
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	out := src.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
	r, g, b := out.RGB255()
	return gfx.Color{R: r, G: g, B: b, A: c.A}
}
