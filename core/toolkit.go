// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/toolkit.go
// Summary: Explicit toolkit context shared by the root panels of one application.
// Usage: Created once at start-up, handed to NewRootPanel, closed at shutdown.

package core

import (
	"io"
	"log"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
)

// FrameTracer stores what each render pass flushed and the device calls it made.
type FrameTracer interface {
	RecordFrame(index int, patches []geom.Rect, ops []logdev.Op) error
}

// Toolkit holds settings and services that would otherwise be global.
type Toolkit struct {
	Logger       *log.Logger
	Scale        int
	DebugPatches bool
	DebugColor   gfx.Color
	Tracer       FrameTracer
}

// Option configures a Toolkit.
type Option func(*Toolkit)

func WithLogger(l *log.Logger) Option {
	return func(t *Toolkit) { t.Logger = l }
}

// WithScale sets the default point-to-pixel factor in ScaleBase units.
func WithScale(scale int) Option {
	return func(t *Toolkit) { t.Scale = scale }
}

func WithTracer(tr FrameTracer) Option {
	return func(t *Toolkit) { t.Tracer = tr }
}

// WithConfig applies the "render" section of a config.
func WithConfig(cfg config.Config) Option {
	return func(t *Toolkit) {
		if cfg == nil {
			return
		}
		if s := cfg.GetFloat("render", "scale", 0); s > 0 {
			t.Scale = int(s * geom.ScaleBase)
		}
		t.DebugPatches = cfg.GetBool("render", "debug_patches", t.DebugPatches)
		if hex := cfg.GetString("render", "debug_color", ""); hex != "" {
			c, err := colorful.Hex(hex)
			if err != nil {
				t.logger().Printf("Toolkit: Invalid debug_color %q: %v", hex, err)
			} else {
				r, g, b := c.RGB255()
				t.DebugColor = gfx.RGB(r, g, b)
			}
		}
	}
}

// NewToolkit builds a context with defaults overridden by opts.
func NewToolkit(opts ...Option) *Toolkit {
	t := &Toolkit{
		Logger:     log.Default(),
		Scale:      geom.ScaleBase,
		DebugColor: gfx.RGB(255, 0, 255),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.Scale <= 0 {
		t.Scale = geom.ScaleBase
	}
	return t
}

func (t *Toolkit) logger() *log.Logger {
	if t == nil || t.Logger == nil {
		return log.Default()
	}
	return t.Logger
}

// Close releases the tracer if it holds resources.
func (t *Toolkit) Close() error {
	if c, ok := t.Tracer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
