// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and style configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("render", Section{
		"scale":            1.0,
		"debug_patches":    false,
		"debug_color":      "#ff00ff",
		"trace_db":         "",
		"siblings_overlap": true,
	})
	cfg.RegisterDefaults("demo", Section{
		"style":           "mocha",
		"headless_width":  80,
		"headless_height": 24,
	})
}

func applyStyleDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("colors", Section{
		"background":    "#1e1e2e",
		"panel":         "#313244",
		"panel_focused": "#45475a",
		"frame":         "#89b4fa",
		"text":          "#cdd6f4",
		"accent":        "#f38ba8",
		"disabled":      "#6c7086",
	})
	cfg.RegisterDefaults("code", Section{
		"chroma_style": "catppuccin-mocha",
	})
}
