// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"testing"
)

func TestTypedGetters(t *testing.T) {
	cfg := Config{
		"render": map[string]interface{}{
			"scale":     1.5,
			"int_scale": 2,
			"number":    json.Number("7"),
			"text":      "0.25",
			"flag":      "true",
			"num_flag":  0.0,
			"name":      "mocha",
		},
	}
	if got := cfg.GetFloat("render", "scale", 0); got != 1.5 {
		t.Fatalf("GetFloat %v", got)
	}
	if got := cfg.GetFloat("render", "text", 0); got != 0.25 {
		t.Fatalf("GetFloat from string %v", got)
	}
	if got := cfg.GetInt("render", "scale", 0); got != 1 {
		t.Fatalf("GetInt truncation %d", got)
	}
	if got := cfg.GetInt("render", "number", 0); got != 7 {
		t.Fatalf("GetInt json.Number %d", got)
	}
	if got := cfg.GetFloat("render", "int_scale", 0); got != 2 {
		t.Fatalf("GetFloat from int %v", got)
	}
	if !cfg.GetBool("render", "flag", false) || cfg.GetBool("render", "num_flag", true) {
		t.Fatalf("GetBool conversions wrong")
	}
	if got := cfg.GetString("render", "scale", "def"); got != "def" {
		t.Fatalf("non-string must fall back, got %q", got)
	}
	if got := cfg.GetString("missing", "name", "def"); got != "def" {
		t.Fatalf("missing section must fall back, got %q", got)
	}
	var nilCfg Config
	if nilCfg.GetInt("render", "scale", 3) != 3 {
		t.Fatalf("nil config must fall back")
	}
}

func TestRegisterDefaultsKeepsValues(t *testing.T) {
	cfg := Config{"render": map[string]interface{}{"scale": 2.0}}
	cfg.RegisterDefaults("render", Section{"scale": 1.0, "debug_patches": false})
	cfg.RegisterDefaults("demo", Section{"style": "mocha"})
	cfg.RegisterDefaults("", Section{"top": true})

	if cfg.GetFloat("render", "scale", 0) != 2 {
		t.Fatalf("existing key overwritten")
	}
	if _, ok := cfg.Section("render")["debug_patches"]; !ok {
		t.Fatalf("missing key not added")
	}
	if cfg.GetString("demo", "style", "") != "mocha" {
		t.Fatalf("new section not created")
	}
	if cfg["top"] != true {
		t.Fatalf("top-level default not added")
	}
}

func TestCloneCopiesSections(t *testing.T) {
	cfg := Config{"render": map[string]interface{}{"scale": 1.0}, "version": 2.0}
	out := Clone(cfg)
	out.Section("render")["scale"] = 3.0
	if cfg.GetFloat("render", "scale", 0) != 1 {
		t.Fatalf("clone aliases the original section")
	}
	if out["version"] != 2.0 {
		t.Fatalf("plain values not copied")
	}
	if Clone(nil) != nil {
		t.Fatalf("Clone(nil) must be nil")
	}
}
