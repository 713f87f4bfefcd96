// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from embedded JSON files.
// The embedded JSON files in defaults/ are the single source of truth.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/texelkit/defaults"
)

var (
	embeddedSystemOnce sync.Once
	embeddedSystem     Config
	embeddedSystemErr  error

	embeddedStyles   = make(map[string]Config)
	embeddedStylesMu sync.RWMutex
)

// embeddedSystemDefaults returns the parsed system defaults from embedded JSON.
// The result is cached after the first call.
func embeddedSystemDefaults() (Config, error) {
	embeddedSystemOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedSystemErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedSystemErr = err
			return
		}
		embeddedSystem = cfg
	})
	return embeddedSystem, embeddedSystemErr
}

// embeddedStyleDefaults returns the parsed style from embedded JSON, nil
// when no style of that name ships with the toolkit.
func embeddedStyleDefaults(name string) (Config, error) {
	embeddedStylesMu.RLock()
	if cfg, ok := embeddedStyles[name]; ok {
		embeddedStylesMu.RUnlock()
		return cfg, nil
	}
	embeddedStylesMu.RUnlock()

	data, err := defaults.StyleConfig(name)
	if err != nil {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	embeddedStylesMu.Lock()
	embeddedStyles[name] = cfg
	embeddedStylesMu.Unlock()

	return cfg, nil
}

// defaultSystemConfig returns a copy of the embedded system defaults.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil || cfg == nil {
		return nil
	}
	return Clone(cfg)
}

// defaultStyleConfig returns a copy of the embedded style.
func defaultStyleConfig(name string) Config {
	cfg, err := embeddedStyleDefaults(name)
	if err != nil || cfg == nil {
		return nil
	}
	return Clone(cfg)
}
