// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Process-wide store for the system config and named skin styles.
// Usage: pal := config.Style("mocha"); scale := config.System().GetFloat("render", "scale", 1)

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "texelkit.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// store holds the loaded system config and every style requested so far.
// Styles are loaded on first use and kept until Reload.
type store struct {
	mu      sync.Mutex
	loaded  bool
	system  Config
	styles  map[string]Config
	loadErr error
}

var global = &store{}

// lock returns the store locked and initialised.
func (s *store) lock() *store {
	s.mu.Lock()
	if !s.loaded {
		s.loaded = true
		s.styles = make(map[string]Config)
		s.loadErr = s.loadSystemLocked()
	}
	return s
}

func (s *store) unlock() { s.mu.Unlock() }

// styleLocked returns the cached style, loading it when first asked for.
func (s *store) styleLocked(name string) Config {
	if cfg, ok := s.styles[name]; ok {
		return cfg
	}
	cfg, err := loadStyle(name)
	if err != nil {
		log.Printf("Config: Failed to load style %q: %v", name, err)
		cfg = make(Config)
		applyStyleDefaults(cfg)
	}
	s.styles[name] = cfg
	return cfg
}

// Err returns the most recent system config load error.
func Err() error {
	s := global.lock()
	defer s.unlock()
	return s.loadErr
}

// System returns the system configuration (texelkit.json).
func System() Config {
	s := global.lock()
	defer s.unlock()
	return s.system
}

// Style returns the named skin style (styles/<name>.json). An invalid name
// yields the built-in style defaults without touching the disk.
func Style(name string) Config {
	if !validStyleName(name) {
		log.Printf("Config: Ignoring invalid style name %q", name)
		cfg := make(Config)
		applyStyleDefaults(cfg)
		return cfg
	}
	s := global.lock()
	defer s.unlock()
	return s.styleLocked(name)
}

// Reload re-reads the system config and every style loaded so far. Styles
// that fail to reload keep their previous values.
func Reload() error {
	s := global.lock()
	defer s.unlock()
	s.loadErr = s.loadSystemLocked()
	for name := range s.styles {
		cfg, err := loadStyle(name)
		if err != nil {
			log.Printf("Config: Failed to reload style %q: %v", name, err)
			continue
		}
		s.styles[name] = cfg
	}
	return s.loadErr
}

// ReloadSystem re-reads only the system config.
func ReloadSystem() error {
	s := global.lock()
	defer s.unlock()
	s.loadErr = s.loadSystemLocked()
	return s.loadErr
}

// ReloadStyle re-reads one style from disk.
func ReloadStyle(name string) error {
	if !validStyleName(name) {
		return ErrStyleName
	}
	cfg, err := loadStyle(name)
	if err != nil {
		return err
	}
	s := global.lock()
	defer s.unlock()
	s.styles[name] = cfg
	return nil
}

// SaveSystem writes the in-memory system config to disk.
func SaveSystem() error {
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	s := global.lock()
	defer s.unlock()
	return writeConfig(path, s.system)
}

// SaveStyle writes a style to disk, loading it first if it was never used.
func SaveStyle(name string) error {
	path, err := styleConfigPath(name)
	if err != nil {
		return err
	}
	s := global.lock()
	defer s.unlock()
	return writeConfig(path, s.styleLocked(name))
}

// SetSystem replaces the in-memory system config with a copy of cfg.
func SetSystem(cfg Config) {
	s := global.lock()
	defer s.unlock()
	s.system = Clone(cfg)
	if s.system == nil {
		s.system = make(Config)
	}
}

// SetStyle replaces the in-memory style with a copy of cfg. Invalid names
// are ignored.
func SetStyle(name string, cfg Config) {
	if !validStyleName(name) {
		return
	}
	s := global.lock()
	defer s.unlock()
	c := Clone(cfg)
	if c == nil {
		c = make(Config)
	}
	s.styles[name] = c
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0644)
}
