// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and seed logic for the config store.

package config

import "log"

func (s *store) loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		s.system = make(Config)
		applySystemDefaults(s.system)
		return err
	}
	cfg, err := loadOrSeed(path, defaultSystemConfig)
	applySystemDefaults(cfg)
	s.system = cfg
	return err
}

// loadStyle reads a style file. It holds no store state, so callers may run
// it without the store lock.
func loadStyle(name string) (Config, error) {
	path, err := styleConfigPath(name)
	if err != nil {
		return nil, err
	}
	cfg, err := loadOrSeed(path, func() Config { return defaultStyleConfig(name) })
	applyStyleDefaults(cfg)
	return cfg, err
}

// loadOrSeed reads path, seeding it from the embedded defaults when the file
// is missing or empty. The returned config is never nil.
func loadOrSeed(path string, seed func() Config) (Config, error) {
	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read %s: %v", path, readErr)
		cfg = make(Config)
	}

	if readErr == nil && len(cfg) == 0 {
		if def := seed(); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				log.Printf("Config: Failed to write default config %s: %v", path, err)
				readErr = err
			}
		} else if cfg == nil {
			cfg = make(Config)
		}
	}

	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return cfg, readErr
}
