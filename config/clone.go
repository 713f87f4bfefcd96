// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Copies of config maps so callers never alias the store.

package config

// Clone copies the config and each of its sections. Values inside a section
// are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		if section := asSection(raw); section != nil {
			out[name] = cloneSection(section)
			continue
		}
		out[name] = raw
	}
	return out
}

func cloneSection(s Section) Section {
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
