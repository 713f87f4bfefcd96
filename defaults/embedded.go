// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration files.

package defaults

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed texelkit.json styles/*.json
var fs embed.FS

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("texelkit.json")
}

// StyleConfig returns the embedded JSON of the named skin style.
func StyleConfig(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("style name is required")
	}
	return fs.ReadFile(fmt.Sprintf("styles/%s.json", name))
}

// StyleNames lists the embedded styles.
func StyleNames() []string {
	entries, err := fs.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return names
}
