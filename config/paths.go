// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelkit configuration.

package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framegrace/texelkit/defaults"
)

// ErrStyleName is returned for an empty or path-like style name.
var ErrStyleName = errors.New("config: invalid style name")

// DirEnv overrides the configuration directory when set.
const DirEnv = "TEXELKIT_CONFIG_DIR"

func configRoot() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelkit"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func validStyleName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func stylesDir() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "styles"), nil
}

func styleConfigPath(name string) (string, error) {
	if !validStyleName(name) {
		return "", ErrStyleName
	}
	dir, err := stylesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// AvailableStyles lists the style names shipped with the toolkit and those
// found in the user's styles directory, sorted and without duplicates.
func AvailableStyles() []string {
	seen := make(map[string]bool)
	for _, name := range defaults.StyleNames() {
		seen[name] = true
	}
	if dir, err := stylesDir(); err == nil {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			log.Printf("Config: Listing styles in %s: %v", dir, err)
		}
		for _, e := range entries {
			name, ok := strings.CutSuffix(e.Name(), ".json")
			if ok && !e.IsDir() && validStyleName(name) {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
