// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: skins/statecolors.go
// Summary: A colour with optional per-state overrides.

package skins

import (
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/gfx"
)

// statePriority lists the states that may override the base colour, most
// specific first.
var statePriority = []core.State{
	core.StateDisabled,
	core.StatePressed,
	core.StateFocused,
	core.StateHovered,
	core.StateSelected,
}

// StateColors resolves the colour for a widget state.
type StateColors struct {
	Base      gfx.Color
	overrides map[core.State]gfx.Color
}

func NewStateColors(base gfx.Color) StateColors {
	return StateColors{Base: base}
}

// Set overrides the colour used while flag is set.
func (s *StateColors) Set(flag core.State, c gfx.Color) {
	if s.overrides == nil {
		s.overrides = make(map[core.State]gfx.Color)
	}
	s.overrides[flag] = c
}

// Get returns the override of the highest-priority flag in state, or Base.
func (s StateColors) Get(state core.State) gfx.Color {
	for _, f := range statePriority {
		if !state.Has(f) {
			continue
		}
		if c, ok := s.overrides[f]; ok {
			return c
		}
	}
	return s.Base
}

// AllOpaque reports whether every reachable colour has full alpha.
func (s StateColors) AllOpaque() bool {
	if !s.Base.IsOpaque() {
		return false
	}
	for _, c := range s.overrides {
		if !c.IsOpaque() {
			return false
		}
	}
	return true
}

func (s StateColors) clone() StateColors {
	out := StateColors{Base: s.Base}
	for f, c := range s.overrides {
		out.Set(f, c)
	}
	return out
}
