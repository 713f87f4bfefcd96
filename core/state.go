// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/state.go
// Summary: Widget state flags and the policy enums used by hit-testing and masking.

package core

import "strings"

// State is a set of widget state flags.
type State uint8

const (
	StateDisabled State = 1 << iota
	StateFocused
	StateHovered
	StatePressed
	StateSelected
)

// StateNormal is the zero state: enabled, unfocused, idle.
const StateNormal State = 0

func (s State) Has(f State) bool { return s&f != 0 }

func (s State) String() string {
	if s == StateNormal {
		return "normal"
	}
	var parts []string
	for _, f := range []struct {
		flag State
		name string
	}{
		{StateDisabled, "disabled"},
		{StateFocused, "focused"},
		{StateHovered, "hovered"},
		{StatePressed, "pressed"},
		{StateSelected, "selected"},
	} {
		if s.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// MarkPolicy decides how MarkTest answers for a point inside the widget.
type MarkPolicy uint8

const (
	// MarkAlpha delegates to OnAlphaTest, e.g. sampling pixel transparency.
	MarkAlpha MarkPolicy = iota
	// MarkOpaque always hits.
	MarkOpaque
	// MarkTransparent never hits.
	MarkTransparent
	// MarkGeometry hits anywhere inside the widget's rectangle.
	MarkGeometry
)

// MaskOp controls what a container reports about its own opacity when an
// ancestor masks patches against it.
type MaskOp uint8

const (
	// MaskRecurse lets each visible child subtract its own opaque area.
	MaskRecurse MaskOp = iota
	// MaskSkip claims no opacity at all.
	MaskSkip
	// MaskOpaque subtracts the container's whole geometry without asking
	// the children.
	MaskOpaque
)

func (m MaskOp) String() string {
	switch m {
	case MaskRecurse:
		return "recurse"
	case MaskSkip:
		return "skip"
	case MaskOpaque:
		return "mask"
	}
	return "unknown"
}
