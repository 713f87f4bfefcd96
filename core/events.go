// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/events.go
// Summary: Input capability interfaces and the root's outgoing event queue.

package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/geom"
)

// MouseAware widgets consume mouse events. local is the pointer position
// relative to the widget's origin.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse, local geom.Coord) bool
}

// KeyAware widgets consume key events while focused.
type KeyAware interface {
	HandleKey(ev *tcell.EventKey) bool
}

// EventHandler receives notifications widgets post for the application,
// e.g. a button press. Events are opaque to the toolkit.
type EventHandler interface {
	Post(ev tcell.Event)
}

// EventQueue is an EventHandler buffering events until the driver loop
// drains them.
type EventQueue struct {
	events []tcell.Event
}

func (q *EventQueue) Post(ev tcell.Event) {
	if ev != nil {
		q.events = append(q.events, ev)
	}
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return len(q.events) }

// Drain returns and forgets the pending events in posting order.
func (q *EventQueue) Drain() []tcell.Event {
	out := q.events
	q.events = nil
	return out
}
