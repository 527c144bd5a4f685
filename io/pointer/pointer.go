// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements pointer events and operations.
A pointer is either a mouse controlled cursor or a touch
object such as a finger.

Events carry the set of contacts active on the surface at
the time of the event, keyed by pointer ID, with positions
relative to the top left corner of the surface.
*/
package pointer

import (
	"strings"

	"golang.org/x/exp/slices"

	"ctrlio.org/f32"
	"ctrlio.org/io/event"
)

// Event is a pointer event.
type Event struct {
	Type   Type
	Source Source
	// Pointers holds the contacts active at the time of the event.
	// For a mouse Release it is empty; for a touch Release it holds
	// the contacts still touching the surface.
	Pointers map[ID]Contact
	// Raw is the platform event the Event was derived from.
	Raw event.Event
	// Target is the surface that received the event.
	Target event.Tag
}

// Contact is a single active pointer.
type Contact struct {
	// ID is stable for the lifetime of the contact. Mouse contacts
	// always use MouseID.
	ID ID
	// Position is relative to the top left corner of the surface,
	// accounting for the viewport scroll offset.
	Position f32.Point
}

// ID identifies a contact. Touch contacts use the identifier
// assigned by the platform.
type ID int

// Type of an Event.
type Type uint8

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

// MouseID is the ID of the single contact reported by mouse
// sources. Platforms never assign negative touch identifiers.
const MouseID ID = -1

const (
	// Press of a pointer.
	Press Type = iota
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

// IDs returns the IDs of the active contacts in ascending order.
func (e Event) IDs() []ID {
	ids := make([]ID, 0, len(e.Pointers))
	for id := range e.Pointers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (t Type) String() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Move:
		return "Move"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
