// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"ctrlio.org/f32"
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
)

// SurfacePosition converts a page position to a position relative to
// the top left corner of bounds, given the viewport scroll offset.
func SurfacePosition(page f32.Point, bounds f32.Rectangle, scroll f32.Point) f32.Point {
	return page.Sub(bounds.Min.Add(scroll))
}

// mouseContacts returns the single mouse contact of raw, or no
// contact at all for a release. Events that are not a MouseEvent
// are placed at the page origin.
func mouseContacts(k Kind, raw event.Event, bounds f32.Rectangle, scroll f32.Point) map[pointer.ID]pointer.Contact {
	contacts := make(map[pointer.ID]pointer.Contact, 1)
	if k.Type() == pointer.Release {
		return contacts
	}
	var page f32.Point
	switch e := raw.(type) {
	case MouseEvent:
		page = e.Page
	case *MouseEvent:
		if e != nil {
			page = e.Page
		}
	}
	contacts[pointer.MouseID] = pointer.Contact{
		ID:       pointer.MouseID,
		Position: SurfacePosition(page, bounds, scroll),
	}
	return contacts
}

// touchContacts returns one contact per touch still on the surface.
func touchContacts(raw event.Event, bounds f32.Rectangle, scroll f32.Point) map[pointer.ID]pointer.Contact {
	var touches []Touch
	switch e := raw.(type) {
	case TouchEvent:
		touches = e.Touches
	case *TouchEvent:
		if e != nil {
			touches = e.Touches
		}
	}
	contacts := make(map[pointer.ID]pointer.Contact, len(touches))
	for _, t := range touches {
		id := pointer.ID(t.Identifier)
		contacts[id] = pointer.Contact{
			ID:       id,
			Position: SurfacePosition(t.Page, bounds, scroll),
		}
	}
	return contacts
}
