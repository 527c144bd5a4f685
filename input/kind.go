// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
	"ctrlio.org/io/system"
)

// Kind is one of the event kinds an Input can deliver.
type Kind uint8

const (
	// MouseDown is a mouse button press.
	MouseDown Kind = iota
	// MouseUp is a mouse button release.
	MouseUp
	// MouseMove is a change of the mouse position.
	MouseMove
	// TouchStart is a new contact on the surface.
	TouchStart
	// TouchEnd is the removal of a contact.
	TouchEnd
	// TouchMove is a change of a contact position.
	TouchMove
	// Resize is delivered as a system.ResizeEvent; every other kind
	// is delivered as a pointer.Event.
	Resize

	numKinds
)

var kindNames = [numKinds]string{
	MouseDown:  "mousedown",
	MouseUp:    "mouseup",
	MouseMove:  "mousemove",
	TouchStart: "touchstart",
	TouchEnd:   "touchend",
	TouchMove:  "touchmove",
	Resize:     "resize",
}

var resizeKind = event.NewKind[system.ResizeEvent](Resize.String())

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, numKinds)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// IsPointer reports whether k is delivered as a pointer.Event.
func (k Kind) IsPointer() bool {
	return k < Resize
}

// Source returns the pointer source of k. It is only meaningful for
// pointer kinds.
func (k Kind) Source() pointer.Source {
	switch k {
	case TouchStart, TouchEnd, TouchMove:
		return pointer.Touch
	default:
		return pointer.Mouse
	}
}

// Type returns the pointer event type of k. It is only meaningful
// for pointer kinds.
func (k Kind) Type() pointer.Type {
	switch k {
	case MouseDown, TouchStart:
		return pointer.Press
	case MouseUp, TouchEnd:
		return pointer.Release
	default:
		return pointer.Move
	}
}

func (k Kind) pointerKind() event.Kind[pointer.Event] {
	return event.NewKind[pointer.Event](k.String())
}
