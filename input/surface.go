// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"time"

	"ctrlio.org/f32"
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
	"ctrlio.org/io/system"
)

type (
	// Surface is an externally owned element whose pointer input is
	// observed. Implementations must be comparable, typically by
	// being pointers.
	Surface interface {
		// Bounds returns the surface rectangle relative to the
		// viewport.
		Bounds() f32.Rectangle
		// Listen attaches fn as the platform listener for the
		// pointer kind k and returns the function that detaches it.
		// fn receives a MouseEvent for mouse kinds and a TouchEvent
		// for touch kinds.
		Listen(k Kind, fn func(event.Event)) (remove func())
	}

	// Observer reports size changes of the surfaces it observes.
	// The Input owning an Observer binds its resize handler once,
	// at construction.
	Observer interface {
		Bind(fn func(batch []system.ResizeEvent))
		Observe(s Surface)
		Unobserve(s Surface)
		Disconnect()
	}

	// Viewport reports the scroll offset of the page containing the
	// surface at the moment of an event.
	Viewport interface {
		Scroll() f32.Point
	}

	// ViewportFunc adapts a function to the Viewport interface.
	ViewportFunc func() f32.Point

	// FixedScroll is a Viewport with a constant scroll offset.
	FixedScroll f32.Point

	// MouseEvent is the raw event delivered by a single pointer
	// device.
	MouseEvent struct {
		// Page is the pointer position relative to the page.
		Page    f32.Point
		Buttons pointer.Buttons
		// Time is relative to an undefined base.
		Time time.Duration
		// Native is the platform event, if any.
		Native any
	}

	// TouchEvent is the raw event delivered by a multi-touch
	// device.
	TouchEvent struct {
		// Touches lists every contact currently on the surface,
		// not only the ones that changed.
		Touches []Touch
		Time    time.Duration
		Native  any
	}

	// Touch is one contact of a TouchEvent.
	Touch struct {
		Identifier int
		Page       f32.Point
	}

	nopObserver struct{}
)

// NoScroll is the Viewport of an unscrolled page.
var NoScroll Viewport = FixedScroll{}

func (f ViewportFunc) Scroll() f32.Point {
	return f()
}

func (s FixedScroll) Scroll() f32.Point {
	return f32.Point(s)
}

func (MouseEvent) ImplementsEvent() {}

func (TouchEvent) ImplementsEvent() {}

func (nopObserver) Bind(func([]system.ResizeEvent)) {}
func (nopObserver) Observe(Surface)                 {}
func (nopObserver) Unobserve(Surface)               {}
func (nopObserver) Disconnect()                     {}
