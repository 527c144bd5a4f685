// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains events about the surface itself rather
// than the input it receives.
package system

import (
	"ctrlio.org/f32"
	"ctrlio.org/io/event"
)

// A ResizeEvent is generated when the rendered dimensions of a
// surface change. It is delivered exactly as the size observer
// reported it.
type ResizeEvent struct {
	// Target is the surface that was resized.
	Target event.Tag
	// ContentRect is the content box of the surface, relative to
	// its padding edge.
	ContentRect f32.Rectangle
}

// Size returns the dimensions of the content box.
func (e ResizeEvent) Size() f32.Point {
	return e.ContentRect.Size()
}

func (ResizeEvent) ImplementsEvent() {}
