// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input turns the raw mouse, touch and resize events of a
single surface into one typed event stream.

Subscribers register per Kind. The platform listener behind a kind
is attached to the surface when the kind gains its first subscriber
and detached when it loses its last one, so an Input with no
subscribers holds no listeners at all:

	in := input.New(surface, observer, input.DefaultConfig())
	defer in.Dispose()

	sub := in.OnPointer(input.MouseDown, func(e pointer.Event) error {
		p := e.Pointers[pointer.MouseID].Position
		...
		return nil
	})
	...
	in.Off(sub)

Replacing the surface with SetSurface moves every attached listener
from the old surface to the new one.

An Input is not safe for concurrent use. Call it from the goroutine
that delivers the surface's events.
*/
package input
