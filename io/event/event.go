// SPDX-License-Identifier: Unlicense OR MIT

/*
Package event contains types for event handling.

A Hub dispatches payloads to subscribers by kind. Kinds are typed
keys: a Kind[P] can only be subscribed to with a func(P) error and
emitted with a P, while at runtime the hub dispatches on the kind's
name alone.

	var Clicked = event.NewKind[Click]("clicked")

	h := event.NewHub(nil, nil)
	sub := event.On(h, Clicked, func(c Click) error {
		...
	})
	event.Emit(h, Clicked, Click{})
	sub.Unsubscribe()

The owner of a hub learns about the first subscriber of a kind and
the removal of the last one through its Hook. That is how platform
listeners are attached only while somebody is listening.
*/
package event

// Tag is the stable identifier for an event target.
// For a target t, the tag is typically t itself.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
