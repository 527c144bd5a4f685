// SPDX-License-Identifier: Unlicense OR MIT

// Package inputtest provides in-memory surfaces and observers for
// testing code built on package input.
package inputtest

import (
	"golang.org/x/exp/slices"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/event"
	"ctrlio.org/io/system"
)

type (
	// Surface is an input.Surface that records its listeners and
	// dispatches events to them on demand.
	Surface struct {
		Name string
		Rect f32.Rectangle

		listeners map[input.Kind][]*listener
		attaches  map[input.Kind]int
		detaches  map[input.Kind]int
	}

	// Observer is an input.Observer that delivers batches passed to
	// Notify for the surfaces it observes.
	Observer struct {
		fn          func([]system.ResizeEvent)
		observed    []input.Surface
		Disconnects int
	}

	listener struct {
		fn func(event.Event)
	}
)

var (
	_ input.Surface  = (*Surface)(nil)
	_ input.Observer = (*Observer)(nil)
)

// NewSurface returns a surface named name occupying rect.
func NewSurface(name string, rect f32.Rectangle) *Surface {
	return &Surface{
		Name:      name,
		Rect:      rect,
		listeners: make(map[input.Kind][]*listener),
		attaches:  make(map[input.Kind]int),
		detaches:  make(map[input.Kind]int),
	}
}

func (s *Surface) Bounds() f32.Rectangle {
	return s.Rect
}

func (s *Surface) Listen(k input.Kind, fn func(event.Event)) func() {
	l := &listener{fn: fn}
	s.listeners[k] = append(s.listeners[k], l)
	s.attaches[k]++
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		s.detaches[k]++
		ls := s.listeners[k]
		if i := slices.Index(ls, l); i >= 0 {
			s.listeners[k] = slices.Delete(ls, i, i+1)
		}
	}
}

// Listeners returns the number of listeners currently attached for k.
func (s *Surface) Listeners(k input.Kind) int {
	return len(s.listeners[k])
}

// Attached returns the kinds with at least one listener, in kind
// order.
func (s *Surface) Attached() []input.Kind {
	var ks []input.Kind
	for _, k := range input.Kinds() {
		if len(s.listeners[k]) > 0 {
			ks = append(ks, k)
		}
	}
	return ks
}

// Attaches returns how many times a listener for k was attached.
func (s *Surface) Attaches(k input.Kind) int {
	return s.attaches[k]
}

// Detaches returns how many times a listener for k was removed.
func (s *Surface) Detaches(k input.Kind) int {
	return s.detaches[k]
}

// Dispatch delivers raw to every listener attached for k and reports
// whether there was any.
func (s *Surface) Dispatch(k input.Kind, raw event.Event) bool {
	ls := slices.Clone(s.listeners[k])
	for _, l := range ls {
		l.fn(raw)
	}
	return len(ls) > 0
}

func (s *Surface) String() string {
	return s.Name
}

// NewObserver returns an observer observing nothing.
func NewObserver() *Observer {
	return new(Observer)
}

func (o *Observer) Bind(fn func([]system.ResizeEvent)) {
	o.fn = fn
}

func (o *Observer) Observe(s input.Surface) {
	if !o.Observing(s) {
		o.observed = append(o.observed, s)
	}
}

func (o *Observer) Unobserve(s input.Surface) {
	if i := slices.Index(o.observed, s); i >= 0 {
		o.observed = slices.Delete(o.observed, i, i+1)
	}
}

func (o *Observer) Disconnect() {
	o.observed = nil
	o.Disconnects++
}

// Observing reports whether s is observed.
func (o *Observer) Observing(s input.Surface) bool {
	return slices.Contains(o.observed, s)
}

// Notify delivers batch as a size change of s if s is observed and
// reports whether it was delivered.
func (o *Observer) Notify(s input.Surface, batch ...system.ResizeEvent) bool {
	if !o.Observing(s) || o.fn == nil {
		return false
	}
	o.fn(batch)
	return true
}
