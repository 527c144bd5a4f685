// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux

package evdev

import (
	"ctrlio.org/input"
	"ctrlio.org/io/system"
)

// Observer reports the panel size of observed devices. A device's
// size never changes, so each Observe produces a single notification,
// delivered on the device's Run goroutine.
type Observer struct {
	fn       func([]system.ResizeEvent)
	observed map[*Device]bool
	closed   bool
}

var _ input.Observer = (*Observer)(nil)

func NewObserver() *Observer {
	return &Observer{observed: make(map[*Device]bool)}
}

func (o *Observer) Bind(fn func([]system.ResizeEvent)) {
	o.fn = fn
}

func (o *Observer) Observe(s input.Surface) {
	d, ok := s.(*Device)
	if !ok || o.closed {
		return
	}
	o.observed[d] = true
	d.post(func() {
		if o.observed[d] && o.fn != nil {
			o.fn([]system.ResizeEvent{{Target: d, ContentRect: d.contentRect()}})
		}
	})
}

func (o *Observer) Unobserve(s input.Surface) {
	if d, ok := s.(*Device); ok {
		delete(o.observed, d)
	}
}

func (o *Observer) Disconnect() {
	o.closed = true
	o.observed = make(map[*Device]bool)
}
