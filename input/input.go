// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"fmt"

	"go.uber.org/zap"

	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
	"ctrlio.org/io/system"
)

// Input delivers the normalized events of one surface.
type Input struct {
	hub      *event.Hub
	surface  Surface
	observer Observer
	viewport Viewport
	log      *zap.Logger

	attached [numKinds]bool
	remove   [numKinds]func()
	disposed bool
}

// hook attaches and detaches the platform listener of one kind.
type hook struct {
	attach func(in *Input)
	detach func(in *Input)
}

var hooks = [numKinds]hook{
	MouseDown:  listener(MouseDown, (*Input).onMouse),
	MouseUp:    listener(MouseUp, (*Input).onMouse),
	MouseMove:  listener(MouseMove, (*Input).onMouse),
	TouchStart: listener(TouchStart, (*Input).onTouch),
	TouchEnd:   listener(TouchEnd, (*Input).onTouch),
	TouchMove:  listener(TouchMove, (*Input).onTouch),
	Resize: {
		attach: func(in *Input) { in.observer.Observe(in.surface) },
		detach: func(in *Input) { in.observer.Unobserve(in.surface) },
	},
}

// New returns an Input observing s. obs reports the size changes of
// s and is owned by the Input from now on; it may be nil if resize
// events are never needed.
func New(s Surface, obs Observer, cfg Config) *Input {
	cfg = cfg.withDefaults()
	if obs == nil {
		obs = nopObserver{}
	}
	in := &Input{
		surface:  s,
		observer: obs,
		viewport: cfg.Viewport,
		log:      cfg.Logger,
	}
	in.hub = event.NewHub(event.HookFuncs{
		OnActivate:   in.activate,
		OnDeactivate: in.deactivate,
	}, cfg.OnError)
	obs.Bind(in.onResize)
	return in
}

// OnPointer subscribes fn to the pointer kind k. It panics if k is
// Resize; use OnResize for size changes.
func (in *Input) OnPointer(k Kind, fn func(pointer.Event) error) *event.Subscription {
	if !k.IsPointer() {
		panic(fmt.Errorf("input: %v is not a pointer kind", k))
	}
	return event.On(in.hub, k.pointerKind(), fn)
}

// OnResize subscribes fn to size changes of the surface.
func (in *Input) OnResize(fn func(system.ResizeEvent) error) *event.Subscription {
	return event.On(in.hub, resizeKind, fn)
}

// Off removes a subscription made by OnPointer or OnResize. Removing
// a subscription twice is a no-op.
func (in *Input) Off(s *event.Subscription) {
	in.hub.Off(s)
}

// Surface returns the observed surface.
func (in *Input) Surface() Surface {
	return in.surface
}

// SetSurface replaces the observed surface. Every listener attached
// to the old surface is detached from it and attached to s before
// SetSurface returns.
func (in *Input) SetSurface(s Surface) {
	if s == in.surface {
		return
	}
	if in.disposed {
		in.surface = s
		return
	}
	active := in.activeKinds()
	for _, k := range active {
		in.detach(k)
	}
	in.surface = s
	for _, k := range active {
		in.attach(k)
	}
	in.log.Debug("surface replaced", zap.Stringers("kinds", active))
}

// Active returns the kinds whose platform listener is attached.
func (in *Input) Active() []Kind {
	var ks []Kind
	for k, ok := range in.attached {
		if ok {
			ks = append(ks, Kind(k))
		}
	}
	return ks
}

// Dispose detaches every platform listener and disconnects the size
// observer. Subscriptions stay registered but receive nothing more.
// Calling Dispose more than once is a no-op.
func (in *Input) Dispose() {
	if in.disposed {
		return
	}
	for k := range in.attached {
		in.detach(Kind(k))
	}
	in.observer.Disconnect()
	in.disposed = true
	in.log.Debug("input disposed")
}

// activeKinds returns the kinds with at least one subscriber.
func (in *Input) activeKinds() []Kind {
	var ks []Kind
	for _, name := range in.hub.Active() {
		if k, ok := ParseKind(name); ok {
			ks = append(ks, k)
		}
	}
	return ks
}

func (in *Input) activate(name string) {
	if k, ok := ParseKind(name); ok && !in.disposed {
		in.attach(k)
	}
}

func (in *Input) deactivate(name string) {
	if k, ok := ParseKind(name); ok {
		in.detach(k)
	}
}

func (in *Input) attach(k Kind) {
	if in.attached[k] {
		return
	}
	hooks[k].attach(in)
	in.attached[k] = true
	in.log.Debug("listener attached", zap.Stringer("kind", k))
}

func (in *Input) detach(k Kind) {
	if !in.attached[k] {
		return
	}
	hooks[k].detach(in)
	in.attached[k] = false
	in.log.Debug("listener detached", zap.Stringer("kind", k))
}

func listener(k Kind, handle func(in *Input, k Kind, raw event.Event)) hook {
	return hook{
		attach: func(in *Input) {
			in.remove[k] = in.surface.Listen(k, func(raw event.Event) {
				handle(in, k, raw)
			})
		},
		detach: func(in *Input) {
			if rm := in.remove[k]; rm != nil {
				rm()
			}
			in.remove[k] = nil
		},
	}
}

func (in *Input) onMouse(k Kind, raw event.Event) {
	event.Emit(in.hub, k.pointerKind(), pointer.Event{
		Type:     k.Type(),
		Source:   pointer.Mouse,
		Pointers: mouseContacts(k, raw, in.surface.Bounds(), in.viewport.Scroll()),
		Raw:      raw,
		Target:   in.surface,
	})
}

func (in *Input) onTouch(k Kind, raw event.Event) {
	event.Emit(in.hub, k.pointerKind(), pointer.Event{
		Type:     k.Type(),
		Source:   pointer.Touch,
		Pointers: touchContacts(raw, in.surface.Bounds(), in.viewport.Scroll()),
		Raw:      raw,
		Target:   in.surface,
	})
}

// onResize forwards the first entry of a batch. A single observed
// surface never produces more than one entry per batch.
func (in *Input) onResize(batch []system.ResizeEvent) {
	if len(batch) == 0 {
		return
	}
	if len(batch) > 1 {
		in.log.Debug("resize batch truncated", zap.Int("entries", len(batch)))
	}
	event.Emit(in.hub, resizeKind, batch[0])
}
