// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

package dom

import (
	"syscall/js"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/system"
)

// ResizeObserver wraps a browser ResizeObserver. Only Elements can
// be observed; other surfaces are ignored.
type ResizeObserver struct {
	obs      js.Value
	cb       js.Func
	fn       func([]system.ResizeEvent)
	observed []*Element
	closed   bool
}

var _ input.Observer = (*ResizeObserver)(nil)

// NewResizeObserver creates a ResizeObserver.
func NewResizeObserver() (*ResizeObserver, error) {
	ctor := js.Global().Get("ResizeObserver")
	if ctor.IsUndefined() {
		return nil, ErrUnsupported
	}
	r := new(ResizeObserver)
	r.cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 && r.fn != nil {
			r.fn(r.entries(args[0]))
		}
		return nil
	})
	r.obs = ctor.New(r.cb)
	return r, nil
}

func (r *ResizeObserver) Bind(fn func([]system.ResizeEvent)) {
	r.fn = fn
}

func (r *ResizeObserver) Observe(s input.Surface) {
	el, ok := s.(*Element)
	if !ok || r.closed {
		return
	}
	r.obs.Call("observe", el.el)
	r.observed = append(r.observed, el)
}

func (r *ResizeObserver) Unobserve(s input.Surface) {
	el, ok := s.(*Element)
	if !ok || r.closed {
		return
	}
	r.obs.Call("unobserve", el.el)
	for i, o := range r.observed {
		if o == el {
			r.observed = append(r.observed[:i], r.observed[i+1:]...)
			break
		}
	}
}

// Disconnect stops all observation and releases the callback.
func (r *ResizeObserver) Disconnect() {
	if r.closed {
		return
	}
	r.closed = true
	r.obs.Call("disconnect")
	r.cb.Release()
	r.observed = nil
}

func (r *ResizeObserver) entries(list js.Value) []system.ResizeEvent {
	n := list.Length()
	batch := make([]system.ResizeEvent, 0, n)
	for i := 0; i < n; i++ {
		entry := list.Index(i)
		rect := entry.Get("contentRect")
		x, y := number(rect, "x"), number(rect, "y")
		batch = append(batch, system.ResizeEvent{
			Target:      r.target(entry.Get("target")),
			ContentRect: f32.Rect(x, y, x+number(rect, "width"), y+number(rect, "height")),
		})
	}
	return batch
}

func (r *ResizeObserver) target(v js.Value) input.Surface {
	for _, el := range r.observed {
		if el.el.Equal(v) {
			return el
		}
	}
	return NewElement(v)
}
