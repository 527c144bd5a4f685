// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

/*
Package dom binds package input to a browser document.

An Element is the input.Surface of a DOM element, a ResizeObserver
its size observer and Window the viewport supplying the page
scroll offset:

	el, err := dom.ByID("ctrl-target")
	...
	obs, err := dom.NewResizeObserver()
	...
	cfg := input.DefaultConfig()
	cfg.Viewport = dom.NewWindow()
	in := input.New(el, obs, cfg)
*/
package dom

import (
	"errors"
	"syscall/js"
	"time"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
)

// Element is a DOM element used as an input surface.
type Element struct {
	el js.Value
}

// Window reads the scroll offset of the global window.
type Window struct {
	w js.Value
}

var (
	// ErrNotFound is returned by ByID for unknown element ids.
	ErrNotFound = errors.New("dom: element not found")
	// ErrUnsupported is returned when the browser lacks ResizeObserver.
	ErrUnsupported = errors.New("dom: ResizeObserver not supported")
)

var _ input.Surface = (*Element)(nil)

// NewElement wraps el.
func NewElement(el js.Value) *Element {
	return &Element{el: el}
}

// ByID returns the element of the global document with the given id.
func ByID(id string) (*Element, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, ErrNotFound
	}
	return NewElement(el), nil
}

// NewWindow returns the viewport of the global window.
func NewWindow() Window {
	return Window{w: js.Global().Get("window")}
}

// Value returns the wrapped element.
func (e *Element) Value() js.Value {
	return e.el
}

// Bounds returns the element's bounding client rectangle.
func (e *Element) Bounds() f32.Rectangle {
	r := e.el.Call("getBoundingClientRect")
	return f32.Rect(number(r, "left"), number(r, "top"), number(r, "right"), number(r, "bottom"))
}

// Listen registers fn for the DOM event named after k. The returned
// function removes the listener and releases its js.Func.
func (e *Element) Listen(k input.Kind, fn func(event.Event)) func() {
	name := k.String()
	jsf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		fn(convert(k, args[0]))
		return nil
	})
	e.el.Call("addEventListener", name, jsf)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		e.el.Call("removeEventListener", name, jsf)
		jsf.Release()
	}
}

// Scroll returns window.scrollX and window.scrollY.
func (w Window) Scroll() f32.Point {
	return f32.Pt(number(w.w, "scrollX"), number(w.w, "scrollY"))
}

func convert(k input.Kind, e js.Value) event.Event {
	t := time.Duration(number(e, "timeStamp")) * time.Millisecond
	if k.Source() == pointer.Touch {
		return input.TouchEvent{
			Touches: touches(e.Get("touches")),
			Time:    t,
			Native:  e,
		}
	}
	return input.MouseEvent{
		Page:    f32.Pt(number(e, "pageX"), number(e, "pageY")),
		Buttons: buttons(e),
		Time:    t,
		Native:  e,
	}
}

// touches converts a TouchList. Touch events carry the list of every
// contact on the surface in evt.touches.
func touches(list js.Value) []input.Touch {
	if list.Type() != js.TypeObject {
		return nil
	}
	n := list.Length()
	ts := make([]input.Touch, 0, n)
	for i := 0; i < n; i++ {
		touch := list.Index(i)
		ts = append(ts, input.Touch{
			Identifier: int(number(touch, "identifier")),
			Page:       f32.Pt(number(touch, "pageX"), number(touch, "pageY")),
		})
	}
	return ts
}

func buttons(e js.Value) pointer.Buttons {
	jbtns := int(number(e, "buttons"))
	var btns pointer.Buttons
	if jbtns&1 != 0 {
		btns |= pointer.ButtonPrimary
	}
	if jbtns&2 != 0 {
		btns |= pointer.ButtonSecondary
	}
	if jbtns&4 != 0 {
		btns |= pointer.ButtonTertiary
	}
	return btns
}

// number returns the numeric property key of v, or 0 if it is
// missing.
func number(v js.Value, key string) float32 {
	if v.Type() != js.TypeObject {
		return 0
	}
	p := v.Get(key)
	if p.Type() != js.TypeNumber {
		return 0
	}
	return float32(p.Float())
}
