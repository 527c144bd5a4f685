// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"golang.org/x/exp/slices"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
)

// frame is a raw event produced by a committed evdev frame.
type frame struct {
	kind input.Kind
	raw  event.Event
}

type slot struct {
	id  int // tracking id, -1 when empty
	pos f32.Point
}

// tracker assembles evdev records into frames. Changes accumulate
// until SYN_REPORT and are then compared against the last committed
// state.
type tracker struct {
	// origin is subtracted from absolute axis values.
	origin f32.Point
	// page is the page position of the panel's top left corner.
	page f32.Point
	// limit clamps the relative mouse position.
	limit f32.Point

	slots   []slot
	cur     int
	mt      bool
	dropped bool

	// Single touch devices without the multitouch protocol.
	touching bool
	touchPos f32.Point

	// Relative mice.
	mouse, lastMouse f32.Point
	btns, lastBtns   pointer.Buttons

	committed []input.Touch
}

// newTracker returns a tracker for a panel with the given axis
// range placed at page.
func newTracker(axes f32.Rectangle, page f32.Point) *tracker {
	return &tracker{
		origin: axes.Min.Sub(page),
		page:   page,
		limit:  axes.Size(),
	}
}

// process applies r and returns the frames committed by it, if any.
func (t *tracker) process(r record) []frame {
	if t.dropped {
		// Everything up to the next report is unreliable.
		if r.Type == evSyn && r.Code == synReport {
			t.dropped = false
			t.resync()
			return t.commit(r)
		}
		return nil
	}
	switch r.Type {
	case evSyn:
		switch r.Code {
		case synReport:
			return t.commit(r)
		case synDropped:
			t.dropped = true
		}
	case evKey:
		t.key(r.Code, r.Value != 0)
	case evRel:
		t.rel(r.Code, float32(r.Value))
	case evAbs:
		t.abs(r.Code, float32(r.Value))
	}
	return nil
}

// resync forgets contact and button state that may have changed
// while records were dropped. Contacts reappear when the device
// reports a new tracking id or touch key.
func (t *tracker) resync() {
	t.slots = t.slots[:0]
	t.cur = 0
	t.touching = false
	t.btns = 0
}

func (t *tracker) key(code uint16, down bool) {
	var b pointer.Buttons
	switch code {
	case btnTouch:
		t.touching = down
		return
	case btnLeft:
		b = pointer.ButtonPrimary
	case btnRight:
		b = pointer.ButtonSecondary
	case btnMiddle:
		b = pointer.ButtonTertiary
	default:
		return
	}
	if down {
		t.btns |= b
	} else {
		t.btns &^= b
	}
}

func (t *tracker) rel(code uint16, v float32) {
	switch code {
	case relX:
		t.mouse.X = clamp(t.mouse.X+v, t.limit.X)
	case relY:
		t.mouse.Y = clamp(t.mouse.Y+v, t.limit.Y)
	}
}

func (t *tracker) abs(code uint16, v float32) {
	switch code {
	case absX:
		t.touchPos.X = v - t.origin.X
	case absY:
		t.touchPos.Y = v - t.origin.Y
	case absMTSlot:
		t.mt = true
		t.cur = int(v)
	case absMTTrackingID:
		t.mt = true
		t.slot().id = int(v)
	case absMTPositionX:
		t.mt = true
		t.slot().pos.X = v - t.origin.X
	case absMTPositionY:
		t.mt = true
		t.slot().pos.Y = v - t.origin.Y
	}
}

func (t *tracker) slot() *slot {
	if t.cur < 0 {
		t.cur = 0
	}
	for len(t.slots) <= t.cur {
		t.slots = append(t.slots, slot{id: -1})
	}
	return &t.slots[t.cur]
}

func (t *tracker) commit(r record) []frame {
	var frames []frame
	frames = append(frames, t.commitTouch(r)...)
	frames = append(frames, t.commitMouse(r)...)
	return frames
}

func (t *tracker) commitTouch(r record) []frame {
	touches := t.touches()
	var added, removed, moved bool
	for _, c := range touches {
		i := slices.IndexFunc(t.committed, func(p input.Touch) bool {
			return p.Identifier == c.Identifier
		})
		switch {
		case i < 0:
			added = true
		case t.committed[i].Page != c.Page:
			moved = true
		}
	}
	for _, p := range t.committed {
		if slices.IndexFunc(touches, func(c input.Touch) bool {
			return c.Identifier == p.Identifier
		}) < 0 {
			removed = true
		}
	}
	t.committed = touches

	var frames []frame
	ev := func(k input.Kind) {
		frames = append(frames, frame{kind: k, raw: input.TouchEvent{
			Touches: slices.Clone(touches),
			Time:    r.Time,
		}})
	}
	if removed {
		ev(input.TouchEnd)
	}
	if added {
		ev(input.TouchStart)
	}
	if moved {
		ev(input.TouchMove)
	}
	return frames
}

// touches returns the contacts on the surface in slot order.
func (t *tracker) touches() []input.Touch {
	var ts []input.Touch
	if t.mt {
		for _, s := range t.slots {
			if s.id >= 0 {
				ts = append(ts, input.Touch{Identifier: s.id, Page: s.pos})
			}
		}
		return ts
	}
	if t.touching {
		ts = append(ts, input.Touch{Identifier: 0, Page: t.touchPos})
	}
	return ts
}

func (t *tracker) commitMouse(r record) []frame {
	var frames []frame
	ev := func(k input.Kind) {
		frames = append(frames, frame{kind: k, raw: input.MouseEvent{
			Page:    t.mouse.Add(t.page),
			Buttons: t.btns,
			Time:    r.Time,
		}})
	}
	if t.mouse != t.lastMouse {
		ev(input.MouseMove)
	}
	switch {
	case t.lastBtns == 0 && t.btns != 0:
		ev(input.MouseDown)
	case t.lastBtns != 0 && t.btns == 0:
		ev(input.MouseUp)
	}
	t.lastMouse, t.lastBtns = t.mouse, t.btns
	return frames
}

func clamp(v, limit float32) float32 {
	if v < 0 {
		return 0
	}
	if limit > 0 && v > limit {
		return limit
	}
	return v
}
