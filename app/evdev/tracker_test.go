// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/pointer"
)

func abs(code uint16, v int32) record { return record{Type: evAbs, Code: code, Value: v} }
func rel(code uint16, v int32) record { return record{Type: evRel, Code: code, Value: v} }
func key(code uint16, v int32) record { return record{Type: evKey, Code: code, Value: v} }

var syn = record{Type: evSyn, Code: synReport}

func feed(t *tracker, recs ...record) []frame {
	var frames []frame
	for _, r := range recs {
		frames = append(frames, t.process(r)...)
	}
	return frames
}

func kinds(frames []frame) []input.Kind {
	var ks []input.Kind
	for _, f := range frames {
		ks = append(ks, f.kind)
	}
	return ks
}

func touchIDs(f frame) []int {
	var ids []int
	for _, tc := range f.raw.(input.TouchEvent).Touches {
		ids = append(ids, tc.Identifier)
	}
	return ids
}

func TestMultitouch(t *testing.T) {
	tr := newTracker(f32.Rect(100, 100, 100, 100), f32.Point{})

	frames := feed(tr,
		abs(absMTSlot, 0), abs(absMTTrackingID, 2), abs(absMTPositionX, 110), abs(absMTPositionY, 120),
		abs(absMTSlot, 1), abs(absMTTrackingID, 5), abs(absMTPositionX, 150), abs(absMTPositionY, 160),
		syn,
	)
	require.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
	ev := frames[0].raw.(input.TouchEvent)
	assert.Equal(t, []input.Touch{
		{Identifier: 2, Page: f32.Pt(10, 20)},
		{Identifier: 5, Page: f32.Pt(50, 60)},
	}, ev.Touches)

	frames = feed(tr, abs(absMTSlot, 0), abs(absMTPositionX, 111), syn)
	require.Equal(t, []input.Kind{input.TouchMove}, kinds(frames))
	assert.Equal(t, []int{2, 5}, touchIDs(frames[0]))

	frames = feed(tr, abs(absMTSlot, 2), abs(absMTTrackingID, 9), abs(absMTPositionX, 100), syn)
	require.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
	assert.Equal(t, []int{2, 5, 9}, touchIDs(frames[0]))

	frames = feed(tr, abs(absMTSlot, 1), abs(absMTTrackingID, -1), syn)
	require.Equal(t, []input.Kind{input.TouchEnd}, kinds(frames))
	assert.Equal(t, []int{2, 9}, touchIDs(frames[0]))

	frames = feed(tr, abs(absMTSlot, 0), abs(absMTTrackingID, -1), abs(absMTSlot, 2), abs(absMTTrackingID, -1), syn)
	require.Equal(t, []input.Kind{input.TouchEnd}, kinds(frames))
	assert.Empty(t, frames[0].raw.(input.TouchEvent).Touches)

	assert.Empty(t, feed(tr, syn), "unchanged frame produces nothing")
}

func TestSingleTouch(t *testing.T) {
	tr := newTracker(f32.Rectangle{}, f32.Point{})
	frames := feed(tr, key(btnTouch, 1), abs(absX, 30), abs(absY, 40), syn)
	require.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
	assert.Equal(t, []input.Touch{{Identifier: 0, Page: f32.Pt(30, 40)}},
		frames[0].raw.(input.TouchEvent).Touches)

	frames = feed(tr, abs(absX, 31), syn)
	assert.Equal(t, []input.Kind{input.TouchMove}, kinds(frames))

	frames = feed(tr, key(btnTouch, 0), syn)
	assert.Equal(t, []input.Kind{input.TouchEnd}, kinds(frames))
}

func TestMouse(t *testing.T) {
	tr := newTracker(f32.Rect(0, 0, 100, 100), f32.Point{})

	frames := feed(tr, rel(relX, 10), rel(relY, 20), syn)
	require.Equal(t, []input.Kind{input.MouseMove}, kinds(frames))
	assert.Equal(t, f32.Pt(10, 20), frames[0].raw.(input.MouseEvent).Page)

	frames = feed(tr, key(btnLeft, 1), syn)
	require.Equal(t, []input.Kind{input.MouseDown}, kinds(frames))
	assert.Equal(t, pointer.ButtonPrimary, frames[0].raw.(input.MouseEvent).Buttons)

	frames = feed(tr, key(btnRight, 1), rel(relX, 500), syn)
	require.Equal(t, []input.Kind{input.MouseMove}, kinds(frames), "second button is no new press")
	assert.Equal(t, f32.Pt(100, 20), frames[0].raw.(input.MouseEvent).Page)

	frames = feed(tr, key(btnLeft, 0), key(btnRight, 0), rel(relY, -50), syn)
	assert.Equal(t, []input.Kind{input.MouseMove, input.MouseUp}, kinds(frames))
	assert.Equal(t, f32.Pt(100, 0), frames[1].raw.(input.MouseEvent).Page)
}

func TestMousePageOrigin(t *testing.T) {
	tr := newTracker(f32.Rect(0, 0, 1000, 800), f32.Pt(100, 50))

	frames := feed(tr, rel(relX, 30), rel(relY, 40), syn)
	require.Equal(t, []input.Kind{input.MouseMove}, kinds(frames))
	assert.Equal(t, f32.Pt(130, 90), frames[0].raw.(input.MouseEvent).Page)

	frames = feed(tr, rel(relX, 5000), syn)
	require.Equal(t, []input.Kind{input.MouseMove}, kinds(frames))
	assert.Equal(t, f32.Pt(1100, 90), frames[0].raw.(input.MouseEvent).Page, "clamped to the panel")
}

func TestTouchPageOrigin(t *testing.T) {
	tr := newTracker(f32.Rect(200, 300, 1200, 1100), f32.Pt(10, 20))
	frames := feed(tr, abs(absMTSlot, 0), abs(absMTTrackingID, 1), abs(absMTPositionX, 250), abs(absMTPositionY, 340), syn)
	require.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
	assert.Equal(t, []input.Touch{{Identifier: 1, Page: f32.Pt(60, 60)}},
		frames[0].raw.(input.TouchEvent).Touches)
}

func TestDroppedForgetsContacts(t *testing.T) {
	tr := newTracker(f32.Rectangle{}, f32.Point{})
	frames := feed(tr,
		abs(absMTSlot, 0), abs(absMTTrackingID, 3), abs(absMTPositionX, 10),
		abs(absMTSlot, 1), abs(absMTTrackingID, 4), abs(absMTPositionX, 20),
		key(btnLeft, 1),
		syn,
	)
	require.Equal(t, []input.Kind{input.TouchStart, input.MouseDown}, kinds(frames))

	// The lift of contact 4 and the button release are lost.
	frames = feed(tr, record{Type: evSyn, Code: synDropped}, abs(absMTSlot, 1), abs(absMTTrackingID, -1), syn)
	require.Equal(t, []input.Kind{input.TouchEnd, input.MouseUp}, kinds(frames))
	assert.Empty(t, frames[0].raw.(input.TouchEvent).Touches)

	frames = feed(tr, abs(absMTSlot, 0), abs(absMTTrackingID, 6), abs(absMTPositionX, 11), syn)
	require.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
	assert.Equal(t, []int{6}, touchIDs(frames[0]))
	assert.Empty(t, feed(tr, abs(absMTSlot, 1), abs(absMTPositionX, 30), syn), "stale slot stays gone")
}

func TestDropped(t *testing.T) {
	tr := newTracker(f32.Rectangle{}, f32.Point{})
	frames := feed(tr,
		record{Type: evSyn, Code: synDropped},
		key(btnTouch, 1), abs(absX, 5),
		syn,
	)
	assert.Empty(t, frames)

	frames = feed(tr, key(btnTouch, 1), syn)
	assert.Equal(t, []input.Kind{input.TouchStart}, kinds(frames))
}
