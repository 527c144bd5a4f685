// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux

package evdev

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/event"
	"ctrlio.org/io/pointer"
	"ctrlio.org/io/system"
)

// pipeDevice returns a device reading from a pipe and a function
// writing to the pipe. Closing the returned writer closes the pipe.
func pipeDevice(t *testing.T, axes f32.Rectangle, opts Options) (*Device, *pipeWriter) {
	t.Helper()
	var p [2]int
	require.NoError(t, unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC))
	w := &pipeWriter{fd: p[1]}
	t.Cleanup(w.Close)
	d := newDevice("pipe", p[0], axes, opts)
	t.Cleanup(func() { d.Close() })
	return d, w
}

type pipeWriter struct {
	fd     int
	closed bool
}

func (w *pipeWriter) Write(b []byte) error {
	_, err := unix.Write(w.fd, b)
	return err
}

func (w *pipeWriter) Close() {
	if !w.closed {
		w.closed = true
		unix.Close(w.fd)
	}
}

func run(t *testing.T, d *Device) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func TestDeviceInput(t *testing.T) {
	axes := f32.Rect(0, 0, 1000, 800)
	d, w := pipeDevice(t, axes, Options{Origin: f32.Pt(10, 20)})
	assert.Equal(t, f32.Rect(10, 20, 1010, 820), d.Bounds())

	in := input.New(d, NewObserver(), input.DefaultConfig())
	touches := make(chan pointer.Event, 4)
	resizes := make(chan system.ResizeEvent, 4)
	in.OnPointer(input.TouchStart, func(e pointer.Event) error {
		touches <- e
		return nil
	})
	in.OnResize(func(e system.ResizeEvent) error {
		resizes <- e
		return nil
	})

	cancel, done := run(t, d)

	select {
	case e := <-resizes:
		assert.Equal(t, f32.Pt(1000, 800), e.Size())
		assert.Equal(t, d, e.Target)
	case <-time.After(2 * time.Second):
		t.Fatal("no resize event")
	}

	err := w.Write(encode(eventSize,
		abs(absMTSlot, 0), abs(absMTTrackingID, 2), abs(absMTPositionX, 40), abs(absMTPositionY, 50),
		abs(absMTSlot, 1), abs(absMTTrackingID, 5), abs(absMTPositionX, 400), abs(absMTPositionY, 500),
		syn,
	))
	require.NoError(t, err)

	select {
	case e := <-touches:
		assert.Equal(t, []pointer.ID{2, 5}, e.IDs())
		assert.Equal(t, f32.Pt(40, 50), e.Pointers[2].Position)
		assert.Equal(t, f32.Pt(400, 500), e.Pointers[5].Position)
	case <-time.After(2 * time.Second):
		t.Fatal("no touch event")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestDeviceMouseOrigin(t *testing.T) {
	d, w := pipeDevice(t, f32.Rect(0, 0, 1000, 800), Options{Origin: f32.Pt(100, 50)})
	assert.Equal(t, f32.Rect(100, 50, 1100, 850), d.Bounds())

	in := input.New(d, NewObserver(), input.DefaultConfig())
	moves := make(chan pointer.Event, 4)
	in.OnPointer(input.MouseMove, func(e pointer.Event) error {
		moves <- e
		return nil
	})
	run(t, d)

	require.NoError(t, w.Write(encode(eventSize, rel(relX, 30), rel(relY, 40), syn)))
	select {
	case e := <-moves:
		assert.Equal(t, pointer.Mouse, e.Source)
		assert.Equal(t, f32.Pt(30, 40), e.Pointers[pointer.MouseID].Position)
	case <-time.After(2 * time.Second):
		t.Fatal("no mouse event")
	}
}

func TestDeviceListen(t *testing.T) {
	d, _ := pipeDevice(t, f32.Rectangle{}, Options{})
	var n int
	remove := d.Listen(input.MouseDown, func(event.Event) { n++ })
	d.dispatch(frame{kind: input.MouseDown, raw: input.MouseEvent{}})
	remove()
	remove()
	d.dispatch(frame{kind: input.MouseDown, raw: input.MouseEvent{}})
	assert.Equal(t, 1, n)
}

func TestDeviceDisconnect(t *testing.T) {
	d, w := pipeDevice(t, f32.Rectangle{}, Options{})
	_, done := run(t, d)
	w.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestDeviceClose(t *testing.T) {
	d, _ := pipeDevice(t, f32.Rectangle{}, Options{})
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.Run(context.Background()), ErrClosed)
}

func TestObserverUnobserved(t *testing.T) {
	d, _ := pipeDevice(t, f32.Rect(0, 0, 10, 10), Options{})
	obs := NewObserver()
	var n int
	obs.Bind(func([]system.ResizeEvent) { n++ })
	obs.Observe(d)
	obs.Unobserve(d)
	d.flush()
	assert.Zero(t, n)

	obs.Observe(d)
	d.flush()
	assert.Equal(t, 1, n)

	obs.Disconnect()
	obs.Observe(d)
	d.flush()
	assert.Equal(t, 1, n)
}
