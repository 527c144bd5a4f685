// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux

package evdev

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/unix"

	"ctrlio.org/f32"
	"ctrlio.org/input"
	"ctrlio.org/io/event"
)

type (
	// Options configures a Device.
	Options struct {
		// Grab requests exclusive access to the device.
		Grab bool
		// Origin is the page position of the panel's top left
		// corner.
		Origin f32.Point
		Logger *zap.Logger
	}

	// Device is an opened input device.
	Device struct {
		path    string
		fd      int
		grabbed bool
		bounds  f32.Rectangle
		dec     *decoder
		tracker *tracker
		log     *zap.Logger

		mu        sync.Mutex
		listeners map[input.Kind][]*listener
		pending   []func()
		closed    bool
	}

	listener struct {
		fn func(event.Event)
	}

	// absInfo is struct input_absinfo.
	absInfo struct {
		Value      int32
		Min        int32
		Max        int32
		Fuzz       int32
		Flat       int32
		Resolution int32
	}
)

const (
	eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

	// pollTimeout bounds how long Run waits before checking its
	// context, in milliseconds.
	pollTimeout = 100

	iocWrite = 1
	iocRead  = 2
)

var (
	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("evdev: device closed")
	// ErrDisconnected is returned by Run when the device goes away.
	ErrDisconnected = errors.New("evdev: device disconnected")
)

var _ input.Surface = (*Device)(nil)

// Open opens the device node at path.
func Open(path string, opts Options) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("evdev: open %s: %w", path, err)
	}
	axes := axisRange(fd)
	d := newDevice(path, fd, axes, opts)
	if opts.Grab {
		if err := unix.IoctlSetInt(fd, eviocgrab(), 1); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("evdev: grab %s: %w", path, err)
		}
		d.grabbed = true
	}
	d.log.Info("device opened",
		zap.String("path", path), zap.Stringer("axes", axes), zap.Bool("grab", d.grabbed))
	return d, nil
}

func newDevice(path string, fd int, axes f32.Rectangle, opts Options) *Device {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		path:      path,
		fd:        fd,
		bounds:    axes.Sub(axes.Min).Add(opts.Origin),
		dec:       newDecoder(eventSize),
		tracker:   newTracker(axes, opts.Origin),
		log:       log,
		listeners: make(map[input.Kind][]*listener),
	}
}

// Path returns the device node path.
func (d *Device) Path() string {
	return d.path
}

// Bounds returns the page rectangle covered by the device's panel.
func (d *Device) Bounds() f32.Rectangle {
	return d.bounds
}

func (d *Device) Listen(k input.Kind, fn func(event.Event)) func() {
	l := &listener{fn: fn}
	d.mu.Lock()
	d.listeners[k] = append(d.listeners[k], l)
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		ls := d.listeners[k]
		if i := slices.Index(ls, l); i >= 0 {
			d.listeners[k] = slices.Delete(ls, i, i+1)
		}
	}
}

// Run reads the device and dispatches its events until ctx is done,
// the device is closed or it fails.
func (d *Device) Run(ctx context.Context) error {
	buf := make([]byte, 64*eventSize)
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		d.flush()
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.isClosed() {
			return ErrClosed
		}
		n, err := unix.Poll(fds, pollTimeout)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return fmt.Errorf("evdev: poll %s: %w", d.path, err)
		}
		if n == 0 {
			continue
		}
		if fds[0].Revents&unix.POLLNVAL != 0 {
			return ErrClosed
		}
		m, err := unix.Read(d.fd, buf)
		switch {
		case errors.Is(err, unix.EAGAIN):
			continue
		case errors.Is(err, unix.ENODEV):
			return ErrDisconnected
		case err != nil:
			return fmt.Errorf("evdev: read %s: %w", d.path, err)
		case m == 0:
			return ErrDisconnected
		}
		d.dec.feed(buf[:m], func(r record) {
			for _, f := range d.tracker.process(r) {
				d.dispatch(f)
			}
		})
	}
}

// Close releases the device. It is safe to call more than once.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if d.grabbed {
		unix.IoctlSetInt(d.fd, eviocgrab(), 0)
	}
	if err := unix.Close(d.fd); err != nil {
		return fmt.Errorf("evdev: close %s: %w", d.path, err)
	}
	return nil
}

func (d *Device) String() string {
	return d.path
}

// post queues fn to run on the Run goroutine.
func (d *Device) post(fn func()) {
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

func (d *Device) flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

func (d *Device) dispatch(f frame) {
	d.mu.Lock()
	ls := slices.Clone(d.listeners[f.kind])
	d.mu.Unlock()
	for _, l := range ls {
		l.fn(f.raw)
	}
}

func (d *Device) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Device) contentRect() f32.Rectangle {
	return f32.Rectangle{Max: d.bounds.Size()}
}

// axisRange returns the position axis range, preferring the
// multitouch axes. Devices without absolute axes get an empty range.
func axisRange(fd int) f32.Rectangle {
	for _, axes := range [][2]int{{absMTPositionX, absMTPositionY}, {absX, absY}} {
		x, errX := getAbsInfo(fd, axes[0])
		y, errY := getAbsInfo(fd, axes[1])
		if errX != nil || errY != nil {
			continue
		}
		r := f32.Rectangle{
			Min: f32.Pt(float32(x.Min), float32(y.Min)),
			Max: f32.Pt(float32(x.Max), float32(y.Max)),
		}
		if !r.Empty() {
			return r
		}
	}
	return f32.Rectangle{}
}

func getAbsInfo(fd, code int) (absInfo, error) {
	var info absInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgabs(code), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

// ioc encodes an ioctl request like the kernel's _IOC macro.
func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<30 | size<<16 | typ<<8 | nr)
}

func eviocgabs(code int) uintptr {
	return ioc(iocRead, 'E', uint32(0x40+code), uint32(unsafe.Sizeof(absInfo{})))
}

func eviocgrab() uint {
	return uint(ioc(iocWrite, 'E', 0x90, uint32(unsafe.Sizeof(int32(0)))))
}
