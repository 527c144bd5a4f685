// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"encoding/binary"
	"time"
)

// record is one struct input_event.
type record struct {
	Time  time.Duration
	Type  uint16
	Code  uint16
	Value int32
}

// decoder splits a byte stream into records. The kernel writes
// 24 byte records on 64-bit platforms and 16 byte records where
// struct timeval has 32-bit fields.
type decoder struct {
	size int
	buf  []byte
}

func newDecoder(size int) *decoder {
	if size != 16 && size != 24 {
		panic("evdev: invalid input_event size")
	}
	return &decoder{size: size}
}

// feed appends chunk and calls fn for every complete record.
// Incomplete trailing bytes are kept for the next call.
func (d *decoder) feed(chunk []byte, fn func(record)) {
	d.buf = append(d.buf, chunk...)
	n := 0
	for ; len(d.buf)-n >= d.size; n += d.size {
		fn(d.decode(d.buf[n : n+d.size]))
	}
	d.buf = append(d.buf[:0], d.buf[n:]...)
}

func (d *decoder) decode(b []byte) record {
	ord := binary.NativeEndian
	var sec, usec int64
	if d.size == 24 {
		sec = int64(ord.Uint64(b[0:8]))
		usec = int64(ord.Uint64(b[8:16]))
		b = b[16:]
	} else {
		sec = int64(int32(ord.Uint32(b[0:4])))
		usec = int64(int32(ord.Uint32(b[4:8])))
		b = b[8:]
	}
	return record{
		Time:  time.Duration(sec)*time.Second + time.Duration(usec)*time.Microsecond,
		Type:  ord.Uint16(b[0:2]),
		Code:  ord.Uint16(b[2:4]),
		Value: int32(ord.Uint32(b[4:8])),
	}
}
