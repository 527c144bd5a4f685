// SPDX-License-Identifier: Unlicense OR MIT

/*
Package evdev binds package input to Linux input devices.

A Device reads a /dev/input/event* node and acts as the
input.Surface of the device's panel: multitouch screens produce
touch events, relative mice produce mouse events. Positions are
axis values relative to the axis minimum, offset by the configured
origin.

Events are delivered on the goroutine calling Device.Run, which is
also the goroutine the Input built on the device must be used from.
*/
package evdev
