/*
Package animation contains the frame based LED animation engine.  The engine
is a small state machine that walks a fixed catalog of effects (boot, Wi-Fi
status, center pulses), generating buffers representing LED color values for
consecutive frames and handing them to a strip.

The engine is poll driven, the host calls Tick as often as it likes and the
engine decides, using the clock it was given, whether a new frame is due.
None of the methods block and none of them lock, a host with more than one
goroutine must funnel all calls through a single owner.
*/
package animation

import (
	"github.com/TeamNorCal/presence/model"
)

// Strip is the minimal capability the engine needs from an LED driver
type Strip interface {
	// Begin prepares the driver for count pixels
	Begin(count int)
	// Clear sets every pixel to black without displaying it
	Clear()
	// SetPixel stores a color for the pixel at index i
	SetPixel(i int, c model.Color)
	// Show flushes the buffered pixels to the hardware
	Show()
}

// NetworkStatus reports whether the host has network connectivity.  It is
// polled from Tick and must not block.
type NetworkStatus interface {
	IsConnected() bool
}

// Clock returns monotonic milliseconds
type Clock interface {
	NowMs() int64
}

// ClockFunc adapts a plain function to the Clock interface
type ClockFunc func() int64

func (f ClockFunc) NowMs() int64 { return f() }

// NetworkStatusFunc adapts a plain function to the NetworkStatus interface
type NetworkStatusFunc func() bool

func (f NetworkStatusFunc) IsConnected() bool { return f() }
