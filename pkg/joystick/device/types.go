// Package device reads Linux joystick devices (/dev/input/jsN).
package device

import (
	"errors"
	"io"
)

// ErrNotSupported is returned on systems without joystick devices.
var ErrNotSupported = errors.New("joystick not supported")

// Event defines the base event interface.
type Event interface {
	// IsInit indicates this is the initial state reported on open.
	IsInit() bool
	// Index returns either Axis or Button index.
	Index() int
}

// AxisEvent represents the change on an axis.
type AxisEvent interface {
	Event
	Value() int
}

// ButtonEvent represents the change on a button.
type ButtonEvent interface {
	Event
	Pressed() bool
}

// Device represents an opened joystick.
type Device interface {
	io.Closer
	Index() int
	Name() string
	// ReadEvent blocks until the next event.
	ReadEvent() (Event, error)
}
