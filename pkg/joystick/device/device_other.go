// +build !linux

package device

// Open opens the joystick with the index.
func Open(index int) (Device, error) {
	return nil, ErrNotSupported
}

// Detect opens the first available device.
func Detect() (Device, error) {
	return nil, ErrNotSupported
}
