package camview

import "errors"

var (
	// ErrNotRunning indicates the controller is not added to a running loop.
	ErrNotRunning = errors.New("not running")
	// ErrUnknownKey indicates the key isn't supported.
	ErrUnknownKey = errors.New("unknown key")
)
