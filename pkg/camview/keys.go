package camview

import (
	"fmt"
	"strings"

	"github.com/robotalks/camview/pkg/camera"
)

// Key is an input key.
type Key int

// Keys
const (
	KeyUp Key = iota + 1
	KeyDown
	KeyRight
	KeyLeft
	KeyOk
)

var keyNames = map[Key]string{
	KeyUp:    "up",
	KeyDown:  "down",
	KeyRight: "right",
	KeyLeft:  "left",
	KeyOk:    "ok",
}

// String implements fmt.Stringer.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// Command returns the byte sent to the camera for the key.
// KeyOk has no command, it takes a snapshot.
func (k Key) Command() (byte, bool) {
	switch k {
	case KeyUp:
		return camera.CmdUp, true
	case KeyDown:
		return camera.CmdDown, true
	case KeyRight:
		return camera.CmdRight, true
	case KeyLeft:
		return camera.CmdLeft, true
	}
	return 0, false
}

// ParseKey parses a key name.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(name)
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
