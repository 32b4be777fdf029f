package joystick

import (
	"github.com/robotalks/camview/pkg/camview"
	"github.com/robotalks/camview/pkg/joystick/device"
)

// DefaultThreshold is the axis value treated as a push.
const DefaultThreshold = 16384

// Mapper translates joystick events into key presses.
// A key fires once when the stick enters a direction or the
// button is pressed.
type Mapper struct {
	// AxisX and AxisY are indices of the stick axes.
	AxisX, AxisY int
	// OkButtons are indices of buttons pressing Ok.
	OkButtons []int
	Threshold int

	dirs map[int]camview.Key
}

// NewMapper creates a Mapper for common gamepads.
func NewMapper() *Mapper {
	return &Mapper{
		AxisX:     0,
		AxisY:     1,
		OkButtons: []int{0},
		Threshold: DefaultThreshold,
	}
}

// Map returns the key pressed by the event.
func (m *Mapper) Map(ev device.Event) (camview.Key, bool) {
	if ev.IsInit() {
		m.track(ev)
		return 0, false
	}
	switch e := ev.(type) {
	case device.ButtonEvent:
		if !e.Pressed() {
			return 0, false
		}
		for _, index := range m.OkButtons {
			if index == e.Index() {
				return camview.KeyOk, true
			}
		}
	case device.AxisEvent:
		key, ok := m.direction(e)
		prev, held := m.dirs[e.Index()]
		m.track(ev)
		if ok && (!held || prev != key) {
			return key, true
		}
	}
	return 0, false
}

func (m *Mapper) track(ev device.Event) {
	e, ok := ev.(device.AxisEvent)
	if !ok {
		return
	}
	if m.dirs == nil {
		m.dirs = make(map[int]camview.Key)
	}
	if key, ok := m.direction(e); ok {
		m.dirs[e.Index()] = key
	} else {
		delete(m.dirs, e.Index())
	}
}

func (m *Mapper) direction(e device.AxisEvent) (camview.Key, bool) {
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	val := e.Value()
	switch e.Index() {
	case m.AxisX:
		if val <= -threshold {
			return camview.KeyLeft, true
		} else if val >= threshold {
			return camview.KeyRight, true
		}
	case m.AxisY:
		if val <= -threshold {
			return camview.KeyUp, true
		} else if val >= threshold {
			return camview.KeyDown, true
		}
	}
	return 0, false
}
