package joystick

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/camview/pkg/camview"
	"github.com/robotalks/camview/pkg/joystick/device"
)

type testEvent struct {
	index int
	init  bool
}

func (e testEvent) IsInit() bool { return e.init }
func (e testEvent) Index() int   { return e.index }

type testAxis struct {
	testEvent
	value int
}

func (e testAxis) Value() int { return e.value }

type testButton struct {
	testEvent
	pressed bool
}

func (e testButton) Pressed() bool { return e.pressed }

func axis(index, value int) device.Event {
	return testAxis{testEvent: testEvent{index: index}, value: value}
}

func button(index int, pressed bool) device.Event {
	return testButton{testEvent: testEvent{index: index}, pressed: pressed}
}

func TestMapper(t *testing.T) {
	m := NewMapper()
	tests := []struct {
		ev  device.Event
		key camview.Key
	}{
		{axis(1, -32767), camview.KeyUp},
		{axis(1, -30000), 0},
		{axis(1, 0), 0},
		{axis(1, 32767), camview.KeyDown},
		{axis(1, -32767), camview.KeyUp},
		{axis(0, -20000), camview.KeyLeft},
		{axis(0, 100), 0},
		{axis(0, 20000), camview.KeyRight},
		{axis(2, 32767), 0},
		{button(0, true), camview.KeyOk},
		{button(0, false), 0},
		{button(3, true), 0},
	}
	for n, test := range tests {
		key, ok := m.Map(test.ev)
		assert.Equal(t, test.key != 0, ok, "step %d", n)
		assert.Equal(t, test.key, key, "step %d", n)
	}
}

func TestMapperInitState(t *testing.T) {
	m := NewMapper()
	_, ok := m.Map(testAxis{testEvent: testEvent{index: 1, init: true}, value: -32767})
	assert.False(t, ok)
	// the stick is already held up
	_, ok = m.Map(axis(1, -32000))
	assert.False(t, ok)
	_, ok = m.Map(testButton{testEvent: testEvent{index: 0, init: true}, pressed: true})
	assert.False(t, ok)
}

type testDevice struct {
	events chan device.Event
	once   sync.Once
	closed chan struct{}
}

func newTestDevice() *testDevice {
	return &testDevice{events: make(chan device.Event), closed: make(chan struct{})}
}

func (d *testDevice) Close() error {
	d.once.Do(func() { close(d.closed) })
	return nil
}

func (d *testDevice) Index() int   { return 0 }
func (d *testDevice) Name() string { return "test pad" }

func (d *testDevice) ReadEvent() (device.Event, error) {
	select {
	case ev, ok := <-d.events:
		if !ok {
			return nil, io.EOF
		}
		return ev, nil
	case <-d.closed:
		return nil, io.EOF
	}
}

type testKeys struct {
	ch chan camview.Key
}

func (k *testKeys) HandleKey(key camview.Key) camview.KeyResult {
	k.ch <- key
	return camview.KeyResult{}
}

func TestInputRun(t *testing.T) {
	dev := newTestDevice()
	keys := &testKeys{ch: make(chan camview.Key, 4)}
	in := NewInput(keys)
	opened := 0
	in.Open = func(index int) (device.Device, error) {
		assert.Equal(t, -1, index)
		if opened++; opened == 1 {
			return nil, errors.New("permission denied")
		}
		return dev, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- in.Run(ctx) }()

	dev.events <- axis(0, 32767)
	dev.events <- button(0, true)
	for _, expected := range []camview.Key{camview.KeyRight, camview.KeyOk} {
		select {
		case key := <-keys.ch:
			assert.Equal(t, expected, key)
		case <-time.After(3 * time.Second):
			require.FailNow(t, "no key", "expect %s", expected)
		}
	}

	cancel()
	select {
	case err := <-errCh:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		require.FailNow(t, "input not stopped")
	}
	<-dev.closed
}

func TestInputNotSupported(t *testing.T) {
	in := NewInput(&testKeys{})
	in.Open = func(int) (device.Device, error) { return nil, device.ErrNotSupported }
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, in.Run(ctx))
}

func TestConfigNewInput(t *testing.T) {
	conf := NewConfig()
	conf.DeviceIndex, conf.Verbose = 2, true
	in := conf.NewInput(&testKeys{})
	assert.Equal(t, 2, in.DeviceIndex)
	assert.True(t, in.Verbose)
}
