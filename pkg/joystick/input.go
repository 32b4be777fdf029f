// Package joystick presses camera keys from a gamepad.
package joystick

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/camview"
	fx "github.com/robotalks/camview/pkg/framework"
	"github.com/robotalks/camview/pkg/joystick/device"
)

// RetryInterval is the delay before opening the device again.
const RetryInterval = time.Second

// KeyHandler handles key presses.
type KeyHandler interface {
	HandleKey(camview.Key) camview.KeyResult
}

// Input reads a joystick and forwards key presses.
type Input struct {
	// DeviceIndex selects /dev/input/jsN, -1 for auto detection.
	DeviceIndex int
	Keys        KeyHandler
	Mapper      *Mapper
	Verbose     bool

	// Open is replaced in tests.
	Open func(index int) (device.Device, error)
}

// NewInput creates an Input.
func NewInput(keys KeyHandler) *Input {
	return &Input{
		DeviceIndex: defaultConfig.DeviceIndex,
		Keys:        keys,
		Mapper:      NewMapper(),
		Verbose:     defaultConfig.Verbose,
		Open:        openDevice,
	}
}

func openDevice(index int) (device.Device, error) {
	if index >= 0 {
		return device.Open(index)
	}
	return device.Detect()
}

// AddToLoop implements LoopAdder.
func (in *Input) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("joystick", in))
}

// Run implements Runnable. A missing or unplugged device is retried
// until ctx is done.
func (in *Input) Run(ctx context.Context) error {
	for {
		dev, err := in.Open(in.DeviceIndex)
		switch {
		case err == device.ErrNotSupported:
			glog.Warning("joystick not supported")
			<-ctx.Done()
			return ctx.Err()
		case err != nil:
			glog.V(1).Infof("open joystick error: %v", err)
		case dev != nil:
			glog.Infof("joystick %d %q opened", dev.Index(), dev.Name())
			in.serve(ctx, dev)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(RetryInterval):
		}
	}
}

func (in *Input) serve(ctx context.Context, dev device.Device) {
	eventCh := make(chan device.Event)
	go func() {
		defer close(eventCh)
		for {
			ev, err := dev.ReadEvent()
			if err != nil {
				glog.Warningf("joystick read error: %v", err)
				return
			}
			select {
			case eventCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	defer dev.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			in.handle(ev)
		}
	}
}

func (in *Input) handle(ev device.Event) {
	if in.Verbose {
		switch e := ev.(type) {
		case device.AxisEvent:
			glog.Infof("axis %d: %d init=%v", e.Index(), e.Value(), e.IsInit())
		case device.ButtonEvent:
			glog.Infof("button %d: %v init=%v", e.Index(), e.Pressed(), e.IsInit())
		}
	}
	key, ok := in.Mapper.Map(ev)
	if !ok {
		return
	}
	if res := in.Keys.HandleKey(key); res.Err != nil {
		glog.Warningf("key %s error: %v", key, res.Err)
	} else if res.Path != "" {
		glog.Infof("snapshot %s", res.Path)
	}
}
