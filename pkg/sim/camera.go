// Package sim simulates an ESP32-CAM streaming over a serial link.
package sim

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/camera"
)

// PortName selects the simulated camera instead of a serial device.
const PortName = "sim"

// DefaultFrameInterval is the time between frames.
const DefaultFrameInterval = 100 * time.Millisecond

// MoveStep is how far a direction command moves the needle.
const MoveStep = 2

// Camera is the device side of the link. It streams frames
// after the start sequence is written until stopped.
type Camera struct {
	FrameInterval time.Duration
	Scene         *Scene
	// Noise is the number of junk bytes sent before each frame.
	Noise int

	lock    sync.Mutex
	rand    *rand.Rand
	pending []byte
	last    byte
	started bool
	closed  bool
	next    time.Time
	wakeCh  chan struct{}
}

// NewCamera creates a Camera.
func NewCamera() *Camera {
	return &Camera{
		FrameInterval: DefaultFrameInterval,
		Scene:         NewScene(),
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		wakeCh:        make(chan struct{}, 1),
	}
}

// Started tells if the camera is streaming.
func (c *Camera) Started() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.started
}

// Write receives commands.
func (c *Camera) Write(p []byte) (int, error) {
	c.lock.Lock()
	if c.closed {
		c.lock.Unlock()
		return 0, io.ErrClosedPipe
	}
	for _, b := range p {
		c.command(b)
		c.last = b
	}
	c.lock.Unlock()
	c.wakeUp()
	return len(p), nil
}

func (c *Camera) command(b byte) {
	switch b {
	case camera.CmdStart1:
		if c.last == camera.CmdStart0 && !c.started {
			glog.V(1).Info("sim: started")
			c.started, c.next = true, time.Now()
		}
	case camera.CmdStop:
		glog.V(1).Info("sim: stopped")
		c.started, c.pending = false, nil
	case camera.CmdUp:
		c.Scene.Move(0, -MoveStep)
	case camera.CmdDown:
		c.Scene.Move(0, MoveStep)
	case camera.CmdLeft:
		c.Scene.Move(-MoveStep, 0)
	case camera.CmdRight:
		c.Scene.Move(MoveStep, 0)
	}
}

// Read blocks until stream bytes are available.
func (c *Camera) Read(p []byte) (int, error) {
	for {
		c.lock.Lock()
		if c.closed {
			c.lock.Unlock()
			return 0, io.EOF
		}
		if len(c.pending) > 0 {
			n := copy(p, c.pending)
			c.pending = c.pending[n:]
			c.lock.Unlock()
			return n, nil
		}
		started, wait := c.started, time.Until(c.next)
		if started && wait <= 0 {
			c.pending = c.nextFrame()
			c.next = time.Now().Add(c.FrameInterval)
			c.lock.Unlock()
			continue
		}
		c.lock.Unlock()

		if started {
			timer := time.NewTimer(wait)
			select {
			case <-c.wakeCh:
			case <-timer.C:
			}
			timer.Stop()
		} else {
			<-c.wakeCh
		}
	}
}

func (c *Camera) nextFrame() []byte {
	var f camera.Frame
	c.Scene.Render(&f)
	c.Scene.Step()
	out := make([]byte, 0, c.Noise+camera.RowCount*camera.RecordLength)
	for i := 0; i < c.Noise; i++ {
		// never SyncA so the frame itself stays intact
		b := byte(c.rand.Intn(255))
		if b >= camera.SyncA {
			b++
		}
		out = append(out, b)
	}
	for row := 0; row < camera.RowCount; row++ {
		out = append(out, camera.SyncA, camera.SyncB, byte(row))
		out = append(out, f.Row(row)...)
	}
	return out
}

// Close stops the camera and unblocks Read.
func (c *Camera) Close() error {
	c.lock.Lock()
	c.closed = true
	c.lock.Unlock()
	c.wakeUp()
	return nil
}

func (c *Camera) wakeUp() {
	select {
	case c.wakeCh <- struct{}{}:
	default:
	}
}
