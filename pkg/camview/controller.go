package camview

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/display"
	fx "github.com/robotalks/camview/pkg/framework"
	"github.com/robotalks/camview/pkg/notify"
)

// KeyTimeout limits how long HandleKey waits for the loop.
const KeyTimeout = 2 * time.Second

// Sink receives every rendered screen. It must not keep the Bitmap.
type Sink interface {
	ShowScreen(*display.Bitmap)
}

// KeyResult is the result of a key press.
type KeyResult struct {
	// Path is the snapshot file for KeyOk.
	Path string
	Err  error
}

type keyMsg struct {
	key    Key
	result chan KeyResult
}

// Controller runs a camera session: it receives frames, renders them
// at the loop cadence and forwards key presses to the camera.
type Controller struct {
	Port      io.ReadWriter
	Model     *camera.Model
	Receiver  *Receiver
	Snapshots *Snapshotter
	Notifier  notify.Notifier
	Sinks     []Sink

	loop      fx.LoopControl
	screen    *display.Bitmap
	shown     display.Bitmap
	shownLock sync.Mutex
	writeLock sync.Mutex
	loopLock  sync.RWMutex
	stopSent  bool
}

// NewController creates a Controller over the port.
func NewController(port io.ReadWriter, notifier notify.Notifier) *Controller {
	model := camera.NewModel()
	c := &Controller{
		Port:      port,
		Model:     model,
		Receiver:  NewReceiver(port, model),
		Snapshots: &Snapshotter{Root: ".", Model: model, Notifier: notifier},
		Notifier:  notifier,
		screen:    display.New(),
	}
	c.Receiver.Notifier = notifier
	c.Receiver.Started = c.Start
	return c
}

// AddSink adds sinks to receive rendered screens.
func (c *Controller) AddSink(sinks ...Sink) *Controller {
	c.Sinks = append(c.Sinks, sinks...)
	return c
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	c.loopLock.Lock()
	c.loop = loop
	c.loopLock.Unlock()
	c.Receiver.Redraw = loop.TriggerNext
	loop.AddRunnable(fx.NamedRun("receiver", c.Receiver))
	loop.AddController(c)
}

// Start sends the start sequence to the camera.
func (c *Controller) Start() error {
	glog.Info("starting camera session")
	return c.send(camera.StartSequence...)
}

// Stop sends the stop command to the camera. It's only sent once.
func (c *Controller) Stop() error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	if c.stopSent {
		return nil
	}
	c.stopSent = true
	glog.Info("stopping camera session")
	_, err := c.Port.Write([]byte{camera.CmdStop})
	return err
}

func (c *Controller) send(cmd ...byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	_, err := c.Port.Write(cmd)
	return err
}

// HandleKey processes a key press in the loop and waits for the result.
func (c *Controller) HandleKey(key Key) KeyResult {
	if _, ok := keyNames[key]; !ok {
		return KeyResult{Err: ErrUnknownKey}
	}
	loop := c.loopCtl()
	if loop == nil {
		return KeyResult{Err: ErrNotRunning}
	}
	msg := &keyMsg{key: key, result: make(chan KeyResult, 1)}
	loop.PostMessage(msg)
	loop.TriggerNext()
	select {
	case res := <-msg.result:
		return res
	case <-time.After(KeyTimeout):
		return KeyResult{Err: context.DeadlineExceeded}
	}
}

// TriggerRedraw requests a redraw in the next loop iteration.
func (c *Controller) TriggerRedraw() {
	if loop := c.loopCtl(); loop != nil {
		loop.TriggerNext()
	}
}

func (c *Controller) loopCtl() fx.LoopControl {
	c.loopLock.RLock()
	defer c.loopLock.RUnlock()
	return c.loop
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	for _, m := range cc.Messages() {
		if msg, ok := m.(*keyMsg); ok {
			msg.result <- c.processKey(cc.Context(), msg.key)
		}
	}
	c.redraw()
	return nil
}

func (c *Controller) processKey(ctx context.Context, key Key) (res KeyResult) {
	glog.V(1).Infof("key %s", key)
	if cmd, ok := key.Command(); ok {
		res.Err = c.send(cmd)
		return
	}
	res.Path, res.Err = c.Snapshots.Save(ctx)
	return
}

func (c *Controller) redraw() {
	c.screen.Clear()
	c.Model.Draw(c.screen)
	c.shownLock.Lock()
	c.shown = *c.screen
	c.shownLock.Unlock()
	for _, sink := range c.Sinks {
		sink.ShowScreen(c.screen)
	}
}

// Screen returns a copy of the last rendered screen.
func (c *Controller) Screen() *display.Bitmap {
	c.shownLock.Lock()
	defer c.shownLock.Unlock()
	b := c.shown
	return &b
}

// Status summarizes the session.
type Status struct {
	Connected bool
	State     camera.DecodeState
	Stats     camera.Stats
	Buffered  int
	Dropped   uint64
}

// Status gets the current session status.
func (c *Controller) Status() Status {
	return Status{
		Connected: c.Model.Initialized(),
		State:     c.Model.DecodeState(),
		Stats:     c.Model.Stats(),
		Buffered:  c.Receiver.Stream.Len(),
		Dropped:   c.Receiver.Stream.Dropped(),
	}
}
