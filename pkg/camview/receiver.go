package camview

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/notify"
)

// ChunkSize is the number of bytes fed to the model at a time.
const ChunkSize = 64

// Receiver drains the transport into the Model.
type Receiver struct {
	Reader   io.Reader
	Model    *camera.Model
	Stream   *StreamBuffer
	Notifier notify.Notifier
	// Started is called once the transport is being read.
	Started func() error
	// Redraw is called after all available bytes are consumed.
	Redraw func()
}

// NewReceiver creates a Receiver.
func NewReceiver(r io.Reader, model *camera.Model) *Receiver {
	return &Receiver{
		Reader: r,
		Model:  model,
		Stream: NewStreamBuffer(DefaultStreamSize),
	}
}

// Run implements Runnable. It returns as soon as ctx is done and
// never touches the Model afterwards.
func (r *Receiver) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errCh := make(chan error, 1)
	go r.readLoop(ctx, errCh)

	if r.Started != nil {
		if err := r.Started(); err != nil {
			return err
		}
	}

	buf := make([]byte, ChunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-r.Stream.Ready():
			r.drain(ctx, buf)
			if r.Redraw != nil {
				r.Redraw()
			}
		}
	}
}

func (r *Receiver) drain(ctx context.Context, buf []byte) {
	for ctx.Err() == nil {
		n := r.Stream.Receive(buf)
		if n == 0 {
			return
		}
		res := r.Model.Feed(buf[:n])
		if glog.V(3) {
			glog.Infof("fed %d bytes, %d rows", n, res.Rows)
		}
		if res.Connected && r.Notifier != nil {
			r.Notifier.Notify(ctx, notify.Event{Kind: notify.EventConnected, Time: time.Now()})
		}
	}
}

func (r *Receiver) readLoop(ctx context.Context, errCh chan<- error) {
	buf := make([]byte, 256)
	for {
		n, err := r.Reader.Read(buf)
		if n > 0 {
			if sent := r.Stream.Send(buf[:n]); sent < n {
				glog.V(2).Infof("receive buffer full, dropped %d bytes", n-sent)
			}
		}
		if err != nil {
			if ctx.Err() == nil {
				errCh <- err
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
