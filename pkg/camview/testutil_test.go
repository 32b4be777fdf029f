package camview

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/notify"
)

const testTimeout = 2 * time.Second

func testRecord(row, seed byte) []byte {
	rec := []byte{camera.SyncA, camera.SyncB, row}
	for i := 0; i < camera.RowLength; i++ {
		rec = append(rec, seed+byte(i))
	}
	return rec
}

type eventRecorder struct {
	ch chan notify.Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{ch: make(chan notify.Event, 16)}
}

func (r *eventRecorder) Notify(ctx context.Context, ev notify.Event) {
	r.ch <- ev
}

func (r *eventRecorder) expect(t *testing.T, kind notify.EventKind) notify.Event {
	select {
	case ev := <-r.ch:
		require.Equal(t, kind, ev.Kind)
		return ev
	case <-time.After(testTimeout):
		require.FailNow(t, "no event", "expect %s", kind)
	}
	return notify.Event{}
}

// testPort is the camera side of a serial link.
type testPort struct {
	io.Reader
	in *io.PipeWriter

	lock    sync.Mutex
	written bytes.Buffer
}

func newTestPort() *testPort {
	r, w := io.Pipe()
	return &testPort{Reader: r, in: w}
}

func (p *testPort) Write(data []byte) (int, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.written.Write(data)
}

func (p *testPort) Written() []byte {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]byte(nil), p.written.Bytes()...)
}

func (p *testPort) waitWritten(t *testing.T, expected []byte) {
	deadline := time.Now().Add(testTimeout)
	for time.Now().Before(deadline) {
		if bytes.Equal(p.Written(), expected) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, expected, p.Written())
}

func (p *testPort) Close() error {
	return p.in.Close()
}
