package camview

import (
	"context"
	"io/ioutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/camview/pkg/camera"
	"github.com/robotalks/camview/pkg/display"
	fx "github.com/robotalks/camview/pkg/framework"
	"github.com/robotalks/camview/pkg/notify"
)

type screenRecorder struct {
	ch chan display.Bitmap
}

func (r *screenRecorder) ShowScreen(b *display.Bitmap) {
	select {
	case r.ch <- *b:
	default:
	}
}

type controllerTest struct {
	port   *testPort
	ctl    *Controller
	events *eventRecorder
	screen *screenRecorder
	cancel context.CancelFunc
	errCh  chan error
}

func startController(t *testing.T) *controllerTest {
	ct := &controllerTest{
		port:   newTestPort(),
		events: newEventRecorder(),
		screen: &screenRecorder{ch: make(chan display.Bitmap, 1)},
		errCh:  make(chan error, 1),
	}
	ct.ctl = NewController(ct.port, ct.events).AddSink(ct.screen)
	ct.ctl.Snapshots.Root = t.TempDir()
	loop := fx.NewLoop()
	loop.Interval = time.Hour
	loop.Add(ct.ctl)
	var ctx context.Context
	ctx, ct.cancel = context.WithCancel(context.Background())
	go func() { ct.errCh <- loop.Run(ctx) }()
	ct.port.waitWritten(t, []byte{'S', '2'})
	return ct
}

func (ct *controllerTest) stop(t *testing.T) {
	ct.cancel()
	select {
	case err := <-ct.errCh:
		require.NoError(t, err)
	case <-time.After(testTimeout):
		require.FailNow(t, "loop not stopped")
	}
	ct.port.Close()
}

func (ct *controllerTest) nextScreen(t *testing.T) display.Bitmap {
	select {
	case b := <-ct.screen.ch:
		return b
	case <-time.After(testTimeout):
		require.FailNow(t, "no screen")
	}
	return display.Bitmap{}
}

func TestControllerKeys(t *testing.T) {
	ct := startController(t)
	defer ct.stop(t)

	for _, key := range []Key{KeyUp, KeyDown, KeyRight, KeyLeft} {
		res := ct.ctl.HandleKey(key)
		require.NoError(t, res.Err)
		assert.Empty(t, res.Path)
	}
	ct.port.waitWritten(t, []byte{'S', '2', '+', 'M', '>', '<'})

	res := ct.ctl.HandleKey(KeyOk)
	require.NoError(t, res.Err)
	ct.events.expect(t, notify.EventSnapshotSaved)
	data, err := ioutil.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Len(t, data, camera.BitmapHeaderLength+camera.FrameLength)
	// snapshot sends nothing to the camera
	assert.Equal(t, []byte{'S', '2', '+', 'M', '>', '<'}, ct.port.Written())

	assert.Equal(t, ErrUnknownKey, ct.ctl.HandleKey(Key(0)).Err)
}

func TestControllerRendersFrames(t *testing.T) {
	ct := startController(t)
	defer ct.stop(t)

	ct.ctl.TriggerRedraw()
	// instructions are shown before any row arrives
	blank := ct.nextScreen(t)
	assert.NotEqual(t, display.Bitmap{}, blank)

	var rows []byte
	for row := byte(0); row < camera.RowCount; row++ {
		rec := []byte{camera.SyncA, camera.SyncB, row}
		for i := 0; i < camera.RowLength; i++ {
			rec = append(rec, 0)
		}
		rows = append(rows, rec...)
	}
	_, err := ct.port.in.Write(rows)
	require.NoError(t, err)
	ct.events.expect(t, notify.EventConnected)

	deadline := time.Now().Add(testTimeout)
	for time.Now().Before(deadline) && ct.ctl.Status().Stats.Records < camera.RowCount {
		time.Sleep(time.Millisecond)
	}
	status := ct.ctl.Status()
	assert.True(t, status.Connected)
	assert.EqualValues(t, camera.RowCount, status.Stats.Records)
	assert.Equal(t, camera.AwaitingSync1, status.State)

	// all black cells light every pixel of the frame area
	for {
		ct.ctl.TriggerRedraw()
		b := ct.nextScreen(t)
		if b.Dot(10, 10) && b.Dot(62, 62) {
			break
		}
		require.True(t, time.Now().Before(deadline), "frame not rendered")
	}
	screen := ct.ctl.Screen()
	for y := 0; y < camera.FrameHeight; y++ {
		for x := 0; x < camera.FrameWidth; x++ {
			require.Truef(t, screen.Dot(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestControllerStopOnce(t *testing.T) {
	port := newTestPort()
	defer port.Close()
	ctl := NewController(port, nil)
	require.NoError(t, ctl.Stop())
	require.NoError(t, ctl.Stop())
	assert.Equal(t, []byte{'s'}, port.Written())
}

func TestControllerNotRunning(t *testing.T) {
	port := newTestPort()
	defer port.Close()
	ctl := NewController(port, nil)
	assert.Equal(t, ErrNotRunning, ctl.HandleKey(KeyUp).Err)
	assert.Empty(t, port.Written())
}
