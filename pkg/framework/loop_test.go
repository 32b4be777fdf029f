package framework

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testRunnable struct {
	started chan struct{}
	stopped int32
	err     error
}

func newTestRunnable(err error) *testRunnable {
	return &testRunnable{started: make(chan struct{}), err: err}
}

func (r *testRunnable) Run(ctx context.Context) error {
	close(r.started)
	defer atomic.StoreInt32(&r.stopped, 1)
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	// make sure Loop.Run waits for this.
	time.Sleep(10 * time.Millisecond)
	return ctx.Err()
}

func TestLoopTriggerNextAndMessages(t *testing.T) {
	loop := NewLoop()
	loop.Interval = time.Hour
	msgCh := make(chan []Message, 4)
	loop.AddController(ControlFunc(func(cc ControlContext) error {
		msgCh <- cc.Messages()
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	loop.PostMessage("a")
	loop.PostMessage("b")
	loop.TriggerNext()
	select {
	case msgs := <-msgCh:
		require.Equal(t, []Message{"a", "b"}, msgs)
	case <-time.After(time.Second):
		t.Fatal("iteration not triggered")
	}

	loop.TriggerNext()
	select {
	case msgs := <-msgCh:
		require.Empty(t, msgs)
	case <-time.After(time.Second):
		t.Fatal("iteration not triggered")
	}

	cancel()
	require.NoError(t, <-errCh)
}

func TestLoopWaitsForRunnables(t *testing.T) {
	r := newTestRunnable(nil)
	loop := NewLoop().AddRunnable(NamedRun("test", r))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	<-r.started
	cancel()
	require.NoError(t, <-errCh)
	require.Equal(t, int32(1), atomic.LoadInt32(&r.stopped))
}

func TestLoopStopsOnRunnableError(t *testing.T) {
	failure := errors.New("failure")
	good, bad := newTestRunnable(nil), newTestRunnable(failure)
	loop := NewLoop().AddRunnable(good, bad)
	err := loop.Run(context.Background())
	require.Equal(t, failure, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&good.stopped))
}

func TestLoopCtlFrom(t *testing.T) {
	loop := NewLoop()
	var ctl LoopControl
	ready := make(chan struct{})
	loop.AddRunnable(RunnableFunc(func(ctx context.Context) error {
		ctl = LoopCtlFrom(ctx)
		close(ready)
		<-ctx.Done()
		return ctx.Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()
	<-ready
	require.True(t, ctl == LoopControl(loop))
	cancel()
	require.NoError(t, <-errCh)
	require.Nil(t, LoopCtlFrom(context.Background()))
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	e1, e2 := errors.New("e1"), errors.New("e2")
	require.Equal(t, e1, errs.Add(e1).Aggregate())
	err := errs.Add(nil, e2).Aggregate()
	require.Equal(t, "Multiple errors:\ne1\ne2", err.Error())
}
