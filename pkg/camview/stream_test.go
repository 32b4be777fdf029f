package camview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamBufferSendReceive(t *testing.T) {
	s := NewStreamBuffer(8)
	require.Equal(t, 3, s.Send([]byte{1, 2, 3}))
	require.Equal(t, 3, s.Len())

	buf := make([]byte, 2)
	require.Equal(t, 2, s.Receive(buf))
	assert.Equal(t, []byte{1, 2}, buf)
	require.Equal(t, 1, s.Receive(buf))
	assert.Equal(t, byte(3), buf[0])
	require.Equal(t, 0, s.Receive(buf))
	require.Equal(t, 0, s.Len())
}

func TestStreamBufferWrapAround(t *testing.T) {
	s := NewStreamBuffer(8)
	buf := make([]byte, 8)
	s.Send([]byte{0, 1, 2, 3, 4, 5})
	require.Equal(t, 5, s.Receive(buf[:5]))
	require.Equal(t, 7, s.Send([]byte{6, 7, 8, 9, 10, 11, 12}))
	require.Equal(t, 8, s.Receive(buf))
	assert.Equal(t, []byte{5, 6, 7, 8, 9, 10, 11, 12}, buf)
}

func TestStreamBufferOverflow(t *testing.T) {
	s := NewStreamBuffer(4)
	require.Equal(t, 4, s.Send([]byte{1, 2, 3, 4, 5, 6}))
	require.Equal(t, 0, s.Send([]byte{7}))
	assert.EqualValues(t, 3, s.Dropped())

	buf := make([]byte, 8)
	require.Equal(t, 4, s.Receive(buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf[:4])
}

func TestStreamBufferReady(t *testing.T) {
	s := NewStreamBuffer(0)
	select {
	case <-s.Ready():
		require.Fail(t, "ready without data")
	default:
	}
	s.Send([]byte{1})
	s.Send([]byte{2})
	<-s.Ready()
	select {
	case <-s.Ready():
		require.Fail(t, "wake signal isn't single slot")
	default:
	}
	require.Equal(t, 2, s.Len())
}
