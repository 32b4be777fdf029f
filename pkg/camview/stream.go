package camview

import "sync"

// DefaultStreamSize is the capacity of the receive buffer.
const DefaultStreamSize = 2048

// StreamBuffer is a bounded byte queue between the transport reader and
// the Receiver. Send never blocks: bytes that don't fit are dropped like
// a UART overrun.
type StreamBuffer struct {
	lock    sync.Mutex
	buf     []byte
	head    int
	size    int
	dropped uint64
	readyCh chan struct{}
}

// NewStreamBuffer creates a StreamBuffer.
func NewStreamBuffer(capacity int) *StreamBuffer {
	if capacity <= 0 {
		capacity = DefaultStreamSize
	}
	return &StreamBuffer{
		buf:     make([]byte, capacity),
		readyCh: make(chan struct{}, 1),
	}
}

// Send queues bytes and wakes up the consumer. It returns the
// number of bytes accepted.
func (s *StreamBuffer) Send(p []byte) int {
	s.lock.Lock()
	n := len(s.buf) - s.size
	if n > len(p) {
		n = len(p)
	}
	tail := (s.head + s.size) % len(s.buf)
	c := copy(s.buf[tail:], p[:n])
	copy(s.buf, p[c:n])
	s.size += n
	s.dropped += uint64(len(p) - n)
	s.lock.Unlock()

	select {
	case s.readyCh <- struct{}{}:
	default:
	}
	return n
}

// Receive takes up to len(p) queued bytes without blocking.
func (s *StreamBuffer) Receive(p []byte) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	n := s.size
	if n > len(p) {
		n = len(p)
	}
	c := copy(p[:n], s.buf[s.head:])
	copy(p[c:n], s.buf)
	s.head = (s.head + n) % len(s.buf)
	s.size -= n
	return n
}

// Ready is signaled after Send.
func (s *StreamBuffer) Ready() <-chan struct{} {
	return s.readyCh
}

// Len returns the number of queued bytes.
func (s *StreamBuffer) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.size
}

// Dropped returns the number of bytes dropped because the buffer was full.
func (s *StreamBuffer) Dropped() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.dropped
}
