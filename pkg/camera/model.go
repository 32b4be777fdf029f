package camera

import "sync"

// Frame is the framebuffer, one packed byte per cell, row-major.
type Frame [FrameLength]byte

// Row returns the cells of row n.
func (f *Frame) Row(n int) []byte {
	return f[n*RowLength : (n+1)*RowLength]
}

// Phase is the redraw alternation counter cycling 0, 1, 2.
type Phase uint8

// PhaseCount is the number of phases.
const PhaseCount Phase = 3

// Next calculates the next phase.
func (p Phase) Next() Phase {
	if p++; p >= PhaseCount {
		return 0
	}
	return p
}

// Stats counts what the decoder has seen.
type Stats struct {
	// Records is the number of completed records.
	Records uint64
	// Discarded is the number of bytes dropped while looking for sync.
	Discarded uint64
	// Clamped is the number of records with an out-of-range row index.
	Clamped uint64
}

// FeedResult tells what happened during a Feed.
type FeedResult struct {
	// Rows is the number of rows written.
	Rows int
	// Connected is set when the first record of the session is decoded.
	Connected bool
}

// Model is the state shared between the decoder and the renderers.
// All access goes through one lock.
type Model struct {
	Tables *Tables

	lock        sync.Mutex
	frame       Frame
	decoder     Decoder
	initialized bool
	phase       Phase
	stats       Stats
}

// NewModel creates a Model with a blank (white) frame.
func NewModel() *Model {
	m := &Model{Tables: DefaultTables()}
	for i := range m.frame {
		m.frame[i] = 0xff
	}
	return m
}

// Feed decodes received bytes and writes completed rows into the frame.
func (m *Model) Feed(data []byte) (r FeedResult) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for _, b := range data {
		before := m.decoder.State()
		rec, ok := m.decoder.Decode(b)
		after := m.decoder.State()
		if before == AwaitingSync2 && after != Filling {
			m.stats.Discarded++
		}
		if !ok {
			if after == AwaitingSync1 {
				m.stats.Discarded++
			}
			continue
		}
		m.writeRecord(&rec)
		r.Rows++
		if !m.initialized {
			m.initialized, r.Connected = true, true
		}
	}
	return
}

func (m *Model) writeRecord(rec *Record) {
	m.stats.Records++
	if rec.Clamped() {
		m.stats.Clamped++
	}
	off := rec.Offset()
	copy(m.frame[off:off+RowLength], rec.Payload[:])
}

// Frame returns a copy of the framebuffer.
func (m *Model) Frame() (f Frame) {
	m.lock.Lock()
	f = m.frame
	m.lock.Unlock()
	return
}

// Initialized tells if at least one record has been decoded.
func (m *Model) Initialized() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.initialized
}

// Phase gets the alternation phase used by the next Draw.
func (m *Model) Phase() Phase {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.phase
}

// DecodeState gets the state of the decoder.
func (m *Model) DecodeState() DecodeState {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.decoder.State()
}

// Stats gets a copy of decoder statistics.
func (m *Model) Stats() Stats {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.stats
}

// Draw renders the frame onto the canvas and advances the phase.
func (m *Model) Draw(c Canvas) {
	m.lock.Lock()
	defer m.lock.Unlock()
	Render(c, &m.frame, m.Tables, m.phase, m.initialized)
	m.phase = m.phase.Next()
}
