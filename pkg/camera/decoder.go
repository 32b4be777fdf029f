package camera

// DecodeState is the state of the Decoder.
type DecodeState int

// Decode states
const (
	// AwaitingSync1 means bytes are discarded until SyncA shows up.
	AwaitingSync1 DecodeState = iota
	// AwaitingSync2 means SyncA is received and SyncB must follow.
	AwaitingSync2
	// Filling means both sync bytes are received and the record is being filled.
	Filling
)

// String implements fmt.Stringer.
func (s DecodeState) String() string {
	switch s {
	case AwaitingSync1:
		return "AwaitingSync1"
	case AwaitingSync2:
		return "AwaitingSync2"
	case Filling:
		return "Filling"
	}
	return "Unknown"
}

// Record is a decoded row record.
type Record struct {
	Row     byte
	Payload [RowLength]byte
}

// Offset returns the offset of the row in the framebuffer.
// A row index beyond the last row is treated as row 0.
func (r *Record) Offset() int {
	if off := int(r.Row) * RowLength; off <= LastRowOffset {
		return off
	}
	return 0
}

// Clamped tells if the row index is out of range.
func (r *Record) Clamped() bool {
	return int(r.Row)*RowLength > LastRowOffset
}

// Decoder extracts row records from a byte stream.
type Decoder struct {
	buf  [RecordLength]byte
	fill int
}

// State gets the current decode state.
func (d *Decoder) State() DecodeState {
	switch d.fill {
	case 0:
		return AwaitingSync1
	case 1:
		return AwaitingSync2
	}
	return Filling
}

// Reset drops the partial record.
func (d *Decoder) Reset() {
	d.fill = 0
}

// Decode consumes one byte. It returns true with the record when
// the byte completes one.
func (d *Decoder) Decode(b byte) (rec Record, ok bool) {
	// A mismatch on the second sync byte restarts the hunt with the same
	// byte, which may itself be SyncA.
	if d.fill == 1 && b != SyncB {
		d.fill = 0
	}
	if d.fill == 0 && b != SyncA {
		return
	}

	d.buf[d.fill] = b
	if d.fill++; d.fill < RecordLength {
		return
	}

	d.fill = 0
	rec.Row = d.buf[2]
	copy(rec.Payload[:], d.buf[3:])
	return rec, true
}
