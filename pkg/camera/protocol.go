package camera

// Record framing.
const (
	SyncA byte = 'Y'
	SyncB byte = '2'

	// RowLength is the number of payload bytes in a row record.
	RowLength = 16
	// RowCount is the number of rows in a frame.
	RowCount = 64
	// FrameLength is the number of cells in the framebuffer.
	FrameLength = RowLength * RowCount
	// RecordLength is the full size of a record including sync bytes and row index.
	RecordLength = 3 + RowLength
	// LastRowOffset is the offset of the last row in the framebuffer.
	LastRowOffset = FrameLength - RowLength

	// PixelsPerCell is the number of 2-bit pixels packed in a byte.
	PixelsPerCell = 4
	// FrameWidth is the width of the decoded image in pixels.
	FrameWidth = RowLength * PixelsPerCell
	// FrameHeight is the height of the decoded image in pixels.
	FrameHeight = RowCount
)

// Control bytes sent upstream to the camera.
const (
	CmdStart0 byte = 'S'
	CmdStart1 byte = '2'
	CmdStop   byte = 's'
	CmdUp     byte = '+'
	CmdDown   byte = 'M'
	CmdRight  byte = '>'
	CmdLeft   byte = '<'
)

// StartSequence is sent once when a session starts.
var StartSequence = []byte{CmdStart0, CmdStart1}
