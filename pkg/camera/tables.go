package camera

import "sync"

// Tone is a quantized gray level of a 2-bit pixel.
type Tone uint8

// Tones
const (
	ToneBlack Tone = 0
	ToneDark  Tone = 85
	ToneLight Tone = 170
	ToneWhite Tone = 255
)

// Visible tells if a pixel of this tone is lit in the given phase.
// Black is always lit and white never is. Dark and light tones alternate
// so that dark shows in two of three phases and light in one.
func (t Tone) Visible(p Phase) bool {
	switch t {
	case ToneBlack:
		return true
	case ToneDark:
		return p != 0
	case ToneLight:
		return p == 0
	}
	return false
}

// Coord is the position of a framebuffer cell.
// X counts cells, not pixels.
type Coord struct {
	X, Y uint8
}

// Tables are the lookup tables shared by renderers.
type Tables struct {
	Coords [FrameLength]Coord
	Tones  [256][PixelsPerCell]Tone
}

// NewTables computes the lookup tables.
func NewTables() *Tables {
	t := &Tables{}
	for i := range t.Coords {
		t.Coords[i] = Coord{X: uint8(i % RowLength), Y: uint8(i / RowLength)}
	}
	for b := range t.Tones {
		for i := 0; i < PixelsPerCell; i++ {
			t.Tones[b][i] = toneOf(byte(b) >> uint(6-i*2))
		}
	}
	return t
}

// toneOf maps the lowest 2 bits to a tone: 00, 01, 10, 11 to 0, 85, 170, 255.
func toneOf(bits byte) Tone {
	return Tone(bits&3) * ToneDark
}

var (
	defaultTables     *Tables
	defaultTablesOnce sync.Once
)

// DefaultTables returns tables built once for the process.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		defaultTables = NewTables()
	})
	return defaultTables
}
