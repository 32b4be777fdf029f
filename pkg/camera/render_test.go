package camera

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCanvas struct {
	frames  []image.Rectangle
	dots    map[image.Point]bool
	strings []string
}

func (c *testCanvas) DrawFrame(x, y, w, h int) {
	c.frames = append(c.frames, image.Rect(x, y, x+w, y+h))
}

func (c *testCanvas) DrawDot(x, y int) {
	if c.dots == nil {
		c.dots = make(map[image.Point]bool)
	}
	c.dots[image.Pt(x, y)] = true
}

func (c *testCanvas) DrawString(x, y int, s string) {
	c.strings = append(c.strings, s)
}

func TestRenderPhases(t *testing.T) {
	const all = FrameWidth * FrameHeight
	testCases := []struct {
		name string
		cell byte
		dots [PhaseCount]int
	}{
		{"black", 0x00, [3]int{all, all, all}},
		{"dark", 0x55, [3]int{0, all, all}},
		{"light", 0xaa, [3]int{all, 0, 0}},
		{"white", 0xff, [3]int{0, 0, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel()
			fillModel(m, tc.cell)
			for p := Phase(0); p < PhaseCount; p++ {
				require.Equal(t, p, m.Phase())
				canvas := &testCanvas{}
				m.Draw(canvas)
				assert.Lenf(t, canvas.dots, tc.dots[p], "phase %d", p)
				assert.Equal(t, []image.Rectangle{image.Rect(0, 0, FrameWidth, FrameHeight)}, canvas.frames)
				assert.Empty(t, canvas.strings)
			}
			require.Equal(t, Phase(0), m.Phase())
		})
	}
}

func TestRenderPixelPositions(t *testing.T) {
	var f Frame
	for i := range f {
		f[i] = 0xff
	}
	// row 2, cell 3: pixels 12..15 are black, white, light, dark.
	f[2*RowLength+3] = 0x39
	canvas := &testCanvas{}
	Render(canvas, &f, NewTables(), 0, true)
	require.Equal(t, map[image.Point]bool{{12, 2}: true, {14, 2}: true}, canvas.dots)

	canvas = &testCanvas{}
	Render(canvas, &f, NewTables(), 1, true)
	require.Equal(t, map[image.Point]bool{{12, 2}: true, {15, 2}: true}, canvas.dots)
}

func TestRenderInstructionsUntilConnected(t *testing.T) {
	m := NewModel()
	canvas := &testCanvas{}
	m.Draw(canvas)
	require.Len(t, canvas.strings, len(Instructions))
	require.Equal(t, "Connect ESP32-CAM", canvas.strings[0])
	require.Empty(t, canvas.dots)

	m.Feed(testRecord(0, testPayload(0)))
	canvas = &testCanvas{}
	m.Draw(canvas)
	require.Empty(t, canvas.strings)
}
