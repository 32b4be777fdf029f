package camera

// Canvas is where a frame is rendered. A dot is lit (black).
type Canvas interface {
	DrawFrame(x, y, w, h int)
	DrawDot(x, y int)
	DrawString(x, y int, s string)
}

// Instructions is shown until the camera starts streaming.
var Instructions = []struct {
	X, Y int
	Text string
}{
	{4, 11, "Connect ESP32-CAM"},
	{20, 23, "VCC - 3V3"},
	{20, 35, "GND - GND"},
	{20, 47, "U0R - TX"},
	{20, 59, "U0T - RX"},
}

// Render draws the frame in the given phase.
// Tones in between black and white are dithered over consecutive
// phases, see Tone.Visible.
func Render(c Canvas, f *Frame, t *Tables, phase Phase, initialized bool) {
	c.DrawFrame(0, 0, FrameWidth, FrameHeight)
	for i, cell := range f {
		pos := t.Coords[i]
		x, y := int(pos.X)*PixelsPerCell, int(pos.Y)
		for n, tone := range t.Tones[cell] {
			if tone.Visible(phase) {
				c.DrawDot(x+n, y)
			}
		}
	}
	if !initialized {
		for _, line := range Instructions {
			c.DrawString(line.X, line.Y, line.Text)
		}
	}
}
