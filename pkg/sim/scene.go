package sim

import (
	"math"

	"github.com/robotalks/camview/pkg/camera"
)

// Pixel levels, 2 bits each.
const (
	LevelBlack = 0
	LevelWhite = 3
)

// Scene is the picture seen by the simulated camera: a horizontal
// gradient from white to dark gray with a black needle spinning
// around a movable center.
type Scene struct {
	Center Pos2D
	Needle Angle
	Length float64
	// Spin is added to Needle on every Step.
	Spin Angle
}

// NewScene creates a Scene with the needle in the middle.
func NewScene() *Scene {
	return &Scene{
		Center: Pos2D{X: camera.FrameWidth / 2, Y: camera.FrameHeight / 2},
		Length: 20,
		Spin:   AngleFromDegrees(6),
	}
}

// Move shifts the needle center, keeping it in the frame.
func (s *Scene) Move(dx, dy float64) {
	s.Center = s.Center.Add(Pos2D{X: dx, Y: dy})
	s.Center.X = math.Max(0, math.Min(camera.FrameWidth-1, s.Center.X))
	s.Center.Y = math.Max(0, math.Min(camera.FrameHeight-1, s.Center.Y))
}

// Step advances the animation by one frame.
func (s *Scene) Step() {
	s.Needle = s.Needle.Add(s.Spin)
}

// Render draws the scene into a frame, 4 pixels per cell.
func (s *Scene) Render(f *camera.Frame) {
	for i := range f {
		x := (i % camera.RowLength) * camera.PixelsPerCell
		var cell byte
		for k := 0; k < camera.PixelsPerCell; k++ {
			cell = cell<<2 | (LevelWhite - byte((x+k)*3/camera.FrameWidth))
		}
		f[i] = cell
	}
	for d := 0.0; d <= s.Length; d += 0.5 {
		p := s.Center.Add(s.Needle.Project(d))
		setLevel(f, int(math.Round(p.X)), int(math.Round(p.Y)), LevelBlack)
	}
}

func setLevel(f *camera.Frame, x, y int, level byte) {
	if x < 0 || x >= camera.FrameWidth || y < 0 || y >= camera.FrameHeight {
		return
	}
	shift := uint(6 - 2*(x%camera.PixelsPerCell))
	i := y*camera.RowLength + x/camera.PixelsPerCell
	f[i] = f[i]&^(3<<shift) | level<<shift
}
