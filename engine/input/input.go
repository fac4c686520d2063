package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1siamBot/terrain-rts/engine/camera"
)

// PollFrame samples the mouse and modifier keys once per rendered frame
func PollFrame() Frame {
	x, y := ebiten.CursorPosition()
	f := Frame{X: float64(x), Y: float64(y)}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		f.Buttons |= ButtonLeft
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		f.Buttons |= ButtonRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		f.Mods |= ModAdd
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		f.Mods |= ModAttack
	}
	return f
}

// PollCameraControls maps WASD / arrows to panning, Q/E to yaw, R/F to
// pitch and the wheel to zoom. Shift sprints.
func PollCameraControls() camera.Controls {
	var c camera.Controls
	axis := func(neg, pos []ebiten.Key) float64 {
		v := 0.0
		for _, k := range neg {
			if ebiten.IsKeyPressed(k) {
				v--
				break
			}
		}
		for _, k := range pos {
			if ebiten.IsKeyPressed(k) {
				v++
				break
			}
		}
		return v
	}
	c.Forward = axis([]ebiten.Key{ebiten.KeyS, ebiten.KeyDown}, []ebiten.Key{ebiten.KeyW, ebiten.KeyUp})
	c.Right = axis([]ebiten.Key{ebiten.KeyA, ebiten.KeyLeft}, []ebiten.Key{ebiten.KeyD, ebiten.KeyRight})
	c.Yaw = axis([]ebiten.Key{ebiten.KeyQ}, []ebiten.Key{ebiten.KeyE})
	c.Pitch = axis([]ebiten.Key{ebiten.KeyF}, []ebiten.Key{ebiten.KeyR})

	_, scrollY := ebiten.Wheel()
	c.Zoom = -scrollY
	c.Sprint = ebiten.IsKeyPressed(ebiten.KeyShift)
	return c
}

// IsKeyJustPressed returns true if key was just pressed this frame
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
