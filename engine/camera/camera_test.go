package camera

import (
	"math"
	"testing"

	"github.com/1siamBot/terrain-rts/engine/math3d"
)

type plane float64

func (p plane) HeightAt(x, z float64) float64 { return float64(p) }

func TestPitchAndPullbackClamp(t *testing.T) {
	c := New(DefaultConfig(), math3d.Vec3{})
	c.Update(Controls{Pitch: -1}, 10, nil) // 900 degrees down
	if _, pitch := c.Angles(); math.Abs(pitch+89) > 1e-9 {
		t.Errorf("pitch = %v, expected -89", pitch)
	}
	c.Update(Controls{Pitch: 1}, 10, nil)
	if _, pitch := c.Angles(); math.Abs(pitch) > 1e-9 {
		t.Errorf("pitch = %v, expected 0", pitch)
	}
	c.Update(Controls{Zoom: -100}, 0.016, nil)
	if c.Pullback() != 1 {
		t.Errorf("pullback = %v, expected 1", c.Pullback())
	}
}

func TestFocusGroundClamp(t *testing.T) {
	c := New(DefaultConfig(), math3d.Vec3{})
	c.Update(Controls{Forward: 1, Sprint: true}, 0.5, plane(7))
	f := c.Focus()
	if f.Y != 7 {
		t.Errorf("focus Y = %v, expected 7", f.Y)
	}
	// yaw 0: forward is -Z, sprint doubles move speed 3
	if math.Abs(f.Z+3) > 1e-9 || math.Abs(f.X) > 1e-9 {
		t.Errorf("focus = %v, expected (0, 7, -3)", f)
	}
}

func TestEyeOrbit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pitch = -90 + 1
	cfg.Pullback = 10
	c := New(cfg, math3d.V3(1, 2, 3))
	eye := c.Eye()
	if eye.Y <= 2 || math.Abs(eye.Sub(c.Focus()).Len()-10) > 1e-9 {
		t.Errorf("eye = %v", eye)
	}
}

func TestCenterRayHitsFocus(t *testing.T) {
	c := New(DefaultConfig(), math3d.V3(4, 0, -2))
	ray := c.ScreenRay(640, 360)
	toFocus := c.Focus().Sub(ray.Position).Normalize()
	if ray.Direction.Dot(toFocus) < 1-1e-9 {
		t.Errorf("center ray %v does not point at focus %v", ray.Direction, toFocus)
	}
	p, ok := c.WorldToScreen(c.Focus())
	if !ok || math.Abs(p.X-640) > 1e-6 || math.Abs(p.Y-360) > 1e-6 {
		t.Errorf("focus projects to %v (%v)", p, ok)
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	c := New(DefaultConfig(), math3d.Vec3{})
	target := math3d.V3(3, 0, 5)
	sp, ok := c.WorldToScreen(target)
	if !ok {
		t.Fatal("target should be visible")
	}
	ray := c.ScreenRay(sp.X, sp.Y)
	// intersect with y=0
	tHit := -ray.Position.Y / ray.Direction.Y
	got := ray.At(tHit)
	if got.Sub(target).Len() > 1e-6 {
		t.Errorf("round trip = %v, expected %v", got, target)
	}
}

func TestBehindCameraNotVisible(t *testing.T) {
	c := New(DefaultConfig(), math3d.Vec3{})
	behind := c.Eye().Add(c.Eye().Sub(c.Focus()))
	if _, ok := c.WorldToScreen(behind); ok {
		t.Error("point behind the eye should not project")
	}
}
