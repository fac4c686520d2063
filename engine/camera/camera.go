package camera

import (
	"math"

	"github.com/1siamBot/terrain-rts/engine/math3d"
)

const deg2rad = math.Pi / 180

// Ground answers elevation queries for the focus clamp
type Ground interface {
	HeightAt(x, z float64) float64
}

// Config holds the orbit camera settings. Angles are in degrees.
type Config struct {
	FovY          float64 `yaml:"fov_y"`
	MinPitch      float64 `yaml:"min_pitch"`
	MaxPitch      float64 `yaml:"max_pitch"`
	Pitch         float64 `yaml:"pitch"`
	Yaw           float64 `yaml:"yaw"`
	Pullback      float64 `yaml:"pullback"`
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	Near          float64 `yaml:"near"`
	Far           float64 `yaml:"far"`
	ScreenW       int     `yaml:"screen_w"`
	ScreenH       int     `yaml:"screen_h"`
}

func DefaultConfig() Config {
	return Config{
		FovY:          45,
		MinPitch:      -89,
		MaxPitch:      0,
		Pitch:         -45,
		Yaw:           0,
		Pullback:      30,
		MoveSpeed:     3,
		RotationSpeed: 90,
		ZoomSpeed:     1,
		Near:          0.01,
		Far:           1000,
		ScreenW:       1280,
		ScreenH:       720,
	}
}

// Controls is one frame of camera input. Axes run -1..1.
type Controls struct {
	Forward float64
	Right   float64
	Yaw     float64 // positive turns right
	Pitch   float64 // positive tilts up
	Zoom    float64 // positive pulls back
	Sprint  bool
}

// Camera is an RTS orbit camera: it circles a ground-clamped focus point
// at a pull-back distance.
type Camera struct {
	cfg      Config
	focus    math3d.Vec3
	yaw      float64 // radians
	pitch    float64 // radians
	pullback float64

	view     math3d.Mat4
	proj     math3d.Mat4
	viewProj math3d.Mat4
	invVP    math3d.Mat4
	dirty    bool
}

// New creates a camera looking at focus
func New(cfg Config, focus math3d.Vec3) *Camera {
	c := &Camera{
		cfg:      cfg,
		focus:    focus,
		yaw:      cfg.Yaw * deg2rad,
		pitch:    cfg.Pitch * deg2rad,
		pullback: cfg.Pullback,
		dirty:    true,
	}
	c.clamp()
	return c
}

// Update applies a frame of controls and re-clamps the focus to the ground
func (c *Camera) Update(ctl Controls, dt float64, ground Ground) {
	factor := 1.0
	if ctl.Sprint {
		factor = 2
	}

	c.yaw -= ctl.Yaw * c.cfg.RotationSpeed * deg2rad * dt * factor
	c.pitch += ctl.Pitch * c.cfg.RotationSpeed * deg2rad * dt * factor
	c.pullback += ctl.Zoom * c.cfg.ZoomSpeed
	c.clamp()

	// planar movement, rotated by yaw
	sin, cos := math.Sincos(c.yaw)
	fwd := math3d.V2(-sin, -cos)
	right := math3d.V2(cos, -sin)
	move := fwd.Scale(ctl.Forward).Add(right.Scale(ctl.Right)).Scale(c.cfg.MoveSpeed * dt * factor)
	c.focus.X += move.X
	c.focus.Z += move.Y

	if ground != nil {
		c.focus.Y = ground.HeightAt(c.focus.X, c.focus.Z)
	}
	c.dirty = true
}

func (c *Camera) clamp() {
	lo, hi := c.cfg.MinPitch*deg2rad, c.cfg.MaxPitch*deg2rad
	if c.pitch < lo {
		c.pitch = lo
	} else if c.pitch > hi {
		c.pitch = hi
	}
	if c.pullback < 1 {
		c.pullback = 1
	}
}

// Resize updates the viewport
func (c *Camera) Resize(w, h int) {
	if w == c.cfg.ScreenW && h == c.cfg.ScreenH {
		return
	}
	c.cfg.ScreenW, c.cfg.ScreenH = w, h
	c.dirty = true
}

// SetFocus jumps the orbit centre to p
func (c *Camera) SetFocus(p math3d.Vec3) {
	c.focus = p
	c.dirty = true
}

func (c *Camera) Focus() math3d.Vec3 { return c.focus }
func (c *Camera) Pullback() float64  { return c.pullback }

// Angles returns yaw and pitch in degrees
func (c *Camera) Angles() (yaw, pitch float64) {
	return c.yaw / deg2rad, c.pitch / deg2rad
}

// Eye returns the camera position
func (c *Camera) Eye() math3d.Vec3 {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	offset := math3d.V3(cp*sy, -sp, cp*cy).Scale(c.pullback)
	return c.focus.Add(offset)
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	c.view = math3d.Mat4LookAt(c.Eye(), c.focus, math3d.V3(0, 1, 0))
	aspect := float64(c.cfg.ScreenW) / float64(c.cfg.ScreenH)
	c.proj = math3d.Mat4Perspective(c.cfg.FovY*deg2rad, aspect, c.cfg.Near, c.cfg.Far)
	c.viewProj = c.proj.Mul(c.view)
	c.invVP = c.viewProj.Invert()
}

// ViewProj returns the combined view-projection matrix
func (c *Camera) ViewProj() math3d.Mat4 {
	c.update()
	return c.viewProj
}

// ScreenRay unprojects a screen point into a world ray starting on the
// near plane.
func (c *Camera) ScreenRay(sx, sy float64) math3d.Ray {
	c.update()
	ndcX := sx/float64(c.cfg.ScreenW)*2 - 1
	ndcY := 1 - sy/float64(c.cfg.ScreenH)*2
	near := c.invVP.TransformPoint(math3d.V3(ndcX, ndcY, -1))
	far := c.invVP.TransformPoint(math3d.V3(ndcX, ndcY, 1))
	return math3d.Ray{Position: near, Direction: far.Sub(near).Normalize()}
}

// WorldToScreen projects a world point. ok is false behind the camera.
func (c *Camera) WorldToScreen(p math3d.Vec3) (math3d.Vec2, bool) {
	c.update()
	clip := c.viewProj.MulVec4(math3d.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= 0 {
		return math3d.Vec2{}, false
	}
	ndcX, ndcY := clip.X/clip.W, clip.Y/clip.W
	return math3d.V2(
		(ndcX*0.5+0.5)*float64(c.cfg.ScreenW),
		(1-(ndcY*0.5+0.5))*float64(c.cfg.ScreenH),
	), true
}

// Near and Far return the clip planes, used for ground ray marching
func (c *Camera) Near() float64 { return c.cfg.Near }
func (c *Camera) Far() float64  { return c.cfg.Far }
