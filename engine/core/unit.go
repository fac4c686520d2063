package core

import "github.com/1siamBot/terrain-rts/engine/math3d"

// UnitID is a registry handle. Ids are never reused within a session.
type UnitID int

// NoUnit marks an empty target or slot
const NoUnit UnitID = -1

// Ground answers elevation queries
type Ground interface {
	HeightAt(x, z float64) float64
}

// Unit is one entity. The registry owns every Unit; callers only borrow
// pointers for the duration of a tick.
type Unit struct {
	ID UnitID

	Position        math3d.Vec3
	Rotation        math3d.Vec3 // euler radians, yaw in Y
	Scale           math3d.Vec3
	Dimensions      math3d.Vec3
	DimensionOffset math3d.Vec3
	OffsetY         float64

	Team              Team
	HP                float64
	MaxHP             float64
	AttackRadius      float64
	AttackDamage      float64
	AttackCooldown    float64
	AttackCooldownMax float64
	Target            UnitID

	MoveSpeed float64
	TargetPos math3d.Vec2 // ground plane (X, Z)

	Box       math3d.BoundingBox
	Transform math3d.Mat4
	Anim      AnimState

	Mode    Mode
	Chasing bool // attacking and closing in on the target
	Action  bool // one-shot clip in progress

	dirty  bool
	anchor math3d.Vec3 // position the box was last translated to
}

func (u *Unit) IsDead() bool      { return u.Mode == ModeDead }
func (u *Unit) IsAttacking() bool { return u.Mode == ModeAttacking }

// IsMoving is true for moving units and for attackers chasing a target
func (u *Unit) IsMoving() bool {
	return u.Mode == ModeMoving || (u.Mode == ModeAttacking && u.Chasing)
}

// HealthRatio returns HP as a fraction of MaxHP
func (u *Unit) HealthRatio() float64 {
	if u.MaxHP <= 0 {
		return 0
	}
	return u.HP / u.MaxHP
}

// Ground returns the unit's ground-plane position
func (u *Unit) Ground() math3d.Vec2 { return u.Position.XZ() }

// SetClip selects an animation and restarts it
func (u *Unit) SetClip(c Clip) {
	u.Anim = AnimState{Clip: c}
}

func (u *Unit) MarkDirty()  { u.dirty = true }
func (u *Unit) Dirty() bool { return u.dirty }

// DeriveBox rebuilds the bounding box from dimensions around the current
// position. Only used at spawn; later updates translate the cached box.
func (u *Unit) DeriveBox() {
	half := math3d.V3(u.Dimensions.X*u.Scale.X/2, u.Dimensions.Y*u.Scale.Y/2, u.Dimensions.Z*u.Scale.Z/2)
	center := u.Position.Add(u.DimensionOffset)
	u.Box = math3d.BoundingBox{Min: center.Sub(half), Max: center.Add(half)}
	u.anchor = u.Position
}

// ClearBox zeroes the box, removing the unit from picking and collision
func (u *Unit) ClearBox() {
	u.Box = math3d.BoundingBox{}
}

// Footprint is the ground rectangle of the box at the unit's current
// position, including any movement not yet applied to the box.
func (u *Unit) Footprint() math3d.Rect {
	fp := u.Box.Footprint()
	fp.X += u.Position.X - u.anchor.X
	fp.Y += u.Position.Z - u.anchor.Z
	return fp
}

// Refresh snaps the unit to the ground, rebuilds its transform and moves the
// cached box by the position delta since the last refresh.
func (u *Unit) Refresh(g Ground) {
	h := 0.0
	if g != nil {
		h = g.HeightAt(u.Position.X, u.Position.Z)
	}
	u.Position.Y = u.OffsetY + h
	u.Transform = math3d.Mat4Translate(u.Position.X, u.Position.Y, u.Position.Z).
		Mul(math3d.Mat4RotateZYX(u.Rotation)).
		Mul(math3d.Mat4Scale(u.Scale.X, u.Scale.Y, u.Scale.Z))
	if !u.Box.Empty() {
		u.Box = u.Box.Translate(u.Position.Sub(u.anchor))
	}
	u.anchor = u.Position
	u.dirty = false
}
