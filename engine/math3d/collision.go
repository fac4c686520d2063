package math3d

import "math"

// Ray is a half-line starting at Position heading along Direction
type Ray struct {
	Position  Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 { return r.Position.Add(r.Direction.Scale(t)) }

// BoundingBox is an axis-aligned box
type BoundingBox struct {
	Min, Max Vec3
}

// Empty reports whether the box has been zeroed out
func (b BoundingBox) Empty() bool { return b.Min == b.Max }

// Translate moves both corners by d
func (b BoundingBox) Translate(d Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Center of the box
func (b BoundingBox) Center() Vec3 { return b.Min.Lerp(b.Max, 0.5) }

// Footprint projects the box onto the ground plane (X, Z)
func (b BoundingBox) Footprint() Rect {
	return Rect{X: b.Min.X, Y: b.Min.Z, W: b.Max.X - b.Min.X, H: b.Max.Z - b.Min.Z}
}

// RayBox tests a ray against a box using the slab method. dist is the
// distance along the ray to the entry point (0 when the origin is inside).
func RayBox(r Ray, b BoundingBox) (hit bool, dist float64) {
	tMin := 0.0
	tMax := math.MaxFloat64
	origin := [3]float64{r.Position.X, r.Position.Y, r.Position.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return false, 0
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (lo[i] - origin[i]) * inv
		t2 := (hi[i] - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false, 0
		}
	}
	return true, tMin
}

// Rect is a 2D rectangle: X/Y is the min corner
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints builds a normalized rectangle spanning two corners
func RectFromPoints(a, b Vec2) Rect {
	x0, x1 := math.Min(a.X, b.X), math.Max(a.X, b.X)
	y0, y1 := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Area() float64 { return r.W * r.H }

// Intersects reports a strictly positive overlap
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Intersection returns the overlapping rectangle (zero if none)
func (r Rect) Intersection(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains checks whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Center of the rectangle
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }

// PointInCircle checks if point lies within radius of center
func PointInCircle(point, center Vec2, radius float64) bool {
	d := point.Sub(center)
	return d.Dot(d) <= radius*radius
}
