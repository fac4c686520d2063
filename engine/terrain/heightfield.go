package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/1siamBot/terrain-rts/engine/math3d"
)

// DefaultHeightScale maps an 8-bit luminance sample to world units
const DefaultHeightScale = 32.0 / 256.0

const (
	coarseStep = 1.0
	fineStep   = 0.1
)

var ErrBadExtents = errors.New("terrain: bad extents")

// HeightField is a dense grid of elevation samples centred under the world
// origin. Samples are row-major: index z*width + x.
type HeightField struct {
	width, height int
	samples       []float64
}

// New builds a height field from an existing sample buffer (copied)
func New(width, height int, samples []float64) (*HeightField, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadExtents, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d grid", ErrBadExtents, len(samples), width, height)
	}
	buf := make([]float64, len(samples))
	copy(buf, samples)
	return &HeightField{width: width, height: height, samples: buf}, nil
}

// Flat returns a field of constant elevation
func Flat(width, height int, elevation float64) (*HeightField, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadExtents, width, height)
	}
	buf := make([]float64, width*height)
	for i := range buf {
		buf[i] = elevation
	}
	return &HeightField{width: width, height: height, samples: buf}, nil
}

func (h *HeightField) Width() int  { return h.width }
func (h *HeightField) Height() int { return h.height }

// Samples returns a copy of the backing buffer, for mesh building
func (h *HeightField) Samples() []float64 {
	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

// Sample returns the raw elevation at grid corner (x, z), 0 out of range
func (h *HeightField) Sample(x, z int) float64 {
	if x < 0 || z < 0 || x >= h.width || z >= h.height {
		return 0
	}
	return h.samples[z*h.width+x]
}

// ToGrid converts world XZ into grid space
func (h *HeightField) ToGrid(x, z float64) (gx, gz float64) {
	return x + float64(h.width)/2, z + float64(h.height)/2
}

// ToWorld converts grid XZ back into world space
func (h *HeightField) ToWorld(gx, gz float64) (x, z float64) {
	return gx - float64(h.width)/2, gz - float64(h.height)/2
}

// HeightAt returns the interpolated elevation under world (x, z). Points
// outside [0, width-1) x [0, height-1) in grid space return 0.
func (h *HeightField) HeightAt(x, z float64) float64 {
	gx, gz := h.ToGrid(x, z)
	return h.gridHeight(gx, gz)
}

func (h *HeightField) gridHeight(gx, gz float64) float64 {
	// checked before the int conversion so NaN and huge values never index
	if !h.inGrid(gx, gz) {
		return 0
	}
	ix := int(math.Floor(gx))
	iz := int(math.Floor(gz))
	fx := gx - float64(ix)
	fz := gz - float64(iz)
	p := math3d.V2(fx, fz)

	h00 := h.samples[iz*h.width+ix]
	h10 := h.samples[iz*h.width+ix+1]
	h01 := h.samples[(iz+1)*h.width+ix]

	// Cells are split along the (1,0)-(0,1) diagonal, same as the mesh.
	if fx <= 1-fz {
		u, v, w := math3d.Barycenter(p, math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(0, 1))
		return u*h00 + v*h10 + w*h01
	}
	h11 := h.samples[(iz+1)*h.width+ix+1]
	u, v, w := math3d.Barycenter(p, math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1))
	return u*h10 + v*h11 + w*h01
}

// inGrid reports whether (gx, gz) lies in [0, width-1) x [0, height-1).
// NaN is outside.
func (h *HeightField) inGrid(gx, gz float64) bool {
	return gx >= 0 && gz >= 0 && gx < float64(h.width-1) && gz < float64(h.height-1)
}

// Raymarch walks the ray from near to far and returns the first point where
// it dips below the surface. The march is coarse first, then backs up one
// step and refines. The returned Y is snapped to the surface height.
func (h *HeightField) Raymarch(ray math3d.Ray, near, far float64) (math3d.Vec3, bool) {
	dir := ray.Direction.Normalize()
	if dir == (math3d.Vec3{}) || far < near {
		return math3d.Vec3{}, false
	}
	ray.Direction = dir

	t, ok := h.march(ray, near, far, coarseStep)
	if !ok {
		return math3d.Vec3{}, false
	}
	start := math.Max(near, t-coarseStep)
	t, ok = h.march(ray, start, t, fineStep)
	if !ok {
		return math3d.Vec3{}, false
	}

	p := ray.At(t)
	p.Y = h.HeightAt(p.X, p.Z)
	return p, true
}

// march returns the first distance in [from, to] at which the ray point is
// below the terrain. Leaving the grid stops the march with no hit.
func (h *HeightField) march(ray math3d.Ray, from, to, step float64) (float64, bool) {
	for t := from; ; t += step {
		if t > to {
			t = to
		}
		p := ray.At(t)
		gx, gz := h.ToGrid(p.X, p.Z)
		if !h.inGrid(gx, gz) {
			return 0, false
		}
		if p.Y < h.gridHeight(gx, gz) {
			return t, true
		}
		if t >= to {
			return 0, false
		}
	}
}
