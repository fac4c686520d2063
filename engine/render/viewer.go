package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
	"github.com/1siamBot/terrain-rts/engine/sim"
	"github.com/1siamBot/terrain-rts/engine/terrain"
)

// TeamColors are the unit body colors per team
var TeamColors = map[core.Team]color.RGBA{
	core.TeamPlayer: {60, 120, 255, 255}, // blue
	core.TeamAI:     {230, 60, 50, 255},  // red
}

var (
	background  = color.RGBA{20, 20, 30, 255}
	lowGround   = color.RGBA{34, 90, 34, 255}
	highGround  = color.RGBA{200, 190, 150, 255}
	selectColor = color.RGBA{0, 255, 0, 200}
	corpseColor = color.RGBA{90, 90, 90, 255}
	dragBorder  = color.RGBA{0, 255, 0, 128}
	dragFill    = color.RGBA{0, 255, 0, 30}
	healthBack  = color.RGBA{40, 40, 40, 200}
	healthFill  = color.RGBA{0, 200, 0, 255}
	healthLow   = color.RGBA{220, 60, 40, 255}
	facingColor = color.RGBA{255, 255, 255, 180}
	unitOutline = color.RGBA{255, 255, 255, 120}
)

// Viewer draws a debug view of a simulation: a wireframe of the height
// field, unit boxes colored by team, selection, health and the drag rect.
type Viewer struct {
	ShowGrid  bool
	ShowBoxes bool

	grid   []math3d.Vec3 // world points, row-major, every stride samples
	cols   int
	rows   int
	lo, hi float64
}

// NewViewer samples the height field once; stride thins the wireframe.
func NewViewer(hf *terrain.HeightField, stride int) *Viewer {
	if stride < 1 {
		stride = 1
	}
	v := &Viewer{ShowGrid: true, ShowBoxes: true}
	samples := hf.Samples()
	v.lo, v.hi = math.Inf(1), math.Inf(-1)
	for _, h := range samples {
		v.lo = math.Min(v.lo, h)
		v.hi = math.Max(v.hi, h)
	}
	for z := 0; z < hf.Height(); z += stride {
		v.rows++
		v.cols = 0
		for x := 0; x < hf.Width(); x += stride {
			v.cols++
			wx, wz := hf.ToWorld(float64(x), float64(z))
			v.grid = append(v.grid, math3d.V3(wx, samples[z*hf.Width()+x], wz))
		}
	}
	return v
}

// Draw renders one frame of s
func (v *Viewer) Draw(screen *ebiten.Image, s *sim.Simulation) {
	screen.Fill(background)
	if v.ShowGrid {
		v.drawTerrain(screen, s)
	}

	s.Units.Each(func(u *core.Unit) {
		v.drawUnit(screen, s, u)
	})

	if r, ok := s.DragRect(); ok {
		DrawSelectionBox(screen, r)
	}
}

func (v *Viewer) drawTerrain(screen *ebiten.Image, s *sim.Simulation) {
	project := func(i int) (math3d.Vec2, bool) {
		return s.Camera.WorldToScreen(v.grid[i])
	}
	for r := 0; r < v.rows; r++ {
		for c := 0; c < v.cols; c++ {
			i := r*v.cols + c
			a, ok := project(i)
			if !ok {
				continue
			}
			clr := HeightColor(v.grid[i].Y, v.lo, v.hi)
			if c+1 < v.cols {
				if b, ok := project(i + 1); ok {
					vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
				}
			}
			if r+1 < v.rows {
				if b, ok := project(i + v.cols); ok {
					vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
				}
			}
		}
	}
}

func (v *Viewer) drawUnit(screen *ebiten.Image, s *sim.Simulation, u *core.Unit) {
	base, ok := s.Camera.WorldToScreen(u.Position)
	if !ok {
		return
	}
	bx, by := float32(base.X), float32(base.Y)

	// corpses have no box left to draw
	if u.Box.Empty() {
		vector.StrokeLine(screen, bx-4, by-4, bx+4, by+4, 2, corpseColor, false)
		vector.StrokeLine(screen, bx-4, by+4, bx+4, by-4, 2, corpseColor, false)
		return
	}

	selected := s.Selection.Contains(u.ID)
	body := TeamColors[u.Team]
	if u.IsDead() {
		body = corpseColor
	}
	if v.ShowBoxes {
		edge := body
		if selected {
			edge = selectColor
		}
		drawBox(screen, s, u.Box, edge)
	}
	vector.DrawFilledCircle(screen, bx, by, 5, body, false)
	vector.StrokeCircle(screen, bx, by, 5, 1, unitOutline, false)

	// facing
	sin, cos := math.Sincos(u.Rotation.Y)
	if tip, ok := s.Camera.WorldToScreen(u.Position.Add(math3d.V3(sin, 0, cos))); ok {
		vector.StrokeLine(screen, bx, by, float32(tip.X), float32(tip.Y), 1, facingColor, false)
	}

	if selected || u.HP < u.MaxHP {
		top := u.Box.Center()
		top.Y = u.Box.Max.Y
		if p, ok := s.Camera.WorldToScreen(top); ok {
			drawHealthBar(screen, float32(p.X), float32(p.Y)-8, u.HealthRatio())
		}
	}
}

// drawBox projects the 12 edges of an axis-aligned box
func drawBox(screen *ebiten.Image, s *sim.Simulation, b math3d.BoundingBox, clr color.Color) {
	corners := BoxCorners(b)
	var pts [8]math3d.Vec2
	for i, c := range corners {
		p, ok := s.Camera.WorldToScreen(c)
		if !ok {
			return
		}
		pts[i] = p
	}
	for _, e := range boxEdges {
		a, b := pts[e[0]], pts[e[1]]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
	}
}

// boxEdges index into BoxCorners: bottom ring, top ring, verticals
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxCorners lists the corners of b; bit 0 picks X, bit 1 Z, bit 2 Y.
func BoxCorners(b math3d.BoundingBox) [8]math3d.Vec3 {
	var out [8]math3d.Vec3
	for i := range out {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Z = b.Max.Z
		}
		if i&4 != 0 {
			p.Y = b.Max.Y
		}
		out[i] = p
	}
	return out
}

func drawHealthBar(screen *ebiten.Image, cx, y float32, ratio float64) {
	const barW, barH = 24, 3
	ratio = math.Max(0, math.Min(1, ratio))
	fill := healthFill
	if ratio < 0.3 {
		fill = healthLow
	}
	x := cx - barW/2
	vector.DrawFilledRect(screen, x, y, barW, barH, healthBack, false)
	vector.DrawFilledRect(screen, x, y, float32(barW*ratio), barH, fill, false)
}

// DrawSelectionBox draws the drag rectangle on screen
func DrawSelectionBox(screen *ebiten.Image, r math3d.Rect) {
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(screen, x, y, w, h, dragFill, false)
	vector.StrokeRect(screen, x, y, w, h, 1, dragBorder, false)
}

// HeightColor blends from low to high ground across [lo, hi]
func HeightColor(h, lo, hi float64) color.RGBA {
	t := 0.0
	if hi > lo {
		t = math.Max(0, math.Min(1, (h-lo)/(hi-lo)))
	}
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{
		R: mix(lowGround.R, highGround.R),
		G: mix(lowGround.G, highGround.G),
		B: mix(lowGround.B, highGround.B),
		A: 255,
	}
}
