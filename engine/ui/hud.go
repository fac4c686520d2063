package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/sim"
)

const helpText = "[WASD] Pan [Q/E] Yaw [R/F] Pitch [Scroll] Zoom [G] Grid [B] Boxes [H] Help [P] Pause [Esc] Quit\n" +
	"[LClick] Select [Shift] Add [Ctrl+LClick] Attack [RClick] Move/Attack [Drag] Box select"

// HUD is the heads-up display: status bar on top, selected units at the
// bottom.
type HUD struct {
	TopBarHeight int
	PanelHeight  int
	ShowHelp     bool
}

func NewHUD() *HUD {
	return &HUD{
		TopBarHeight: 30,
		PanelHeight:  80,
		ShowHelp:     true,
	}
}

// Draw renders the entire HUD
func (h *HUD) Draw(screen *ebiten.Image, s *sim.Simulation) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	h.drawTopBar(screen, s, sw)
	h.drawUnitInfo(screen, s, sw, sh)
	if h.ShowHelp {
		ebitenutil.DebugPrintAt(screen, helpText, 10, h.TopBarHeight+6)
	}
	if team, ok := s.Winner(); ok {
		msg := fmt.Sprintf("%s WINS", team)
		ebitenutil.DebugPrintAt(screen, msg, sw/2-len(msg)*3, sh/2)
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image, s *sim.Simulation, sw int) {
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)
	ebitenutil.DebugPrintAt(screen, StatusLine(s, ebiten.ActualFPS()), 10, 8)
}

// StatusLine is the top bar text
func StatusLine(s *sim.Simulation, fps float64) string {
	state := "playing"
	if s.Loop.State == core.StatePaused {
		state = "PAUSED"
	}
	yaw, pitch := s.Camera.Angles()
	return fmt.Sprintf("FPS: %.0f | Tick: %d | %s | Player: %d  AI: %d | Selected: %d | Cam %.0f/%.0f x%.1f | %s",
		fps,
		s.Loop.CurrentTick(),
		state,
		s.Alive(core.TeamPlayer), s.Alive(core.TeamAI),
		s.Selection.Len(),
		yaw, pitch, s.Camera.Pullback(),
		s.Session.String()[:8],
	)
}

func (h *HUD) drawUnitInfo(screen *ebiten.Image, s *sim.Simulation, sw, sh int) {
	ids := s.Selection.IDs()
	if len(ids) == 0 {
		return
	}
	py := sh - h.PanelHeight
	vector.DrawFilledRect(screen, 0, float32(py), float32(sw), float32(h.PanelHeight), color.RGBA{0, 0, 0, 180}, false)

	x := 10
	for i, id := range ids {
		u := s.Units.Get(id)
		if u == nil {
			continue
		}
		// Small unit portrait
		portrait := color.RGBA{60, 120, 255, 200}
		if u.IsDead() {
			portrait = color.RGBA{90, 90, 90, 200}
		}
		vector.DrawFilledRect(screen, float32(x), float32(py+5), 40, 40, portrait, false)
		ratio := u.HealthRatio()
		if ratio < 0 {
			ratio = 0
		}
		vector.DrawFilledRect(screen, float32(x), float32(py+48), float32(40*ratio), 4, HealthColor(ratio), false)

		// Show stats for first selected
		if i == 0 {
			ebitenutil.DebugPrintAt(screen, UnitInfo(u), 10, py+58)
		}
		x += 45
	}
}

// UnitInfo summarizes one unit for the info panel
func UnitInfo(u *core.Unit) string {
	info := fmt.Sprintf("#%d %s | HP: %.0f/%.0f | DMG: %.0f | RNG: %.1f | %s",
		u.ID, u.Team, u.HP, u.MaxHP, u.AttackDamage, u.AttackRadius, u.Mode)
	if u.IsAttacking() && u.Target != core.NoUnit {
		info += fmt.Sprintf(" #%d", u.Target)
	}
	if u.Chasing {
		info += " (chasing)"
	}
	return info + " | " + u.Anim.Clip.String()
}

// HealthColor grades a health bar from green to red
func HealthColor(ratio float64) color.RGBA {
	switch {
	case ratio < 0.25:
		return color.RGBA{255, 0, 0, 255}
	case ratio < 0.5:
		return color.RGBA{255, 200, 0, 255}
	}
	return color.RGBA{0, 200, 0, 255}
}
