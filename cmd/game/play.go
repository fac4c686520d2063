package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/1siamBot/terrain-rts/engine/input"
	"github.com/1siamBot/terrain-rts/engine/render"
	"github.com/1siamBot/terrain-rts/engine/sim"
	"github.com/1siamBot/terrain-rts/engine/ui"
)

var flagGridStride int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the viewer",
	Long: `Open a window on the battlefield.

Controls:
  WASD/Arrows    - Pan the camera
  Q/E            - Turn left/right
  R/F            - Tilt up/down
  Scroll         - Zoom
  Shift          - Move the camera faster
  Left click     - Select a unit (Shift adds, Ctrl attacks with the selection)
  Left drag      - Box select (Shift adds)
  Right click    - Attack an enemy, or move to the ground or an ally
  G / B / H      - Toggle terrain grid / unit boxes / help
  P              - Pause
  Esc            - Quit

Examples:
  game play
  game play --map ./maps/valley.png --grid-stride 2`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagGridStride, "grid-stride", 4, "Draw every Nth terrain sample in the wireframe")
}

// Game implements ebiten.Game
type Game struct {
	sim    *sim.Simulation
	viewer *render.Viewer
	hud    *ui.HUD
}

func (g *Game) Update() error {
	if input.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if input.IsKeyJustPressed(ebiten.KeyG) {
		g.viewer.ShowGrid = !g.viewer.ShowGrid
	}
	if input.IsKeyJustPressed(ebiten.KeyB) {
		g.viewer.ShowBoxes = !g.viewer.ShowBoxes
	}
	if input.IsKeyJustPressed(ebiten.KeyH) {
		g.hud.ShowHelp = !g.hud.ShowHelp
	}
	if input.IsKeyJustPressed(ebiten.KeyP) {
		g.sim.TogglePause()
	}

	g.sim.Frame(g.sim.Loop.Elapsed(), input.PollCameraControls(), input.PollFrame())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen, g.sim)
	g.hud.Draw(screen, g.sim)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sim.Camera.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, logger, err := setup()
	if err != nil {
		return err
	}

	cam := s.Config.Camera
	ebiten.SetWindowSize(cam.ScreenW, cam.ScreenH)
	ebiten.SetWindowTitle("Terrain RTS")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	game := &Game{
		sim:    s,
		viewer: render.NewViewer(s.Terrain, flagGridStride),
		hud:    ui.NewHUD(),
	}
	s.Loop.Play() // restart the frame clock
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	s.Stats.Summary(s.Logger())
	logger.Debug("viewer closed")
	return nil
}
