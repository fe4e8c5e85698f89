//go:build ebiten

package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifeboard/internal/render"
	"lifeboard/internal/ui"
	"lifeboard/pkg/core"
)

// Game adapts a simulation to the ebiten.Game interface. The simulation
// advances on its own timer; Update only polls input.
type Game struct {
	sim      core.Sim
	controls *Controls
	painter  *render.GridPainter
	overlay  *ui.Overlay
	hud      *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale    int
	hudWidth int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		controls: NewControls(sim, cfg.Seed),
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		onColor:  render.LiveColor,
		offColor: render.DeadColor,
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
	}
}

var keyActions = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeySpace, ActionStartStop},
	{ebiten.KeyN, ActionStep},
	{ebiten.KeyC, ActionClear},
	{ebiten.KeyR, ActionRandomize},
	{ebiten.KeyS, ActionRandomizeClock},
	{ebiten.KeyEqual, ActionSlower},
	{ebiten.KeyNumpadAdd, ActionSlower},
	{ebiten.KeyMinus, ActionFaster},
	{ebiten.KeyNumpadSubtract, ActionFaster},
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			g.controls.Do(ka.action)
			g.hud.SetMessage(g.controls.Message())
		}
	}

	g.overlay.Update()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if x, y, ok := g.overlay.Hovered(); ok {
			g.controls.ToggleAt(x, y)
			g.hud.SetMessage(g.controls.Message())
		}
	}
	g.hud.Update(g.boardWidth())
	return nil
}

// Draw renders the current board, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.offColor)
	g.painter.Blit(screen, g.sim.Snapshot(), g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.boardWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

// ScreenSize returns the board plus HUD dimensions in pixels.
func (g *Game) ScreenSize() (int, int) {
	h := g.sim.Size().H * g.scale
	if g.hudWidth > 0 {
		h = max(h, ui.PanelMinHeight)
	}
	return g.boardWidth() + g.hudWidth, max(h, 1)
}

func (g *Game) boardWidth() int {
	return g.sim.Size().W * g.scale
}
