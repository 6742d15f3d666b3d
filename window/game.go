package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/engine"
	"github.com/lixenwraith/gravity/render"
)

// Game adapts a Simulation to ebiten's update/draw loop
// ebiten caps Update at the configured TPS and presents after Draw
type Game struct {
	sim       *engine.Simulation
	showStats bool
	stats     engine.FrameStats

	// closeRequested polls close conditions; replaced in tests
	closeRequested func() bool
}

// NewGame creates a Game; showStats overlays frame counters
func NewGame(sim *engine.Simulation, showStats bool) *Game {
	return &Game{
		sim:            sim,
		showStats:      showStats,
		closeRequested: pollClose,
	}
}

// pollClose reports a window close event or a held Escape key
func pollClose() bool {
	return ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape)
}

// Update runs one frame of the state machine; returns ebiten.Termination once closed
func (g *Game) Update() error {
	stats, state := g.sim.Frame(g.closeRequested())
	if state == engine.StateClosed {
		return ebiten.Termination
	}
	g.stats = stats
	return nil
}

// Draw renders sources then particles, plus the optional stats line
func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.sim.Config()
	g.sim.Draw(&imageSurface{
		img:    screen,
		width:  float64(cfg.Width),
		height: float64(cfg.Height),
	})

	if g.showStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.1f  FPS %.1f  frame %d  approaches %d  non-finite %d",
			ebiten.ActualTPS(), ebiten.ActualFPS(), g.stats.Frame, g.stats.Approaches, g.stats.NonFinite))
	}
}

// Layout keeps a fixed logical resolution equal to the world size
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.sim.Config()
	return cfg.Width, cfg.Height
}

// Run opens the window and blocks until the simulation closes
func Run(sim *engine.Simulation, showStats bool) error {
	cfg := sim.Config()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.FPS)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(NewGame(sim, showStats)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// imageSurface is a render.Surface over an ebiten image with 1:1 world pixels
type imageSurface struct {
	img    *ebiten.Image
	width  float64
	height float64
}

func (s *imageSurface) Clear(c render.RGB) {
	s.img.Fill(c)
}

func (s *imageSurface) FillCircle(center r2.Vec, radius float64, c render.RGB) {
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (s *imageSurface) Bounds() (float64, float64) {
	return s.width, s.height
}
