package terminal

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/config"
	"github.com/lixenwraith/gravity/engine"
	"github.com/lixenwraith/gravity/render"
)

func newTestScreen(t *testing.T, cols, rows int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewWithScreen(sim, 1600, 1000)
	if err != nil {
		t.Fatalf("NewWithScreen failed: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(scr.Fini)
	return scr, sim
}

func cellColor(t *testing.T, sim tcell.SimulationScreen, x, y int) (rune, render.RGB) {
	t.Helper()
	mainc, _, style, _ := sim.GetContent(x, y)
	fg, _, _ := style.Decompose()
	return mainc, render.TcellToRGB(fg)
}

func TestFillCirclePaintsScaledDisk(t *testing.T) {
	scr, sim := newTestScreen(t, 160, 100)

	scr.Clear(render.RGBBlack)
	scr.FillCircle(r2.Vec{X: 800, Y: 500}, 8, render.RGBRed)
	scr.Show()

	// Radius 8 world units = 0.8 cells around (80, 50)
	for _, cell := range [][2]int{{79, 49}, {80, 49}, {79, 50}, {80, 50}} {
		r, c := cellColor(t, sim, cell[0], cell[1])
		if r != markerGlyph || c != render.RGBRed {
			t.Errorf("Cell %v: expected red marker, got %q %v", cell, r, c)
		}
	}

	if r, _ := cellColor(t, sim, 82, 50); r == markerGlyph {
		t.Error("Expected cell outside radius to stay empty")
	}
}

func TestFillCircleSubCellMarker(t *testing.T) {
	scr, sim := newTestScreen(t, 80, 25)

	scr.Clear(render.RGBBlack)
	scr.FillCircle(r2.Vec{X: 20, Y: 20}, 1, render.RGBGreen)
	scr.Show()

	if r, c := cellColor(t, sim, 1, 0); r != markerGlyph || c != render.RGBGreen {
		t.Errorf("Expected single green cell, got %q %v", r, c)
	}
}

func TestFillCircleClipsOutOfBounds(t *testing.T) {
	scr, sim := newTestScreen(t, 80, 25)

	scr.Clear(render.RGBBlack)
	scr.FillCircle(r2.Vec{X: -500, Y: -500}, 8, render.RGBRed)
	scr.FillCircle(r2.Vec{X: 5000, Y: 5000}, 8, render.RGBRed)
	scr.FillCircle(r2.Vec{X: 0, Y: 0}, 100, render.RGBBlue)
	scr.Show()

	if r, c := cellColor(t, sim, 0, 0); r != markerGlyph || c != render.RGBBlue {
		t.Errorf("Expected clipped disk at origin, got %q %v", r, c)
	}
}

func TestBounds(t *testing.T) {
	scr, _ := newTestScreen(t, 80, 25)
	if w, h := scr.Bounds(); w != 1600 || h != 1000 {
		t.Errorf("Expected world bounds 1600x1000, got %vx%v", w, h)
	}
}

func TestIsCloseKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		want bool
	}{
		{tcell.KeyEscape, true},
		{tcell.KeyCtrlC, true},
		{tcell.KeyEnter, false},
		{tcell.KeyRune, false},
	}

	for _, tt := range tests {
		if got := isCloseKey(tt.key); got != tt.want {
			t.Errorf("isCloseKey(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDrainResizeDoesNotClose(t *testing.T) {
	scr, _ := newTestScreen(t, 80, 25)

	scr.events <- tcell.NewEventResize(100, 40)
	if scr.Drain() {
		t.Error("Expected resize not to request close")
	}
	if scr.Drain() {
		t.Error("Expected empty drain not to request close")
	}
}

func TestDrainEscapeRequestsClose(t *testing.T) {
	scr, _ := newTestScreen(t, 80, 25)

	scr.events <- tcell.NewEventResize(100, 40)
	scr.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if !scr.Drain() {
		t.Error("Expected Escape to request close")
	}
	if scr.Drain() {
		t.Error("Expected drained queue not to request close again")
	}
}

func TestDrainOtherKeyDoesNotClose(t *testing.T) {
	scr, _ := newTestScreen(t, 80, 25)

	scr.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	if scr.Drain() {
		t.Error("Expected rune key not to request close")
	}
}

func TestPollingStopsAfterFini(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	scr, err := NewWithScreen(sim, 1600, 1000)
	if err != nil {
		t.Fatalf("NewWithScreen failed: %v", err)
	}

	// Fill the queue so the forwarder would block on its next send
	for i := 0; i < cap(scr.events); i++ {
		scr.events <- tcell.NewEventResize(80, 25)
	}
	scr.StartPolling()
	sim.PostEvent(tcell.NewEventResize(90, 30))

	scr.Fini()
	scr.Fini()

	select {
	case <-scr.done:
	default:
		t.Error("Expected Fini to close done")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	scr, _ := newTestScreen(t, 80, 25)

	cfg := config.Default()
	cfg.Particles = 10
	sim, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Run(ctx, sim, scr); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if sim.State() != engine.StateClosed {
		t.Errorf("Expected CLOSED, got %v", sim.State())
	}
	if sim.FrameNumber() != 0 {
		t.Errorf("Expected no physics frames after immediate cancel, got %d", sim.FrameNumber())
	}
}

func TestRunRendersUntilCancel(t *testing.T) {
	scr, sim := newTestScreen(t, 160, 100)

	cfg := config.Default()
	cfg.Particles = 1
	cfg.FPS = 1000
	s, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.AddObserver(engine.ObserverFunc(func(_ *engine.Simulation, stats engine.FrameStats) {
		if stats.Frame >= 3 {
			cancel()
		}
	}))

	if err := Run(ctx, s, scr); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if s.FrameNumber() != 3 {
		t.Errorf("Expected exactly 3 frames, got %d", s.FrameNumber())
	}

	// Left source at (500,500) maps to cell (50,50)
	if r, c := cellColor(t, sim, 50, 50); r != markerGlyph || c != render.RGBWhite {
		t.Errorf("Expected white source marker, got %q %v", r, c)
	}
}
