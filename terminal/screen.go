package terminal

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/parameter"
	"github.com/lixenwraith/gravity/render"
)

// ErrNotTerminal is returned when stdin is not attached to a terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// markerGlyph fills a cell with the foreground color
const markerGlyph = '█'

// Screen is a render.Surface over a tcell screen
type Screen struct {
	screen  tcell.Screen
	worldW  float64
	worldH  float64
	events  chan tcell.Event
	polling bool
	done    chan struct{}
	finiOne sync.Once
}

// New opens the controlling terminal, mapping a worldW x worldH world onto it
func New(worldW, worldH float64) (*Screen, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(screen, worldW, worldH)
}

// NewWithScreen wraps an existing tcell screen and initializes it
func NewWithScreen(screen tcell.Screen, worldW, worldH float64) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()

	return &Screen{
		screen: screen,
		worldW: worldW,
		worldH: worldH,
		events: make(chan tcell.Event, parameter.EventQueueSize),
		done:   make(chan struct{}),
	}, nil
}

// StartPolling forwards tcell events into the drain channel from a dedicated goroutine
// The goroutine exits once Fini makes PollEvent return nil or closes done
func (s *Screen) StartPolling() {
	if s.polling {
		return
	}
	s.polling = true

	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.done:
				return
			}
		}
	}()
}

// Drain consumes every pending event without blocking and reports whether close was requested
func (s *Screen) Drain() bool {
	closeRequested := false
	for {
		select {
		case ev := <-s.events:
			if s.handleEvent(ev) {
				closeRequested = true
			}
		default:
			return closeRequested
		}
	}
}

// handleEvent returns true for close requests
func (s *Screen) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return isCloseKey(ev.Key())
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return false
}

// isCloseKey reports whether k ends the run
func isCloseKey(k tcell.Key) bool {
	return k == tcell.KeyEscape || k == tcell.KeyCtrlC
}

// Clear fills the screen with the background color
func (s *Screen) Clear(c render.RGB) {
	s.screen.SetStyle(tcell.StyleDefault.Background(render.RGBToTcell(c)))
	s.screen.Clear()
}

// FillCircle paints every cell whose center lies inside the scaled disk
// Disks smaller than a cell paint the cell containing the center
func (s *Screen) FillCircle(center r2.Vec, radius float64, c render.RGB) {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 || s.worldW <= 0 || s.worldH <= 0 {
		return
	}

	sx := float64(cols) / s.worldW
	sy := float64(rows) / s.worldH
	cx, cy := center.X*sx, center.Y*sy
	rx, ry := radius*sx, radius*sy

	style := tcell.StyleDefault.Foreground(render.RGBToTcell(c))

	painted := false
	if rx > 0 && ry > 0 {
		x0 := max(int(math.Floor(cx-rx)), 0)
		x1 := min(int(math.Ceil(cx+rx)), cols-1)
		y0 := max(int(math.Floor(cy-ry)), 0)
		y1 := min(int(math.Ceil(cy+ry)), rows-1)

		for y := y0; y <= y1; y++ {
			dy := (float64(y) + 0.5 - cy) / ry
			for x := x0; x <= x1; x++ {
				dx := (float64(x) + 0.5 - cx) / rx
				if dx*dx+dy*dy <= 1 {
					s.screen.SetContent(x, y, markerGlyph, nil, style)
					painted = true
				}
			}
		}
	}

	if !painted {
		x, y := int(math.Floor(cx)), int(math.Floor(cy))
		if x >= 0 && x < cols && y >= 0 && y < rows {
			s.screen.SetContent(x, y, markerGlyph, nil, style)
		}
	}
}

// Bounds returns the world extent mapped onto the terminal
func (s *Screen) Bounds() (float64, float64) {
	return s.worldW, s.worldH
}

// Show presents the frame
func (s *Screen) Show() {
	s.screen.Show()
}

// Fini restores the terminal; safe to call more than once
func (s *Screen) Fini() {
	s.finiOne.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}
