package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/gravity/audio"
	"github.com/lixenwraith/gravity/config"
	"github.com/lixenwraith/gravity/engine"
	"github.com/lixenwraith/gravity/headless"
	"github.com/lixenwraith/gravity/record"
	"github.com/lixenwraith/gravity/terminal"
	"github.com/lixenwraith/gravity/window"
)

var (
	backendFlag     = flag.String("backend", "window", "Display backend: window, terminal, headless")
	configFlag      = flag.String("config", "", "TOML configuration file")
	framesFlag      = flag.Uint64("frames", 0, "Headless frame count (0 runs until interrupted)")
	soundFlag       = flag.Bool("sound", false, "Play a cue when particles pass close to a source")
	recordFlag      = flag.String("record", "", "SQLite database for sampled trajectories")
	recordEveryFlag = flag.Uint64("record-every", 60, "Record every Nth frame")
	statsFlag       = flag.Bool("stats", false, "Show frame statistics overlay (window backend)")
	debugFlag       = flag.Bool("debug", false, "Write logs to logs/gravity.log")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gravity: %v\n", err)
		log.Printf("Exit with error: %v", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup always executes
func run() error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	sim, err := engine.New(cfg)
	if err != nil {
		return err
	}
	log.Printf("Simulation created: %s", sim)

	// Audio is optional; failure leaves the run silent
	audioCfg := audio.LoadConfig()
	audioCfg.Enabled = audioCfg.Enabled || *soundFlag
	if audioCfg.Enabled {
		am := audio.NewManager(audioCfg)
		if err := am.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer am.Cleanup()
			sim.AddObserver(engine.ObserverFunc(func(_ *engine.Simulation, stats engine.FrameStats) {
				am.Cue(stats.Frame, stats.ApproachSource, stats.Approaches)
			}))
		}
	}

	if *recordFlag != "" {
		rec, err := record.Open(*recordFlag, *recordEveryFlag)
		if err != nil {
			return fmt.Errorf("recorder: %w", err)
		}
		if err := rec.Begin(sim); err != nil {
			rec.Close()
			return fmt.Errorf("recorder: %w", err)
		}
		sim.AddObserver(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("Recorder closed with error: %v", err)
			}
			log.Printf("Recorded %d frames to %s (run %d)", rec.Frames(), *recordFlag, rec.RunID())
		}()
	}

	switch *backendFlag {
	case "window":
		err = window.Run(sim, *statsFlag)
	case "terminal":
		err = runTerminal(sim)
	case "headless":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		headless.Run(ctx, sim, *framesFlag)
	default:
		return fmt.Errorf("unknown backend %q", *backendFlag)
	}

	log.Printf("Simulation ended: %s", sim)
	return err
}

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTerminal(sim *engine.Simulation) (err error) {
	cfg := sim.Config()
	scr, err := terminal.New(float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		if errors.Is(err, terminal.ErrNotTerminal) {
			return fmt.Errorf("%w (use -backend headless)", err)
		}
		return err
	}

	// Panic Recovery: restore the terminal before the stack trace is printed
	defer func() {
		if r := recover(); r != nil {
			scr.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRAVITY CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer scr.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	return terminal.Run(ctx, sim, scr)
}
