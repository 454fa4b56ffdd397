package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/game"
	"chosenoffset.com/wolfmaze/internal/maze"
	ebitenrender "chosenoffset.com/wolfmaze/internal/render/ebiten"
	"chosenoffset.com/wolfmaze/internal/render/term"
	"chosenoffset.com/wolfmaze/internal/replay"
	"chosenoffset.com/wolfmaze/internal/simulation"
	"chosenoffset.com/wolfmaze/internal/world/maploader"

	"github.com/gdamore/tcell/v2"
)

type options struct {
	levelPath  string
	configPath string
	assetsDir  string
	recordPath string
	replayPath string
	logPath    string
	terminal   bool
	headless   bool
	verbose    bool
	width      int
	height     int
}

func main() {
	var opts options
	flag.StringVar(&opts.levelPath, "level", "", "level JSON file (default: built-in demo maze)")
	flag.StringVar(&opts.configPath, "config", "", "simulation config JSON file")
	flag.StringVar(&opts.assetsDir, "assets", "assets", "directory with textures and models")
	flag.StringVar(&opts.recordPath, "record", "", "record commands to this file")
	flag.StringVar(&opts.replayPath, "replay", "", "play back a recording")
	flag.StringVar(&opts.logPath, "log", "", "write logs to this file")
	flag.BoolVar(&opts.terminal, "term", false, "draw in the terminal instead of a window")
	flag.BoolVar(&opts.headless, "headless", false, "with -replay, run the recording without drawing and print the result")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.IntVar(&opts.width, "width", 960, "window width")
	flag.IntVar(&opts.height, "height", 600, "window height")
	flag.Parse()

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	cfg := simulation.DefaultConfig()
	if opts.configPath != "" {
		if cfg, err = simulation.LoadConfig(opts.configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	level := maploader.DefaultLevel()
	if opts.levelPath != "" {
		if level, err = maploader.LoadLevel(opts.levelPath); err != nil {
			log.Fatalf("Failed to load level: %v", err)
		}
	}

	var rec *replay.Recording
	if opts.replayPath != "" {
		if rec, err = replay.LoadFile(opts.replayPath); err != nil {
			log.Fatalf("Failed to load recording: %v", err)
		}
		if rec.Level != level.Data.Name {
			log.Printf("Warning: recording was made on %q, playing on %q", rec.Level, level.Data.Name)
		}
		if rec.StepMS != cfg.Timing.StepMS {
			// Replays are only exact at the step they were recorded with
			log.Printf("Using the recording's %d ms step instead of %d", rec.StepMS, cfg.Timing.StepMS)
			cfg.Timing.StepMS = rec.StepMS
		}
	}

	mazeOpts := maze.Options{
		Config: cfg,
		Logger: logger,
		LoadModel: func(path string, out chan<- *assets.Model) {
			assets.LoadModelAsync(filepath.Join(opts.assetsDir, path), out, logger)
		},
	}

	switch {
	case opts.headless:
		if rec == nil {
			log.Fatal("-headless needs -replay")
		}
		err = runHeadless(level, mazeOpts, rec)
	case opts.terminal:
		err = runTerminal(level, mazeOpts, rec, opts)
	default:
		err = runWindow(level, mazeOpts, rec, opts, logger)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// newLogger builds the structured logger the maze reports through. The
// terminal owns stderr while -term runs, so logs go to -log or nowhere.
func newLogger(opts options) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case opts.logPath != "":
		f, err := os.Create(opts.logPath)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	case opts.terminal:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func runHeadless(level *maploader.Level, mazeOpts maze.Options, rec *replay.Recording) error {
	m, err := maze.New(level, mazeOpts)
	if err != nil {
		return err
	}
	replay.NewPlayer(rec).Run(m)

	snap := m.Snapshot()
	log.Printf("Replayed %d commands over %d ms", len(rec.Events), m.SimulationTime())
	log.Printf("Camera at %.4f,%.4f yaw %.2f pitch %.2f", snap.Pos.X, snap.Pos.Y, snap.Yaw, snap.Pitch)
	for i, e := range m.Entities() {
		log.Printf("Entity %d at %.4f,%.4f", i, e.Pos().X, e.Pos().Y)
	}
	return nil
}

func runTerminal(level *maploader.Level, mazeOpts maze.Options, rec *replay.Recording, opts options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	m, err := maze.New(level, mazeOpts)
	if err != nil {
		return err
	}
	session := term.NewSession(screen, m, mazeOpts.Logger)

	var recorder *replay.Recorder
	if rec != nil {
		replay.NewPlayer(rec).Attach(m)
		session.Playback = true
	} else if opts.recordPath != "" {
		recorder = replay.NewRecorder(level.Data.Name, m.Config().Timing.StepMS)
		recorder.Attach(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = session.Run(ctx, m.Config().TickInterval())
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if recorder != nil {
		out := recorder.Finish(m.SimulationTime())
		if serr := replay.SaveFile(opts.recordPath, out); serr != nil {
			return serr
		}
		log.Printf("Saved %d commands to %s", len(out.Events), opts.recordPath)
	}
	return err
}

func runWindow(level *maploader.Level, mazeOpts maze.Options, rec *replay.Recording, opts options, logger *slog.Logger) error {
	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	m, err := maze.New(level, mazeOpts)
	if err != nil {
		return err
	}
	reg := assets.NewRegistry(renderer, loader, opts.assetsDir, logger)

	g := game.NewGame(m, renderer, inputMgr, reg, opts.width, opts.height)
	if hum, err := ebitenrender.NewMediaHum(); err != nil {
		log.Printf("Warning: audio unavailable: %v", err)
	} else {
		defer hum.Close()
		g.Hum = hum
	}

	manager := game.NewManager(g)
	switch {
	case rec != nil:
		manager.StartPlayback(rec)
	case opts.recordPath != "":
		manager.StartRecording(level.Data.Name, opts.recordPath)
	}

	// Set up the window
	engine.SetWindowSize(opts.width, opts.height)
	engine.SetWindowTitle("Wolfmaze - " + level.Data.Name)
	engine.SetWindowResizable(true)
	engine.SetTPS(int(time.Second / m.Config().TickInterval()))

	log.Println("Starting maze...")
	err = engine.RunGame(manager)
	if cerr := manager.Close(); cerr != nil {
		log.Printf("Failed to save recording: %v", cerr)
	}
	if errors.Is(err, game.ErrQuit) {
		return nil
	}
	return err
}
