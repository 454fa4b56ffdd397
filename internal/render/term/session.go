package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chosenoffset.com/wolfmaze/internal/maze"

	"github.com/gdamore/tcell/v2"
)

// holdTimeout is how long a command stays held after its last key event.
// Terminals report key repeats but never releases, so a held key is one
// that keeps repeating.
const holdTimeout = 150 * time.Millisecond

// keyCommand maps a tcell key event to a maze command.
func keyCommand(ev *tcell.EventKey) (maze.Command, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return maze.CmdTurnLeft, true
	case tcell.KeyRight:
		return maze.CmdTurnRight, true
	case tcell.KeyUp:
		return maze.CmdLookUp, true
	case tcell.KeyDown:
		return maze.CmdLookDown, true
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return maze.CmdTurnLeft, true
	case 'e', 'E':
		return maze.CmdTurnRight, true
	case 'w', 'W':
		return maze.CmdWalkForward, true
	case 's', 'S':
		return maze.CmdWalkBackward, true
	case 'a', 'A':
		return maze.CmdStrafeLeft, true
	case 'd', 'D':
		return maze.CmdStrafeRight, true
	case ' ':
		return maze.CmdToggleDoors, true
	case 'l', 'L':
		return maze.CmdToggleLamp, true
	}
	return 0, false
}

func isToggle(c maze.Command) bool {
	return c == maze.CmdToggleDoors || c == maze.CmdToggleLamp
}

// Session runs a maze in a terminal.
type Session struct {
	Screen   tcell.Screen
	Maze     *maze.Maze
	Renderer *Renderer
	Logger   *slog.Logger

	// Playback ignores movement keys; commands come from a recording.
	Playback bool

	held map[maze.Command]time.Time
}

// NewSession creates a session drawing m on screen.
func NewSession(screen tcell.Screen, m *maze.Maze, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		Screen:   screen,
		Maze:     m,
		Renderer: NewRenderer(screen),
		Logger:   logger,
		held:     make(map[maze.Command]time.Time),
	}
}

// HandleKey applies a key event received at now. It reports whether the
// player asked to quit.
func (s *Session) HandleKey(ev *tcell.EventKey, now time.Time) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
		return true
	}
	if s.Playback {
		return false
	}
	c, ok := keyCommand(ev)
	if !ok {
		return false
	}
	if isToggle(c) {
		s.Maze.Press(c)
		s.Maze.Release(c)
		return false
	}
	if _, held := s.held[c]; !held {
		s.Maze.Press(c)
	}
	s.held[c] = now.Add(holdTimeout)
	return false
}

// ReleaseExpired releases every held command whose key stopped repeating
// before now.
func (s *Session) ReleaseExpired(now time.Time) {
	for c, deadline := range s.held {
		if now.After(deadline) {
			s.Maze.Release(c)
			delete(s.held, c)
		}
	}
}

// Held reports whether c is currently held.
func (s *Session) Held(c maze.Command) bool {
	_, ok := s.held[c]
	return ok
}

// Status is the line shown under the view.
func (s *Session) Status() string {
	snap := s.Maze.Snapshot()
	line := fmt.Sprintf("%s  pos %.2f,%.2f  yaw %.1f  pitch %.1f  t %.1fs",
		s.Maze.Level().Data.Name, snap.Pos.X, snap.Pos.Y, snap.Yaw, snap.Pitch,
		float64(s.Maze.SimulationTime())/1000)
	if v, ok := s.Maze.MediaVolume(); ok {
		line += fmt.Sprintf("  media %.0f%%", v*100)
	}
	if s.Playback {
		line += "  [replay]"
	}
	return line + "  esc quits"
}

// Draw paints one frame and shows it.
func (s *Session) Draw() {
	s.Renderer.Draw(s.Maze, s.Status())
	s.Screen.Show()
}

// Run reads input and redraws every tick until the player quits, the
// screen closes, or ctx is done.
func (s *Session) Run(ctx context.Context, tick time.Duration) error {
	// Start an async input reader goroutine.
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := s.Screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	s.Logger.Info("terminal session started", "tick", tick)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil // screen closed
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.Screen.Sync()
			case *tcell.EventKey:
				if s.HandleKey(ev, time.Now()) {
					s.Logger.Info("terminal session ended", "sim_ms", s.Maze.SimulationTime())
					return nil
				}
			}
		case now := <-ticker.C:
			s.ReleaseExpired(now)
			s.Maze.Tick()
			s.Draw()
		}
	}
}
