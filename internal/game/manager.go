package game

import (
	"errors"
	"log"

	"chosenoffset.com/wolfmaze/internal/render"
	"chosenoffset.com/wolfmaze/internal/replay"
)

// Manager runs a Game and handles the session around it: recording the
// player's commands or playing a recording back.
type Manager struct {
	Game *Game

	recorder   *replay.Recorder
	recordPath string
	player     *replay.Player
	announced  bool
	closed     bool
}

// NewManager creates a manager for g.
func NewManager(g *Game) *Manager {
	return &Manager{Game: g}
}

// StartRecording records every command until Close, which writes the
// recording to path.
func (m *Manager) StartRecording(level, path string) {
	m.recorder = replay.NewRecorder(level, m.Game.Maze.Config().Timing.StepMS)
	m.recorder.Attach(m.Game.Maze)
	m.recordPath = path
	m.Game.ShowMessage("Recording")
}

// StartPlayback drives the maze from rec instead of the keyboard.
func (m *Manager) StartPlayback(rec *replay.Recording) {
	m.player = replay.NewPlayer(rec)
	m.player.Attach(m.Game.Maze)
	m.Game.Playback = true
	m.Game.ShowMessage("Replaying")
}

// Update updates the game state.
func (m *Manager) Update() error {
	err := m.Game.Update()

	if m.player != nil && !m.announced && m.player.Finished(m.Game.Maze) {
		m.announced = true
		m.Game.ShowMessage("Replay finished")
	}

	if errors.Is(err, ErrQuit) {
		if cerr := m.Close(); cerr != nil {
			log.Printf("Failed to save recording: %v", cerr)
		}
	}
	return err
}

// Draw draws the game screen.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
}

// Layout returns the logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.Game.Layout(outsideWidth, outsideHeight)
}

// Close writes the recording, if one is running. It is safe to call more
// than once.
func (m *Manager) Close() error {
	if m.closed || m.recorder == nil {
		return nil
	}
	m.closed = true
	rec := m.recorder.Finish(m.Game.Maze.SimulationTime())
	if err := replay.SaveFile(m.recordPath, rec); err != nil {
		return err
	}
	log.Printf("Saved %d commands to %s", len(rec.Events), m.recordPath)
	return nil
}
