package game

import (
	"errors"
	"log"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/maze"
	"chosenoffset.com/wolfmaze/internal/render"
)

// ErrQuit is returned from Update when the player asks to leave.
var ErrQuit = errors.New("quit requested")

// Game holds the maze being played and everything needed to show it.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Maze         *maze.Maze
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Assets       *assets.Registry
	SceneTexture render.Image

	// Media panel sound, optional
	Hum VolumeControl

	// Playback ignores the keyboard; commands come from a recording.
	Playback bool

	// UI state
	ShowHUD  bool
	Messages []Message

	painter *painter

	// Debug
	FrameCount int
}

// NewGame creates a game showing m.
func NewGame(m *maze.Maze, r render.Renderer, input render.InputManager, reg *assets.Registry, width, height int) *Game {
	return &Game{
		ScreenWidth:  width,
		ScreenHeight: height,
		Maze:         m,
		Renderer:     r,
		InputMgr:     input,
		Assets:       reg,
		ShowHUD:      true,
		painter:      newPainter(r, reg),
	}
}

// Update handles input and advances the maze to the wall clock.
func (g *Game) Update() error {
	g.updateMessages(g.Maze.Config().TickInterval().Seconds())

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if !g.Playback {
		g.handleInput()
	}

	g.Maze.Tick()

	if g.Hum != nil {
		v, ok := g.Maze.MediaVolume()
		if !ok {
			v = 0
		}
		g.Hum.SetVolume(v)
	}
	return nil
}

// handleInput turns key edges into maze commands. Held keys are not
// polled: a command lasts from its press to its release.
func (g *Game) handleInput() {
	for _, b := range bindings {
		if g.InputMgr.IsKeyJustPressed(b.Key) {
			g.Maze.Press(b.Command)
			g.announce(b.Command)
		}
		if g.InputMgr.IsKeyJustReleased(b.Key) {
			g.Maze.Release(b.Command)
		}
	}
}

func (g *Game) announce(c maze.Command) {
	switch c {
	case maze.CmdToggleDoors:
		if g.Maze.Doors().Opening() {
			g.ShowMessage("Doors opening")
		} else {
			g.ShowMessage("Doors closing")
		}
	case maze.CmdToggleLamp:
		if g.Maze.Config().Lighting.PlayerLamp <= 0 {
			return
		}
		if g.Maze.Lights().IsPlayerLightOn() {
			g.ShowMessage("Lamp on")
		} else {
			g.ShowMessage("Lamp off")
		}
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	log.Printf("Message: %s", text)
}
