package game

import (
	"chosenoffset.com/wolfmaze/internal/maze"
	"chosenoffset.com/wolfmaze/internal/render"
)

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// binding ties a key to the maze command it holds down.
type binding struct {
	Key     render.Key
	Command maze.Command
}

// bindings is the keyboard layout. Q/E mirror the arrow keys for turning.
var bindings = []binding{
	{render.KeyLeft, maze.CmdTurnLeft},
	{render.KeyQ, maze.CmdTurnLeft},
	{render.KeyRight, maze.CmdTurnRight},
	{render.KeyE, maze.CmdTurnRight},
	{render.KeyUp, maze.CmdLookUp},
	{render.KeyDown, maze.CmdLookDown},
	{render.KeyW, maze.CmdWalkForward},
	{render.KeyS, maze.CmdWalkBackward},
	{render.KeyA, maze.CmdStrafeLeft},
	{render.KeyD, maze.CmdStrafeRight},
	{render.KeySpace, maze.CmdToggleDoors},
	{render.KeyL, maze.CmdToggleLamp},
}

// VolumeControl is the sound output for the media panel.
type VolumeControl interface {
	SetVolume(v float64)
}
