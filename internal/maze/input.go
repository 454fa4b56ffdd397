package maze

import "fmt"

// Command is a player action. Held commands set a velocity on press and
// clear it on release; toggles act on press only.
type Command int

const (
	CmdTurnLeft Command = iota
	CmdTurnRight
	CmdLookUp
	CmdLookDown
	CmdWalkForward
	CmdWalkBackward
	CmdStrafeLeft
	CmdStrafeRight
	CmdToggleDoors
	CmdToggleLamp
)

var commandNames = [...]string{
	CmdTurnLeft:     "turn_left",
	CmdTurnRight:    "turn_right",
	CmdLookUp:       "look_up",
	CmdLookDown:     "look_down",
	CmdWalkForward:  "walk_forward",
	CmdWalkBackward: "walk_backward",
	CmdStrafeLeft:   "strafe_left",
	CmdStrafeRight:  "strafe_right",
	CmdToggleDoors:  "toggle_doors",
	CmdToggleLamp:   "toggle_lamp",
}

func (c Command) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand is the inverse of String.
func ParseCommand(s string) (Command, error) {
	for i, name := range commandNames {
		if name == s {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", s)
}

func (c Command) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(commandNames) {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(commandNames[c]), nil
}

func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CommandHook observes every command at the simulation time it takes
// effect.
type CommandHook func(atMS int64, c Command, pressed bool)

// StepHook runs before each fixed step with the step's start time.
type StepHook func(atMS int64)

// SetStepHook installs h; nil removes it. Commands issued from the hook
// apply to the step that is about to run.
func (m *Maze) SetStepHook(h StepHook) {
	m.stepHook = h
}

// SetCommandHook installs h; nil removes it.
func (m *Maze) SetCommandHook(h CommandHook) {
	m.hook = h
}

// Press starts a held command or fires a toggle.
func (m *Maze) Press(c Command) {
	m.apply(c, true)
}

// Release stops a held command. Releasing either key of a pair stops the
// motion, even if the other key is still down.
func (m *Maze) Release(c Command) {
	m.apply(c, false)
}

func (m *Maze) apply(c Command, pressed bool) {
	if m.hook != nil {
		m.hook(m.simTime, c, pressed)
	}

	cam := m.cfg.Camera
	set := func(v *float64, speed float64) {
		if pressed {
			*v = speed
		} else {
			*v = 0
		}
	}

	switch c {
	case CmdTurnLeft:
		set(&m.turnSpeed, -cam.TurnSpeed)
	case CmdTurnRight:
		set(&m.turnSpeed, cam.TurnSpeed)
	case CmdLookUp:
		set(&m.pitchSpeed, -cam.PitchSpeed)
	case CmdLookDown:
		set(&m.pitchSpeed, cam.PitchSpeed)
	case CmdWalkForward:
		set(&m.walkVelocity, cam.WalkSpeed)
	case CmdWalkBackward:
		set(&m.walkVelocity, -cam.WalkSpeed)
	case CmdStrafeLeft:
		set(&m.strafeVelocity, -cam.StrafeSpeed)
	case CmdStrafeRight:
		set(&m.strafeVelocity, cam.StrafeSpeed)
	case CmdToggleDoors:
		if pressed {
			m.ToggleDoors()
		}
	case CmdToggleLamp:
		if pressed {
			m.ToggleLamp()
		}
	}
}
