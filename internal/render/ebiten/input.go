package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/wolfmaze/internal/render"
)

var keyMap = map[render.Key]ebiten.Key{
	render.KeyW:      ebiten.KeyW,
	render.KeyA:      ebiten.KeyA,
	render.KeyS:      ebiten.KeyS,
	render.KeyD:      ebiten.KeyD,
	render.KeyQ:      ebiten.KeyQ,
	render.KeyE:      ebiten.KeyE,
	render.KeyL:      ebiten.KeyL,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
}

// InputManager implements render.InputManager with Ebiten's keyboard state.
type InputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &InputManager{}
}

func (m *InputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyMap[key]
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed reports a press that happened since the last tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyMap[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// IsKeyJustReleased reports a release that happened since the last tick.
func (m *InputManager) IsKeyJustReleased(key render.Key) bool {
	k, ok := keyMap[key]
	return ok && inpututil.IsKeyJustReleased(k)
}
