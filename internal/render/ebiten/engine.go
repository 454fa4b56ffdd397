package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/wolfmaze/internal/render"
)

// ResourceLoader loads textures from disk.
type ResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &ResourceLoader{}
}

// LoadImage decodes an image file and uploads it.
func (l *ResourceLoader) LoadImage(path string) (render.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Image{img: img}, nil
}

// Engine implements render.Engine using Ebiten's global window.
type Engine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &Engine{}
}

func (e *Engine) SetWindowSize(width, height int) { ebiten.SetWindowSize(width, height) }
func (e *Engine) SetWindowTitle(title string)     { ebiten.SetWindowTitle(title) }
func (e *Engine) SetTPS(tps int)                  { ebiten.SetTPS(tps) }

func (e *Engine) SetWindowResizable(resizable bool) {
	mode := ebiten.WindowResizingModeDisabled
	if resizable {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}

// RunGame blocks until the game returns an error from Update or the window
// is closed.
func (e *Engine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game.
type gameAdapter struct {
	game   render.Game
	screen Image
}

func (a *gameAdapter) Update() error {
	return a.game.Update()
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.screen.img = screen
	a.game.Draw(&a.screen)
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
