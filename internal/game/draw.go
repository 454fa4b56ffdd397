package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/wolfmaze/internal/render"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()

	// Ensure the render texture exists and is the right size
	if g.SceneTexture == nil || needsResize(g.SceneTexture, w, h) {
		if g.SceneTexture != nil {
			g.SceneTexture.Dispose()
		}
		g.SceneTexture = g.Renderer.NewImage(w, h)
	}

	// Step 1: Render the maze to an offscreen texture
	g.SceneTexture.Clear()
	g.painter.drawFrame(g.SceneTexture, g.Maze.Frame(), 0)

	// Step 2: Copy it to the screen
	screen.DrawImage(g.SceneTexture, &render.DrawImageOptions{})

	// Step 3: Draw UI elements on top
	g.drawUI(screen)
	g.drawHUD(screen)
	g.FrameCount++
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

func (g *Game) drawUI(screen render.Image) {
	// Draw on-screen messages
	y := 50.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}

func (g *Game) drawHUD(screen render.Image) {
	if !g.ShowHUD {
		return
	}
	snap := g.Maze.Snapshot()
	line := fmt.Sprintf("pos %.2f,%.2f  yaw %.1f  pitch %.1f  t %.1fs",
		snap.Pos.X, snap.Pos.Y, snap.Yaw, snap.Pitch, float64(g.Maze.SimulationTime())/1000)
	if v, ok := g.Maze.MediaVolume(); ok {
		line += fmt.Sprintf("  media %.0f%%", v*100)
	}
	if g.Playback {
		line += "  [replay]"
	}

	_, h := screen.Size()
	_, th := g.Renderer.MeasureText(line, 1.0)
	g.Renderer.DrawText(screen, line, 8, h-th-8, color.White, 1.0)
}
