// Package assets supplies the images and models the maze is drawn with.
// Files are loaded from an asset directory when present; anything missing
// is generated procedurally so the maze always renders.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/wolfmaze/internal/render"
	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
)

// wallFiles maps each wall type to its texture file name
var wallFiles = map[mapbuild.WallType]string{
	mapbuild.TypeDoor:        "door.png",
	mapbuild.TypeWall:        "brick.png",
	mapbuild.TypeDecorated:   "books.png",
	mapbuild.TypeWindow:      "window.png",
	mapbuild.TypeDoorControl: "door_control.png",
	mapbuild.TypePortal:      "brick.png",
	mapbuild.TypeNPCPanel:    "console.png",
	mapbuild.TypeMedia:       "media.png",
	mapbuild.TypeModelStand:  "stand.png",
	mapbuild.TypePanelA:      "panel_a.png",
	mapbuild.TypePanelB:      "panel_b.png",
}

// SpriteFile returns the file name of entity frame i
func SpriteFile(i int) string {
	return filepath.Join("soldier", fmt.Sprintf("%02d.png", i))
}

// spriteParts splits frame i into its view and walk step; standing frames
// have step -1.
func spriteParts(i int) (view, step int) {
	if i < 8 {
		return i, -1
	}
	return i % 8, (i - 8) / 8
}

// Registry holds the uploaded textures
type Registry struct {
	walls   map[mapbuild.WallType]render.Image
	sprites []render.Image
	white   render.Image

	Floor   color.RGBA
	Ceiling color.RGBA
}

// NewRegistry loads textures from dir, generating whatever is missing.
// An empty dir generates everything.
func NewRegistry(r render.Renderer, loader render.ResourceLoader, dir string, logger *slog.Logger) *Registry {
	reg := &Registry{
		walls:   make(map[mapbuild.WallType]render.Image),
		Floor:   ColorPalette.Floor,
		Ceiling: ColorPalette.Ceiling,
	}

	load := func(name string, generate func() *image.RGBA) render.Image {
		if dir != "" {
			img, err := loader.LoadImage(filepath.Join(dir, name))
			if err == nil {
				return img
			}
			logger.Debug("texture missing, generating placeholder", "name", name, "err", err)
		}
		return r.NewImageFromImage(generate())
	}

	for t, name := range wallFiles {
		reg.walls[t] = load(name, func() *image.RGBA { return CreateWallTexture(t) })
	}
	for i := 0; i < SpriteFrames; i++ {
		reg.sprites = append(reg.sprites, load(SpriteFile(i), func() *image.RGBA { return CreateSpriteFrame(spriteParts(i)) }))
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.White)
	reg.white = r.NewImageFromImage(white)

	logger.Info("textures ready", "walls", len(reg.walls), "sprites", len(reg.sprites), "dir", dir)
	return reg
}

// Wall returns the texture for a wall type
func (r *Registry) Wall(t mapbuild.WallType) render.Image {
	if img, ok := r.walls[t]; ok {
		return img
	}
	return r.walls[mapbuild.TypeWall]
}

// Sprite returns entity frame i, clamped to the frames available
func (r *Registry) Sprite(i int) render.Image {
	if i < 0 || i >= len(r.sprites) {
		i = 0
	}
	return r.sprites[i]
}

// White returns a 1x1 white image used for untextured fills
func (r *Registry) White() render.Image {
	return r.white
}

// GenerateAndSave writes every placeholder texture and the cube model to
// dir, so they can be edited by hand.
func GenerateAndSave(dir string) ([]string, error) {
	var written []string
	save := func(name string, img image.Image) error {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := SavePNG(img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	done := make(map[string]bool)
	for t, name := range wallFiles {
		if done[name] {
			continue
		}
		done[name] = true
		if err := save(name, CreateWallTexture(t)); err != nil {
			return written, err
		}
	}
	for i := 0; i < SpriteFrames; i++ {
		if err := save(SpriteFile(i), CreateSpriteFrame(spriteParts(i))); err != nil {
			return written, err
		}
	}

	modelPath := filepath.Join(dir, "models", "cube.obj")
	if err := os.MkdirAll(filepath.Dir(modelPath), 0o755); err != nil {
		return written, err
	}
	if err := os.WriteFile(modelPath, []byte(strings.TrimSpace(cubeOBJ)+"\n"), 0o644); err != nil {
		return written, fmt.Errorf("failed to save %s: %w", modelPath, err)
	}
	written = append(written, modelPath)
	return written, nil
}
