package assets

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/wolfmaze/internal/render"
	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
)

type fakeImage struct {
	w, h int
	name string
}

func (f *fakeImage) Bounds() image.Rectangle                          { return image.Rect(0, 0, f.w, f.h) }
func (f *fakeImage) Size() (int, int)                                 { return f.w, f.h }
func (f *fakeImage) Fill(color.Color)                                 {}
func (f *fakeImage) Clear()                                           {}
func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {}
func (f *fakeImage) DrawTriangles([]render.Vertex, []uint16, render.Image, *render.DrawTrianglesOptions) {
}
func (f *fakeImage) Dispose() {}

type fakeRenderer struct{ uploads int }

func (r *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w: w, h: h} }
func (r *fakeRenderer) NewImageFromImage(img image.Image) render.Image {
	r.uploads++
	b := img.Bounds()
	return &fakeImage{w: b.Dx(), h: b.Dy(), name: "generated"}
}
func (r *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {}
func (r *fakeRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
}
func (r *fakeRenderer) DrawText(render.Image, string, int, int, color.Color, float64) {}
func (r *fakeRenderer) MeasureText(string, float64) (int, int)                        { return 0, 0 }

type fakeLoader struct{ files map[string]bool }

func (l *fakeLoader) LoadImage(path string) (render.Image, error) {
	if l.files[filepath.Base(path)] {
		return &fakeImage{w: 128, h: 128, name: path}, nil
	}
	return nil, os.ErrNotExist
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseOBJ(t *testing.T) {
	m := CubeModel()
	if len(m.Vertices) != 8 {
		t.Errorf("Expected 8 vertices, got %d", len(m.Vertices))
	}
	if len(m.Edges) != 12 {
		t.Errorf("Expected 12 unique edges, got %d", len(m.Edges))
	}
	if m.Extent() != 1 {
		t.Errorf("Expected extent 1, got %f", m.Extent())
	}
	if c := m.Center(); c.Len() != 0 {
		t.Errorf("Expected centered cube, got %v", c)
	}
}

func TestParseOBJFaceFormats(t *testing.T) {
	src := "# comment\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1/1/1 2//1 -1\n"
	m, err := ParseOBJ("tri", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(m.Edges) != 3 {
		t.Errorf("Expected 3 edges, got %d", len(m.Edges))
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := []string{
		"",
		"v 1 2\n",
		"v 0 0 0\nf 1 2 3\n",
		"v a b c\n",
	}
	for _, c := range cases {
		if _, err := ParseOBJ("bad", strings.NewReader(c)); err == nil {
			t.Errorf("Expected error for %q", c)
		}
	}
}

func TestLoadModelAsyncFallsBack(t *testing.T) {
	out := make(chan *Model, 1)
	LoadModelAsync(filepath.Join(t.TempDir(), "missing.obj"), out, quietLogger())

	m := <-out
	if m == nil || m.Name != "cube" {
		t.Errorf("Expected the placeholder cube, got %+v", m)
	}
}

func TestRegistryPrefersFiles(t *testing.T) {
	r := &fakeRenderer{}
	loader := &fakeLoader{files: map[string]bool{"door.png": true}}
	reg := NewRegistry(r, loader, "assets", quietLogger())

	door := reg.Wall(mapbuild.TypeDoor).(*fakeImage)
	if door.name != filepath.Join("assets", "door.png") {
		t.Errorf("Expected door texture from disk, got %q", door.name)
	}
	if brick := reg.Wall(mapbuild.TypeWall).(*fakeImage); brick.name != "generated" {
		t.Errorf("Expected generated brick, got %q", brick.name)
	}
	// Every wall but the door, every sprite and the white pixel
	if want := len(wallFiles) - 1 + SpriteFrames + 1; r.uploads != want {
		t.Errorf("Expected %d uploads, got %d", want, r.uploads)
	}
	if w, h := reg.Sprite(99).Size(); w != TextureSize || h != TextureSize {
		t.Errorf("Expected clamped sprite of %d pixels, got %dx%d", TextureSize, w, h)
	}
}

func TestSpriteParts(t *testing.T) {
	cases := []struct{ i, view, step int }{
		{0, 0, -1},
		{7, 7, -1},
		{8, 0, 0},
		{8 + 8*1 + 6, 6, 1},
		{SpriteFrames - 1, 7, 3},
	}
	for _, tc := range cases {
		if view, step := spriteParts(tc.i); view != tc.view || step != tc.step {
			t.Errorf("Frame %d: expected view %d step %d, got %d %d", tc.i, tc.view, tc.step, view, step)
		}
	}
}

func TestGenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	written, err := GenerateAndSave(dir)
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, SpriteFile(SpriteFrames-1))); err != nil {
		t.Errorf("Expected last sprite frame on disk: %v", err)
	}
	if _, err := LoadModel(filepath.Join(dir, "models", "cube.obj")); err != nil {
		t.Errorf("Expected the saved cube to load: %v", err)
	}
	if len(written) == 0 {
		t.Error("Expected written paths")
	}
	if _, err := LoadModel(filepath.Join(dir, "nope.obj")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}
