// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/wolfmaze/internal/render"
)

// Renderer implements render.Renderer using Ebiten.
type Renderer struct{}

// NewRenderer creates a new Ebiten-based renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// NewImageFromImage uploads a decoded or generated image.
func (r *Renderer) NewImageFromImage(img image.Image) render.Image {
	return &Image{img: ebiten.NewImageFromImage(img)}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.FillRect(unwrap(dst), x, y, width, height, clr, false)
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(unwrap(dst), x0, y0, x1, y1, strokeWidth, clr, true)
}

// DrawText draws text with the debug font. The debug font has a single
// size and color, so clr and scale only affect layout through MeasureText.
func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	ebitenutil.DebugPrintAt(unwrap(dst), str, x, y)
}

// MeasureText approximates text size from the debug font's 6x13 cells.
func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	return int(float64(len(str)) * 6 * scale), int(13 * scale)
}

// Image wraps an ebiten.Image to implement render.Image.
type Image struct {
	img *ebiten.Image

	// scratch is reused across DrawTriangles calls
	scratch []ebiten.Vertex
}

func unwrap(i render.Image) *ebiten.Image {
	return i.(*Image).img
}

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }
func (i *Image) Fill(clr color.Color)    { i.img.Fill(clr) }
func (i *Image) Clear()                  { i.img.Clear() }

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Dispose releases the GPU texture.
func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if opts != nil {
		op.GeoM.Translate(opts.X, opts.Y)
	}
	i.img.DrawImage(unwrap(src), op)
}

// DrawTriangles draws a textured mesh. Source coordinates are in texels of
// img.
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	i.scratch = i.scratch[:0]
	for _, v := range vertices {
		i.scratch = append(i.scratch, ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		})
	}

	op := &ebiten.DrawTrianglesOptions{}
	if opts != nil {
		op.AntiAlias = opts.AntiAlias
	}
	i.img.DrawTriangles(i.scratch, indices, unwrap(img), op)
}
