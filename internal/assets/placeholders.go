package assets

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"chosenoffset.com/wolfmaze/internal/world/mapbuild"
)

// TextureSize is the side of generated wall textures
const TextureSize = 64

// SpriteFrames is the number of entity frames: 8 standing views followed
// by 4 walk cycle rows of 8 views each.
const SpriteFrames = 8 + 8*4

// ColorPalette defines colors for the generated textures
var ColorPalette = struct {
	Brick      color.RGBA
	Mortar     color.RGBA
	Wood       color.RGBA
	Steel      color.RGBA
	Glass      color.RGBA
	Panel      color.RGBA
	Screen     color.RGBA
	Accent     color.RGBA
	Uniform    color.RGBA
	Skin       color.RGBA
	Boots      color.RGBA
	Ceiling    color.RGBA
	Floor      color.RGBA
	Background color.RGBA
}{
	Brick:      color.RGBA{128, 72, 48, 255},   // Brown brick
	Mortar:     color.RGBA{90, 84, 78, 255},    // Gray mortar
	Wood:       color.RGBA{112, 82, 50, 255},   // Book shelves
	Steel:      color.RGBA{120, 130, 140, 255}, // Door plating
	Glass:      color.RGBA{70, 94, 108, 120},   // Translucent window, premultiplied
	Panel:      color.RGBA{60, 70, 90, 255},    // Console body
	Screen:     color.RGBA{40, 160, 90, 255},   // Console display
	Accent:     color.RGBA{220, 180, 60, 255},  // Buttons and trims
	Uniform:    color.RGBA{90, 100, 70, 255},   // Soldier uniform
	Skin:       color.RGBA{220, 180, 150, 255},
	Boots:      color.RGBA{40, 30, 25, 255},
	Ceiling:    color.RGBA{52, 52, 60, 255},
	Floor:      color.RGBA{70, 62, 55, 255},
	Background: color.RGBA{0, 0, 0, 0},
}

// CreateSolidTile creates a simple solid-colored texture
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBorderedTile creates a texture with a border
func CreateBorderedTile(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor)
	for i := 0; i < borderWidth; i++ {
		for x := 0; x < TextureSize; x++ {
			img.Set(x, i, borderColor)
			img.Set(x, TextureSize-1-i, borderColor)
			img.Set(i, x, borderColor)
			img.Set(TextureSize-1-i, x, borderColor)
		}
	}
	return img
}

// CreateBrickTile lays offset rows of bricks
func CreateBrickTile(brick, mortar color.RGBA) *image.RGBA {
	img := CreateSolidTile(mortar)
	const rowHeight, brickWidth = 8, 16
	for y := 0; y < TextureSize; y++ {
		if y%rowHeight == 0 {
			continue
		}
		offset := 0
		if (y/rowHeight)%2 == 1 {
			offset = brickWidth / 2
		}
		for x := 0; x < TextureSize; x++ {
			if (x+offset)%brickWidth == 0 {
				continue
			}
			// Slight per-brick variation keeps the wall from looking flat
			shade := 0.9 + 0.1*float64(((x+offset)/brickWidth+y/rowHeight)%3)/2
			img.Set(x, y, Darken(brick, shade))
		}
	}
	return img
}

// CreateShelfTile draws rows of book spines
func CreateShelfTile(wood, accent color.RGBA) *image.RGBA {
	img := CreateBorderedTile(wood, Darken(wood, 0.6), 3)
	for shelf := 0; shelf < 3; shelf++ {
		top := 6 + shelf*20
		for x := 5; x < TextureSize-5; x++ {
			spine := x / 4
			col := Lighten(accent, float64(spine%4)*0.15)
			if spine%3 == 0 {
				col = Darken(accent, 0.5)
			}
			for y := top; y < top+14; y++ {
				img.Set(x, y, col)
			}
		}
	}
	return img
}

// CreateDoorTile draws a plated door with a handle
func CreateDoorTile(plate, accent color.RGBA) *image.RGBA {
	img := CreateBorderedTile(plate, Darken(plate, 0.7), 2)
	for y := 0; y < TextureSize; y += 16 {
		for x := 2; x < TextureSize-2; x++ {
			img.Set(x, y, Darken(plate, 0.8))
		}
	}
	for y := 28; y < 36; y++ {
		for x := 50; x < 56; x++ {
			img.Set(x, y, accent)
		}
	}
	return img
}

// CreatePanelTile draws a console with a screen and a button
func CreatePanelTile(body, screen, button color.RGBA) *image.RGBA {
	img := CreateBorderedTile(body, Lighten(body, 0.3), 2)
	for y := 10; y < 38; y++ {
		for x := 10; x < TextureSize-10; x++ {
			c := screen
			if y%4 == 0 {
				c = Darken(screen, 0.7)
			}
			img.Set(x, y, c)
		}
	}
	for y := 44; y < 54; y++ {
		for x := 26; x < 38; x++ {
			img.Set(x, y, button)
		}
	}
	return img
}

// CreateSpriteFrame draws one view of a soldier. view 0 faces the viewer
// and the views advance in 45 degree steps. step selects the walk pose, or
// -1 for standing.
func CreateSpriteFrame(view, step int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TextureSize, TextureSize))
	p := ColorPalette
	center := TextureSize / 2

	// Side views are narrower
	angle := float64(view) * math.Pi / 4
	halfWidth := int(6 + 6*math.Abs(math.Cos(angle)))

	fillRect(img, center-halfWidth, 22, center+halfWidth, 46, p.Uniform)

	// Legs swing with the walk step
	swing := 0
	if step >= 0 {
		swing = []int{-3, 0, 3, 0}[step%4]
	}
	fillRect(img, center-5+swing, 46, center-1+swing, 62, p.Boots)
	fillRect(img, center+1-swing, 46, center+5-swing, 62, p.Boots)

	for y := 6; y < 22; y++ {
		for x := center - 8; x < center+8; x++ {
			dx, dy := x-center, y-14
			if dx*dx+dy*dy <= 49 {
				img.Set(x, y, p.Skin)
			}
		}
	}

	// The face marks which way the soldier looks; view 4 shows the back
	if view != 4 {
		shift := int(math.Round(-5 * math.Sin(angle)))
		img.Set(center-2+shift, 13, p.Boots)
		img.Set(center+2+shift, 13, p.Boots)
	}
	return img
}

// CreateWallTexture returns the generated texture for a wall type
func CreateWallTexture(t mapbuild.WallType) *image.RGBA {
	p := ColorPalette
	switch t {
	case mapbuild.TypeDoor:
		return CreateDoorTile(p.Steel, p.Accent)
	case mapbuild.TypeDecorated:
		return CreateShelfTile(p.Wood, p.Accent)
	case mapbuild.TypeWindow:
		return CreateBorderedTile(p.Glass, p.Steel, 3)
	case mapbuild.TypeDoorControl:
		return CreatePanelTile(p.Panel, Darken(p.Accent, 0.8), color.RGBA{200, 40, 40, 255})
	case mapbuild.TypeNPCPanel:
		return CreatePanelTile(p.Panel, p.Screen, p.Accent)
	case mapbuild.TypeMedia:
		return CreatePanelTile(Darken(p.Panel, 0.6), color.RGBA{60, 90, 200, 255}, p.Accent)
	case mapbuild.TypeModelStand, mapbuild.TypePanelA, mapbuild.TypePanelB:
		return CreateBorderedTile(Lighten(p.Panel, 0.2), p.Accent, 2)
	default:
		return CreateBrickTile(p.Brick, p.Mortar)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{col}, image.Point{}, draw.Src)
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
