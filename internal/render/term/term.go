// Package term draws the maze into a text terminal. Walls are cast one
// screen column at a time against the span list the maze already resolved,
// so the terminal shows exactly what the graphical painter would.
package term

import (
	"image/color"
	"math"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/core/visibility"
	"chosenoffset.com/wolfmaze/internal/maze"
	"chosenoffset.com/wolfmaze/internal/world/mapbuild"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

const (
	entityGlyph = "☺"
	modelGlyph  = "◆"
)

// shadeRamp runs from fully lit to nearly dark.
var shadeRamp = []rune{'█', '▓', '▒', '░'}

var wallColors = map[mapbuild.WallType]tcell.Color{
	mapbuild.TypeDoor:        tcell.ColorSilver,
	mapbuild.TypeWall:        tcell.ColorIndianRed,
	mapbuild.TypeDecorated:   tcell.ColorSaddleBrown,
	mapbuild.TypeDoorControl: tcell.ColorGold,
	mapbuild.TypePortal:      tcell.ColorMediumPurple,
	mapbuild.TypeNPCPanel:    tcell.ColorTeal,
	mapbuild.TypeMedia:       tcell.ColorDodgerBlue,
	mapbuild.TypeModelStand:  tcell.ColorDarkKhaki,
	mapbuild.TypePanelA:      tcell.ColorOliveDrab,
	mapbuild.TypePanelB:      tcell.ColorSteelBlue,
}

// Renderer draws maze frames onto a tcell screen. The bottom row is kept
// for the status line.
type Renderer struct {
	screen tcell.Screen

	ceiling tcell.Style
	floor   tcell.Style
	hud     tcell.Style

	depths []float64
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen:  screen,
		ceiling: tcell.StyleDefault.Background(toColor(assets.ColorPalette.Ceiling)),
		floor:   tcell.StyleDefault.Background(toColor(assets.ColorPalette.Floor)),
		hud:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw renders the maze as seen by its camera, then the status line.
func (r *Renderer) Draw(m *maze.Maze, status string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	viewH := h - 1
	if w <= 0 || viewH <= 0 {
		return
	}
	if cap(r.depths) < w {
		r.depths = make([]float64, w)
	}
	r.depths = r.depths[:w]

	r.drawWalls(m, w, viewH)
	r.drawBillboards(m, w, viewH)
	r.drawStatus(status, w, h-1)
}

// rowOf maps a normalized screen Y to a terminal row.
func rowOf(ndcY float64, w, viewH int) float64 {
	return float64(viewH)/2 + ndcY*float64(w)/(2*cellAspect)
}

// colOf maps a normalized screen X to a terminal column.
func colOf(ndcX float64, w int) float64 {
	return (ndcX + 1) * float64(w) / 2
}

func (r *Renderer) drawWalls(m *maze.Maze, w, viewH int) {
	snap := m.Snapshot()
	spans := m.Resolver().Spans()
	fwd, right := snap.Forward(), snap.Right()
	horizon := rowOf(snap.Horizon(), w, viewH)

	for cx := 0; cx < w; cx++ {
		r.depths[cx] = math.Inf(1)
		top, bottom := horizon, horizon
		var style tcell.Style
		var glyph rune

		ndc := (float64(cx)+0.5)/float64(w)*2 - 1
		s := ndc / snap.Focal
		span := spans.OwnerAt(s)
		if wall, ok := m.Item(span.Owner).(*maze.Wall); ok && span.Owner != visibility.NoOwner {
			dir := fwd.Add(right.Scale(s))
			if t, u, hit := geom.RaySegmentIntersection(snap.Pos, dir, wall.Segment()); hit && t > 0 {
				p := snap.Pos.Add(dir.Scale(t))
				yt, wt := snap.ViewProjection.Project(p.X, -0.5, p.Y)
				yb, wb := snap.ViewProjection.Project(p.X, 0.5, p.Y)
				if wt > 0 && wb > 0 {
					r.depths[cx] = t
					top = rowOf(yt.Y(), w, viewH)
					bottom = rowOf(yb.Y(), w, viewH)
					glyph = shadeGlyph(wall, u)
					style = tcell.StyleDefault.Foreground(wallColor(wall.Type())).Background(tcell.ColorBlack)
				}
			}
		}

		for y := 0; y < viewH; y++ {
			fy := float64(y) + 0.5
			switch {
			case fy < top:
				r.screen.SetContent(cx, y, ' ', nil, r.ceiling)
			case fy >= bottom:
				r.screen.SetContent(cx, y, ' ', nil, r.floor)
			default:
				r.screen.SetContent(cx, y, glyph, nil, style)
			}
		}
	}
}

func wallColor(t mapbuild.WallType) tcell.Color {
	if c, ok := wallColors[t]; ok {
		return c
	}
	return tcell.ColorGray
}

// shadeGlyph picks a ramp character from the wall's lighting overlay at u.
func shadeGlyph(wall *maze.Wall, u float64) rune {
	shade, ok := wall.Shade()
	if !ok {
		return shadeRamp[0]
	}
	i := int(shade.AlphaAt(u) / 256 * float64(len(shadeRamp)))
	return shadeRamp[max(0, min(len(shadeRamp)-1, i))]
}

// drawBillboards draws entities and loaded models as blocks of glyphs,
// skipping columns where a wall is nearer.
func (r *Renderer) drawBillboards(m *maze.Maze, w, viewH int) {
	for _, e := range m.Entities() {
		if !e.Visible() || e.Obscured() {
			continue
		}
		r.billboard(m, e.Pos(), -0.4, 0.5, w, viewH, entityGlyph, tcell.ColorYellow)
	}
	for _, s := range m.Models() {
		if !s.Loaded() || !s.Visible() || s.Obscured() {
			continue
		}
		r.billboard(m, s.Pos(), -0.3, 0.3, w, viewH, modelGlyph, tcell.ColorLightGreen)
	}
}

func (r *Renderer) billboard(m *maze.Maze, pos geom.Point, top, bottom float64, w, viewH int, glyph string, fg tcell.Color) {
	snap := m.Snapshot()
	c := snap.ToCameraSpace(pos)
	if c.Y <= visibility.DefaultNearClip {
		return
	}
	center := colOf(snap.Focal*c.X/c.Y, w)
	half := snap.Focal * 0.3 / c.Y * float64(w) / 2

	yt, _ := snap.ViewProjection.Project(pos.X, top, pos.Y)
	yb, _ := snap.ViewProjection.Project(pos.X, bottom, pos.Y)
	row0 := int(math.Round(rowOf(yt.Y(), w, viewH)))
	row1 := int(math.Round(rowOf(yb.Y(), w, viewH)))

	style := tcell.StyleDefault.Foreground(fg).Background(tcell.ColorBlack)
	gw := max(1, runewidth.StringWidth(glyph))
	for x := int(math.Round(center - half)); x < int(math.Round(center+half)); x += gw {
		if x < 0 || x >= w || c.Y >= r.depths[x] {
			continue
		}
		for y := max(0, row0); y < min(viewH, row1); y++ {
			r.putGlyph(x, y, glyph, style)
		}
	}
}

// putGlyph draws a glyph at (x, y), padding the second column of wide ones.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

// drawStatus writes s on row y, truncated to the screen width.
func (r *Renderer) drawStatus(s string, w, y int) {
	s = runewidth.Truncate(s, w, "…")
	x := 0
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, r.hud)
		x += runewidth.RuneWidth(ch)
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.hud)
	}
}
