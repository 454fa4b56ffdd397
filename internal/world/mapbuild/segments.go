package mapbuild

import "chosenoffset.com/wolfmaze/internal/core/geom"

// Coord is a grid cell.
type Coord struct {
	X, Y int
}

// Edge names the side of the open cell a wall sits on.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// WallSpec is one wall segment produced from the grid.
type WallSpec struct {
	Seg  geom.Segment
	Type WallType
	Cell Coord // the open cell the wall faces
	Edge Edge
}

// BuildWalls emits a segment for every side of every open cell whose
// neighbour is a wall or a door, in row-major order and top, bottom,
// left, right within a cell. Segments face their open cell and are never
// merged, so each one can carry its own type and lighting.
func BuildWalls(g *Grid) []WallSpec {
	var walls []WallSpec

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if !IsOpen(g.At(x, y)) {
				continue
			}
			cell := Coord{X: x, Y: y}
			fx, fy := float64(x), float64(y)

			sides := [...]struct {
				edge   Edge
				nx, ny int
				a, b   geom.Point
			}{
				{EdgeTop, x, y - 1, geom.Point{X: fx, Y: fy}, geom.Point{X: fx + 1, Y: fy}},
				{EdgeBottom, x, y + 1, geom.Point{X: fx + 1, Y: fy + 1}, geom.Point{X: fx, Y: fy + 1}},
				{EdgeLeft, x - 1, y, geom.Point{X: fx, Y: fy + 1}, geom.Point{X: fx, Y: fy}},
				{EdgeRight, x + 1, y, geom.Point{X: fx + 1, Y: fy}, geom.Point{X: fx + 1, Y: fy + 1}},
			}
			for _, s := range sides {
				t, ok := Lookup(g.At(s.nx, s.ny))
				if !ok {
					continue
				}
				walls = append(walls, WallSpec{
					Seg:  geom.Segment{A: s.a, B: s.b},
					Type: t,
					Cell: cell,
					Edge: s.edge,
				})
			}
		}
	}
	return walls
}
