package mapbuild

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrEmptyGrid   = errors.New("mapbuild: empty grid")
	ErrRaggedGrid  = errors.New("mapbuild: rows differ in width")
	ErrUnknownTile = errors.New("mapbuild: unknown tile")
)

// Grid is a rectangular character map. Row 0 is the top of the map.
type Grid struct {
	rows   [][]rune
	width  int
	height int
}

// ParseGrid validates rows and returns the grid.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid{height: len(rows)}
	for y, row := range rows {
		if y == 0 {
			g.width = utf8.RuneCountInString(row)
			if g.width == 0 {
				return nil, ErrEmptyGrid
			}
		}
		cells := []rune(row)
		if len(cells) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, y, len(cells), g.width)
		}
		for x, r := range cells {
			if !IsKnown(r) {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownTile, r, x, y)
			}
		}
		g.rows = append(g.rows, cells)
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// At returns the character at (x, y). Anything outside the grid reads as
// a plain wall, so the map is always closed.
func (g *Grid) At(x, y int) rune {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return '#'
	}
	return g.rows[y][x]
}
