package mapbuild

import (
	"errors"
	"testing"

	"chosenoffset.com/wolfmaze/internal/core/geom"
)

var room = []string{
	"########",
	"#      #",
	"#      #",
	"#      #",
	"#      #",
	"#      #",
	"#      #",
	"########",
}

func mustParse(t *testing.T, rows []string) *Grid {
	t.Helper()
	g, err := ParseGrid(rows)
	if err != nil {
		t.Fatalf("Failed to parse grid: %v", err)
	}
	return g
}

// faces reports whether p lies in front of seg, on its left going A to B
// in screen orientation.
func faces(seg geom.Segment, p geom.Point) bool {
	dx1, dy1 := seg.B.X-seg.A.X, seg.B.Y-seg.A.Y
	dx2, dy2 := p.X-seg.A.X, p.Y-seg.A.Y
	return dx1*dy2-dy1*dx2 > 0
}

func TestParseGridErrors(t *testing.T) {
	if _, err := ParseGrid(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Expected ErrEmptyGrid, got %v", err)
	}
	if _, err := ParseGrid([]string{"###", "##"}); !errors.Is(err, ErrRaggedGrid) {
		t.Errorf("Expected ErrRaggedGrid, got %v", err)
	}
	if _, err := ParseGrid([]string{"#x#"}); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Expected ErrUnknownTile, got %v", err)
	}
}

func TestSingleRoomWalls(t *testing.T) {
	walls := BuildWalls(mustParse(t, room))

	// 6x6 interior, 6 walls per side
	if len(walls) != 24 {
		t.Fatalf("Expected 24 walls, got %d", len(walls))
	}
	for _, w := range walls {
		if w.Type != TypeWall {
			t.Errorf("Expected plain wall, got %v", w.Type)
		}
		center := geom.Point{X: float64(w.Cell.X) + 0.5, Y: float64(w.Cell.Y) + 0.5}
		if !faces(w.Seg, center) {
			t.Errorf("Wall %+v does not face its cell", w.Seg)
		}
		if l := w.Seg.Length(); l != 1 {
			t.Errorf("Expected unit segment, got %f", l)
		}
	}

	// First emitted wall is the top of cell (1,1)
	first := walls[0]
	if first.Edge != EdgeTop || first.Seg.A != (geom.Point{X: 1, Y: 1}) || first.Seg.B != (geom.Point{X: 2, Y: 1}) {
		t.Errorf("Unexpected first wall %+v", first)
	}
}

func TestOffGridCountsAsWall(t *testing.T) {
	walls := BuildWalls(mustParse(t, []string{" "}))
	if len(walls) != 4 {
		t.Fatalf("Expected 4 walls around a lone open cell, got %d", len(walls))
	}
	for _, w := range walls {
		if w.Type != TypeWall {
			t.Errorf("Expected off-grid neighbours to be plain walls, got %v", w.Type)
		}
	}
}

func TestDoorsAndTypedWalls(t *testing.T) {
	g := mustParse(t, []string{
		"#@#",
		"& -",
		"#$#",
	})
	types := map[WallType]int{}
	for _, w := range BuildWalls(g) {
		types[w.Type]++
	}

	if types[TypeWindow] != 1 || types[TypeDecorated] != 1 || types[TypePortal] != 1 {
		t.Errorf("Unexpected typed walls %v", types)
	}
	// The open cell faces the door cell, and the door cell faces its walls
	if types[TypeDoor] != 1 {
		t.Errorf("Expected 1 door, got %d", types[TypeDoor])
	}
	if types[TypeWall] != 3 {
		t.Errorf("Expected 3 plain walls around the door cell, got %d", types[TypeWall])
	}
}

func TestTypeTraits(t *testing.T) {
	if !TypeWindow.Passable() || TypeBlocker.Passable() {
		t.Error("Expected windows passable and blockers solid")
	}
	if TypeBlocker.Opaque() || TypeWindow.Opaque() || !TypeWall.Opaque() {
		t.Error("Unexpected opacity traits")
	}
	if !TypeBlocker.Hidden() || TypeMedia.Hidden() {
		t.Error("Expected only blockers to be hidden")
	}
	if TypePortal.String() != "portal" {
		t.Errorf("Expected portal, got %s", TypePortal)
	}
}
