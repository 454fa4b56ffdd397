package maze

import "chosenoffset.com/wolfmaze/internal/world/mapbuild"

// Wall is one generated wall segment.
type Wall struct {
	ProjectedItem
	id   int
	typ  mapbuild.WallType
	cell mapbuild.Coord
}

func newWall(id int, spec mapbuild.WallSpec) *Wall {
	return &Wall{
		ProjectedItem: newProjectedItem(spec.Seg, wallBounds, spec.Type.Opaque()),
		id:            id,
		typ:           spec.Type,
		cell:          spec.Cell,
	}
}

func (w *Wall) Kind() Kind { return KindWall }

// ID is the wall's index in build order, stable for the maze's lifetime.
func (w *Wall) ID() int { return w.id }

// Type returns the legend type the wall was built from.
func (w *Wall) Type() mapbuild.WallType { return w.typ }

// Cell is the open cell the wall faces.
func (w *Wall) Cell() mapbuild.Coord { return w.cell }

// IsDoor reports whether the wall slides with the door animation.
func (w *Wall) IsDoor() bool { return w.typ == mapbuild.TypeDoor }

// blocks reports whether the wall stops movement given the doors' state.
func (w *Wall) blocks(doors *DoorAnimation) bool {
	if w.typ.Passable() {
		return false
	}
	if w.IsDoor() && doors.FullyOpen() {
		return false
	}
	return true
}
