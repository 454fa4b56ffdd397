package maze

import "chosenoffset.com/wolfmaze/internal/core/geom"

// blocked reports whether a mover centered at pos would overlap anything
// solid. A nil self is the camera.
func (m *Maze) blocked(pos geom.Point, self *Entity) bool {
	size := m.cfg.Camera.CollisionSize
	if self != nil {
		size = m.cfg.Entities.CollisionSize
	}
	rect := geom.RectAround(pos, size)

	for _, w := range m.walls {
		if !w.blocks(m.doors) {
			continue
		}
		if w.Segment().Bounds().Expand(m.cfg.Walls.CollisionMargin).Intersects(rect) {
			return true
		}
	}

	for _, e := range m.entities {
		if e == self {
			continue
		}
		if geom.RectAround(e.pos, m.cfg.Entities.Footprint).Intersects(rect) {
			return true
		}
	}

	for _, s := range m.models {
		if s.blocks(rect) {
			return true
		}
	}

	// Entities keep out of the player's way; the player is never blocked
	// by its own box.
	if self != nil {
		if geom.RectAround(m.camera.Pos(), m.cfg.Entities.CameraClearance).Intersects(rect) {
			return true
		}
	}

	return false
}

// TryMove applies delta to pos one axis at a time so that a blocked
// diagonal move still slides along the free axis. It reports whether pos
// changed.
func (m *Maze) TryMove(pos *geom.Point, delta geom.Point, self *Entity) bool {
	old := *pos

	if delta.X != 0 && !m.blocked(geom.Point{X: pos.X + delta.X, Y: pos.Y}, self) {
		pos.X += delta.X
	}
	if delta.Y != 0 && !m.blocked(geom.Point{X: pos.X, Y: pos.Y + delta.Y}, self) {
		pos.Y += delta.Y
	}

	return *pos != old
}
