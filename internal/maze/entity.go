package maze

import (
	"math"

	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/simulation"
)

// turnEpsilon is how close a heading must be to its target to count as
// aligned.
const turnEpsilon = 1e-9

// Mover resolves movement against the maze.
type Mover interface {
	TryMove(pos *geom.Point, delta geom.Point, self *Entity) bool
}

// Entity is a billboarded actor that walks the maze. Its quad always
// faces the camera; the sprite frame shows which way it looks.
type Entity struct {
	ProjectedItem
	cfg *simulation.EntityConfig

	pos   geom.Point
	angle float64

	walking       bool
	walked        bool
	turnVelocity  float64
	turnTarget    geom.Point
	useTurnTarget bool

	animation  int
	angleIndex int

	behavior     Behavior
	behaviorTime int64
	sinceThink   int64
}

// NewEntity places an entity facing the configured start angle.
func NewEntity(pos geom.Point, cfg *simulation.EntityConfig) *Entity {
	e := &Entity{
		ProjectedItem: newProjectedItem(geom.Segment{A: pos, B: pos}, entityBounds, false),
		cfg:           cfg,
		pos:           pos,
		angle:         cfg.StartAngle,
	}
	return e
}

func (e *Entity) Kind() Kind { return KindEntity }

func (e *Entity) Pos() geom.Point { return e.pos }
func (e *Entity) Angle() float64  { return e.angle }
func (e *Entity) Walking() bool   { return e.walking }
func (e *Entity) Walked() bool    { return e.walked }
func (e *Entity) AngleIndex() int { return e.angleIndex }
func (e *Entity) Animation() int  { return e.animation }

// SetBehavior attaches the script that steers the entity.
func (e *Entity) SetBehavior(b Behavior) {
	e.behavior = b
	e.behaviorTime = 0
	e.sinceThink = 0
}

// think runs the behavior once every intervalMS of simulated time.
func (e *Entity) think(player geom.Point, stepMS, intervalMS int64) {
	if e.behavior == nil {
		return
	}
	e.behaviorTime += stepMS
	e.sinceThink += stepMS
	if e.sinceThink < intervalMS {
		return
	}
	e.sinceThink -= intervalMS
	e.behavior.Update(e, player, e.behaviorTime)
}

// Walk makes the entity move forward every step until stopped.
func (e *Entity) Walk() { e.walking = true }

// Stop halts walking and every kind of turning.
func (e *Entity) Stop() {
	e.walking = false
	e.useTurnTarget = false
	e.turnVelocity = 0
}

// TurnTowards makes the entity swing toward a point, one turn step at a
// time. It replaces any constant turn.
func (e *Entity) TurnTowards(p geom.Point) {
	e.turnTarget = p
	e.useTurnTarget = true
	e.turnVelocity = 0
}

// TurnLeft starts a constant left turn, dropping any turn target.
func (e *Entity) TurnLeft() {
	e.useTurnTarget = false
	e.turnVelocity = -e.cfg.TurnStep
}

// TurnRight starts a constant right turn, dropping any turn target.
func (e *Entity) TurnRight() {
	e.useTurnTarget = false
	e.turnVelocity = e.cfg.TurnStep
}

// Move runs one simulation step and reports whether the entity turned or
// changed position.
func (e *Entity) Move(m Mover) bool {
	moved := false

	if e.useTurnTarget {
		diff := geom.NormalizeAngle(geom.Angle(e.pos, e.turnTarget) - e.angle)
		if math.Abs(diff) > turnEpsilon {
			if math.Abs(diff) <= e.cfg.TurnStep {
				e.angle += diff
			} else {
				e.angle += math.Copysign(e.cfg.TurnStep, diff)
			}
			e.angle = normalizeHeading(e.angle)
			moved = true
		}
	} else if e.turnVelocity != 0 {
		e.angle = normalizeHeading(e.angle + e.turnVelocity)
		moved = true
	}

	e.walked = false
	if e.walking {
		delta := geom.Polar(e.cfg.WalkSpeed, e.angle)
		if m.TryMove(&e.pos, delta, e) {
			moved = true
			e.walked = true
		}
	}
	return moved
}

// nextFrame advances the walk cycle.
func (e *Entity) nextFrame() {
	e.animation++
}

// SpriteFrame returns the frame index to draw: the standing view, or the
// current walk cycle row when the entity moved in the last step.
func (e *Entity) SpriteFrame() int {
	if e.walked {
		return 8 + 8*(e.animation%4) + e.angleIndex
	}
	return e.angleIndex
}

// UpdateTransform turns the billboard toward the camera, picks the view of
// the sprite and places the quad.
func (e *Entity) UpdateTransform(snap *camera.Snapshot) {
	toCamera := geom.Angle(e.pos, snap.Pos)
	cameraIndex := mod(int(math.Round(toCamera+22.5)), 360) / 45
	e.angleIndex = mod(int(math.Round(float64(cameraIndex*45)-e.angle+22.5)), 360) / 45

	// The billboard runs left to right as seen from the camera, nudged
	// off the axis so it never lines up exactly with a wall.
	delta := geom.Polar(e.cfg.HalfWidth, 270.1+45*float64(cameraIndex))
	e.SetPosition(e.pos.Sub(delta), e.pos.Add(delta))
	e.ProjectedItem.UpdateTransform(snap)
}

func mod(x, y int) int {
	return ((x % y) + y) % y
}

func normalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
