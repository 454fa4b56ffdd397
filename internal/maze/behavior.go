package maze

import (
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/world/maploader"
)

// Behavior steers an entity. Update runs at the behavior interval with the
// milliseconds elapsed since the behavior was attached.
type Behavior interface {
	Update(e *Entity, player geom.Point, elapsedMS int64)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(e *Entity, player geom.Point, elapsedMS int64)

func (f BehaviorFunc) Update(e *Entity, player geom.Point, elapsedMS int64) {
	f(e, player, elapsedMS)
}

// Idle keeps the entity still.
var Idle = BehaviorFunc(func(e *Entity, _ geom.Point, _ int64) { e.Stop() })

// Patrol walks back and forth along a row. Each leg lasts PeriodMS; the
// entity heads far past the end of the leg and stops once it reaches it,
// then waits for the next leg.
type Patrol struct {
	Y        float64
	MinX     float64
	MaxX     float64
	PeriodMS int64
}

// DefaultPatrol is the classic guard route.
var DefaultPatrol = Patrol{Y: 2.5, MinX: 2.5, MaxX: 5.5, PeriodMS: 10000}

func (p Patrol) Update(e *Entity, _ geom.Point, elapsedMS int64) {
	period := p.PeriodMS
	if period <= 0 {
		period = DefaultPatrol.PeriodMS
	}
	e.Walk()
	if elapsedMS%(2*period) < period {
		e.TurnTowards(geom.Point{X: 10, Y: p.Y})
		if e.Pos().X >= p.MaxX {
			e.Stop()
		}
	} else {
		e.TurnTowards(geom.Point{X: -10, Y: p.Y})
		if e.Pos().X <= p.MinX {
			e.Stop()
		}
	}
}

// followRadiusSq is the squared distance at which Follow stops.
const followRadiusSq = 5.0

// Follow walks toward the player until close enough.
var Follow = BehaviorFunc(func(e *Entity, player geom.Point, _ int64) {
	d := player.Sub(e.Pos())
	if d.X*d.X+d.Y*d.Y < followRadiusSq {
		e.Stop()
		return
	}
	e.Walk()
	e.TurnTowards(player)
})

// behaviorFor builds the behavior a level asks for.
func behaviorFor(data maploader.EntityData) Behavior {
	switch data.Behavior {
	case maploader.BehaviorPatrol:
		if data.Patrol == nil {
			return DefaultPatrol
		}
		return Patrol{
			Y:        data.Patrol.Y,
			MinX:     data.Patrol.MinX,
			MaxX:     data.Patrol.MaxX,
			PeriodMS: int64(data.Patrol.PeriodMS),
		}
	case maploader.BehaviorFollow:
		return Follow
	default:
		return Idle
	}
}
