package maze

import (
	"math"
	"testing"

	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/simulation"
)

// openFloor lets every move through.
type openFloor struct{}

func (openFloor) TryMove(pos *geom.Point, delta geom.Point, _ *Entity) bool {
	*pos = pos.Add(delta)
	return true
}

func newTestEntity(pos geom.Point) *Entity {
	return NewEntity(pos, &simulation.DefaultConfig().Entities)
}

func TestTurnTowardsStepsAndStops(t *testing.T) {
	e := newTestEntity(geom.Point{X: 5, Y: 5})
	if e.Angle() != 180 {
		t.Fatalf("Expected start angle 180, got %f", e.Angle())
	}
	e.TurnTowards(geom.Point{X: 5, Y: 0})

	steps := 0
	for ; steps < 1000; steps++ {
		before := e.Angle()
		if !e.Move(openFloor{}) {
			break
		}
		if d := math.Abs(geom.NormalizeAngle(e.Angle() - before)); d > 0.5+1e-12 {
			t.Fatalf("Expected at most 0.5 degrees per step, turned %f at step %d", d, steps)
		}
	}
	if steps != 180 {
		t.Errorf("Expected 180 steps to swing 90 degrees, took %d", steps)
	}
	if !near(e.Angle(), 270) {
		t.Errorf("Expected angle 270, got %f", e.Angle())
	}

	// Aligned entities stay put
	aligned := e.Angle()
	if e.Move(openFloor{}) || e.Angle() != aligned {
		t.Errorf("Expected no turn once aligned, got %f", e.Angle())
	}
}

func TestTurnModesCancelEachOther(t *testing.T) {
	e := newTestEntity(geom.Point{X: 5, Y: 5})

	e.TurnTowards(geom.Point{X: 5, Y: 0})
	e.TurnLeft()
	e.Move(openFloor{})
	if !near(e.Angle(), 179.5) {
		t.Errorf("Expected a constant left turn to win, got %f", e.Angle())
	}

	e.TurnTowards(geom.Point{X: 5, Y: 0})
	e.Move(openFloor{})
	if !near(e.Angle(), 180) {
		t.Errorf("Expected the turn target to replace the left turn, got %f", e.Angle())
	}

	e.TurnRight()
	e.Move(openFloor{})
	e.Move(openFloor{})
	if !near(e.Angle(), 181) {
		t.Errorf("Expected constant right turn, got %f", e.Angle())
	}

	e.Stop()
	if e.Move(openFloor{}) {
		t.Error("Expected a stopped entity not to move")
	}
}

func TestAngleIndexFollowsCamera(t *testing.T) {
	cases := []struct {
		cam  geom.Point
		want int
	}{
		{geom.Point{X: 3, Y: 5}, 0}, // looking at the camera
		{geom.Point{X: 7, Y: 7}, 5},
		{geom.Point{X: 5, Y: 7}, 6},
		{geom.Point{X: 7, Y: 5}, 4}, // back to the camera
		{geom.Point{X: 5, Y: 3}, 2},
	}
	for _, tc := range cases {
		e := newTestEntity(geom.Point{X: 5, Y: 5})
		snap := camera.New(tc.cam, 0).Snapshot()
		e.UpdateTransform(&snap)
		if e.AngleIndex() != tc.want {
			t.Errorf("Camera at %+v: expected angle index %d, got %d", tc.cam, tc.want, e.AngleIndex())
		}
	}
}

func TestSpriteFrame(t *testing.T) {
	e := newTestEntity(geom.Point{X: 5, Y: 5})
	snap := camera.New(geom.Point{X: 5, Y: 7}, 0).Snapshot()
	e.UpdateTransform(&snap)
	if e.SpriteFrame() != 6 {
		t.Fatalf("Expected standing frame 6, got %d", e.SpriteFrame())
	}

	e.Walk()
	e.Move(openFloor{})
	for i := 0; i < 5; i++ {
		e.nextFrame()
	}
	if want := 8 + 8*(5%4) + 6; e.SpriteFrame() != want {
		t.Errorf("Expected walking frame %d, got %d", want, e.SpriteFrame())
	}

	e.Stop()
	e.Move(openFloor{})
	if e.SpriteFrame() != 6 {
		t.Errorf("Expected standing frame after stopping, got %d", e.SpriteFrame())
	}
}
