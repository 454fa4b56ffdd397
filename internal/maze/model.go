package maze

import (
	"math"

	"chosenoffset.com/wolfmaze/internal/assets"
	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
)

const (
	// modelSpin is the stand's turn rate in degrees per second.
	modelSpin = 40.0
	// modelHalfWidth is half the footprint the stand occupies for
	// visibility; the stand always faces the camera.
	modelHalfWidth = 0.3
	// modelFootprint is the side of the box a loaded model blocks.
	modelFootprint = 0.6
)

// ModelStand shows a spinning wireframe model. The model arrives from a
// loader goroutine; until then the stand draws nothing and blocks nothing.
type ModelStand struct {
	ProjectedItem

	pos      geom.Point
	scale    float64
	rotation float64

	model *assets.Model
	loads chan *assets.Model

	matrix geom.Matrix
}

// NewModelStand places an empty stand. scale multiplies the fitted size;
// zero means 1.
func NewModelStand(pos geom.Point, scale float64) *ModelStand {
	if scale <= 0 {
		scale = 1
	}
	return &ModelStand{
		ProjectedItem: newProjectedItem(geom.Segment{A: pos, B: pos}, entityBounds, false),
		pos:           pos,
		scale:         scale,
		loads:         make(chan *assets.Model, 1),
		matrix:        geom.Identity(),
	}
}

func (s *ModelStand) Kind() Kind { return KindModel }

func (s *ModelStand) Pos() geom.Point          { return s.pos }
func (s *ModelStand) Rotation() float64        { return s.rotation }
func (s *ModelStand) Model() *assets.Model     { return s.model }
func (s *ModelStand) Loaded() bool             { return s.model != nil }
func (s *ModelStand) ModelMatrix() geom.Matrix { return s.matrix }

// Handoff is where a loader delivers the model. Only the first delivery
// is kept until it has been picked up.
func (s *ModelStand) Handoff() chan<- *assets.Model { return s.loads }

// poll picks up a delivered model without blocking and reports whether
// one arrived.
func (s *ModelStand) poll() bool {
	select {
	case m := <-s.loads:
		if m == nil {
			return false
		}
		s.model = m
		return true
	default:
		return false
	}
}

// spin advances the rotation by ms of simulated time.
func (s *ModelStand) spin(ms float64) {
	s.rotation = math.Mod(s.rotation+modelSpin*ms/1000, 360)
}

// fit scales the model so its height, or its horizontal diagonal, fills
// one unit.
func (s *ModelStand) fit() float64 {
	size := s.model.Max.Sub(s.model.Min)
	extent := math.Sqrt2
	largest := max(size.Y(), size.X()/extent, size.Z()/extent)
	if largest <= 0 {
		return s.scale
	}
	return s.scale / largest
}

// UpdateTransform turns the footprint toward the camera and rebuilds the
// matrix the painter maps model vertices through.
func (s *ModelStand) UpdateTransform(snap *camera.Snapshot) {
	to := snap.Pos.Sub(s.pos)
	if l := to.Len(); l > 0 {
		to = to.Scale(1 / l)
	} else {
		to = geom.Point{X: 1}
	}
	delta := geom.Point{X: to.Y, Y: -to.X}.Scale(modelHalfWidth)
	s.SetPosition(s.pos.Sub(delta), s.pos.Add(delta))
	s.ProjectedItem.UpdateTransform(snap)

	if s.model == nil {
		return
	}
	k := s.fit()
	c := s.model.Center()
	s.matrix = geom.Translation(-c.X(), -c.Y(), -c.Z()).
		Mul(geom.Scale(k, -k, k)).
		Mul(geom.RotationY(s.rotation)).
		Mul(geom.Translation(s.pos.X, 0, s.pos.Y)).
		Mul(snap.ViewProjection)
}

// blocks reports whether the stand's box intersects rect.
func (s *ModelStand) blocks(rect geom.Rect) bool {
	return s.model != nil && geom.RectAround(s.pos, modelFootprint).Intersects(rect)
}
