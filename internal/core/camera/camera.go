// Package camera holds the first-person viewpoint and the matrices derived
// from it. Every maze owns exactly one Camera; consumers read a Snapshot.
package camera

import (
	"math"

	"chosenoffset.com/wolfmaze/internal/core/geom"
)

// DefaultFOV is the horizontal field of view in degrees.
const DefaultFOV = 70.0

// DefaultPitchLimit bounds how far the camera looks up or down, in degrees.
const DefaultPitchLimit = 30.0

// Head bob applied while walking, in world units.
const (
	bobAmplitude = 0.04
	bobFrequency = 10.0
	bobOffset    = 0.1
)

// Camera is a mutable viewpoint. Yaw is in degrees with 0 looking along
// map +X and positive values turning right. Pitch is in degrees with
// positive values looking down and never leaves [-limit, limit]. Time is
// the walk clock in seconds and only drives the head bob.
//
// Setters bump a version counter; matrices are rebuilt lazily the next
// time a Snapshot is taken after a change.
type Camera struct {
	pos        geom.Point
	yaw        float64
	pitch      float64
	pitchLimit float64
	fov        float64
	time       float64

	version uint64
	cached  *Snapshot
}

// New creates a camera at pos looking along yaw.
func New(pos geom.Point, yaw float64) *Camera {
	return &Camera{pos: pos, yaw: yaw, fov: DefaultFOV, pitchLimit: DefaultPitchLimit}
}

// Pos returns the eye position on the map.
func (c *Camera) Pos() geom.Point { return c.pos }

// Yaw returns the heading in degrees.
func (c *Camera) Yaw() float64 { return c.yaw }

// Pitch returns the vertical look angle in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// PitchLimit returns the largest absolute pitch SetPitch allows.
func (c *Camera) PitchLimit() float64 { return c.pitchLimit }

// FOV returns the horizontal field of view in degrees.
func (c *Camera) FOV() float64 { return c.fov }

// Time returns the walk clock in seconds.
func (c *Camera) Time() float64 { return c.time }

// SetPos moves the eye.
func (c *Camera) SetPos(p geom.Point) {
	if p != c.pos {
		c.pos = p
		c.touch()
	}
}

// SetYaw turns the camera to yaw degrees.
func (c *Camera) SetYaw(yaw float64) {
	if yaw != c.yaw {
		c.yaw = yaw
		c.touch()
	}
}

// SetPitch tilts the camera, clamped to the pitch limit.
func (c *Camera) SetPitch(pitch float64) {
	pitch = math.Max(-c.pitchLimit, math.Min(c.pitchLimit, pitch))
	if pitch != c.pitch {
		c.pitch = pitch
		c.touch()
	}
}

// SetPitchLimit changes the pitch bound and re-clamps the current pitch.
// Non-positive limits are ignored.
func (c *Camera) SetPitchLimit(limit float64) {
	if limit <= 0 {
		return
	}
	c.pitchLimit = limit
	c.SetPitch(c.pitch)
}

// SetFOV changes the horizontal field of view.
func (c *Camera) SetFOV(fov float64) {
	if fov != c.fov {
		c.fov = fov
		c.touch()
	}
}

// SetTime sets the walk clock that drives the head bob.
func (c *Camera) SetTime(t float64) {
	if t != c.time {
		c.time = t
		c.touch()
	}
}

func (c *Camera) touch() {
	c.version++
	c.cached = nil
}

// Snapshot returns the current state and its matrices. The result is a
// value and stays valid after the camera changes.
func (c *Camera) Snapshot() Snapshot {
	if c.cached == nil {
		s := build(c.pos, c.yaw, c.pitch, c.fov, c.time)
		s.Version = c.version
		c.cached = &s
	}
	return *c.cached
}

// Snapshot is an immutable view of a Camera.
type Snapshot struct {
	Pos     geom.Point
	Yaw     float64
	Pitch   float64
	FOV     float64
	Time    float64
	Version uint64

	// Focal is the projection scale derived from FOV.
	Focal float64
	// View maps world space to eye space.
	View geom.Matrix
	// Projection maps eye space to clip space.
	Projection geom.Matrix
	// ViewProjection is View followed by Projection.
	ViewProjection geom.Matrix
}

func build(pos geom.Point, yaw, pitch, fov, t float64) Snapshot {
	focal := geom.FocalLength(fov)
	bob := bobAmplitude*math.Sin(bobFrequency*t) + bobOffset

	// World X and map Y become eye X and -Z; eye Y points down like the
	// screen, so the bob lifts the eye above the wall centers.
	view := geom.Translation(-pos.X, bob, -pos.Y).
		Mul(geom.RotationY(270 - yaw)).
		Mul(geom.RotationX(-pitch))
	proj := geom.Projection(focal)

	return Snapshot{
		Pos:            pos,
		Yaw:            yaw,
		Pitch:          pitch,
		FOV:            fov,
		Time:           t,
		Focal:          focal,
		View:           view,
		Projection:     proj,
		ViewProjection: view.Mul(proj),
	}
}

// Forward returns the unit walking direction.
func (s Snapshot) Forward() geom.Point { return geom.Polar(1, s.Yaw) }

// Right returns the unit strafing direction.
func (s Snapshot) Right() geom.Point { return geom.Polar(1, s.Yaw+90) }

// ToCameraSpace expresses a map point relative to the camera. X is the
// lateral offset (positive to the right) and Y is the depth along the view
// direction. Pitch is ignored.
func (s Snapshot) ToCameraSpace(p geom.Point) geom.Point {
	sin, cos := math.Sincos(geom.Radians(s.Yaw))
	rx := p.X - s.Pos.X
	ry := p.Y - s.Pos.Y
	return geom.Point{
		X: -rx*sin + ry*cos,
		Y: rx*cos + ry*sin,
	}
}

// Horizon returns the normalized screen Y of the vanishing line, in the
// same -1..1 units the projection produces.
func (s Snapshot) Horizon() float64 {
	far := s.Pos.Add(s.Forward().Scale(geom.FarPlane / 2))
	v, w := s.ViewProjection.Project(far.X, 0, far.Y)
	if w <= 0 {
		if s.Pitch > 0 {
			return -1
		}
		return 1
	}
	return v.Y()
}
