package maze

import (
	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
	"chosenoffset.com/wolfmaze/internal/render/lighting"
)

// Kind distinguishes the concrete projectables.
type Kind int

const (
	KindWall Kind = iota
	KindEntity
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindEntity:
		return "entity"
	case KindModel:
		return "model"
	}
	return "unknown"
}

// Projectable is anything placed in the maze as a vertical quad.
type Projectable interface {
	Kind() Kind
	Item() *ProjectedItem
	UpdateTransform(snap *camera.Snapshot)

	// visibility.Occluder
	Segment() geom.Segment
	Opaque() bool
	Visible() bool
	SetObscured(bool)
}

// Standard quad bounds in local coordinates. X runs from A to B and Y
// points down with the floor at +0.5.
var (
	wallBounds   = geom.NewRect(-0.5, -0.5, 1, 1)
	entityBounds = geom.NewRect(-0.3, -0.4, 0.6, 0.9)
)

// ProjectedItem is the state every quad shares: its footprint, how it is
// drawn and the results of the last transform and visibility pass.
type ProjectedItem struct {
	seg      geom.Segment
	bounds   geom.Rect
	target   geom.Rect
	animTime float64

	opaque   bool
	visible  bool
	obscured bool

	transform geom.Transform2D
	depth     float64

	shade    lighting.Shade
	hasShade bool
}

func newProjectedItem(seg geom.Segment, bounds geom.Rect, opaque bool) ProjectedItem {
	return ProjectedItem{
		seg:       seg,
		bounds:    bounds,
		target:    bounds,
		opaque:    opaque,
		obscured:  true,
		transform: geom.Identity2D(),
	}
}

// Item returns the shared state.
func (p *ProjectedItem) Item() *ProjectedItem { return p }

// Segment returns the footprint on the map.
func (p *ProjectedItem) Segment() geom.Segment { return p.seg }

// SetPosition moves the footprint. The transform is stale until the next
// UpdateTransform.
func (p *ProjectedItem) SetPosition(a, b geom.Point) {
	p.seg = geom.Segment{A: a, B: b}
}

// Bounds is the full quad in local coordinates.
func (p *ProjectedItem) Bounds() geom.Rect { return p.bounds }

// TargetRect is the part of the quad that is drawn; doors shrink it as
// they slide open.
func (p *ProjectedItem) TargetRect() geom.Rect { return p.target }

// AnimationTime returns the last value passed to SetAnimationTime.
func (p *ProjectedItem) AnimationTime() float64 { return p.animTime }

// SetAnimationTime slides the drawn part of the quad: at t the left edge
// moves right by t of the width. Collision is unaffected.
func (p *ProjectedItem) SetAnimationTime(t float64) {
	p.animTime = t
	p.target = p.bounds
	p.target.MinX += p.bounds.Width() * t
}

// SourceFraction is the share of the texture width still on screen.
func (p *ProjectedItem) SourceFraction() float64 {
	return p.target.Width() / p.bounds.Width()
}

// Opaque reports whether the item hides what is behind it.
func (p *ProjectedItem) Opaque() bool { return p.opaque }

// SetOpaque changes whether the item claims spans when resolved.
func (p *ProjectedItem) SetOpaque(o bool) { p.opaque = o }

// Visible reports whether any part of the quad was in front of the camera
// at the last UpdateTransform.
func (p *ProjectedItem) Visible() bool { return p.visible }

// Obscured reports whether the last resolve found the item fully hidden.
func (p *ProjectedItem) Obscured() bool { return p.obscured }

// SetObscured records the resolver's verdict.
func (p *ProjectedItem) SetObscured(o bool) { p.obscured = o }

// Depth is the distance from the camera to the footprint's midpoint.
func (p *ProjectedItem) Depth() float64 { return p.depth }

// ZOrder sorts items far to near.
func (p *ProjectedItem) ZOrder() float64 { return -p.depth }

// Transform maps the local quad to normalized screen coordinates.
func (p *ProjectedItem) Transform() geom.Transform2D { return p.transform }

// Shade returns the lighting overlay and whether the item has one.
func (p *ProjectedItem) Shade() (lighting.Shade, bool) { return p.shade, p.hasShade }

// UpdateTransform places the quad for the camera. Items entirely behind
// the camera become invisible and keep their previous transform.
func (p *ProjectedItem) UpdateTransform(snap *camera.Snapshot) {
	a := snap.ToCameraSpace(p.seg.A)
	b := snap.ToCameraSpace(p.seg.B)
	if a.Y <= 0 && b.Y <= 0 {
		p.visible = false
		return
	}

	center := p.seg.Midpoint()
	model := geom.RotationY(p.seg.Angle()).Mul(geom.Translation(center.X, 0, center.Y))
	p.transform = model.Mul(snap.ViewProjection).Transform2D()
	p.depth = geom.Distance(snap.Pos, center)
	p.visible = true
}

// UpdateLighting recomputes the overlay. Constant light gives a flat
// overlay of the given opacity regardless of the lights.
func (p *ProjectedItem) UpdateLighting(m *lighting.Manager, constant bool, opacity float64) {
	if constant {
		p.shade = lighting.ConstantShade(opacity)
	} else {
		p.shade = m.ShadeSegment(p.seg.A, p.seg.B)
	}
	p.hasShade = true
}
