package visibility

import (
	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
)

// DefaultNearClip is the depth segments are clipped to before projection.
const DefaultNearClip = 0.01

// Occluder is anything the resolver can classify.
type Occluder interface {
	// Segment is the item's footprint on the map.
	Segment() geom.Segment
	// Opaque items hide what lies behind them.
	Opaque() bool
	// Visible is false when the item is entirely behind the camera.
	Visible() bool
	SetObscured(bool)
}

// Resolver marks items as obscured or not for one camera snapshot.
// The span list from the last Resolve is kept so that single items can be
// rechecked after they move without a full pass.
type Resolver struct {
	NearClip float64

	spans *SpanList
	snap  camera.Snapshot
}

// NewResolver returns a resolver with the default near clip.
func NewResolver() *Resolver {
	return &Resolver{NearClip: DefaultNearClip, spans: NewSpanList()}
}

// Spans exposes the list built by the last Resolve.
func (r *Resolver) Spans() *SpanList { return r.spans }

// Snapshot returns the camera the last Resolve ran against.
func (r *Resolver) Snapshot() camera.Snapshot { return r.snap }

// Extent projects a map segment onto the screen axis. ok is false when
// nothing of it lies in front of the near clip.
func (r *Resolver) Extent(snap *camera.Snapshot, seg geom.Segment) (x1, x2, depth float64, ok bool) {
	a := snap.ToCameraSpace(seg.A)
	b := snap.ToCameraSpace(seg.B)
	a, b, ok = geom.ClipToDepth(a, b, r.NearClip)
	if !ok {
		return 0, 0, 0, false
	}
	x1 = a.X / a.Y
	x2 = b.X / b.Y
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return x1, x2, (a.Y + b.Y) / 2, true
}

// Resolve rebuilds the span list from the opaque items in order, then
// checks every other item against it. An item's index in items is its
// owner id, so the order is the tie-break for equal depths.
func (r *Resolver) Resolve(snap camera.Snapshot, items []Occluder) {
	r.snap = snap
	r.spans.Reset()

	for i, it := range items {
		if !it.Opaque() {
			continue
		}
		it.SetObscured(true)
		if !it.Visible() {
			continue
		}
		if x1, x2, depth, ok := r.Extent(&snap, it.Segment()); ok {
			r.spans.Insert(i, x1, x2, depth, false)
		}
	}
	for _, s := range r.spans.Spans() {
		if s.Owner != NoOwner {
			items[s.Owner].SetObscured(false)
		}
	}

	for _, it := range items {
		if it.Opaque() {
			continue
		}
		it.SetObscured(!r.Check(it))
	}
}

// Check reports whether a non-opaque item would be seen through the
// current span list. The list is not modified.
func (r *Resolver) Check(it Occluder) bool {
	if !it.Visible() {
		return false
	}
	x1, x2, depth, ok := r.Extent(&r.snap, it.Segment())
	if !ok {
		return false
	}
	return r.spans.Insert(NoOwner, x1, x2, depth, true)
}
