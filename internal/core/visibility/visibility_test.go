package visibility

import (
	"math"
	"testing"

	"chosenoffset.com/wolfmaze/internal/core/camera"
	"chosenoffset.com/wolfmaze/internal/core/geom"
)

type fakeItem struct {
	seg      geom.Segment
	opaque   bool
	visible  bool
	obscured bool
}

func (f *fakeItem) Segment() geom.Segment { return f.seg }
func (f *fakeItem) Opaque() bool          { return f.opaque }
func (f *fakeItem) Visible() bool         { return f.visible }
func (f *fakeItem) SetObscured(o bool)    { f.obscured = o }

func wall(ax, ay, bx, by float64) *fakeItem {
	return &fakeItem{seg: geom.Segment{A: geom.Point{X: ax, Y: ay}, B: geom.Point{X: bx, Y: by}}, opaque: true, visible: true}
}

func snapshotAt(x, y, yaw float64) camera.Snapshot {
	return camera.New(geom.Point{X: x, Y: y}, yaw).Snapshot()
}

func ownersOf(l *SpanList) []int {
	var owners []int
	for _, s := range l.Spans() {
		owners = append(owners, s.Owner)
	}
	return owners
}

func TestInsertSplitsAtBoundaries(t *testing.T) {
	l := NewSpanList()
	if !l.Insert(0, 1, -1, 5, false) {
		t.Fatal("Expected first insert to be visible")
	}
	spans := l.Spans()
	if len(spans) != 3 {
		t.Fatalf("Expected 3 spans, got %d", len(spans))
	}
	if spans[1].X0 != -1 || spans[1].X1 != 1 || spans[1].Owner != 0 {
		t.Errorf("Unexpected middle span %+v", spans[1])
	}
	if !math.IsInf(spans[0].X0, -1) || !math.IsInf(spans[2].X1, 1) {
		t.Error("Expected the list to keep covering the whole axis")
	}
}

func TestInsertDepthOrderIndependence(t *testing.T) {
	near := NewSpanList()
	near.Insert(0, -1, 1, 5, false)
	near.Insert(1, -1, 1, 10, false)

	far := NewSpanList()
	far.Insert(1, -1, 1, 10, false)
	far.Insert(0, -1, 1, 5, false)

	for _, l := range []*SpanList{near, far} {
		if got := l.OwnerAt(0); got.Owner != 0 || got.Depth != 5 {
			t.Errorf("Expected the depth 5 item to own the center, got %+v", got)
		}
	}
}

func TestInsertTieKeepsFirst(t *testing.T) {
	l := NewSpanList()
	l.Insert(0, -1, 1, 5, false)
	if l.Insert(1, -1, 1, 5, false) {
		t.Error("Expected an equal-depth item to be hidden")
	}
	if got := l.OwnerAt(0).Owner; got != 0 {
		t.Errorf("Expected first item to keep ownership, got %d", got)
	}
}

func TestCheckOnlyLeavesListUntouched(t *testing.T) {
	l := NewSpanList()
	l.Insert(0, -1, 1, 5, false)
	before := append([]Span(nil), l.Spans()...)

	if !l.Insert(1, 0.5, 2, 7, true) {
		t.Error("Expected item reaching past the wall to be visible")
	}
	if l.Insert(1, -0.5, 0.5, 7, true) {
		t.Error("Expected item behind the wall to be hidden")
	}

	after := l.Spans()
	if len(after) != len(before) {
		t.Fatalf("Expected %d spans, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Span %d changed from %+v to %+v", i, before[i], after[i])
		}
	}
}

func TestTouchingIntervalIsNotOverlap(t *testing.T) {
	l := NewSpanList()
	l.Insert(0, -1, 1, 5, false)
	// Shares only the boundary at 1 with the near span
	if !l.Insert(1, 1, 2, 7, true) {
		t.Error("Expected adjacent item to see the open span")
	}
	if l.Insert(2, 0, 0, 1, false) {
		t.Error("Expected zero-width item to be ignored")
	}
}

func TestResolveHidesWallBehindWall(t *testing.T) {
	snap := snapshotAt(1.5, 1.5, 0)
	front := wall(3, 1, 3, 2)
	back := wall(5, 1.2, 5, 1.8)
	sprite := &fakeItem{seg: geom.Segment{A: geom.Point{X: 4, Y: 1.4}, B: geom.Point{X: 4, Y: 1.6}}, visible: true}
	side := &fakeItem{seg: geom.Segment{A: geom.Point{X: 2, Y: 3}, B: geom.Point{X: 2.2, Y: 3}}, visible: true}

	r := NewResolver()
	r.Resolve(snap, []Occluder{back, front, sprite, side})

	if front.obscured {
		t.Error("Expected front wall to be visible")
	}
	if !back.obscured {
		t.Error("Expected back wall to be obscured")
	}
	if !sprite.obscured {
		t.Error("Expected sprite behind the wall to be obscured")
	}
	if side.obscured {
		t.Error("Expected sprite off to the side to be visible")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	snap := snapshotAt(1.5, 1.5, 10)
	items := []Occluder{
		wall(3, 1, 3, 2), wall(5, 0, 5, 3), wall(2, 2, 3, 2), wall(4, 3, 4, 4),
	}

	r := NewResolver()
	r.Resolve(snap, items)
	first := ownersOf(r.Spans())
	flags := make([]bool, len(items))
	for i, it := range items {
		flags[i] = it.(*fakeItem).obscured
	}

	r.Resolve(snap, items)
	second := ownersOf(r.Spans())
	if len(first) != len(second) {
		t.Fatalf("Expected %d spans, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Span %d owner changed from %d to %d", i, first[i], second[i])
		}
	}
	for i, it := range items {
		if it.(*fakeItem).obscured != flags[i] {
			t.Errorf("Item %d obscured flag changed", i)
		}
	}
}

func TestResolveSkipsItemsBehindCamera(t *testing.T) {
	snap := snapshotAt(1.5, 1.5, 0)
	behind := wall(0, 1, 0, 2)
	behind.visible = false

	r := NewResolver()
	r.Resolve(snap, []Occluder{behind})

	if !behind.obscured {
		t.Error("Expected invisible wall to be obscured")
	}
	if n := len(r.Spans().Spans()); n != 1 {
		t.Errorf("Expected the span list to stay untouched, got %d spans", n)
	}

	// Even if flagged visible, a wall fully behind the clip plane adds nothing
	behind.visible = true
	r.Resolve(snap, []Occluder{behind})
	if n := len(r.Spans().Spans()); n != 1 {
		t.Errorf("Expected no spans from a wall behind the camera, got %d", n)
	}
}

func TestCheckRechecksMovedItem(t *testing.T) {
	snap := snapshotAt(1.5, 1.5, 0)
	front := wall(3, 1, 3, 2)
	sprite := &fakeItem{seg: geom.Segment{A: geom.Point{X: 4, Y: 1.4}, B: geom.Point{X: 4, Y: 1.6}}, visible: true}

	r := NewResolver()
	r.Resolve(snap, []Occluder{front, sprite})
	if !sprite.obscured {
		t.Fatal("Expected sprite to start hidden")
	}

	sprite.seg = geom.Segment{A: geom.Point{X: 2.5, Y: 1.4}, B: geom.Point{X: 2.5, Y: 1.6}}
	if !r.Check(sprite) {
		t.Error("Expected sprite in front of the wall to be visible")
	}
}
