package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestRectIntersectsIsStrict(t *testing.T) {
	a := NewRect(0, 0, 1, 1)

	if !a.Intersects(NewRect(0.5, 0.5, 1, 1)) {
		t.Error("Expected overlapping rects to intersect")
	}
	// Sharing an edge is not an overlap
	if a.Intersects(NewRect(1, 0, 1, 1)) {
		t.Error("Expected edge-touching rects not to intersect")
	}
	if a.Intersects(NewRect(2, 2, 1, 1)) {
		t.Error("Expected disjoint rects not to intersect")
	}
}

func TestSegmentBoundsExpand(t *testing.T) {
	seg := Segment{A: Point{3, 2}, B: Point{2, 2}}
	r := seg.Bounds().Expand(0.01)

	if !near(r.MinX, 1.99) || !near(r.MaxX, 3.01) || !near(r.MinY, 1.99) || !near(r.MaxY, 2.01) {
		t.Errorf("Unexpected expanded bounds %+v", r)
	}
	// A box crossing the zero-height wall line now intersects
	if !r.Intersects(RectAround(Point{2.5, 2.1}, 0.25)) {
		t.Error("Expected box over the wall line to intersect")
	}
}

func TestPolarAndAngle(t *testing.T) {
	p := Polar(2, 90)
	if !near(p.X, 0) || !near(p.Y, 2) {
		t.Errorf("Expected (0,2), got %+v", p)
	}
	if a := Angle(Point{0, 0}, Point{0, 1}); !near(a, 90) {
		t.Errorf("Expected 90 degrees, got %f", a)
	}
	if a := NormalizeAngle(540); !near(a, 180) {
		t.Errorf("Expected 180, got %f", a)
	}
	if a := NormalizeAngle(-190); !near(a, 170) {
		t.Errorf("Expected 170, got %f", a)
	}
}

func TestClipToDepth(t *testing.T) {
	a, b, ok := ClipToDepth(Point{0, -1}, Point{2, 1}, 0)
	if !ok {
		t.Fatal("Expected partially visible segment to survive clipping")
	}
	if !near(a.X, 1) || !near(a.Y, 0) || b != (Point{2, 1}) {
		t.Errorf("Unexpected clipped segment %+v %+v", a, b)
	}
	if _, _, ok := ClipToDepth(Point{0, -1}, Point{2, -3}, 0); ok {
		t.Error("Expected segment behind the plane to be rejected")
	}
}

func TestMulAppliesLeftFirst(t *testing.T) {
	// Translate then rotate differs from rotate then translate
	m := Translation(1, 0, 0).Mul(RotationY(90))
	v, w := m.Project(0, 0, 0)
	if !near(w, 1) {
		t.Fatalf("Expected w 1, got %f", w)
	}
	// (1,0,0) rotated +90 about Y lands on +Z
	if !near(v.X(), 0) || !near(v.Z(), 1) {
		t.Errorf("Expected (0,0,1), got %v", v)
	}

	m = RotationY(90).Mul(Translation(1, 0, 0))
	v, _ = m.Project(0, 0, 0)
	if !near(v.X(), 1) || !near(v.Z(), 0) {
		t.Errorf("Expected (1,0,0), got %v", v)
	}
}

func TestScaleAndRotations(t *testing.T) {
	v, _ := Scale(2, -1, 3).Project(1, 1, 1)
	if !near(v.X(), 2) || !near(v.Y(), -1) || !near(v.Z(), 3) {
		t.Errorf("Unexpected scaled point %v", v)
	}
	v, _ = RotationX(90).Project(0, 1, 0)
	if !near(v.Z(), 1) {
		t.Errorf("Expected +Y to rotate onto +Z, got %v", v)
	}
	v, _ = RotationY(90).Project(1, 0, 0)
	if !near(v.Z(), 1) {
		t.Errorf("Expected +X to rotate onto +Z, got %v", v)
	}
}

func TestProjectionDividesByDepth(t *testing.T) {
	f := FocalLength(90)
	if !near(f, 1) {
		t.Fatalf("Expected focal length 1 for 90 degrees, got %f", f)
	}
	v, w := Projection(f).Project(2, 1, -4)
	if !near(w, 4) {
		t.Errorf("Expected w 4, got %f", w)
	}
	if !near(v.X(), 0.5) || !near(v.Y(), 0.25) {
		t.Errorf("Expected (0.5,0.25), got %v", v)
	}
	// Depth stays inside the clip range for points between the planes
	if v.Z() <= -1 || v.Z() >= 1 {
		t.Errorf("Expected ndc depth in (-1,1), got %f", v.Z())
	}
}

func TestTransform2DMatchesMatrix(t *testing.T) {
	m := RotationY(30).Mul(Translation(0.5, 0, -3)).Mul(Projection(FocalLength(70)))
	h := m.Transform2D()

	for _, p := range []Point{{0, 0}, {-0.5, -0.5}, {0.5, 0.5}, {0.25, -0.1}} {
		want, w := m.Project(p.X, p.Y, 0)
		got, ok := h.Map(p)
		if !ok || w <= 0 {
			t.Fatalf("Expected %+v in front of the eye", p)
		}
		if !near(got.X, want.X()) || !near(got.Y, want.Y()) {
			t.Errorf("Point %+v: expected (%f,%f), got %+v", p, want.X(), want.Y(), got)
		}
	}

	if _, ok := Translation(0, 0, 3).Mul(Projection(1)).Transform2D().Map(Point{}); ok {
		t.Error("Expected point behind the eye to be rejected")
	}
	if p, ok := Identity().Transform2D().Map(Point{0.25, -0.1}); !ok || !near(p.X, 0.25) || !near(p.Y, -0.1) {
		t.Errorf("Expected identity to leave the point alone, got %+v", p)
	}
}

func TestRaySegmentIntersection(t *testing.T) {
	seg := Segment{A: Point{2, -1}, B: Point{2, 1}}

	dist, u, ok := RaySegmentIntersection(Point{0, 0}, Point{1, 0}, seg)
	if !ok {
		t.Fatal("Expected ray to hit the segment")
	}
	if !near(dist, 2) || !near(u, 0.5) {
		t.Errorf("Expected t=2 u=0.5, got t=%f u=%f", dist, u)
	}

	if _, _, ok := RaySegmentIntersection(Point{0, 0}, Point{-1, 0}, seg); ok {
		t.Error("Expected ray pointing away to miss")
	}
	if _, _, ok := RaySegmentIntersection(Point{0, 0}, Point{0, 1}, seg); ok {
		t.Error("Expected parallel ray to miss")
	}
}
