package geom

import "math"

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ClipToDepth trims the segment a-b, given in camera space with Y as
// depth, so that no endpoint lies nearer than near. ok is false when the
// whole segment is closer than near.
func ClipToDepth(a, b Point, near float64) (Point, Point, bool) {
	if a.Y < near && b.Y < near {
		return a, b, false
	}
	if a.Y < near {
		a = a.Lerp(b, (near-a.Y)/(b.Y-a.Y))
		a.Y = near
	} else if b.Y < near {
		b = b.Lerp(a, (near-b.Y)/(a.Y-b.Y))
		b.Y = near
	}
	return a, b, true
}

// RaySegmentIntersection checks if a ray intersects a line segment.
// It returns the ray distance t and the segment parameter u in [0,1].
func RaySegmentIntersection(origin, dir Point, seg Segment) (t, u float64, ok bool) {
	// Ray: P = origin + t*dir for t >= 0
	// Segment: Q = seg.A + u*(seg.B - seg.A) for 0 <= u <= 1
	segDX := seg.B.X - seg.A.X
	segDY := seg.B.Y - seg.A.Y

	denominator := dir.X*segDY - dir.Y*segDX
	if math.Abs(denominator) < 1e-10 {
		// Ray and segment are parallel
		return 0, 0, false
	}

	diffX := seg.A.X - origin.X
	diffY := seg.A.Y - origin.Y

	t = (diffX*segDY - diffY*segDX) / denominator
	u = (diffX*dir.Y - diffY*dir.X) / denominator

	if u >= 0 && u <= 1 && t >= 0 {
		return t, u, true
	}
	return 0, 0, false
}
