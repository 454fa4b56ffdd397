package geom

import "math"

// Point represents a position on the ground plane of the maze.
// X grows to the right and Y grows downward, matching map rows.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Len returns the length of p seen as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Polar returns the vector of the given length pointing at angle degrees.
// Angle 0 points along +X and 90 along +Y.
func Polar(length, degrees float64) Point {
	s, c := math.Sincos(Radians(degrees))
	return Point{length * c, length * s}
}

// Angle returns the direction from one point to another in degrees.
func Angle(from, to Point) float64 {
	return Degrees(math.Atan2(to.Y-from.Y, to.X-from.X))
}

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Point
}

// Midpoint returns the center of the segment.
func (s Segment) Midpoint() Point {
	return Point{(s.A.X + s.B.X) / 2, (s.A.Y + s.B.Y) / 2}
}

// Angle returns the direction of A->B in degrees.
func (s Segment) Angle() float64 { return Angle(s.A, s.B) }

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 { return Distance(s.A, s.B) }

// Bounds returns the axis-aligned rectangle spanned by the endpoints.
// Axis-aligned segments produce a zero-width or zero-height rect.
func (s Segment) Bounds() Rect {
	return Rect{
		MinX: math.Min(s.A.X, s.B.X),
		MinY: math.Min(s.A.Y, s.B.Y),
		MaxX: math.Max(s.A.X, s.B.X),
		MaxY: math.Max(s.A.Y, s.B.Y),
	}
}

// Rect is an axis-aligned rectangle. Min is always <= Max.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a rect from an origin and a size, like a QRectF.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// RectAround returns the square of the given side centered on p.
func RectAround(p Point, size float64) Rect {
	h := size / 2
	return Rect{MinX: p.X - h, MinY: p.Y - h, MaxX: p.X + h, MaxY: p.Y + h}
}

// Width returns MaxX-MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY-MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Expand grows the rect by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Intersects reports whether the rects overlap with a positive area.
// Rects that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeAngle maps deg into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg <= -180 {
		deg += 360
	} else if deg > 180 {
		deg -= 360
	}
	return deg
}
