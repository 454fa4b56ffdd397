// Package visibility decides which projected items can be seen. It keeps a
// one-dimensional list of screen spans, each owned by the nearest opaque
// item covering it, and tests other items against that list.
package visibility

import "math"

// NoOwner marks a span that no opaque item covers.
const NoOwner = -1

// Span is a horizontal screen interval in normalized coordinates
// (lateral offset divided by depth) together with its nearest owner.
type Span struct {
	X0, X1 float64
	Owner  int
	Depth  float64
}

// SpanList partitions the whole screen axis into contiguous spans.
type SpanList struct {
	spans []Span
}

// NewSpanList returns a list holding a single unowned span that covers
// everything at infinite depth.
func NewSpanList() *SpanList {
	l := &SpanList{}
	l.Reset()
	return l
}

// Reset drops every owner.
func (l *SpanList) Reset() {
	l.spans = append(l.spans[:0], Span{
		X0:    math.Inf(-1),
		X1:    math.Inf(1),
		Owner: NoOwner,
		Depth: math.Inf(1),
	})
}

// Spans returns the current partition ordered by X0.
func (l *SpanList) Spans() []Span {
	return l.spans
}

// Insert tests the interval [x1, x2] at depth against the list. It reports
// whether some span overlapping the interval with positive width is farther
// away. Unless checkOnly is set, spans are split at the interval bounds and
// every overlapped span that is strictly farther is handed to owner.
//
// Equal depths keep the existing owner, so among items at the same depth
// the first one inserted wins.
func (l *SpanList) Insert(owner int, x1, x2, depth float64, checkOnly bool) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if !(x1 < x2) {
		return false
	}

	visible := false
	next := l.spans
	if !checkOnly {
		next = make([]Span, 0, len(l.spans)+2)
	}

	for _, s := range l.spans {
		overlaps := s.X0 < x2 && x1 < s.X1
		if overlaps && depth < s.Depth {
			visible = true
		}
		if checkOnly {
			continue
		}
		if !overlaps || depth >= s.Depth {
			next = append(next, s)
			continue
		}

		if s.X0 < x1 {
			next = append(next, Span{X0: s.X0, X1: x1, Owner: s.Owner, Depth: s.Depth})
			s.X0 = x1
		}
		var tail *Span
		if x2 < s.X1 {
			tail = &Span{X0: x2, X1: s.X1, Owner: s.Owner, Depth: s.Depth}
			s.X1 = x2
		}
		s.Owner = owner
		s.Depth = depth
		next = append(next, s)
		if tail != nil {
			next = append(next, *tail)
		}
	}

	l.spans = next
	return visible
}

// OwnerAt returns the span covering x.
func (l *SpanList) OwnerAt(x float64) Span {
	for _, s := range l.spans {
		if x >= s.X0 && x < s.X1 {
			return s
		}
	}
	return l.spans[len(l.spans)-1]
}
