package collision

import (
	"github.com/atelier-lux/vitrail/pkg/math"
)

// Segment is a line segment, used as the capsule spine during collision
// resolution. The resolver mutates one working segment in place as it
// processes triangles.
type Segment struct {
	Start math.Vec3
	End   math.Vec3
}

// Translate shifts both endpoints by the given offset.
func (s *Segment) Translate(offset math.Vec3) {
	s.Start = s.Start.Add(offset)
	s.End = s.End.Add(offset)
}

// ClosestPointToPoint returns the point on the segment closest to p.
func (s Segment) ClosestPointToPoint(p math.Vec3) math.Vec3 {
	ab := s.End.Sub(s.Start)
	denom := ab.LengthSq()
	if denom == 0 {
		return s.Start
	}
	t := p.Sub(s.Start).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return s.Start.Add(ab.Scale(t))
}

// Triangle is a collision triangle with a cached bounding box.
type Triangle struct {
	A, B, C math.Vec3
	bounds  AABB
}

// NewTriangle creates a triangle and precomputes its bounds.
func NewTriangle(a, b, c math.Vec3) Triangle {
	return Triangle{A: a, B: b, C: c, bounds: NewAABBFromPoints(a, b, c)}
}

// Bounds returns the triangle's bounding box.
func (t *Triangle) Bounds() AABB {
	return t.bounds
}

// Normal returns the (non-normalized) face normal.
func (t *Triangle) Normal() math.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// ClosestPointToPoint returns the point on the triangle closest to p.
// Standard barycentric region walk (Ericson, Real-Time Collision Detection).
func (t *Triangle) ClosestPointToPoint(p math.Vec3) math.Vec3 {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := p.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Scale(v))
	}

	cp := p.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// ClosestPointToSegment returns the closest pair of points between the
// triangle and a segment: onTri on the triangle, onSeg on the segment.
// If the segment pierces the triangle both points coincide.
func (t *Triangle) ClosestPointToSegment(seg Segment) (onTri, onSeg math.Vec3) {
	// Piercing case: segment crosses the triangle's plane inside the face.
	if hit, ok := t.intersectSegment(seg); ok {
		return hit, hit
	}

	bestDistSq := float32(-1)
	consider := func(tri, s math.Vec3) {
		d := tri.DistanceSq(s)
		if bestDistSq < 0 || d < bestDistSq {
			bestDistSq = d
			onTri = tri
			onSeg = s
		}
	}

	// Segment endpoints against the triangle face.
	consider(t.ClosestPointToPoint(seg.Start), seg.Start)
	consider(t.ClosestPointToPoint(seg.End), seg.End)

	// Segment against each triangle edge.
	edges := [3]Segment{
		{Start: t.A, End: t.B},
		{Start: t.B, End: t.C},
		{Start: t.C, End: t.A},
	}
	for _, edge := range edges {
		pEdge, pSeg := closestPointsSegments(edge, seg)
		consider(pEdge, pSeg)
	}

	return onTri, onSeg
}

// intersectSegment returns the point where the segment crosses the triangle,
// if it does.
func (t *Triangle) intersectSegment(seg Segment) (math.Vec3, bool) {
	n := t.Normal()
	d := seg.End.Sub(seg.Start)
	denom := n.Dot(d)
	if denom == 0 {
		return math.Vec3{}, false
	}

	u := n.Dot(t.A.Sub(seg.Start)) / denom
	if u < 0 || u > 1 {
		return math.Vec3{}, false
	}

	p := seg.Start.Add(d.Scale(u))

	// Inside-outside test against each edge.
	if n.Dot(t.B.Sub(t.A).Cross(p.Sub(t.A))) < 0 {
		return math.Vec3{}, false
	}
	if n.Dot(t.C.Sub(t.B).Cross(p.Sub(t.B))) < 0 {
		return math.Vec3{}, false
	}
	if n.Dot(t.A.Sub(t.C).Cross(p.Sub(t.C))) < 0 {
		return math.Vec3{}, false
	}
	return p, true
}

// closestPointsSegments returns the closest points between two segments
// (Ericson, Real-Time Collision Detection, ClosestPtSegmentSegment).
func closestPointsSegments(s1, s2 Segment) (on1, on2 math.Vec3) {
	d1 := s1.End.Sub(s1.Start)
	d2 := s2.End.Sub(s2.Start)
	r := s1.Start.Sub(s2.Start)

	a := d1.LengthSq()
	e := d2.LengthSq()
	f := d2.Dot(r)

	var s, u float32

	const eps = 1e-12
	switch {
	case a <= eps && e <= eps:
		return s1.Start, s2.Start
	case a <= eps:
		s = 0
		u = clamp01(f / e)
	default:
		c := d1.Dot(r)
		if e <= eps {
			u = 0
			s = clamp01(-c / a)
		} else {
			b := d1.Dot(d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clamp01((b*f - c*e) / denom)
			}
			u = (b*s + f) / e
			if u < 0 {
				u = 0
				s = clamp01(-c / a)
			} else if u > 1 {
				u = 1
				s = clamp01((b - c) / a)
			}
		}
	}

	return s1.Start.Add(d1.Scale(s)), s2.Start.Add(d2.Scale(u))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
