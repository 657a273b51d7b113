// Package collision provides capsule-vs-triangle-mesh collision queries
// accelerated by a bounding volume hierarchy.
package collision

import (
	"github.com/atelier-lux/vitrail/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABBFromPoints returns the AABB bounding all given points.
func NewAABBFromPoints(points ...math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return AABB{Min: min, Max: max}
}

// Union returns an AABB that bounds both this AABB and another.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Diagonal returns the length of the min-to-max diagonal.
func (b AABB) Diagonal() float32 {
	return b.Size().Length()
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// DistanceSqToPoint returns the squared distance from the box to a point
// (zero when the point is inside).
func (b AABB) DistanceSqToPoint(p math.Vec3) float32 {
	clamped := p.Max(b.Min).Min(b.Max)
	return clamped.DistanceSq(p)
}

// WithinDistanceOfSegmentEnds reports whether the box lies within the given
// distance of either segment endpoint. This is the capsule broad-phase test:
// the capsule spine is short relative to collider triangles, so endpoint
// checks are sufficient.
func (b AABB) WithinDistanceOfSegmentEnds(seg Segment, distance float32) bool {
	distSq := distance * distance
	return b.DistanceSqToPoint(seg.Start) <= distSq || b.DistanceSqToPoint(seg.End) <= distSq
}
