package collision

// bvhNode is a node in the hierarchy. Leaf nodes carry triangles directly;
// internal nodes carry children.
type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []Triangle
}

// BVH is a bounding volume hierarchy over a triangle soup, accelerating
// proximity queries for capsule collision.
type BVH struct {
	root          *bvhNode
	triangleCount int
}

// leafThreshold: leaves hold up to this many triangles.
const leafThreshold = 8

// NewBVH builds a hierarchy over the given triangles using median splits
// along the longest axis. The input slice is not retained.
func NewBVH(triangles []Triangle) *BVH {
	if len(triangles) == 0 {
		return &BVH{}
	}
	tris := make([]Triangle, len(triangles))
	copy(tris, triangles)
	return &BVH{
		root:          buildNode(tris),
		triangleCount: len(tris),
	}
}

// TriangleCount returns the number of triangles indexed by the hierarchy.
func (b *BVH) TriangleCount() int {
	return b.triangleCount
}

// Bounds returns the overall bounding box of the hierarchy.
func (b *BVH) Bounds() AABB {
	if b.root == nil {
		return AABB{}
	}
	return b.root.bounds
}

func buildNode(tris []Triangle) *bvhNode {
	bounds := tris[0].Bounds()
	for i := 1; i < len(tris); i++ {
		bounds = bounds.Union(tris[i].Bounds())
	}

	if len(tris) <= leafThreshold {
		return &bvhNode{bounds: bounds, triangles: tris}
	}

	axis := bounds.LongestAxis()
	split := bounds.Center().Component(axis)

	// Partition around the spatial median of the longest axis.
	var left, right []Triangle
	for _, t := range tris {
		if t.Bounds().Center().Component(axis) < split {
			left = append(left, t)
		} else {
			right = append(right, t)
		}
	}

	// Degenerate split (coincident centers): fall back to a leaf.
	if len(left) == 0 || len(right) == 0 {
		return &bvhNode{bounds: bounds, triangles: tris}
	}

	return &bvhNode{
		bounds: bounds,
		left:   buildNode(left),
		right:  buildNode(right),
	}
}

// ForEachNearSegment calls fn for every triangle whose bounding box lies
// within the given distance of either segment endpoint. fn may mutate the
// segment it is resolving against; the pruning uses the segment value as
// passed per call.
func (b *BVH) ForEachNearSegment(seg Segment, distance float32, fn func(*Triangle)) {
	if b.root == nil {
		return
	}
	b.root.forEachNear(seg, distance, fn)
}

func (n *bvhNode) forEachNear(seg Segment, distance float32, fn func(*Triangle)) {
	if !n.bounds.WithinDistanceOfSegmentEnds(seg, distance) {
		return
	}

	if n.triangles != nil {
		for i := range n.triangles {
			t := &n.triangles[i]
			if t.Bounds().WithinDistanceOfSegmentEnds(seg, distance) {
				fn(t)
			}
		}
		return
	}

	if n.left != nil {
		n.left.forEachNear(seg, distance, fn)
	}
	if n.right != nil {
		n.right.forEachNear(seg, distance, fn)
	}
}
