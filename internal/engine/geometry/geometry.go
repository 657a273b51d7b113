// Package geometry provides CPU-side triangle mesh data and primitive builders.
package geometry

import (
	"github.com/atelier-lux/vitrail/pkg/math"
)

// Vertex is a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Geometry holds an indexed triangle mesh. Geometry is owned by exactly one
// mesh; Dispose releases it. GPU-side buffers are managed by the renderer,
// which watches the disposed flag.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32

	disposed bool

	boundsValid          bool
	boundsMin, boundsMax math.Vec3
}

// New creates a geometry from vertices and triangle indices.
func New(vertices []Vertex, indices []uint32) *Geometry {
	return &Geometry{Vertices: vertices, Indices: indices}
}

// Bounds returns the axis-aligned bounds of the vertex positions.
// Returns zero vectors for empty geometry.
func (g *Geometry) Bounds() (min, max math.Vec3) {
	if g.boundsValid {
		return g.boundsMin, g.boundsMax
	}
	if len(g.Vertices) == 0 {
		return math.Vec3{}, math.Vec3{}
	}

	min = g.Vertices[0].Position
	max = min
	for _, v := range g.Vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	g.boundsMin, g.boundsMax = min, max
	g.boundsValid = true
	return min, max
}

// BoundsDiagonal returns the length of the bounding-box diagonal.
func (g *Geometry) BoundsDiagonal() float32 {
	min, max := g.Bounds()
	return max.Sub(min).Length()
}

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	vertices := make([]Vertex, len(g.Vertices))
	copy(vertices, g.Vertices)
	indices := make([]uint32, len(g.Indices))
	copy(indices, g.Indices)
	return New(vertices, indices)
}

// ApplyTransform bakes a transform into the vertex data: positions are
// transformed as points, normals as directions (re-normalized).
func (g *Geometry) ApplyTransform(m math.Mat4) {
	for i := range g.Vertices {
		g.Vertices[i].Position = m.TransformPoint(g.Vertices[i].Position)
		g.Vertices[i].Normal = m.TransformDirection(g.Vertices[i].Normal).Normalize()
	}
	g.boundsValid = false
}

// Dispose releases the mesh data. Safe to call multiple times.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.Vertices = nil
	g.Indices = nil
	g.boundsValid = false
}

// Disposed reports whether the geometry has been released.
func (g *Geometry) Disposed() bool {
	return g.disposed
}
