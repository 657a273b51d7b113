package collision

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/engine/geometry"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/internal/logger"
	"github.com/atelier-lux/vitrail/pkg/math"
)

// Collider pairs a source mesh with a world-space copy of its geometry and a
// BVH over that copy. The source mesh is referenced, not owned; the cloned
// geometry is owned by the collider and released by Dispose.
type Collider struct {
	Source   *scene.Mesh
	Geometry *geometry.Geometry
	Tree     *BVH
}

// Dispose releases the collider's cloned geometry. Safe to call repeatedly.
func (c *Collider) Dispose() {
	c.Geometry.Dispose()
}

// BuildFromScene walks the scene once and builds one collider per eligible
// mesh. Skipped: meshes that opted out of collision (glass), and meshes whose
// world-space bounding box diagonal is below minSize (decorative clutter).
// A BVH build failure on one mesh is logged and skips that mesh only.
func BuildFromScene(root *scene.Group, minSize float32) []*Collider {
	var colliders []*Collider

	root.Visit(func(obj scene.Object) {
		mesh, ok := obj.(*scene.Mesh)
		if !ok {
			return
		}
		geo, ok := mesh.CollisionGeometry()
		if !ok {
			return
		}

		world := mesh.WorldTransform()

		// World-space size filter before paying for the clone.
		min, max := geo.Bounds()
		worldBounds := NewAABBFromPoints(
			world.TransformPoint(min),
			world.TransformPoint(max),
		)
		if worldBounds.Diagonal() < minSize {
			return
		}

		collider, err := buildCollider(mesh, geo, world)
		if err != nil {
			logger.Warn("skipping collision mesh",
				zap.String("mesh", mesh.Name),
				zap.Error(err),
			)
			return
		}
		colliders = append(colliders, collider)
	})

	return colliders
}

// buildCollider clones the mesh geometry, bakes the world transform into the
// clone, and builds a BVH over its triangles. A panic during the build (a
// pathological mesh) is converted to an error.
func buildCollider(mesh *scene.Mesh, geo *geometry.Geometry, world math.Mat4) (c *Collider, err error) {
	clone := geo.Clone()

	defer func() {
		if r := recover(); r != nil {
			clone.Dispose()
			c = nil
			err = fmt.Errorf("bvh build panic: %v", r)
		}
	}()

	clone.ApplyTransform(world)

	triangles, err := trianglesOf(clone)
	if err != nil {
		clone.Dispose()
		return nil, err
	}

	return &Collider{
		Source:   mesh,
		Geometry: clone,
		Tree:     NewBVH(triangles),
	}, nil
}

// trianglesOf converts indexed geometry into collision triangles.
func trianglesOf(geo *geometry.Geometry) ([]Triangle, error) {
	if len(geo.Indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(geo.Indices))
	}

	triangles := make([]Triangle, 0, len(geo.Indices)/3)
	for i := 0; i+2 < len(geo.Indices); i += 3 {
		i0, i1, i2 := geo.Indices[i], geo.Indices[i+1], geo.Indices[i+2]
		n := uint32(len(geo.Vertices))
		if i0 >= n || i1 >= n || i2 >= n {
			return nil, fmt.Errorf("index out of range: (%d, %d, %d) with %d vertices", i0, i1, i2, n)
		}
		triangles = append(triangles, NewTriangle(
			geo.Vertices[i0].Position,
			geo.Vertices[i1].Position,
			geo.Vertices[i2].Position,
		))
	}
	return triangles, nil
}
