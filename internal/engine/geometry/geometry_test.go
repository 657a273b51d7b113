package geometry

import (
	"testing"

	"github.com/atelier-lux/vitrail/pkg/math"
)

func TestNewBoxCounts(t *testing.T) {
	g := NewBox(1, 2, 3)

	if len(g.Vertices) != 24 {
		t.Errorf("expected 24 vertices, got %d", len(g.Vertices))
	}
	if len(g.Indices) != 36 {
		t.Errorf("expected 36 indices, got %d", len(g.Indices))
	}

	min, max := g.Bounds()
	if min != (math.Vec3{X: -0.5, Y: -1, Z: -1.5}) {
		t.Errorf("bounds min = %v, want {-0.5 -1 -1.5}", min)
	}
	if max != (math.Vec3{X: 0.5, Y: 1, Z: 1.5}) {
		t.Errorf("bounds max = %v, want {0.5 1 1.5}", max)
	}
}

func TestNewPlaneFacesPositiveZ(t *testing.T) {
	g := NewPlane(2, 1)

	if len(g.Vertices) != 4 || len(g.Indices) != 6 {
		t.Fatalf("expected 4 vertices / 6 indices, got %d / %d", len(g.Vertices), len(g.Indices))
	}
	for i, v := range g.Vertices {
		if v.Normal != (math.Vec3{X: 0, Y: 0, Z: 1}) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestNewDiscTriangleCount(t *testing.T) {
	const segments = 16
	g := NewDisc(1.5, segments)

	if len(g.Indices) != segments*3 {
		t.Errorf("expected %d indices, got %d", segments*3, len(g.Indices))
	}

	min, max := g.Bounds()
	if min.Y != 0 || max.Y != 0 {
		t.Errorf("disc should be flat at y=0, bounds y [%f, %f]", min.Y, max.Y)
	}
	if max.X < 1.49 || max.X > 1.51 {
		t.Errorf("disc radius not respected, max.X = %f", max.X)
	}
}

func TestNewCylinderBounds(t *testing.T) {
	g := NewCylinder(0.5, 2, 12)

	min, max := g.Bounds()
	if min.Y != -1 || max.Y != 1 {
		t.Errorf("cylinder should span y in [-1, 1], got [%f, %f]", min.Y, max.Y)
	}
}

func TestApplyTransformBakesTranslation(t *testing.T) {
	g := NewBox(1, 1, 1)
	g.ApplyTransform(math.Translate(10, 0, 0))

	min, max := g.Bounds()
	if min.X != 9.5 || max.X != 10.5 {
		t.Errorf("translated bounds x = [%f, %f], want [9.5, 10.5]", min.X, max.X)
	}

	// Normals are directions: translation must not change them.
	for _, v := range g.Vertices[:4] {
		if v.Normal != (math.Vec3{X: 0, Y: 0, Z: 1}) {
			t.Errorf("front-face normal changed by translation: %v", v.Normal)
		}
	}
}

func TestApplyTransformRotatesNormals(t *testing.T) {
	g := NewPlane(1, 1)
	g.ApplyTransform(math.RotateY(math32Pi))

	n := g.Vertices[0].Normal
	if n.Z > -0.999 {
		t.Errorf("plane normal after half turn = %v, want -Z", n)
	}
}

const math32Pi = 3.14159265358979

func TestCloneIsDeep(t *testing.T) {
	g := NewBox(1, 1, 1)
	c := g.Clone()

	c.Vertices[0].Position.X = 99
	if g.Vertices[0].Position.X == 99 {
		t.Error("clone shares vertex storage with original")
	}

	c.Indices[0] = 7
	if g.Indices[0] == 7 {
		t.Error("clone shares index storage with original")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	g := NewBox(1, 1, 1)

	g.Dispose()
	if !g.Disposed() {
		t.Error("expected Disposed() true after Dispose")
	}
	if g.Vertices != nil || g.Indices != nil {
		t.Error("expected mesh data released after Dispose")
	}

	// Second call must not panic.
	g.Dispose()
}
