package scene

import (
	"testing"

	"github.com/atelier-lux/vitrail/internal/engine/geometry"
	"github.com/atelier-lux/vitrail/internal/engine/material"
	"github.com/atelier-lux/vitrail/pkg/math"
)

func TestGroupAddRemove(t *testing.T) {
	root := NewGroup("root")
	m := NewMesh("box", geometry.NewBox(1, 1, 1), nil)

	root.Add(m)
	if m.Parent() != root {
		t.Error("expected mesh parent to be root after Add")
	}
	if len(root.Children()) != 1 {
		t.Errorf("expected 1 child, got %d", len(root.Children()))
	}

	root.Remove(m)
	if m.Parent() != nil {
		t.Error("expected mesh parent nil after Remove")
	}
	if len(root.Children()) != 0 {
		t.Errorf("expected 0 children, got %d", len(root.Children()))
	}
}

func TestAddMovesBetweenGroups(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	m := NewMesh("box", geometry.NewBox(1, 1, 1), nil)

	a.Add(m)
	b.Add(m)

	if len(a.Children()) != 0 {
		t.Error("expected mesh removed from first group")
	}
	if m.Parent() != b {
		t.Error("expected mesh parent to be second group")
	}
}

func TestWorldTransformComposesParentChain(t *testing.T) {
	root := NewGroup("root")
	root.Position = math.Vec3{X: 10}

	child := NewGroup("child")
	child.Position = math.Vec3{Y: 5}
	root.Add(child)

	m := NewMesh("box", geometry.NewBox(1, 1, 1), nil)
	m.Position = math.Vec3{Z: 2}
	child.Add(m)

	p := m.WorldTransform().TransformPoint(math.Vec3{})
	want := math.Vec3{X: 10, Y: 5, Z: 2}
	if p != want {
		t.Errorf("world position = %v, want %v", p, want)
	}
}

func TestVisitReachesAllDescendants(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	root.Add(child)
	child.Add(NewMesh("a", geometry.NewBox(1, 1, 1), nil))
	root.Add(NewMesh("b", geometry.NewBox(1, 1, 1), nil))

	count := 0
	root.Visit(func(Object) { count++ })
	if count != 4 {
		t.Errorf("expected 4 visited objects, got %d", count)
	}
}

func TestGroupDisposeReleasesGeometry(t *testing.T) {
	root := NewGroup("root")
	g1 := geometry.NewBox(1, 1, 1)
	g2 := geometry.NewBox(1, 1, 1)
	root.Add(NewMesh("a", g1, nil))
	inner := NewGroup("inner")
	inner.Add(NewMesh("b", g2, nil))
	root.Add(inner)

	root.Dispose()

	if !g1.Disposed() || !g2.Disposed() {
		t.Error("expected all mesh geometry disposed")
	}
}

func TestCollisionGeometryExcludesGlass(t *testing.T) {
	stone := NewMesh("wall", geometry.NewBox(1, 1, 1), material.Stone())
	if _, ok := stone.CollisionGeometry(); !ok {
		t.Error("stone mesh should be collidable")
	}

	glass := NewMesh("window", geometry.NewPlane(1, 1), material.Glass("g", 1, 0, 0, 1))
	if _, ok := glass.CollisionGeometry(); ok {
		t.Error("glass mesh should not be collidable")
	}

	bare := NewMesh("bare", geometry.NewBox(1, 1, 1), nil)
	if _, ok := bare.CollisionGeometry(); !ok {
		t.Error("mesh without material should default to collidable")
	}

	disposed := NewMesh("gone", geometry.NewBox(1, 1, 1), material.Stone())
	disposed.Geometry.Dispose()
	if _, ok := disposed.CollisionGeometry(); ok {
		t.Error("disposed geometry should not be collidable")
	}
}
