// Package scene provides a minimal transform-hierarchy scene graph: groups of
// meshes with local transforms, world-transform composition, and traversal.
package scene

import (
	"github.com/atelier-lux/vitrail/internal/engine/geometry"
	"github.com/atelier-lux/vitrail/internal/engine/material"
	"github.com/atelier-lux/vitrail/pkg/math"
)

// Object is anything that can live in the scene hierarchy.
type Object interface {
	// Parent returns the containing group, nil for detached objects.
	Parent() *Group
	setParent(*Group)

	// LocalTransform returns the object's transform relative to its parent.
	LocalTransform() math.Mat4
	// WorldTransform composes the parent chain down to this object.
	WorldTransform() math.Mat4

	// Visit calls fn for this object and, for groups, every descendant.
	Visit(fn func(Object))
}

// Node is the embeddable transform component shared by groups and meshes.
// Rotation is Euler XYZ in radians; castle geometry only ever yaws.
type Node struct {
	Position math.Vec3
	Rotation math.Vec3
	Scaling  math.Vec3

	parent *Group
}

// NewNode returns a node with identity transform.
func NewNode() Node {
	return Node{Scaling: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Parent returns the containing group.
func (n *Node) Parent() *Group { return n.parent }

func (n *Node) setParent(g *Group) { n.parent = g }

// LocalTransform returns translate * rotateY * rotateX * rotateZ * scale.
func (n *Node) LocalTransform() math.Mat4 {
	m := math.Translate(n.Position.X, n.Position.Y, n.Position.Z)
	if n.Rotation.Y != 0 {
		m = m.Mul(math.RotateY(n.Rotation.Y))
	}
	if n.Rotation.X != 0 {
		m = m.Mul(math.RotateX(n.Rotation.X))
	}
	if n.Rotation.Z != 0 {
		m = m.Mul(math.RotateZ(n.Rotation.Z))
	}
	if n.Scaling != (math.Vec3{X: 1, Y: 1, Z: 1}) && n.Scaling != (math.Vec3{}) {
		m = m.Mul(math.Scale(n.Scaling.X, n.Scaling.Y, n.Scaling.Z))
	}
	return m
}

// WorldTransform composes the parent chain.
func (n *Node) WorldTransform() math.Mat4 {
	local := n.LocalTransform()
	if n.parent == nil {
		return local
	}
	return n.parent.WorldTransform().Mul(local)
}

// Group is a named composite of scene objects.
type Group struct {
	Node
	Name string

	children []Object
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Node: NewNode(), Name: name}
}

// Add attaches an object to the group. An object already attached elsewhere
// is moved.
func (g *Group) Add(obj Object) {
	if p := obj.Parent(); p != nil {
		p.Remove(obj)
	}
	obj.setParent(g)
	g.children = append(g.children, obj)
}

// Remove detaches an object from the group. Unknown objects are ignored.
func (g *Group) Remove(obj Object) {
	for i, c := range g.children {
		if c == obj {
			g.children = append(g.children[:i], g.children[i+1:]...)
			obj.setParent(nil)
			return
		}
	}
}

// Children returns the direct children. The returned slice is owned by the
// group; callers must not mutate it.
func (g *Group) Children() []Object {
	return g.children
}

// Visit calls fn for the group and every descendant, depth first.
func (g *Group) Visit(fn func(Object)) {
	fn(g)
	for _, c := range g.children {
		c.Visit(fn)
	}
}

// Dispose releases the geometry of every mesh in the subtree. Materials are
// caller-owned and untouched.
func (g *Group) Dispose() {
	g.Visit(func(obj Object) {
		if m, ok := obj.(*Mesh); ok && m.Geometry != nil {
			m.Geometry.Dispose()
		}
	})
}

// Mesh is a renderable scene object: geometry plus a shared material.
type Mesh struct {
	Node
	Name     string
	Geometry *geometry.Geometry
	Material *material.Material
}

// NewMesh creates a mesh. The mesh owns the geometry; the material reference
// is shared and its lifetime is managed by the caller.
func NewMesh(name string, geo *geometry.Geometry, mat *material.Material) *Mesh {
	return &Mesh{Node: NewNode(), Name: name, Geometry: geo, Material: mat}
}

// Visit calls fn for the mesh.
func (m *Mesh) Visit(fn func(Object)) {
	fn(m)
}

// CollisionGeometry reports whether the mesh should participate in collision
// and returns its geometry if so. Transparent and transmissive surfaces
// (glass) are walk-through so projected light can pass them.
func (m *Mesh) CollisionGeometry() (*geometry.Geometry, bool) {
	if m.Geometry == nil || m.Geometry.Disposed() {
		return nil, false
	}
	if m.Material != nil && !m.Material.Collidable() {
		return nil, false
	}
	return m.Geometry, true
}
