package geometry

import (
	"github.com/chewxy/math32"

	"github.com/atelier-lux/vitrail/pkg/math"
)

// NewBox builds an axis-aligned box centered at the origin with per-face
// normals. width is X extent, height Y, depth Z.
func NewBox(width, height, depth float32) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2

	type face struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}

	faces := []face{
		{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: -hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: hd}}},      // front
		{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}}}, // back
		{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: hd}}},      // right
		{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: hd}, {X: -hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: -hd}}}, // left
		{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: -hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}}},      // top
		{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: -hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: hd}, {X: -hw, Y: -hh, Z: hd}}}, // bottom
	}

	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corners {
			vertices = append(vertices, Vertex{Position: c, Normal: f.normal, TexCoord: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return New(vertices, indices)
}

// NewPlane builds a rectangle in the XY plane facing +Z, centered at the origin.
func NewPlane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	normal := math.Vec3{X: 0, Y: 0, Z: 1}

	vertices := []Vertex{
		{Position: math.Vec3{X: -hw, Y: -hh, Z: 0}, Normal: normal, TexCoord: math.Vec2{X: 0, Y: 1}},
		{Position: math.Vec3{X: hw, Y: -hh, Z: 0}, Normal: normal, TexCoord: math.Vec2{X: 1, Y: 1}},
		{Position: math.Vec3{X: hw, Y: hh, Z: 0}, Normal: normal, TexCoord: math.Vec2{X: 1, Y: 0}},
		{Position: math.Vec3{X: -hw, Y: hh, Z: 0}, Normal: normal, TexCoord: math.Vec2{X: 0, Y: 0}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	return New(vertices, indices)
}

// NewDisc builds a horizontal disc in the XZ plane facing +Y, centered at the
// origin, as a triangle fan with the given number of segments.
func NewDisc(radius float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}

	normal := math.Vec3{X: 0, Y: 1, Z: 0}
	vertices := make([]Vertex, 0, segments+2)
	vertices = append(vertices, Vertex{Normal: normal, TexCoord: math.Vec2{X: 0.5, Y: 0.5}})

	for i := 0; i <= segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		sin, cos := math32.Sincos(a)
		vertices = append(vertices, Vertex{
			Position: math.Vec3{X: sin * radius, Z: cos * radius},
			Normal:   normal,
			TexCoord: math.Vec2{X: (sin + 1) / 2, Y: (cos + 1) / 2},
		})
	}

	indices := make([]uint32, 0, segments*3)
	for i := 0; i < segments; i++ {
		indices = append(indices, 0, uint32(i+1), uint32(i+2))
	}

	return New(vertices, indices)
}

// NewCylinder builds a vertical cylinder centered at the origin with flat
// caps, spanning -height/2 to +height/2 on Y.
func NewCylinder(radius, height float32, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}

	hh := height / 2
	var vertices []Vertex
	var indices []uint32

	// Side wall: two rings of vertices with outward normals.
	for i := 0; i <= segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		sin, cos := math32.Sincos(a)
		normal := math.Vec3{X: sin, Z: cos}
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			Vertex{Position: math.Vec3{X: sin * radius, Y: -hh, Z: cos * radius}, Normal: normal, TexCoord: math.Vec2{X: u, Y: 1}},
			Vertex{Position: math.Vec3{X: sin * radius, Y: hh, Z: cos * radius}, Normal: normal, TexCoord: math.Vec2{X: u, Y: 0}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices,
			base, base+2, base+3,
			base, base+3, base+1,
		)
	}

	// Caps: center vertex plus rim fan.
	for _, end := range []struct {
		y      float32
		normal math.Vec3
	}{
		{hh, math.Vec3{X: 0, Y: 1, Z: 0}},
		{-hh, math.Vec3{X: 0, Y: -1, Z: 0}},
	} {
		center := uint32(len(vertices))
		vertices = append(vertices, Vertex{
			Position: math.Vec3{Y: end.y},
			Normal:   end.normal,
			TexCoord: math.Vec2{X: 0.5, Y: 0.5},
		})
		for i := 0; i <= segments; i++ {
			a := 2 * math32.Pi * float32(i) / float32(segments)
			sin, cos := math32.Sincos(a)
			vertices = append(vertices, Vertex{
				Position: math.Vec3{X: sin * radius, Y: end.y, Z: cos * radius},
				Normal:   end.normal,
				TexCoord: math.Vec2{X: (sin + 1) / 2, Y: (cos + 1) / 2},
			})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 2 + uint32(i)
			if end.normal.Y > 0 {
				indices = append(indices, center, a, b)
			} else {
				indices = append(indices, center, b, a)
			}
		}
	}

	return New(vertices, indices)
}
