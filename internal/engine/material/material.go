// Package material provides renderable surface descriptions for scene meshes.
package material

// Material describes how a mesh surface is rendered. Materials are supplied
// by the caller and shared between meshes; meshes never own them.
type Material struct {
	Name  string
	Color [4]float32

	// AspectRatio is the width/height hint of the source image backing this
	// material. The castle generator sizes window openings from it.
	AspectRatio float32

	// Transparent marks alpha-blended surfaces.
	Transparent bool
	// Transmission > 0 marks light-transmissive surfaces (glass). Caustics
	// must pass through them, so they are excluded from collision.
	Transmission float32
}

// Collidable reports whether geometry carrying this material should block
// movement. Glass is walk-through.
func (m *Material) Collidable() bool {
	return !m.Transparent && m.Transmission == 0
}

// Aspect returns the aspect ratio hint, defaulting to 1 when unset.
func (m *Material) Aspect() float32 {
	if m == nil || m.AspectRatio <= 0 {
		return 1
	}
	return m.AspectRatio
}

// Stone returns an opaque stone material.
func Stone() *Material {
	return &Material{
		Name:        "stone",
		Color:       [4]float32{0.52, 0.5, 0.47, 1},
		AspectRatio: 1,
	}
}

// Glass returns a transmissive stained-glass material with the given tint
// and aspect-ratio hint.
func Glass(name string, r, g, b, aspect float32) *Material {
	return &Material{
		Name:         name,
		Color:        [4]float32{r, g, b, 0.55},
		AspectRatio:  aspect,
		Transparent:  true,
		Transmission: 0.9,
	}
}
