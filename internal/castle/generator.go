package castle

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/config"
	"github.com/atelier-lux/vitrail/internal/engine/geometry"
	"github.com/atelier-lux/vitrail/internal/engine/material"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/internal/logger"
	"github.com/atelier-lux/vitrail/pkg/math"
)

const (
	// Wall ring radius relative to the configured base radius.
	ringRadiusFactor = 2.2
	// Towers sit slightly outside the wall ring.
	towerRadiusFactor = 1.05
	// Glass offset along the outward wall normal, avoids z-fighting.
	glassOffset = 0.02
	// Hard caps on per-window dimensions.
	maxWindowWidth  = 0.6
	maxWindowHeight = 0.7
)

// Result is what one Generate call produced. WindowMeshes is ordered by
// slot; slots without a material hold nil.
type Result struct {
	Group        *scene.Group
	WindowMeshes []*scene.Mesh
	WindowCount  int
}

// Generator builds and owns the castle group. Regeneration is destructive
// replacement: the previous group is detached and its geometry disposed
// before the new one attaches. Exactly one group is live at a time.
type Generator struct {
	group    *scene.Group
	windows  []*scene.Mesh
	skylight *scene.Mesh
}

func NewGenerator() *Generator {
	return &Generator{}
}

// windowSpec is the derived per-slot sizing, recomputed every generation.
type windowSpec struct {
	width  float32
	height float32
}

// windowSize derives a slot's dimensions from its material aspect ratio,
// keeping the nominal area constant: wide images get wide windows, tall
// images tall ones, clamped to fixed maxima.
func windowSize(nominalW, nominalH, aspect float32) windowSpec {
	area := nominalW * nominalH
	w := math32.Sqrt(area * aspect)
	h := math32.Sqrt(area / aspect)
	return windowSpec{
		width:  math32.Min(w, maxWindowWidth),
		height: math32.Min(h, maxWindowHeight),
	}
}

// Generate builds a fresh castle under target and returns the live group
// plus the ordered window meshes for later material hot-swapping.
//
// materials is ordered by window slot; slot 0 doubles as the skylight
// material. Slots past len(materials), or with a nil entry, keep their
// wall opening but get no glass mesh.
func (g *Generator) Generate(target *scene.Group, materials []*material.Material, params config.CastleParams) *Result {
	rng := NewSeededRandom(params.Seed)

	windowCount := params.WindowCount
	if windowCount <= 0 {
		windowCount = len(materials)
	}

	// Destructive replacement of any previous castle.
	if g.group != nil {
		if g.group.Parent() != nil {
			g.group.Parent().Remove(g.group)
		}
		g.group.Dispose()
	}

	group := scene.NewGroup("castle")
	ringRadius := params.BaseRadius * ringRadiusFactor
	stone := material.Stone()

	segmentWidth := wallSegmentWidth(ringRadius, windowCount)

	windows := make([]*scene.Mesh, windowCount)
	for i := 0; i < windowCount; i++ {
		var mat *material.Material
		if i < len(materials) {
			mat = materials[i]
		}
		spec := windowSize(params.WindowWidth, params.WindowHeight, mat.Aspect())

		yaw := 2 * math32.Pi * float32(i) / float32(windowCount)
		seg := scene.NewGroup(fmt.Sprintf("wall-%d", i))
		seg.Position = math.Vec3{X: ringRadius * math32.Sin(yaw), Y: 0, Z: ringRadius * math32.Cos(yaw)}
		seg.Rotation.Y = yaw

		g.buildWallSegment(seg, stone, segmentWidth, spec, params, rng)

		if mat != nil {
			glass := scene.NewMesh(fmt.Sprintf("window-%d", i), geometry.NewPlane(spec.width, spec.height), mat)
			glass.Position = math.Vec3{Y: params.WallHeight / 2, Z: params.WallThickness/2 + glassOffset}
			seg.Add(glass)
			windows[i] = glass
		}

		group.Add(seg)
	}

	g.buildTowers(group, stone, ringRadius, windowCount, params, rng)
	g.buildBase(group, stone, ringRadius, params)
	skylight := g.buildSkylight(group, stone, materials, ringRadius, params)

	target.Add(group)

	g.group = group
	g.windows = windows
	g.skylight = skylight

	logger.Info("castle generated",
		zap.Int64("seed", params.Seed),
		zap.Int("windows", windowCount),
		zap.Int("towers", minInt(params.TowerCount, windowCount)),
	)

	return &Result{Group: group, WindowMeshes: windows, WindowCount: windowCount}
}

// UpdateWindowMaterials swaps materials on the recorded window meshes
// (and the skylight) in slot order without touching geometry.
func (g *Generator) UpdateWindowMaterials(materials []*material.Material) {
	for i, mesh := range g.windows {
		if mesh == nil || i >= len(materials) || materials[i] == nil {
			continue
		}
		mesh.Material = materials[i]
	}
	if g.skylight != nil && len(materials) > 0 && materials[0] != nil {
		g.skylight.Material = materials[0]
	}
}

// Group returns the live castle group, or nil before the first Generate.
func (g *Generator) Group() *scene.Group { return g.group }

// buildWallSegment assembles one angular slice of the ring in the
// segment's local frame: outward is +Z, the opening is centered.
func (g *Generator) buildWallSegment(seg *scene.Group, stone *material.Material, segmentWidth float32, spec windowSpec, params config.CastleParams, rng *SeededRandom) {
	openW := math32.Min(spec.width, segmentWidth*0.8)
	openH := math32.Min(spec.height, params.WallHeight*0.8)
	slabH := (params.WallHeight - openH) / 2
	pillarW := (segmentWidth - openW) / 2
	th := params.WallThickness

	lower := scene.NewMesh("slab-lower", geometry.NewBox(segmentWidth, slabH, th), stone)
	lower.Position.Y = slabH / 2
	seg.Add(lower)

	upper := scene.NewMesh("slab-upper", geometry.NewBox(segmentWidth, slabH, th), stone)
	upper.Position.Y = params.WallHeight - slabH/2
	seg.Add(upper)

	for _, side := range []float32{-1, 1} {
		pillar := scene.NewMesh("pillar", geometry.NewBox(pillarW, openH, th), stone)
		pillar.Position = math.Vec3{X: side * (openW + pillarW) / 2, Y: params.WallHeight / 2}
		seg.Add(pillar)
	}

	// Decorative arch lintel over the opening and a protruding sill below.
	lintel := scene.NewMesh("lintel", geometry.NewBox(openW*1.15, 0.05, th*1.4), stone)
	lintel.Position = math.Vec3{Y: params.WallHeight/2 + openH/2 + 0.025}
	seg.Add(lintel)

	sill := scene.NewMesh("sill", geometry.NewBox(openW*1.1, 0.04, th*1.5), stone)
	sill.Position = math.Vec3{Y: params.WallHeight/2 - openH/2 - 0.02}
	seg.Add(sill)

	// Crenelated parapet: evenly spaced merlons with seeded height jitter.
	count := params.CrenelationCount
	if count < 1 {
		count = 1
	}
	merlonW := segmentWidth / float32(2*count)
	for c := 0; c < count; c++ {
		h := params.CrenelationHeight * rng.Range(0.85, 1.2)
		merlon := scene.NewMesh("merlon", geometry.NewBox(merlonW, h, th), stone)
		x := -segmentWidth/2 + merlonW/2 + float32(c)*segmentWidth/float32(count)
		merlon.Position = math.Vec3{X: x, Y: params.WallHeight + h/2}
		seg.Add(merlon)
	}
}

// buildTowers places cylinders at the angular midpoints between adjacent
// wall segments. TowerCount caps how many midpoints get one.
func (g *Generator) buildTowers(group *scene.Group, stone *material.Material, ringRadius float32, windowCount int, params config.CastleParams, rng *SeededRandom) {
	towerCount := minInt(params.TowerCount, windowCount)
	towerRing := ringRadius * towerRadiusFactor
	for j := 0; j < towerCount; j++ {
		yaw := 2 * math32.Pi * (float32(j) + 0.5) / float32(windowCount)
		h := params.TowerHeight * rng.Range(0.92, 1.1)
		tower := scene.NewMesh(fmt.Sprintf("tower-%d", j), geometry.NewCylinder(params.TowerRadius, h, 12), stone)
		tower.Position = math.Vec3{X: towerRing * math32.Sin(yaw), Y: h / 2, Z: towerRing * math32.Cos(yaw)}
		group.Add(tower)
	}
}

// buildBase adds the circular foundation slab and the floor disc that
// receives the projected light.
func (g *Generator) buildBase(group *scene.Group, stone *material.Material, ringRadius float32, params config.CastleParams) {
	foundationRadius := ringRadius + params.WallThickness*3
	foundation := scene.NewMesh("foundation", geometry.NewCylinder(foundationRadius, 0.08, 48), stone)
	foundation.Position.Y = -0.04
	group.Add(foundation)

	floor := scene.NewMesh("floor", geometry.NewDisc(ringRadius*0.98, 48), stone)
	floor.Position.Y = 0.01
	group.Add(floor)
}

// buildSkylight adds the horizontal glass quad near the top of the walls
// plus its four-bar frame. Slot-0 material supplies the glass; with no
// materials the frame is still placed and the glass is skipped.
func (g *Generator) buildSkylight(group *scene.Group, stone *material.Material, materials []*material.Material, ringRadius float32, params config.CastleParams) *scene.Mesh {
	side := ringRadius * 0.9
	y := params.WallHeight * 0.95

	barTh := float32(0.04)
	for _, bar := range []struct {
		w, d, x, z float32
	}{
		{side + barTh, barTh, 0, side / 2},
		{side + barTh, barTh, 0, -side / 2},
		{barTh, side + barTh, side / 2, 0},
		{barTh, side + barTh, -side / 2, 0},
	} {
		m := scene.NewMesh("skylight-frame", geometry.NewBox(bar.w, barTh, bar.d), stone)
		m.Position = math.Vec3{X: bar.x, Y: y, Z: bar.z}
		group.Add(m)
	}

	if len(materials) == 0 || materials[0] == nil {
		return nil
	}
	glass := scene.NewMesh("skylight", geometry.NewPlane(side, side), materials[0])
	glass.Position.Y = y
	glass.Rotation.X = -math32.Pi / 2
	group.Add(glass)
	return glass
}

// wallSegmentWidth is the chord between adjacent ring points, shrunk a
// little so segments do not interpenetrate at the corners.
func wallSegmentWidth(ringRadius float32, windowCount int) float32 {
	if windowCount <= 1 {
		return ringRadius
	}
	return 2 * ringRadius * math32.Sin(math32.Pi/float32(windowCount)) * 0.95
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
