package castle

import (
	"strings"
	"testing"

	"github.com/atelier-lux/vitrail/internal/config"
	"github.com/atelier-lux/vitrail/internal/engine/material"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/pkg/math"
)

func testParams() config.CastleParams {
	return config.Default().Castle
}

func glassPalette(aspects ...float32) []*material.Material {
	mats := make([]*material.Material, len(aspects))
	for i, a := range aspects {
		mats[i] = material.Glass("glass", 0.8, 0.3, 0.3, a)
	}
	return mats
}

func wallSegments(group *scene.Group) []*scene.Group {
	var segs []*scene.Group
	for _, child := range group.Children() {
		if g, ok := child.(*scene.Group); ok && strings.HasPrefix(g.Name, "wall-") {
			segs = append(segs, g)
		}
	}
	return segs
}

func namedMeshes(group *scene.Group, name string) []*scene.Mesh {
	var out []*scene.Mesh
	group.Visit(func(obj scene.Object) {
		if m, ok := obj.(*scene.Mesh); ok && m.Name == name {
			out = append(out, m)
		}
	})
	return out
}

func TestGenerateDeterministic(t *testing.T) {
	params := testParams()
	mats := glassPalette(1.0, 1.5, 0.7)

	type placement struct {
		pos math.Vec3
		rot math.Vec3
	}
	snapshot := func() []placement {
		target := scene.NewGroup("root")
		res := NewGenerator().Generate(target, mats, params)
		var out []placement
		res.Group.Visit(func(obj scene.Object) {
			if m, ok := obj.(*scene.Mesh); ok {
				out = append(out, placement{pos: m.Position, rot: m.Rotation})
			}
		})
		return out
	}

	first := snapshot()
	second := snapshot()
	if len(first) != len(second) {
		t.Fatalf("mesh count differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("mesh %d: got %+v, want %+v", i, second[i], first[i])
		}
	}
}

func TestGenerateSegmentSpacing(t *testing.T) {
	params := testParams()
	mats := glassPalette(1, 1, 1, 1, 1)

	target := scene.NewGroup("root")
	res := NewGenerator().Generate(target, mats, params)

	segs := wallSegments(res.Group)
	if len(segs) != 5 {
		t.Fatalf("got %d wall segments, want 5", len(segs))
	}
	const step = 2 * math.Pi / 5
	for i, seg := range segs {
		want := float32(i) * step
		if diff := seg.Rotation.Y - want; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("segment %d yaw: got %v, want %v", i, seg.Rotation.Y, want)
		}
	}

	// One tower per angular midpoint (default tower count exceeds 5).
	towers := 0
	res.Group.Visit(func(obj scene.Object) {
		if m, ok := obj.(*scene.Mesh); ok && strings.HasPrefix(m.Name, "tower-") {
			towers++
		}
	})
	if towers != 5 {
		t.Errorf("towers: got %d, want 5", towers)
	}
}

func TestGenerateScenario(t *testing.T) {
	params := testParams()
	params.Seed = 42
	params.WindowWidth = 0.35
	params.WindowHeight = 0.5
	params.BaseRadius = 1.0
	mats := glassPalette(1.0, 2.0, 0.5, 1.0)

	target := scene.NewGroup("root")
	res := NewGenerator().Generate(target, mats, params)

	if res.WindowCount != 4 {
		t.Fatalf("window count: got %d, want 4", res.WindowCount)
	}
	segs := wallSegments(res.Group)
	if len(segs) != 4 {
		t.Fatalf("got %d wall segments, want 4", len(segs))
	}
	for i, wantDeg := range []float32{0, 90, 180, 270} {
		got := segs[i].Rotation.Y * 180 / math.Pi
		if diff := got - wantDeg; diff > 0.01 || diff < -0.01 {
			t.Errorf("segment %d: got %v degrees, want %v", i, got, wantDeg)
		}
	}

	windowDims := func(i int) (w, h float32) {
		mesh := res.WindowMeshes[i]
		if mesh == nil {
			t.Fatalf("window %d missing", i)
		}
		min, max := mesh.Geometry.Bounds()
		return max.X - min.X, max.Y - min.Y
	}

	if w, h := windowDims(1); w <= h {
		t.Errorf("aspect 2.0 window: width %v not greater than height %v", w, h)
	}
	if w, h := windowDims(2); h <= w {
		t.Errorf("aspect 0.5 window: height %v not greater than width %v", h, w)
	}
	if w, h := windowDims(0); w != h {
		t.Errorf("aspect 1.0 window: width %v != height %v", w, h)
	}
}

func TestWindowSizeClamped(t *testing.T) {
	spec := windowSize(2.0, 2.0, 4.0)
	if spec.width > maxWindowWidth {
		t.Errorf("width %v exceeds cap %v", spec.width, maxWindowWidth)
	}
	if spec.height > maxWindowHeight {
		t.Errorf("height %v exceeds cap %v", spec.height, maxWindowHeight)
	}
}

func TestGenerateReplacesPreviousGroup(t *testing.T) {
	params := testParams()
	mats := glassPalette(1, 1, 1)
	target := scene.NewGroup("root")
	gen := NewGenerator()

	first := gen.Generate(target, mats, params)
	firstGeo := first.WindowMeshes[0].Geometry

	second := gen.Generate(target, mats, params)

	groups := 0
	for _, child := range target.Children() {
		if _, ok := child.(*scene.Group); ok {
			groups++
		}
	}
	if groups != 1 {
		t.Errorf("live groups after regenerate: got %d, want 1", groups)
	}
	if first.Group.Parent() != nil {
		t.Error("previous group still attached")
	}
	if !firstGeo.Disposed() {
		t.Error("previous group geometry not disposed")
	}
	if second.Group.Parent() != target {
		t.Error("new group not attached to target")
	}
}

func TestGenerateMissingMaterials(t *testing.T) {
	params := testParams()
	params.WindowCount = 4
	mats := glassPalette(1.0, 2.0) // two slots short

	target := scene.NewGroup("root")
	res := NewGenerator().Generate(target, mats, params)

	if res.WindowCount != 4 {
		t.Fatalf("window count: got %d, want 4", res.WindowCount)
	}
	if len(wallSegments(res.Group)) != 4 {
		t.Error("missing materials should not drop wall segments")
	}
	if res.WindowMeshes[0] == nil || res.WindowMeshes[1] == nil {
		t.Error("supplied slots should have glass meshes")
	}
	if res.WindowMeshes[2] != nil || res.WindowMeshes[3] != nil {
		t.Error("unsupplied slots should have nil glass entries")
	}
}

func TestGenerateZeroWindows(t *testing.T) {
	params := testParams()
	params.WindowCount = 0

	target := scene.NewGroup("root")
	res := NewGenerator().Generate(target, nil, params)

	if res.WindowCount != 0 {
		t.Fatalf("window count: got %d, want 0", res.WindowCount)
	}
	if len(wallSegments(res.Group)) != 0 {
		t.Error("zero windows should produce zero wall segments")
	}
	if len(namedMeshes(res.Group, "foundation")) != 1 {
		t.Error("foundation missing")
	}
	if len(namedMeshes(res.Group, "floor")) != 1 {
		t.Error("floor missing")
	}
	if len(namedMeshes(res.Group, "skylight")) != 0 {
		t.Error("skylight glass should be skipped with no materials")
	}
	if len(namedMeshes(res.Group, "skylight-frame")) != 4 {
		t.Error("skylight frame should still be placed")
	}
}

func TestGenerateTowerCountCap(t *testing.T) {
	params := testParams()
	params.TowerCount = 2
	mats := glassPalette(1, 1, 1, 1, 1, 1)

	target := scene.NewGroup("root")
	res := NewGenerator().Generate(target, mats, params)

	towers := 0
	res.Group.Visit(func(obj scene.Object) {
		if m, ok := obj.(*scene.Mesh); ok && strings.HasPrefix(m.Name, "tower-") {
			towers++
		}
	})
	if towers != 2 {
		t.Errorf("towers: got %d, want 2", towers)
	}
}

func TestUpdateWindowMaterials(t *testing.T) {
	params := testParams()
	mats := glassPalette(1.0, 1.5)
	target := scene.NewGroup("root")
	gen := NewGenerator()
	res := gen.Generate(target, mats, params)

	replacement := glassPalette(1.0, 1.5)
	gen.UpdateWindowMaterials(replacement)

	for i, mesh := range res.WindowMeshes {
		if mesh.Material != replacement[i] {
			t.Errorf("window %d material not swapped", i)
		}
	}
	sky := namedMeshes(res.Group, "skylight")
	if len(sky) != 1 || sky[0].Material != replacement[0] {
		t.Error("skylight material not swapped to slot 0")
	}
	if mesh := res.WindowMeshes[0]; mesh.Geometry.Disposed() {
		t.Error("material swap must not touch geometry")
	}
}
