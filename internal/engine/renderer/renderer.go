// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"sort"
	"unsafe"

	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/engine/geometry"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/internal/engine/shader"
	"github.com/atelier-lux/vitrail/internal/logger"
	"github.com/atelier-lux/vitrail/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program         uint32
	uniModel        int32
	uniView         int32
	uniProjection   int32
	uniColor        int32
	uniTransmission int32
	uniCameraPos    int32
	uniFogColor     int32
	uniFogDensity   int32

	meshes map[*geometry.Geometry]*meshBuffers

	// Scratch lists rebuilt each frame
	opaque      []drawItem
	transparent []drawItem
}

// meshBuffers holds the GPU-side buffers for one geometry.
type meshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// drawItem is one mesh queued for drawing this frame.
type drawItem struct {
	mesh  *scene.Mesh
	world math.Mat4
	depth float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*geometry.Geometry]*meshBuffers),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.05, 0.05, 0.09, 1.0)

	var err error
	r.program, err = shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uniModel = shader.GetUniform(r.program, "uModel")
	r.uniView = shader.GetUniform(r.program, "uView")
	r.uniProjection = shader.GetUniform(r.program, "uProjection")
	r.uniColor = shader.GetUniform(r.program, "uColor")
	r.uniTransmission = shader.GetUniform(r.program, "uTransmission")
	r.uniCameraPos = shader.GetUniform(r.program, "uCameraPos")
	r.uniFogColor = shader.GetUniform(r.program, "uFogColor")
	r.uniFogDensity = shader.GetUniform(r.program, "uFogDensity")

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for geo, buf := range r.meshes {
		buf.delete()
		delete(r.meshes, geo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// AspectRatio returns the current viewport aspect ratio.
func (r *Renderer) AspectRatio() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Drop GPU buffers whose geometry has been disposed since last frame
	for geo, buf := range r.meshes {
		if geo.Disposed() {
			buf.delete()
			delete(r.meshes, geo)
		}
	}
}

// RenderScene draws every visible mesh under root. Opaque meshes draw
// first, then transparent ones back to front with blending.
func (r *Renderer) RenderScene(root *scene.Group, view, projection math.Mat4, cameraPos math.Vec3) {
	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]

	root.Visit(func(obj scene.Object) {
		mesh, ok := obj.(*scene.Mesh)
		if !ok || mesh.Geometry == nil || mesh.Geometry.Disposed() {
			return
		}
		world := mesh.WorldTransform()
		item := drawItem{mesh: mesh, world: world}
		if mesh.Material != nil && (mesh.Material.Transparent || mesh.Material.Transmission > 0) {
			center := world.TransformPoint(meshCenter(mesh.Geometry))
			item.depth = center.DistanceSq(cameraPos)
			r.transparent = append(r.transparent, item)
		} else {
			r.opaque = append(r.opaque, item)
		}
	})

	sort.Slice(r.transparent, func(i, j int) bool {
		return r.transparent[i].depth > r.transparent[j].depth
	})

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uniView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.uniProjection, 1, false, projection.Ptr())
	gl.Uniform3f(r.uniCameraPos, cameraPos.X, cameraPos.Y, cameraPos.Z)
	gl.Uniform3f(r.uniFogColor, 0.05, 0.05, 0.09)
	gl.Uniform1f(r.uniFogDensity, 0.06)

	for _, item := range r.opaque {
		r.drawMesh(item)
	}

	if len(r.transparent) > 0 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		gl.DepthMask(false)
		gl.Disable(gl.CULL_FACE)
		for _, item := range r.transparent {
			r.drawMesh(item)
		}
		gl.Enable(gl.CULL_FACE)
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) drawMesh(item drawItem) {
	buf := r.buffersFor(item.mesh.Geometry)
	if buf == nil {
		return
	}

	color := [4]float32{0.8, 0.8, 0.8, 1.0}
	var transmission float32
	if item.mesh.Material != nil {
		color = item.mesh.Material.Color
		transmission = item.mesh.Material.Transmission
	}

	gl.UniformMatrix4fv(r.uniModel, 1, false, item.world.Ptr())
	gl.Uniform4f(r.uniColor, color[0], color[1], color[2], color[3])
	gl.Uniform1f(r.uniTransmission, transmission)

	gl.BindVertexArray(buf.vao)
	gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
}

// buffersFor returns the cached GPU buffers for geo, uploading on first use.
func (r *Renderer) buffersFor(geo *geometry.Geometry) *meshBuffers {
	if buf, ok := r.meshes[geo]; ok {
		return buf
	}
	if len(geo.Vertices) == 0 || len(geo.Indices) == 0 {
		return nil
	}

	buf := &meshBuffers{indexCount: int32(len(geo.Indices))}

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	stride := int32(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(geo.Vertices)*int(stride), unsafe.Pointer(&geo.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &buf.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geo.Indices)*4, unsafe.Pointer(&geo.Indices[0]), gl.STATIC_DRAW)

	// Position (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*4))
	gl.EnableVertexAttribArray(1)

	// TexCoord (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, uintptr(6*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	r.meshes[geo] = buf
	return buf
}

func (b *meshBuffers) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
}

func meshCenter(geo *geometry.Geometry) math.Vec3 {
	min, max := geo.Bounds()
	return min.Add(max).Scale(0.5)
}
