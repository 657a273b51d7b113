// Package app implements the installation's main loop: window, render
// pass, castle regeneration and walkthrough wiring.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/castle"
	"github.com/atelier-lux/vitrail/internal/config"
	"github.com/atelier-lux/vitrail/internal/engine/camera"
	"github.com/atelier-lux/vitrail/internal/engine/input"
	"github.com/atelier-lux/vitrail/internal/engine/material"
	"github.com/atelier-lux/vitrail/internal/engine/renderer"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/internal/engine/window"
	"github.com/atelier-lux/vitrail/internal/logger"
	"github.com/atelier-lux/vitrail/internal/player"
	"github.com/atelier-lux/vitrail/pkg/math"
)

// Collision rebuild waits this many frames after a regeneration so the
// fresh scene settles before the BVH pass walks it.
const collisionRebuildDelay = 2

// App is the running installation.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	root      *scene.Group
	generator *castle.Generator
	materials []*material.Material

	orbitCam    *camera.OrbitCamera
	fpsCam      *camera.FirstPersonCamera
	controller  *player.Controller
	walkthrough bool

	collisionRebuildIn int
	shiftHeld          bool
	dragging           bool
}

// New creates the installation. The window and GL context come up first,
// then the renderer, then the scene content.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing installation",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{
		cfg:  cfg,
		root: scene.NewGroup("root"),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Vitrail",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.materials = stainedGlassPalette()
	a.generator = castle.NewGenerator()

	a.orbitCam = camera.NewOrbitCamera()
	a.fpsCam = camera.NewFirstPersonCamera()
	a.fpsCam.Sensitivity = cfg.Player.MouseSensitivity
	a.controller = player.New(a.fpsCam, cfg.Player)

	a.regenerate(cfg.Castle.Seed)

	logger.Info("installation initialized")
	return a, nil
}

// stainedGlassPalette is the installation's window set. Each entry stands
// in for one pane image; the aspect hint drives the window opening size.
func stainedGlassPalette() []*material.Material {
	return []*material.Material{
		material.Glass("rose", 0.82, 0.18, 0.24, 1.0),
		material.Glass("panorama", 0.92, 0.67, 0.18, 2.0),
		material.Glass("lancet", 0.20, 0.32, 0.78, 0.5),
		material.Glass("emerald", 0.16, 0.62, 0.34, 1.0),
		material.Glass("violet", 0.52, 0.24, 0.68, 0.75),
		material.Glass("amber", 0.88, 0.48, 0.12, 1.33),
	}
}

// regenerate rebuilds the castle with the given seed and schedules a
// collision rebuild for a couple of frames later.
func (a *App) regenerate(seed int64) {
	params := a.cfg.Castle
	params.Seed = seed
	a.cfg.Castle.Seed = seed

	a.generator.Generate(a.root, a.materials, params)
	a.collisionRebuildIn = collisionRebuildDelay

	a.orbitCam.FitToBounds(
		math.Vec3{X: -params.BaseRadius * 3, Y: 0, Z: -params.BaseRadius * 3},
		math.Vec3{X: params.BaseRadius * 3, Y: params.WallHeight * 1.5, Z: params.BaseRadius * 3},
	)
	a.controller.SetPosition(math.Vec3{Y: a.cfg.Player.Height})
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			a.handleEvent(event)
		}

		a.update(dt)
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		a.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			if a.input.Captured() {
				a.releaseLock()
			} else {
				a.running = false
			}
		case sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT:
			a.shiftHeld = true
		case sdl.SCANCODE_R:
			seed := a.cfg.Castle.Seed
			if a.shiftHeld {
				seed = time.Now().UnixNano() % 100000
				logger.Info("reseeding castle", zap.Int64("seed", seed))
			}
			a.regenerate(seed)
		case sdl.SCANCODE_TAB:
			a.toggleWalkthrough()
		}

	case input.EventKeyUp:
		if event.Key == sdl.SCANCODE_LSHIFT || event.Key == sdl.SCANCODE_RSHIFT {
			a.shiftHeld = false
		}

	case input.EventMouseDown:
		if a.walkthrough {
			if !a.input.Captured() {
				a.acquireLock()
			}
		} else if event.Button == sdl.BUTTON_LEFT {
			a.dragging = true
		}

	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			a.dragging = false
		}

	case input.EventMouseMove:
		if !a.walkthrough && a.dragging {
			a.orbitCam.HandleDrag(float32(event.RelX), float32(event.RelY))
		}

	case input.EventMouseWheel:
		if !a.walkthrough {
			a.orbitCam.HandleZoom(float32(event.Wheel))
		}

	case input.EventFocusLost:
		a.releaseLock()
	}

	a.controller.HandleEvent(event)
}

func (a *App) toggleWalkthrough() {
	a.walkthrough = !a.walkthrough
	if a.walkthrough {
		a.acquireLock()
	} else {
		a.releaseLock()
	}
	logger.Info("view mode changed", zap.Bool("walkthrough", a.walkthrough))
}

func (a *App) acquireLock() {
	a.input.SetCaptured(true)
	a.controller.SetLocked(true)
}

func (a *App) releaseLock() {
	a.input.SetCaptured(false)
	a.controller.SetLocked(false)
}

func (a *App) update(dt float32) {
	if a.collisionRebuildIn > 0 {
		a.collisionRebuildIn--
		if a.collisionRebuildIn == 0 {
			a.controller.BuildCollisionFromScene(a.root)
		}
	}

	if a.walkthrough {
		a.controller.Update(dt)
	}
}

func (a *App) render() {
	a.renderer.Begin()

	aspect := a.renderer.AspectRatio()
	projection := math.Perspective(math.Pi/3, aspect, 0.01, 100)

	var view math.Mat4
	var eye math.Vec3
	if a.walkthrough {
		view = a.fpsCam.ViewMatrix()
		eye = a.fpsCam.Position
	} else {
		view = a.orbitCam.ViewMatrix()
		eye = a.orbitCam.Position()
	}

	a.renderer.RenderScene(a.root, view, projection, eye)
	a.renderer.End()
}

// Close releases everything in reverse construction order.
func (a *App) Close() {
	logger.Info("closing installation")

	if a.controller != nil {
		a.controller.Dispose()
	}
	if a.root != nil {
		a.root.Dispose()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
