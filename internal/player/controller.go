// Package player implements first-person capsule movement with gravity and
// collision response against the scene's triangle geometry.
package player

import (
	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/config"
	"github.com/atelier-lux/vitrail/internal/engine/camera"
	"github.com/atelier-lux/vitrail/internal/engine/collision"
	"github.com/atelier-lux/vitrail/internal/engine/input"
	"github.com/atelier-lux/vitrail/internal/engine/scene"
	"github.com/atelier-lux/vitrail/internal/logger"
	"github.com/atelier-lux/vitrail/pkg/math"
)

// moveKeys is the currently-held movement key state. It is consumed by the
// next tick; events only flip flags here.
type moveKeys struct {
	forward  bool
	backward bool
	left     bool
	right    bool
}

// Controller owns the authoritative player transform. The camera is a pure
// follower: its position is written at the end of every tick Update.
type Controller struct {
	cam *camera.FirstPersonCamera
	cfg config.PlayerConfig

	position  math.Vec3
	velocityY float32
	onGround  bool
	locked    bool
	keys      moveKeys

	colliders []*collision.Collider
	disposed  bool
}

// New creates a controller following cam. The camera's current position
// seeds the player position.
func New(cam *camera.FirstPersonCamera, cfg config.PlayerConfig) *Controller {
	return &Controller{
		cam:      cam,
		cfg:      cfg,
		position: cam.Position,
	}
}

// BuildCollisionFromScene rebuilds the collider set from the scene graph,
// disposing any previous set first. Call it after every regeneration.
func (c *Controller) BuildCollisionFromScene(root *scene.Group) {
	for _, col := range c.colliders {
		col.Dispose()
	}
	c.colliders = collision.BuildFromScene(root, c.cfg.MinColliderSize)
	logger.Debug("player collision rebuilt", zap.Int("colliders", len(c.colliders)))
}

// SetLocked gates input processing: while unlocked the controller is a
// no-op. Unlocking clears all held keys so no key can stay stuck.
func (c *Controller) SetLocked(locked bool) {
	if !locked {
		c.keys = moveKeys{}
	}
	c.locked = locked
}

// IsLocked reports whether the controller is consuming input.
func (c *Controller) IsLocked() bool { return c.locked }

// OnGround reports whether the player rested on the ground last tick.
func (c *Controller) OnGround() bool { return c.onGround }

// Position returns the authoritative player position.
func (c *Controller) Position() math.Vec3 { return c.position }

// SetPosition teleports the player and resets vertical motion.
func (c *Controller) SetPosition(p math.Vec3) {
	c.position = p
	c.velocityY = 0
	c.cam.Position = p
}

// HandleEvent consumes one input event. Key events flip held-state flags,
// mouse motion turns the camera, focus loss releases the lock.
func (c *Controller) HandleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventKeyDown:
		c.setKey(ev.Key, true)
		if ev.Key == sdl.SCANCODE_SPACE && c.locked && c.onGround {
			c.velocityY = c.cfg.JumpSpeed
			c.onGround = false
		}
	case input.EventKeyUp:
		c.setKey(ev.Key, false)
	case input.EventMouseMove:
		if c.locked {
			c.cam.HandleMouseDelta(float32(ev.RelX), float32(ev.RelY))
		}
	case input.EventFocusLost:
		c.SetLocked(false)
	}
}

func (c *Controller) setKey(key sdl.Scancode, down bool) {
	switch key {
	case sdl.SCANCODE_W, sdl.SCANCODE_UP:
		c.keys.forward = down
	case sdl.SCANCODE_S, sdl.SCANCODE_DOWN:
		c.keys.backward = down
	case sdl.SCANCODE_A, sdl.SCANCODE_LEFT:
		c.keys.left = down
	case sdl.SCANCODE_D, sdl.SCANCODE_RIGHT:
		c.keys.right = down
	}
}

// Update advances the simulation by dt seconds. While unlocked the position
// is frozen.
func (c *Controller) Update(dt float32) {
	if !c.locked || c.disposed {
		return
	}

	c.velocityY -= c.cfg.Gravity * dt

	// Horizontal movement relative to camera yaw. Diagonal input is
	// normalized so combined keys never exceed single-key speed.
	var dir math.Vec3
	if c.keys.forward {
		dir = dir.Add(c.cam.ForwardDirection())
	}
	if c.keys.backward {
		dir = dir.Sub(c.cam.ForwardDirection())
	}
	if c.keys.left {
		dir = dir.Sub(c.cam.RightDirection())
	}
	if c.keys.right {
		dir = dir.Add(c.cam.RightDirection())
	}
	if dir.LengthSq() > 0 {
		dir = dir.Normalize()
		c.position = c.position.Add(dir.Scale(c.cfg.MoveSpeed * dt))
	}

	c.position.Y += c.velocityY * dt

	c.resolveCollisions()

	// Ground contact is an absolute height check against the floor plane.
	if c.position.Y <= c.cfg.Height {
		c.position.Y = c.cfg.Height
		if c.velocityY <= 0 {
			c.velocityY = 0
			c.onGround = true
		}
	} else {
		c.onGround = false
	}

	c.cam.Position = c.position
}

// resolveCollisions relaxes the capsule spine against every collider's
// triangles. The working segment is mutated in place so later triangles see
// the corrected position; order-dependent but convergent for the triangle
// counts involved.
func (c *Controller) resolveCollisions() {
	radius := c.cfg.Radius
	span := c.cfg.Height - radius
	if span < 0 {
		span = 0
	}
	seg := collision.Segment{
		Start: c.position,
		End:   c.position.Sub(math.Vec3{Y: span}),
	}

	for _, col := range c.colliders {
		col.Tree.ForEachNearSegment(seg, radius, func(tri *collision.Triangle) {
			onTri, onSeg := tri.ClosestPointToSegment(seg)
			delta := onSeg.Sub(onTri)
			distSq := delta.LengthSq()
			if distSq >= radius*radius {
				return
			}
			if distSq > 1e-12 {
				dist := math32.Sqrt(distSq)
				seg.Translate(delta.Scale((radius - dist) / dist))
			} else {
				// Spine pierces the triangle; push out along the unit
				// face normal, oriented toward the capsule top.
				n := tri.Normal().Normalize()
				if n.Dot(seg.Start.Sub(onTri)) < 0 {
					n = n.Scale(-1)
				}
				seg.Translate(n.Scale(radius))
			}
		})
	}

	c.position = seg.Start
}

// Dispose releases all collider geometry. Safe to call multiple times.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.locked = false
	c.keys = moveKeys{}
	for _, col := range c.colliders {
		col.Dispose()
	}
	c.colliders = nil
}
