// Package component contains reusable behaviours that can be attached to any
// game object.
package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
)

// Spinner rotates its owner around Axis at DegreesPerSecond.
type Spinner struct {
	entity.Base
	Axis             mgl32.Vec3
	DegreesPerSecond float32
}

// NewSpinner creates a spinner around the Z axis.
func NewSpinner(degreesPerSecond float32) *Spinner {
	return &Spinner{Axis: entity.AxisForward, DegreesPerSecond: degreesPerSecond}
}

func (s *Spinner) Update(dt float64) {
	tr := s.Transform()
	if tr == nil || s.Axis.Len() == 0 {
		return
	}
	angle := mgl32.DegToRad(s.DegreesPerSecond * float32(dt))
	tr.Rotate(mgl32.QuatRotate(angle, s.Axis.Normalize()))
}

// Mover translates its owner by Velocity units per second in local space.
type Mover struct {
	entity.Base
	Velocity mgl32.Vec3
}

func NewMover(velocity mgl32.Vec3) *Mover {
	return &Mover{Velocity: velocity}
}

func (m *Mover) Update(dt float64) {
	if tr := m.Transform(); tr != nil {
		tr.Translate(m.Velocity.Mul(float32(dt)))
	}
}

// Lifetime destroys its owner after Seconds of updates.
type Lifetime struct {
	entity.Base
	Seconds float64
	elapsed float64
}

func NewLifetime(seconds float64) *Lifetime {
	return &Lifetime{Seconds: seconds}
}

func (l *Lifetime) Update(dt float64) {
	l.elapsed += dt
	if l.elapsed < l.Seconds {
		return
	}
	if o := l.Owner(); o != nil {
		o.OnDestroy()
	}
}

// Remaining returns the seconds left before the owner is destroyed.
func (l *Lifetime) Remaining() float64 {
	if r := l.Seconds - l.elapsed; r > 0 {
		return r
	}
	return 0
}

// Controller moves its owner on the XY plane from an input source.
// Screen space: +Y points down.
type Controller struct {
	entity.Base
	Input input.Source
	Speed float32 // units per second

	last input.State
}

func NewController(src input.Source, speed float32) *Controller {
	return &Controller{Input: src, Speed: speed}
}

func (c *Controller) Update(dt float64) {
	if c.Input == nil {
		return
	}
	c.last = c.Input.GetInput()
	x, y := c.last.Axis()
	if x == 0 && y == 0 {
		return
	}
	if tr := c.Transform(); tr != nil {
		step := c.Speed * float32(dt)
		tr.Translate(mgl32.Vec3{float32(x) * step, float32(y) * step, 0})
	}
}

// LastInput returns the state sampled by the most recent Update.
func (c *Controller) LastInput() input.State { return c.last }
