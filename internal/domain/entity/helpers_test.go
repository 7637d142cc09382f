package entity

import "github.com/hajimehoshi/ebiten/v2"

// countingComponent is a test double implementing both capabilities.
type countingComponent struct {
	Base
	initCalled    int
	updateCalled  int
	drawCalled    int
	disposeCalled int
	onInit        func()
	onUpdate      func()
}

func (c *countingComponent) Dispose() { c.disposeCalled++ }

func (c *countingComponent) Initialize() {
	c.initCalled++
	if c.onInit != nil {
		c.onInit()
	}
}

func (c *countingComponent) Draw(*ebiten.Image) {
	c.drawCalled++
}

func (c *countingComponent) Update(float64) {
	c.updateCalled++
	if c.onUpdate != nil {
		c.onUpdate()
	}
}

// updateOnly implements only Updatable.
type updateOnly struct {
	Base
	updates int
}

func (u *updateOnly) Update(float64) { u.updates++ }

// inert implements neither capability.
type inert struct {
	Base
}

// frame runs one full frame in the fixed order.
func frame(m *Manager, dt float64) {
	m.FlushInitialize()
	m.UpdateAll(dt)
	m.DrawAll(nil)
	m.FlushDestroyQueue()
}
