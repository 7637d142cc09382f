// Package game hosts the scene manager inside the ebiten run loop.
package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/scenekit/internal/application/scene"
	"github.com/younwookim/scenekit/internal/domain/input"
)

// Metrics receives per-frame and per-transition measurements.
type Metrics interface {
	ObserveFrame(d time.Duration)
	SceneActivated(scene string)
	ObserveObjects(live, pending int)
}

// InputLatch samples input once at the start of each frame.
type InputLatch interface {
	Advance() input.State
}

// Game implements ebiten.Game. Each frame runs, in order: input latch,
// fader, scene update, scene draw, fade overlay, deferred destroy flush.
// When ebiten skips a Draw the flush runs at the start of the next Update.
type Game struct {
	scenes  *scene.Manager
	fader   *Fader
	latch   InputLatch
	metrics Metrics

	screenW int
	screenH int
	dt      float64

	frames    int
	maxFrames int
	quit      bool
	unflushed bool
}

// Option configures a Game.
type Option func(*Game)

// WithFade fades to black over frames frames around every scene change.
func WithFade(frames int) Option {
	return func(g *Game) { g.fader = NewFader(frames, g.scenes.NotifyTransitionReady) }
}

// WithInput advances latch at the start of every Update.
func WithInput(latch InputLatch) Option {
	return func(g *Game) { g.latch = latch }
}

func WithMetrics(m Metrics) Option {
	return func(g *Game) { g.metrics = m }
}

// WithFrameLimit ends the run after n updates. n <= 0 means no limit.
func WithFrameLimit(n int) Option {
	return func(g *Game) { g.maxFrames = n }
}

// New creates a new Game that starts in the initial scene. The scene becomes
// current on the first Update and is set up on the second.
func New(scenes *scene.Manager, initial scene.Type, screenW, screenH int, opts ...Option) *Game {
	g := &Game{
		scenes:  scenes,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0, // Default to 60 FPS
	}
	g.fader = NewFader(0, scenes.NotifyTransitionReady)
	for _, opt := range opts {
		opt(g)
	}

	// The initial request skips the fade out.
	scenes.SetTransitionHooks(nil, nil)
	scenes.RequestSceneChange(initial)
	scenes.SetTransitionHooks(g.fader.Begin, g.activated)
	return g
}

func (g *Game) activated(t scene.Type) {
	g.fader.End(t)
	if g.metrics != nil {
		g.metrics.SceneActivated(string(t))
	}
}

// Update advances input, the fade and the current scene by one fixed step.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.quit || (g.maxFrames > 0 && g.frames >= g.maxFrames) {
		return ebiten.Termination
	}
	start := time.Now()
	if g.unflushed {
		g.flush()
	}

	if g.latch != nil {
		g.latch.Advance()
	}
	g.fader.Update()
	g.scenes.Update(g.dt)
	g.frames++
	g.unflushed = true

	if g.metrics != nil {
		g.metrics.ObserveFrame(time.Since(start))
		objects := g.scenes.Objects()
		g.metrics.ObserveObjects(objects.Len(), objects.PendingDestroy())
	}
	return nil
}

func (g *Game) flush() {
	g.scenes.FlushPendingDestroys()
	g.unflushed = false
}

// Draw renders the current scene and the fade overlay, then frees objects
// destroyed this frame.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
	if a := g.fader.Alpha(); a > 0 && screen != nil {
		overlay := color.RGBA{0, 0, 0, uint8(a * 255)}
		vector.DrawFilledRect(screen, 0, 0, float32(g.screenW), float32(g.screenH), overlay, false)
	}
	g.flush()
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Step runs one Update and one Draw. Headless runs pass a nil screen.
func (g *Game) Step(screen *ebiten.Image) error {
	if err := g.Update(); err != nil {
		return err
	}
	g.Draw(screen)
	return nil
}

// Quit makes the next Update return ebiten.Termination.
func (g *Game) Quit() { g.quit = true }

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// Frames returns the number of completed updates.
func (g *Game) Frames() int { return g.frames }

// Fader returns the transition fader.
func (g *Game) Fader() *Fader { return g.fader }

// Scenes returns the hosted scene manager.
func (g *Game) Scenes() *scene.Manager { return g.scenes }
