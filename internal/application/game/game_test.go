package game

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenekit/internal/application/scene"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
)

// mockScene is a test double for Scene interface
type mockScene struct {
	scene.Base
	setupCalled  int
	updateCalled int
	drawCalled   int
	onUpdate     func()
}

func (m *mockScene) SetupObjects() { m.setupCalled++ }

func (m *mockScene) Update(dt float64) {
	m.updateCalled++
	m.Base.Update(dt)
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

func (m *mockScene) Draw(screen *ebiten.Image) {
	m.drawCalled++
}

type sceneSet map[scene.Type]*mockScene

func newScenes(t *testing.T, types ...scene.Type) (*scene.Manager, sceneSet) {
	t.Helper()
	made := sceneSet{}
	f := scene.NewFactory()
	for _, typ := range types {
		require.True(t, f.Register(typ, func(objects *entity.Manager) scene.Scene {
			s := &mockScene{Base: scene.NewBase(string(typ), objects)}
			made[typ] = s
			return s
		}))
	}
	return scene.NewManager(f), made
}

type fakeMetrics struct {
	frames    int
	activated []string
	live      int
	pending   int
}

func (f *fakeMetrics) ObserveFrame(time.Duration)   { f.frames++ }
func (f *fakeMetrics) SceneActivated(scene string) { f.activated = append(f.activated, scene) }

func (f *fakeMetrics) ObserveObjects(live, pending int) {
	f.live = live
	f.pending = pending
}

type countingLatch struct{ n int }

func (c *countingLatch) Advance() input.State { c.n++; return input.State{} }

func TestNew(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	require.NotNil(t, g)
	assert.True(t, scenes.Transitioning(), "initial scene requested")
	assert.Empty(t, made, "scene built on first Update")
}

func TestNew_UnregisteredInitialPanics(t *testing.T) {
	scenes, _ := newScenes(t, "title")
	assert.Panics(t, func() { New(scenes, "missing", 320, 240) })
}

func TestGame_Update_DelegatesToCurrentScene(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	require.NoError(t, g.Update()) // swap
	require.NoError(t, g.Update()) // setup + update

	s := made["title"]
	require.NotNil(t, s)
	assert.Equal(t, 1, s.setupCalled)
	assert.Equal(t, 1, s.updateCalled, "Update should delegate to current scene")
	assert.Equal(t, 2, g.Frames())
}

func TestGame_Draw_DelegatesToCurrentScene(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	assert.Equal(t, 1, made["title"].drawCalled, "Draw should delegate once the scene is set up")
}

func TestGame_Layout(t *testing.T) {
	scenes, _ := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	w, h := g.Layout(640, 480)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestGame_DrawFlushesDestroyedObjects(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)
	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	doomed := scenes.Objects().Instantiate("doomed")
	made["title"].onUpdate = func() { doomed.OnDestroy() }

	require.NoError(t, g.Update())
	assert.True(t, scenes.Objects().Alive(doomed.Handle()), "alive until the end of the frame")

	g.Draw(nil)
	assert.False(t, scenes.Objects().Alive(doomed.Handle()))
}

func TestGame_UpdateFlushesWhenDrawSkipped(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)
	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	doomed := scenes.Objects().Instantiate("doomed")
	made["title"].onUpdate = func() { doomed.OnDestroy() }
	require.NoError(t, g.Update())
	made["title"].onUpdate = nil
	assert.True(t, scenes.Objects().Alive(doomed.Handle()))

	// no Draw in between
	require.NoError(t, g.Update())
	assert.False(t, scenes.Objects().Alive(doomed.Handle()))
	assert.Equal(t, 0, scenes.Objects().PendingDestroy())
}

func TestGame_DrawThenUpdateFlushesOnce(t *testing.T) {
	scenes, made := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)
	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	first := scenes.Objects().Instantiate("first")
	made["title"].onUpdate = func() { first.OnDestroy() }
	require.NoError(t, g.Step(nil))
	assert.False(t, scenes.Objects().Alive(first.Handle()))

	second := scenes.Objects().Instantiate("second")
	made["title"].onUpdate = func() { second.OnDestroy() }
	require.NoError(t, g.Update())
	assert.True(t, scenes.Objects().Alive(second.Handle()), "destroyed this frame, alive until flushed")
}

func TestGame_ReportsObjectCounts(t *testing.T) {
	scenes, made := newScenes(t, "title")
	metrics := &fakeMetrics{}
	g := New(scenes, "title", 320, 240, WithMetrics(metrics))
	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	scenes.Objects().Instantiate("keep")
	doomed := scenes.Objects().Instantiate("doomed")
	made["title"].onUpdate = func() { doomed.OnDestroy() }

	require.NoError(t, g.Update())
	assert.Equal(t, 2, metrics.live)
	assert.Equal(t, 1, metrics.pending)

	made["title"].onUpdate = nil
	g.Draw(nil)
	require.NoError(t, g.Update())
	assert.Equal(t, 1, metrics.live)
	assert.Equal(t, 0, metrics.pending)
}

func TestGame_SceneTransition(t *testing.T) {
	scenes, made := newScenes(t, "title", "playing")
	g := New(scenes, "title", 320, 240)
	require.NoError(t, g.Step(nil))
	require.NoError(t, g.Step(nil))

	made["title"].onUpdate = func() { scenes.RequestSceneChange("playing") }
	require.NoError(t, g.Step(nil))
	made["title"].onUpdate = nil

	require.NoError(t, g.Step(nil)) // swap
	assert.Equal(t, scene.Type("playing"), scenes.CurrentType())
	assert.True(t, made["title"].Finalized())

	require.NoError(t, g.Step(nil))
	assert.Equal(t, 1, made["playing"].setupCalled)
}

func TestGame_FadeAroundTransition(t *testing.T) {
	scenes, made := newScenes(t, "title", "playing")
	g := New(scenes, "title", 320, 240, WithFade(2))

	require.NoError(t, g.Step(nil)) // swap, fade in starts at full
	assert.InDelta(t, 1.0, g.Fader().Alpha(), 1e-6)
	require.NoError(t, g.Step(nil))
	assert.InDelta(t, 0.5, g.Fader().Alpha(), 1e-6)
	require.NoError(t, g.Step(nil))
	assert.InDelta(t, 0.0, g.Fader().Alpha(), 1e-6)
	assert.False(t, g.Fader().Fading())

	scenes.RequestSceneChange("playing")
	assert.False(t, scenes.Transitioning(), "begin hook delays the swap")
	assert.True(t, g.Fader().Fading())

	require.NoError(t, g.Step(nil))
	assert.InDelta(t, 0.5, g.Fader().Alpha(), 1e-6)
	assert.Equal(t, scene.Type("title"), scenes.CurrentType(), "old scene keeps running while fading out")

	require.NoError(t, g.Step(nil)) // fully dark: ready, swap in the same frame
	assert.Equal(t, scene.Type("playing"), scenes.CurrentType())
	assert.True(t, g.Fader().Fading(), "fading back in")
	assert.NotNil(t, made["playing"])
}

func TestGame_Quit(t *testing.T) {
	scenes, _ := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	require.NoError(t, g.Update())
	g.Quit()
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.ErrorIs(t, g.Step(nil), ebiten.Termination)
}

func TestGame_FrameLimit(t *testing.T) {
	scenes, _ := newScenes(t, "title")
	g := New(scenes, "title", 320, 240, WithFrameLimit(3))

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Update())
	}
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, 3, g.Frames())
}

func TestGame_InputAndMetrics(t *testing.T) {
	scenes, _ := newScenes(t, "title", "playing")
	metrics := &fakeMetrics{}
	latch := &countingLatch{}
	g := New(scenes, "title", 320, 240, WithMetrics(metrics), WithInput(latch))

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Step(nil))
	}
	scenes.RequestSceneChange("playing")
	require.NoError(t, g.Step(nil))

	assert.Equal(t, 4, latch.n)
	assert.Equal(t, 4, metrics.frames)
	assert.Equal(t, []string{"title", "playing"}, metrics.activated)
}

func TestGame_SetDT(t *testing.T) {
	scenes, _ := newScenes(t, "title")
	g := New(scenes, "title", 320, 240)

	assert.InDelta(t, 1.0/60.0, g.dt, 1e-12)
	g.SetDT(0.5)
	assert.Equal(t, 0.5, g.dt)
}
