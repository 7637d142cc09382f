// Package scene defines game scenes and the manager that switches between them.
//
// A scene populates an entity.Manager with its objects in SetupObjects and is
// then driven once per frame by the Manager. Scenes never switch themselves;
// they ask the Manager through RequestSceneChange and the swap happens on a
// frame boundary.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenekit/internal/domain/entity"
)

// Type identifies a kind of scene in the Factory.
type Type string

// Scene is one gameplay context (title, playing, etc.).
type Scene interface {
	// Name returns a label for logs.
	Name() string

	// SetupObjects creates the scene's initial objects. Called exactly once,
	// on the first Update after the scene becomes current.
	SetupObjects()

	// Update advances the scene by dt seconds.
	Update(dt float64)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// Finalize releases everything the scene created. Called once when the
	// scene is replaced or the Manager is disposed.
	Finalize()
}

// Base implements everything except SetupObjects on top of an
// entity.Manager. Concrete scenes embed it.
type Base struct {
	name      string
	objects   *entity.Manager
	finalized bool
}

// NewBase binds a scene to the shared object manager.
func NewBase(name string, objects *entity.Manager) Base {
	return Base{name: name, objects: objects}
}

func (b *Base) Name() string { return b.name }

// Objects returns the manager the scene populates.
func (b *Base) Objects() *entity.Manager { return b.objects }

// Update initializes objects created since the last frame, then updates all.
func (b *Base) Update(dt float64) {
	b.objects.FlushInitialize()
	b.objects.UpdateAll(dt)
}

func (b *Base) Draw(screen *ebiten.Image) {
	b.objects.DrawAll(screen)
}

// Finalize disposes every object in the manager. Calling it twice is a no-op.
func (b *Base) Finalize() {
	if b.finalized {
		return
	}
	b.finalized = true
	b.objects.Dispose()
}

// Finalized reports whether Finalize has run.
func (b *Base) Finalized() bool { return b.finalized }
