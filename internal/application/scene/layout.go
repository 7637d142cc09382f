package scene

import (
	"github.com/younwookim/scenekit/internal/application/system"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
)

// LayoutScene is a scene whose objects come entirely from a layout file.
type LayoutScene struct {
	Base
	layout *config.SceneLayout
	kinds  *system.Kinds
	built  []*entity.GameObject
}

// NewLayoutScene creates a scene that builds layout into objects.
func NewLayoutScene(objects *entity.Manager, layout *config.SceneLayout, kinds *system.Kinds) *LayoutScene {
	name := "layout"
	if layout != nil {
		name = layout.Name
	}
	return &LayoutScene{
		Base:   NewBase(name, objects),
		layout: layout,
		kinds:  kinds,
	}
}

// LayoutConstructor adapts a layout into a Factory constructor.
func LayoutConstructor(layout *config.SceneLayout, kinds *system.Kinds) Constructor {
	return func(objects *entity.Manager) Scene {
		return NewLayoutScene(objects, layout, kinds)
	}
}

// SetupObjects builds the layout. Layouts are validated when loaded, so a
// failure here is a programming error and panics.
func (s *LayoutScene) SetupObjects() {
	built, err := system.BuildLayout(s.Objects(), s.layout, s.kinds)
	if err != nil {
		panic("scene: " + err.Error())
	}
	s.built = built
}

// Built returns the objects created by SetupObjects, in layout order.
func (s *LayoutScene) Built() []*entity.GameObject { return s.built }
