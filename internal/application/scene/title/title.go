// Package title provides the title screen scene.
package title

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/younwookim/scenekit/internal/application/scene"
	"github.com/younwookim/scenekit/internal/application/system"
	"github.com/younwookim/scenekit/internal/domain/component"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
)

// Type is the factory key of the title scene.
const Type scene.Type = "title"

var colorLogo = color.RGBA{100, 200, 100, 255}

// Director receives scene change requests.
type Director interface {
	RequestSceneChange(t scene.Type)
}

// Deps is what the title scene needs from the game.
type Deps struct {
	Director Director
	Input    input.Source
	Services *entity.Services
	Next     scene.Type // scene started by Confirm
	Quit     func()     // called on Cancel; may be nil

	// Optional decoration built before the menu.
	Layout *config.SceneLayout
	Kinds  *system.Kinds

	ScreenW, ScreenH int
	Log              *zap.Logger
}

// Title shows a logo and waits for Confirm or Cancel.
type Title struct {
	scene.Base
	deps Deps
	menu *Menu
}

// Constructor returns a factory constructor for the title scene.
func Constructor(deps Deps) scene.Constructor {
	return func(objects *entity.Manager) scene.Scene {
		return New(objects, deps)
	}
}

func New(objects *entity.Manager, deps Deps) *Title {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Title{
		Base: scene.NewBase(string(Type), objects),
		deps: deps,
	}
}

func (t *Title) SetupObjects() {
	objects := t.Objects()
	if t.deps.Layout != nil {
		if _, err := system.BuildLayout(objects, t.deps.Layout, t.deps.Kinds); err != nil {
			panic("title: " + err.Error())
		}
	}

	logo := objects.Instantiate("logo", entity.WithTag(entity.TagUI))
	logo.Transform().SetLocalPosition(center(t.deps.ScreenW, t.deps.ScreenH))
	sprite := component.NewSprite(t.deps.Services, "logo")
	sprite.Width, sprite.Height = 48, 48
	sprite.Fallback = colorLogo
	entity.AddComponent(logo, sprite)
	entity.AddComponent(logo, component.NewSpinner(45))

	menu := objects.Instantiate("menu", entity.WithTag(entity.TagUI))
	t.menu = entity.AddComponent(menu, NewMenu(t.deps.Input, func() {
		t.deps.Log.Info("starting game", zap.String("next", string(t.deps.Next)))
		if t.deps.Director != nil {
			t.deps.Director.RequestSceneChange(t.deps.Next)
		}
	}, t.deps.Quit))
}

func (t *Title) Draw(screen *ebiten.Image) {
	t.Base.Draw(screen)
	if screen == nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, "PRESS ENTER", t.deps.ScreenW/2-33, t.deps.ScreenH-40)
	ebitenutil.DebugPrintAt(screen, "ESC TO QUIT", t.deps.ScreenW/2-33, t.deps.ScreenH-24)
}

// Menu returns the menu component once the scene is set up.
func (t *Title) Menu() *Menu { return t.menu }

func center(w, h int) mgl32.Vec3 {
	return mgl32.Vec3{float32(w) / 2, float32(h) / 2, 0}
}
