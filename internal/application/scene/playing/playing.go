// Package playing provides the main gameplay scene: a controllable player
// with an orbiting satellite, projectiles and scripted props.
package playing

import (
	"fmt"
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

// Type is the factory key of the playing scene.
const Type scene.Type = "playing"

// Colors for rendering
var (
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorSatellite = color.RGBA{100, 100, 200, 255}
	colorProp      = color.RGBA{200, 100, 100, 255}
)

// Director receives scene change requests.
type Director interface {
	RequestSceneChange(t scene.Type)
}

// Deps is what the playing scene needs from the game.
type Deps struct {
	Director Director
	Input    input.Source
	Services *entity.Services
	Back     scene.Type // scene requested on Cancel

	// Level geometry; built before the player.
	Layout *config.SceneLayout
	Kinds  *system.Kinds

	// Scripts by name; "drifter" is attached to a prop when present.
	Scripts map[string]string

	PlayerSpeed      float32
	ScreenW, ScreenH int
	Log              *zap.Logger
}

// Playing is the main gameplay scene
type Playing struct {
	scene.Base
	deps Deps

	player    *entity.GameObject
	satellite *entity.GameObject
	shooter   *Shooter
}

// Constructor returns a factory constructor for the playing scene.
func Constructor(deps Deps) scene.Constructor {
	return func(objects *entity.Manager) scene.Scene {
		return New(objects, deps)
	}
}

// New creates a new Playing scene.
func New(objects *entity.Manager, deps Deps) *Playing {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.PlayerSpeed == 0 {
		deps.PlayerSpeed = 120
	}
	return &Playing{
		Base: scene.NewBase(string(Type), objects),
		deps: deps,
	}
}

func (p *Playing) SetupObjects() {
	objects := p.Objects()
	if p.deps.Layout != nil {
		if _, err := system.BuildLayout(objects, p.deps.Layout, p.deps.Kinds); err != nil {
			panic("playing: " + err.Error())
		}
	}

	p.player = objects.Instantiate("player", entity.WithTag(entity.TagPlayer))
	p.player.Transform().SetLocalPosition(mgl32.Vec3{
		float32(p.deps.ScreenW) / 2, float32(p.deps.ScreenH) * 3 / 4, 0,
	})
	entity.AddComponent(p.player, component.NewController(p.deps.Input, p.deps.PlayerSpeed))
	entity.AddComponent(p.player, p.sprite("player", 12, 12, colorPlayer))
	p.shooter = entity.AddComponent(p.player, NewShooter(p.deps.Input, p.deps.Services))
	entity.AddComponent(p.player, &Exit{Input: p.deps.Input, OnExit: p.back})

	// The pivot spins, carrying the satellite around the player.
	pivot := objects.Instantiate("pivot", entity.WithParent(p.player))
	entity.AddComponent(pivot, component.NewSpinner(180))
	p.satellite = objects.Instantiate("satellite", entity.WithParent(pivot))
	p.satellite.Transform().SetLocalPosition(mgl32.Vec3{20, 0, 0})
	entity.AddComponent(p.satellite, p.sprite("satellite", 6, 6, colorSatellite))

	if src, ok := p.deps.Scripts["drifter"]; ok {
		prop := objects.Instantiate("drifter", entity.WithTag(entity.TagEnvironment))
		prop.Transform().SetLocalPosition(mgl32.Vec3{float32(p.deps.ScreenW) / 4, float32(p.deps.ScreenH) / 4, 0})
		entity.AddComponent(prop, p.sprite("prop", 10, 10, colorProp))
		entity.AddComponent(prop, component.NewScript("drifter", src, p.deps.Log))
	}

	p.deps.Log.Debug("playing scene ready", zap.Int("objects", objects.Len()))
}

func (p *Playing) sprite(name string, w, h int, c color.RGBA) *component.Sprite {
	s := component.NewSprite(p.deps.Services, name)
	s.Width, s.Height = w, h
	s.Fallback = c
	return s
}

func (p *Playing) back() {
	if p.deps.Director != nil && p.deps.Back != "" {
		p.deps.Director.RequestSceneChange(p.deps.Back)
	}
}

func (p *Playing) Draw(screen *ebiten.Image) {
	p.Base.Draw(screen)
	if screen == nil {
		return
	}
	bullets := len(p.Objects().FindByTag(entity.TagProjectile))
	hud := fmt.Sprintf("OBJECTS: %d  SHOTS: %d", p.Objects().Len(), bullets)
	ebitenutil.DebugPrintAt(screen, hud, 10, p.deps.ScreenH-20)
}

func (p *Playing) Player() *entity.GameObject    { return p.player }
func (p *Playing) Satellite() *entity.GameObject { return p.satellite }
func (p *Playing) Shooter() *Shooter             { return p.shooter }
