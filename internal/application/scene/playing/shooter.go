package playing

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/younwookim/scenekit/internal/domain/component"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
)

var colorBullet = color.RGBA{255, 200, 100, 255}

// Shooter spawns a projectile at its owner's world position each time Fire
// is pressed. Projectiles are separate root objects that destroy themselves
// after Lifetime seconds.
type Shooter struct {
	entity.Base
	Input    input.Source
	Services *entity.Services
	Speed    float32 // units per second, toward -Y (screen up)
	Lifetime float64
	Cooldown float64

	wait  float64
	fired int
}

func NewShooter(src input.Source, services *entity.Services) *Shooter {
	return &Shooter{
		Input:    src,
		Services: services,
		Speed:    240,
		Lifetime: 1.5,
		Cooldown: 0.1,
	}
}

func (s *Shooter) Update(dt float64) {
	if s.wait > 0 {
		s.wait -= dt
	}
	if s.Input == nil || !s.Input.GetInput().Fire || s.wait > 0 {
		return
	}
	s.spawn()
	s.wait = s.Cooldown
}

func (s *Shooter) spawn() {
	objects := s.Objects()
	tr := s.Transform()
	if objects == nil || tr == nil {
		return
	}
	bullet := objects.Instantiate("bullet", entity.WithTag(entity.TagProjectile))
	bullet.Transform().SetLocalPosition(tr.WorldPosition())
	entity.AddComponent(bullet, component.NewMover(mgl32.Vec3{0, -s.Speed, 0}))
	entity.AddComponent(bullet, component.NewLifetime(s.Lifetime))
	sprite := component.NewSprite(s.Services, "bullet")
	sprite.Width, sprite.Height = 3, 6
	sprite.Fallback = colorBullet
	entity.AddComponent(bullet, sprite)
	s.fired++
}

// Fired returns how many projectiles have been spawned.
func (s *Shooter) Fired() int { return s.fired }

// Exit calls OnExit once, on the first frame Cancel is pressed.
type Exit struct {
	entity.Base
	Input  input.Source
	OnExit func()

	done bool
}

func (e *Exit) Update(dt float64) {
	if e.done || e.Input == nil || e.OnExit == nil {
		return
	}
	if e.Input.GetInput().Cancel {
		e.done = true
		e.OnExit()
	}
}
