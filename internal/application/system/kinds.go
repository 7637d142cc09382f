package system

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/younwookim/scenekit/internal/domain/component"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
	"github.com/younwookim/scenekit/internal/infrastructure/config"
)

// Builder turns layout parameters into a fresh, unattached component.
type Builder func(p Params) (entity.Component, error)

// Kinds maps layout component kinds to builders.
type Kinds struct {
	builders map[string]Builder
}

func NewKinds() *Kinds {
	return &Kinds{builders: make(map[string]Builder)}
}

// Register adds a builder. Returns false if kind is taken or b is nil.
func (k *Kinds) Register(kind string, b Builder) bool {
	if b == nil {
		return false
	}
	if _, exists := k.builders[kind]; exists {
		return false
	}
	k.builders[kind] = b
	return true
}

func (k *Kinds) Has(kind string) bool {
	_, ok := k.builders[kind]
	return ok
}

func (k *Kinds) Names() []string {
	names := make([]string, 0, len(k.builders))
	for name := range k.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the component described by spec.
func (k *Kinds) Build(spec config.ComponentSpec) (entity.Component, error) {
	b, ok := k.builders[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown component kind %q", spec.Kind)
	}
	c, err := b(Params(spec.Params))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", spec.Kind, err)
	}
	if c == nil {
		return nil, fmt.Errorf("builder for %s returned nil", spec.Kind)
	}
	return c, nil
}

// Env is what the built-in kinds need from the running game.
type Env struct {
	Services *entity.Services
	Input    input.Source
	Scripts  map[string]string
	Log      *zap.Logger
}

// DefaultKinds registers sprite, spinner, mover, lifetime, controller and
// script.
func DefaultKinds(env Env) *Kinds {
	if env.Log == nil {
		env.Log = zap.NewNop()
	}
	k := NewKinds()

	k.Register("sprite", func(p Params) (entity.Component, error) {
		img, err := p.String("image", "")
		if err != nil {
			return nil, err
		}
		s := component.NewSprite(env.Services, img)
		if s.MaterialName, err = p.String("material", ""); err != nil {
			return nil, err
		}
		if s.Width, err = p.Int("width", s.Width); err != nil {
			return nil, err
		}
		if s.Height, err = p.Int("height", s.Height); err != nil {
			return nil, err
		}
		if s.Fallback, err = p.Color("color", s.Fallback); err != nil {
			return nil, err
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("sprite size must be positive, got %dx%d", s.Width, s.Height)
		}
		return s, nil
	})

	k.Register("spinner", func(p Params) (entity.Component, error) {
		speed, err := p.Float("speed", 90)
		if err != nil {
			return nil, err
		}
		s := component.NewSpinner(float32(speed))
		if s.Axis, err = p.Vec3("axis", entity.AxisForward); err != nil {
			return nil, err
		}
		return s, nil
	})

	k.Register("mover", func(p Params) (entity.Component, error) {
		v, err := p.Vec3("velocity", mgl32.Vec3{})
		if err != nil {
			return nil, err
		}
		return component.NewMover(v), nil
	})

	k.Register("lifetime", func(p Params) (entity.Component, error) {
		secs, err := p.Float("seconds", 0)
		if err != nil {
			return nil, err
		}
		if secs <= 0 {
			return nil, fmt.Errorf("lifetime seconds must be positive, got %v", secs)
		}
		return component.NewLifetime(secs), nil
	})

	k.Register("controller", func(p Params) (entity.Component, error) {
		speed, err := p.Float("speed", 120)
		if err != nil {
			return nil, err
		}
		return component.NewController(env.Input, float32(speed)), nil
	})

	k.Register("script", func(p Params) (entity.Component, error) {
		name, err := p.String("name", "")
		if err != nil {
			return nil, err
		}
		src, ok := env.Scripts[name]
		if !ok {
			return nil, fmt.Errorf("script %q not loaded", name)
		}
		return component.NewScript(name, src, env.Log), nil
	})

	return k
}
