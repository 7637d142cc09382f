package entity

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Material describes how a sprite is drawn.
type Material struct {
	Shader string
	Tint   color.RGBA
	Blend  ebiten.Blend
}

// SpriteSource looks up loaded images by name.
type SpriteSource interface {
	Image(name string) (*ebiten.Image, bool)
}

// ShaderSource looks up compiled shaders by name.
type ShaderSource interface {
	Shader(name string) (*ebiten.Shader, bool)
}

// MaterialSource looks up materials by name.
type MaterialSource interface {
	Material(name string) (Material, bool)
}

// Services bundles the resource stores components read from. It is owned by
// the caller and never modified by components.
type Services struct {
	Sprites   SpriteSource
	Shaders   ShaderSource
	Materials MaterialSource
}
