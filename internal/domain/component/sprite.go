package component

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenekit/internal/domain/entity"
)

// Sprite draws an image at its owner's world position. When the named image
// is not available it draws a Width x Height rectangle in Fallback.
type Sprite struct {
	entity.Base
	ImageName    string
	MaterialName string
	Width        int
	Height       int
	Fallback     color.RGBA

	services *entity.Services
	image    *ebiten.Image
	owned    bool
	shader   *ebiten.Shader
	material entity.Material
	resolved bool
}

// NewSprite creates a sprite reading from services.
func NewSprite(services *entity.Services, imageName string) *Sprite {
	return &Sprite{
		services:  services,
		ImageName: imageName,
		Width:     16,
		Height:    16,
		Fallback:  color.RGBA{255, 255, 255, 255},
		material:  entity.Material{Tint: color.RGBA{255, 255, 255, 255}},
	}
}

// Initialize resolves the image, material and shader from the services.
func (s *Sprite) Initialize() {
	if s.services == nil {
		return
	}
	if s.services.Sprites != nil {
		if img, ok := s.services.Sprites.Image(s.ImageName); ok {
			s.image = img
			s.resolved = true
		}
	}
	if s.services.Materials != nil && s.MaterialName != "" {
		if m, ok := s.services.Materials.Material(s.MaterialName); ok {
			s.material = m
		}
	}
	if s.services.Shaders != nil && s.material.Shader != "" {
		if sh, ok := s.services.Shaders.Shader(s.material.Shader); ok {
			s.shader = sh
		}
	}
}

// Owned reports whether the sprite drew its own fallback image.
func (s *Sprite) Owned() bool { return s.owned }

// Resolved reports whether the named image was found.
func (s *Sprite) Resolved() bool { return s.resolved }

// Material returns the material in use.
func (s *Sprite) Material() entity.Material { return s.material }

// Dispose frees the fallback image; registered images belong to the store.
func (s *Sprite) Dispose() {
	if s.owned && s.image != nil {
		s.image.Deallocate()
	}
	s.owned = false
	s.image = nil
	s.shader = nil
}

func (s *Sprite) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	tr := s.Transform()
	if tr == nil {
		return
	}
	if s.image == nil {
		s.image = ebiten.NewImage(s.Width, s.Height)
		s.image.Fill(s.Fallback)
		s.owned = true
	}

	geo := s.geoM(tr)
	if s.shader != nil {
		b := s.image.Bounds()
		op := &ebiten.DrawRectShaderOptions{GeoM: geo, Blend: s.material.Blend}
		op.Images[0] = s.image
		op.ColorScale.ScaleWithColor(s.material.Tint)
		screen.DrawRectShader(b.Dx(), b.Dy(), s.shader, op)
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo, Blend: s.material.Blend}
	op.ColorScale.ScaleWithColor(s.material.Tint)
	screen.DrawImage(s.image, op)
}

// geoM centres the image on the world position, then applies world scale and
// the rotation around Z.
func (s *Sprite) geoM(tr *entity.Transform) ebiten.GeoM {
	var geo ebiten.GeoM
	b := s.image.Bounds()
	geo.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	scale := tr.WorldScale()
	geo.Scale(float64(scale.X()), float64(scale.Y()))
	geo.Rotate(zAngle(tr.WorldRotation()))
	pos := tr.WorldPosition()
	geo.Translate(float64(pos.X()), float64(pos.Y()))
	return geo
}

// zAngle extracts the rotation around Z in radians.
func zAngle(q mgl32.Quat) float64 {
	return 2 * math.Atan2(float64(q.V.Z()), float64(q.W))
}
