// Package resource holds the named images, shaders and materials that
// components resolve at initialization.
package resource

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/scenekit/internal/domain/entity"
)

// Store is a name-keyed resource cache. Registration is first-wins: a second
// registration under the same name is refused.
type Store struct {
	mu        sync.RWMutex
	images    map[string]*ebiten.Image
	shaders   map[string]*ebiten.Shader
	materials map[string]entity.Material
}

func NewStore() *Store {
	return &Store{
		images:    make(map[string]*ebiten.Image),
		shaders:   make(map[string]*ebiten.Shader),
		materials: make(map[string]entity.Material),
	}
}

// Services exposes the store through the lookup interfaces components use.
func (s *Store) Services() *entity.Services {
	return &entity.Services{Sprites: s, Shaders: s, Materials: s}
}

func (s *Store) RegisterImage(name string, img *ebiten.Image) bool {
	if img == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.images[name]; exists {
		return false
	}
	s.images[name] = img
	return true
}

// RegisterSolid creates a w x h image filled with c.
func (s *Store) RegisterSolid(name string, w, h int, c color.Color) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return s.RegisterImage(name, img)
}

func (s *Store) RegisterShader(name string, sh *ebiten.Shader) bool {
	if sh == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.shaders[name]; exists {
		return false
	}
	s.shaders[name] = sh
	return true
}

// CompileShader compiles Kage source and registers it.
func (s *Store) CompileShader(name string, src []byte) error {
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return fmt.Errorf("failed to compile shader %s: %w", name, err)
	}
	if !s.RegisterShader(name, sh) {
		sh.Deallocate()
		return fmt.Errorf("shader %s already registered", name)
	}
	return nil
}

func (s *Store) RegisterMaterial(name string, mat entity.Material) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.materials[name]; exists {
		return false
	}
	s.materials[name] = mat
	return true
}

func (s *Store) Image(name string) (*ebiten.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[name]
	return img, ok
}

func (s *Store) Shader(name string) (*ebiten.Shader, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shaders[name]
	return sh, ok
}

func (s *Store) Material(name string) (entity.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mat, ok := s.materials[name]
	return mat, ok
}

// Names returns the sorted image names.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
