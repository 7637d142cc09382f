package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenekit/internal/domain/entity"
)

func TestFactory_Register(t *testing.T) {
	f := NewFactory()
	first := func(*entity.Manager) Scene { return &mockScene{name: "first"} }
	second := func(*entity.Manager) Scene { return &mockScene{name: "second"} }

	assert.True(t, f.Register("a", first))
	assert.False(t, f.Register("a", second), "duplicate registration is refused")
	assert.False(t, f.Register("b", nil))

	s, ok := f.Create("a", entity.NewManager())
	require.True(t, ok)
	assert.Equal(t, "first", s.Name(), "existing binding is kept")
}

func TestFactory_CreateUnregistered(t *testing.T) {
	f := NewFactory()

	s, ok := f.Create("nope", entity.NewManager())
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.False(t, f.Has("nope"))
}

func TestFactory_Types(t *testing.T) {
	f := NewFactory()
	ctor := func(*entity.Manager) Scene { return &mockScene{} }
	f.Register("zeta", ctor)
	f.Register("alpha", ctor)

	assert.Equal(t, []Type{"alpha", "zeta"}, f.Types())
}

func TestFactory_PassesObjectManager(t *testing.T) {
	f := NewFactory()
	var got *entity.Manager
	f.Register("a", func(objects *entity.Manager) Scene {
		got = objects
		return &mockScene{}
	})
	objects := entity.NewManager()

	f.Create("a", objects)
	assert.Same(t, objects, got)
}
