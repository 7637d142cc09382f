package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thing struct{ name string }

func TestNewPool(t *testing.T) {
	p := NewPool[thing]()

	assert.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestEntityID_Packing(t *testing.T) {
	id := NewEntityID(7, 3)

	assert.Equal(t, uint32(7), id.Index())
	assert.Equal(t, uint32(3), id.Generation())
	assert.False(t, id.IsZero())
	assert.True(t, EntityID(0).IsZero())
}

func TestPool_InsertGet(t *testing.T) {
	p := NewPool[thing]()

	a := p.Insert(&thing{name: "a"})
	b := p.Insert(&thing{name: "b"})

	assert.NotEqual(t, a, b)
	assert.False(t, a.IsZero(), "first handle must not be zero")

	got, ok := p.Get(a)
	require.True(t, ok)
	assert.Equal(t, "a", got.name)
	assert.Equal(t, 2, p.Len())
}

func TestPool_StaleHandleAfterRemove(t *testing.T) {
	p := NewPool[thing]()

	a := p.Insert(&thing{name: "a"})
	require.True(t, p.Remove(a))

	_, ok := p.Get(a)
	assert.False(t, ok, "removed handle should not resolve")
	assert.False(t, p.Remove(a), "second remove is a no-op")

	// The slot is reused with a new generation
	b := p.Insert(&thing{name: "b"})
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())

	_, ok = p.Get(a)
	assert.False(t, ok, "old handle must not resolve to the new occupant")
	got, ok := p.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", got.name)
}

func TestPool_GetOutOfRange(t *testing.T) {
	p := NewPool[thing]()

	_, ok := p.Get(NewEntityID(42, 1))
	assert.False(t, ok)
	_, ok = p.Get(0)
	assert.False(t, ok)
}

func TestPool_Clear(t *testing.T) {
	p := NewPool[thing]()
	a := p.Insert(&thing{})
	b := p.Insert(&thing{})

	p.Clear()

	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Alive(a))
	assert.False(t, p.Alive(b))
}
