package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Instantiate(t *testing.T) {
	m := NewManager()

	o := m.Instantiate("player", WithTag(TagPlayer))
	ghost := m.Instantiate("ghost", Inactive())

	assert.Equal(t, "player", o.Name())
	assert.Equal(t, TagPlayer, o.Tag())
	assert.True(t, o.Active())
	assert.False(t, ghost.Active())
	assert.NotNil(t, o.Transform())
	assert.Equal(t, o.Handle(), o.Transform().Owner())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, m.PendingInitialize())
	assert.False(t, o.Initialized())

	got, ok := m.Get(o.Handle())
	require.True(t, ok)
	assert.Same(t, o, got)
}

func TestManager_FlushInitializeEmpty(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, m.FlushInitialize)
	assert.NotPanics(t, m.FlushDestroyQueue)
}

func TestManager_DeferredLifecycleOrdering(t *testing.T) {
	m := NewManager()
	spawner := m.Instantiate("spawner")
	var spawned *countingComponent
	AddComponent(spawner, &countingComponent{onUpdate: func() {
		if spawned == nil {
			o := m.Instantiate("spawned")
			spawned = AddComponent(o, &countingComponent{})
		}
	}})

	frame(m, 0.016)
	require.NotNil(t, spawned)
	assert.Equal(t, 0, spawned.updateCalled, "not visited in the frame it was created")
	assert.Equal(t, 0, spawned.initCalled)

	frame(m, 0.016)
	assert.Equal(t, 1, spawned.initCalled)
	assert.Equal(t, 1, spawned.updateCalled, "visited after one FlushInitialize")
	assert.Equal(t, 1, spawned.drawCalled)
}

func TestManager_SubtreeDestroyFlush(t *testing.T) {
	m := NewManager()
	parent := m.Instantiate("parent")
	c1 := m.Instantiate("c1", WithParent(parent))
	c2 := m.Instantiate("c2", WithParent(parent))
	keep := m.Instantiate("keep")
	comps := []*countingComponent{
		AddComponent(parent, &countingComponent{}),
		AddComponent(c1, &countingComponent{}),
		AddComponent(c2, &countingComponent{}),
	}
	m.FlushInitialize()

	parent.OnDestroy()
	assert.True(t, parent.PendingDestroy())
	assert.True(t, c1.PendingDestroy())
	assert.True(t, c2.PendingDestroy())
	assert.Equal(t, 4, m.Len(), "nothing removed before the flush")

	m.FlushDestroyQueue()

	assert.Equal(t, 1, m.Len())
	for _, h := range []Handle{parent.Handle(), c1.Handle(), c2.Handle()} {
		assert.False(t, m.Alive(h))
	}
	assert.True(t, m.Alive(keep.Handle()))
	for _, c := range comps {
		assert.Equal(t, 1, c.disposeCalled)
		assert.Nil(t, c.Owner(), "owner link no longer resolves")
	}
}

func TestManager_DestroyChildUnlinksFromParent(t *testing.T) {
	m := NewManager()
	parent := m.Instantiate("parent")
	child := m.Instantiate("child", WithParent(parent))

	child.OnDestroy()
	assert.False(t, parent.PendingDestroy())
	m.FlushDestroyQueue()

	assert.Equal(t, 0, parent.Transform().ChildCount())
	assert.Empty(t, parent.Children())
}

func TestManager_DestroyedDuringUpdateIsNotDispatched(t *testing.T) {
	m := NewManager()
	first := m.Instantiate("first")
	second := m.Instantiate("second")
	victim := AddComponent(second, &countingComponent{})
	AddComponent(first, &countingComponent{onUpdate: second.OnDestroy})

	frame(m, 0.016)

	assert.Equal(t, 0, victim.updateCalled)
	assert.Equal(t, 0, victim.drawCalled)
	assert.Equal(t, 1, victim.disposeCalled)
	assert.False(t, m.Alive(second.Handle()))
}

func TestManager_UpdateVisitsEachObjectOnce(t *testing.T) {
	m := NewManager()
	var comps []*countingComponent
	for i := 0; i < 5; i++ {
		comps = append(comps, AddComponent(m.Instantiate("o"), &countingComponent{}))
	}

	frame(m, 0.016)

	for _, c := range comps {
		assert.Equal(t, 1, c.updateCalled)
		assert.Equal(t, 1, c.drawCalled)
	}
}

func TestManager_FlushDuringDispatchPanics(t *testing.T) {
	m := NewManager()
	o := m.Instantiate("o")
	AddComponent(o, &countingComponent{onUpdate: m.FlushDestroyQueue})
	m.FlushInitialize()

	assert.Panics(t, func() { m.UpdateAll(0.016) })
	assert.False(t, m.dispatching, "flag is reset after the panic")
}

func TestManager_DestroyBeforeInitialize(t *testing.T) {
	m := NewManager()
	o := m.Instantiate("o")
	c := AddComponent(o, &countingComponent{})

	o.OnDestroy()
	frame(m, 0.016)

	assert.Equal(t, 0, c.initCalled)
	assert.Equal(t, 1, c.disposeCalled)
	assert.Equal(t, 0, m.PendingInitialize())
	assert.Equal(t, 0, m.Len())
}

func TestManager_Find(t *testing.T) {
	m := NewManager()
	p := m.Instantiate("hero", WithTag(TagPlayer))
	e1 := m.Instantiate("slime", WithTag(TagEnemy))
	e2 := m.Instantiate("bat", WithTag(TagEnemy))

	got, ok := m.FindByName("hero")
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = m.FindByName("nobody")
	assert.False(t, ok)

	assert.Equal(t, []*GameObject{e1, e2}, m.FindByTag(TagEnemy))

	e1.OnDestroy()
	assert.Equal(t, []*GameObject{e2}, m.FindByTag(TagEnemy))
}

func TestManager_Dispose(t *testing.T) {
	m := NewManager()
	a := AddComponent(m.Instantiate("a"), &countingComponent{})
	b := AddComponent(m.Instantiate("b"), &countingComponent{})
	m.FlushInitialize()
	h := a.OwnerHandle()

	m.Dispose()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 1, a.disposeCalled)
	assert.Equal(t, 1, b.disposeCalled)
	assert.False(t, m.Alive(h))
	assert.Equal(t, 0, m.PendingInitialize())
}

func TestManager_HandlesAreNotReused(t *testing.T) {
	m := NewManager()
	old := m.Instantiate("old")
	h := old.Handle()
	old.OnDestroy()
	m.FlushDestroyQueue()

	fresh := m.Instantiate("fresh")

	assert.NotEqual(t, h, fresh.Handle())
	_, ok := m.Get(h)
	assert.False(t, ok, "stale handle never resolves to the new object")
}

func TestEventKind_String(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected string
	}{
		{EventObjectDestroyed, "ObjectDestroyed"},
		{EventObjectEnabled, "ObjectEnabled"},
		{EventObjectDisabled, "ObjectDisabled"},
		{EventComponentAdded, "ComponentAdded"},
		{EventComponentRemoved, "ComponentRemoved"},
		{EventComponentEnabled, "ComponentEnabled"},
		{EventComponentDisabled, "ComponentDisabled"},
		{EventKind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestTag_ParseRoundTrip(t *testing.T) {
	for _, tag := range []Tag{TagUntagged, TagPlayer, TagEnemy, TagProjectile, TagCamera, TagUI, TagEnvironment} {
		got, ok := ParseTag(tag.String())
		assert.True(t, ok, tag.String())
		assert.Equal(t, tag, got)
	}

	_, ok := ParseTag("Dragon")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", Tag(42).String())
}

func TestObservers_FanOut(t *testing.T) {
	a, b := NewEventRecorder(), NewEventRecorder()
	var seen []string
	m := NewManager(WithObserver(Observers{a, nil, b, ObserverFunc(func(ev EventContext) {
		seen = append(seen, ev.Kind.String())
	})}))

	m.Instantiate("x").OnDestroy()

	assert.Equal(t, 1, a.Count(EventObjectDestroyed))
	assert.Equal(t, 1, b.Count(EventObjectDestroyed))
	assert.Equal(t, []string{"ObjectDestroyed"}, seen)
}
