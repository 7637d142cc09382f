// Package entity implements the runtime object model: transforms, components,
// game objects and the manager that owns them.
package entity

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenekit/internal/ecs"
	"go.uber.org/zap"
)

// Handle is a generation-checked reference to a GameObject.
type Handle = ecs.EntityID

// Manager is the sole owner of every GameObject it creates.
//
// Objects are created and destroyed with a one-frame delay: Instantiate adds
// to the live list and the init queue, OnDestroy adds to the destroy queue.
// FlushInitialize and FlushDestroyQueue are the only places those queues are
// drained, and neither may run while UpdateAll or DrawAll is iterating.
type Manager struct {
	pool         *ecs.Pool[GameObject]
	live         []Handle
	pendingInit  []Handle
	destroyQueue []Handle
	dispatching  bool

	observer Observer
	log      *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for flush diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithObserver installs obs on every object the manager instantiates.
func WithObserver(obs Observer) Option {
	return func(m *Manager) {
		m.observer = obs
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		pool: ecs.NewPool[GameObject](),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetObserver replaces the default observer for objects created from now on.
func (m *Manager) SetObserver(obs Observer) { m.observer = obs }

// ObjectOption configures an object at Instantiate time.
type ObjectOption func(*GameObject)

// WithTag sets the object's tag.
func WithTag(tag Tag) ObjectOption {
	return func(o *GameObject) { o.tag = tag }
}

// Inactive creates the object with its active flag cleared.
func Inactive() ObjectOption {
	return func(o *GameObject) { o.active = false }
}

// WithParent attaches the new object under parent.
func WithParent(parent *GameObject) ObjectOption {
	return func(o *GameObject) {
		if parent != nil {
			o.SetParent(parent)
		}
	}
}

// Instantiate creates an active, untagged object unless opts say otherwise.
// The object accepts components immediately but is not updated or drawn
// until the next FlushInitialize.
func (m *Manager) Instantiate(name string, opts ...ObjectOption) *GameObject {
	o := newGameObject(0, m, name, TagUntagged, true)
	h := m.pool.Insert(o)
	o.handle = h
	o.transform.owner = h
	o.observer = m.observer

	m.live = append(m.live, h)
	m.pendingInit = append(m.pendingInit, h)

	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Get resolves a handle to a live object.
func (m *Manager) Get(h Handle) (*GameObject, bool) {
	return m.pool.Get(h)
}

// Alive reports whether h still refers to an object owned by m.
func (m *Manager) Alive(h Handle) bool {
	return m.pool.Alive(h)
}

func (m *Manager) transformOf(h Handle) *Transform {
	if o, ok := m.pool.Get(h); ok {
		return o.transform
	}
	return nil
}

// Len returns the number of live objects, including those pending destroy.
func (m *Manager) Len() int { return len(m.live) }

// PendingInitialize returns how many objects wait for FlushInitialize.
func (m *Manager) PendingInitialize() int { return len(m.pendingInit) }

// PendingDestroy returns how many objects wait for FlushDestroyQueue.
func (m *Manager) PendingDestroy() int { return len(m.destroyQueue) }

// Each visits live objects in creation order until fn returns false.
func (m *Manager) Each(fn func(*GameObject) bool) {
	for _, h := range m.live {
		if o, ok := m.pool.Get(h); ok {
			if !fn(o) {
				return
			}
		}
	}
}

// FindByName returns the first live object with the given name.
func (m *Manager) FindByName(name string) (*GameObject, bool) {
	var found *GameObject
	m.Each(func(o *GameObject) bool {
		if o.name == name && !o.pendingDestroy {
			found = o
			return false
		}
		return true
	})
	return found, found != nil
}

// FindByTag returns every live object carrying tag.
func (m *Manager) FindByTag(tag Tag) []*GameObject {
	var out []*GameObject
	m.Each(func(o *GameObject) bool {
		if o.tag == tag && !o.pendingDestroy {
			out = append(out, o)
		}
		return true
	})
	return out
}

// FlushInitialize initializes every object created since the last call.
// Objects instantiated while this runs wait for the next call.
func (m *Manager) FlushInitialize() {
	if len(m.pendingInit) == 0 {
		return
	}
	batch := m.pendingInit
	m.pendingInit = nil
	for _, h := range batch {
		o, ok := m.pool.Get(h)
		if !ok || o.pendingDestroy {
			continue
		}
		o.initialize()
	}
	m.log.Debug("initialized objects", zap.Int("count", len(batch)))
}

// UpdateAll updates live objects in creation order. Objects created during
// the pass are not visited; objects destroyed during the pass are skipped.
func (m *Manager) UpdateAll(dt float64) {
	m.dispatch(func(o *GameObject) { o.Update(dt) })
}

// DrawAll draws live objects in creation order.
func (m *Manager) DrawAll(screen *ebiten.Image) {
	m.dispatch(func(o *GameObject) { o.Draw(screen) })
}

func (m *Manager) dispatch(fn func(*GameObject)) {
	m.dispatching = true
	defer func() { m.dispatching = false }()

	live := m.live
	n := len(live)
	for i := 0; i < n; i++ {
		o, ok := m.pool.Get(live[i])
		if !ok {
			continue
		}
		fn(o)
	}
}

func (m *Manager) enqueueDestroy(h Handle) {
	m.destroyQueue = append(m.destroyQueue, h)
}

// FlushDestroyQueue disposes and frees every object marked for destruction,
// unlinking each from a surviving parent first. Calling it from inside
// UpdateAll or DrawAll is a programming error and panics.
func (m *Manager) FlushDestroyQueue() {
	if m.dispatching {
		m.log.Error("destroy flush requested during dispatch")
		panic("entity: FlushDestroyQueue called during UpdateAll/DrawAll")
	}
	if len(m.destroyQueue) == 0 {
		return
	}
	queue := m.destroyQueue
	m.destroyQueue = nil

	dead := make(map[Handle]struct{}, len(queue))
	for _, h := range queue {
		o, ok := m.pool.Get(h)
		if !ok {
			continue
		}
		dead[h] = struct{}{}
		if p := o.transform.Parent(); p != nil {
			if po, ok := m.pool.Get(p.owner); ok && !po.pendingDestroy {
				p.removeChild(h)
			}
		}
		o.dispose()
	}
	for h := range dead {
		m.pool.Remove(h)
	}
	m.live = dropHandles(m.live, dead)
	m.pendingInit = dropHandles(m.pendingInit, dead)

	m.log.Debug("destroyed objects", zap.Int("count", len(dead)), zap.Int("live", len(m.live)))
}

func dropHandles(hs []Handle, dead map[Handle]struct{}) []Handle {
	out := hs[:0]
	for _, h := range hs {
		if _, gone := dead[h]; !gone {
			out = append(out, h)
		}
	}
	return out
}

// Dispose tears down every remaining object and empties the manager. Handles
// issued before the call stop resolving.
func (m *Manager) Dispose() {
	if m.dispatching {
		m.log.Error("dispose requested during dispatch")
		panic("entity: Dispose called during UpdateAll/DrawAll")
	}
	for _, h := range m.live {
		if o, ok := m.pool.Get(h); ok {
			o.dispose()
		}
	}
	m.log.Debug("disposed manager", zap.Int("objects", len(m.live)))
	m.pool.Clear()
	m.live = nil
	m.pendingInit = nil
	m.destroyQueue = nil
}
