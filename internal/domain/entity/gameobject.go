package entity

import "github.com/hajimehoshi/ebiten/v2"

// GameObject aggregates a Transform and an ordered list of components. It is
// owned by a Manager; everything else refers to it by Handle or borrows the
// pointer for the duration of a call.
type GameObject struct {
	handle  Handle
	objects *Manager

	name   string
	tag    Tag
	active bool

	// pendingDestroy is monotonic: once set it is never cleared.
	pendingDestroy bool
	initialized    bool
	disposed       bool

	transform  *Transform
	components []Component
	updatables []Updatable
	drawables  []Drawable

	observer Observer
}

func newGameObject(h Handle, objects *Manager, name string, tag Tag, active bool) *GameObject {
	return &GameObject{
		handle:    h,
		objects:   objects,
		name:      name,
		tag:       tag,
		active:    active,
		transform: newTransform(h, objects),
	}
}

func (o *GameObject) Handle() Handle           { return o.handle }
func (o *GameObject) Name() string             { return o.name }
func (o *GameObject) SetName(name string)      { o.name = name }
func (o *GameObject) Tag() Tag                 { return o.tag }
func (o *GameObject) SetTag(tag Tag)           { o.tag = tag }
func (o *GameObject) Transform() *Transform    { return o.transform }
func (o *GameObject) Active() bool             { return o.active }
func (o *GameObject) PendingDestroy() bool     { return o.pendingDestroy }
func (o *GameObject) Initialized() bool        { return o.initialized }
func (o *GameObject) Components() []Component  { return o.components }
func (o *GameObject) SetObserver(obs Observer) { o.observer = obs }
func (o *GameObject) Observer() Observer       { return o.observer }

// SetActive changes the active flag and publishes ObjectEnabled or
// ObjectDisabled. Setting the current value is a no-op.
func (o *GameObject) SetActive(active bool) {
	if o.active == active {
		return
	}
	o.active = active
	if active {
		o.notify(EventObjectEnabled, nil)
	} else {
		o.notify(EventObjectDisabled, nil)
	}
}

// ActiveInHierarchy is true when o and every ancestor are active.
func (o *GameObject) ActiveInHierarchy() bool {
	for cur := o; cur != nil; cur = cur.Parent() {
		if !cur.active {
			return false
		}
	}
	return true
}

// Parent returns the parent object, or nil for a root.
func (o *GameObject) Parent() *GameObject {
	p := o.transform.Parent()
	if p == nil || o.objects == nil {
		return nil
	}
	parent, _ := o.objects.Get(p.owner)
	return parent
}

// Children returns the live child objects in attach order.
func (o *GameObject) Children() []*GameObject {
	out := make([]*GameObject, 0, len(o.transform.children))
	if o.objects == nil {
		return out
	}
	for _, h := range o.transform.children {
		if c, ok := o.objects.Get(h); ok {
			out = append(out, c)
		}
	}
	return out
}

// SetParent moves o under parent, or makes it a root when parent is nil. The
// object and transform hierarchies share the same links. It returns false,
// changing nothing, when the move would create a cycle or cross managers.
func (o *GameObject) SetParent(parent *GameObject) bool {
	if parent == nil {
		o.transform.setParent(nil)
		return true
	}
	if parent == o || parent.objects != o.objects || o.transform.isAncestorOf(parent.transform) {
		return false
	}
	if parent.disposed || o.disposed {
		return false
	}
	o.transform.setParent(parent.transform)
	// a live child under a dying parent would outlive it
	if parent.pendingDestroy {
		o.OnDestroy()
	}
	return true
}

// Update dispatches to active Updatable components in insertion order.
func (o *GameObject) Update(dt float64) {
	if !o.dispatchable() {
		return
	}
	if o.transform.parent.IsZero() {
		o.transform.refresh()
	}
	for _, u := range o.updatables {
		if o.pendingDestroy {
			return
		}
		if !u.Active() || u.base().disposed {
			continue
		}
		u.Update(dt)
	}
}

// Draw dispatches to active Drawable components in insertion order.
func (o *GameObject) Draw(screen *ebiten.Image) {
	if !o.dispatchable() {
		return
	}
	for _, d := range o.drawables {
		if o.pendingDestroy {
			return
		}
		if !d.Active() || d.base().disposed {
			continue
		}
		d.Draw(screen)
	}
}

func (o *GameObject) dispatchable() bool {
	return o.initialized && !o.pendingDestroy && !o.disposed && o.ActiveInHierarchy()
}

// OnDestroy marks o and its whole subtree for removal at the next destroy
// flush. Calling it again is a no-op.
func (o *GameObject) OnDestroy() {
	if o.pendingDestroy {
		return
	}
	o.pendingDestroy = true
	if o.objects != nil {
		o.objects.enqueueDestroy(o.handle)
	}
	o.notify(EventObjectDestroyed, nil)
	for _, c := range o.Children() {
		c.OnDestroy()
	}
}

// initialize runs Initialize on every component once.
func (o *GameObject) initialize() {
	if o.initialized || o.disposed {
		return
	}
	o.initialized = true
	// Snapshot: components removed by an Initialize are disposed and skipped.
	for _, c := range o.components {
		initializeComponent(c)
	}
}

// dispose is the final teardown, run only by the Manager's destroy flush.
func (o *GameObject) dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	for _, c := range o.components {
		disposeComponent(c)
	}
	o.components = nil
	o.updatables = nil
	o.drawables = nil
	o.transform.children = nil
	o.name = ""
}

func (o *GameObject) notify(kind EventKind, c Component) {
	if o.observer == nil {
		return
	}
	o.observer.OnEvent(EventContext{
		Kind:      kind,
		Object:    o.name,
		Handle:    o.handle,
		Component: c,
	})
}
