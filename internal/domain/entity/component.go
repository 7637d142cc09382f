package entity

import "github.com/hajimehoshi/ebiten/v2"

// Component is a behaviour attached to exactly one GameObject. Concrete
// components embed Base, which supplies the owner link and the active flag.
type Component interface {
	Initialize()
	Dispose()
	Active() bool
	SetActive(active bool)
	base() *Base
}

// Updatable components are called once per frame from the update pass.
type Updatable interface {
	Component
	Update(dt float64)
}

// Drawable components are called once per frame from the draw pass.
type Drawable interface {
	Component
	Draw(screen *ebiten.Image)
}

// Base is embedded by every component. Its zero value is an unattached,
// active component.
type Base struct {
	owner    Handle
	objects  *Manager
	self     Component
	inactive bool

	initialized bool
	disposed    bool
}

func (b *Base) base() *Base { return b }

// Initialize is a no-op default.
func (b *Base) Initialize() {}

// Dispose is a no-op default.
func (b *Base) Dispose() {}

// Owner returns the owning object, or nil once it has been freed.
func (b *Base) Owner() *GameObject {
	if b.objects == nil {
		return nil
	}
	o, _ := b.objects.Get(b.owner)
	return o
}

// OwnerHandle returns the handle of the owning object.
func (b *Base) OwnerHandle() Handle { return b.owner }

// Objects returns the manager that owns this component's object.
func (b *Base) Objects() *Manager { return b.objects }

// Transform is a shortcut for Owner().Transform(). It returns nil when the
// owner is gone.
func (b *Base) Transform() *Transform {
	if o := b.Owner(); o != nil {
		return o.transform
	}
	return nil
}

func (b *Base) Active() bool { return !b.inactive }

// SetActive toggles the component and notifies the owner's observer.
func (b *Base) SetActive(active bool) {
	if active == b.Active() {
		return
	}
	b.inactive = !active
	o := b.Owner()
	if o == nil {
		return
	}
	if active {
		o.notify(EventComponentEnabled, b.self)
	} else {
		o.notify(EventComponentDisabled, b.self)
	}
}

// Initialized reports whether Initialize has run.
func (b *Base) Initialized() bool { return b.initialized }

// Disposed reports whether Dispose has run.
func (b *Base) Disposed() bool { return b.disposed }

func initializeComponent(c Component) {
	b := c.base()
	if b.initialized || b.disposed {
		return
	}
	b.initialized = true
	c.Initialize()
}

func disposeComponent(c Component) {
	b := c.base()
	if b.disposed {
		return
	}
	b.disposed = true
	c.Dispose()
}

// AddComponent attaches c to o and returns it. A nil component or one that is
// already attached is a programming error and panics.
func AddComponent[T Component](o *GameObject, c T) T {
	if o == nil || o.disposed {
		panic("entity: AddComponent on a disposed object")
	}
	var comp Component = c
	if comp == nil || comp.base() == nil {
		panic("entity: AddComponent with a nil component")
	}
	b := comp.base()
	if b.self != nil {
		panic("entity: component is already attached")
	}
	b.owner = o.handle
	b.objects = o.objects
	b.self = comp

	o.components = append(o.components, comp)
	if u, ok := comp.(Updatable); ok {
		o.updatables = append(o.updatables, u)
	}
	if d, ok := comp.(Drawable); ok {
		o.drawables = append(o.drawables, d)
	}
	o.notify(EventComponentAdded, comp)

	if o.initialized {
		initializeComponent(comp)
	}
	return c
}

// GetComponent returns the first component of o assignable to T.
func GetComponent[T any](o *GameObject) (T, bool) {
	var zero T
	if o == nil {
		return zero, false
	}
	for _, c := range o.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// GetComponents returns every component of o assignable to T, in insertion order.
func GetComponents[T any](o *GameObject) []T {
	if o == nil {
		return nil
	}
	var out []T
	for _, c := range o.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// RemoveComponent detaches and disposes c. It returns false if c is not
// attached to o.
func RemoveComponent(o *GameObject, c Component) bool {
	if o == nil || c == nil {
		return false
	}
	idx := -1
	for i, have := range o.components {
		if have == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	// copy on write: a dispatch loop may be ranging over the old slices
	o.components = without(o.components, idx)
	for i, u := range o.updatables {
		if Component(u) == c {
			o.updatables = without(o.updatables, i)
			break
		}
	}
	for i, d := range o.drawables {
		if Component(d) == c {
			o.drawables = without(o.drawables, i)
			break
		}
	}
	o.notify(EventComponentRemoved, c)
	disposeComponent(c)
	return true
}

func without[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
