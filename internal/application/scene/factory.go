package scene

import (
	"sort"

	"github.com/younwookim/scenekit/internal/domain/entity"
)

// Constructor builds a scene bound to objects. Collaborators other than the
// object manager are captured by the closure.
type Constructor func(objects *entity.Manager) Scene

// Factory maps scene types to constructors.
type Factory struct {
	constructors map[Type]Constructor
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[Type]Constructor)}
}

// Register binds t to c. It returns false, keeping the existing binding, when
// t is already registered or c is nil.
func (f *Factory) Register(t Type, c Constructor) bool {
	if c == nil {
		return false
	}
	if _, exists := f.constructors[t]; exists {
		return false
	}
	f.constructors[t] = c
	return true
}

// Has reports whether t is registered.
func (f *Factory) Has(t Type) bool {
	_, ok := f.constructors[t]
	return ok
}

// Create builds a new scene of type t. It returns false when t is not
// registered or the constructor produced nothing.
func (f *Factory) Create(t Type, objects *entity.Manager) (Scene, bool) {
	c, ok := f.constructors[t]
	if !ok {
		return nil, false
	}
	s := c(objects)
	if s == nil {
		return nil, false
	}
	return s, true
}

// Types returns the registered types in sorted order.
func (f *Factory) Types() []Type {
	out := make([]Type, 0, len(f.constructors))
	for t := range f.constructors {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
