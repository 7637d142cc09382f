// Package ecs provides the handle arena that owns runtime objects.
package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The zero value is never issued.
type EntityID uint64

// NewEntityID packs an index and generation into an EntityID.
func NewEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

type slot[T any] struct {
	generation uint32
	value      *T
}

// Pool is a generational arena. Freeing a slot bumps its generation, so every
// EntityID issued for the old occupant stops resolving.
type Pool[T any] struct {
	slots    []slot[T]
	freeList []uint32
	live     int
}

// NewPool creates an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{
		slots:    make([]slot[T], 0, 256),
		freeList: make([]uint32, 0, 64),
	}
}

// Insert stores v and returns its handle.
func (p *Pool[T]) Insert(v *T) EntityID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.slots[idx].value = v
		p.live++
		return NewEntityID(idx, p.slots[idx].generation)
	}
	// generation starts at 1 so that no live handle equals zero
	p.slots = append(p.slots, slot[T]{generation: 1, value: v})
	p.live++
	return NewEntityID(uint32(len(p.slots)-1), 1)
}

// Get resolves a handle. Stale or zero handles return false.
func (p *Pool[T]) Get(id EntityID) (*T, bool) {
	idx := id.Index()
	if id.IsZero() || int(idx) >= len(p.slots) {
		return nil, false
	}
	s := p.slots[idx]
	if s.generation != id.Generation() || s.value == nil {
		return nil, false
	}
	return s.value, true
}

// Alive reports whether id still resolves.
func (p *Pool[T]) Alive(id EntityID) bool {
	_, ok := p.Get(id)
	return ok
}

// Remove frees the slot behind id. Removing a stale handle is a no-op.
func (p *Pool[T]) Remove(id EntityID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.slots[idx].value = nil
	p.slots[idx].generation++
	if p.slots[idx].generation == 0 {
		p.slots[idx].generation = 1
	}
	p.freeList = append(p.freeList, idx)
	p.live--
	return true
}

// Len returns the number of occupied slots.
func (p *Pool[T]) Len() int {
	return p.live
}

// Clear frees every slot, invalidating all outstanding handles.
func (p *Pool[T]) Clear() {
	for i := range p.slots {
		if p.slots[i].value != nil {
			p.Remove(NewEntityID(uint32(i), p.slots[i].generation))
		}
	}
}
