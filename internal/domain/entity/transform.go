package entity

import "github.com/go-gl/mathgl/mgl32"

// Canonical axes. A root transform with identity rotation faces +Z.
var (
	AxisRight   = mgl32.Vec3{1, 0, 0}
	AxisUp      = mgl32.Vec3{0, 1, 0}
	AxisForward = mgl32.Vec3{0, 0, 1}
)

// resolver maps a handle to the transform of a live object.
type resolver interface {
	transformOf(h Handle) *Transform
}

// Transform is a node in the object hierarchy. Parent and child links are
// handles, so a freed object can never be reached through them.
//
// The world matrix is cached and recomputed lazily. A dirty transform implies
// every descendant is dirty too, because a child is only cleaned after its
// parent has been.
type Transform struct {
	owner   Handle
	objects resolver

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	parent   Handle
	children []Handle

	dirty      bool
	world      mgl32.Mat4
	worldRot   mgl32.Quat
	worldScale mgl32.Vec3
}

// NewTransform creates a root transform that does not belong to any object.
func NewTransform() *Transform {
	return newTransform(0, nil)
}

func newTransform(owner Handle, objects resolver) *Transform {
	return &Transform{
		owner:    owner,
		objects:  objects,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		dirty:    true,
	}
}

// Owner returns the handle of the object this transform belongs to.
func (t *Transform) Owner() Handle { return t.owner }

func (t *Transform) LocalPosition() mgl32.Vec3 { return t.position }
func (t *Transform) LocalRotation() mgl32.Quat { return t.rotation }
func (t *Transform) LocalScale() mgl32.Vec3    { return t.scale }

// SetLocalPosition sets the position relative to the parent.
func (t *Transform) SetLocalPosition(p mgl32.Vec3) {
	t.position = p
	t.markDirty()
}

// SetLocalRotation sets the rotation relative to the parent.
func (t *Transform) SetLocalRotation(q mgl32.Quat) {
	t.rotation = q.Normalize()
	t.markDirty()
}

// SetLocalRotationEuler sets the local rotation from XYZ euler angles in degrees.
func (t *Transform) SetLocalRotationEuler(x, y, z float32) {
	t.SetLocalRotation(mgl32.AnglesToQuat(mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z), mgl32.XYZ))
}

// SetLocalScale sets the scale relative to the parent.
func (t *Transform) SetLocalScale(s mgl32.Vec3) {
	t.scale = s
	t.markDirty()
}

// Translate offsets the local position.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.SetLocalPosition(t.position.Add(delta))
}

// Rotate applies q after the current local rotation.
func (t *Transform) Rotate(q mgl32.Quat) {
	t.SetLocalRotation(t.rotation.Mul(q))
}

// WorldMatrix returns parent world * local (translation * rotation * scale).
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	t.refresh()
	return t.world
}

func (t *Transform) WorldPosition() mgl32.Vec3 {
	t.refresh()
	return t.world.Col(3).Vec3()
}

func (t *Transform) WorldRotation() mgl32.Quat {
	t.refresh()
	return t.worldRot
}

func (t *Transform) WorldScale() mgl32.Vec3 {
	t.refresh()
	return t.worldScale
}

func (t *Transform) Forward() mgl32.Vec3 { return t.WorldRotation().Rotate(AxisForward) }
func (t *Transform) Right() mgl32.Vec3   { return t.WorldRotation().Rotate(AxisRight) }
func (t *Transform) Up() mgl32.Vec3      { return t.WorldRotation().Rotate(AxisUp) }

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform {
	if t.parent.IsZero() || t.objects == nil {
		return nil
	}
	return t.objects.transformOf(t.parent)
}

// Children returns the live child transforms.
func (t *Transform) Children() []*Transform {
	out := make([]*Transform, 0, len(t.children))
	for _, h := range t.children {
		if c := t.child(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ChildCount returns the number of child links.
func (t *Transform) ChildCount() int { return len(t.children) }

// HasChild reports whether h is linked as a direct child.
func (t *Transform) HasChild(h Handle) bool {
	for _, c := range t.children {
		if c == h {
			return true
		}
	}
	return false
}

func (t *Transform) child(h Handle) *Transform {
	if t.objects == nil {
		return nil
	}
	return t.objects.transformOf(h)
}

// setParent moves t under p, or makes it a root when p is nil.
func (t *Transform) setParent(p *Transform) {
	if old := t.Parent(); old != nil {
		old.removeChild(t.owner)
	}
	t.parent = 0
	if p != nil {
		t.parent = p.owner
		p.children = append(p.children, t.owner)
	}
	t.markDirty()
}

func (t *Transform) removeChild(h Handle) {
	for i, c := range t.children {
		if c == h {
			t.children = append(t.children[:i:i], t.children[i+1:]...)
			return
		}
	}
}

// isAncestorOf reports whether t appears on other's parent chain.
func (t *Transform) isAncestorOf(other *Transform) bool {
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == t {
			return true
		}
	}
	return false
}

func (t *Transform) markDirty() {
	if t.dirty {
		return
	}
	t.dirty = true
	for _, h := range t.children {
		if c := t.child(h); c != nil {
			c.markDirty()
		}
	}
}

func (t *Transform) refresh() {
	if !t.dirty {
		return
	}
	local := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z()).
		Mul4(t.rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z()))

	if p := t.Parent(); p != nil {
		p.refresh()
		t.world = p.world.Mul4(local)
		t.worldRot = p.worldRot.Mul(t.rotation).Normalize()
		t.worldScale = mgl32.Vec3{
			p.worldScale.X() * t.scale.X(),
			p.worldScale.Y() * t.scale.Y(),
			p.worldScale.Z() * t.scale.Z(),
		}
	} else {
		t.world = local
		t.worldRot = t.rotation
		t.worldScale = t.scale
	}
	t.dirty = false
}
