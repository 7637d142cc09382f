package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/scenekit/internal/application/state"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"go.uber.org/zap"
)

// TransitionHook is called with the target scene type.
type TransitionHook func(t Type)

// Manager owns the current scene and swaps scenes between frames.
//
// The machine has two persistent states: idle with a current scene, and
// transition pending. A pending transition is completed by the next Update,
// which finalizes the old scene, builds the new one and returns without
// updating either. The new scene runs SetupObjects on the Update after that,
// and Draw is suppressed until it has.
type Manager struct {
	factory *Factory
	objects *entity.Manager

	current     Scene
	currentType Type
	pendingType Type
	activation  uuid.UUID

	transitioning bool
	initialized   bool

	onBegin TransitionHook
	onEnd   TransitionHook

	log *zap.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger for transition diagnostics.
func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithObjects sets the object manager shared with every scene.
func WithObjects(objects *entity.Manager) ManagerOption {
	return func(m *Manager) {
		if objects != nil {
			m.objects = objects
		}
	}
}

// NewManager creates a scene manager with no current scene. A nil factory is
// a programming error and panics.
func NewManager(factory *Factory, opts ...ManagerOption) *Manager {
	m := &Manager{
		factory: factory,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if factory == nil {
		m.fatal("scene manager requires a factory")
	}
	if m.objects == nil {
		m.objects = entity.NewManager(entity.WithLogger(m.log))
	}
	return m
}

// SetTransitionHooks installs the begin and end hooks. Either may be nil.
//
// When a begin hook is set, RequestSceneChange only calls it; the hook (or
// someone it hands off to) must call NotifyTransitionReady to start the swap.
func (m *Manager) SetTransitionHooks(begin, end TransitionHook) {
	m.onBegin = begin
	m.onEnd = end
}

// RequestSceneChange asks for a switch to t. Requesting an unregistered type
// is a programming error and panics.
func (m *Manager) RequestSceneChange(t Type) {
	if m.factory == nil || !m.factory.Has(t) {
		m.fatal("scene type is not registered", zap.String("type", string(t)))
	}
	if m.onBegin != nil {
		m.onBegin(t)
		return
	}
	m.NotifyTransitionReady(t)
}

// NotifyTransitionReady starts the transition to t. It is ignored while
// another transition is in flight.
func (m *Manager) NotifyTransitionReady(t Type) {
	if m.transitioning {
		m.log.Debug("transition already in flight, ignoring request",
			zap.String("pending", string(m.pendingType)),
			zap.String("requested", string(t)))
		return
	}
	m.pendingType = t
	m.transitioning = true
	m.initialized = false
}

// Update completes a pending transition, or runs the current scene.
func (m *Manager) Update(dt float64) {
	if m.transitioning {
		m.swap()
		return
	}
	if m.current == nil {
		return
	}
	if !m.initialized {
		m.current.SetupObjects()
		m.initialized = true
	}
	m.current.Update(dt)
}

func (m *Manager) swap() {
	from := m.currentType
	if m.current != nil {
		m.current.Finalize()
		m.current = nil
	}

	next, ok := m.factory.Create(m.pendingType, m.objects)
	if !ok {
		m.fatal("scene factory produced no scene", zap.String("type", string(m.pendingType)))
	}
	m.current = next
	m.currentType = m.pendingType
	m.activation = uuid.New()
	m.transitioning = false

	m.log.Info("scene changed",
		zap.String("from", string(from)),
		zap.String("to", string(m.currentType)),
		zap.String("scene", next.Name()),
		zap.String("activation", m.activation.String()))

	if m.onEnd != nil {
		m.onEnd(m.currentType)
	}
}

// Draw renders the current scene once it has been set up.
func (m *Manager) Draw(screen *ebiten.Image) {
	if m.transitioning || !m.initialized || m.current == nil {
		return
	}
	m.current.Draw(screen)
}

// FlushPendingDestroys frees objects destroyed during this frame. Call it
// once per frame, after Draw.
func (m *Manager) FlushPendingDestroys() {
	if m.current == nil {
		return
	}
	m.objects.FlushDestroyQueue()
}

// Dispose finalizes the current scene and drops the factory and hooks.
func (m *Manager) Dispose() {
	if m.current != nil {
		m.current.Finalize()
		m.current = nil
	}
	m.factory = nil
	m.onBegin = nil
	m.onEnd = nil
	m.transitioning = false
	m.initialized = false
}

// State returns the machine's persistent state.
func (m *Manager) State() state.Phase {
	switch {
	case m.transitioning:
		return state.PhaseTransitionPending
	case m.current != nil:
		return state.PhaseIdle
	default:
		return state.PhaseUninitialized
	}
}

func (m *Manager) Current() Scene           { return m.current }
func (m *Manager) CurrentType() Type        { return m.currentType }
func (m *Manager) PendingType() Type        { return m.pendingType }
func (m *Manager) Transitioning() bool      { return m.transitioning }
func (m *Manager) Initialized() bool        { return m.initialized }
func (m *Manager) Activation() uuid.UUID    { return m.activation }
func (m *Manager) Objects() *entity.Manager { return m.objects }

func (m *Manager) fatal(msg string, fields ...zap.Field) {
	m.log.Error(msg, fields...)
	panic(fmt.Sprintf("scene: %s", msg))
}
