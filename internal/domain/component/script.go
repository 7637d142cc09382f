package component

import (
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"github.com/younwookim/scenekit/internal/domain/entity"
	"go.uber.org/zap"
)

// Script runs a Lua chunk as an Updatable. The chunk may define the globals
// init(), update(dt) and dispose(); each runs with a global `self` table:
//
//	self.name()                 -> string
//	self.position()             -> x, y, z (local)
//	self.set_position(x, y, z)
//	self.translate(dx, dy, dz)
//	self.rotate(degrees)        -- around Z
//	self.set_active(bool)       -- toggles the owning object
//	self.destroy()
//
// A Lua error logs and disables the component for good. A script added
// inactive runs init() on its first update after being enabled.
type Script struct {
	entity.Base
	Name   string
	Source string

	vm      *lua.LState
	log     *zap.Logger
	started bool
	failed  bool
}

// NewScript creates a script component. Name is used in log lines only.
func NewScript(name, source string, log *zap.Logger) *Script {
	if log == nil {
		log = zap.NewNop()
	}
	return &Script{Name: name, Source: source, log: log}
}

func (s *Script) Initialize() {
	s.vm = lua.NewState()
	s.vm.SetGlobal("API_VERSION", lua.LNumber(1))
	s.vm.SetGlobal("self", s.selfTable())

	if err := s.vm.DoString(s.Source); err != nil {
		s.fail("load", err)
		return
	}
	if s.Active() {
		s.start()
	}
}

func (s *Script) start() {
	s.started = true
	s.call("init")
}

func (s *Script) Update(dt float64) {
	if !s.started {
		s.start()
	}
	s.call("update", lua.LNumber(dt))
}

func (s *Script) Dispose() {
	if s.vm == nil {
		return
	}
	if s.started {
		s.call("dispose")
	}
	s.vm.Close()
	s.vm = nil
}

// Started reports whether init() has run.
func (s *Script) Started() bool { return s.started }

// Global reads a global variable from the script state, for inspection.
func (s *Script) Global(name string) lua.LValue {
	if s.vm == nil {
		return lua.LNil
	}
	return s.vm.GetGlobal(name)
}

func (s *Script) call(fn string, args ...lua.LValue) {
	if s.vm == nil || s.failed {
		return
	}
	f := s.vm.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return
	}
	if err := s.vm.CallByParam(lua.P{Fn: f, NRet: 0, Protect: true}, args...); err != nil {
		s.fail(fn, err)
	}
}

func (s *Script) fail(stage string, err error) {
	s.log.Error("lua script failed",
		zap.String("script", s.Name),
		zap.String("stage", stage),
		zap.Error(err))
	s.failed = true
	s.SetActive(false)
}

func (s *Script) selfTable() *lua.LTable {
	L := s.vm
	t := L.NewTable()
	L.SetField(t, "name", L.NewFunction(func(L *lua.LState) int {
		name := ""
		if o := s.Owner(); o != nil {
			name = o.Name()
		}
		L.Push(lua.LString(name))
		return 1
	}))
	L.SetField(t, "position", L.NewFunction(func(L *lua.LState) int {
		var p mgl32.Vec3
		if tr := s.Transform(); tr != nil {
			p = tr.LocalPosition()
		}
		L.Push(lua.LNumber(p.X()))
		L.Push(lua.LNumber(p.Y()))
		L.Push(lua.LNumber(p.Z()))
		return 3
	}))
	L.SetField(t, "set_position", L.NewFunction(func(L *lua.LState) int {
		if tr := s.Transform(); tr != nil {
			tr.SetLocalPosition(vec3Args(L))
		}
		return 0
	}))
	L.SetField(t, "translate", L.NewFunction(func(L *lua.LState) int {
		if tr := s.Transform(); tr != nil {
			tr.Translate(vec3Args(L))
		}
		return 0
	}))
	L.SetField(t, "rotate", L.NewFunction(func(L *lua.LState) int {
		deg := float32(L.CheckNumber(1))
		if tr := s.Transform(); tr != nil {
			tr.Rotate(mgl32.QuatRotate(mgl32.DegToRad(deg), entity.AxisForward))
		}
		return 0
	}))
	L.SetField(t, "set_active", L.NewFunction(func(L *lua.LState) int {
		if o := s.Owner(); o != nil {
			o.SetActive(L.ToBool(1))
		}
		return 0
	}))
	L.SetField(t, "destroy", L.NewFunction(func(L *lua.LState) int {
		if o := s.Owner(); o != nil {
			o.OnDestroy()
		}
		return 0
	}))
	return t
}

func vec3Args(L *lua.LState) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(L.OptNumber(1, 0)),
		float32(L.OptNumber(2, 0)),
		float32(L.OptNumber(3, 0)),
	}
}
