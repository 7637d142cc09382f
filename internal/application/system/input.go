package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/scenekit/internal/domain/input"
)

// KeyMap binds keys to input.State fields. Any key in a slice triggers the
// field.
type KeyMap struct {
	Left    []ebiten.Key
	Right   []ebiten.Key
	Up      []ebiten.Key
	Down    []ebiten.Key
	Confirm []ebiten.Key
	Cancel  []ebiten.Key
	Fire    []ebiten.Key
}

// DefaultKeyMap uses WASD and the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:    []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:   []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Up:      []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
		Down:    []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Confirm: []ebiten.Key{ebiten.KeyEnter},
		Cancel:  []ebiten.Key{ebiten.KeyEscape},
		Fire:    []ebiten.Key{ebiten.KeySpace},
	}
}

// InputSystem samples the keyboard once per call.
type InputSystem struct {
	keys KeyMap
}

// NewInputSystem creates a new input system
func NewInputSystem(keys KeyMap) *InputSystem {
	return &InputSystem{keys: keys}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() input.State {
	return input.State{
		Left:    anyPressed(s.keys.Left),
		Right:   anyPressed(s.keys.Right),
		Up:      anyPressed(s.keys.Up),
		Down:    anyPressed(s.keys.Down),
		Confirm: anyJustPressed(s.keys.Confirm),
		Cancel:  anyJustPressed(s.keys.Cancel),
		Fire:    anyJustPressed(s.keys.Fire),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Latch samples an input.Source once per frame and hands the same State to
// every reader until Advance is called again. Components in one frame see
// identical input even when the underlying source is a replay stream.
type Latch struct {
	src     input.Source
	current input.State
}

func NewLatch(src input.Source) *Latch {
	return &Latch{src: src}
}

// Advance pulls the next State from the source.
func (l *Latch) Advance() input.State {
	if l.src != nil {
		l.current = l.src.GetInput()
	}
	return l.current
}

func (l *Latch) GetInput() input.State { return l.current }
