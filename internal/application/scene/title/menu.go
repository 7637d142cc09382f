package title

import (
	"github.com/younwookim/scenekit/internal/domain/entity"
	"github.com/younwookim/scenekit/internal/domain/input"
)

// Menu fires OnConfirm or OnCancel on the frame the key is pressed. Only the
// first press counts; later presses are ignored until the scene is rebuilt.
type Menu struct {
	entity.Base
	Input     input.Source
	OnConfirm func()
	OnCancel  func()

	chosen bool
}

func NewMenu(src input.Source, onConfirm, onCancel func()) *Menu {
	return &Menu{Input: src, OnConfirm: onConfirm, OnCancel: onCancel}
}

func (m *Menu) Update(dt float64) {
	if m.chosen || m.Input == nil {
		return
	}
	in := m.Input.GetInput()
	switch {
	case in.Confirm && m.OnConfirm != nil:
		m.chosen = true
		m.OnConfirm()
	case in.Cancel && m.OnCancel != nil:
		m.chosen = true
		m.OnCancel()
	}
}

// Chosen reports whether an option has been taken.
func (m *Menu) Chosen() bool { return m.chosen }
