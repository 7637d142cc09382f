package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Axis(t *testing.T) {
	tests := []struct {
		name  string
		state State
		x, y  int
	}{
		{"idle", State{}, 0, 0},
		{"left", State{Left: true}, -1, 0},
		{"right down", State{Right: true, Down: true}, 1, 1},
		{"opposing cancel", State{Left: true, Right: true, Up: true}, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.state.Axis()
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestFixed(t *testing.T) {
	src := Fixed{Fire: true}
	assert.Equal(t, State{Fire: true}, src.GetInput())
}
