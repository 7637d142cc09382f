package game

import "github.com/younwookim/scenekit/internal/application/scene"

type fadePhase int

const (
	fadeIdle fadePhase = iota
	fadeOut
	fadeIn
)

// Fader darkens the screen over a fixed number of frames before a scene swap
// and lightens it afterwards. It drives the scene manager through the begin
// and end transition hooks: Begin starts the fade out and, once the screen is
// fully dark, hands the target to ready.
type Fader struct {
	frames   int
	progress int
	phase    fadePhase
	target   scene.Type
	ready    func(scene.Type)
}

// NewFader creates a fader. frames <= 0 disables fading: Begin calls ready
// immediately.
func NewFader(frames int, ready func(scene.Type)) *Fader {
	return &Fader{frames: frames, ready: ready}
}

// Begin starts fading out toward t. Ignored while a fade out is running.
func (f *Fader) Begin(t scene.Type) {
	if f.phase == fadeOut {
		return
	}
	if f.frames <= 0 {
		f.notify(t)
		return
	}
	f.phase = fadeOut
	f.target = t
}

// End starts fading in from fully dark.
func (f *Fader) End(scene.Type) {
	if f.frames <= 0 {
		return
	}
	f.phase = fadeIn
	f.progress = f.frames
}

// Update advances the fade by one frame.
func (f *Fader) Update() {
	switch f.phase {
	case fadeOut:
		f.progress++
		if f.progress >= f.frames {
			f.progress = f.frames
			f.phase = fadeIdle
			f.notify(f.target)
		}
	case fadeIn:
		f.progress--
		if f.progress <= 0 {
			f.progress = 0
			f.phase = fadeIdle
		}
	}
}

func (f *Fader) notify(t scene.Type) {
	if f.ready != nil {
		f.ready(t)
	}
}

// Alpha returns the overlay opacity in [0, 1].
func (f *Fader) Alpha() float32 {
	if f.frames <= 0 {
		return 0
	}
	return float32(f.progress) / float32(f.frames)
}

// Fading reports whether a fade is in progress.
func (f *Fader) Fading() bool { return f.phase != fadeIdle }
