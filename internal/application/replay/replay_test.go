package replay

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenekit/internal/domain/input"
)

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Scene:   "title",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, FI: true},
			{F: 2, OK: true},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	in, ok := replayer.Next()
	require.True(t, ok)
	assert.True(t, in.Left)
	assert.False(t, in.Right)
	assert.Equal(t, 1, replayer.CurrentFrame())

	// Frame 1
	in, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, in.Right)
	assert.True(t, in.Fire)

	// Frame 2
	in = replayer.GetInput()
	assert.True(t, in.Confirm)
	assert.True(t, replayer.Done())

	// Past the end
	in, ok = replayer.Next()
	assert.False(t, ok)
	assert.Equal(t, input.State{}, in)
	assert.Equal(t, input.State{}, replayer.GetInput())
	assert.Equal(t, 3, replayer.TotalFrames())
	assert.Equal(t, "title", replayer.Scene())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(ReplayData{Version: Version, Frames: []FrameInput{{F: 0, U: true}}})

	replayer.GetInput()
	require.True(t, replayer.Done())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.True(t, replayer.GetInput().Up)
}

type script []input.State

func (s *script) GetInput() input.State {
	if len(*s) == 0 {
		return input.State{}
	}
	st := (*s)[0]
	*s = (*s)[1:]
	return st
}

func TestRecorder_RoundTrip(t *testing.T) {
	src := &script{{Left: true}, {Cancel: true}, {Down: true, Fire: true}}
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecorder(src, "playing", start)

	var played []input.State
	for i := 0; i < 3; i++ {
		played = append(played, rec.GetInput())
	}

	data := rec.Data()
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "playing", data.Scene)
	assert.Equal(t, "2024-01-01T12:00:00Z", data.StartTime)
	require.Len(t, data.Frames, 3)
	assert.Equal(t, 2, data.Frames[2].F)

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)

	replayer := NewReplayer(*decoded)
	for i, want := range played {
		assert.Equal(t, want, replayer.GetInput(), "frame %d", i)
	}
}

func TestRecorder_NilSource(t *testing.T) {
	rec := NewRecorder(nil, "title", time.Now())
	assert.Equal(t, input.State{}, rec.GetInput())
	assert.Len(t, rec.Data().Frames, 1)
}

func TestRecorder_DataIsCopy(t *testing.T) {
	rec := NewRecorder(input.Fixed{Left: true}, "title", time.Now())
	rec.GetInput()

	data := rec.Data()
	data.Frames[0].L = false

	assert.True(t, rec.Data().Frames[0].L)
}

func TestSaveAndLoadReplay(t *testing.T) {
	rec := NewRecorder(input.Fixed{Right: true}, "title", time.Now())
	rec.GetInput()
	rec.GetInput()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, data.Frames, 2)
	assert.True(t, data.Frames[1].R)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	_, err = Decode(strings.NewReader("{"))
	assert.ErrorContains(t, err, "failed to decode replay")

	_, err = Decode(strings.NewReader(`{"version":"1.0","frames":[]}`))
	assert.ErrorContains(t, err, "unsupported replay version")
}
