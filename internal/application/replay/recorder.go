package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/scenekit/internal/domain/input"
)

// Recorder wraps a live source and keeps every State it hands out.
type Recorder struct {
	src  input.Source
	data ReplayData
}

// NewRecorder starts a recording for a session beginning in scene.
func NewRecorder(src input.Source, scene string, now time.Time) *Recorder {
	return &Recorder{
		src: src,
		data: ReplayData{
			Version:   Version,
			Scene:     scene,
			StartTime: now.UTC().Format(time.RFC3339),
		},
	}
}

func (r *Recorder) GetInput() input.State {
	var s input.State
	if r.src != nil {
		s = r.src.GetInput()
	}
	r.data.Frames = append(r.data.Frames, frameFromState(len(r.data.Frames), s))
	return s
}

// Data returns a copy of the recording so far
func (r *Recorder) Data() ReplayData {
	d := r.data
	d.Frames = append([]FrameInput(nil), r.data.Frames...)
	return d
}

// Encode writes the recording as JSON
func (r *Recorder) Encode(w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Save writes the recording to filename
func (r *Recorder) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := r.Encode(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
