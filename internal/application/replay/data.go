package replay

import "github.com/younwookim/scenekit/internal/domain/input"

// Version is written into every recording.
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	OK bool `json:"ok,omitempty"` // Confirm
	X  bool `json:"x,omitempty"`  // Cancel
	FI bool `json:"fi,omitempty"` // Fire
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Scene     string       `json:"scene"` // initial scene type
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

func frameFromState(f int, s input.State) FrameInput {
	return FrameInput{
		F:  f,
		L:  s.Left,
		R:  s.Right,
		U:  s.Up,
		D:  s.Down,
		OK: s.Confirm,
		X:  s.Cancel,
		FI: s.Fire,
	}
}

// State converts the frame back into an input snapshot.
func (fi FrameInput) State() input.State {
	return input.State{
		Left:    fi.L,
		Right:   fi.R,
		Up:      fi.U,
		Down:    fi.D,
		Confirm: fi.OK,
		Cancel:  fi.X,
		Fire:    fi.FI,
	}
}
