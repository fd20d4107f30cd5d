package replay

import (
	"time"

	"github.com/younwookim/platformer/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return system.InputState{
		Left:         fi.L,
		Right:        fi.R,
		Jump:         fi.J,
		JumpPressed:  fi.JP,
		JumpReleased: fi.JR,
	}, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Stage returns the stage the replay was recorded on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// FrameDt returns the recorded frame length, defaulting to 60 FPS
func (r *Replayer) FrameDt() float64 {
	if r.data.FrameDt <= 0 {
		return 1.0 / 60.0
	}
	return r.data.FrameDt
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// FromInput converts one frame of sampled input into its recorded form
func FromInput(frame int, in system.InputState) FrameInput {
	return FrameInput{
		F:  frame,
		L:  in.Left,
		R:  in.Right,
		J:  in.Jump,
		JP: in.JumpPressed,
		JR: in.JumpReleased,
	}
}

// CreateTestReplayData creates replay data for testing: a player holding right
func CreateTestReplayData(frames int, right bool) ReplayData {
	data := ReplayData{
		Version:   "1.0",
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		FrameDt:   1.0 / 60.0,
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F: i,
			R: right,
		}
	}

	return data
}
