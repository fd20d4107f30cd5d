package playing

import (
	"fmt"
	"time"

	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/system"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder for a run starting on stage
func NewRecorder(stage string, frameDt float64) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   "2.0",
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			FrameDt:   frameDt,
			Frames:    make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(input system.InputState) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, replay.FromInput(r.frame, input))
	r.frame++
}

// Save writes the replay data to a file; .msgpack files are binary
func (r *Recorder) Save(filename string) error {
	return replay.SaveReplay(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

// ReplaySource plays recorded frames back as scene input. Once the frames
// run out it reports idle input.
type ReplaySource struct {
	replayer *replay.Replayer
	done     bool
}

// NewReplaySource wraps a replayer as an InputSource
func NewReplaySource(r *replay.Replayer) *ReplaySource {
	return &ReplaySource{replayer: r}
}

// GetInput returns the next recorded frame
func (s *ReplaySource) GetInput() system.InputState {
	in, ok := s.replayer.GetInput()
	if !ok {
		s.done = true
	}
	return in
}

// Done reports whether every recorded frame has been played
func (s *ReplaySource) Done() bool {
	return s.done || s.replayer.CurrentFrame() >= s.replayer.TotalFrames()
}
