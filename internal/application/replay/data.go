package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f" msgpack:"f"`                       // Frame number
	L  bool `json:"l,omitempty" msgpack:"l,omitempty"`   // Left
	R  bool `json:"r,omitempty" msgpack:"r,omitempty"`   // Right
	J  bool `json:"j,omitempty" msgpack:"j,omitempty"`   // Jump held
	JP bool `json:"jp,omitempty" msgpack:"jp,omitempty"` // JumpPressed
	JR bool `json:"jr,omitempty" msgpack:"jr,omitempty"` // JumpReleased
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version" msgpack:"version"`
	Stage     string       `json:"stage" msgpack:"stage"`
	StartTime string       `json:"startTime" msgpack:"startTime"`
	FrameDt   float64      `json:"frameDt" msgpack:"frameDt"` // Seconds per recorded frame
	Frames    []FrameInput `json:"frames" msgpack:"frames"`
}
