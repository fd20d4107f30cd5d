package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display DisplayConfig   `json:"display" toml:"display"`
	Physics PhysicsSettings `json:"physics" toml:"physics"`
	Session SessionConfig   `json:"session" toml:"session"`
	Camera  CameraConfig    `json:"camera" toml:"camera"`
}

type DisplayConfig struct {
	ScreenWidth   int `json:"screenWidth" toml:"screenWidth"`
	ScreenHeight  int `json:"screenHeight" toml:"screenHeight"`
	Scale         int `json:"scale" toml:"scale"`
	Framerate     int `json:"framerate" toml:"framerate"`
	PixelsPerUnit int `json:"pixelsPerUnit" toml:"pixelsPerUnit"` // Screen pixels per world unit (one tile)
}

// ViewSize returns the visible area in world units
func (d DisplayConfig) ViewSize() (w, h float64) {
	if d.PixelsPerUnit <= 0 {
		return float64(d.ScreenWidth), float64(d.ScreenHeight)
	}
	return float64(d.ScreenWidth) / float64(d.PixelsPerUnit), float64(d.ScreenHeight) / float64(d.PixelsPerUnit)
}

type PhysicsSettings struct {
	FixedStep        float64 `json:"fixedStep" toml:"fixedStep"`               // Seconds per simulation tick
	Gravity          float64 `json:"gravity" toml:"gravity"`                   // World gravity magnitude, applied to patrol actors
	MaxTicksPerFrame int     `json:"maxTicksPerFrame" toml:"maxTicksPerFrame"` // Caps catch-up after a stall
}

type SessionConfig struct {
	StartStage string `json:"startStage" toml:"startStage"`
	StartTime  int    `json:"startTime" toml:"startTime"` // Seconds on the level timer
	TotalLives int    `json:"totalLives" toml:"totalLives"`
}

type CameraConfig struct {
	FollowTime        float64 `json:"followTime" toml:"followTime"`
	AllowBacktracking bool    `json:"allowBacktracking" toml:"allowBacktracking"`
}
