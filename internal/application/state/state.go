package state

// GameState represents the current state of the playing scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateStageClear
	StateGameOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStageClear:
		return "StageClear"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Simulating reports whether the level advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
