// Package scene defines the Scene interface for game screens.
//
// The playing scene is the only screen today; the game loop only depends on
// this interface so title or results screens can be added without touching it.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen driven by the game loop.
type Scene interface {
	// Update advances the scene by one frame of dt seconds.
	// It returns the next scene to switch to, or nil to stay.
	// A non-nil error terminates the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced or the game closes.
	// Recordings are flushed here.
	OnExit()
}
