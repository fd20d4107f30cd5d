// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformer/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	closed  bool
}

// New creates a new Game with the given initial scene, stepping scenes at
// framerate updates per second (60 when framerate is not positive).
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the current scene once, after the run loop has returned
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// DT returns the delta time passed to scenes
func (g *Game) DT() float64 {
	return g.dt
}
