// Package scene defines the Scene interface for editor screens.
//
// Each screen (loading, rig editor) implements the Scene interface to
// handle its own update logic and rendering.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to close the editor normally.
var ErrQuit = errors.New("quit")

// Scene represents an editor screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state.
	// dt is the delta time in seconds (1/TPS).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns ErrQuit to exit cleanly, any other error to terminate with it.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including on quit.
	OnExit()
}
