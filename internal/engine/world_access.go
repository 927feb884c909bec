package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Input is the player intent for the current frame, filled in by whichever
// front end is running.
type Input struct {
	Left  bool
	Right bool
	Jump  bool
	Down  bool
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	Input() Input
	// Destroy removes g at the end of the current step.
	Destroy(g *GameObject)
	// Teleport moves g's body to pos. Must not be called from a collision
	// callback.
	Teleport(g *GameObject, pos rl.Vector2)
	AddScore(points int)
}
