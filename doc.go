// Package bump is a continuous collision detection and response engine for
// axis-aligned rectangles, intended for kinematic movement in tile-ish 2D
// games: platformers, top-down shooters, anything where obstacles do not
// rotate and motion is resolved position by position rather than simulated
// with forces.
//
// Items are registered in a World under an opaque, comparable identity
// together with their rect. Moving an item sweeps its rect towards a goal,
// finds the earliest obstructions through a sparse uniform grid, and resolves
// them with a named response: touch stops dead, cross passes through, slide
// follows the obstacle surface and bounce reflects off it. Custom responses
// can be registered by name.
//
//	world := bump.NewWorld[string](64)
//	world.Add("player", bump.Rect{X: 0, Y: 0, W: 16, H: 16})
//	world.Add("wall", bump.Rect{X: 40, Y: 0, W: 16, H: 16})
//
//	actual, cols := world.Move("player", bump.Vector{X: 64, Y: 0}, nil)
//
// A World is not safe for concurrent use; confine it to the goroutine
// running the game update step.
package bump
