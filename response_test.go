package bump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Responses operate on a collision plus the original goal; these drive them
// directly with hand-built collisions to pin the continuation geometry.

func TestTouchResponse(t *testing.T) {
	world := NewWorld[string](64)
	col := &Collision[string]{Contact: Contact{
		Touch:  Vector{3, 5},
		Move:   Vector{10, 10},
		Normal: Vector{0, -1},
	}}

	final, cols := touchResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

	require.Equal(t, Vector{3, 5}, final)
	require.Empty(t, cols)
}

func TestCrossResponse(t *testing.T) {
	world := NewWorld[string](64)
	col := &Collision[string]{Contact: Contact{
		Touch:  Vector{3, 5},
		Move:   Vector{10, 10},
		Normal: Vector{0, -1},
	}}

	final, _ := crossResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

	// cross never alters the goal, whatever the collision looked like
	require.Equal(t, Vector{10, 10}, final)
}

func TestSlideResponse(t *testing.T) {
	t.Run("clamps the normal axis, keeps the other", func(t *testing.T) {
		world := NewWorld[string](64)
		col := &Collision[string]{Contact: Contact{
			Touch:  Vector{3, 5},
			Move:   Vector{10, 10},
			Normal: Vector{0, -1},
		}}

		final, _ := slideResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

		require.Equal(t, Vector{10, 5}, final)
		require.Equal(t, Vector{10, 5}, col.Slide)
	})

	t.Run("vertical normal clamps x instead", func(t *testing.T) {
		world := NewWorld[string](64)
		col := &Collision[string]{Contact: Contact{
			Touch:  Vector{3, 5},
			Move:   Vector{10, 10},
			Normal: Vector{-1, 0},
		}}

		final, _ := slideResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

		require.Equal(t, Vector{3, 10}, final)
	})

	t.Run("no motion stays at the touch point", func(t *testing.T) {
		world := NewWorld[string](64)
		col := &Collision[string]{Contact: Contact{
			Touch:  Vector{3, 5},
			Normal: Vector{0, -1},
		}}

		final, _ := slideResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

		require.Equal(t, Vector{3, 5}, final)
	})
}

func TestBounceResponse(t *testing.T) {
	t.Run("mirrors the remaining motion across the normal", func(t *testing.T) {
		world := NewWorld[string](64)
		col := &Collision[string]{Contact: Contact{
			Touch:  Vector{3, 5},
			Move:   Vector{10, 10},
			Normal: Vector{0, -1},
		}}

		final, _ := bounceResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

		// remaining delta is (7,5); y reflects, x continues
		require.Equal(t, Vector{10, 0}, final)
		require.Equal(t, Vector{10, 0}, col.Bounce)
	})

	t.Run("no motion stays at the touch point", func(t *testing.T) {
		world := NewWorld[string](64)
		col := &Collision[string]{Contact: Contact{
			Touch:  Vector{3, 5},
			Normal: Vector{0, -1},
		}}

		final, _ := bounceResponse(world, col, Rect{0, 0, 1, 1}, Vector{10, 10}, nil)

		require.Equal(t, Vector{3, 5}, final)
		require.Equal(t, Vector{3, 5}, col.Bounce)
	})
}

func TestSortByTiAndDistance(t *testing.T) {
	item := Rect{0, 0, 10, 10}
	cols := []Collision[string]{
		{Contact: Contact{TI: 0.5, ItemRect: item, OtherRect: Rect{0, 10, 10, 10}}, Other: "far"},
		{Contact: Contact{TI: 0.2, ItemRect: item, OtherRect: Rect{50, 50, 10, 10}}, Other: "first"},
		{Contact: Contact{TI: 0.5, ItemRect: item, OtherRect: Rect{0, 4, 10, 10}}, Other: "close"},
	}

	sortByTiAndDistance(cols)

	require.Equal(t, "first", cols[0].Other)
	require.Equal(t, "close", cols[1].Other)
	require.Equal(t, "far", cols[2].Other)
}
