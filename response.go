package bump

// Filter decides which response governs a candidate pair during a single
// sweep. Returning the empty string skips the candidate entirely. Filters
// must be deterministic and side-effect free: the world calls them repeatedly
// during recursive continuations of a move.
type Filter[I comparable] func(item, other I) string

// defaultFilter makes everything solid.
func defaultFilter[I comparable](item, other I) string {
	return "slide"
}

// ResponseFunc consumes the nearest collision of a projected move and returns
// the final goal plus the collisions found along any continuation. rect is
// the item's rect at the start of the step; goal is the originally requested
// position.
type ResponseFunc[I comparable] func(world *World[I], col *Collision[I], rect Rect, goal Vector, filter Filter[I]) (Vector, []Collision[I])

// touchResponse stops the item exactly at the contact point. Terminal: no
// continuation, no further collisions.
func touchResponse[I comparable](world *World[I], col *Collision[I], rect Rect, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	return col.Touch, nil
}

// crossResponse lets the item pass through, reporting the contact but never
// blocking motion. It still re-projects towards the goal so that items behind
// the crossed obstacle are discovered.
func crossResponse[I comparable](world *World[I], col *Collision[I], rect Rect, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	return goal, world.Project(col.Item, rect, goal, filter)
}

// slideResponse stops at the contact point on the axis of the collision
// normal and keeps moving towards the goal along the other axis.
func slideResponse[I comparable](world *World[I], col *Collision[I], rect Rect, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	slid := col.Touch
	if col.Move.X != 0 || col.Move.Y != 0 {
		if col.Normal.X == 0 {
			slid.X = goal.X
		} else {
			slid.Y = goal.Y
		}
	}
	col.Slide = slid

	rect.X, rect.Y = col.Touch.X, col.Touch.Y
	return slid, world.Project(col.Item, rect, slid, filter)
}

// bounceResponse reaches the contact point, then mirrors the remaining
// motion across the collision normal.
func bounceResponse[I comparable](world *World[I], col *Collision[I], rect Rect, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	bounced := col.Touch
	if col.Move.X != 0 || col.Move.Y != 0 {
		remaining := goal.Sub(col.Touch)
		if col.Normal.X == 0 {
			remaining.Y = -remaining.Y
		} else {
			remaining.X = -remaining.X
		}
		bounced = col.Touch.Add(remaining)
	}
	col.Bounce = bounced

	rect.X, rect.Y = col.Touch.X, col.Touch.Y
	return bounced, world.Project(col.Item, rect, bounced, filter)
}
