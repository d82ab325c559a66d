package bump

import "math"

// deltaError is the tolerance used for containment and time-of-impact
// comparisons. Points exactly on a rectangle border are treated as outside.
const deltaError = 1e-10

// Rect is an axis-aligned rectangle: top-left corner plus positive extents.
// It is a value type; the world copies rects, it never shares them.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vector {
	return Vector{r.X + r.W/2, r.Y + r.H/2}
}

// NearestCorner returns the corner of r closest to p, picking per axis
// whichever of the two edges minimizes the absolute distance.
func (r Rect) NearestCorner(p Vector) Vector {
	return Vector{
		nearest(p.X, r.X, r.X+r.W),
		nearest(p.Y, r.Y, r.Y+r.H),
	}
}

// Diff returns the Minkowski difference of the two rects, which is another
// rect. It contains the origin exactly when r and other overlap.
func (r Rect) Diff(other Rect) Rect {
	return Rect{
		other.X - r.X - r.W,
		other.Y - r.Y - r.H,
		r.W + other.W,
		r.H + other.H,
	}
}

// ContainsPoint reports whether p lies strictly inside r. Points on the
// border are outside.
func (r Rect) ContainsPoint(p Vector) bool {
	return p.X-r.X > deltaError && p.Y-r.Y > deltaError &&
		r.X+r.W-p.X > deltaError && r.Y+r.H-p.Y > deltaError
}

// Intersects reports whether the two rects overlap. Rects that merely touch
// along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// SquareDistance returns the squared distance between the centers of the
// two rects.
func (r Rect) SquareDistance(other Rect) float64 {
	dx := r.X - other.X + (r.W-other.W)/2
	dy := r.Y - other.Y + (r.H-other.H)/2
	return dx*dx + dy*dy
}

// SegmentIntersectionIndices clips the segment p1->p2 against r, starting
// from the parametric bounds [ti1, ti2]. It is a generalized implementation
// of the Liang-Barsky algorithm which also returns the normals of the sides
// where the segment enters (n1) and exits (n2).
//
// ok is false when the segment never touches r within the given bounds.
// The normals are only guaranteed to be accurate when the initial bounds
// are unbounded (-math.MaxFloat64, math.MaxFloat64).
func (r Rect) SegmentIntersectionIndices(p1, p2 Vector, ti1, ti2 float64) (_, _ float64, n1, n2 Vector, ok bool) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	for side := 1; side <= 4; side++ {
		var nx, ny, p, q float64
		switch side {
		case 1: // left
			nx, ny, p, q = -1, 0, -dx, p1.X-r.X
		case 2: // right
			nx, ny, p, q = 1, 0, dx, r.X+r.W-p1.X
		case 3: // top
			nx, ny, p, q = 0, -1, -dy, p1.Y-r.Y
		case 4: // bottom
			nx, ny, p, q = 0, 1, dy, r.Y+r.H-p1.Y
		}

		if p == 0 {
			// Segment parallel to this side and starting outside of it.
			if q <= 0 {
				return 0, 0, Vector{}, Vector{}, false
			}
			continue
		}

		t := q / p
		if p < 0 { // entering
			if t > ti2 {
				return 0, 0, Vector{}, Vector{}, false
			}
			if t > ti1 {
				ti1, n1 = t, Vector{nx, ny}
			}
		} else { // exiting
			if t < ti1 {
				return 0, 0, Vector{}, Vector{}, false
			}
			if t < ti2 {
				ti2, n2 = t, Vector{nx, ny}
			}
		}
	}

	return ti1, ti2, n1, n2, true
}

// Contact is the geometric result of a single swept test between two rects.
// The World wraps it into a Collision together with the item identities.
type Contact struct {
	// Move is the attempted displacement (goal minus start).
	Move Vector
	// Normal is the unit, axis-aligned surface normal at the touch point.
	// It is the zero vector when the rects started out overlapping while
	// moving apart could not be resolved on a single axis.
	Normal Vector
	// Touch is the position ItemRect can reach before penetrating OtherRect.
	Touch Vector

	ItemRect  Rect
	OtherRect Rect

	// Overlaps reports whether the rects were already overlapping at the
	// start of the sweep.
	Overlaps bool
	// TI is the time of impact in [0,1] along Move. When Overlaps is true it
	// holds the negative penetration area instead, so that deeper overlaps
	// sort first.
	TI float64
}

// DetectCollision sweeps itemRect towards goal against the stationary
// otherRect. ok is false when the motion never makes contact; the returned
// Contact then carries TI=1.
//
// The test reduces to clipping the motion segment against the Minkowski
// difference of the two rects.
func DetectCollision(itemRect, otherRect Rect, goal Vector) (Contact, bool) {
	move := goal.Sub(Vector{itemRect.X, itemRect.Y})
	diff := itemRect.Diff(otherRect)

	contact := Contact{
		Move:      move,
		ItemRect:  itemRect,
		OtherRect: otherRect,
		TI:        1,
	}

	if diff.ContainsPoint(Vector{}) {
		// Item was already intersecting other.
		corner := diff.NearestCorner(Vector{})
		wi := math.Min(itemRect.W, math.Abs(corner.X))
		hi := math.Min(itemRect.H, math.Abs(corner.Y))
		contact.TI = -wi * hi // negative area of intersection
		contact.Overlaps = true
	} else {
		ti1, ti2, n1, _, ok := diff.SegmentIntersectionIndices(Vector{}, move, -math.MaxFloat64, math.MaxFloat64)

		// Item tunnels into other. The epsilon on ti1-ti2 skips the
		// degenerate case of a rect passing exactly through a corner.
		if !ok || ti1 >= 1 ||
			math.Abs(ti1-ti2) < deltaError ||
			(ti1+deltaError <= 0 && !(ti1 == 0 && ti2 > 0)) {
			return contact, false
		}
		contact.TI = ti1
		contact.Normal = n1
	}

	if !contact.Overlaps {
		contact.Touch = Vector{itemRect.X + move.X*contact.TI, itemRect.Y + move.Y*contact.TI}
		return contact, true
	}

	if move.X == 0 && move.Y == 0 {
		// Intersecting and not moving: push out along the shortest axis.
		corner := diff.NearestCorner(Vector{})
		if math.Abs(corner.X) < math.Abs(corner.Y) {
			corner.Y = 0
		} else {
			corner.X = 0
		}
		contact.Normal = Vector{sign(corner.X), sign(corner.Y)}
		contact.Touch = Vector{itemRect.X + corner.X, itemRect.Y + corner.Y}
		return contact, true
	}

	// Intersecting and moving: the escape point is where the reverse of the
	// motion leaves the difference rect.
	ti1, _, n1, _, ok := diff.SegmentIntersectionIndices(Vector{}, move, -math.MaxFloat64, 1)
	if !ok {
		return contact, false
	}
	contact.Normal = n1
	contact.Touch = Vector{itemRect.X + move.X*ti1, itemRect.Y + move.Y*ti1}
	return contact, true
}

func assertIsRect(r Rect) {
	if r.W <= 0 || r.H <= 0 {
		panic("bump: rect extents must be positive")
	}
}
