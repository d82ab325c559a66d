package bump

import "sort"

// Collision is one resolved contact between the moving item and another item
// of the world. Collisions are created by Project and never mutated
// afterwards, except for Slide and Bounce which are filled in by the
// response of the same name.
type Collision[I comparable] struct {
	Contact

	Item  I
	Other I

	// Type is the response name the filter chose for this pair.
	Type string

	// Slide is the adjusted goal computed by the slide response.
	Slide Vector
	// Bounce is the reflected goal computed by the bounce response.
	Bounce Vector
}

// sortByTiAndDistance orders collisions nearest first: ascending time of
// impact, ties broken by the squared center distance between the item and
// each candidate. This keeps simultaneous contacts deterministic.
func sortByTiAndDistance[I comparable](cols []Collision[I]) {
	sort.Slice(cols, func(i, j int) bool {
		a, b := &cols[i], &cols[j]
		if a.TI == b.TI {
			return a.ItemRect.SquareDistance(a.OtherRect) < b.ItemRect.SquareDistance(b.OtherRect)
		}
		return a.TI < b.TI
	})
}

// SegmentInfo describes one item crossed by a segment query: the fractions
// where the segment enters and leaves the item's rect, clamped to [0,1], and
// the corresponding world coordinates.
type SegmentInfo[I comparable] struct {
	Item     I
	P1, P2   Vector
	TI1, TI2 float64

	// weight orders results along the infinite line through the segment, so
	// items whose clamped fractions coincide still sort front to back.
	weight float64
}

func sortByWeight[I comparable](infos []SegmentInfo[I]) {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].weight < infos[j].weight
	})
}
