package bump

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// cellCoord addresses a grid cell. Cell coordinates are 1-based: world
// coordinate 0 falls in cell 1, cell coordinates go negative left/above the
// origin.
type cellCoord struct {
	X, Y int
}

// cell holds the set of items whose rects currently overlap it. Cells are
// created lazily and removed as soon as they become empty.
type cell[I comparable] struct {
	items mapset.Set[I]
}

func newCell[I comparable]() *cell[I] {
	return &cell[I]{items: mapset.New[I]()}
}

func toCell(cellSize, x, y float64) (cx, cy int) {
	return int(math.Floor(x/cellSize)) + 1, int(math.Floor(y/cellSize)) + 1
}

func toWorld(cellSize float64, cx, cy int) (x, y float64) {
	return float64(cx-1) * cellSize, float64(cy-1) * cellSize
}

// toCellRect returns the inclusive range of cells covering r as its top-left
// cell plus the number of columns and rows.
func toCellRect(cellSize float64, r Rect) (cx, cy, cw, ch int) {
	cx, cy = toCell(cellSize, r.X, r.Y)
	cr := int(math.Ceil((r.X + r.W) / cellSize))
	cb := int(math.Ceil((r.Y + r.H) / cellSize))
	return cx, cy, cr - cx + 1, cb - cy + 1
}

// traverseInitStep primes one axis of the traversal: the cell step direction,
// the t advance per cell, and the t of the first cell boundary crossing.
//
// Based on "A Fast Voxel Traversal Algorithm for Ray Tracing", by John
// Amanatides and Andrew Woo - http://www.cse.yorku.ca/~amana/research/grid.pdf
func traverseInitStep(cellSize float64, ct int, t1, t2 float64) (step int, d, t float64) {
	v := t2 - t1
	if v > 0 {
		return 1, cellSize / v, (float64(ct)*cellSize - t1) / v
	}
	if v < 0 {
		return -1, -cellSize / v, (float64(ct-1)*cellSize - t1) / v
	}
	return 0, math.MaxFloat64, math.MaxFloat64
}

// traverse calls visit once for every cell the segment p1->p2 passes through,
// in order from the start cell to the destination cell. When the segment goes
// exactly through a grid corner, both cells sharing that corner are visited.
func traverse(cellSize float64, p1, p2 Vector, visit func(cx, cy int)) {
	cx1, cy1 := toCell(cellSize, p1.X, p1.Y)
	cx2, cy2 := toCell(cellSize, p2.X, p2.Y)

	stepX, dx, tx := traverseInitStep(cellSize, cx1, p1.X, p2.X)
	stepY, dy, ty := traverseInitStep(cellSize, cy1, p1.Y, p2.Y)

	cx, cy := cx1, cy1
	visit(cx, cy)

	// The textbook exit condition can loop forever when the segment ends on a
	// cell boundary, so iterate only while next to the last cell and visit it
	// explicitly afterwards.
	for intAbs(cx-cx2)+intAbs(cy-cy2) > 1 {
		if tx < ty {
			tx, cx = tx+dx, cx+stepX
			visit(cx, cy)
		} else {
			// Include both cells when the segment goes through a corner.
			if tx == ty {
				visit(cx+stepX, cy)
			}
			ty, cy = ty+dy, cy+stepY
			visit(cx, cy)
		}
	}

	if cx != cx2 || cy != cy2 {
		visit(cx2, cy2)
	}
}

func intAbs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
