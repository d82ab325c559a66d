package bump

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"
)

// DefaultCellSize is the grid cell size used when NewWorld is given zero.
// It works well when most items are smaller than 64x64 world units.
const DefaultCellSize = 64.0

// maxResolveIterations bounds the collision resolution loop of Check.
// Well-formed worlds resolve a move in a handful of steps; degenerate
// geometry could otherwise slide or bounce between obstacles forever.
const maxResolveIterations = 64

// NotFoundError is the panic value raised when a filter or caller references
// a response name that was never registered.
type NotFoundError struct {
	Response string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bump: unknown collision response %q", e.Response)
}

// World owns the spatial grid, the item rects, and the response registry.
// Items are opaque identities: the world only compares and hashes them.
//
// A World must be confined to a single goroutine, or all access serialized
// externally. Consistency relies solely on cell membership being kept in
// sync with each item's rect on every mutation.
type World[I comparable] struct {
	cellSize  float64
	cells     map[cellCoord]*cell[I]
	rects     map[I]Rect
	responses map[string]ResponseFunc[I]
}

// NewWorld creates an empty world with the given grid cell size. A cell size
// of zero selects DefaultCellSize; a negative one is a configuration error.
// The touch, cross, slide and bounce responses come pre-registered.
func NewWorld[I comparable](cellSize float64) *World[I] {
	if cellSize < 0 {
		panic("bump: cell size must be positive")
	}
	if cellSize == 0 {
		cellSize = DefaultCellSize
	}

	world := &World[I]{
		cellSize:  cellSize,
		cells:     map[cellCoord]*cell[I]{},
		rects:     map[I]Rect{},
		responses: map[string]ResponseFunc[I]{},
	}

	world.AddResponse("touch", touchResponse[I])
	world.AddResponse("cross", crossResponse[I])
	world.AddResponse("slide", slideResponse[I])
	world.AddResponse("bounce", bounceResponse[I])

	return world
}

func (w *World[I]) CellSize() float64 {
	return w.cellSize
}

// ToCell returns the coordinates of the grid cell containing the world
// position x, y.
func (w *World[I]) ToCell(x, y float64) (cx, cy int) {
	return toCell(w.cellSize, x, y)
}

// ToWorld returns the world position of the top-left corner of cell cx, cy.
func (w *World[I]) ToWorld(cx, cy int) (x, y float64) {
	return toWorld(w.cellSize, cx, cy)
}

// Add registers item with the given rect and inserts it into every cell the
// rect overlaps. Adding the same item twice is a usage error.
func (w *World[I]) Add(item I, rect Rect) {
	if _, ok := w.rects[item]; ok {
		panic(fmt.Sprintf("bump: item %v added to the world twice", item))
	}
	assertIsRect(rect)

	w.rects[item] = rect

	cl, ct, cw, ch := toCellRect(w.cellSize, rect)
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			w.addItemToCell(item, cx, cy)
		}
	}
}

// Update changes the rect of an already added item, diffing the covered cell
// ranges so the item is only removed from cells it left and added to cells
// it entered.
func (w *World[I]) Update(item I, rect Rect) {
	prev := w.GetRect(item)
	assertIsRect(rect)
	if prev == rect {
		return
	}

	cl1, ct1, cw1, ch1 := toCellRect(w.cellSize, prev)
	cl2, ct2, cw2, ch2 := toCellRect(w.cellSize, rect)

	if cl1 != cl2 || ct1 != ct2 || cw1 != cw2 || ch1 != ch2 {
		cr1, cb1 := cl1+cw1-1, ct1+ch1-1
		cr2, cb2 := cl2+cw2-1, ct2+ch2-1

		for cy := ct1; cy <= cb1; cy++ {
			rowOut := cy < ct2 || cy > cb2
			for cx := cl1; cx <= cr1; cx++ {
				if rowOut || cx < cl2 || cx > cr2 {
					w.removeItemFromCell(item, cx, cy)
				}
			}
		}
		for cy := ct2; cy <= cb2; cy++ {
			rowOut := cy < ct1 || cy > cb1
			for cx := cl2; cx <= cr2; cx++ {
				if rowOut || cx < cl1 || cx > cr1 {
					w.addItemToCell(item, cx, cy)
				}
			}
		}
	}

	w.rects[item] = rect
}

// Remove deletes the item from the world and from every cell it occupied.
func (w *World[I]) Remove(item I) {
	rect := w.GetRect(item)
	delete(w.rects, item)

	cl, ct, cw, ch := toCellRect(w.cellSize, rect)
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			w.removeItemFromCell(item, cx, cy)
		}
	}
}

// GetRect returns the current rect of an added item.
func (w *World[I]) GetRect(item I) Rect {
	rect, ok := w.rects[item]
	if !ok {
		panic(fmt.Sprintf("bump: item %v must be added to the world first", item))
	}
	return rect
}

func (w *World[I]) HasItem(item I) bool {
	_, ok := w.rects[item]
	return ok
}

func (w *World[I]) Items() []I {
	items := make([]I, 0, len(w.rects))
	for item := range w.rects {
		items = append(items, item)
	}
	return items
}

func (w *World[I]) CountItems() int {
	return len(w.rects)
}

// CountCells returns the number of non-empty grid cells.
func (w *World[I]) CountCells() int {
	return len(w.cells)
}

// AddResponse registers a response under the given name, overwriting any
// previous registration.
func (w *World[I]) AddResponse(name string, response ResponseFunc[I]) {
	w.responses[name] = response
}

func (w *World[I]) responseByName(name string) ResponseFunc[I] {
	response, ok := w.responses[name]
	if !ok {
		panic(&NotFoundError{Response: name})
	}
	return response
}

// Project sweeps a rect belonging to item towards goal and returns every
// contact along the way, nearest first. The item itself is never a
// candidate, and pairs the filter skips are never tested. Project performs
// no motion: it only reports what a move would hit.
func (w *World[I]) Project(item I, rect Rect, goal Vector, filter Filter[I]) []Collision[I] {
	assertIsRect(rect)
	if filter == nil {
		filter = defaultFilter[I]
	}

	visited := mapset.New[I]()
	visited.Put(item)

	// Broad phase: every cell covered by the union of the rect at its start
	// and goal positions. A cell raster of the swept quad would visit fewer
	// cells, but the bounding rect is enough in practice.
	tl := math.Min(goal.X, rect.X)
	tt := math.Min(goal.Y, rect.Y)
	tr := math.Max(goal.X, rect.X) + rect.W
	tb := math.Max(goal.Y, rect.Y) + rect.H

	cl, ct, cw, ch := toCellRect(w.cellSize, Rect{tl, tt, tr - tl, tb - tt})

	var cols []Collision[I]
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			c, ok := w.cells[cellCoord{cx, cy}]
			if !ok {
				continue
			}
			c.items.Each(func(other I) {
				if visited.Has(other) {
					return
				}
				visited.Put(other)

				responseName := filter(item, other)
				if responseName == "" {
					return
				}

				contact, hit := DetectCollision(rect, w.rects[other], goal)
				if !hit {
					return
				}
				cols = append(cols, Collision[I]{
					Contact: contact,
					Item:    item,
					Other:   other,
					Type:    responseName,
				})
			})
		}
	}

	sortByTiAndDistance(cols)
	return cols
}

// Check resolves a move of item towards goal without updating the world: it
// projects the motion, hands the nearest collision to its response, and
// repeats with the continuation the response returns. Every obstacle is
// visited at most once per move. It returns the final position and the
// collisions encountered, in resolution order.
func (w *World[I]) Check(item I, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	if filter == nil {
		filter = defaultFilter[I]
	}

	visited := mapset.New[I]()
	visited.Put(item)
	visitedFilter := func(itm, other I) string {
		if visited.Has(other) {
			return ""
		}
		return filter(itm, other)
	}

	rect := w.GetRect(item)

	var cols []Collision[I]
	projected := w.Project(item, rect, goal, filter)

	for iter := 0; len(projected) > 0 && iter < maxResolveIterations; iter++ {
		col := projected[0]
		visited.Put(col.Other)
		cols = append(cols, col)

		response := w.responseByName(col.Type)
		goal, projected = response(w, &cols[len(cols)-1], rect, goal, visitedFilter)
	}

	return goal, cols
}

// Move is Check plus updating the item to the resolved position, keeping its
// extents.
func (w *World[I]) Move(item I, goal Vector, filter Filter[I]) (Vector, []Collision[I]) {
	actual, cols := w.Check(item, goal, filter)
	rect := w.rects[item]
	w.Update(item, Rect{actual.X, actual.Y, rect.W, rect.H})
	return actual, cols
}

// QueryRect returns the items whose rects intersect the given rect. filter
// may be nil to accept everything. Order is unspecified.
func (w *World[I]) QueryRect(rect Rect, filter func(item I) bool) []I {
	assertIsRect(rect)

	cl, ct, cw, ch := toCellRect(w.cellSize, rect)

	var items []I
	w.eachItemInCellRect(cl, ct, cw, ch, func(item I) {
		if filter != nil && !filter(item) {
			return
		}
		if rect.Intersects(w.rects[item]) {
			items = append(items, item)
		}
	})
	return items
}

// QueryPoint returns the items whose rects contain the given point. Items
// whose border merely touches the point are not included.
func (w *World[I]) QueryPoint(p Vector, filter func(item I) bool) []I {
	cx, cy := w.ToCell(p.X, p.Y)

	var items []I
	w.eachItemInCellRect(cx, cy, 1, 1, func(item I) {
		if filter != nil && !filter(item) {
			return
		}
		if w.rects[item].ContainsPoint(p) {
			items = append(items, item)
		}
	})
	return items
}

// QuerySegment returns the items touched by the segment p1->p2, in order of
// first contact.
func (w *World[I]) QuerySegment(p1, p2 Vector, filter func(item I) bool) []I {
	infos := w.segmentInfos(p1, p2, filter)
	items := make([]I, len(infos))
	for i := range infos {
		items[i] = infos[i].Item
	}
	return items
}

// QuerySegmentWithCoords is QuerySegment returning, for every touched item,
// the fractions and world coordinates where the segment enters and leaves
// its rect.
func (w *World[I]) QuerySegmentWithCoords(p1, p2 Vector, filter func(item I) bool) []SegmentInfo[I] {
	infos := w.segmentInfos(p1, p2, filter)
	d := p2.Sub(p1)
	for i := range infos {
		infos[i].P1 = p1.Add(d.Mult(infos[i].TI1))
		infos[i].P2 = p1.Add(d.Mult(infos[i].TI2))
	}
	return infos
}

func (w *World[I]) segmentInfos(p1, p2 Vector, filter func(item I) bool) []SegmentInfo[I] {
	visited := mapset.New[I]()

	var infos []SegmentInfo[I]
	for _, c := range w.cellsTouchedBySegment(p1, p2) {
		c.items.Each(func(item I) {
			if visited.Has(item) {
				return
			}
			visited.Put(item)
			if filter != nil && !filter(item) {
				return
			}

			rect := w.rects[item]
			ti1, ti2, _, _, ok := rect.SegmentIntersectionIndices(p1, p2, 0, 1)
			if !ok || !((0 < ti1 && ti1 < 1) || (0 < ti2 && ti2 < 1)) {
				return
			}

			// Sort by the t of the infinite line, not the clamped segment,
			// so items surrounding an endpoint still order front to back.
			tii1, tii2, _, _, _ := rect.SegmentIntersectionIndices(p1, p2, -math.MaxFloat64, math.MaxFloat64)

			infos = append(infos, SegmentInfo[I]{
				Item:   item,
				TI1:    ti1,
				TI2:    ti2,
				weight: math.Min(tii1, tii2),
			})
		})
	}

	sortByWeight(infos)
	return infos
}

func (w *World[I]) cellsTouchedBySegment(p1, p2 Vector) []*cell[I] {
	seen := mapset.New[cellCoord]()

	var cells []*cell[I]
	traverse(w.cellSize, p1, p2, func(cx, cy int) {
		coord := cellCoord{cx, cy}
		if seen.Has(coord) {
			return
		}
		seen.Put(coord)
		if c, ok := w.cells[coord]; ok {
			cells = append(cells, c)
		}
	})
	return cells
}

func (w *World[I]) eachItemInCellRect(cl, ct, cw, ch int, f func(item I)) {
	visited := mapset.New[I]()
	for cy := ct; cy < ct+ch; cy++ {
		for cx := cl; cx < cl+cw; cx++ {
			c, ok := w.cells[cellCoord{cx, cy}]
			if !ok {
				continue
			}
			c.items.Each(func(item I) {
				if visited.Has(item) {
					return
				}
				visited.Put(item)
				f(item)
			})
		}
	}
}

func (w *World[I]) addItemToCell(item I, cx, cy int) {
	coord := cellCoord{cx, cy}
	c, ok := w.cells[coord]
	if !ok {
		c = newCell[I]()
		w.cells[coord] = c
	}
	c.items.Put(item)
}

func (w *World[I]) removeItemFromCell(item I, cx, cy int) {
	coord := cellCoord{cx, cy}
	c, ok := w.cells[coord]
	if !ok {
		return
	}
	c.items.Remove(item)
	if c.items.Size() == 0 {
		delete(w.cells, coord)
	}
}
