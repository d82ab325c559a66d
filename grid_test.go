package bump

import "testing"

func TestToCell(t *testing.T) {
	cases := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 1, 1},
		{63.9, 0, 1, 1},
		{64, 0, 2, 1},
		{0, 128, 1, 3},
		{-0.1, -0.1, 0, 0},
		{-64, -64, 0, 0},
		{-64.1, 0, -1, 1},
	}

	for _, c := range cases {
		cx, cy := toCell(64, c.x, c.y)
		if cx != c.cx || cy != c.cy {
			t.Errorf("toCell(64, %v, %v) = %v,%v want %v,%v", c.x, c.y, cx, cy, c.cx, c.cy)
		}
	}
}

func TestToWorld(t *testing.T) {
	x, y := toWorld(64, 1, 1)
	if x != 0 || y != 0 {
		t.Errorf("Expected 0,0 got %v,%v", x, y)
	}
	x, y = toWorld(64, 3, 2)
	if x != 128 || y != 64 {
		t.Errorf("Expected 128,64 got %v,%v", x, y)
	}
}

func TestToCellRect(t *testing.T) {
	cases := []struct {
		rect           Rect
		cx, cy, cw, ch int
	}{
		{Rect{0, 0, 64, 64}, 1, 1, 1, 1},
		{Rect{0, 0, 65, 64}, 1, 1, 2, 1},
		{Rect{32, 32, 64, 64}, 1, 1, 2, 2},
		{Rect{-10, -10, 20, 20}, 0, 0, 2, 2},
	}

	for _, c := range cases {
		cx, cy, cw, ch := toCellRect(64, c.rect)
		if cx != c.cx || cy != c.cy || cw != c.cw || ch != c.ch {
			t.Errorf("toCellRect(64, %v) = %v,%v,%v,%v want %v,%v,%v,%v",
				c.rect, cx, cy, cw, ch, c.cx, c.cy, c.cw, c.ch)
		}
	}
}

func collectCells(cellSize float64, p1, p2 Vector) []cellCoord {
	var cells []cellCoord
	traverse(cellSize, p1, p2, func(cx, cy int) {
		cells = append(cells, cellCoord{cx, cy})
	})
	return cells
}

func TestTraverseOrder(t *testing.T) {
	cells := collectCells(64, Vector{0, 0}, Vector{200, 0})

	want := []cellCoord{{1, 1}, {2, 1}, {3, 1}, {4, 1}}
	if len(cells) != len(want) {
		t.Fatalf("Expected %v cells, got %v", len(want), cells)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %v: expected %v got %v", i, want[i], cells[i])
		}
	}
}

func TestTraverseStartsAndEndsAtSegmentCells(t *testing.T) {
	p1 := Vector{10, 200}
	p2 := Vector{500, -30}
	cells := collectCells(64, p1, p2)

	cx1, cy1 := toCell(64, p1.X, p1.Y)
	cx2, cy2 := toCell(64, p2.X, p2.Y)

	if cells[0] != (cellCoord{cx1, cy1}) {
		t.Errorf("Expected first cell %v,%v got %v", cx1, cy1, cells[0])
	}
	if cells[len(cells)-1] != (cellCoord{cx2, cy2}) {
		t.Errorf("Expected last cell %v,%v got %v", cx2, cy2, cells[len(cells)-1])
	}
}

// A segment going exactly through a grid corner reports both cells sharing
// that corner.
func TestTraverseThroughCorner(t *testing.T) {
	cells := collectCells(64, Vector{32, 32}, Vector{96, 96})

	want := []cellCoord{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	if len(cells) != len(want) {
		t.Fatalf("Expected %v cells, got %v", len(want), cells)
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %v: expected %v got %v", i, want[i], cells[i])
		}
	}
}

func TestTraverseCellCountGrowsWithLength(t *testing.T) {
	prev := 0
	for length := 10.0; length <= 1000; length += 10 {
		n := len(collectCells(64, Vector{1, 1}, Vector{1 + length, 1 + length/3}))
		if n < prev {
			t.Fatalf("Cell count shrank from %v to %v at length %v", prev, n, length)
		}
		prev = n
	}
}

func TestTraverseSingleCell(t *testing.T) {
	cells := collectCells(64, Vector{10, 10}, Vector{20, 20})
	if len(cells) != 1 || cells[0] != (cellCoord{1, 1}) {
		t.Errorf("Expected only cell 1,1 got %v", cells)
	}
}
