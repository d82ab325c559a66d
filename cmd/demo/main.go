// Command demo is an interactive playground for the collision world: move
// the @ rectangle with the arrow keys (or hjkl) among walls, water and
// bumpers, and watch how each response resolves the motion.
//
//	# wall    - resolved with the current mode (tab cycles it)
//	~ water   - always cross: reported, never blocking
//	q / esc   - quit
package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/dmitrii-eremin/bump"
)

const step = 2

type entity struct {
	kind rune
}

var modes = []string{"slide", "bounce", "touch", "cross"}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	world := bump.NewWorld[*entity](8)

	player := &entity{kind: '@'}
	world.Add(player, bump.Rect{X: 4, Y: 4, W: 4, H: 2})

	addBox(world, '#', bump.Rect{X: 0, Y: 0, W: 76, H: 1})
	addBox(world, '#', bump.Rect{X: 0, Y: 21, W: 76, H: 1})
	addBox(world, '#', bump.Rect{X: 0, Y: 1, W: 1, H: 20})
	addBox(world, '#', bump.Rect{X: 75, Y: 1, W: 1, H: 20})
	addBox(world, '#', bump.Rect{X: 20, Y: 6, W: 10, H: 4})
	addBox(world, '#', bump.Rect{X: 44, Y: 12, W: 14, H: 3})
	addBox(world, '#', bump.Rect{X: 30, Y: 16, W: 6, H: 5})
	addBox(world, '~', bump.Rect{X: 56, Y: 3, W: 12, H: 6})
	addBox(world, '~', bump.Rect{X: 8, Y: 14, W: 9, H: 4})

	mode := 0
	filter := func(item, other *entity) string {
		if other.kind == '~' {
			return "cross"
		}
		return modes[mode]
	}

	var last []bump.Collision[*entity]

	for {
		draw(screen, world, player, modes[mode], last)

		ev, ok := screen.PollEvent().(*tcell.EventKey)
		if !ok {
			continue
		}

		var dx, dy float64
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
			return
		case ev.Key() == tcell.KeyTab:
			mode = (mode + 1) % len(modes)
			continue
		case ev.Key() == tcell.KeyLeft || ev.Rune() == 'h':
			dx = -step
		case ev.Key() == tcell.KeyRight || ev.Rune() == 'l':
			dx = step
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
			dy = -step
		case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
			dy = step
		default:
			continue
		}

		rect := world.GetRect(player)
		goal := bump.Vector{X: rect.X + dx, Y: rect.Y + dy}
		_, last = world.Move(player, goal, filter)
	}
}

func addBox(world *bump.World[*entity], kind rune, rect bump.Rect) {
	world.Add(&entity{kind: kind}, rect)
}

func draw(screen tcell.Screen, world *bump.World[*entity], player *entity, mode string, last []bump.Collision[*entity]) {
	screen.Clear()

	touched := map[*entity]bool{}
	for _, col := range last {
		touched[col.Other] = true
	}

	for _, item := range world.Items() {
		if item == player {
			continue
		}
		style := styleFor(item.kind)
		if touched[item] {
			style = style.Reverse(true)
		}
		fill(screen, world.GetRect(item), item.kind, style)
	}
	fill(screen, world.GetRect(player), player.kind, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	status := fmt.Sprintf(" mode: %-6s (tab cycles)  collisions: %d  items: %d ", mode, len(last), world.CountItems())
	for i, r := range status {
		screen.SetContent(i, 23, r, nil, tcell.StyleDefault)
	}

	screen.Show()
}

func styleFor(kind rune) tcell.Style {
	switch kind {
	case '~':
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

func fill(screen tcell.Screen, rect bump.Rect, kind rune, style tcell.Style) {
	for y := int(rect.Y); y < int(rect.Y+rect.H); y++ {
		for x := int(rect.X); x < int(rect.X+rect.W); x++ {
			screen.SetContent(x, y, kind, nil, style)
		}
	}
}
