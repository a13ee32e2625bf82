package random

import (
	"github.com/they4kman/gosweep/game"
)

// Director opens closed cells in a random order, fixed when the game starts
type Director struct {
	game  *game.Game
	order []game.Coord
	next  int
}

func (director *Director) Init(g *game.Game) {
	director.game = g
	director.next = 0

	grid := g.Grid()
	director.order = make([]game.Coord, 0, grid.NumCells())
	for _, cell := range grid.Cells() {
		director.order = append(director.order, cell.Coord())
	}

	g.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

// Act clicks the next closed cell in the shuffled order
func (director *Director) Act() (game.CellAction, bool) {
	if director.game == nil {
		return game.CellAction{}, false
	}

	grid := director.game.Grid()
	for ; director.next < len(director.order); director.next++ {
		coord := director.order[director.next]
		if cell := grid.CellAt(coord.Row, coord.Column); cell != nil && cell.IsClosed() {
			director.next++
			return cell.Click(), true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) End() {
	director.game = nil
	director.order = nil
}
