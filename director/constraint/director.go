package constraint

import (
	"github.com/gammazero/deque"

	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
	"github.com/they4kman/gosweep/util/collections"
)

// Director plays only moves that follow from the numbers on opened cells,
// and guesses at random when no such move exists.
type Director struct {
	game *game.Game

	actions deque.Deque[game.CellAction]
	queued  collections.Set[game.Coord]

	fallback random.Director
}

// Observation is what an opened cell tells us about its closed neighbours
type Observation struct {
	Origin   game.Coord
	NumMines int
	Cells    []game.Coord
}

// Certain reports whether every cell in the observation is known: all mines
// or all safe
func (observation Observation) Certain() bool {
	return len(observation.Cells) > 0 &&
		(observation.NumMines == 0 || observation.NumMines == len(observation.Cells))
}

func (director *Director) Init(g *game.Game) {
	director.game = g
	director.actions.Clear()
	director.queued = make(collections.Set[game.Coord])
	director.fallback.Init(g)
}

func (director *Director) Act() (game.CellAction, bool) {
	if director.game == nil {
		return game.CellAction{}, false
	}

	if action, ok := director.nextQueued(); ok {
		return action, true
	}

	director.actDeliberate()
	if action, ok := director.nextQueued(); ok {
		return action, true
	}

	director.actRemaining()
	if action, ok := director.nextQueued(); ok {
		return action, true
	}

	return director.fallback.Act()
}

func (director *Director) End() {
	director.game = nil
	director.actions.Clear()
	director.queued = nil
	director.fallback.End()
}

// nextQueued pops queued actions until one still applies to a closed cell
func (director *Director) nextQueued() (game.CellAction, bool) {
	grid := director.game.Grid()

	for director.actions.Len() > 0 {
		action := director.actions.PopFront()
		director.queued.Remove(action.Coord)

		if cell := grid.CellAt(action.Row, action.Column); cell != nil && cell.IsClosed() {
			return action, true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) enqueue(action game.CellAction) {
	if director.queued.Contains(action.Coord) {
		return
	}
	director.queued.Add(action.Coord)
	director.actions.PushBack(action)
}

// Observations lists, for every opened empty cell with closed neighbours, how
// many of those neighbours are still unflagged mines
func Observations(grid *game.Grid) []Observation {
	var observations []Observation

	for _, cell := range grid.Cells() {
		if !cell.IsOpened() || cell.IsMine() {
			continue
		}

		neighbors, err := grid.Neighbours(cell.Row(), cell.Column())
		if err != nil {
			continue
		}

		observation := Observation{
			Origin:   cell.Coord(),
			NumMines: cell.NumMines(),
		}
		for _, neighbor := range neighbors {
			switch {
			case neighbor.IsMarkedMine():
				observation.NumMines--
			case neighbor.IsClosed():
				observation.Cells = append(observation.Cells, neighbor.Coord())
			}
		}

		if len(observation.Cells) > 0 {
			observations = append(observations, observation)
		}
	}

	return observations
}

func (director *Director) actDeliberate() {
	for _, observation := range Observations(director.game.Grid()) {
		if !observation.Certain() {
			continue
		}

		for _, coord := range observation.Cells {
			if observation.NumMines == 0 {
				director.enqueue(game.CellAction{Coord: coord, Action: game.Click})
			} else {
				director.enqueue(game.CellAction{Coord: coord, Action: game.RightClick})
			}
		}
	}
}

// actRemaining settles the endgame: once the closed cells can only be all
// mines or all safe, act on every one of them
func (director *Director) actRemaining() {
	grid := director.game.Grid()

	closed := make(collections.Set[game.Coord])
	for _, cell := range grid.Cells() {
		if cell.IsClosed() {
			closed.Add(cell.Coord())
		}
	}

	observation := Observation{
		NumMines: grid.NumMines() - grid.NumMarked(),
		Cells: closed.Sorted(func(a, b game.Coord) bool {
			if a.Row != b.Row {
				return a.Row < b.Row
			}
			return a.Column < b.Column
		}),
	}
	if !observation.Certain() {
		return
	}

	for _, coord := range observation.Cells {
		if observation.NumMines == 0 {
			director.enqueue(game.CellAction{Coord: coord, Action: game.Click})
		} else {
			director.enqueue(game.CellAction{Coord: coord, Action: game.RightClick})
		}
	}
}
