package game

import "github.com/gammazero/deque"

type NeighborVisitor func(cell *Cell, visit func(*Cell))

// Opener opens a cell, returning false if it was not in a state to be opened
type Opener func(cell *Cell) bool

// flood opens the cell, then keeps opening the neighbours of every opened cell
// with no neighbouring mines. Cells are only expanded when open succeeds, so
// each cell is expanded at most once and the fill terminates on any grid.
func flood(cell *Cell, open Opener, getNeighbors NeighborVisitor) {
	var visitQueue deque.Deque[*Cell]
	visitQueue.PushBack(cell)

	for visitQueue.Len() > 0 {
		next := visitQueue.PopFront()
		if !open(next) {
			continue
		}

		if next.numMines == 0 {
			getNeighbors(next, func(neighbor *Cell) {
				visitQueue.PushBack(neighbor)
			})
		}
	}
}
