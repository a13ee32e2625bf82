package game

import "fmt"

// Coord addresses a cell by row and column, both 0-indexed
type Coord struct {
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Column)
}

// Cell is a single grid position. Its fields can only be changed through the
// Grid which owns it.
type Cell struct {
	row, column int

	kind     Kind
	status   Status
	numMines int
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.column)
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Column() int {
	return cell.column
}

func (cell *Cell) Coord() Coord {
	return Coord{Row: cell.row, Column: cell.column}
}

func (cell *Cell) Kind() Kind {
	return cell.kind
}

func (cell *Cell) Status() Status {
	return cell.status
}

// NumMines is the number of mines among the cell's neighbours
func (cell *Cell) NumMines() int {
	return cell.numMines
}

func (cell *Cell) IsMine() bool {
	return cell.kind == Mine
}

func (cell *Cell) IsOpened() bool {
	return cell.status == Opened
}

func (cell *Cell) IsClosed() bool {
	return cell.status == Closed
}

func (cell *Cell) IsMarkedMine() bool {
	return cell.status == MarkedMine
}

func (cell *Cell) IsMarkedUnknown() bool {
	return cell.status == MarkedUnknown
}

func (cell *Cell) serialize() string {
	switch cell.status {
	case Opened:
		if cell.kind == Mine {
			return "*"
		}
		return "."
	case MarkedMine:
		if cell.kind == Mine {
			return "F"
		}
		return "f"
	case MarkedUnknown:
		if cell.kind == Mine {
			return "!"
		}
		return "?"
	default:
		if cell.kind == Mine {
			return "O"
		}
		return "#"
	}
}

// deserialize parses a snapshot glyph into a kind and status
func deserialize(c rune) (Kind, Status, bool) {
	switch c {
	case '#':
		return Empty, Closed, true
	case 'O':
		return Mine, Closed, true
	case '.':
		return Empty, Opened, true
	case '*':
		return Mine, Opened, true
	case 'f':
		return Empty, MarkedMine, true
	case 'F':
		return Mine, MarkedMine, true
	case '?':
		return Empty, MarkedUnknown, true
	case '!':
		return Mine, MarkedUnknown, true
	default:
		return Empty, Closed, false
	}
}
