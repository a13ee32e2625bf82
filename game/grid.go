package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/util/collections"
)

// Grid owns the cell matrix of a single game. Cells are stored row-major:
// cells[row][column].
//
// A Grid is not safe for concurrent mutation. Read-only queries may run
// concurrently with each other, but never alongside Reveal or the Toggle*
// methods.
type Grid struct {
	rows, columns int
	numMines      int
	cells         [][]Cell

	seed     int64
	rand     *rand.Rand
	log      logrus.FieldLogger
	listener Listener
}

// Listener is told about every cell whose status changed, after the change
type Listener func(cell *Cell)

type Option func(grid *Grid)

// WithSeed makes mine placement deterministic
func WithSeed(seed int64) Option {
	return func(grid *Grid) {
		grid.seed = seed
		grid.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand places mines using the given source. The recorded seed is drawn
// from it, so snapshots of the grid can be replayed.
func WithRand(r *rand.Rand) Option {
	return func(grid *Grid) {
		grid.seed = r.Int63()
		grid.rand = rand.New(rand.NewSource(grid.seed))
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(grid *Grid) {
		grid.log = log
	}
}

func WithListener(listener Listener) Option {
	return func(grid *Grid) {
		grid.listener = listener
	}
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newGrid(difficulty Difficulty, opts []Option) (*Grid, error) {
	if err := difficulty.Validate(); err != nil {
		return nil, err
	}

	grid := &Grid{
		rows:     difficulty.Rows,
		columns:  difficulty.Columns,
		numMines: difficulty.Mines,
		cells:    make([][]Cell, difficulty.Rows),
	}
	for _, opt := range opts {
		opt(grid)
	}
	if grid.rand == nil {
		WithSeed(time.Now().UnixNano())(grid)
	}
	if grid.log == nil {
		grid.log = discardLogger()
	}

	for row := 0; row < grid.rows; row++ {
		grid.cells[row] = make([]Cell, grid.columns)

		for column := 0; column < grid.columns; column++ {
			cell := &grid.cells[row][column]
			cell.row, cell.column = row, column
			cell.kind = Empty
			cell.status = Closed
		}
	}

	return grid, nil
}

// New builds a grid for the difficulty, choosing the mine positions uniformly
// at random without replacement.
func New(difficulty Difficulty, opts ...Option) (*Grid, error) {
	grid, err := newGrid(difficulty, opts)
	if err != nil {
		return nil, err
	}

	// Shuffle all cell indexes, and mine the first numMines of them
	cellIndexes := make([]int, grid.NumCells())
	for i := range cellIndexes {
		cellIndexes[i] = i
	}
	grid.rand.Shuffle(len(cellIndexes), func(i, j int) {
		cellIndexes[i], cellIndexes[j] = cellIndexes[j], cellIndexes[i]
	})
	for _, cellIdx := range cellIndexes[:grid.numMines] {
		grid.cellAtIndex(cellIdx).kind = Mine
	}
	grid.countMines()

	grid.log.WithFields(logrus.Fields{
		"difficulty": difficulty.String(),
		"seed":       grid.seed,
	}).Debug("created grid")

	return grid, nil
}

// NewWithMines builds a grid with mines at exactly the given positions
func NewWithMines(rows, columns int, mines []Coord, opts ...Option) (*Grid, error) {
	grid, err := newGrid(Difficulty{Rows: rows, Columns: columns, Mines: len(mines)}, opts)
	if err != nil {
		return nil, err
	}

	for _, coord := range mines {
		cell := grid.CellAt(coord.Row, coord.Column)
		if cell == nil {
			return nil, errors.Wrapf(ErrInvalidDifficulty, "mine %v is outside the %dx%d grid", coord, rows, columns)
		}
		if cell.kind == Mine {
			return nil, errors.Wrapf(ErrInvalidDifficulty, "duplicate mine at %v", coord)
		}
		cell.kind = Mine
	}
	grid.countMines()

	grid.log.WithFields(logrus.Fields{
		"rows":    rows,
		"columns": columns,
		"mines":   len(mines),
	}).Debug("created grid from layout")

	return grid, nil
}

func (grid *Grid) countMines() {
	for row := range grid.cells {
		for column := range grid.cells[row] {
			cell := &grid.cells[row][column]
			cell.numMines = 0
			grid.eachNeighbor(cell, func(neighbor *Cell) {
				if neighbor.kind == Mine {
					cell.numMines++
				}
			})
		}
	}
}

func (grid *Grid) Rows() int {
	return grid.rows
}

func (grid *Grid) Columns() int {
	return grid.columns
}

func (grid *Grid) NumCells() int {
	return grid.rows * grid.columns
}

func (grid *Grid) NumMines() int {
	return grid.numMines
}

func (grid *Grid) Seed() int64 {
	return grid.seed
}

func (grid *Grid) Difficulty() Difficulty {
	return Difficulty{Rows: grid.rows, Columns: grid.columns, Mines: grid.numMines}
}

func (grid *Grid) Contains(row, column int) bool {
	return row >= 0 && column >= 0 && row < grid.rows && column < grid.columns
}

// CellAt returns the cell at the position, or nil if it lies outside the grid
func (grid *Grid) CellAt(row, column int) *Cell {
	if grid.Contains(row, column) {
		return &grid.cells[row][column]
	}
	return nil
}

func (grid *Grid) cellAtIndex(idx int) *Cell {
	return &grid.cells[idx/grid.columns][idx%grid.columns]
}

// Cells returns every cell in row-major order
func (grid *Grid) Cells() []*Cell {
	out := make([]*Cell, 0, grid.NumCells())
	for row := range grid.cells {
		for column := range grid.cells[row] {
			out = append(out, &grid.cells[row][column])
		}
	}
	return out
}

// Mines returns the positions of all mines
func (grid *Grid) Mines() collections.Set[Coord] {
	mines := make(collections.Set[Coord], grid.numMines)
	for _, cell := range grid.Cells() {
		if cell.kind == Mine {
			mines.Add(cell.Coord())
		}
	}
	return mines
}

// NumMarked is the number of cells currently marked as mines
func (grid *Grid) NumMarked() int {
	numMarked := 0
	for _, cell := range grid.Cells() {
		if cell.status == MarkedMine {
			numMarked++
		}
	}
	return numMarked
}

// Neighbours returns copies of the up to 8 cells around the position, in
// row-major offset order: (-1,-1) (-1,0) (-1,1) (0,-1) (0,1) (1,-1) (1,0) (1,1)
func (grid *Grid) Neighbours(row, column int) ([]Cell, error) {
	cell := grid.CellAt(row, column)
	if cell == nil {
		return nil, outOfBounds(grid, row, column)
	}

	neighbors := make([]Cell, 0, 8)
	grid.eachNeighbor(cell, func(neighbor *Cell) {
		neighbors = append(neighbors, *neighbor)
	})
	return neighbors, nil
}

func (grid *Grid) eachNeighbor(cell *Cell, visit func(*Cell)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if neighbor := grid.CellAt(cell.row+dr, cell.column+dc); neighbor != nil {
				visit(neighbor)
			}
		}
	}
}

// Reveal opens a closed cell. Opening a cell with no neighbouring mines
// reveals all of its neighbours too, cascading through the zero region.
// Cells which are already opened or marked are left untouched.
func (grid *Grid) Reveal(row, column int) error {
	cell := grid.CellAt(row, column)
	if cell == nil {
		return outOfBounds(grid, row, column)
	}

	flood(cell, grid.open, grid.eachNeighbor)
	return nil
}

// open flips a closed cell to opened, reporting whether it did so
func (grid *Grid) open(cell *Cell) bool {
	if cell.status != Closed {
		return false
	}
	cell.status = Opened

	if cell.kind == Mine {
		grid.log.WithField("cell", cell.Coord().String()).Debug("opened a mine")
	}

	grid.markChanged(cell)
	return true
}

// ToggleMarkMine flags a closed cell as a mine, or clears an existing flag
func (grid *Grid) ToggleMarkMine(row, column int) error {
	return grid.toggle(row, column, MarkedMine)
}

// ToggleMarkUnknown marks a closed cell as unknown, or clears the mark
func (grid *Grid) ToggleMarkUnknown(row, column int) error {
	return grid.toggle(row, column, MarkedUnknown)
}

func (grid *Grid) toggle(row, column int, mark Status) error {
	cell := grid.CellAt(row, column)
	if cell == nil {
		return outOfBounds(grid, row, column)
	}

	switch cell.status {
	case Closed:
		cell.status = mark
	case mark:
		cell.status = Closed
	default:
		return nil
	}

	grid.markChanged(cell)
	return nil
}

func (grid *Grid) markChanged(cell *Cell) {
	if grid.listener != nil {
		grid.listener(cell)
	}
}

// IsGameOver reports whether any mine has been opened
func (grid *Grid) IsGameOver() bool {
	for _, cell := range grid.Cells() {
		if cell.kind == Mine && cell.status == Opened {
			return true
		}
	}
	return false
}

// IsWin reports whether every empty cell is opened and every mine is marked.
// Leaving a mine closed is not enough.
func (grid *Grid) IsWin() bool {
	for _, cell := range grid.Cells() {
		switch {
		case cell.kind == Empty && cell.status == Opened:
		case cell.kind == Mine && cell.status == MarkedMine:
		default:
			return false
		}
	}
	return true
}
