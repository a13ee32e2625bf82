package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type GameMode int

const (
	// Classic leaves mines as they were generated; the first click can lose
	Classic GameMode = iota
	// Safe regenerates the grid until the first revealed cell is not a mine
	Safe
)

type GameConfig struct {
	Difficulty Difficulty
	Mode       GameMode

	Seed int64

	// Snapshot to load the grid layout from, instead of placing mines randomly
	Snapshot *BoardSnapshot
	// Whether to set all cells as closed when loading the Snapshot
	LoadSnapshotFresh bool

	Director Director
	Logger   logrus.FieldLogger

	// Pixel size of a cell, used when translating pointer positions
	CellSize int
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Difficulty:        Standard,
		Mode:              Safe,
		Seed:              time.Now().UnixNano(),
		Snapshot:          nil,
		LoadSnapshotFresh: true,
		Director:          nil,
		CellSize:          defaultCellSize,
	}
}

// Game is a single play session. It holds the current grid and everything
// the grid itself does not track: whether the first click happened, and
// whether the game has been won or lost.
type Game struct {
	config GameConfig
	rand   *rand.Rand
	log    logrus.FieldLogger

	grid       *Grid
	hasClicked bool
	state      BoardState

	// Number of cells changed by the action in progress
	numChanged int
}

func NewGame(config GameConfig) (*Game, error) {
	if config.Logger == nil {
		config.Logger = discardLogger()
	}
	if config.CellSize <= 0 {
		config.CellSize = defaultCellSize
	}

	game := &Game{
		config: config,
		rand:   rand.New(rand.NewSource(config.Seed)),
		log:    config.Logger,
	}
	if err := game.Restart(); err != nil {
		return nil, err
	}
	return game, nil
}

func (game *Game) createGrid() (*Grid, error) {
	opts := []Option{
		WithLogger(game.log),
		WithListener(game.cellChanged),
	}

	if game.config.Snapshot != nil {
		return game.config.Snapshot.CreateGrid(game.config.LoadSnapshotFresh, opts...)
	}
	return New(game.config.Difficulty, append(opts, WithRand(game.rand))...)
}

func (game *Game) cellChanged(*Cell) {
	game.numChanged++
}

// Restart discards the current grid and starts over with a new one
func (game *Game) Restart() error {
	if game.grid != nil && game.state == Ongoing && game.config.Director != nil {
		game.config.Director.End()
	}

	grid, err := game.createGrid()
	if err != nil {
		return err
	}

	game.grid = grid
	game.hasClicked = false
	game.state = Ongoing

	if game.config.Director != nil {
		game.config.Director.Init(game)
	}

	// A loaded snapshot may already be won or lost
	game.updateState()
	return nil
}

func (game *Game) Grid() *Grid {
	return game.grid
}

func (game *Game) State() BoardState {
	return game.state
}

// Rand is the game's seeded random source, shared with its director
func (game *Game) Rand() *rand.Rand {
	return game.rand
}

func (game *Game) CanPlay() bool {
	return game.state == Ongoing
}

// NumMinesLeft is the number of mines minus the number of flags placed
func (game *Game) NumMinesLeft() int {
	return game.grid.NumMines() - game.grid.NumMarked()
}

func (game *Game) Apply(action CellAction) error {
	switch action.Action {
	case Click:
		return game.Click(action.Row, action.Column)
	case RightClick:
		return game.RightClick(action.Row, action.Column)
	case MiddleClick:
		return game.MiddleClick(action.Row, action.Column)
	default:
		return errors.Errorf("unknown action %d", action.Action)
	}
}

// Click reveals the cell
func (game *Game) Click(row, column int) error {
	if err := game.checkPlayable(row, column); err != nil {
		return err
	}
	// Opened and marked cells cannot be revealed, so they don't count as
	// the first click either
	if !game.grid.CellAt(row, column).IsClosed() {
		return nil
	}

	if !game.hasClicked {
		game.hasClicked = true

		if game.config.Mode == Safe {
			if err := game.clearFirstClick(row, column); err != nil {
				return err
			}
		}
	}

	game.numChanged = 0
	if err := game.grid.Reveal(row, column); err != nil {
		return err
	}
	game.log.WithFields(logrus.Fields{
		"cell":   Coord{Row: row, Column: column}.String(),
		"opened": game.numChanged,
	}).Debug("revealed")

	game.updateState()
	return nil
}

// RightClick toggles a mine flag on the cell
func (game *Game) RightClick(row, column int) error {
	if err := game.checkPlayable(row, column); err != nil {
		return err
	}
	if err := game.grid.ToggleMarkMine(row, column); err != nil {
		return err
	}
	game.updateState()
	return nil
}

// MiddleClick toggles an unknown mark on the cell
func (game *Game) MiddleClick(row, column int) error {
	if err := game.checkPlayable(row, column); err != nil {
		return err
	}
	if err := game.grid.ToggleMarkUnknown(row, column); err != nil {
		return err
	}
	game.updateState()
	return nil
}

func (game *Game) checkPlayable(row, column int) error {
	if !game.CanPlay() {
		return errors.Wrapf(ErrGameFinished, "game was %s", game.state)
	}
	if !game.grid.Contains(row, column) {
		return outOfBounds(game.grid, row, column)
	}
	return nil
}

// clearFirstClick regenerates the grid until the cell is not a mine. Grids
// loaded from a snapshot, or made entirely of mines, are kept as is.
func (game *Game) clearFirstClick(row, column int) error {
	if game.config.Snapshot != nil {
		return nil
	}

	attempts := 0
	for game.grid.CellAt(row, column).IsMine() && game.grid.NumMines() < game.grid.NumCells() {
		grid, err := game.createGrid()
		if err != nil {
			return err
		}
		game.grid = grid
		attempts++
	}

	if attempts > 0 {
		game.log.WithFields(logrus.Fields{
			"cell":     Coord{Row: row, Column: column}.String(),
			"attempts": attempts,
		}).Debug("regenerated grid under first click")
	}
	return nil
}

func (game *Game) updateState() {
	switch {
	case game.grid.IsGameOver():
		game.state = Lost
	case game.grid.IsWin():
		game.state = Won
	default:
		return
	}

	game.log.WithFields(logrus.Fields{
		"state":      game.state.String(),
		"difficulty": game.grid.Difficulty().String(),
		"seed":       game.grid.Seed(),
	}).Info("game finished")

	if game.config.Director != nil {
		game.config.Director.End()
	}
}

// pointToCell translates a pixel position into the row and column under it
func pointToCell(x, y float64, cellSize int) (row, column int) {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	size := float64(cellSize)
	return int(math.Floor(y / size)), int(math.Floor(x / size))
}

// CellAtPoint returns the cell under the pixel position, or nil
func (game *Game) CellAtPoint(x, y float64) *Cell {
	row, column := pointToCell(x, y, game.config.CellSize)
	return game.grid.CellAt(row, column)
}
