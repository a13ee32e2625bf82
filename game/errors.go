package game

import "github.com/pkg/errors"

var (
	// ErrInvalidDifficulty is returned when grid dimensions are non-positive or
	// the mine count does not fit the grid
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrOutOfBounds is returned by per-cell operations given a coordinate
	// outside the grid
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrInvalidSnapshot is returned when a board layout cannot be parsed
	ErrInvalidSnapshot = errors.New("invalid board snapshot")

	// ErrGameFinished is returned when acting on a game which was already won
	// or lost
	ErrGameFinished = errors.New("game is finished")
)

func outOfBounds(grid *Grid, row, column int) error {
	return errors.Wrapf(ErrOutOfBounds, "(%d, %d) on %dx%d grid", row, column, grid.rows, grid.columns)
}
