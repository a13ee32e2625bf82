package game

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Difficulty configures the size and mine count of a new grid
type Difficulty struct {
	Rows    int `yaml:"rows" mapstructure:"rows"`
	Columns int `yaml:"columns" mapstructure:"columns"`
	Mines   int `yaml:"mines" mapstructure:"mines"`
}

var (
	Beginner     = Difficulty{Rows: 9, Columns: 9, Mines: 10}
	Intermediate = Difficulty{Rows: 16, Columns: 16, Mines: 40}
	Expert       = Difficulty{Rows: 16, Columns: 30, Mines: 99}
	Standard     = Difficulty{Rows: 20, Columns: 20, Mines: 20}
)

var Difficulties = map[string]Difficulty{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
	"standard":     Standard,
}

// DifficultyNames returns the preset names in alphabetical order
func DifficultyNames() []string {
	names := make([]string, 0, len(Difficulties))
	for name := range Difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (difficulty Difficulty) NumCells() int {
	return difficulty.Rows * difficulty.Columns
}

// Validate reports ErrInvalidDifficulty when the grid cannot be built
func (difficulty Difficulty) Validate() error {
	if difficulty.Rows < 1 || difficulty.Columns < 1 {
		return errors.Wrapf(ErrInvalidDifficulty, "dimensions must be positive, got %dx%d", difficulty.Rows, difficulty.Columns)
	}
	if difficulty.Mines < 0 || difficulty.Mines > difficulty.NumCells() {
		return errors.Wrapf(ErrInvalidDifficulty, "%d mines do not fit in %d cells", difficulty.Mines, difficulty.NumCells())
	}
	return nil
}

func (difficulty Difficulty) String() string {
	return fmt.Sprintf("%dx%d/%d", difficulty.Rows, difficulty.Columns, difficulty.Mines)
}
