package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, layout string, opts ...Option) *Grid {
	t.Helper()
	grid, err := ParseLayout(layout, opts...)
	require.NoError(t, err)
	return grid
}

func statuses(grid *Grid) [][]Status {
	out := make([][]Status, grid.Rows())
	for row := range out {
		out[row] = make([]Status, grid.Columns())
		for column := range out[row] {
			out[row][column] = grid.CellAt(row, column).Status()
		}
	}
	return out
}

func countMinesAround(grid *Grid, row, column int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if cell := grid.CellAt(row+dr, column+dc); cell != nil && cell.IsMine() {
				count++
			}
		}
	}
	return count
}

func TestNew_PlacesExactMineCountAndNeighbourCounts(t *testing.T) {
	cases := []Difficulty{
		{Rows: 1, Columns: 1, Mines: 0},
		{Rows: 1, Columns: 1, Mines: 1},
		{Rows: 1, Columns: 10, Mines: 3},
		{Rows: 5, Columns: 5, Mines: 25},
		Beginner,
		Intermediate,
		Expert,
		Standard,
	}

	for _, difficulty := range cases {
		for seed := int64(1); seed <= 5; seed++ {
			t.Run(difficulty.String(), func(t *testing.T) {
				grid, err := New(difficulty, WithSeed(seed))
				require.NoError(t, err)

				assert.Equal(t, difficulty, grid.Difficulty())
				assert.Len(t, grid.Mines(), difficulty.Mines)

				numMines := 0
				for _, cell := range grid.Cells() {
					assert.Equal(t, Closed, cell.Status())
					assert.Equal(t, countMinesAround(grid, cell.Row(), cell.Column()), cell.NumMines(), "count at %v", cell)
					assert.LessOrEqual(t, cell.NumMines(), 8)
					if cell.IsMine() {
						numMines++
					}
				}
				assert.Equal(t, difficulty.Mines, numMines)
			})
		}
	}
}

func TestNew_SameSeedSameLayout(t *testing.T) {
	a, err := New(Intermediate, WithSeed(42))
	require.NoError(t, err)
	b, err := New(Intermediate, WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, a.Mines(), b.Mines())
	assert.Equal(t, int64(42), a.Seed())
}

func TestNew_InvalidDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"zero rows":        {Rows: 0, Columns: 5, Mines: 0},
		"negative columns": {Rows: 5, Columns: -1, Mines: 0},
		"too many mines":   {Rows: 2, Columns: 2, Mines: 5},
		"negative mines":   {Rows: 2, Columns: 2, Mines: -1},
	}

	for name, difficulty := range cases {
		t.Run(name, func(t *testing.T) {
			grid, err := New(difficulty)
			assert.Nil(t, grid)
			assert.True(t, errors.Is(err, ErrInvalidDifficulty), "got %v", err)
		})
	}
}

func TestNewWithMines_RejectsBadPositions(t *testing.T) {
	_, err := NewWithMines(2, 2, []Coord{{Row: 2, Column: 0}})
	assert.True(t, errors.Is(err, ErrInvalidDifficulty))

	_, err = NewWithMines(2, 2, []Coord{{Row: 1, Column: 1}, {Row: 1, Column: 1}})
	assert.True(t, errors.Is(err, ErrInvalidDifficulty))
}

func TestReveal_SingleCellGrid(t *testing.T) {
	grid, err := New(Difficulty{Rows: 1, Columns: 1, Mines: 0})
	require.NoError(t, err)

	require.NoError(t, grid.Reveal(0, 0))

	cell := grid.CellAt(0, 0)
	assert.Equal(t, Opened, cell.Status())
	assert.Equal(t, 0, cell.NumMines())
	assert.True(t, grid.IsWin())
	assert.False(t, grid.IsGameOver())
}

func TestReveal_CountedCellDoesNotCascade(t *testing.T) {
	grid := mustLayout(t, `
		O#
		##
	`)

	require.NoError(t, grid.Reveal(1, 1))

	assert.Equal(t, 1, grid.CellAt(1, 1).NumMines())
	assert.Equal(t, [][]Status{
		{Closed, Closed},
		{Closed, Opened},
	}, statuses(grid))
	assert.False(t, grid.IsWin())

	require.NoError(t, grid.Reveal(0, 1))
	require.NoError(t, grid.Reveal(1, 0))
	assert.False(t, grid.IsWin(), "a closed mine does not win")

	require.NoError(t, grid.ToggleMarkUnknown(0, 0))
	assert.False(t, grid.IsWin(), "a mine marked unknown does not win")
	require.NoError(t, grid.ToggleMarkUnknown(0, 0))

	require.NoError(t, grid.ToggleMarkMine(0, 0))
	assert.True(t, grid.IsWin())
	assert.False(t, grid.IsGameOver())
}

func TestReveal_CenterMineOnlyOpensTarget(t *testing.T) {
	grid := mustLayout(t, `
		###
		#O#
		###
	`)

	require.NoError(t, grid.Reveal(0, 0))

	assert.Equal(t, 1, grid.CellAt(0, 0).NumMines())
	assert.Equal(t, [][]Status{
		{Opened, Closed, Closed},
		{Closed, Closed, Closed},
		{Closed, Closed, Closed},
	}, statuses(grid))
}

func TestReveal_CascadesAroundFarMine(t *testing.T) {
	grid := mustLayout(t, `
		###
		###
		##O
	`)

	require.NoError(t, grid.Reveal(0, 0))

	assert.Equal(t, [][]Status{
		{Opened, Opened, Opened},
		{Opened, Opened, Opened},
		{Opened, Opened, Closed},
	}, statuses(grid))
	assert.False(t, grid.IsGameOver())
	assert.Equal(t, 1, grid.CellAt(1, 1).NumMines())
	assert.Equal(t, 1, grid.CellAt(1, 2).NumMines())
	assert.Equal(t, 1, grid.CellAt(2, 1).NumMines())

	require.NoError(t, grid.ToggleMarkMine(2, 2))
	assert.True(t, grid.IsWin())
}

func TestReveal_OpensZeroRegionAndBorderOnly(t *testing.T) {
	// The wall of mines in column 2 splits the grid; the right side must
	// stay closed.
	grid := mustLayout(t, `
		##O##
		##O##
		##O##
		##O##
		##O##
	`)

	require.NoError(t, grid.Reveal(0, 0))

	assert.Equal(t, [][]Status{
		{Opened, Opened, Closed, Closed, Closed},
		{Opened, Opened, Closed, Closed, Closed},
		{Opened, Opened, Closed, Closed, Closed},
		{Opened, Opened, Closed, Closed, Closed},
		{Opened, Opened, Closed, Closed, Closed},
	}, statuses(grid))
}

func TestReveal_IsIdempotent(t *testing.T) {
	changes := 0
	grid := mustLayout(t, `
		####
		####
		###O
	`, WithListener(func(*Cell) { changes++ }))

	require.NoError(t, grid.Reveal(0, 0))
	before := statuses(grid)
	firstChanges := changes

	require.NoError(t, grid.Reveal(0, 0))
	assert.Equal(t, before, statuses(grid))
	assert.Equal(t, firstChanges, changes, "second reveal must not cascade again")
}

func TestReveal_VisitsEachCellOnce(t *testing.T) {
	visits := map[Coord]int{}
	grid, err := New(
		Difficulty{Rows: 200, Columns: 200, Mines: 0},
		WithListener(func(cell *Cell) { visits[cell.Coord()]++ }),
	)
	require.NoError(t, err)

	require.NoError(t, grid.Reveal(100, 100))

	assert.Len(t, visits, grid.NumCells())
	for coord, count := range visits {
		if count != 1 {
			t.Fatalf("cell %v opened %d times", coord, count)
		}
	}
	assert.True(t, grid.IsWin())
}

func TestReveal_MarkedCellIsNotOpened(t *testing.T) {
	grid := mustLayout(t, `
		##
		##
	`)
	require.NoError(t, grid.ToggleMarkMine(0, 1))
	require.NoError(t, grid.ToggleMarkUnknown(1, 0))

	require.NoError(t, grid.Reveal(0, 1))
	assert.Equal(t, MarkedMine, grid.CellAt(0, 1).Status())

	// A cascade stops at marked cells too
	require.NoError(t, grid.Reveal(0, 0))
	assert.Equal(t, [][]Status{
		{Opened, MarkedMine},
		{MarkedUnknown, Opened},
	}, statuses(grid))
}

func TestReveal_MineIsGameOver(t *testing.T) {
	grid := mustLayout(t, `
		O#
		##
	`)
	assert.False(t, grid.IsGameOver())

	require.NoError(t, grid.Reveal(0, 0))
	assert.True(t, grid.IsGameOver())
	assert.False(t, grid.IsWin())
}

func TestReveal_ZeroCountMineCascades(t *testing.T) {
	// The cascade follows the opened cell's count, not its kind
	grid := mustLayout(t, `
		O##
		###
		##O
	`)
	require.Equal(t, 0, grid.CellAt(0, 0).NumMines())

	require.NoError(t, grid.Reveal(0, 0))

	assert.Equal(t, [][]Status{
		{Opened, Opened, Closed},
		{Opened, Opened, Closed},
		{Closed, Closed, Closed},
	}, statuses(grid))
	assert.True(t, grid.IsGameOver())
}

func TestToggleMark_Transitions(t *testing.T) {
	grid := mustLayout(t, `
		#O
	`)

	require.NoError(t, grid.ToggleMarkMine(0, 1))
	assert.Equal(t, MarkedMine, grid.CellAt(0, 1).Status())
	assert.Equal(t, 1, grid.NumMarked())

	require.NoError(t, grid.ToggleMarkUnknown(0, 1))
	assert.Equal(t, MarkedMine, grid.CellAt(0, 1).Status(), "marks never switch directly")

	require.NoError(t, grid.ToggleMarkMine(0, 1))
	assert.Equal(t, Closed, grid.CellAt(0, 1).Status())
	assert.Equal(t, 0, grid.NumMarked())

	require.NoError(t, grid.ToggleMarkUnknown(0, 1))
	assert.Equal(t, MarkedUnknown, grid.CellAt(0, 1).Status())
	require.NoError(t, grid.ToggleMarkMine(0, 1))
	assert.Equal(t, MarkedUnknown, grid.CellAt(0, 1).Status())
	require.NoError(t, grid.ToggleMarkUnknown(0, 1))
	assert.Equal(t, Closed, grid.CellAt(0, 1).Status())

	require.NoError(t, grid.Reveal(0, 0))
	require.NoError(t, grid.ToggleMarkMine(0, 0))
	require.NoError(t, grid.ToggleMarkUnknown(0, 0))
	assert.Equal(t, Opened, grid.CellAt(0, 0).Status(), "opened cells stay opened")
}

func TestOutOfBounds(t *testing.T) {
	grid := mustLayout(t, `
		##
		##
	`)

	coords := []Coord{{-1, 0}, {0, -1}, {2, 0}, {0, 2}}
	for _, coord := range coords {
		t.Run(coord.String(), func(t *testing.T) {
			assert.True(t, errors.Is(grid.Reveal(coord.Row, coord.Column), ErrOutOfBounds))
			assert.True(t, errors.Is(grid.ToggleMarkMine(coord.Row, coord.Column), ErrOutOfBounds))
			assert.True(t, errors.Is(grid.ToggleMarkUnknown(coord.Row, coord.Column), ErrOutOfBounds))

			_, err := grid.Neighbours(coord.Row, coord.Column)
			assert.True(t, errors.Is(err, ErrOutOfBounds))

			assert.Nil(t, grid.CellAt(coord.Row, coord.Column))
		})
	}
}

func TestNeighbours_RowMajorOrder(t *testing.T) {
	grid := mustLayout(t, `
		###
		###
		###
	`)

	coordsOf := func(cells []Cell) []Coord {
		out := make([]Coord, len(cells))
		for i := range cells {
			out[i] = cells[i].Coord()
		}
		return out
	}

	center, err := grid.Neighbours(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Coord{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	}, coordsOf(center))

	corner, err := grid.Neighbours(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []Coord{{1, 1}, {1, 2}, {2, 1}}, coordsOf(corner))

	edge, err := grid.Neighbours(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []Coord{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, coordsOf(edge))
}

func TestNeighbours_AreSnapshots(t *testing.T) {
	grid := mustLayout(t, `
		#O
	`)

	neighbors, err := grid.Neighbours(0, 0)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.True(t, neighbors[0].IsMine())

	require.NoError(t, grid.ToggleMarkMine(0, 1))
	assert.Equal(t, Closed, neighbors[0].Status(), "earlier snapshot is unaffected")
}
