package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

const (
	glyphClosed     = '#'
	glyphBlank      = ' '
	glyphMine       = '*'
	glyphFlag       = 'F'
	glyphUnknown    = '?'
	bannerWin       = "You win!"
	bannerLose      = "Game over!"
	columnSeparator = ' '
)

// Glyph is the character drawn for the cell at the position. Opened cells
// only show their number when some neighbour is opened as well.
func Glyph(grid *Grid, row, column int) rune {
	cell := grid.CellAt(row, column)
	if cell == nil {
		return glyphBlank
	}

	switch cell.status {
	case Closed:
		return glyphClosed
	case MarkedMine:
		return glyphFlag
	case MarkedUnknown:
		return glyphUnknown
	}

	if cell.kind == Mine {
		return glyphMine
	}
	if cell.numMines > 0 && grid.hasOpenedNeighbor(cell) {
		return rune('0' + cell.numMines)
	}
	return glyphBlank
}

func (grid *Grid) hasOpenedNeighbor(cell *Cell) bool {
	hasOpened := false
	grid.eachNeighbor(cell, func(neighbor *Cell) {
		if neighbor.status == Opened {
			hasOpened = true
		}
	})
	return hasOpened
}

// Render draws the grid as text, with row and column indexes along the edges
func Render(w io.Writer, grid *Grid) error {
	out := bufio.NewWriter(w)

	labelWidth := len(strconv.Itoa(grid.rows - 1))
	columnWidth := len(strconv.Itoa(grid.columns - 1))

	fmt.Fprintf(out, "%*s ", labelWidth, "")
	for column := 0; column < grid.columns; column++ {
		fmt.Fprintf(out, "%*d%c", columnWidth, column, columnSeparator)
	}
	out.WriteByte('\n')

	for row := 0; row < grid.rows; row++ {
		fmt.Fprintf(out, "%*d ", labelWidth, row)
		for column := 0; column < grid.columns; column++ {
			fmt.Fprintf(out, "%*c%c", columnWidth, Glyph(grid, row, column), columnSeparator)
		}
		out.WriteByte('\n')
	}

	return out.Flush()
}

// Render draws the game's grid below a header with the remaining mine count,
// and the win or lose banner once the game is over
func (game *Game) Render(w io.Writer) error {
	header := fmt.Sprintf("%03d", game.NumMinesLeft())
	switch game.state {
	case Won:
		header += "   " + bannerWin
	case Lost:
		header += "   " + bannerLose
	}

	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	return Render(w, game.grid)
}
