package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a textual layout of a grid: one line per row, one glyph
// per cell.
//
//	#  closed empty    O  closed mine
//	.  opened empty    *  opened mine
//	f  flagged empty   F  flagged mine
//	?  unknown empty   !  unknown mine
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "serializing board snapshot")
	}
	return string(out), nil
}

// Snapshot captures the layout and cell statuses of the grid
func (grid *Grid) Snapshot() *BoardSnapshot {
	var builder strings.Builder
	for row := range grid.cells {
		if row > 0 {
			builder.WriteByte('\n')
		}
		for column := range grid.cells[row] {
			builder.WriteString(grid.cells[row][column].serialize())
		}
	}

	return &BoardSnapshot{
		Seed:            grid.seed,
		SerializedBoard: builder.String(),
	}
}

// CreateGrid rebuilds the grid described by the snapshot. When fresh is set,
// every cell starts closed regardless of the recorded status.
func (snapshot *BoardSnapshot) CreateGrid(fresh bool, opts ...Option) (*Grid, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")

	numColumns := len([]rune(rows[0]))
	if numColumns == 0 {
		return nil, errors.Wrap(ErrInvalidSnapshot, "empty board")
	}

	var mines []Coord
	statuses := make([][]Status, len(rows))
	for row, line := range rows {
		glyphs := []rune(line)
		if len(glyphs) != numColumns {
			return nil, errors.Wrapf(ErrInvalidSnapshot, "row %d has %d cells, expected %d", row, len(glyphs), numColumns)
		}

		statuses[row] = make([]Status, numColumns)
		for column, c := range glyphs {
			kind, status, ok := deserialize(c)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidSnapshot, "unknown glyph %q at (%d, %d)", c, row, column)
			}
			if kind == Mine {
				mines = append(mines, Coord{Row: row, Column: column})
			}
			statuses[row][column] = status
		}
	}

	opts = append([]Option{WithSeed(snapshot.Seed)}, opts...)
	grid, err := NewWithMines(len(rows), numColumns, mines, opts...)
	if err != nil {
		return nil, err
	}

	if !fresh {
		for row := range statuses {
			for column, status := range statuses[row] {
				grid.cells[row][column].status = status
			}
		}
	}

	return grid, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	return &snapshot, nil
}

// ParseLayout builds a grid from bare layout rows, without the YAML envelope.
// Surrounding whitespace and blank lines are ignored.
func ParseLayout(layout string, opts ...Option) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(layout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}

	snapshot := BoardSnapshot{SerializedBoard: strings.Join(rows, "\n")}
	return snapshot.CreateGrid(false, opts...)
}
