package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const help = `commands:
  o ROW COL   open a cell
  f ROW COL   toggle a mine flag
  u ROW COL   toggle an unknown mark
  n           start a new game
  q           quit`

var commandActions = map[string]Action{
	"o":       Click,
	"open":    Click,
	"f":       RightClick,
	"flag":    RightClick,
	"u":       MiddleClick,
	"unknown": MiddleClick,
}

// ParseCommand reads a single line of input. It returns the action to apply,
// or a bare command word (new, quit, help) when the line is not a cell action.
func ParseCommand(line string) (CellAction, string, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return CellAction{}, "", errors.New("empty command")
	}

	switch fields[0] {
	case "n", "new":
		return CellAction{}, "new", nil
	case "q", "quit", "exit":
		return CellAction{}, "quit", nil
	case "h", "help":
		return CellAction{}, "help", nil
	}

	action, ok := commandActions[fields[0]]
	if !ok {
		return CellAction{}, "", errors.Errorf("unknown command %q", fields[0])
	}
	if len(fields) != 3 {
		return CellAction{}, "", errors.Errorf("%s takes a row and a column", fields[0])
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return CellAction{}, "", errors.Wrapf(err, "invalid row %q", fields[1])
	}
	column, err := strconv.Atoi(fields[2])
	if err != nil {
		return CellAction{}, "", errors.Wrapf(err, "invalid column %q", fields[2])
	}

	return CellAction{Coord: Coord{Row: row, Column: column}, Action: action}, "", nil
}

// Run plays games on the text terminal until the input ends or the player
// quits. When the config has a director, it plays a single game by itself.
func Run(ctx context.Context, config GameConfig, in io.Reader, out io.Writer) error {
	game, err := NewGame(config)
	if err != nil {
		return err
	}

	if config.Director != nil {
		return game.runDirector(ctx, out)
	}
	return game.runInteractive(ctx, in, out)
}

// scanLines feeds lines from in until it is exhausted or ctx is done. The
// final error, if any, is sent after the last line.
func scanLines(ctx context.Context, in io.Reader, lines chan<- string, errs chan<- error) {
	defer close(lines)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	errs <- scanner.Err()
}

// runInteractive plays commands read from in. Cancelling ctx returns at once,
// even while waiting for input; the reader is left to the caller.
func (game *Game) runInteractive(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := game.Render(out); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)
	go scanLines(ctx, in, lines, errs)

	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next, ok := <-lines:
			if !ok {
				return <-errs
			}
			line = next
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		action, command, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch command {
		case "quit":
			return nil
		case "help":
			fmt.Fprintln(out, help)
			continue
		case "new":
			if err := game.Restart(); err != nil {
				return err
			}
		default:
			if err := game.Apply(action); err != nil {
				if errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrGameFinished) {
					fmt.Fprintln(out, err)
					continue
				}
				return err
			}
		}

		if err := game.Render(out); err != nil {
			return err
		}
		if !game.CanPlay() {
			fmt.Fprintln(out, "enter n for a new game, q to quit")
		}
	}
}

func (game *Game) runDirector(ctx context.Context, out io.Writer) error {
	director := game.config.Director

	for game.CanPlay() {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, ok := director.Act()
		if !ok {
			game.log.Warn("director has no moves left")
			break
		}

		game.log.WithFields(logrus.Fields{
			"action": action.Action.String(),
			"cell":   action.Coord.String(),
		}).Debug("director acted")

		if _, err := fmt.Fprintln(out, action); err != nil {
			return err
		}
		if err := game.Apply(action); err != nil {
			return err
		}
	}

	if game.CanPlay() {
		director.End()
	}
	return game.Render(out)
}
