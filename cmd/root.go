package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/gosweep/director/constraint"
	"github.com/they4kman/gosweep/director/random"
	"github.com/they4kman/gosweep/game"
)

var directors = map[string]func() game.Director{
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var configFile string
	mode := game.Safe

	rootCmd := &cobra.Command{
		Use:   "gosweep",
		Short: "Play manual or computer-driven Minesweeper in the terminal",
		Long: `gosweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	gosweep

Pick a preset, or size the grid yourself
	gosweep --difficulty expert
	gosweep --rows 8 --columns 12 --mines 15

Use the director flag to make the computer play for you
	gosweep -d
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd.Flags(), configFile)
			if err != nil {
				return err
			}

			log, err := newLogger(errOut, settings.LogLevel)
			if err != nil {
				return err
			}

			gameConfig, err := settings.gameConfig()
			if err != nil {
				return err
			}
			gameConfig.Logger = log

			log.WithFields(logrus.Fields{
				"difficulty": gameConfig.Difficulty.String(),
				"mode":       settings.Mode,
				"seed":       gameConfig.Seed,
				"director":   settings.Director,
			}).Debug("starting game")

			return game.Run(cmd.Context(), gameConfig, in, out)
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.Flags()
	flags.StringVar(&configFile, "config", "", "YAML config file with default settings")
	flags.String("difficulty", "standard", fmt.Sprintf("Preset grid size and mine count (%s)", strings.Join(game.DifficultyNames(), ", ")))
	flags.IntP("rows", "r", 0, "Number of rows in the grid, overriding the preset")
	flags.IntP("columns", "c", 0, "Number of columns in the grid, overriding the preset")
	flags.IntP("mines", "m", 0, "Number of mines to place in the grid, overriding the preset")
	flags.Int64("seed", 0, "Seed for mine placement (random when unset)")
	flags.Var(newGameModeValue(game.Safe, &mode), "mode", `Game mode, controlling behaviour of first click.
safe: the grid is regenerated until the first-clicked cell is not a mine (first click never loses)
classic: mines are left as is (first click can lose the game)`)
	flags.StringP("director", "d", "", "Make the computer play (random, constraint)")
	flags.Lookup("director").NoOptDefVal = "constraint"
	flags.String("snapshot", "", "YAML board snapshot to load the grid layout from")
	flags.Bool("fresh", true, "Close every cell of the loaded snapshot")
	flags.String("log-level", "warning", "Log level (debug, info, warning, error)")

	return rootCmd
}

func Execute() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	return log, nil
}

type gameModeValue game.GameMode

func newGameModeValue(val game.GameMode, p *game.GameMode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

var gameModes = map[string]game.GameMode{
	"safe":    game.Safe,
	"classic": game.Classic,
}

func (modeVal *gameModeValue) String() string {
	for name, mode := range gameModes {
		if mode == game.GameMode(*modeVal) {
			return name
		}
	}
	return fmt.Sprint(*modeVal)
}

func (modeVal *gameModeValue) Set(value string) error {
	if mode, isValid := gameModes[value]; isValid {
		*modeVal = gameModeValue(mode)
		return nil
	} else {
		return fmt.Errorf("invalid game mode")
	}
}

func (modeVal *gameModeValue) Type() string {
	return "game.GameMode"
}
