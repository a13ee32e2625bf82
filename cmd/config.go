package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/they4kman/gosweep/game"
)

const envPrefix = "GOSWEEP"

// settings are the resolved command options, merged from flags, GOSWEEP_*
// environment variables and the config file, in that order of precedence
type settings struct {
	Difficulty string `mapstructure:"difficulty"`
	Rows       int    `mapstructure:"rows"`
	Columns    int    `mapstructure:"columns"`
	Mines      int    `mapstructure:"mines"`
	Seed       int64  `mapstructure:"seed"`
	Mode       string `mapstructure:"mode"`
	Director   string `mapstructure:"director"`
	LogLevel   string `mapstructure:"log-level"`
	Snapshot   string `mapstructure:"snapshot"`
	Fresh      bool   `mapstructure:"fresh"`

	seedSet  bool
	minesSet bool
}

func loadSettings(flags *pflag.FlagSet, configFile string) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", configFile)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}
	s.seedSet = v.IsSet("seed")
	s.minesSet = v.IsSet("mines")

	return &s, nil
}

func (s *settings) difficulty() (game.Difficulty, error) {
	difficulty, ok := game.Difficulties[strings.ToLower(s.Difficulty)]
	if !ok {
		return game.Difficulty{}, errors.Wrapf(game.ErrInvalidDifficulty, "unknown preset %q", s.Difficulty)
	}

	if s.Rows != 0 {
		difficulty.Rows = s.Rows
	}
	if s.Columns != 0 {
		difficulty.Columns = s.Columns
	}
	// an explicit zero is a valid mine count
	if s.minesSet {
		difficulty.Mines = s.Mines
	}

	if err := difficulty.Validate(); err != nil {
		return game.Difficulty{}, err
	}
	return difficulty, nil
}

func (s *settings) gameConfig() (game.GameConfig, error) {
	config := game.NewGameConfig()

	difficulty, err := s.difficulty()
	if err != nil {
		return config, err
	}
	config.Difficulty = difficulty

	mode, ok := gameModes[strings.ToLower(s.Mode)]
	if !ok {
		return config, errors.Errorf("invalid game mode %q", s.Mode)
	}
	config.Mode = mode

	if s.seedSet {
		config.Seed = s.Seed
	} else {
		config.Seed = time.Now().UnixNano()
	}

	if s.Snapshot != "" {
		contents, err := os.ReadFile(s.Snapshot)
		if err != nil {
			return config, errors.Wrap(err, "reading snapshot")
		}
		snapshot, err := game.LoadSnapshot(string(contents))
		if err != nil {
			return config, errors.Wrapf(err, "loading snapshot %s", s.Snapshot)
		}
		config.Snapshot = snapshot
		config.LoadSnapshotFresh = s.Fresh
	}

	if s.Director != "" {
		newDirector, ok := directors[strings.ToLower(s.Director)]
		if !ok {
			return config, errors.Errorf("unknown director %q", s.Director)
		}
		config.Director = newDirector()
	}

	return config, nil
}
