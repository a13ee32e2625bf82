package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/gosweep/game"
)

func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd := newRootCmd(strings.NewReader(input), &out, &errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestRoot_Director(t *testing.T) {
	out, logs, err := execute(t, "",
		"--director=random", "--rows", "3", "--columns", "3", "--mines", "0",
		"--seed", "1", "--mode", "classic", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, "open (")
	assert.Contains(t, out, "You win!")
	assert.Contains(t, logs, "starting game")
	assert.Contains(t, logs, "difficulty=3x3/0")
}

func TestRoot_Interactive(t *testing.T) {
	out, logs, err := execute(t, "o 0 0\n", "-r", "2", "-c", "2", "-m", "0")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "000\n  0 1 \n0 # # \n1 # # \n"), "got:\n%s", out)
	assert.Contains(t, out, "You win!")
	assert.Empty(t, logs, "default log level hides debug output")
}

func TestRoot_Help(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "gosweep --difficulty expert")
}

func TestRoot_InvalidSettings(t *testing.T) {
	cases := map[string]struct {
		args    []string
		message string
	}{
		"mode":       {[]string{"--mode", "bogus"}, "invalid game mode"},
		"preset":     {[]string{"--difficulty", "impossible"}, `unknown preset "impossible"`},
		"too many":   {[]string{"-r", "2", "-c", "2", "-m", "5"}, "5 mines do not fit in 4 cells"},
		"director":   {[]string{"--director=nobody"}, `unknown director "nobody"`},
		"log level":  {[]string{"--log-level", "loud"}, "invalid log level"},
		"extra args": {[]string{"play"}, "unknown command"},
		"snapshot":   {[]string{"--snapshot", "/does/not/exist.yaml"}, "reading snapshot"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, "", tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}

	_, _, err := execute(t, "", "--difficulty", "impossible")
	assert.True(t, errors.Is(err, game.ErrInvalidDifficulty))
}

func TestRoot_Environment(t *testing.T) {
	t.Setenv("GOSWEEP_DIRECTOR", "constraint")
	t.Setenv("GOSWEEP_MINES", "0")
	t.Setenv("GOSWEEP_LOG_LEVEL", "info")

	out, logs, err := execute(t, "", "-r", "4", "-c", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "You win!")
	assert.Contains(t, logs, "game finished")
}

func TestRoot_ConfigFile(t *testing.T) {
	config := writeFile(t, "gosweep.yaml", `
difficulty: beginner
mines: 0
mode: classic
director: random
`)

	out, _, err := execute(t, "", "--config", config, "--columns", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "000   You win!\n")

	// beginner rows from the config file, columns from the flag
	_, board, found := strings.Cut(out, "\n  0 1 \n")
	require.True(t, found, "got:\n%s", out)
	assert.Equal(t, 9, strings.Count(board, "\n"))
}

func TestRoot_Snapshot(t *testing.T) {
	snapshot := writeFile(t, "board.yaml", "seed: 4\nboard: |-\n  O.\n  ..\n")

	out, _, err := execute(t, "", "--snapshot", snapshot)
	require.NoError(t, err)
	assert.Equal(t, "001\n  0 1 \n0 # # \n1 # # \n", out)

	out, _, err = execute(t, "", "--snapshot", snapshot, "--fresh=false")
	require.NoError(t, err)
	assert.Equal(t, "001\n  0 1 \n0 # 1 \n1 1 1 \n", out)
}
