package doublestate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// Game mode states, declared the same way the game does
const (
	loadingAssets   StateID = "LoadingAssets"
	loadingUI       StateID = "LoadingUI"
	mainMenu        StateID = "MainMenu"
	pauseMenu       StateID = "PauseMenu"
	optionsMenu     StateID = "OptionsMenu"
	loadingWorld    StateID = "LoadingWorld"
	loadingTextures StateID = "LoadingTextures"
	inGame          StateID = "InGame"
	levelChange     StateID = "LevelChange"
	exitToMain      StateID = "ExitToMain"
)

func gameDefinition() *Definition {
	return NewDefinition().
		Linear(loadingAssets, loadingUI, AsDefault()).
		Linear(loadingUI, mainMenu).
		Arbitrary(mainMenu, []StateID{loadingWorld, optionsMenu}).
		Arbitrary(pauseMenu, []StateID{optionsMenu, exitToMain, inGame}).
		Arbitrary(optionsMenu, []StateID{pauseMenu, mainMenu}).
		Linear(loadingWorld, loadingTextures).
		Linear(loadingTextures, inGame).
		Arbitrary(inGame, []StateID{pauseMenu}, WithLinearEdge(levelChange)).
		Linear(levelChange, inGame).
		Terminal(exitToMain)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGameMachine(t *testing.T, opts ...MachineOption) *Machine {
	t.Helper()
	table, err := gameDefinition().Build()
	require.NoError(t, err)
	return NewMachine(table, append([]MachineOption{WithLogger(quietLogger())}, opts...)...)
}

// driveTo walks the machine to target through the given requests, advancing
// after each one and through any linear states in between.
func driveTo(t *testing.T, m *Machine, path ...StateID) {
	t.Helper()
	for _, target := range path {
		for m.Table().KindOf(m.Current()) == KindLinear && m.Current() != target {
			_, ok := m.Advance()
			require.True(t, ok)
		}
		if m.Current() == target {
			continue
		}
		require.NoError(t, m.Request(target))
		_, ok := m.Advance()
		require.True(t, ok)
	}
}
