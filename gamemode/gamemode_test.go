package gamemode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librescoot/doublestate"
)

func TestTable(t *testing.T) {
	table, err := Table()
	require.NoError(t, err)

	assert.Equal(t, LoadingAssets, table.Initial())
	assert.Equal(t, All, table.States())

	tests := []struct {
		state      doublestate.StateID
		kind       doublestate.Kind
		successors []doublestate.StateID
	}{
		{LoadingAssets, doublestate.KindLinear, []doublestate.StateID{LoadingUI}},
		{LoadingUI, doublestate.KindLinear, []doublestate.StateID{MainMenu}},
		{MainMenu, doublestate.KindArbitrary, []doublestate.StateID{LoadingWorld, OptionsMenu}},
		{PauseMenu, doublestate.KindArbitrary, []doublestate.StateID{OptionsMenu, ExitToMain, InGame}},
		{OptionsMenu, doublestate.KindArbitrary, []doublestate.StateID{PauseMenu, MainMenu}},
		{LoadingWorld, doublestate.KindLinear, []doublestate.StateID{LoadingTextures}},
		{LoadingTextures, doublestate.KindLinear, []doublestate.StateID{InGame}},
		{InGame, doublestate.KindArbitrary, []doublestate.StateID{PauseMenu, LevelChange}},
		{LevelChange, doublestate.KindLinear, []doublestate.StateID{InGame}},
		{ExitToMain, doublestate.KindTerminal, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.kind, table.KindOf(tt.state))
			assert.Equal(t, tt.successors, table.SuccessorsOf(tt.state))
		})
	}

	edge, ok := table.LinearEdge(InGame)
	require.True(t, ok)
	assert.Equal(t, LevelChange, edge)
}

func TestMustTable(t *testing.T) {
	assert.NotPanics(t, func() {
		MustTable()
	})
}

func TestLoadEmbeddedWhenPathEmpty(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, All, table.States())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modes.yaml")
	require.NoError(t, os.WriteFile(path, declarations, 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, All, table.States())
}

func TestLoadFileMissingMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modes.yaml")
	doc := "states:\n  - name: MainMenu\n    default: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, doublestate.ErrUndeclaredState)
	assert.True(t, doublestate.IsConfigurationError(err))
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFileInvalidTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modes.yaml")
	doc := "states:\n  - name: MainMenu\n    linear: Nowhere\n    default: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.ErrorIs(t, err, doublestate.ErrUndeclaredState)
}
