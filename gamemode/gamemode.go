// Package gamemode declares the game's modes (loading, menus, gameplay,
// pause) and the legal transitions between them.
package gamemode

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/librescoot/doublestate"
)

// Game modes
const (
	LoadingAssets   doublestate.StateID = "LoadingAssets"
	LoadingUI       doublestate.StateID = "LoadingUI"
	MainMenu        doublestate.StateID = "MainMenu"
	PauseMenu       doublestate.StateID = "PauseMenu"
	OptionsMenu     doublestate.StateID = "OptionsMenu"
	LoadingWorld    doublestate.StateID = "LoadingWorld"
	LoadingTextures doublestate.StateID = "LoadingTextures"
	InGame          doublestate.StateID = "InGame"
	LevelChange     doublestate.StateID = "LevelChange"
	ExitToMain      doublestate.StateID = "ExitToMain"
)

//go:embed gamemodes.yaml
var declarations []byte

// All lists every game mode in declaration order
var All = []doublestate.StateID{
	LoadingAssets,
	LoadingUI,
	MainMenu,
	PauseMenu,
	OptionsMenu,
	LoadingWorld,
	LoadingTextures,
	InGame,
	LevelChange,
	ExitToMain,
}

// Table builds the embedded game mode table
func Table() (*doublestate.Table, error) {
	return build(bytes.NewReader(declarations))
}

// MustTable is like Table but panics on error
func MustTable() *doublestate.Table {
	t, err := Table()
	if err != nil {
		panic(err)
	}
	return t
}

// Load builds the table from a declaration file, or the embedded table when
// path is empty. The file must declare every game mode the game relies on.
func Load(path string) (*doublestate.Table, error) {
	if path == "" {
		return Table()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open declarations: %w", err)
	}
	defer f.Close()

	t, err := build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, id := range All {
		if !t.Has(id) {
			return nil, fmt.Errorf("%s: %w", path, &doublestate.ConfigurationError{
				State: id,
				Err:   fmt.Errorf("%w: game mode missing", doublestate.ErrUndeclaredState),
			})
		}
	}
	return t, nil
}

func build(r io.Reader) (*doublestate.Table, error) {
	d, err := doublestate.ParseYAML(r)
	if err != nil {
		return nil, err
	}
	return d.Build()
}
