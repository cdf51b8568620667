package game

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librescoot/doublestate"
	"github.com/librescoot/doublestate/gamemode"
)

// fakeInput reports keys pressed for exactly one frame via press, or held
// until released via hold.
type fakeInput struct {
	just map[Key]bool
	held map[Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{just: map[Key]bool{}, held: map[Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key Key) bool     { return f.held[key] || f.just[key] }
func (f *fakeInput) IsKeyJustPressed(key Key) bool { return f.just[key] }

func (f *fakeInput) press(key Key) { f.just[key] = true }
func (f *fakeInput) hold(key Key)  { f.held[key] = true }
func (f *fakeInput) release()      { f.just = map[Key]bool{}; f.held = map[Key]bool{} }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, input Input, opts ...Option) *Manager {
	t.Helper()
	table, err := gamemode.Table()
	require.NoError(t, err)
	m := doublestate.NewMachine(table, doublestate.WithLogger(quietLogger()))
	opts = append([]Option{WithLogger(quietLogger()), WithScreenSize(200, 100), WithPlayerSpeed(5)}, opts...)
	return NewManager(m, input, opts...)
}

// tick presses key (if any) for one frame and runs Update
func tick(t *testing.T, g *Manager, in *fakeInput, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		in.press(k)
	}
	require.NoError(t, g.Update())
	in.release()
}

func toMainMenu(t *testing.T, g *Manager, in *fakeInput) {
	t.Helper()
	tick(t, g, in)
	tick(t, g, in)
	require.Equal(t, gamemode.MainMenu, g.Mode())
}

func toInGame(t *testing.T, g *Manager, in *fakeInput) {
	t.Helper()
	toMainMenu(t, g, in)
	tick(t, g, in, KeyEnter)
	tick(t, g, in)
	tick(t, g, in)
	require.Equal(t, gamemode.InGame, g.Mode())
}

func TestLoadingReachesMainMenu(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	assert.Equal(t, gamemode.LoadingAssets, g.Mode())
	assert.Equal(t, "Loading...", g.View().Title)

	toMainMenu(t, g, in)

	tick(t, g, in)
	assert.Equal(t, gamemode.MainMenu, g.Mode())
	assert.Equal(t, "DOUBLE STATE", g.View().Title)
}

func TestStartGame(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toMainMenu(t, g, in)

	tick(t, g, in, KeyEnter)
	assert.Equal(t, gamemode.LoadingWorld, g.Mode())
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, Player{X: 100, Y: 50, Speed: 5}, g.Player)

	tick(t, g, in)
	assert.Equal(t, gamemode.LoadingTextures, g.Mode())
	tick(t, g, in)
	assert.Equal(t, gamemode.InGame, g.Mode())

	v := g.View()
	assert.Equal(t, "Level 1", v.Title)
	require.NotNil(t, v.Player)
	assert.Equal(t, 100.0, v.Player.X)
}

func TestMovementOnlyInGame(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toMainMenu(t, g, in)

	in.hold(KeyRight)
	require.NoError(t, g.Update())
	in.release()
	assert.Zero(t, g.Player.X)

	tick(t, g, in, KeyEnter)
	tick(t, g, in)
	tick(t, g, in)
	require.Equal(t, gamemode.InGame, g.Mode())

	in.hold(KeyRight)
	in.hold(KeyUp)
	require.NoError(t, g.Update())
	in.release()
	assert.Equal(t, 105.0, g.Player.X)
	assert.Equal(t, 45.0, g.Player.Y)
}

func TestMovementClampedToScreen(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in, WithPlayerSpeed(500))
	toInGame(t, g, in)

	in.hold(KeyLeft)
	in.hold(KeyDown)
	require.NoError(t, g.Update())
	in.release()

	assert.Zero(t, g.Player.X)
	assert.Equal(t, 100.0, g.Player.Y)
}

func TestPauseAndResume(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toInGame(t, g, in)

	tick(t, g, in, KeyEscape)
	assert.Equal(t, gamemode.PauseMenu, g.Mode())
	assert.Nil(t, g.View().Player)

	tick(t, g, in, KeyEscape)
	assert.Equal(t, gamemode.InGame, g.Mode())
}

func TestLevelChange(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toInGame(t, g, in)

	in.hold(KeyRight)
	require.NoError(t, g.Update())
	in.release()

	tick(t, g, in, KeyN)
	assert.Equal(t, gamemode.LevelChange, g.Mode())
	assert.Equal(t, 2, g.Level)
	assert.Equal(t, 100.0, g.Player.X, "player respawns on level change")
	assert.Equal(t, "Entering level 2", g.View().Title)

	tick(t, g, in)
	assert.Equal(t, gamemode.InGame, g.Mode())
	assert.Equal(t, "Level 2", g.View().Title)
}

func TestOptionsReturnsToOpener(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toMainMenu(t, g, in)

	tick(t, g, in, KeyO)
	assert.Equal(t, gamemode.OptionsMenu, g.Mode())
	assert.Contains(t, g.View().Lines[0], "MainMenu")
	tick(t, g, in, KeyBackspace)
	assert.Equal(t, gamemode.MainMenu, g.Mode())

	tick(t, g, in, KeyEnter)
	tick(t, g, in)
	tick(t, g, in)
	tick(t, g, in, KeyEscape)
	require.Equal(t, gamemode.PauseMenu, g.Mode())

	tick(t, g, in, KeyO)
	assert.Equal(t, gamemode.OptionsMenu, g.Mode())
	tick(t, g, in, KeyEscape)
	assert.Equal(t, gamemode.PauseMenu, g.Mode())
}

func TestQuitFromPauseMenu(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toInGame(t, g, in)
	tick(t, g, in, KeyEscape)

	in.press(KeyQ)
	err := g.Update()
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, gamemode.ExitToMain, g.Mode())
	assert.Equal(t, "Goodbye", g.View().Title)

	assert.ErrorIs(t, g.Update(), ErrQuit)
}

func TestKeysWithoutMeaningAreIgnored(t *testing.T) {
	in := newFakeInput()
	g := newTestManager(t, in)
	toMainMenu(t, g, in)

	tick(t, g, in, KeyQ, KeyN, KeyEscape)
	assert.Equal(t, gamemode.MainMenu, g.Mode())
}

func TestHeadlessScript(t *testing.T) {
	script := ParseScript("OptionsMenu, MainMenu,LoadingWorld,PauseMenu,ExitToMain")
	g := newTestManager(t, nil, WithSystems(ScriptSystem(script)))

	var err error
	for i := 0; i < 20 && err == nil; i++ {
		err = g.Update()
	}
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, gamemode.ExitToMain, g.Mode())
}

func TestScriptIllegalStep(t *testing.T) {
	g := newTestManager(t, nil, WithSystems(ScriptSystem(ParseScript("InGame"))))

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())
	err := g.Update()
	require.Error(t, err)
	assert.ErrorIs(t, err, doublestate.ErrIllegalTransition)
	assert.Contains(t, err.Error(), "script step 0")
}

func TestParseScript(t *testing.T) {
	assert.Equal(t, []doublestate.StateID{"A", "B"}, ParseScript(" A, ,B,"))
	assert.Empty(t, ParseScript(""))
}

func TestLayoutResizes(t *testing.T) {
	g := newTestManager(t, nil)
	g.Player.X = 150

	w, h := g.Layout(120, 80)
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)
	assert.Equal(t, 120.0, g.Player.X)
	assert.Equal(t, 80, g.View().Height)
}

func TestRunHeadlessUntilTerminal(t *testing.T) {
	script := ParseScript("LoadingWorld,PauseMenu,ExitToMain")
	g := newTestManager(t, nil,
		WithSystems(ScriptSystem(script)),
		WithLoopOptions(doublestate.WithTickRate(1000)),
	)

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, gamemode.ExitToMain, g.Mode())
	assert.Equal(t, 1, g.Level)
}

func TestRunHeadlessTickLimit(t *testing.T) {
	g := newTestManager(t, nil, WithLoopOptions(
		doublestate.WithTickRate(1000),
		doublestate.WithMaxTicks(5),
	))

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, gamemode.MainMenu, g.Mode())
	assert.Equal(t, uint64(5), g.Machine().Ticks())
}

func TestRunHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := newTestManager(t, nil)

	err := g.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, gamemode.LoadingAssets, g.Mode())
}
