package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/librescoot/doublestate"
	"github.com/librescoot/doublestate/gamemode"
)

// ErrQuit is returned by Update once the game has reached a terminal mode.
var ErrQuit = errors.New("game: exit requested")

// Manager drives the game mode machine once per tick and holds the small
// amount of world state the prototype has.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Player       Player
	Level        int

	machine *doublestate.Machine
	loop    *doublestate.Loop
	input   Input
	logger  *slog.Logger

	// Mode the options menu returns to
	optionsReturn doublestate.StateID

	extra    []doublestate.System
	loopOpts []doublestate.LoopOption
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for game events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Manager) {
		g.logger = l
	}
}

// WithScreenSize sets the logical screen size.
func WithScreenSize(width, height int) Option {
	return func(g *Manager) {
		g.ScreenWidth = width
		g.ScreenHeight = height
	}
}

// WithPlayerSpeed sets how many pixels the player moves per tick.
func WithPlayerSpeed(speed float64) Option {
	return func(g *Manager) {
		g.Player.Speed = speed
	}
}

// WithSystems adds systems that run after the input systems on every tick.
func WithSystems(systems ...doublestate.System) Option {
	return func(g *Manager) {
		g.extra = append(g.extra, systems...)
	}
}

// WithLoopOptions configures the tick loop used by Run.
func WithLoopOptions(opts ...doublestate.LoopOption) Option {
	return func(g *Manager) {
		g.loopOpts = append(g.loopOpts, opts...)
	}
}

// NewManager creates a game manager around a machine built from the game
// mode table. input may be nil for headless runs.
func NewManager(m *doublestate.Machine, input Input, opts ...Option) *Manager {
	g := &Manager{
		ScreenWidth:  1280,
		ScreenHeight: 720,
		Player:       Player{Speed: 4},
		machine:      m,
		input:        input,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.loop = doublestate.NewLoop(m, append([]doublestate.LoopOption{
		doublestate.WithSystems(
			g.mainMenuSystem,
			g.inGameSystem,
			g.pauseMenuSystem,
			g.optionsMenuSystem,
		),
		doublestate.WithSystems(g.extra...),
	}, g.loopOpts...)...)

	m.Subscribe(func(ev doublestate.TransitionEvent) {
		g.logger.Info("game mode changed", "from", ev.From, "to", ev.To, "tick", ev.Tick)
	})
	m.OnEnter(gamemode.LoadingWorld, g.enterLoadingWorld)
	m.OnEnter(gamemode.LevelChange, g.enterLevelChange)
	m.OnEnter(gamemode.OptionsMenu, g.enterOptionsMenu)

	return g
}

// Machine returns the game mode machine.
func (g *Manager) Machine() *doublestate.Machine {
	return g.machine
}

// Mode returns the current game mode.
func (g *Manager) Mode() doublestate.StateID {
	return g.machine.Current()
}

// Update runs one tick: input systems, then the mode machine.
func (g *Manager) Update() error {
	if g.finished() {
		return ErrQuit
	}
	if _, _, err := g.loop.Tick(); err != nil {
		return err
	}
	if g.finished() {
		g.logger.Info("reached terminal game mode", "mode", g.Mode())
		return ErrQuit
	}
	return nil
}

// Run ticks the game without a window until it reaches a terminal mode, the
// context ends, or the loop's tick limit is hit.
func (g *Manager) Run(ctx context.Context) error {
	if err := g.loop.Run(ctx); err != nil {
		return err
	}
	g.logger.Info("headless run finished", "mode", g.Mode(), "ticks", g.machine.Ticks())
	return nil
}

// Layout handles window resize.
func (g *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ScreenWidth = outsideWidth
	g.ScreenHeight = outsideHeight
	g.clampPlayer()
	return outsideWidth, outsideHeight
}

func (g *Manager) finished() bool {
	return g.machine.Table().KindOf(g.Mode()) == doublestate.KindTerminal
}

// request asks for a transition and ignores illegal targets, which only mean
// the key does nothing in this mode.
func (g *Manager) request(target doublestate.StateID) {
	if err := g.machine.Request(target); err != nil {
		g.logger.Debug("ignored transition request", "error", err)
	}
}

func (g *Manager) justPressed(key Key) bool {
	return g.input != nil && g.input.IsKeyJustPressed(key)
}

func (g *Manager) pressed(key Key) bool {
	return g.input != nil && g.input.IsKeyPressed(key)
}

func (g *Manager) mainMenuSystem(m *doublestate.Machine) error {
	if !m.IsInState(gamemode.MainMenu) {
		return nil
	}
	switch {
	case g.justPressed(KeyEnter):
		g.request(gamemode.LoadingWorld)
	case g.justPressed(KeyO):
		g.request(gamemode.OptionsMenu)
	}
	return nil
}

func (g *Manager) inGameSystem(m *doublestate.Machine) error {
	if !m.IsInState(gamemode.InGame) {
		return nil
	}

	if g.pressed(KeyLeft) {
		g.Player.X -= g.Player.Speed
	}
	if g.pressed(KeyRight) {
		g.Player.X += g.Player.Speed
	}
	if g.pressed(KeyUp) {
		g.Player.Y -= g.Player.Speed
	}
	if g.pressed(KeyDown) {
		g.Player.Y += g.Player.Speed
	}
	g.clampPlayer()

	switch {
	case g.justPressed(KeyEscape):
		g.request(gamemode.PauseMenu)
	case g.justPressed(KeyN):
		if err := m.RequestLinear(); err != nil {
			g.logger.Debug("ignored level change", "error", err)
		}
	}
	return nil
}

func (g *Manager) pauseMenuSystem(m *doublestate.Machine) error {
	if !m.IsInState(gamemode.PauseMenu) {
		return nil
	}
	switch {
	case g.justPressed(KeyEscape), g.justPressed(KeyEnter):
		g.request(gamemode.InGame)
	case g.justPressed(KeyO):
		g.request(gamemode.OptionsMenu)
	case g.justPressed(KeyQ):
		g.request(gamemode.ExitToMain)
	}
	return nil
}

func (g *Manager) optionsMenuSystem(m *doublestate.Machine) error {
	if !m.IsInState(gamemode.OptionsMenu) {
		return nil
	}
	if g.justPressed(KeyEscape) || g.justPressed(KeyBackspace) {
		g.request(g.optionsReturn)
	}
	return nil
}

func (g *Manager) enterLoadingWorld(ctx *doublestate.Context) error {
	g.Level = 1
	g.spawnPlayer()
	ctx.Logger.Debug("world loaded", "level", g.Level)
	return nil
}

func (g *Manager) enterLevelChange(ctx *doublestate.Context) error {
	g.Level++
	g.spawnPlayer()
	ctx.Logger.Debug("level changed", "level", g.Level)
	return nil
}

func (g *Manager) enterOptionsMenu(ctx *doublestate.Context) error {
	switch from := ctx.FromState(); from {
	case gamemode.MainMenu, gamemode.PauseMenu:
		g.optionsReturn = from
	default:
		return fmt.Errorf("options menu opened from unexpected mode %q", from)
	}
	return nil
}

func (g *Manager) spawnPlayer() {
	g.Player.X = float64(g.ScreenWidth) / 2
	g.Player.Y = float64(g.ScreenHeight) / 2
}

func (g *Manager) clampPlayer() {
	g.Player.X = min(max(g.Player.X, 0), float64(g.ScreenWidth))
	g.Player.Y = min(max(g.Player.Y, 0), float64(g.ScreenHeight))
}
