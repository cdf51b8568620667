// Package ebitenhost runs the game manager inside an ebiten window.
package ebitenhost

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/librescoot/doublestate/internal/game"
)

var keyMap = map[game.Key]ebiten.Key{
	game.KeyUp:        ebiten.KeyArrowUp,
	game.KeyDown:      ebiten.KeyArrowDown,
	game.KeyLeft:      ebiten.KeyArrowLeft,
	game.KeyRight:     ebiten.KeyArrowRight,
	game.KeyEnter:     ebiten.KeyEnter,
	game.KeyEscape:    ebiten.KeyEscape,
	game.KeyBackspace: ebiten.KeyBackspace,
	game.KeyO:         ebiten.KeyO,
	game.KeyN:         ebiten.KeyN,
	game.KeyQ:         ebiten.KeyQ,
}

// InputManager implements game.Input using Ebiten's keyboard state.
type InputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() *InputManager {
	return &InputManager{}
}

// IsKeyPressed checks if a key is currently held down.
func (im *InputManager) IsKeyPressed(key game.Key) bool {
	k, ok := keyMap[key]
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed checks if a key was pressed this tick.
func (im *InputManager) IsKeyJustPressed(key game.Key) bool {
	k, ok := keyMap[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

// Host adapts a game.Manager to ebiten.Game.
type Host struct {
	manager *game.Manager
}

// New wraps the manager.
func New(m *game.Manager) *Host {
	return &Host{manager: m}
}

// Update runs one game tick. Reaching a terminal mode closes the window.
func (h *Host) Update() error {
	if err := h.manager.Update(); err != nil {
		if errors.Is(err, game.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	playerColor     = color.RGBA{255, 255, 100, 255}
)

const playerSize = 16

// Draw renders the current mode as text plus the player square in game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	v := h.manager.View()
	ebitenutil.DebugPrintAt(screen, v.Title, 50, 30)
	for i, line := range v.Lines {
		ebitenutil.DebugPrintAt(screen, line, 50, 70+i*20)
	}
	ebitenutil.DebugPrintAt(screen, "mode: "+v.Mode, 20, v.Height-30)

	if v.Player != nil {
		vector.DrawFilledRect(screen,
			float32(v.Player.X-playerSize/2),
			float32(v.Player.Y-playerSize/2),
			playerSize, playerSize, playerColor, false)
	}
}

// Layout handles window resize.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.manager.Layout(outsideWidth, outsideHeight)
}

// WindowOptions configures the window Run opens.
type WindowOptions struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// Run opens the window and blocks until it is closed or the game quits.
func Run(m *game.Manager, opts WindowOptions) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}

	if err := ebiten.RunGame(New(m)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
