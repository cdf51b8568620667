package game

import (
	"fmt"

	"github.com/librescoot/doublestate/gamemode"
)

// View returns what the host should draw for the current mode.
func (g *Manager) View() View {
	v := View{
		Mode:   string(g.Mode()),
		Level:  g.Level,
		Width:  g.ScreenWidth,
		Height: g.ScreenHeight,
	}

	switch g.Mode() {
	case gamemode.LoadingAssets, gamemode.LoadingUI, gamemode.LoadingWorld, gamemode.LoadingTextures:
		v.Title = "Loading..."
	case gamemode.MainMenu:
		v.Title = "DOUBLE STATE"
		v.Lines = []string{
			"[Enter] Start",
			"[O]     Options",
		}
	case gamemode.OptionsMenu:
		v.Title = "Options"
		v.Lines = []string{
			fmt.Sprintf("[Esc]   Back to %s", g.optionsReturn),
		}
	case gamemode.PauseMenu:
		v.Title = "Paused"
		v.Lines = []string{
			"[Esc]   Resume",
			"[O]     Options",
			"[Q]     Exit",
		}
	case gamemode.InGame:
		v.Title = fmt.Sprintf("Level %d", g.Level)
		v.Lines = []string{
			"Arrows move, [N] next level, [Esc] pause",
		}
		p := g.Player
		v.Player = &p
	case gamemode.LevelChange:
		v.Title = fmt.Sprintf("Entering level %d", g.Level)
	case gamemode.ExitToMain:
		v.Title = "Goodbye"
	default:
		v.Title = v.Mode
	}

	return v
}
