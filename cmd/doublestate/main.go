package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/librescoot/doublestate"
	"github.com/librescoot/doublestate/gamemode"
	"github.com/librescoot/doublestate/graph"
	"github.com/librescoot/doublestate/internal/config"
	"github.com/librescoot/doublestate/internal/game"
	"github.com/librescoot/doublestate/internal/game/ebitenhost"
	"github.com/librescoot/doublestate/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "doublestate:", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := flag.String("env", ".env", "dotenv file to load before reading the environment")
	graphFormat := flag.String("graph", "", "print the game mode table as \"mermaid\" or \"dot\" and exit")
	headless := flag.Bool("headless", false, "run without a window")
	script := flag.String("script", "", "comma separated game modes to request in headless mode")
	ticks := flag.Uint64("ticks", 0, "stop the headless loop after this many ticks (0 = no limit)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	doublestate.Logger = log

	table, err := gamemode.Load(cfg.StatesFile)
	if err != nil {
		log.Error("invalid game mode table", "error", err)
		return err
	}

	if *graphFormat != "" {
		out, err := graph.Render(table, graph.Format(*graphFormat))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	machine := doublestate.NewMachine(table, doublestate.WithLogger(log))
	opts := []game.Option{
		game.WithLogger(log),
		game.WithScreenSize(cfg.WindowWidth, cfg.WindowHeight),
		game.WithPlayerSpeed(cfg.PlayerSpeed),
	}

	if *headless {
		return runHeadless(machine, cfg, game.ParseScript(*script), *ticks, opts)
	}

	manager := game.NewManager(machine, ebitenhost.NewInputManager(), opts...)
	log.Info("starting game", "initial", table.Initial(), "tps", cfg.TPS)
	return ebitenhost.Run(manager, ebitenhost.WindowOptions{
		Width:  cfg.WindowWidth,
		Height: cfg.WindowHeight,
		Title:  cfg.WindowTitle,
		TPS:    cfg.TPS,
	})
}

func runHeadless(m *doublestate.Machine, cfg config.Config, script []doublestate.StateID, ticks uint64, opts []game.Option) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts = append(opts,
		game.WithSystems(game.ScriptSystem(script)),
		game.WithLoopOptions(
			doublestate.WithTickRate(cfg.TPS),
			doublestate.WithMaxTicks(ticks),
		),
	)
	return game.NewManager(m, nil, opts...).Run(ctx)
}
