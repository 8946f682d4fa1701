package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/firstperson/assets"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/logging"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/milk9111/firstperson/sim"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Level       string `help:"Level name in levels/ (basename, .yaml optional)." default:"playground"`
	Debug       bool   `help:"Whether to enable debug logging."`
	BaseMonitor bool   `short:"m" help:"Use the base monitor instead of the primary one."`
	Watch       bool   `help:"Reload prefabs when they change on disk." default:"true" negatable:""`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	kong.Parse(&CLI,
		kong.Name("firstperson"),
		kong.Description("first-person movement playground"),
		kong.UsageOnError())

	logger := logging.Setup(os.Stderr, CLI.Debug)

	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		writeError(err)
	}
	sounds, err := assets.NewSoundBank(assets.Context(), player.Audio, logger)
	if err != nil {
		writeError(err)
	}
	in := input.NewEbiten(player.Input.Sensitivity)
	in.InvertY = player.Input.InvertY

	session, err := sim.New(sim.Options{
		Level:     CLI.Level,
		Player:    player,
		Input:     in,
		Audio:     sounds,
		FixedStep: 1.0 / 50,
		Log:       logger,
	})
	if err != nil {
		writeError(err)
	}

	var watcher *prefabs.Watcher
	if CLI.Watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("prefab hot reload disabled")
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}
	defer sounds.Close()

	if CLI.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("firstperson")

	game := NewGame(session, in, watcher)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal().Err(err).Msg("game exited")
	}
}
