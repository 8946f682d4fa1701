package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"github.com/milk9111/firstperson/levels"
	"github.com/milk9111/firstperson/logging"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Whether to enable debug logging."`

	Run struct {
		Level   string  `help:"Level to load." default:"playground"`
		Script  string  `help:"Input script under prefabs/scripts." default:"walk"`
		Frames  int     `help:"Number of frames to simulate." default:"600"`
		DT      float64 `name:"dt" help:"Seconds per rendered frame." default:"0.0166667"`
		Fixed   float64 `help:"Fixed physics step in seconds." default:"0.02"`
		Trace   string  `help:"Write a per-frame CSV trace to this file." type:"path"`
		Respawn bool    `help:"Respawn after dying instead of stopping."`
		Prefabs string  `help:"Directory checked for prefab overrides." default:"prefabs" type:"path"`
		Levels  string  `help:"Directory checked for level overrides." default:"levels" type:"path"`
	} `cmd:"" default:"1" help:"Simulate a scripted run and report what happened."`

	Levels struct {
	} `cmd:"" help:"List the embedded levels."`

	Scripts struct {
	} `cmd:"" help:"List the embedded input scripts."`

	Tuning struct {
	} `cmd:"" help:"Write the embedded player prefab to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fpssim"),
		kong.Description("headless first-person movement simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	logging.Setup(os.Stderr, CLI.Debug)

	switch ctx.Command() {
	case "run":
		prefabs.Dir = CLI.Run.Prefabs
		levels.Dir = CLI.Run.Levels
		summary, err := simulate(runOptions{
			Level:   CLI.Run.Level,
			Script:  CLI.Run.Script,
			Frames:  CLI.Run.Frames,
			DT:      CLI.Run.DT,
			Fixed:   CLI.Run.Fixed,
			Trace:   CLI.Run.Trace,
			Respawn: CLI.Run.Respawn,
			Log:     log.Logger,
		})
		if err != nil {
			writeError(err)
		}
		summary.Write(os.Stdout)
	case "levels":
		for _, name := range levels.Names() {
			fmt.Println(name)
		}
	case "scripts":
		names := prefabs.Scripts()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	case "tuning":
		data, err := prefabs.Load(prefabs.PlayerFile)
		if err != nil {
			writeError(err)
		}
		os.Stdout.Write(data)
	}
}
