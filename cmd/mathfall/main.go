package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mathfall/bootstrap"
	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/tui"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/mathfall.log")
	seedFlag   = flag.Uint64("seed", 0, "Random seed, 0 for time-seeded")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	rt, err := bootstrap.New(bootstrap.Options{
		ConfigPath: *configFlag,
		Debug:      *debugFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mathfall: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mathfall: terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "mathfall: terminal init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	core.SetCrashHook(screen.Fini)

	loop := engine.NewLoop(rt.Scheduler, rt.Clock, 0, rt.Registry)
	loop.Start()
	defer loop.Stop()

	app := tui.New(screen, loop, rt.Session, tui.Options{
		CellWidth:  rt.Config.Field.CellWidth,
		CellHeight: rt.Config.Field.CellHeight,
		Mute:       rt.Sound,
	})
	if err := app.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "mathfall: %v\n", err)
	}
}
