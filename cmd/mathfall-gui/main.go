package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/mathfall/bootstrap"
	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/gui"
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
		fmt.Fprintf(os.Stderr, "mathfall-gui: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	field := rt.Config.Field
	ebiten.SetWindowSize(field.Width, field.Height+gui.HUDHeight+gui.InputHeight)
	ebiten.SetWindowTitle("Mathfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := gui.NewGame(rt.Scheduler, rt.Clock, rt.Session, gui.Options{Mute: rt.Sound})
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "mathfall-gui: %v\n", err)
	}
}
