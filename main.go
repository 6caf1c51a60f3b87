package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapetransition/prefabs"
	_ "github.com/silbinarywolf/preferdiscretegpu"
)

func main() {
	specPath := flag.String("spec", prefabs.TransitionSpecFile, "transition settings file in prefabs/")
	scriptPath := flag.String("script", "", "tengo script in prefabs/scripts/ (overrides the settings file)")
	debug := flag.Bool("debug", false, "show the debug HUD")
	noReload := flag.Bool("no-reload", false, "disable hot reload of prefabs")
	flag.Parse()

	spec, err := prefabs.LoadTransitionSpec(*specPath)
	if err != nil {
		log.Fatal(err)
	}
	if *scriptPath != "" {
		spec.Script = *scriptPath
	}
	if *noReload {
		spec.HotReload = false
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(spec.Window.Width, spec.Window.Height)
	ebiten.SetWindowTitle(spec.Window.Title)

	game, err := NewGame(spec, *specPath, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
