// Command locomotion runs a small playground for the movement controller:
// move with A/D or the arrows, jump with space, Tab toggles the debug HUD.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "", "level yaml to load instead of the embedded arena")
	configPath := flag.String("config", "config.yaml", "tuning yaml, hot reloaded on save")
	scriptPath := flag.String("script", "", "tengo script layered onto the idle behavior state")
	debug := flag.Bool("debug", false, "start with the debug HUD visible")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("locomotion")

	game := NewGame(*levelName, *configPath, *scriptPath, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
